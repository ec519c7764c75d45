package pipeline

import (
	"path/filepath"
	"strings"
)

type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatBMP  Format = "bmp"
)

var extensionFormats = map[string]Format{
	".png":  FormatPNG,
	".bmp":  FormatBMP,
	".jpeg": FormatJPEG,
	".jpg":  FormatJPEG,
}

// FilterExtensions lists the extensions offered by the save dialog.
func FilterExtensions() []string {
	return []string{".png", ".bmp", ".jpeg", ".jpg"}
}

// FormatForPath infers the encoder from the path's extension. The boolean is
// false when the extension is missing or unsupported and PNG is used instead.
func FormatForPath(path string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if format, ok := extensionFormats[ext]; ok {
		return format, true
	}
	return FormatPNG, false
}
