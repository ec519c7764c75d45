package pipeline

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"strings"

	"screen-shooter/internal/logger"

	"github.com/dustin/go-humanize"
	"golang.org/x/image/bmp"
)

var ErrNoImage = errors.New("no screenshot to save")

const jpegQuality = 95

type SaveResult struct {
	Path     string
	Format   Format
	Bytes    int64
	FellBack bool
}

// Size is the written size for status lines, e.g. "1.2 MB".
func (r SaveResult) Size() string {
	return humanize.Bytes(uint64(r.Bytes))
}

type imageSaver struct {
	logger logger.Logger
}

func (s *imageSaver) SaveToWriter(writer io.Writer, img image.Image, format Format) error {
	if img == nil {
		return ErrNoImage
	}

	var err error
	switch format {
	case FormatJPEG:
		err = jpeg.Encode(writer, img, &jpeg.Options{Quality: jpegQuality})
	case FormatBMP:
		err = bmp.Encode(writer, img)
	default:
		err = png.Encode(writer, img)
	}

	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return nil
}

func (s *imageSaver) SaveToPath(path string, img image.Image) (SaveResult, error) {
	if img == nil {
		return SaveResult{}, ErrNoImage
	}

	format, known := FormatForPath(path)
	if !known {
		s.logger.Warning("ImageSaver", "extension not supported, writing PNG", map[string]interface{}{
			"path": path,
		})
	}

	file, err := os.Create(path)
	if err != nil {
		return SaveResult{}, fmt.Errorf("create %s: %w", path, err)
	}

	counter := &countingWriter{w: file}
	if err := s.SaveToWriter(counter, img, format); err != nil {
		file.Close()
		os.Remove(path)
		s.logger.Error("ImageSaver", err, map[string]interface{}{"path": path})
		return SaveResult{}, err
	}
	if err := file.Close(); err != nil {
		return SaveResult{}, fmt.Errorf("close %s: %w", path, err)
	}

	result := SaveResult{
		Path:     path,
		Format:   format,
		Bytes:    counter.n,
		FellBack: !known,
	}

	s.logger.Info("ImageSaver", "image saved", map[string]interface{}{
		"path":   path,
		"format": strings.ToUpper(string(format)),
		"size":   result.Size(),
	})
	return result, nil
}

// EncodeTemp writes img as PNG into a fresh temp file and returns its path.
// The caller owns the file.
func (s *imageSaver) EncodeTemp(img image.Image, pattern string) (string, error) {
	if img == nil {
		return "", ErrNoImage
	}

	file, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		os.Remove(file.Name())
		return "", fmt.Errorf("encode temp png: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(file.Name())
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return file.Name(), nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
