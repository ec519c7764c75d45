package pipeline

import (
	"bufio"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"time"

	"screen-shooter/internal/logger"

	_ "golang.org/x/image/bmp"
)

type imageLoader struct {
	logger logger.Logger
}

func (l *imageLoader) LoadFromPath(path string) (*ImageData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	img, format, err := image.Decode(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	data := newImageData(img, time.Now())
	data.Format = Format(format)

	l.logger.Debug("ImageLoader", "image loaded", map[string]interface{}{
		"path":   path,
		"width":  data.Width,
		"height": data.Height,
		"format": format,
	})
	return data, nil
}
