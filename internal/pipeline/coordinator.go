package pipeline

import (
	"image"
	"io"
	"sync"
	"time"

	"screen-shooter/internal/logger"
)

type ImageLoader interface {
	LoadFromPath(path string) (*ImageData, error)
}

type ImageSaver interface {
	SaveToWriter(writer io.Writer, img image.Image, format Format) error
	SaveToPath(path string, img image.Image) (SaveResult, error)
	EncodeTemp(img image.Image, pattern string) (string, error)
}

// ImageData is one captured frame. It is never modified after creation; a new
// capture replaces it.
type ImageData struct {
	Image      image.Image
	Width      int
	Height     int
	Format     Format
	CapturedAt time.Time
}

func newImageData(img image.Image, at time.Time) *ImageData {
	bounds := img.Bounds()
	return &ImageData{
		Image:      img,
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		CapturedAt: at,
	}
}

// Coordinator holds the current Image Buffer and routes it to persistence.
type Coordinator struct {
	mu      sync.RWMutex
	current *ImageData
	logger  logger.Logger
	loader  ImageLoader
	saver   ImageSaver
}

func NewCoordinator(log logger.Logger) *Coordinator {
	coord := &Coordinator{
		logger: log,
		loader: &imageLoader{logger: log},
		saver:  &imageSaver{logger: log},
	}

	log.Info("PipelineCoordinator", "initialized", nil)
	return coord
}

// SetCurrent replaces the current buffer. A nil image clears it.
func (c *Coordinator) SetCurrent(img image.Image) *ImageData {
	var data *ImageData
	if img != nil {
		data = newImageData(img, time.Now())
	}

	c.mu.Lock()
	c.current = data
	c.mu.Unlock()

	if data != nil {
		c.logger.Debug("PipelineCoordinator", "current image replaced", map[string]interface{}{
			"width":  data.Width,
			"height": data.Height,
		})
	}
	return data
}

func (c *Coordinator) Current() *ImageData {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

func (c *Coordinator) CurrentImage() image.Image {
	if data := c.Current(); data != nil {
		return data.Image
	}
	return nil
}

func (c *Coordinator) Save(path string, data *ImageData) (SaveResult, error) {
	if data == nil {
		return SaveResult{}, ErrNoImage
	}
	return c.saver.SaveToPath(path, data.Image)
}

func (c *Coordinator) EncodeTemp(img image.Image) (string, error) {
	return c.saver.EncodeTemp(img, "screen-shooter-*.png")
}

func (c *Coordinator) Load(path string) (*ImageData, error) {
	return c.loader.LoadFromPath(path)
}

func (c *Coordinator) Shutdown() {
	c.SetCurrent(nil)
	c.logger.Info("PipelineCoordinator", "shutdown completed", nil)
}
