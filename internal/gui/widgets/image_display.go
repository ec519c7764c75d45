package widgets

import (
	"image"
	"sync"

	"screen-shooter/internal/preview"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	ImageAreaWidth  = 640
	ImageAreaHeight = 400
)

// ImageDisplay shows the current capture scaled to fit, centered, with its
// aspect ratio kept. Frames are resampled only when the image or the raster
// size changes.
type ImageDisplay struct {
	container   fyne.CanvasObject
	raster      *canvas.Raster
	placeholder *widget.Label
	frames      preview.Cache

	mu    sync.RWMutex
	image image.Image
}

func NewImageDisplay() *ImageDisplay {
	display := &ImageDisplay{}
	display.createComponents()
	display.setupLayout()
	return display
}

func (id *ImageDisplay) createComponents() {
	id.raster = canvas.NewRaster(id.render)
	id.raster.ScaleMode = canvas.ImageScaleSmooth
	id.raster.SetMinSize(fyne.NewSize(ImageAreaWidth, ImageAreaHeight))

	id.placeholder = widget.NewLabel("No screenshot yet")
	id.placeholder.Alignment = fyne.TextAlignCenter
}

func (id *ImageDisplay) setupLayout() {
	id.container = container.NewStack(
		container.NewCenter(id.placeholder),
		id.raster,
	)
}

func (id *ImageDisplay) render(w, h int) image.Image {
	id.mu.RLock()
	img := id.image
	id.mu.RUnlock()

	out := id.frames.Render(img, w, h)
	if out == nil {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	return out
}

func (id *ImageDisplay) GetContainer() fyne.CanvasObject {
	return id.container
}

func (id *ImageDisplay) SetImage(img image.Image) {
	id.mu.Lock()
	id.image = img
	id.mu.Unlock()
	id.frames.Reset()

	if img == nil {
		id.placeholder.Show()
	} else {
		id.placeholder.Hide()
	}
	id.raster.Refresh()
}

func (id *ImageDisplay) Image() image.Image {
	id.mu.RLock()
	defer id.mu.RUnlock()
	return id.image
}
