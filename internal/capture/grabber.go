package capture

import (
	"errors"
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

var ErrNoDisplay = errors.New("no active display to capture")

type Grabber interface {
	Grab() (image.Image, error)
}

// ScreenGrabber captures one whole display. Display 0 is the primary output.
type ScreenGrabber struct {
	Display int
}

func NewScreenGrabber() *ScreenGrabber {
	return &ScreenGrabber{Display: 0}
}

func (g *ScreenGrabber) Grab() (image.Image, error) {
	if screenshot.NumActiveDisplays() <= g.Display {
		return nil, ErrNoDisplay
	}

	bounds := screenshot.GetDisplayBounds(g.Display)
	if bounds.Empty() {
		return nil, ErrNoDisplay
	}

	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, fmt.Errorf("capture display %d: %w", g.Display, err)
	}
	return img, nil
}
