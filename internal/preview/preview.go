// Package preview scales the current capture into a viewport without
// distorting it.
package preview

import (
	"image"
	"math"
	"sync"

	"golang.org/x/image/draw"
)

// Fit returns where a src-sized image lands inside a viewport when scaled
// uniformly by min(W/w, H/h) and centered. Empty inputs give an empty rect.
func Fit(src, viewport image.Point) image.Rectangle {
	if src.X <= 0 || src.Y <= 0 || viewport.X <= 0 || viewport.Y <= 0 {
		return image.Rectangle{}
	}

	scale := math.Min(
		float64(viewport.X)/float64(src.X),
		float64(viewport.Y)/float64(src.Y),
	)

	w := clamp(int(math.Round(float64(src.X)*scale)), 1, viewport.X)
	h := clamp(int(math.Round(float64(src.Y)*scale)), 1, viewport.Y)

	x := (viewport.X - w) / 2
	y := (viewport.Y - h) / 2
	return image.Rect(x, y, x+w, y+h)
}

// Render draws img scaled into a w×h transparent canvas. A nil image renders
// nothing and returns nil.
func Render(img image.Image, w, h int) image.Image {
	if img == nil || w <= 0 || h <= 0 {
		return nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	src := img.Bounds()
	target := Fit(src.Size(), image.Pt(w, h))
	if target.Empty() {
		return dst
	}

	draw.CatmullRom.Scale(dst, target, img, src, draw.Over, nil)
	return dst
}

// Cache keeps the last rendering so repaints at an unchanged size and source
// skip the resample. It is safe for concurrent use.
type Cache struct {
	mu   sync.Mutex
	src  image.Image
	size image.Point
	out  image.Image
}

// Render returns the cached frame for (img, w, h), rendering it on a miss.
func (c *Cache) Render(img image.Image, w, h int) image.Image {
	size := image.Pt(w, h)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.out != nil && c.src == img && c.size == size {
		return c.out
	}

	c.src, c.size = img, size
	c.out = Render(img, w, h)
	return c.out
}

// Reset drops the cached frame.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.src, c.out = nil, nil
	c.size = image.Point{}
	c.mu.Unlock()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
