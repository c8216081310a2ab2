package transform

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// ErrInvalidViewport is returned when a viewport has a non-positive zoom or
// pixel extent.
var ErrInvalidViewport = errors.New("invalid viewport")

// fitMargin leaves a little room around data fitted into the viewport.
const fitMargin = 1.05

// PixelSize is the size of the rendered area in screen pixels.
type PixelSize struct {
	Width  float64
	Height float64
}

// Envelope is the axis-aligned world rectangle currently visible.
type Envelope struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// EnvelopeFromBound converts an orb bound.
func EnvelopeFromBound(b orb.Bound) Envelope {
	return Envelope{MinX: b.Min[0], MinY: b.Min[1], MaxX: b.Max[0], MaxY: b.Max[1]}
}

// Bound returns the envelope as an orb bound.
func (e Envelope) Bound() orb.Bound {
	return orb.Bound{Min: orb.Point{e.MinX, e.MinY}, Max: orb.Point{e.MaxX, e.MaxY}}
}

// Contains reports whether p lies inside the envelope, edges included.
func (e Envelope) Contains(p orb.Point) bool {
	return p[0] >= e.MinX && p[0] <= e.MaxX && p[1] >= e.MinY && p[1] <= e.MaxY
}

// Viewport describes how world space maps onto the screen.
type Viewport struct {
	Center orb.Point
	// Zoom is the width of the visible world extent.
	Zoom             float64
	Size             PixelSize
	PixelAspectRatio float64
}

// NewViewport builds a viewport and validates it.
func NewViewport(center orb.Point, zoom float64, size PixelSize, aspect float64) (Viewport, error) {
	v := Viewport{Center: center, Zoom: zoom, Size: size, PixelAspectRatio: aspect}
	if err := v.Validate(); err != nil {
		return Viewport{}, err
	}
	return v, nil
}

// Validate checks that the viewport can be used for projection.
func (v Viewport) Validate() error {
	switch {
	case !(v.Zoom > 0) || math.IsInf(v.Zoom, 0):
		return errors.Wrapf(ErrInvalidViewport, "zoom %v", v.Zoom)
	case !(v.Size.Width > 0) || !(v.Size.Height > 0):
		return errors.Wrapf(ErrInvalidViewport, "pixel size %vx%v", v.Size.Width, v.Size.Height)
	case math.IsNaN(v.PixelAspectRatio):
		return errors.Wrap(ErrInvalidViewport, "aspect ratio is NaN")
	}
	return nil
}

// VisibleHeight is the height of the visible world extent.
func (v Viewport) VisibleHeight() float64 {
	return v.Zoom * v.Size.Height / v.Size.Width
}

// PixelWidth is the horizontal world size of one pixel.
func (v Viewport) PixelWidth() float64 {
	return v.Zoom / v.Size.Width
}

// PixelHeight is the vertical world size of one pixel.
func (v Viewport) PixelHeight() float64 {
	return v.VisibleHeight() / v.Size.Height
}

// Envelope returns the visible world region, consistent with WorldToPixel.
// The aspect ratio moves the top edge only; the region is always
// VisibleHeight tall.
func (v Viewport) Envelope() Envelope {
	top := v.Center[1] + v.VisibleHeight()*0.5*v.PixelAspectRatio
	return Envelope{
		MinX: v.Center[0] - v.Zoom*0.5,
		MinY: top - v.VisibleHeight(),
		MaxX: v.Center[0] + v.Zoom*0.5,
		MaxY: top,
	}
}

// PixelToWorld is PixelToWorld with the envelope and scale taken from v.
func (v Viewport) PixelToWorld(p PixelPoint) orb.Point {
	return PixelToWorld(p, v.Envelope(), v.PixelWidth(), v.PixelHeight())
}

// Pan moves the view by a number of pixels. Positive dx shows more to the
// right, positive dy shows more below.
func (v Viewport) Pan(dx, dy float64) Viewport {
	v.Center = orb.Point{
		v.Center[0] + dx*v.PixelWidth(),
		v.Center[1] - dy*v.PixelHeight(),
	}
	return v
}

// ZoomBy magnifies the view around its center. factor > 1 zooms in.
func (v Viewport) ZoomBy(factor float64) Viewport {
	v.Zoom /= factor
	return v
}

// Resize keeps center and zoom and changes the pixel area.
func (v Viewport) Resize(size PixelSize) Viewport {
	v.Size = size
	return v
}

// FitBound centers b in a viewport of the given size, zoomed so the whole
// bound is visible. Degenerate bounds get a unit extent.
func FitBound(b orb.Bound, size PixelSize, aspect float64) Viewport {
	if aspect == 0 {
		aspect = 1
	}
	w := b.Max[0] - b.Min[0]
	h := b.Max[1] - b.Min[1]
	zoom := w
	valid := size.Width > 0 && size.Height > 0
	if valid {
		// widen until the height fits as well
		if byHeight := h * size.Width / size.Height; byHeight > zoom {
			zoom = byHeight
		}
	}
	zoom *= fitMargin
	if !(zoom > 0) {
		zoom = 1
	}
	center := b.Center()
	if valid {
		// the visible region sits (aspect-1)/2 heights above the center
		center[1] -= zoom * size.Height / size.Width * (aspect - 1) * 0.5
	}
	return Viewport{
		Center:           center,
		Zoom:             zoom,
		Size:             size,
		PixelAspectRatio: aspect,
	}
}
