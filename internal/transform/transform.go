// Package transform converts between world coordinates and the pixel
// coordinates of a rendered viewport.
//
// World y grows upward and pixel y grows downward, so the y axis is flipped.
// Only translation and scale are applied: no rotation or shear.
package transform

import "github.com/paulmach/orb"

// PixelPoint is a screen-space coordinate. Values are fractional and are not
// rounded to device pixels.
type PixelPoint struct {
	X float64
	Y float64
}

// WorldToPixel maps a world point into the pixel space of v.
//
// v is not validated here; a degenerate viewport yields NaN or Inf.
func WorldToPixel(p orb.Point, v Viewport) PixelPoint {
	height := v.Zoom * v.Size.Height / v.Size.Width
	left := v.Center[0] - v.Zoom*0.5
	top := v.Center[1] + height*0.5*v.PixelAspectRatio
	pixelWidth := v.Zoom / v.Size.Width
	pixelHeight := height / v.Size.Height
	return PixelPoint{
		X: (p[0] - left) / pixelWidth,
		Y: (top - p[1]) / pixelHeight,
	}
}

// PixelToWorld maps a pixel back to world space using the visible envelope
// and the per-pixel world scale. It is the inverse of WorldToPixel only when
// env, pixelWidth and pixelHeight come from the same viewport.
func PixelToWorld(p PixelPoint, env Envelope, pixelWidth, pixelHeight float64) orb.Point {
	return orb.Point{
		env.MinX + p.X*pixelWidth,
		env.MaxY - p.Y*pixelHeight,
	}
}
