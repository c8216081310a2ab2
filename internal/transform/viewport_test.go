package transform_test

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "geomap/internal/transform"
)

func TestViewport_Validate(t *testing.T) {
	for _, tc := range []struct {
		name string
		v    Viewport
		ok   bool
	}{
		{"valid", sampleViewport(), true},
		{"zero zoom", Viewport{Zoom: 0, Size: PixelSize{10, 10}, PixelAspectRatio: 1}, false},
		{"negative zoom", Viewport{Zoom: -1, Size: PixelSize{10, 10}, PixelAspectRatio: 1}, false},
		{"nan zoom", Viewport{Zoom: math.NaN(), Size: PixelSize{10, 10}, PixelAspectRatio: 1}, false},
		{"zero width", Viewport{Zoom: 1, Size: PixelSize{0, 10}, PixelAspectRatio: 1}, false},
		{"zero height", Viewport{Zoom: 1, Size: PixelSize{10, 0}, PixelAspectRatio: 1}, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.v.Validate()
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrInvalidViewport), "got %v", err)
		})
	}
}

func TestNewViewport(t *testing.T) {
	v, err := NewViewport(orb.Point{1, 2}, 10, PixelSize{100, 50}, 1)
	require.NoError(t, err)
	assert.Equal(t, orb.Point{1, 2}, v.Center)

	_, err = NewViewport(orb.Point{}, 10, PixelSize{}, 1)
	assert.True(t, errors.Is(err, ErrInvalidViewport))
}

func TestViewport_Pan(t *testing.T) {
	v := sampleViewport().Pan(10, 4)
	assert.Equal(t, orb.Point{5, -2}, v.Center)
	// the world point that sat at pixel (10,4) now sits at the origin pixel
	assertPixel(t, PixelPoint{0, 0}, WorldToPixel(orb.Point{-45, 23}, v))
}

func TestViewport_ZoomBy(t *testing.T) {
	v := sampleViewport().ZoomBy(2)
	assert.Equal(t, 50.0, v.Zoom)
	assertPixel(t, PixelPoint{100, 50}, WorldToPixel(orb.Point{0, 0}, v))
	assertPixel(t, PixelPoint{0, 0}, WorldToPixel(orb.Point{-25, 12.5}, v))
}

func TestViewport_Resize(t *testing.T) {
	v := sampleViewport().Resize(PixelSize{400, 400})
	assert.Equal(t, 100.0, v.VisibleHeight())
	assert.Equal(t, 0.25, v.PixelWidth())
}

func TestFitBound(t *testing.T) {
	b := orb.Bound{Min: orb.Point{10, 10}, Max: orb.Point{30, 50}}
	v := FitBound(b, PixelSize{200, 100}, 1)
	require.NoError(t, v.Validate())
	assert.Equal(t, orb.Point{20, 30}, v.Center)

	env := v.Envelope()
	assert.True(t, env.Contains(b.Min))
	assert.True(t, env.Contains(b.Max))
	assert.InDelta(t, 40*1.05, env.MaxY-env.MinY, eps)
}

func TestFitBound_degenerate(t *testing.T) {
	b := orb.Bound{Min: orb.Point{3, 4}, Max: orb.Point{3, 4}}
	v := FitBound(b, PixelSize{80, 40}, 0)
	require.NoError(t, v.Validate())
	assert.Equal(t, 1.0, v.Zoom)
	assert.Equal(t, 1.0, v.PixelAspectRatio)
	assertPixel(t, PixelPoint{40, 20}, WorldToPixel(orb.Point{3, 4}, v))
}

func TestEnvelope_Bound(t *testing.T) {
	env := Envelope{MinX: 1, MinY: 2, MaxX: 3, MaxY: 4}
	assert.Equal(t, env, EnvelopeFromBound(env.Bound()))
}

func TestViewport_EnvelopeWithAspect(t *testing.T) {
	v := sampleViewport()
	v.PixelAspectRatio = 2
	env := v.Envelope()
	assert.Equal(t, Envelope{MinX: -50, MinY: 0, MaxX: 50, MaxY: 50}, env)

	assertPixel(t, PixelPoint{0, 0}, WorldToPixel(orb.Point{env.MinX, env.MaxY}, v))
	assertPixel(t, PixelPoint{200, 100}, WorldToPixel(orb.Point{env.MaxX, env.MinY}, v))

	for _, p := range []orb.Point{{0, 0}, {-50, 50}, {12.5, -7}} {
		assertWorld(t, p, v.PixelToWorld(WorldToPixel(p, v)))
	}
}

func TestFitBound_aspect(t *testing.T) {
	b := orb.Bound{Min: orb.Point{-10, -40}, Max: orb.Point{10, 40}}
	size := PixelSize{200, 100}
	for _, aspect := range []float64{0.5, 1, 2} {
		v := FitBound(b, size, aspect)
		require.NoError(t, v.Validate())
		env := v.Envelope()
		assert.True(t, env.Contains(b.Min), "aspect %v", aspect)
		assert.True(t, env.Contains(b.Max), "aspect %v", aspect)

		for _, p := range []orb.Point{b.Min, b.Max} {
			px := WorldToPixel(p, v)
			assert.True(t, px.X >= 0 && px.X <= size.Width, "aspect %v x %v", aspect, px.X)
			assert.True(t, px.Y >= 0 && px.Y <= size.Height, "aspect %v y %v", aspect, px.Y)
		}
		// the bound sits in the middle of the view
		assert.InDelta(t, (env.MinY+env.MaxY)/2, 0, eps, "aspect %v", aspect)
	}
}
