package projector

import (
	"runtime"
	"sync"

	"github.com/paulmach/orb"

	"geomap/internal/transform"
)

// minChunk keeps goroutine overhead below the cost of the work it carries.
const minChunk = 4096

// ProjectLineStringConcurrent is ProjectLineString with the vertex range
// split across up to workers goroutines. Each goroutine writes a disjoint
// part of the output, so order matches the input. workers <= 0 means
// GOMAXPROCS.
func ProjectLineStringConcurrent(ls orb.LineString, v transform.Viewport, workers int) []transform.PixelPoint {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if n := (len(ls) + minChunk - 1) / minChunk; n < workers {
		workers = n
	}
	if workers <= 1 {
		return ProjectLineString(ls, v)
	}

	out := make([]transform.PixelPoint, len(ls))
	chunk := (len(ls) + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < len(ls); lo += chunk {
		hi := min(lo+chunk, len(ls))
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				out[i] = transform.WorldToPixel(ls[i], v)
			}
		}(lo, hi)
	}
	wg.Wait()
	return out
}
