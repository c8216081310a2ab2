package tui

import (
	"math"
	"sort"

	"geomap/internal/transform"
)

// dot is a position on the braille microgrid (2x4 dots per cell).
type dot struct{ x, y int }

func toDot(p transform.PixelPoint) dot {
	return dot{int(math.Floor(p.X)), int(math.Floor(p.Y))}
}

func toDots(ps []transform.PixelPoint) []dot {
	out := make([]dot, len(ps))
	for i, p := range ps {
		out[i] = toDot(p)
	}
	return out
}

type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &brailleBuf{w: w, h: h, m: m}
}

// dot bits indexed by [column][row] within a cell
var brailleBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

func (b *brailleBuf) set(d dot) {
	if d.x < 0 || d.y < 0 {
		return
	}
	cx, cy := d.x/dotsX, d.y/dotsY
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= brailleBits[d.x%dotsX][d.y%dotsY]
}

// line draws a segment with Bresenham.
func (b *brailleBuf) line(a, c dot) {
	x0, y0 := a.x, a.y
	dx := abs(c.x - x0)
	sx := -1
	if x0 < c.x {
		sx = 1
	}
	dy := -abs(c.y - y0)
	sy := -1
	if y0 < c.y {
		sy = 1
	}
	err := dx + dy
	for {
		b.set(dot{x0, y0})
		if x0 == c.x && y0 == c.y {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// path draws consecutive segments; closed joins the last dot to the first.
func (b *brailleBuf) path(ds []dot, closed bool) {
	if len(ds) == 1 {
		b.set(ds[0])
		return
	}
	for i := 1; i < len(ds); i++ {
		b.line(ds[i-1], ds[i])
	}
	if closed && len(ds) > 2 {
		b.line(ds[len(ds)-1], ds[0])
	}
}

// fill paints the interior of a set of rings with the even-odd rule, so
// holes stay empty.
func (b *brailleBuf) fill(rings [][]dot) {
	hDots := b.h * dotsY
	var xs []int
	for y := 0; y < hDots; y++ {
		xs = xs[:0]
		for _, r := range rings {
			if len(r) < 3 {
				continue
			}
			for i := range r {
				a, c := r[i], r[(i+1)%len(r)]
				if a.y == c.y {
					continue
				}
				if (y >= a.y && y < c.y) || (y >= c.y && y < a.y) {
					t := float64(y-a.y) / float64(c.y-a.y)
					xs = append(xs, int(float64(a.x)+t*float64(c.x-a.x)))
				}
			}
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := max(0, xs[i]); x <= xs[i+1] && x < b.w*dotsX; x++ {
				b.set(dot{x, y})
			}
		}
	}
}

func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		row := make([]rune, b.w)
		for x := 0; x < b.w; x++ {
			mask := b.m[y][x]
			if mask == 0 {
				row[x] = ' '
			} else {
				row[x] = rune(0x2800 + int(mask))
			}
		}
		out[y] = string(row)
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
