package geom

import (
	"strings"

	"github.com/paulmach/orb/encoding/wkt"
	"github.com/pkg/errors"
)

// ParseWKT parses one WKT geometry, or several separated by newlines.
// Any WKT type orb understands is accepted, GEOMETRYCOLLECTION included.
func ParseWKT(s string) (Data, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Data{}, errors.New("empty wkt")
	}
	var d Data
	for n, line := range splitWKT(s) {
		g, err := wkt.Unmarshal(line)
		if err != nil {
			return Data{}, errors.Wrapf(err, "wkt geometry %d", n+1)
		}
		d.Add(g)
	}
	if d.Empty() {
		return Data{}, errors.Wrap(ErrNoGeometry, "wkt")
	}
	return d, nil
}

// splitWKT splits on newlines that fall outside parentheses, so a single
// geometry may still be wrapped over several lines.
func splitWKT(s string) []string {
	var out []string
	depth, start := 0, 0
	flush := func(end int) {
		if part := strings.Join(strings.Fields(s[start:end]), " "); part != "" {
			out = append(out, part)
		}
		start = end + 1
	}
	for i, ch := range s {
		switch ch {
		case '(':
			depth++
		case ')':
			depth--
		case '\n':
			if depth == 0 {
				flush(i)
			}
		}
	}
	flush(len(s))
	return out
}
