package geom

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Supported reports whether Load understands the file extension of path.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json", ".csv", ".kml", ".wkt":
		return true
	}
	return false
}

// Load picks a decoder from the file extension.
func Load(path string) (Data, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".geojson", ".json":
		return LoadGeoJSON(path)
	case ".csv":
		return LoadCSV(path)
	case ".kml":
		return LoadKML(path)
	case ".wkt":
		b, err := os.ReadFile(path)
		if err != nil {
			return Data{}, errors.Wrap(err, "wkt")
		}
		return ParseWKT(string(b))
	}
	return Data{}, errors.Errorf("unsupported file: %q", ext)
}
