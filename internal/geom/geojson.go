package geom

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

// LoadGeoJSON reads a GeoJSON file. See DecodeGeoJSON.
func LoadGeoJSON(path string) (Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Data{}, errors.Wrap(err, "geojson")
	}
	return DecodeGeoJSON(b)
}

// DecodeGeoJSON accepts a FeatureCollection, a single Feature or a bare
// geometry. Feature properties become the attribute table, one row per
// feature, columns sorted by name.
func DecodeGeoJSON(b []byte) (Data, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return Data{}, errors.Wrap(err, "geojson")
	}

	var features []*geojson.Feature
	var d Data
	switch head.Type {
	case "":
		return Data{}, errors.New("geojson: missing type")
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(b)
		if err != nil {
			return Data{}, errors.Wrap(err, "geojson feature collection")
		}
		features = fc.Features
	case "Feature":
		f, err := geojson.UnmarshalFeature(b)
		if err != nil {
			return Data{}, errors.Wrap(err, "geojson feature")
		}
		features = []*geojson.Feature{f}
	default:
		g, err := geojson.UnmarshalGeometry(b)
		if err != nil {
			return Data{}, errors.Wrap(err, "geojson geometry")
		}
		d.Add(g.Geometry())
	}

	for _, f := range features {
		if f.Geometry != nil {
			d.Add(f.Geometry)
		}
	}
	if d.Empty() {
		return Data{}, errors.Wrap(ErrNoGeometry, "geojson")
	}
	d.Attrs = featureAttributes(features)
	return d, nil
}

// featureAttributes unions property keys across all features.
func featureAttributes(features []*geojson.Feature) Attributes {
	seen := map[string]bool{}
	var cols []string
	for _, f := range features {
		for k := range f.Properties {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	if len(cols) == 0 {
		return Attributes{}
	}
	sort.Strings(cols)

	rows := make([][]string, 0, len(features))
	for _, f := range features {
		vals := make([]string, 0, len(cols))
		for _, k := range cols {
			vals = append(vals, formatProperty(f.Properties[k]))
		}
		rows = append(rows, vals)
	}
	return Attributes{Columns: cols, Rows: rows}
}

func formatProperty(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		bs, _ := json.Marshal(t)
		return string(bs)
	}
}
