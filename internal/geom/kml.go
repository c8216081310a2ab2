package geom

import (
	"encoding/xml"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

type kmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

type kmlBoundary struct {
	Ring kmlCoords `xml:"LinearRing"`
}

type kmlPolygon struct {
	Outer kmlBoundary   `xml:"outerBoundaryIs"`
	Inner []kmlBoundary `xml:"innerBoundaryIs"`
}

type kmlMulti struct {
	Points   []kmlCoords  `xml:"Point"`
	Lines    []kmlCoords  `xml:"LineString"`
	Polygons []kmlPolygon `xml:"Polygon"`
	Multi    []kmlMulti   `xml:"MultiGeometry"`
}

type kmlPlacemark struct {
	Name string `xml:"name"`
	kmlMulti
}

// LoadKML reads a KML file. See DecodeKML.
func LoadKML(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, errors.Wrap(err, "kml")
	}
	defer f.Close()
	return DecodeKML(f)
}

// DecodeKML extracts Point, LineString and Polygon placemarks, nested
// MultiGeometry included. KML coordinates are "lon,lat[,alt]"; altitude is
// ignored. Placemark names become a one-column attribute table.
func DecodeKML(r io.Reader) (Data, error) {
	var placemarks []kmlPlacemark
	dec := xml.NewDecoder(r)
	// Placemarks may sit under Document or any Folder depth.
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Data{}, errors.Wrap(err, "kml")
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Placemark" {
			continue
		}
		var pm kmlPlacemark
		if err := dec.DecodeElement(&pm, &se); err != nil {
			return Data{}, errors.Wrap(err, "kml placemark")
		}
		placemarks = append(placemarks, pm)
	}

	var d Data
	for _, pm := range placemarks {
		before := d.Vertices()
		d.addKML(pm.kmlMulti)
		if d.Vertices() > before {
			d.Attrs.Rows = append(d.Attrs.Rows, []string{pm.Name})
		}
	}
	if d.Empty() {
		return Data{}, errors.Wrap(ErrNoGeometry, "kml")
	}
	d.Attrs.Columns = []string{"name"}
	return d, nil
}

func (d *Data) addKML(m kmlMulti) {
	for _, p := range m.Points {
		for _, pt := range parseKMLCoords(p.Coordinates) {
			d.Add(pt)
		}
	}
	for _, l := range m.Lines {
		d.Add(orb.LineString(parseKMLCoords(l.Coordinates)))
	}
	for _, p := range m.Polygons {
		poly := orb.Polygon{orb.Ring(parseKMLCoords(p.Outer.Ring.Coordinates))}
		for _, in := range p.Inner {
			poly = append(poly, orb.Ring(parseKMLCoords(in.Ring.Coordinates)))
		}
		d.Add(poly)
	}
	for _, sub := range m.Multi {
		d.addKML(sub)
	}
}

// parseKMLCoords reads whitespace separated "lon,lat[,alt]" tuples.
func parseKMLCoords(s string) []orb.Point {
	var out []orb.Point
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, orb.Point{lon, lat})
	}
	return out
}
