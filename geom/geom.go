// Package geom decodes GeoJSON polygons and measures their surface area.
package geom

import (
	"encoding/json"
	"errors"
	"math"
)

const earthRadiusMeters = 6378137.0

var (
	ErrEmptyGeometry = errors.New("geom: empty geometry")
	ErrBadGeometry   = errors.New("geom: geometry must be a Polygon or MultiPolygon")
)

// Polygon is one outer ring plus optional hole rings, each ring a list of
// [lon, lat] positions as they arrive in GeoJSON coordinate order.
type Polygon struct {
	Rings [][]Position
}

// Position is a single [lon, lat] vertex.
type Position struct {
	Lon float64
	Lat float64
}

type rawGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// Decode parses a GeoJSON geometry object into polygons. MultiPolygon yields
// one Polygon per member. Anything that is not a (Multi)Polygon is rejected.
func Decode(raw json.RawMessage) ([]Polygon, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyGeometry
	}
	var g rawGeometry
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, err
	}
	switch g.Type {
	case "Polygon":
		var rings [][][2]float64
		if err := json.Unmarshal(g.Coordinates, &rings); err != nil {
			return nil, err
		}
		return []Polygon{fromRings(rings)}, nil
	case "MultiPolygon":
		var members [][][][2]float64
		if err := json.Unmarshal(g.Coordinates, &members); err != nil {
			return nil, err
		}
		out := make([]Polygon, 0, len(members))
		for _, rings := range members {
			out = append(out, fromRings(rings))
		}
		return out, nil
	default:
		return nil, ErrBadGeometry
	}
}

func fromRings(rings [][][2]float64) Polygon {
	p := Polygon{Rings: make([][]Position, 0, len(rings))}
	for _, ring := range rings {
		pts := make([]Position, 0, len(ring))
		for _, c := range ring {
			pts = append(pts, Position{Lon: c[0], Lat: c[1]})
		}
		p.Rings = append(p.Rings, pts)
	}
	return p
}

// Area returns the geodesic surface area of raw GeoJSON geometry in square
// meters. Hole rings subtract from their outer ring. Returns 0 together with
// the decode error for null or degenerate input, never a negative value.
func Area(raw json.RawMessage) (float64, error) {
	polys, err := Decode(raw)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, p := range polys {
		total += p.Area()
	}
	return total, nil
}

// Area returns the polygon's surface area in square meters.
func (p Polygon) Area() float64 {
	if len(p.Rings) == 0 {
		return 0
	}
	area := ringArea(p.Rings[0])
	for _, hole := range p.Rings[1:] {
		area -= ringArea(hole)
	}
	if area < 0 {
		return 0
	}
	return area
}

// ringArea computes the unsigned spherical-excess area of one ring. The
// planar shoelace sum generalizes to a sphere by weighting each edge's
// longitude span with the sines of its endpoint latitudes.
func ringArea(ring []Position) float64 {
	n := len(ring)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		a := ring[i]
		b := ring[(i+1)%n]
		sum += rad(b.Lon-a.Lon) * (2 + math.Sin(rad(a.Lat)) + math.Sin(rad(b.Lat)))
	}
	return math.Abs(sum * earthRadiusMeters * earthRadiusMeters / 2)
}

func rad(deg float64) float64 { return deg * math.Pi / 180 }
