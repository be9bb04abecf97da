// Package planner owns the in-memory collection of user-drawn rooftop zones:
// creation, selection, panel sizing, and the single-slot edit session.
package planner

import (
	"encoding/json"
	"time"

	"helioplan/solar"
)

// ShapeKind distinguishes the drawing tool that produced a zone.
type ShapeKind string

const (
	ShapePolygon   ShapeKind = "polygon"
	ShapeRectangle ShapeKind = "rectangle"
)

// Zone is one drawn rooftop region. Geometry is the raw GeoJSON handed over
// by the map layer; the store never edits it, only swaps it wholesale and
// re-measures the area.
type Zone struct {
	ID                string          `json:"id"`
	ShapeKind         ShapeKind       `json:"shapeKind"`
	Geometry          json.RawMessage `json:"geometry"`
	AreaSquareMeters  float64         `json:"areaSquareMeters"`
	PanelCount        int             `json:"panelCount"`
	PanelWattageWatts float64         `json:"panelWattageWatts"`
	PerformanceRatio  float64         `json:"performanceRatio"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// System maps the zone onto the solar calculator's input.
func (z Zone) System() solar.System {
	return solar.System{
		PanelCount:        z.PanelCount,
		PanelWattageWatts: z.PanelWattageWatts,
		PerformanceRatio:  z.PerformanceRatio,
		AreaSquareMeters:  z.AreaSquareMeters,
	}
}
