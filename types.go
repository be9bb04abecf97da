package main

import (
	"encoding/json"

	"helioplan/planner"
	"helioplan/solar"
)

// Request/response DTOs. Keep them minimal and explicit.

type tokenResp struct {
	Token string `json:"token"`
}

type createZoneReq struct {
	Geometry  json.RawMessage   `json:"geometry"` // GeoJSON Polygon/MultiPolygon
	ShapeKind planner.ShapeKind `json:"shapeKind,omitempty"`
}

type geometryReq struct {
	Geometry json.RawMessage `json:"geometry"`
}

type panelCountReq struct {
	Count int `json:"count"`
}

type selectionReq struct {
	ID *string `json:"id"` // null clears the selection
}

type drawModeReq struct {
	Active    bool              `json:"active"`
	ShapeKind planner.ShapeKind `json:"shapeKind,omitempty"`
}

type locationReq struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label,omitempty"`
}

// zoneResp is a zone plus its derived solar figures.
type zoneResp struct {
	planner.Zone
	Metrics  solar.Estimate `json:"metrics"`
	Selected bool           `json:"selected"`
}

type geocodeResp struct {
	Best    place   `json:"best"`
	Results []place `json:"results"`
}

type locationResp struct {
	Location   location     `json:"location"`
	Irradiance solar.Sample `json:"irradiance"`
	Fallback   bool         `json:"fallback"`   // latitude-band estimate, not measured data
	Superseded bool         `json:"superseded"` // a newer search finished first; result discarded
}

type summaryResp struct {
	Zones      []zoneResp      `json:"zones"`
	Totals     solar.Totals    `json:"totals"`
	Financial  solar.Financial `json:"financial"`
	Irradiance solar.Sample    `json:"irradiance"`
	Location   *location       `json:"location,omitempty"`
	SelectedID string          `json:"selectedId,omitempty"`
	EditingID  string          `json:"editingId,omitempty"`
	Drawing    bool            `json:"drawing"`
}
