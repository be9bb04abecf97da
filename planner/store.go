package planner

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"helioplan/solar"
)

// ErrEditActive is returned by BeginEdit while a different zone's edit
// session is still open.
var ErrEditActive = errors.New("planner: another edit session is active")

// AreaFunc measures raw GeoJSON geometry in square meters.
type AreaFunc func(json.RawMessage) (float64, error)

// editSession snapshots a zone's geometry so an in-progress edit can be
// rolled back exactly. At most one exists per store.
type editSession struct {
	zoneID   string
	geometry json.RawMessage
	area     float64
}

// Store is the authoritative zone collection for one browser session.
// Operations are total: unknown ids and empty collections are no-ops, never
// errors. HTTP handlers run concurrently, so mutations are serialized by a
// mutex even though each session is logically single-writer.
type Store struct {
	mu       sync.Mutex
	area     AreaFunc
	nextID   int
	zones    []*Zone
	selected string
	edit     *editSession
	drawing  bool
	drawKind ShapeKind
}

// NewStore builds an empty store measuring geometry with the given function.
func NewStore(area AreaFunc) *Store {
	return &Store{area: area}
}

// Create appends a new zone with default panel configuration and selects it.
// Nil or unmeasurable geometry skips creation and reports ok=false.
func (s *Store) Create(geometry json.RawMessage, kind ShapeKind) (Zone, bool) {
	if len(geometry) == 0 {
		return Zone{}, false
	}
	area, err := s.area(geometry)
	if err != nil {
		return Zone{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	z := &Zone{
		ID:                fmt.Sprintf("zone_%d", s.nextID),
		ShapeKind:         kind,
		Geometry:          geometry,
		AreaSquareMeters:  area,
		PanelCount:        solar.DefaultPanelCount,
		PanelWattageWatts: solar.DefaultPanelWattageWatts,
		PerformanceRatio:  solar.DefaultPerformanceRatio,
		CreatedAt:         time.Now().UTC(),
	}
	s.zones = append(s.zones, z)
	s.selected = z.ID
	return *z, true
}

// UpdateGeometry swaps a zone's geometry and re-measures its area. The panel
// count is untouched. No-op when the id is unknown or the new geometry does
// not measure.
func (s *Store) UpdateGeometry(id string, geometry json.RawMessage) (Zone, bool) {
	if len(geometry) == 0 {
		return Zone{}, false
	}
	area, err := s.area(geometry)
	if err != nil {
		return Zone{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	z := s.find(id)
	if z == nil {
		return Zone{}, false
	}
	z.Geometry = geometry
	z.AreaSquareMeters = area
	return *z, true
}

// SetPanelCount updates a zone's panel count, clamped to zero. There is no
// upper bound here; the recommended maximum is advisory and surfaced by the
// metrics layer.
func (s *Store) SetPanelCount(id string, count int) (Zone, bool) {
	if count < 0 {
		count = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	z := s.find(id)
	if z == nil {
		return Zone{}, false
	}
	z.PanelCount = count
	return *z, true
}

// Select marks the given zone as selected; the empty id clears selection.
// Selecting an unknown id is a no-op.
func (s *Store) Select(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		s.selected = ""
		return true
	}
	if s.find(id) == nil {
		return false
	}
	s.selected = id
	return true
}

// Selected returns the currently selected zone, if any.
func (s *Store) Selected() (Zone, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	z := s.find(s.selected)
	if z == nil {
		return Zone{}, false
	}
	return *z, true
}

// Delete removes a zone. If it was selected, selection falls back to the
// first remaining zone, or clears when the store empties. An edit session
// pointing at the deleted zone is left orphaned and swept by the next
// begin/commit/cancel call.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, z := range s.zones {
		if z.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	s.zones = append(s.zones[:idx], s.zones[idx+1:]...)
	if s.selected == id {
		if len(s.zones) > 0 {
			s.selected = s.zones[0].ID
		} else {
			s.selected = ""
		}
	}
	return true
}

// Get returns a zone by id.
func (s *Store) Get(id string) (Zone, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	z := s.find(id)
	if z == nil {
		return Zone{}, false
	}
	return *z, true
}

// Zones returns value snapshots of every zone in creation order.
func (s *Store) Zones() []Zone {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Zone, 0, len(s.zones))
	for _, z := range s.zones {
		out = append(out, *z)
	}
	return out
}

// Systems returns the solar configuration of every zone, for aggregation.
func (s *Store) Systems() []solar.System {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]solar.System, 0, len(s.zones))
	for _, z := range s.zones {
		out = append(out, z.System())
	}
	return out
}

// BeginEdit opens the edit session for a zone, snapshotting its geometry.
// A session already open for another live zone rejects the call; a session
// orphaned by deletion is discarded. Re-beginning the same zone keeps the
// original snapshot.
func (s *Store) BeginEdit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepOrphanedEdit()
	z := s.find(id)
	if z == nil {
		return nil // unknown id: no-op by contract
	}
	if s.edit != nil {
		if s.edit.zoneID == id {
			return nil
		}
		return ErrEditActive
	}
	snapshot := make(json.RawMessage, len(z.Geometry))
	copy(snapshot, z.Geometry)
	s.edit = &editSession{zoneID: z.ID, geometry: snapshot, area: z.AreaSquareMeters}
	return nil
}

// CommitEdit keeps whatever geometry the zone now carries, re-measures it,
// and closes the session. No-op without a live session.
func (s *Store) CommitEdit() (Zone, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepOrphanedEdit()
	if s.edit == nil {
		return Zone{}, false
	}
	z := s.find(s.edit.zoneID)
	s.edit = nil
	if area, err := s.area(z.Geometry); err == nil {
		z.AreaSquareMeters = area
	}
	return *z, true
}

// CancelEdit restores the snapshotted geometry and area and closes the
// session. No-op without a live session.
func (s *Store) CancelEdit() (Zone, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepOrphanedEdit()
	if s.edit == nil {
		return Zone{}, false
	}
	z := s.find(s.edit.zoneID)
	z.Geometry = s.edit.geometry
	z.AreaSquareMeters = s.edit.area
	if area, err := s.area(z.Geometry); err == nil {
		z.AreaSquareMeters = area
	}
	s.edit = nil
	return *z, true
}

// Editing reports the zone id of the open edit session, if any.
func (s *Store) Editing() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepOrphanedEdit()
	if s.edit == nil {
		return "", false
	}
	return s.edit.zoneID, true
}

// SetDrawing toggles drawing mode. Activating while already drawing replaces
// the previous draw (the old one is implicitly cancelled by the map layer).
func (s *Store) SetDrawing(active bool, kind ShapeKind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drawing = active
	if active {
		s.drawKind = kind
	} else {
		s.drawKind = ""
	}
}

// Drawing reports whether drawing mode is active and with which tool.
func (s *Store) Drawing() (bool, ShapeKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawing, s.drawKind
}

// find returns the live zone for an id, or nil. Callers hold s.mu.
func (s *Store) find(id string) *Zone {
	if id == "" {
		return nil
	}
	for _, z := range s.zones {
		if z.ID == id {
			return z
		}
	}
	return nil
}

// sweepOrphanedEdit drops an edit session whose zone has been deleted.
// Callers hold s.mu.
func (s *Store) sweepOrphanedEdit() {
	if s.edit != nil && s.find(s.edit.zoneID) == nil {
		s.edit = nil
	}
}
