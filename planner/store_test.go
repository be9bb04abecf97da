package planner

import (
	"encoding/json"
	"errors"
	"testing"

	"gotest.tools/v3/assert"
)

// fixedArea measures geometry by reading an "area" property out of the raw
// JSON, so tests control areas without real coordinates.
func fixedArea(raw json.RawMessage) (float64, error) {
	var doc struct {
		Area *float64 `json:"area"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return 0, err
	}
	if doc.Area == nil {
		return 0, errors.New("no area")
	}
	return *doc.Area, nil
}

func geom(area float64) json.RawMessage {
	b, _ := json.Marshal(map[string]float64{"area": area})
	return b
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	s := NewStore(fixedArea)
	z1, ok := s.Create(geom(100), ShapePolygon)
	assert.Assert(t, ok)
	z2, ok := s.Create(geom(200), ShapeRectangle)
	assert.Assert(t, ok)

	assert.Equal(t, z1.ID, "zone_1")
	assert.Equal(t, z2.ID, "zone_2")
	assert.Equal(t, z1.PanelCount, 25)
	assert.Equal(t, z1.PanelWattageWatts, 400.0)
	assert.Equal(t, z1.PerformanceRatio, 0.85)
	assert.Equal(t, z2.AreaSquareMeters, 200.0)
}

func TestCreateNilGeometryIsNoOp(t *testing.T) {
	s := NewStore(fixedArea)
	_, ok := s.Create(nil, ShapePolygon)
	assert.Assert(t, !ok)
	assert.Equal(t, len(s.Zones()), 0)
}

func TestCreateUnmeasurableGeometryIsNoOp(t *testing.T) {
	s := NewStore(fixedArea)
	_, ok := s.Create(json.RawMessage(`{"bogus":true}`), ShapePolygon)
	assert.Assert(t, !ok)
	assert.Equal(t, len(s.Zones()), 0)
}

func TestIDsNeverReused(t *testing.T) {
	s := NewStore(fixedArea)
	z1, _ := s.Create(geom(100), ShapePolygon)
	assert.Assert(t, s.Delete(z1.ID))
	z2, _ := s.Create(geom(100), ShapePolygon)
	assert.Equal(t, z2.ID, "zone_2")
}

func TestCreateAutoSelects(t *testing.T) {
	s := NewStore(fixedArea)
	z1, _ := s.Create(geom(100), ShapePolygon)
	sel, ok := s.Selected()
	assert.Assert(t, ok)
	assert.Equal(t, sel.ID, z1.ID)

	z2, _ := s.Create(geom(200), ShapePolygon)
	sel, _ = s.Selected()
	assert.Equal(t, sel.ID, z2.ID)
}

func TestDeleteSelectedFallsBackToFirst(t *testing.T) {
	s := NewStore(fixedArea)
	z1, _ := s.Create(geom(100), ShapePolygon)
	z2, _ := s.Create(geom(200), ShapePolygon)
	z3, _ := s.Create(geom(300), ShapePolygon)

	assert.Assert(t, s.Select(z3.ID))
	assert.Assert(t, s.Delete(z3.ID))
	sel, ok := s.Selected()
	assert.Assert(t, ok)
	assert.Equal(t, sel.ID, z1.ID)

	// Deleting an unselected zone leaves selection alone.
	assert.Assert(t, s.Delete(z2.ID))
	sel, _ = s.Selected()
	assert.Equal(t, sel.ID, z1.ID)
}

func TestDeleteOnlyZoneClearsSelection(t *testing.T) {
	s := NewStore(fixedArea)
	z, _ := s.Create(geom(100), ShapePolygon)
	assert.Assert(t, s.Delete(z.ID))
	_, ok := s.Selected()
	assert.Assert(t, !ok)
	assert.Equal(t, len(s.Zones()), 0)
}

func TestDeleteUnknownIsNoOp(t *testing.T) {
	s := NewStore(fixedArea)
	s.Create(geom(100), ShapePolygon)
	assert.Assert(t, !s.Delete("zone_99"))
	assert.Equal(t, len(s.Zones()), 1)
}

func TestSelectUnknownIsNoOp(t *testing.T) {
	s := NewStore(fixedArea)
	z, _ := s.Create(geom(100), ShapePolygon)
	assert.Assert(t, !s.Select("zone_99"))
	sel, _ := s.Selected()
	assert.Equal(t, sel.ID, z.ID)
}

func TestClearSelection(t *testing.T) {
	s := NewStore(fixedArea)
	s.Create(geom(100), ShapePolygon)
	assert.Assert(t, s.Select(""))
	_, ok := s.Selected()
	assert.Assert(t, !ok)
}

func TestUpdateGeometryRecomputesArea(t *testing.T) {
	s := NewStore(fixedArea)
	z, _ := s.Create(geom(100), ShapePolygon)
	z.PanelCount = 40
	s.SetPanelCount(z.ID, 40)

	updated, ok := s.UpdateGeometry(z.ID, geom(250))
	assert.Assert(t, ok)
	assert.Equal(t, updated.AreaSquareMeters, 250.0)
	// Panel count must survive a geometry change.
	assert.Equal(t, updated.PanelCount, 40)
}

func TestUpdateGeometryUnknownIsNoOp(t *testing.T) {
	s := NewStore(fixedArea)
	_, ok := s.UpdateGeometry("zone_1", geom(100))
	assert.Assert(t, !ok)
}

func TestSetPanelCountClampsToZero(t *testing.T) {
	s := NewStore(fixedArea)
	z, _ := s.Create(geom(100), ShapePolygon)
	updated, ok := s.SetPanelCount(z.ID, -5)
	assert.Assert(t, ok)
	assert.Equal(t, updated.PanelCount, 0)
}

func TestSetPanelCountHasNoUpperBound(t *testing.T) {
	s := NewStore(fixedArea)
	z, _ := s.Create(geom(140), ShapePolygon)
	updated, ok := s.SetPanelCount(z.ID, 60)
	assert.Assert(t, ok)
	assert.Equal(t, updated.PanelCount, 60)
}

func TestEditCancelRestoresGeometryAndArea(t *testing.T) {
	s := NewStore(fixedArea)
	z, _ := s.Create(geom(100), ShapePolygon)

	assert.NilError(t, s.BeginEdit(z.ID))
	_, ok := s.UpdateGeometry(z.ID, geom(500))
	assert.Assert(t, ok)

	restored, ok := s.CancelEdit()
	assert.Assert(t, ok)
	assert.Equal(t, restored.AreaSquareMeters, 100.0)
	assert.DeepEqual(t, []byte(restored.Geometry), []byte(geom(100)))

	_, editing := s.Editing()
	assert.Assert(t, !editing)
}

func TestEditCommitKeepsNewGeometry(t *testing.T) {
	s := NewStore(fixedArea)
	z, _ := s.Create(geom(100), ShapePolygon)

	assert.NilError(t, s.BeginEdit(z.ID))
	s.UpdateGeometry(z.ID, geom(500))

	committed, ok := s.CommitEdit()
	assert.Assert(t, ok)
	assert.Equal(t, committed.AreaSquareMeters, 500.0)
}

func TestSecondEditRejected(t *testing.T) {
	s := NewStore(fixedArea)
	z1, _ := s.Create(geom(100), ShapePolygon)
	z2, _ := s.Create(geom(200), ShapePolygon)

	assert.NilError(t, s.BeginEdit(z1.ID))
	assert.ErrorIs(t, s.BeginEdit(z2.ID), ErrEditActive)

	// Same zone again is tolerated and keeps the original snapshot.
	assert.NilError(t, s.BeginEdit(z1.ID))
}

func TestOrphanedEditSwept(t *testing.T) {
	s := NewStore(fixedArea)
	z1, _ := s.Create(geom(100), ShapePolygon)
	z2, _ := s.Create(geom(200), ShapePolygon)

	assert.NilError(t, s.BeginEdit(z1.ID))
	assert.Assert(t, s.Delete(z1.ID))

	// The orphaned session is discarded, so editing z2 proceeds.
	assert.NilError(t, s.BeginEdit(z2.ID))
	id, editing := s.Editing()
	assert.Assert(t, editing)
	assert.Equal(t, id, z2.ID)
}

func TestCommitWithoutSessionIsNoOp(t *testing.T) {
	s := NewStore(fixedArea)
	_, ok := s.CommitEdit()
	assert.Assert(t, !ok)
	_, ok = s.CancelEdit()
	assert.Assert(t, !ok)
}

func TestDrawingToggle(t *testing.T) {
	s := NewStore(fixedArea)
	s.SetDrawing(true, ShapeRectangle)
	active, kind := s.Drawing()
	assert.Assert(t, active)
	assert.Equal(t, kind, ShapeRectangle)

	// Starting a new draw replaces the previous tool.
	s.SetDrawing(true, ShapePolygon)
	_, kind = s.Drawing()
	assert.Equal(t, kind, ShapePolygon)

	s.SetDrawing(false, "")
	active, kind = s.Drawing()
	assert.Assert(t, !active)
	assert.Equal(t, kind, ShapeKind(""))
}

func TestSelectionInvariantUnderChurn(t *testing.T) {
	s := NewStore(fixedArea)
	for i := 0; i < 5; i++ {
		s.Create(geom(float64(100+i)), ShapePolygon)
	}
	// Repeatedly delete whatever is selected: selection must always land on
	// the first remaining zone, then clear once the store empties.
	for {
		sel, ok := s.Selected()
		if !ok {
			break
		}
		assert.Assert(t, s.Delete(sel.ID))
		zones := s.Zones()
		next, ok := s.Selected()
		if len(zones) == 0 {
			assert.Assert(t, !ok)
			break
		}
		assert.Assert(t, ok)
		assert.Equal(t, next.ID, zones[0].ID)
	}
	assert.Equal(t, len(s.Zones()), 0)
}
