package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"helioplan/planner"
	"helioplan/solar"

	"github.com/go-chi/chi/v5"
)

// zoneView attaches derived metrics and selection state to a zone snapshot.
func zoneView(sess *session, z planner.Zone) zoneResp {
	sel, _ := sess.store.Selected()
	return zoneResp{
		Zone:     z,
		Metrics:  solar.Assess(z.System(), sess.currentSample().DailyHours),
		Selected: sel.ID == z.ID,
	}
}

// handleCreateZone adds a drawn zone. A shape that cannot be measured is
// skipped silently per the drawing contract: the map layer already discarded
// it, so the store stays untouched and the client gets no zone back.
func (a *App) handleCreateZone(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)

	var req createZoneReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	kind := req.ShapeKind
	if kind == "" {
		kind = planner.ShapePolygon
	}
	if kind != planner.ShapePolygon && kind != planner.ShapeRectangle {
		http.Error(w, "shapeKind must be polygon or rectangle", http.StatusBadRequest)
		return
	}

	z, ok := sess.store.Create(req.Geometry, kind)
	if !ok {
		log.Printf("session %s: skipped zone with invalid geometry", sess.id)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(zoneView(sess, z))
}

// handleListZones returns every zone with its metrics.
func (a *App) handleListZones(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)

	zones := sess.store.Zones()
	out := make([]zoneResp, 0, len(zones))
	for _, z := range zones {
		out = append(out, zoneView(sess, z))
	}
	_ = json.NewEncoder(w).Encode(out)
}

// handleGetZone returns a single zone by id.
func (a *App) handleGetZone(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)

	z, ok := sess.store.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(zoneView(sess, z))
}

// handleUpdateGeometry swaps a zone's shape and re-measures its area.
func (a *App) handleUpdateGeometry(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)
	id := chi.URLParam(r, "id")

	var req geometryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if _, ok := sess.store.Get(id); !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	z, ok := sess.store.UpdateGeometry(id, req.Geometry)
	if !ok {
		http.Error(w, "invalid geometry", http.StatusBadRequest)
		return
	}
	_ = json.NewEncoder(w).Encode(zoneView(sess, z))
}

// handleSetPanelCount moves the panel slider. Counts above the recommended
// maximum are accepted; the response carries the warning flag.
func (a *App) handleSetPanelCount(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)

	var req panelCountReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	z, ok := sess.store.SetPanelCount(chi.URLParam(r, "id"), req.Count)
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(zoneView(sess, z))
}

// handleDeleteZone removes a zone; selection falls back inside the store.
func (a *App) handleDeleteZone(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)

	if !sess.store.Delete(chi.URLParam(r, "id")) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// handleSelection sets or clears the selected zone.
func (a *App) handleSelection(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)

	var req selectionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	id := ""
	if req.ID != nil {
		id = *req.ID
	}
	if !sess.store.Select(id) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// handleBeginEdit opens the single edit session for a zone.
func (a *App) handleBeginEdit(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)
	id := chi.URLParam(r, "id")

	if _, ok := sess.store.Get(id); !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err := sess.store.BeginEdit(id); err != nil {
		if errors.Is(err, planner.ErrEditActive) {
			http.Error(w, "another edit is in progress", http.StatusConflict)
			return
		}
		http.Error(w, "edit error", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"editing": id})
}

// handleCommitEdit keeps the edited geometry.
func (a *App) handleCommitEdit(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)

	z, ok := sess.store.CommitEdit()
	if !ok {
		w.WriteHeader(http.StatusNoContent) // no live edit session
		return
	}
	_ = json.NewEncoder(w).Encode(zoneView(sess, z))
}

// handleCancelEdit restores the pre-edit geometry.
func (a *App) handleCancelEdit(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)

	z, ok := sess.store.CancelEdit()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	_ = json.NewEncoder(w).Encode(zoneView(sess, z))
}

// handleDrawMode toggles the drawing tool. Activating while a draw is
// already active replaces it.
func (a *App) handleDrawMode(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)

	var req drawModeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.Active && req.ShapeKind != planner.ShapePolygon && req.ShapeKind != planner.ShapeRectangle {
		http.Error(w, "shapeKind must be polygon or rectangle", http.StatusBadRequest)
		return
	}
	sess.store.SetDrawing(req.Active, req.ShapeKind)
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}
