package main

import (
	"encoding/json"
	"net/http"

	"helioplan/solar"
)

// handleSummary returns the whole session view: zones with metrics,
// portfolio totals, finances and the active irradiance sample.
func (a *App) handleSummary(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)
	_ = json.NewEncoder(w).Encode(a.buildSummary(sess))
}

func (a *App) buildSummary(sess *session) summaryResp {
	sample := sess.currentSample()
	zones := sess.store.Zones()

	out := summaryResp{
		Zones:      make([]zoneResp, 0, len(zones)),
		Totals:     solar.Aggregate(sess.store.Systems(), sample.DailyHours),
		Irradiance: sample,
		Drawing:    false,
	}
	for _, z := range zones {
		out.Zones = append(out.Zones, zoneView(sess, z))
	}
	out.Financial = solar.Finances(out.Totals, solar.DefaultPanelWattageWatts, a.cfg.PricePerWatt, a.cfg.PricePerKWh)

	if loc, ok := sess.currentLocation(); ok {
		out.Location = &loc
	}
	if sel, ok := sess.store.Selected(); ok {
		out.SelectedID = sel.ID
	}
	if id, ok := sess.store.Editing(); ok {
		out.EditingID = id
	}
	out.Drawing, _ = sess.store.Drawing()

	return out
}

// handleReport serves the plain-text estimate as a download.
func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)

	text := buildReport(a.buildSummary(sess))
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="solar_estimate.txt"`)
	_, _ = w.Write([]byte(text))
}
