package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"helioplan/solar"
)

// handleCreateSession issues a token for a fresh anonymous workspace.
func (a *App) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := a.sessions.create()
	tok, err := signJWT(a.cfg.JWTSecret, sess.id)
	if err != nil {
		http.Error(w, "jwt error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(tokenResp{Token: tok})
}

// handleGeocode searches for an address and picks the best candidate.
// Zero matches is a distinct "address not found" outcome, not a provider
// failure.
func (a *App) handleGeocode(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		http.Error(w, "q is required", http.StatusBadRequest)
		return
	}

	results, err := a.geocoder.search(r.Context(), q)
	if err != nil {
		log.Printf("geocode %q: %v", q, err)
		http.Error(w, "address lookup unavailable", http.StatusBadGateway)
		return
	}
	best, ok := bestMatch(results)
	if !ok {
		http.Error(w, "address not found", http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(geocodeResp{Best: best, Results: results})
}

// handleSetLocation points the session at new coordinates and refreshes the
// irradiance sample. A provider failure falls back to the latitude-band
// estimate instead of failing the request. If a newer location change raced
// ahead, this result is discarded and reported as superseded.
func (a *App) handleSetLocation(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)

	var req locationReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.Lat < -90 || req.Lat > 90 || req.Lon < -180 || req.Lon > 180 {
		http.Error(w, "lat/lon out of range", http.StatusBadRequest)
		return
	}

	seq := sess.beginLocationChange()
	dailyHours, source, fallback := a.resolveDailyHours(r, req.Lat, req.Lon)

	sample := solar.NewSample(dailyHours, time.Now().UTC(), source)
	loc := location{Lat: req.Lat, Lon: req.Lon, Label: req.Label}
	applied := sess.applySample(seq, sample, loc)

	_ = json.NewEncoder(w).Encode(locationResp{
		Location:   loc,
		Irradiance: sample,
		Fallback:   fallback,
		Superseded: !applied,
	})
}

// resolveDailyHours consults the cache, then the weather provider, then the
// latitude fallback.
func (a *App) resolveDailyHours(r *http.Request, lat, lon float64) (hours float64, source string, fallback bool) {
	if cached, ok := a.cache.lookup(r.Context(), lat, lon); ok {
		return cached.DailyHours, cached.Source, false
	}

	hours, days, err := a.weather.fetchDailyHours(r.Context(), lat, lon)
	if err != nil {
		log.Printf("weather fetch (%.4f, %.4f): %v", lat, lon, err)
		return solar.FallbackDailyHours(lat), "latitude-estimate", true
	}
	log.Printf("weather fetch (%.4f, %.4f): %.2f h/day over %d days", lat, lon, hours, days)
	a.cache.store(r.Context(), lat, lon, hours, "weather")
	return hours, "weather", false
}
