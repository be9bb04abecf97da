// file: geocode_client.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// place is one geocoder candidate for a searched address.
type place struct {
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	DisplayName    string  `json:"displayName"`
	Type           string  `json:"type"`
	HasHouseNumber bool    `json:"hasHouseNumber"`
}

// geocodeClient talks to a Nominatim-compatible search endpoint.
type geocodeClient struct {
	baseURL string
	client  *http.Client
}

func newGeocodeClient(baseURL string) *geocodeClient {
	return &geocodeClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// nominatim wire format: coordinates arrive as strings.
type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Type        string `json:"type"`
	Address     struct {
		HouseNumber string `json:"house_number"`
	} `json:"address"`
}

// search queries the geocoder. An empty result slice is a valid answer
// (address not found), not an error.
func (c *geocodeClient) search(ctx context.Context, query string) ([]place, error) {
	u := fmt.Sprintf("%s/search?q=%s&format=json&addressdetails=1&limit=10",
		c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoder call failed: %w", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("geocoder non-2xx: %s, body: %s", resp.Status, string(data))
	}

	var raw []nominatimPlace
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode geocoder resp: %w", err)
	}

	out := make([]place, 0, len(raw))
	for _, p := range raw {
		lat, errLat := strconv.ParseFloat(p.Lat, 64)
		lon, errLon := strconv.ParseFloat(p.Lon, 64)
		if errLat != nil || errLon != nil {
			continue
		}
		out = append(out, place{
			Lat:            lat,
			Lon:            lon,
			DisplayName:    p.DisplayName,
			Type:           p.Type,
			HasHouseNumber: p.Address.HouseNumber != "",
		})
	}
	return out, nil
}

// bestMatch picks the candidate to center the map on: an exact house-number
// hit wins, then a settlement (city/town/village), then the first result.
// ok is false when the list is empty.
func bestMatch(places []place) (place, bool) {
	if len(places) == 0 {
		return place{}, false
	}
	for _, p := range places {
		if p.HasHouseNumber {
			return p, true
		}
	}
	for _, p := range places {
		switch p.Type {
		case "city", "town", "village":
			return p, true
		}
	}
	return places[0], true
}
