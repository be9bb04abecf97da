// file: weather_client.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/montanaflynn/stats"
)

// weatherClient fetches recent daily solar radiation for a point and reduces
// it to peak sun hours per day.
type weatherClient struct {
	baseURL string
	client  *http.Client
}

func newWeatherClient(baseURL string) *weatherClient {
	return &weatherClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 25 * time.Second},
	}
}

// radiationResp is the Open-Meteo daily block: shortwave radiation sums in
// MJ/m^2 per day. Missing days arrive as null.
type radiationResp struct {
	Daily struct {
		Time                  []string   `json:"time"`
		ShortwaveRadiationSum []*float64 `json:"shortwave_radiation_sum"`
	} `json:"daily"`
}

// megajoulesPerKWh converts a daily radiation sum to equivalent full-sun
// hours: 1 kWh/m^2 (= 1 peak sun hour) is 3.6 MJ/m^2.
const megajoulesPerKWh = 3.6

// fetchDailyHours returns average peak sun hours per day over the trailing
// 30-day window, plus the number of days backing the figure.
func (c *weatherClient) fetchDailyHours(ctx context.Context, lat, lon float64) (float64, int, error) {
	u := fmt.Sprintf("%s/v1/forecast?latitude=%.4f&longitude=%.4f&daily=shortwave_radiation_sum&past_days=30&forecast_days=1&timezone=UTC",
		c.baseURL, lat, lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("weather call failed: %w", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, 0, fmt.Errorf("weather non-2xx: %s, body: %s", resp.Status, string(data))
	}

	var out radiationResp
	if err := json.Unmarshal(data, &out); err != nil {
		return 0, 0, fmt.Errorf("decode weather resp: %w", err)
	}

	series := make([]float64, 0, len(out.Daily.ShortwaveRadiationSum))
	for _, mj := range out.Daily.ShortwaveRadiationSum {
		if mj == nil || *mj < 0 {
			continue
		}
		series = append(series, *mj/megajoulesPerKWh)
	}
	if len(series) == 0 {
		return 0, 0, fmt.Errorf("weather resp has no radiation data")
	}

	mean, err := stats.Mean(series)
	if err != nil {
		return 0, 0, fmt.Errorf("reduce radiation series: %w", err)
	}
	return mean, len(series), nil
}
