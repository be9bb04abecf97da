package solar

// Totals is the portfolio-level roll-up across every zone.
type Totals struct {
	ZoneCount        int     `json:"zoneCount"`
	AreaSquareMeters float64 `json:"areaSquareMeters"`
	PanelCount       int     `json:"panelCount"`
	SystemSizeKW     float64 `json:"systemSizeKw"`
	AnnualOutputKWh  float64 `json:"annualOutputKwh"`
	EfficiencyScore  int     `json:"efficiencyScore"`
}

// Aggregate sums per-zone figures and scores the portfolio once, from the
// summed output over the summed size, so larger systems weigh in
// proportionally instead of averaging per-zone scores. An empty slice yields
// zero totals.
func Aggregate(systems []System, dailySunHours float64) Totals {
	var t Totals
	for _, sys := range systems {
		size := SystemSizeKW(sys.PanelCount, sys.PanelWattageWatts)
		t.ZoneCount++
		t.AreaSquareMeters += sys.AreaSquareMeters
		t.PanelCount += sys.PanelCount
		t.SystemSizeKW += size
		t.AnnualOutputKWh += AnnualOutputKWh(size, dailySunHours, sys.PerformanceRatio)
	}
	t.EfficiencyScore = EfficiencyScore(t.AnnualOutputKWh, t.SystemSizeKW)
	return t
}

// Financial is the money side of a portfolio at configured prices.
type Financial struct {
	SystemCostUSD       float64  `json:"systemCostUsd"`
	MonthlySavingsUSD   float64  `json:"monthlySavingsUsd"`
	PaybackYears        *float64 `json:"paybackYears,omitempty"`
	CO2OffsetLbsPerYear float64  `json:"co2OffsetLbsPerYear"`
}

// Finances prices the aggregated portfolio. PaybackYears is nil when savings
// are zero; the wire format must never carry NaN or Inf.
func Finances(t Totals, panelWattageWatts, pricePerWatt, pricePerKWh float64) Financial {
	cost := SystemCost(t.PanelCount, panelWattageWatts, pricePerWatt)
	savings := MonthlySavings(t.AnnualOutputKWh, pricePerKWh)
	f := Financial{
		SystemCostUSD:       cost,
		MonthlySavingsUSD:   savings,
		CO2OffsetLbsPerYear: CO2OffsetLbsPerYear(t.AnnualOutputKWh),
	}
	if years, ok := PaybackYears(cost, savings); ok {
		f.PaybackYears = &years
	}
	return f
}
