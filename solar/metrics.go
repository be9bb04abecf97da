// Package solar derives energy and financial estimates for rooftop
// photovoltaic systems from panel configuration and peak sun hours.
package solar

import "math"

const (
	// DefaultPanelCount is assigned to every newly drawn zone. The number is
	// deliberately area-independent; the area only drives the advisory
	// maximum below.
	DefaultPanelCount = 25

	// DefaultPanelWattageWatts is the rated DC output of one panel.
	DefaultPanelWattageWatts = 400.0

	// DefaultPerformanceRatio captures inverter, wiring and shading losses.
	DefaultPerformanceRatio = 0.85

	// DefaultDailySunHours is a conservative location-independent figure used
	// until the first irradiance fetch succeeds.
	DefaultDailySunHours = 4.2

	// benchmarkYieldKWhPerKW is the reference annual yield a well-sited
	// system produces per installed kW.
	benchmarkYieldKWhPerKW = 1200.0

	// Panels occupy ~2 m^2 each and only ~70% of a roof is usable once
	// spacing, walkways and inverters are accounted for.
	panelFootprintSquareMeters = 2.0
	usableAreaFactor           = 0.7

	co2TonsPerKWh = 0.0004
	lbsPerTon     = 2204.62
)

// System is the panel configuration of a single zone.
type System struct {
	PanelCount        int
	PanelWattageWatts float64
	PerformanceRatio  float64
	AreaSquareMeters  float64
}

// NewSystem returns the default configuration for a zone of the given area.
func NewSystem(areaSquareMeters float64) System {
	return System{
		PanelCount:        DefaultPanelCount,
		PanelWattageWatts: DefaultPanelWattageWatts,
		PerformanceRatio:  DefaultPerformanceRatio,
		AreaSquareMeters:  areaSquareMeters,
	}
}

// SystemSizeKW is the installed DC capacity.
func SystemSizeKW(panelCount int, panelWattageWatts float64) float64 {
	return float64(panelCount) * panelWattageWatts / 1000
}

// AnnualOutputKWh converts installed capacity to yearly production.
func AnnualOutputKWh(systemSizeKW, dailySunHours, performanceRatio float64) float64 {
	return systemSizeKW * dailySunHours * 365 * performanceRatio
}

// EfficiencyScore normalizes annual yield per kW against the benchmark as a
// percentage, capped at 100. A zero-size system scores 0 rather than
// dividing by zero.
func EfficiencyScore(annualOutputKWh, systemSizeKW float64) int {
	if systemSizeKW == 0 {
		return 0
	}
	score := math.Round(100 * (annualOutputKWh / systemSizeKW) / benchmarkYieldKWhPerKW)
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return int(score)
}

// MaxRecommendedPanels is the advisory panel ceiling for a roof area.
// Exceeding it is allowed; callers surface a warning, never an error.
func MaxRecommendedPanels(areaSquareMeters float64) int {
	if areaSquareMeters <= 0 {
		return 0
	}
	return int(math.Floor(areaSquareMeters * usableAreaFactor / panelFootprintSquareMeters))
}

// MonthlySavings is the electricity-bill reduction at the given tariff.
func MonthlySavings(annualOutputKWh, pricePerKWh float64) float64 {
	return annualOutputKWh / 12 * pricePerKWh
}

// SystemCost is the installed price of the array.
func SystemCost(panelCount int, panelWattageWatts, pricePerWatt float64) float64 {
	return float64(panelCount) * panelWattageWatts * pricePerWatt
}

// PaybackYears returns the break-even horizon. ok is false when monthly
// savings are zero and the horizon is undefined; callers must not render
// the float in that case.
func PaybackYears(systemCost, monthlySavings float64) (years float64, ok bool) {
	if monthlySavings == 0 {
		return 0, false
	}
	return systemCost / (monthlySavings * 12), true
}

// CO2OffsetLbsPerYear converts annual production to avoided emissions.
func CO2OffsetLbsPerYear(annualOutputKWh float64) float64 {
	return annualOutputKWh * co2TonsPerKWh * lbsPerTon
}

// Estimate bundles the derived per-zone figures handed to the UI.
type Estimate struct {
	SystemSizeKW         float64 `json:"systemSizeKw"`
	AnnualOutputKWh      float64 `json:"annualOutputKwh"`
	EfficiencyScore      int     `json:"efficiencyScore"`
	MaxRecommendedPanels int     `json:"maxRecommendedPanels"`
	ExceedsRecommended   bool    `json:"exceedsRecommended"`
}

// Assess computes a zone's estimate at the given peak sun hours.
func Assess(sys System, dailySunHours float64) Estimate {
	size := SystemSizeKW(sys.PanelCount, sys.PanelWattageWatts)
	out := AnnualOutputKWh(size, dailySunHours, sys.PerformanceRatio)
	maxPanels := MaxRecommendedPanels(sys.AreaSquareMeters)
	return Estimate{
		SystemSizeKW:         size,
		AnnualOutputKWh:      out,
		EfficiencyScore:      EfficiencyScore(out, size),
		MaxRecommendedPanels: maxPanels,
		ExceedsRecommended:   sys.PanelCount > maxPanels,
	}
}
