package solar

import (
	"math"
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

func TestAggregateTwoZones(t *testing.T) {
	systems := []System{NewSystem(100), NewSystem(200)}
	totals := Aggregate(systems, 4.2)

	assert.Equal(t, totals.ZoneCount, 2)
	assert.Equal(t, totals.AreaSquareMeters, 300.0)
	assert.Equal(t, totals.PanelCount, 50)
	assert.Equal(t, totals.SystemSizeKW, 20.0)
	assert.Assert(t, math.Abs(totals.AnnualOutputKWh-26068.5) < 1e-6, "got %f", totals.AnnualOutputKWh)
	// 26068.5/20 = 1303.4 kWh/kW -> raw 108.6%, capped.
	assert.Equal(t, totals.EfficiencyScore, 100)
}

func TestAggregateEmpty(t *testing.T) {
	totals := Aggregate(nil, 4.2)
	assert.Equal(t, totals, Totals{})
}

func TestFinances(t *testing.T) {
	totals := Aggregate([]System{NewSystem(100)}, 4.2)
	f := Finances(totals, DefaultPanelWattageWatts, 3.0, 0.12)

	assert.Equal(t, f.SystemCostUSD, 30000.0)
	assert.Assert(t, math.Abs(f.MonthlySavingsUSD-130.3425) < 1e-9)
	assert.Assert(t, f.PaybackYears != nil)
	assert.Assert(t, math.Abs(*f.PaybackYears-30000.0/(130.3425*12)) < 1e-9)
}

func TestFinancesZeroPortfolio(t *testing.T) {
	f := Finances(Totals{}, DefaultPanelWattageWatts, 3.0, 0.12)
	assert.Equal(t, f.SystemCostUSD, 0.0)
	assert.Equal(t, f.MonthlySavingsUSD, 0.0)
	assert.Assert(t, f.PaybackYears == nil)
	assert.Equal(t, f.CO2OffsetLbsPerYear, 0.0)
}

func TestSeasonalAdjustment(t *testing.T) {
	base := 5.0
	// Short windows are month-biased.
	assert.Equal(t, AdjustedDailyHours(base, 30, time.July), 5.0*1.30)
	assert.Equal(t, AdjustedDailyHours(base, 30, time.December), 5.0*0.60)
	// Half-year windows get the flat damper.
	assert.Equal(t, AdjustedDailyHours(base, 180, time.July), 5.0*0.95)
	// Full-year windows average out.
	assert.Equal(t, AdjustedDailyHours(base, 365, time.July), 5.0)
}

func TestNewSamplePeriods(t *testing.T) {
	at := time.Date(2026, time.July, 15, 12, 0, 0, 0, time.UTC)
	s := NewSample(5.0, at, "test")
	assert.Equal(t, s.DailyHours, 5.0)
	assert.Equal(t, s.WeeklyHours, 5.0*1.30*7)
	assert.Equal(t, s.MonthlyHours, 5.0*1.30*30)
	assert.Equal(t, s.YearlyHours, 5.0*365)
}

func TestFallbackDailyHours(t *testing.T) {
	assert.Equal(t, FallbackDailyHours(0), 6.5)
	assert.Equal(t, FallbackDailyHours(-10), 6.5)
	assert.Equal(t, FallbackDailyHours(35), 5.8)
	assert.Equal(t, FallbackDailyHours(-45), 4.5)
	assert.Equal(t, FallbackDailyHours(65), 3.2)
}
