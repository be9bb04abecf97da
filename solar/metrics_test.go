package solar

import (
	"math"
	"testing"

	"gotest.tools/v3/assert"
)

func TestSystemSizeKW(t *testing.T) {
	assert.Equal(t, SystemSizeKW(25, 400), 10.0)
	assert.Equal(t, SystemSizeKW(0, 400), 0.0)
}

func TestAnnualOutput(t *testing.T) {
	// 10 kW at 4.2 h/day with 0.85 PR.
	out := AnnualOutputKWh(10, 4.2, 0.85)
	assert.Assert(t, math.Abs(out-13034.25) < 1e-9, "got %f", out)
}

func TestEfficiencyScoreCapped(t *testing.T) {
	// 13034.25/10 = 1303.4 kWh/kW -> 108.6% raw, capped at 100.
	assert.Equal(t, EfficiencyScore(13034.25, 10), 100)
}

func TestEfficiencyScoreBelowCap(t *testing.T) {
	// 9000 kWh over 10 kW -> 900/1200 = 75%.
	assert.Equal(t, EfficiencyScore(9000, 10), 75)
}

func TestEfficiencyScoreZeroSize(t *testing.T) {
	assert.Equal(t, EfficiencyScore(0, 0), 0)
}

func TestMaxRecommendedPanels(t *testing.T) {
	assert.Equal(t, MaxRecommendedPanels(140), 49)
	assert.Equal(t, MaxRecommendedPanels(0), 0)
	assert.Equal(t, MaxRecommendedPanels(-5), 0)
}

func TestPaybackYears(t *testing.T) {
	years, ok := PaybackYears(30000, 125)
	assert.Assert(t, ok)
	assert.Equal(t, years, 20.0)
}

func TestPaybackUndefinedOnZeroSavings(t *testing.T) {
	_, ok := PaybackYears(30000, 0)
	assert.Assert(t, !ok)
}

func TestAssessExceedsRecommendedIsAdvisory(t *testing.T) {
	sys := NewSystem(140)
	sys.PanelCount = 60 // above the recommended 49
	est := Assess(sys, DefaultDailySunHours)
	assert.Equal(t, est.MaxRecommendedPanels, 49)
	assert.Assert(t, est.ExceedsRecommended)
	assert.Equal(t, est.SystemSizeKW, 24.0)
}

func TestAssessDefaults(t *testing.T) {
	est := Assess(NewSystem(100), DefaultDailySunHours)
	assert.Equal(t, est.SystemSizeKW, 10.0)
	assert.Assert(t, !est.ExceedsRecommended)
	assert.Equal(t, est.EfficiencyScore, 100)
}

func TestCO2Offset(t *testing.T) {
	lbs := CO2OffsetLbsPerYear(10000)
	assert.Assert(t, math.Abs(lbs-8818.48) < 0.01, "got %f", lbs)
}
