package solar

import "time"

// monthFactors season-biases short observation windows: a 30-day window in
// July overstates the yearly average, one in December understates it.
// Index is the calendar month, January first.
var monthFactors = [12]float64{
	0.65, 0.75, 0.90, 1.05, 1.15, 1.25,
	1.30, 1.20, 1.05, 0.90, 0.70, 0.60,
}

// halfYearFactor dampens windows of up to six months, which still miss one
// solstice. Full-year windows average out and need no correction.
const halfYearFactor = 0.95

// Sample is the irradiance snapshot for the active location. Period totals
// carry the seasonal adjustment for their window length so the UI can show
// them directly.
type Sample struct {
	DailyHours   float64   `json:"dailyHours"`
	WeeklyHours  float64   `json:"weeklyHours"`
	MonthlyHours float64   `json:"monthlyHours"`
	YearlyHours  float64   `json:"yearlyHours"`
	Source       string    `json:"source"`
	FetchedAt    time.Time `json:"fetchedAt"`
}

// AdjustedDailyHours applies the seasonal correction for an observation
// window of the given length ending in the given month.
func AdjustedDailyHours(baseDailyHours float64, periodDays int, month time.Month) float64 {
	switch {
	case periodDays <= 30:
		return baseDailyHours * monthFactors[int(month)-1]
	case periodDays <= 180:
		return baseDailyHours * halfYearFactor
	default:
		return baseDailyHours
	}
}

// NewSample expands a daily peak-sun-hours baseline into period totals.
func NewSample(baseDailyHours float64, at time.Time, source string) Sample {
	m := at.Month()
	return Sample{
		DailyHours:   baseDailyHours,
		WeeklyHours:  AdjustedDailyHours(baseDailyHours, 7, m) * 7,
		MonthlyHours: AdjustedDailyHours(baseDailyHours, 30, m) * 30,
		YearlyHours:  AdjustedDailyHours(baseDailyHours, 365, m) * 365,
		Source:       source,
		FetchedAt:    at,
	}
}

// DefaultSample is used until the first successful fetch for a location.
func DefaultSample(at time.Time) Sample {
	return NewSample(DefaultDailySunHours, at, "default")
}

// FallbackDailyHours estimates peak sun hours from the latitude band when
// the weather provider is unreachable.
func FallbackDailyHours(lat float64) float64 {
	abs := lat
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs < 23.5:
		return 6.5
	case abs < 40:
		return 5.8
	case abs < 60:
		return 4.5
	default:
		return 3.2
	}
}
