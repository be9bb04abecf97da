// file: report.go
package main

import (
	"fmt"
	"strings"
	"time"
)

// buildReport renders the downloadable plain-text estimate. It is a pure
// serialization of the summary; every figure is computed upstream.
func buildReport(s summaryResp) string {
	var b strings.Builder

	b.WriteString("SOLAR INSTALLATION ESTIMATE\n")
	b.WriteString("===========================\n\n")
	fmt.Fprintf(&b, "Generated: %s\n", time.Now().UTC().Format("2006-01-02 15:04 UTC"))
	if s.Location != nil {
		label := s.Location.Label
		if label == "" {
			label = fmt.Sprintf("%.4f, %.4f", s.Location.Lat, s.Location.Lon)
		}
		fmt.Fprintf(&b, "Location:  %s\n", label)
	} else {
		b.WriteString("Location:  not set (using conservative defaults)\n")
	}
	fmt.Fprintf(&b, "Peak sun:  %.2f hours/day (%s)\n\n", s.Irradiance.DailyHours, s.Irradiance.Source)

	fmt.Fprintf(&b, "Zones:             %d\n", s.Totals.ZoneCount)
	fmt.Fprintf(&b, "Roof area:         %.1f m2\n", s.Totals.AreaSquareMeters)
	fmt.Fprintf(&b, "Panels:            %d x 400 W\n", s.Totals.PanelCount)
	fmt.Fprintf(&b, "System size:       %.1f kW\n", s.Totals.SystemSizeKW)
	fmt.Fprintf(&b, "Annual production: %.0f kWh\n", s.Totals.AnnualOutputKWh)
	fmt.Fprintf(&b, "Efficiency score:  %d%%\n\n", s.Totals.EfficiencyScore)

	fmt.Fprintf(&b, "System cost:       $%.2f\n", s.Financial.SystemCostUSD)
	fmt.Fprintf(&b, "Monthly savings:   $%.2f\n", s.Financial.MonthlySavingsUSD)
	if s.Financial.PaybackYears != nil {
		fmt.Fprintf(&b, "Payback period:    %.1f years\n", *s.Financial.PaybackYears)
	} else {
		b.WriteString("Payback period:    n/a\n")
	}
	fmt.Fprintf(&b, "CO2 reduction:     %.0f lbs/year\n", s.Financial.CO2OffsetLbsPerYear)

	if len(s.Zones) > 0 {
		b.WriteString("\nPER-ZONE BREAKDOWN\n")
		b.WriteString("------------------\n")
		for _, z := range s.Zones {
			fmt.Fprintf(&b, "%s (%s): %.1f m2, %d panels, %.1f kW, %.0f kWh/yr",
				z.ID, z.ShapeKind, z.AreaSquareMeters, z.PanelCount,
				z.Metrics.SystemSizeKW, z.Metrics.AnnualOutputKWh)
			if z.Metrics.ExceedsRecommended {
				fmt.Fprintf(&b, " [exceeds recommended %d panels]", z.Metrics.MaxRecommendedPanels)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}
