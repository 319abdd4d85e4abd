package report

import (
	"fmt"
	"math"

	"github.com/litescript/orbiter/internal/astro"
)

// FormatDuration returns a human-readable signed time span.
func FormatDuration(seconds float64) string {
	if math.IsInf(seconds, 0) {
		return "∞"
	}
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	switch {
	case seconds < 60:
		return sign + formatWithUnit(seconds, "s")
	case seconds < 3600:
		return sign + formatWithUnit(seconds/60, "min")
	case seconds < 86400:
		return sign + formatWithUnit(seconds/3600, "hr")
	default:
		return sign + formatWithUnit(seconds/86400, "d")
	}
}

// FormatAngle formats radians as degrees.
func FormatAngle(rad float64) string {
	return fmt.Sprintf("%.6f°", astro.RadToDeg(rad))
}

// FormatVec formats a vector with a unit label.
func FormatVec(v astro.Vec3, unit string) string {
	return fmt.Sprintf("[%.6f, %.6f, %.6f] %s", v.X, v.Y, v.Z, unit)
}

// FormatLength formats a scalar length, or ∞ for open orbits.
func FormatLength(v float64, unit string) string {
	if math.IsInf(v, 0) {
		return "∞"
	}
	return fmt.Sprintf("%.6f %s", v, unit)
}

func formatWithUnit(value float64, unit string) string {
	switch {
	case value < 10:
		return fmt.Sprintf("%.2f %s", value, unit)
	case value < 100:
		return fmt.Sprintf("%.1f %s", value, unit)
	}
	return fmt.Sprintf("%.0f %s", value, unit)
}
