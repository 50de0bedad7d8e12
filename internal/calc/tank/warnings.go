package tank

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	WarningThinWall    = "thin_wall"
	WarningAspectRatio = "aspect_ratio"
	WarningDensity     = "density"
	WarningVolume      = "volume_mismatch"
)

const thinWallWarning = "Warning: 2SE ≤ P - thin-wall assumption may not be valid"

// CheckWarnings returns the advisory list in fixed order: thin-wall,
// aspect ratio (nominal H), density. It never returns nil.
func CheckWarnings(s, e, pDesign, d, h, rho float64) []string {
	warnings := []string{}

	if 2*s*e <= pDesign {
		warnings = append(warnings, thinWallWarning)
	}

	ratio := h / d
	if ratio < 0.5 || ratio > 3 {
		warnings = append(warnings, fmt.Sprintf("Warning: H/D ratio (%s) is outside recommended range (0.5-3)", fixed(ratio, 2)))
	}

	if rho < 500 || rho > 1500 {
		warnings = append(warnings, fmt.Sprintf("Warning: Density (%s kg/m³) is outside typical range (500-1500 kg/m³)", number(rho)))
	}

	return warnings
}

// ClassifyWarning maps a warning message to a stable label.
func ClassifyWarning(w string) string {
	switch {
	case w == thinWallWarning:
		return WarningThinWall
	case strings.HasPrefix(w, "Warning: H/D ratio"):
		return WarningAspectRatio
	case strings.HasPrefix(w, "Warning: Density"):
		return WarningDensity
	case strings.HasPrefix(w, "Warning: Volume mismatch"):
		return WarningVolume
	default:
		return "other"
	}
}

// number prints v the shortest way that round-trips, e.g. 1021.6 or 9.81.
// Magnitudes below 1e-6 or from 1e21 up switch to exponent form (1e-7,
// 1e+21).
func number(v float64) string {
	if a := math.Abs(v); a != 0 && (a < 1e-6 || a >= 1e21) {
		return trimExponent(strconv.FormatFloat(v, 'e', -1, 64))
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
