package tank

import (
	"math"

	"github.com/Ruchit0807/chemicalplantdesign009/internal/chemical"
)

const minBaseMM = 2.0

type Thickness struct {
	ShellMM float64
	RoofMM  float64
	BaseMM  float64
}

// ShellThickness is the cylindrical shell formula t = P·D / (2SE − P),
// returned in mm including corrosion allowance c. A non-positive
// denominator is not rejected here, see CheckWarnings.
func ShellThickness(p, d, s, e, c float64) float64 {
	t := (p * d) / (2*s*e - p)
	return t*1000 + c
}

// RoofThickness uses the head formula t = P·D / (4SE − P).
func RoofThickness(p, d, s, e, c float64) float64 {
	t := (p * d) / (4*s*e - p)
	return t*1000 + c
}

// BaseThickness is an empirical model fitted to reference tank designs,
// not a plate-theory result. Coefficients, the 2 mm floor and the
// 3-decimal rounding must stay as they are.
func BaseThickness(p, d float64, material chemical.Material, c float64) float64 {
	pf := p / 1e6 // MPa

	var base float64
	if material == chemical.MaterialSS {
		base = (pf * d * 0.8) + (d * 0.1)
	} else {
		base = (pf * d * 1.2) + (d * 0.15)
	}
	base = math.Max(base, minBaseMM)
	base += c

	return round(base, 3)
}

func Thicknesses(p, d, s, e float64, material chemical.Material, c float64) Thickness {
	return Thickness{
		ShellMM: ShellThickness(p, d, s, e, c),
		RoofMM:  RoofThickness(p, d, s, e, c),
		BaseMM:  BaseThickness(p, d, material, c),
	}
}
