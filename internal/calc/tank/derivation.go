package tank

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// derive renders the arithmetic trail with the unrounded intermediate
// values of one calculation.
func derive(in Input, vr float64, geo Geometry, p Pressures, t Thickness) Derivation {
	var d Derivation

	d.Volume = fmt.Sprintf("Vr = (Vd × N) / n = (%s × %s) / %s = %s m³",
		fixed(in.DailyVolumeM3, 3), number(in.StorageDays), number(in.TankCount), fixed(vr, 3))

	if in.GeometryMode == ModeDerived {
		d.Geometry = fmt.Sprintf("H = 1.5D, Vr = (π × D² × 1.5D) / 4 = (π × 1.5 × D³) / 4\n"+
			"D = ∛((4 × %s) / (π × 1.5)) = %s m\n"+
			"H = 1.5 × %s = %s m",
			fixed(vr, 3), fixed(geo.DiameterM, 3), fixed(geo.DiameterM, 3), fixed(geo.HeightM, 3))
	} else {
		d.Geometry = fmt.Sprintf("Manual dimensions: D = %s m, H = %s m",
			number(geo.DiameterM), number(geo.HeightM))
	}

	d.Pressure = fmt.Sprintf("Pg = ρ × g × H = %s × %s × %s = %s Pa\n"+
		"Pa = Pg + Patm = %s + %s = %s Pa\n"+
		"Pa_design = Pa × 1.12 = %s × 1.12 = %s Pa",
		fixed(in.DensityKgM3, 1), number(in.GravityMS2), fixed(p.EffectiveHeightM, 3), fixed(p.GaugePa, 0),
		fixed(p.GaugePa, 0), number(in.AtmPa), fixed(p.AbsolutePa, 0),
		fixed(p.AbsolutePa, 0), fixed(p.DesignPa, 0))

	s := exponent(in.StressPa)
	e := number(in.WeldEfficiency)
	P, D := fixed(p.DesignPa, 0), fixed(geo.DiameterM, 3)
	d.Thickness = fmt.Sprintf("t_shell = (P × D) / (2 × S × E - P) = (%s × %s) / (2 × %s × %s - %s) = %s mm\n"+
		"t_roof = (P × D) / (4 × S × E - P) = (%s × %s) / (4 × %s × %s - %s) = %s mm",
		P, D, s, e, P, fixed(t.ShellMM, 3),
		P, D, s, e, P, fixed(t.RoofMM, 3))

	return d
}

// fixed prints v with exactly places decimals. Values exactly halfway
// round away from zero, so fixed(2.5, 0) is "3" and fixed(0.0625, 3) is
// "0.063" where %f would round both to even.
func fixed(v float64, places int) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return number(v)
	}
	a := math.Abs(v)
	if halfway(a, places) {
		a = math.Nextafter(a, math.Inf(1))
	}
	s := strconv.FormatFloat(a, 'f', places, 64)
	if v < 0 {
		s = "-" + s
	}
	return s
}

// halfway reports whether a sits exactly between two values with the
// given number of decimals.
func halfway(a float64, places int) bool {
	x := new(big.Float).SetPrec(256).SetFloat64(a)
	x.Mul(x, new(big.Float).SetPrec(256).SetFloat64(math.Pow10(places+1)))
	if !x.IsInt() {
		return false
	}
	n, _ := x.Int(nil)
	return n.Mod(n, big.NewInt(10)).Int64() == 5
}

// exponent formats v with one decimal in exponent form without
// exponent padding: 200e6 -> "2.0e+8".
func exponent(v float64) string {
	return trimExponent(strconv.FormatFloat(v, 'e', 1, 64))
}

// trimExponent drops the zero padding Go puts in exponents: "1e-07"
// becomes "1e-7".
func trimExponent(s string) string {
	mant, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mant + "e" + sign + digits
}
