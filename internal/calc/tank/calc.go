package tank

import (
	"math"

	"github.com/Ruchit0807/chemicalplantdesign009/internal/chemical"
)

// Calculate sizes one storage tank. The only error is
// ErrManualDimensions; every other irregularity is reported in
// Output.Warnings next to the computed values.
func Calculate(in Input) (Output, error) {
	vr := (in.DailyVolumeM3 * in.StorageDays) / in.TankCount

	geo, err := SolveGeometry(vr, in.GeometryMode, in.DiameterM, in.HeightM)
	if err != nil {
		return Output{}, err
	}

	p := PressureChain(in.DensityKgM3, in.GravityMS2, geo.HeightM, in.AtmPa, in.SafetyHeight)
	t := Thicknesses(p.DesignPa, geo.DiameterM, in.StressPa, in.WeldEfficiency, in.Material, in.CorrosionMM)

	warnings := CheckWarnings(in.StressPa, in.WeldEfficiency, p.DesignPa, geo.DiameterM, geo.HeightM, in.DensityKgM3)
	if geo.Advisory != "" {
		warnings = append(warnings, geo.Advisory)
	}

	// the suggestion depends on the chemical only, not on in.Material
	var suggested chemical.Material
	if props, err := chemical.Lookup(in.Chemical); err == nil {
		suggested = props.DefaultMaterial
	}

	return Output{
		VrM3:              round(vr, 3),
		DiameterM:         round(geo.DiameterM, 3),
		HeightM:           round(geo.HeightM, 3),
		HeightSafetyM:     round(p.EffectiveHeightM, 3),
		PgPa:              round(p.GaugePa, 0),
		PaPa:              round(p.AbsolutePa, 0),
		PaDesignPa:        round(p.DesignPa, 0),
		ShellMM:           round(t.ShellMM, 2),
		RoofMM:            round(t.RoofMM, 2),
		BaseMM:            round(t.BaseMM, 2),
		AreaTopM2:         round(math.Pi*geo.DiameterM*geo.DiameterM/4, 3),
		MaterialSuggested: suggested,
		Warnings:          warnings,
		Derivation:        derive(in, vr, geo, p, t),
	}, nil
}

// round rounds half up towards +Inf at the given number of decimals.
func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Floor(v*p+0.5) / p
}
