package tank

import "github.com/Ruchit0807/chemicalplantdesign009/internal/chemical"

// DefaultInput returns the starting form for a chemical: 10 m³/day for a
// week in one tank, H = 1.5D, stress from the chemical's default material.
func DefaultInput(key chemical.Key) (Input, error) {
	props, err := chemical.Lookup(key)
	if err != nil {
		return Input{}, err
	}
	return Input{
		Chemical:       key,
		DailyVolumeM3:  10,
		StorageDays:    7,
		TankCount:      1,
		GeometryMode:   ModeDerived,
		SafetyHeight:   true,
		DensityKgM3:    props.DensityKgM3,
		StressPa:       DefaultStress(props.DefaultMaterial),
		WeldEfficiency: WeldEfficiency,
		Material:       props.DefaultMaterial,
		AtmPa:          AtmosphericPressurePa,
		GravityMS2:     Gravity,
		CorrosionMM:    0,
	}, nil
}

// DefaultStress is the allowable stress used for a material when the
// caller has none.
func DefaultStress(m chemical.Material) float64 {
	if m == chemical.MaterialSS {
		return StainlessSteelStress
	}
	return HDPEStress
}
