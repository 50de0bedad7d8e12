package tank

type Pressures struct {
	EffectiveHeightM float64
	GaugePa          float64
	AbsolutePa       float64
	DesignPa         float64
}

// PressureChain computes the hydrostatic pressure at the base and the
// design pressure. The height and pressure margins compound.
func PressureChain(rho, g, h, atm float64, safetyHeight bool) Pressures {
	hEff := h
	if safetyHeight {
		hEff = h * SafetyFactorHeight
	}
	pg := rho * g * hEff
	pa := pg + atm
	return Pressures{
		EffectiveHeightM: hEff,
		GaugePa:          pg,
		AbsolutePa:       pa,
		DesignPa:         pa * SafetyFactorPressure,
	}
}
