package tank

import (
	"fmt"
	"strconv"

	"github.com/Ruchit0807/chemicalplantdesign009/internal/chemical"
)

type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// Validate checks the physical constraints the engine relies on. All
// violations are collected; it never fails fast.
func Validate(in Input) ValidationResult {
	errs := []string{}

	if in.DailyVolumeM3 <= 0 {
		errs = append(errs, "Daily volume must be positive")
	}
	if in.StorageDays <= 0 {
		errs = append(errs, "Storage days must be positive")
	}
	if in.TankCount <= 0 {
		errs = append(errs, "Number of tanks must be positive")
	}
	if in.DensityKgM3 < 100 || in.DensityKgM3 > 2000 {
		errs = append(errs, "Density must be between 100 and 2000 kg/m³")
	}
	if in.StressPa <= 0 {
		errs = append(errs, "Allowable stress must be positive")
	}
	if in.WeldEfficiency <= 0 || in.WeldEfficiency > 1 {
		errs = append(errs, "Weld efficiency must be between 0 and 1")
	}
	if in.CorrosionMM < 0 {
		errs = append(errs, "Corrosion allowance cannot be negative")
	}

	if in.GeometryMode == ModeManual {
		if !present(in.DiameterM) || !(*in.DiameterM > 0) {
			errs = append(errs, "Manual diameter must be positive")
		}
		if !present(in.HeightM) || !(*in.HeightM > 0) {
			errs = append(errs, "Manual height must be positive")
		}
		if present(in.DiameterM) && present(in.HeightM) {
			ratio := *in.HeightM / *in.DiameterM
			if ratio < 0.5 || ratio > 3 {
				errs = append(errs, "H/D ratio must be between 0.5 and 3")
			}
		}
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Guardrails are the input bounds enforced at the form/API edge. They
// are stricter than Validate and are configuration, not physics.
type Guardrails struct {
	DailyVolumeM3  Range `json:"daily_volume_m3_day"`
	StorageDays    Range `json:"storage_days"`
	TankCount      Range `json:"tank_count"`
	DensityKgM3    Range `json:"density_kg_m3"`
	StressPa       Range `json:"allowable_stress_pa"`
	WeldEfficiency Range `json:"weld_efficiency"`
	AtmPa          Range `json:"atm_pa"`
	GravityMS2     Range `json:"gravity_m_s2"`
	CorrosionMM    Range `json:"corrosion_mm"`
}

func DefaultGuardrails() Guardrails {
	return Guardrails{
		DailyVolumeM3:  Range{0.1, 1000},
		StorageDays:    Range{1, 365},
		TankCount:      Range{1, 100},
		DensityKgM3:    Range{100, 2000},
		StressPa:       Range{1e6, 1000e6},
		WeldEfficiency: Range{0.1, 1.0},
		AtmPa:          Range{80000, 120000},
		GravityMS2:     Range{9.0, 10.0},
		CorrosionMM:    Range{0, 50},
	}
}

type rangeRule struct {
	field string
	label string
	unit  string
	scale float64 // displayed value = value / scale
	value float64
	r     Range
}

func (rr rangeRule) check() []string {
	var out []string
	show := func(v float64) string {
		s := strconv.FormatFloat(v/rr.scale, 'f', -1, 64)
		if rr.unit != "" {
			s += " " + rr.unit
		}
		return s
	}
	if rr.value < rr.r.Min {
		if rr.r.Min == 0 {
			out = append(out, fmt.Sprintf("%s: %s cannot be negative", rr.field, rr.label))
		} else {
			out = append(out, fmt.Sprintf("%s: %s must be at least %s", rr.field, rr.label, show(rr.r.Min)))
		}
	}
	if rr.value > rr.r.Max {
		out = append(out, fmt.Sprintf("%s: %s cannot exceed %s", rr.field, rr.label, show(rr.r.Max)))
	}
	return out
}

// CheckGuardrails reports every bound violated by in as
// "<field>: <message>". An empty result means the input passed.
func CheckGuardrails(in Input, g Guardrails) []string {
	errs := []string{}

	if !chemical.Valid(in.Chemical) {
		errs = append(errs, fmt.Sprintf("chemical: Invalid chemical %q", string(in.Chemical)))
	}

	rules := []rangeRule{
		{"daily_volume_m3_day", "Daily volume", "m³/day", 1, in.DailyVolumeM3, g.DailyVolumeM3},
		{"storage_days", "Storage days", "days", 1, in.StorageDays, g.StorageDays},
		{"tank_count", "Number of tanks", "", 1, in.TankCount, g.TankCount},
		{"density_kg_m3", "Density", "kg/m³", 1, in.DensityKgM3, g.DensityKgM3},
		{"allowable_stress_pa", "Allowable stress", "MPa", 1e6, in.StressPa, g.StressPa},
		{"weld_efficiency", "Weld efficiency", "", 1, in.WeldEfficiency, g.WeldEfficiency},
		{"atm_pa", "Atmospheric pressure", "kPa", 1e3, in.AtmPa, g.AtmPa},
		{"gravity_m_s2", "Gravity", "m/s²", 1, in.GravityMS2, g.GravityMS2},
		{"corrosion_mm", "Corrosion allowance", "mm", 1, in.CorrosionMM, g.CorrosionMM},
	}
	for _, rr := range rules {
		errs = append(errs, rr.check()...)
	}

	if !chemical.ValidMaterial(in.Material) {
		errs = append(errs, fmt.Sprintf("material: Invalid material %q", string(in.Material)))
	}

	switch in.GeometryMode {
	case ModeDerived:
	case ModeManual:
		if !manualGeometryOK(in) {
			errs = append(errs, "geometry_mode: Manual dimensions must be provided and H/D ratio must be between 0.5 and 3")
		}
	default:
		errs = append(errs, fmt.Sprintf("geometry_mode: Invalid geometry mode %q", string(in.GeometryMode)))
	}

	return errs
}

func manualGeometryOK(in Input) bool {
	if !present(in.DiameterM) || !present(in.HeightM) {
		return false
	}
	d, h := *in.DiameterM, *in.HeightM
	if d <= 0 || h <= 0 {
		return false
	}
	ratio := h / d
	return ratio >= 0.5 && ratio <= 3
}
