package tank

import (
	"math"

	"github.com/Ruchit0807/chemicalplantdesign009/internal/chemical"
)

type GeometryMode string

const (
	ModeDerived GeometryMode = "H=1.5D"
	ModeManual  GeometryMode = "manual"
)

const (
	AtmosphericPressurePa = 101325.0
	Gravity               = 9.81
	SafetyFactorHeight    = 1.12 // +12% on liquid height
	SafetyFactorPressure  = 1.12 // +12% on absolute pressure
	WeldEfficiency        = 0.85
	StainlessSteelStress  = 200e6 // Pa
	HDPEStress            = 23e6  // Pa

	heightToDiameter = 1.5
	volumeTolerance  = 0.05
)

type Input struct {
	Chemical       chemical.Key      `json:"chemical"`
	DailyVolumeM3  float64           `json:"daily_volume_m3_day"`
	StorageDays    float64           `json:"storage_days"`
	TankCount      float64           `json:"tank_count"`
	GeometryMode   GeometryMode      `json:"geometry_mode"`
	DiameterM      *float64          `json:"diameter_m,omitempty"` // manual mode only
	HeightM        *float64          `json:"height_m,omitempty"`   // manual mode only
	SafetyHeight   bool              `json:"safety_height"`
	DensityKgM3    float64           `json:"density_kg_m3"`
	StressPa       float64           `json:"allowable_stress_pa"`
	WeldEfficiency float64           `json:"weld_efficiency"`
	Material       chemical.Material `json:"material"`
	AtmPa          float64           `json:"atm_pa"`
	GravityMS2     float64           `json:"gravity_m_s2"`
	CorrosionMM    float64           `json:"corrosion_mm"`
}

type Derivation struct {
	Volume    string `json:"volume"`
	Geometry  string `json:"geometry"`
	Pressure  string `json:"pressure"`
	Thickness string `json:"thickness"`
}

type Output struct {
	VrM3              float64           `json:"vr_m3"`
	DiameterM         float64           `json:"diameter_m"`
	HeightM           float64           `json:"height_m"`
	HeightSafetyM     float64           `json:"height_safety_m"`
	PgPa              float64           `json:"pg_pa"`
	PaPa              float64           `json:"pa_pa"`
	PaDesignPa        float64           `json:"pa_design_pa"`
	ShellMM           float64           `json:"t_shell_mm"`
	RoofMM            float64           `json:"t_roof_mm"`
	BaseMM            float64           `json:"t_base_mm"`
	AreaTopM2         float64           `json:"area_top_m2"`
	MaterialSuggested chemical.Material `json:"material_suggested"`
	Warnings          []string          `json:"warnings"`
	Derivation        Derivation        `json:"derivation"`
}

// Float returns a pointer to v, for the optional manual dimensions.
func Float(v float64) *float64 {
	return &v
}

// Finite reports whether every number in o is a real value. Degenerate
// inputs, such as 2SE equal to the design pressure, give Inf or NaN.
func (o Output) Finite() bool {
	for _, v := range []float64{
		o.VrM3, o.DiameterM, o.HeightM, o.HeightSafetyM,
		o.PgPa, o.PaPa, o.PaDesignPa,
		o.ShellMM, o.RoofMM, o.BaseMM, o.AreaTopM2,
	} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}
