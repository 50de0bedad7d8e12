package preset

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/tank"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/chemical"
)

var ErrNotFound = errors.New("preset not found")

// Expected holds the reference outputs recorded for a preset plant tank.
type Expected struct {
	HeightM           float64           `json:"height_m"`
	DiameterM         float64           `json:"diameter_m"`
	ShellMM           float64           `json:"t_shell_mm"`
	RoofMM            float64           `json:"t_roof_mm"`
	BaseMM            float64           `json:"t_base_mm"`
	MaterialSuggested chemical.Material `json:"material_suggested"`
}

type Preset struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Chemical      chemical.Key `json:"chemical"`
	DailyVolumeM3 float64      `json:"daily_volume_m3_day"`
	Description   string       `json:"description"`
	Expected      Expected     `json:"expected"`
}

var presets = [...]Preset{
	{"A", "Aniline (Reactant)", chemical.Aniline, 14.634,
		"Primary reactant storage tank - aromatic amine for acetanilide production",
		Expected{3.975, 2.65, 1.232, 0.6, 24.71, chemical.MaterialSS}},
	{"B", "Acetic Anhydride (Reactant)", chemical.AceticAnhydride, 3.79,
		"Primary reactant storage tank - acylating agent for acetanilide production",
		Expected{2.533, 1.689, 6.225, 3.107, 24.30, chemical.MaterialHDPE}},
	{"C", "Unreacted Aniline", chemical.UnreactedAniline, 1.17,
		"Recycling tank for unreacted aniline from the process",
		Expected{1.496, 0.997, 0.382, 0.191, 2.416, chemical.MaterialSS}},
	{"D", "Unreacted Acetic Anhydride", chemical.UnreactedAceticAnhydride, 1.21,
		"Recycling tank for unreacted acetic anhydride from the process",
		Expected{1.515, 1.01, 3.407, 1.7, 6.723, chemical.MaterialHDPE}},
	{"E", "Acetanilide (Product)", chemical.Acetanilide, 16.406,
		"Main product storage tank - N-phenylacetamide",
		Expected{4.131, 2.754, 11.94, 6.0, 87.61, chemical.MaterialHDPE}},
	{"F", "Acetic Acid (Product)", chemical.AceticAcid, 8.462,
		"Co-product storage tank - acetic acid from the reaction",
		Expected{3.312, 2.208, 8.6, 4.3, 46.8, chemical.MaterialHDPE}},
}

func All() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets[:])
	return out
}

// ByID looks a preset up by its letter, ignoring case.
func ByID(id string) (Preset, error) {
	for _, p := range presets {
		if strings.EqualFold(p.ID, id) {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrNotFound, id)
}

func ByChemical(key chemical.Key) []Preset {
	out := []Preset{}
	for _, p := range presets {
		if p.Chemical == key {
			out = append(out, p)
		}
	}
	return out
}

// Input builds the calculation input for the preset: the chemical's
// defaults with the preset's daily volume and material.
func (p Preset) Input() (tank.Input, error) {
	in, err := tank.DefaultInput(p.Chemical)
	if err != nil {
		return tank.Input{}, err
	}
	in.DailyVolumeM3 = p.DailyVolumeM3
	in.Material = p.Expected.MaterialSuggested
	in.StressPa = tank.DefaultStress(in.Material)
	return in, nil
}

type Deviation struct {
	Field    string  `json:"field"`
	Expected float64 `json:"expected"`
	Actual   float64 `json:"actual"`
	Diff     float64 `json:"diff"`
	// Percent is relative to Expected; zero when Expected is zero.
	Percent float64 `json:"percent"`
}

type Comparison struct {
	Deviations    []Deviation `json:"deviations"`
	MaterialMatch bool        `json:"material_match"`
}

// Compare lines the reference values of p up against a computed output.
func Compare(p Preset, out tank.Output) Comparison {
	pairs := []struct {
		field            string
		expected, actual float64
	}{
		{"diameter_m", p.Expected.DiameterM, out.DiameterM},
		{"height_m", p.Expected.HeightM, out.HeightM},
		{"t_shell_mm", p.Expected.ShellMM, out.ShellMM},
		{"t_roof_mm", p.Expected.RoofMM, out.RoofMM},
		{"t_base_mm", p.Expected.BaseMM, out.BaseMM},
	}
	c := Comparison{
		Deviations:    make([]Deviation, 0, len(pairs)),
		MaterialMatch: p.Expected.MaterialSuggested == out.MaterialSuggested,
	}
	for _, pr := range pairs {
		d := Deviation{Field: pr.field, Expected: pr.expected, Actual: pr.actual, Diff: pr.actual - pr.expected}
		if pr.expected != 0 {
			d.Percent = math.Abs(d.Diff) / pr.expected * 100
		}
		c.Deviations = append(c.Deviations, d)
	}
	return c
}
