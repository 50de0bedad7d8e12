package main

import (
	"fmt"

	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/tank"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/chemical"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// inputFlags are the tank parameters shared by calc, validate and watch.
// Anything not set on the command line comes from the chemical's defaults.
type inputFlags struct {
	chemical  string
	vd        float64
	days      float64
	tanks     float64
	mode      string
	diameter  float64
	height    float64
	noSafety  bool
	density   float64
	stress    float64
	weld      float64
	material  string
	atm       float64
	gravity   float64
	corrosion float64
}

func (f *inputFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.chemical, "chemical", "c", string(chemical.Aniline), "Chemical key (see 'tankcalc chemicals')")
	fs.Float64Var(&f.vd, "vd", 10, "Daily volume Vd (m³/day)")
	fs.Float64VarP(&f.days, "days", "N", 7, "Storage days N")
	fs.Float64VarP(&f.tanks, "tanks", "n", 1, "Number of tanks n")
	fs.StringVar(&f.mode, "mode", string(tank.ModeDerived), "Geometry mode: H=1.5D or manual")
	fs.Float64VarP(&f.diameter, "diameter", "D", 0, "Manual diameter D (m)")
	fs.Float64VarP(&f.height, "height", "H", 0, "Manual height H (m)")
	fs.BoolVar(&f.noSafety, "no-safety-height", false, "Do not add the 12% safety height")
	fs.Float64Var(&f.density, "density", 0, "Density ρ (kg/m³), defaults to the chemical's")
	fs.Float64Var(&f.stress, "stress", 0, "Allowable stress S (Pa), defaults to the material's")
	fs.Float64Var(&f.weld, "weld", tank.WeldEfficiency, "Weld efficiency E")
	fs.StringVar(&f.material, "material", "", "Material SS or HDPE, defaults to the chemical's")
	fs.Float64Var(&f.atm, "atm", tank.AtmosphericPressurePa, "Atmospheric pressure (Pa)")
	fs.Float64Var(&f.gravity, "gravity", tank.Gravity, "Gravitational acceleration (m/s²)")
	fs.Float64Var(&f.corrosion, "corrosion", 0, "Corrosion allowance (mm)")
}

func (f *inputFlags) input(cmd *cobra.Command) (tank.Input, error) {
	in, err := tank.DefaultInput(chemical.Key(f.chemical))
	if err != nil {
		return tank.Input{}, fmt.Errorf("chemical %q: %w", f.chemical, err)
	}
	changed := cmd.Flags().Changed

	in.DailyVolumeM3 = f.vd
	in.StorageDays = f.days
	in.TankCount = f.tanks
	in.GeometryMode = tank.GeometryMode(f.mode)
	in.SafetyHeight = !f.noSafety
	in.WeldEfficiency = f.weld
	in.AtmPa = f.atm
	in.GravityMS2 = f.gravity
	in.CorrosionMM = f.corrosion

	if changed("diameter") {
		in.DiameterM = tank.Float(f.diameter)
	}
	if changed("height") {
		in.HeightM = tank.Float(f.height)
	}
	if changed("density") {
		in.DensityKgM3 = f.density
	}
	if changed("material") {
		in.Material = chemical.Material(f.material)
		if !chemical.ValidMaterial(in.Material) {
			return tank.Input{}, fmt.Errorf("unknown material %q", f.material)
		}
		in.StressPa = tank.DefaultStress(in.Material)
	}
	if changed("stress") {
		in.StressPa = f.stress
	}
	return in, nil
}
