package report

import (
	"math"
	"strconv"

	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/tank"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/chemical"
)

// row is one line of the design table. Value is a string or a float64;
// decimals fixes the printed precision of a float (-1 for shortest).
type row struct {
	Parameter string
	Value     any
	Unit      string
	decimals  int
}

var header = []string{"Parameter", "Value", "Unit"}

func chemicalName(key chemical.Key) string {
	if props, err := chemical.Lookup(key); err == nil {
		return props.Name
	}
	return string(key)
}

// designTable lists a calculation in the order the design sheet is read:
// inputs, geometry, pressures, thicknesses, then material.
func designTable(in tank.Input, out tank.Output) []row {
	return []row{
		{"Chemical", chemicalName(in.Chemical), "", -1},
		{"Daily Volume", in.DailyVolumeM3, "m³/day", -1},
		{"Storage Days", in.StorageDays, "days", -1},
		{"Number of Tanks", in.TankCount, "", -1},
		{"Required Volume per Tank", out.VrM3, "m³", -1},
		{"Diameter", out.DiameterM, "m", -1},
		{"Height (Nominal)", out.HeightM, "m", -1},
		{"Height (with Safety)", out.HeightSafetyM, "m", -1},
		{"Hydrostatic Pressure", out.PgPa / 1000, "kPa", 2},
		{"Absolute Pressure", out.PaPa / 1000, "kPa", 2},
		{"Design Pressure", out.PaDesignPa / 1000, "kPa", 2},
		{"Shell Thickness", out.ShellMM, "mm", -1},
		{"Roof Thickness", out.RoofMM, "mm", -1},
		{"Base Thickness", out.BaseMM, "mm", -1},
		{"Top Area", out.AreaTopM2, "m²", -1},
		{"Suggested Material", string(out.MaterialSuggested), "", -1},
		{"Corrosion Allowance", in.CorrosionMM, "mm", -1},
	}
}

func (r row) text() string {
	switch v := r.Value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', r.decimals, 64)
	}
	return ""
}

// cell is the spreadsheet value: pressures are stored already rounded.
func (r row) cell() any {
	if v, ok := r.Value.(float64); ok && r.decimals >= 0 {
		p := math.Pow(10, float64(r.decimals))
		return math.Round(v*p) / p
	}
	return r.Value
}

func (r row) strings() []string {
	return []string{r.Parameter, r.text(), r.Unit}
}
