package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/tank"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/history"
)

var comparisonHeader = []string{
	"Tank Name", "Chemical", "Vd (m³/day)", "D (m)", "H (m)",
	"t_shell (mm)", "t_roof (mm)", "t_base (mm)", "Material",
}

// WriteCSV writes one calculation as a Parameter,Value,Unit table.
func WriteCSV(w io.Writer, in tank.Input, out tank.Output) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range designTable(in, out) {
		if err := cw.Write(r.strings()); err != nil {
			return fmt.Errorf("write csv row %q: %w", r.Parameter, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteComparisonCSV writes saved calculations side by side, one per row.
func WriteComparisonCSV(w io.Writer, entries []history.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(comparisonHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range entries {
		rec := []string{
			e.Name,
			chemicalName(e.Input.Chemical),
			num(e.Input.DailyVolumeM3),
			num(e.Output.DiameterM),
			num(e.Output.HeightM),
			num(e.Output.ShellMM),
			num(e.Output.RoofMM),
			num(e.Output.BaseMM),
			string(e.Output.MaterialSuggested),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row %s: %w", e.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
