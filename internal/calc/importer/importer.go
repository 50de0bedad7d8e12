package importer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/tank"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/chemical"
	"github.com/xuri/excelize/v2"
)

var ErrEmptySheet = errors.New("empty sheet")

// Columns is the expected sheet layout. Only the first two are required;
// blank cells keep the chemical's defaults.
var Columns = []string{"chemical", "Vd", "N", "n", "mode", "D", "H", "material", "corrosion"}

type Row struct {
	// Line is the 1-based sheet row.
	Line  int
	Input tank.Input
	Err   error
}

// ParseWorkbook reads the first sheet of an XLSX file. The first row is
// a header; every other non-blank row becomes an input or a row error.
func ParseWorkbook(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, ErrEmptySheet
	}

	var out []Row
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		in, err := parseRow(rows[i])
		out = append(out, Row{Line: i + 1, Input: in, Err: err})
	}
	return out, nil
}

func parseRow(row []string) (tank.Input, error) {
	if len(row) < 2 {
		return tank.Input{}, fmt.Errorf("bad row: need at least %s and %s", Columns[0], Columns[1])
	}
	in, err := tank.DefaultInput(chemical.Key(strings.TrimSpace(row[0])))
	if err != nil {
		return tank.Input{}, err
	}

	floats := []struct {
		col int
		dst *float64
	}{
		{1, &in.DailyVolumeM3},
		{2, &in.StorageDays},
		{3, &in.TankCount},
		{8, &in.CorrosionMM},
	}
	for _, fl := range floats {
		v, ok, err := cellFloat(row, fl.col)
		if err != nil {
			return tank.Input{}, err
		}
		if ok {
			*fl.dst = v
		}
	}
	if cell(row, 1) == "" {
		return tank.Input{}, fmt.Errorf("%s is required", Columns[1])
	}

	if mode := cell(row, 4); mode != "" {
		in.GeometryMode = tank.GeometryMode(mode)
	}
	for col, dst := range map[int]**float64{5: &in.DiameterM, 6: &in.HeightM} {
		v, ok, err := cellFloat(row, col)
		if err != nil {
			return tank.Input{}, err
		}
		if ok {
			*dst = tank.Float(v)
		}
	}

	if m := cell(row, 7); m != "" {
		material := chemical.Material(strings.ToUpper(m))
		if !chemical.ValidMaterial(material) {
			return tank.Input{}, fmt.Errorf("%s: unknown material %q", Columns[7], m)
		}
		in.Material = material
		in.StressPa = tank.DefaultStress(material)
	}
	return in, nil
}

func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func cellFloat(row []string, col int) (float64, bool, error) {
	s := cell(row, col)
	if s == "" {
		return 0, false, nil
	}
	v, err := toFloat(s)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", Columns[col], err)
	}
	return v, true, nil
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
