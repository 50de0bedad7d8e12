package report

import (
	"fmt"
	"io"

	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/tank"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Tank Design"

// WriteXLSX writes the design table to a one-sheet workbook. Warnings
// follow the table after a blank row.
func WriteXLSX(w io.Writer, in tank.Input, out tank.Output) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheetName, "A1", &[]any{header[0], header[1], header[2]}); err != nil {
		return err
	}
	rows := designTable(in, out)
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetName, cell, &[]any{r.Parameter, r.cell(), r.Unit}); err != nil {
			return fmt.Errorf("write row %q: %w", r.Parameter, err)
		}
	}
	next := len(rows) + 3
	for i, warning := range out.Warnings {
		cell, _ := excelize.CoordinatesToCellName(1, next+i)
		if err := f.SetCellStr(sheetName, cell, warning); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheetName, "A", "A", 28); err != nil {
		return err
	}
	_, err := f.WriteTo(w)
	return err
}
