package importer

import (
	"errors"
	"net/http"

	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/batch"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/tank"
)

// MaxUpload caps the size of an uploaded workbook.
const MaxUpload = 10 << 20

type Handler struct {
	Runner batch.Runner
}

// Calculate runs every parsed row. Items are indexed by sheet line so
// failures point back at the spreadsheet.
func Calculate(r batch.Runner, rows []Row) batch.Result {
	if r == nil {
		r = &tank.Handler{}
	}
	res := batch.Result{Results: make([]batch.Item, 0, len(rows))}
	for _, row := range rows {
		if row.Err != nil {
			res.Add(batch.Item{Index: row.Line, Error: row.Err.Error()})
			continue
		}
		res.Add(batch.RunOne(r, row.Line, row.Input))
	}
	return res
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUpload)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := ParseWorkbook(file)
	if errors.Is(err, ErrEmptySheet) {
		http.Error(w, "Empty sheet", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}

	tank.WriteJSON(w, http.StatusOK, Calculate(h.Runner, rows))
}
