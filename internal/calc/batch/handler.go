package batch

import (
	"encoding/json"
	"net/http"

	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/tank"
)

type Handler struct {
	Runner Runner
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Request
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(h.Runner, input.Items)
	if err != nil {
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}
	tank.WriteJSON(w, http.StatusOK, res)
}
