package preset

import (
	"errors"
	"net/http"

	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/tank"
	"github.com/gorilla/mux"
)

type Handler struct {
	Tank *tank.Handler
}

type Result struct {
	Preset     Preset      `json:"preset"`
	Input      tank.Input  `json:"input"`
	Output     tank.Output `json:"output"`
	Comparison Comparison  `json:"comparison"`
}

// Run calculates a preset and compares it with its reference values.
func Run(th *tank.Handler, p Preset) (Result, error) {
	in, err := p.Input()
	if err != nil {
		return Result{}, err
	}
	out, v, err := th.Run(in)
	if err != nil {
		return Result{}, err
	}
	if !v.IsValid {
		return Result{}, errors.New(v.Errors[0])
	}
	return Result{Preset: p, Input: in, Output: out, Comparison: Compare(p, out)}, nil
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	tank.WriteJSON(w, http.StatusOK, All())
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	p, err := ByID(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Preset not found", http.StatusNotFound)
		return
	}
	th := h.Tank
	if th == nil {
		th = &tank.Handler{}
	}
	res, err := Run(th, p)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	tank.WriteJSON(w, http.StatusOK, res)
}
