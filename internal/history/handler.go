package history

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Ruchit0807/chemicalplantdesign009/internal/auth"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/tank"
)

type Handler struct {
	Store *Store
	Tank  *tank.Handler
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	tank.WriteJSON(w, http.StatusOK, h.Store.List(auth.SessionID(r.Context())))
}

// Save calculates the posted input and stores the result in the caller's
// session history.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var input tank.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	th := h.Tank
	if th == nil {
		th = &tank.Handler{}
	}
	out, v, err := th.Run(input)
	if tank.WriteRunError(w, out, v, err) {
		return
	}
	e := h.Store.Add(auth.SessionID(r.Context()), input, out)
	tank.WriteJSON(w, http.StatusCreated, e)
}

func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	h.Store.Clear(auth.SessionID(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

// Select returns the entries named by ids in the given order, or the
// whole history when ids is empty.
func Select(hist *History, ids []string) ([]Entry, error) {
	if len(ids) == 0 {
		return hist.List(), nil
	}
	out := make([]Entry, 0, len(ids))
	for _, id := range ids {
		e, err := hist.Get(id)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// IsNotFound reports whether err came from a missing entry.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
