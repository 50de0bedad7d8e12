package tank

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Ruchit0807/chemicalplantdesign009/internal/chemical"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/observability"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// ErrNonFinite is returned by Handler.Run when the inputs pass
// validation but the result holds Inf or NaN.
var ErrNonFinite = errors.New("non-finite result")

type Handler struct {
	Log        logrus.FieldLogger
	Metrics    *observability.Metrics
	Guardrails Guardrails
}

type validateResponse struct {
	ValidationResult
	Guardrails []string `json:"guardrails"`
}

type errorResponse struct {
	Error    string   `json:"error"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func (h *Handler) logger() logrus.FieldLogger {
	if h.Log == nil {
		return logrus.StandardLogger()
	}
	return h.Log
}

// Run validates and calculates in, recording the outcome. A failed
// validation is returned with a nil error and IsValid false. A result
// that cannot be represented comes back with ErrNonFinite so callers can
// still read its warnings.
func (h *Handler) Run(in Input) (Output, ValidationResult, error) {
	start := time.Now()
	v := Validate(in)
	if !v.IsValid {
		h.Metrics.ObserveCalculation(observability.OutcomeInvalid, time.Since(start))
		return Output{}, v, nil
	}
	out, err := Calculate(in)
	if err != nil {
		h.Metrics.ObserveCalculation(observability.OutcomeStructural, time.Since(start))
		return Output{}, v, err
	}
	if !out.Finite() {
		h.Metrics.ObserveCalculation(observability.OutcomeNonFinite, time.Since(start))
		h.logger().WithFields(logrus.Fields{
			"chemical": in.Chemical,
			"warnings": out.Warnings,
		}).Warn("calculation produced a non-finite result")
		return out, v, ErrNonFinite
	}
	h.Metrics.ObserveCalculation(observability.OutcomeOK, time.Since(start))
	for _, w := range out.Warnings {
		h.Metrics.ObserveWarning(ClassifyWarning(w))
	}
	if len(out.Warnings) > 0 {
		h.logger().WithFields(logrus.Fields{
			"chemical": in.Chemical,
			"warnings": len(out.Warnings),
		}).Debug("calculation produced warnings")
	}
	return out, v, nil
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, v, err := h.Run(input)
	if WriteRunError(w, res, v, err) {
		return
	}
	WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	g := h.Guardrails
	if g == (Guardrails{}) {
		g = DefaultGuardrails()
	}
	WriteJSON(w, http.StatusOK, validateResponse{
		ValidationResult: Validate(input),
		Guardrails:       CheckGuardrails(input, g),
	})
}

func (h *Handler) Chemicals(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, chemical.All())
}

func (h *Handler) Defaults(w http.ResponseWriter, r *http.Request) {
	key := chemical.Key(mux.Vars(r)["key"])
	in, err := DefaultInput(key)
	if err != nil {
		http.Error(w, "Unknown chemical", http.StatusNotFound)
		return
	}
	WriteJSON(w, http.StatusOK, in)
}

// WriteRunError answers a failed Run: 422 with the messages for invalid
// input or a non-finite result, 400 for any other error. It reports
// whether a response was written.
func WriteRunError(w http.ResponseWriter, out Output, v ValidationResult, err error) bool {
	switch {
	case !v.IsValid:
		WriteJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "Invalid input", Errors: v.Errors})
	case errors.Is(err, ErrNonFinite):
		WriteJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Warnings: out.Warnings})
	case err != nil:
		WriteJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		return false
	}
	return true
}

// WriteJSON encodes v before touching the response so an encoding
// failure still becomes a 500 instead of a truncated 200.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logrus.WithError(err).Error("encoding response")
		http.Error(w, "Response encoding error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
