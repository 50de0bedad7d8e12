package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Ruchit0807/chemicalplantdesign009/internal/auth"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/tank"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/history"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/observability"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	Tank    *tank.Handler
	History *history.Store
	Metrics *observability.Metrics
	Log     logrus.FieldLogger
}

type Request struct {
	Input tank.Input `json:"input"`
	Meta  Meta       `json:"meta"`
}

// Filename names a download after the chemical and daily volume, e.g.
// tank-design-aniline-14.634m3-day.csv.
func Filename(in tank.Input, ext string) string {
	return fmt.Sprintf("tank-design-%s-%sm3-day.%s", in.Chemical, num(in.DailyVolumeM3), ext)
}

func (h *Handler) CSV(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "csv", "text/csv", func(buf io.Writer, req Request, out tank.Output) error {
		return WriteCSV(buf, req.Input, out)
	})
}

func (h *Handler) PDF(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "pdf", "application/pdf", func(buf io.Writer, req Request, out tank.Output) error {
		return WritePDF(buf, req.Meta, req.Input, out)
	})
}

func (h *Handler) XLSX(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		func(buf io.Writer, req Request, out tank.Output) error {
			return WriteXLSX(buf, req.Input, out)
		})
}

// CompareCSV exports the caller's saved calculations; repeated id
// query parameters pick and order the entries.
func (h *Handler) CompareCSV(w http.ResponseWriter, r *http.Request) {
	entries, err := h.History.Select(auth.SessionID(r.Context()), r.URL.Query()["id"])
	if err != nil {
		http.Error(w, "History entry not found", http.StatusNotFound)
		return
	}
	var buf bytes.Buffer
	if err := WriteComparisonCSV(&buf, entries); err != nil {
		h.logger().WithError(err).Error("comparison export failed")
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	h.Metrics.ObserveExport("comparison_csv")
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"tank-comparison-%s.csv\"", time.Now().Format("2006-01-02")))
	w.Write(buf.Bytes())
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request, format, contentType string,
	write func(io.Writer, Request, tank.Output) error) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	th := h.Tank
	if th == nil {
		th = &tank.Handler{}
	}
	out, v, err := th.Run(req.Input)
	if tank.WriteRunError(w, out, v, err) {
		return
	}

	// Render to memory so a failure can still become an error response.
	var buf bytes.Buffer
	if err := write(&buf, req, out); err != nil {
		h.logger().WithError(err).WithField("format", format).Error("report generation failed")
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	h.Metrics.ObserveExport(format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", Filename(req.Input, format)))
	w.Write(buf.Bytes())
}

func (h *Handler) logger() logrus.FieldLogger {
	if h.Log == nil {
		return logrus.StandardLogger()
	}
	return h.Log
}
