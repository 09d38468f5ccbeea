package handlers

import (
	"net/http"

	"github.com/boxboard/apiserver/internal/services"
	"github.com/go-chi/chi/v5"
)

// ReportHandler exposes the dashboard and statistics aggregates.
type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// ReportRouter registers the aggregate endpoints. Both are readable by
// any authenticated user.
func ReportRouter(r chi.Router, reports *services.ReportService) {
	handler := NewReportHandler(reports)
	r.Get("/statistiche", handler.Dashboard)
	r.Get("/statistiche/avanzate", handler.Statistics)
}

// Dashboard returns the main dashboard aggregates.
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.reports.Dashboard(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

// Statistics returns the advanced statistics aggregates.
func (h *ReportHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	statistics, err := h.reports.Statistics(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statistics)
}
