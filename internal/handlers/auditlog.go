package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/boxboard/apiserver/internal/services"
	"github.com/go-chi/chi/v5"
)

// AuditLogHandler exposes the read-only operation log.
type AuditLogHandler struct {
	audit *services.AuditService
}

func NewAuditLogHandler(audit *services.AuditService) *AuditLogHandler {
	return &AuditLogHandler{audit: audit}
}

// AuditLogRouter registers the operation log routes. The log is
// restricted to the Coordinatore role.
func AuditLogRouter(r chi.Router, audit *services.AuditService) {
	handler := NewAuditLogHandler(audit)
	r.With(RequireCoordinator).Get("/", handler.List)
}

// List returns log entries newest first. An optional "limit" query
// parameter bounds the page; omitted or zero means all entries.
func (h *AuditLogHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	entries, err := h.audit.List(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
