package reportshandler

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"ats/internal/domain/auth"
	"ats/internal/domain/reports"
	"ats/internal/domain/search"
	"ats/internal/transport/http/api"
	"ats/internal/transport/http/middleware"
)

type Handler struct {
	Reports *reports.Service
	Search  *search.Service
}

func NewHandler(reportsSvc *reports.Service, searchSvc *search.Service) *Handler {
	return &Handler{Reports: reportsSvc, Search: searchSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermReportsRead)).Get("/summary", h.handleSummary)
		r.With(middleware.RequirePermission(auth.PermReportsRead)).Post("/roster.pdf", h.handleRoster)
	})
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	summary, err := h.Reports.Summary(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build summary", requestID)
		return
	}

	api.Success(w, summary, requestID)
}

// handleRoster filters candidates with the posted criteria and streams
// the rendered PDF back.
func (h *Handler) handleRoster(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	filters := search.InitialFilters()
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&filters); err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid filter payload", requestID)
			return
		}
	}

	matched, err := h.Search.Search(r.Context(), filters)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "search_failed", "failed to search candidates", requestID)
		return
	}

	filePath, err := h.Reports.ExportRoster(r.Context(), matched)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to render roster", requestID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(filePath)+`"`)
	http.ServeFile(w, r, filePath)
	_ = os.Remove(filePath)
}
