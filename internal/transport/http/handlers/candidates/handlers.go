package candidatehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"ats/internal/domain/auth"
	"ats/internal/domain/candidate"
	"ats/internal/domain/search"
	"ats/internal/platform/metrics"
	"ats/internal/transport/http/api"
	"ats/internal/transport/http/middleware"
	"ats/internal/transport/http/shared"
)

type Handler struct {
	Candidates *candidate.Service
	Search     *search.Service
	Metrics    *metrics.Collector
}

func NewHandler(candidates *candidate.Service, searchSvc *search.Service, collector *metrics.Collector) *Handler {
	return &Handler{Candidates: candidates, Search: searchSvc, Metrics: collector}
}

// RegisterRoutes expects a router already scoped to /candidates.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermCandidatesRead)).Get("/", h.handleList)
	r.With(middleware.RequirePermission(auth.PermCandidatesWrite)).Post("/", h.handleCreate)
	r.With(middleware.RequirePermission(auth.PermCandidatesRead)).Post("/search", h.handleSearch)
	r.With(middleware.RequirePermission(auth.PermCandidatesRead)).Get("/{candidateID}", h.handleGet)
	r.With(middleware.RequirePermission(auth.PermCandidatesWrite)).Put("/{candidateID}", h.handleUpdate)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	page := shared.ParsePagination(r, 50, 200)
	list, err := h.Candidates.List(r.Context(), page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "candidate_list_failed", "failed to list candidates", requestID)
		return
	}
	total, err := h.Candidates.Count(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "candidate_list_failed", "failed to list candidates", requestID)
		return
	}

	api.Success(w, map[string]any{
		"candidates": list,
		"total":      total,
		"limit":      page.Limit,
		"offset":     page.Offset,
	}, requestID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload candidate.Candidate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if rejected := validateCandidate(w, requestID, &payload); rejected {
		return
	}

	id, err := h.Candidates.Create(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "candidate_create_failed", "failed to create candidate", requestID)
		return
	}

	created, err := h.Candidates.Get(r.Context(), id)
	if err != nil {
		api.Created(w, map[string]string{"id": id}, requestID)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	candidateID := chi.URLParam(r, "candidateID")
	c, err := h.Candidates.Get(r.Context(), candidateID)
	if err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "candidate not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "candidate_get_failed", "failed to load candidate", requestID)
		return
	}

	api.Success(w, c, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	candidateID := chi.URLParam(r, "candidateID")

	var payload candidate.Candidate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if rejected := validateCandidate(w, requestID, &payload); rejected {
		return
	}

	if err := h.Candidates.Update(r.Context(), candidateID, payload); err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "candidate not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "candidate_update_failed", "failed to update candidate", requestID)
		return
	}

	updated, err := h.Candidates.Get(r.Context(), candidateID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "candidate_get_failed", "failed to load candidate", requestID)
		return
	}
	api.Success(w, updated, requestID)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	filters := search.InitialFilters()
	if err := json.NewDecoder(r.Body).Decode(&filters); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid filter payload", requestID)
		return
	}

	matched, err := h.Search.Search(r.Context(), filters)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "search_failed", "failed to search candidates", requestID)
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordSearch()
	}

	api.Success(w, map[string]any{
		"candidates":     matched,
		"total":          len(matched),
		"activeCriteria": search.ActiveCriteria(&filters),
	}, requestID)
}

func validateCandidate(w http.ResponseWriter, requestID string, c *candidate.Candidate) bool {
	v := shared.NewValidator()
	v.Required("name", c.Name, "name is required")
	if c.Status == "" {
		c.Status = candidate.StatusPending
	}
	if !c.Status.Valid() {
		v.Add("status", "unknown candidate status")
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		v.Add("email", "must be a valid email address")
	}
	for _, we := range c.WorkExperiences {
		if strings.TrimSpace(we.EmployerName) == "" {
			v.Add("workExperiences", "employerName is required")
		}
		if we.StartDate != nil && we.EndDate != nil && we.EndDate.Before(*we.StartDate) {
			v.Add("workExperiences", "endDate must be on or after startDate")
		}
	}
	return v.Reject(w, requestID)
}
