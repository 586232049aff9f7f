package verificationhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"ats/internal/domain/auth"
	"ats/internal/domain/candidate"
	"ats/internal/domain/verification"
	"ats/internal/platform/metrics"
	"ats/internal/transport/http/api"
	"ats/internal/transport/http/middleware"
	"ats/internal/transport/http/shared"
)

type Handler struct {
	Verifications *verification.Service
	Candidates    *candidate.Service
	Metrics       *metrics.Collector
}

func NewHandler(verifications *verification.Service, candidates *candidate.Service, collector *metrics.Collector) *Handler {
	return &Handler{Verifications: verifications, Candidates: candidates, Metrics: collector}
}

// RegisterRoutes expects a router already scoped to /candidates.
func (h *Handler) RegisterRoutes(r chi.Router) {
	read := middleware.RequirePermission(auth.PermCandidatesRead)
	write := middleware.RequirePermission(auth.PermVerificationWrite)

	r.With(read).Get("/{candidateID}/verifications", h.handleList)
	r.With(write).Post("/{candidateID}/verifications/bulk", h.handleBulk)
	r.With(read).Post("/{candidateID}/verifications/progress", h.handleProgress)
	r.With(read).Get("/{candidateID}/verifications/{fieldPath}", h.handleGet)
	r.With(write).Put("/{candidateID}/verifications/{fieldPath}", h.handleSetValue)
	r.With(write).Post("/{candidateID}/verifications/{fieldPath}/toggle", h.handleToggle)
	r.With(read).Get("/{candidateID}/verifications/{fieldPath}/history", h.handleHistory)
}

type setValueRequest struct {
	Value  *string `json:"value"`
	Verify bool    `json:"verify"`
	Source string  `json:"source"`
}

type bulkRequest struct {
	FieldNames []string `json:"fieldNames"`
	Verified   bool     `json:"verified"`
}

type progressRequest struct {
	FieldNames []string `json:"fieldNames"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	entityType := entityTypeParam(r)
	entityID := chi.URLParam(r, "candidateID")
	records, err := h.Verifications.ListForEntity(r.Context(), entityType, entityID)
	if err != nil {
		failVerification(w, err, requestID)
		return
	}

	api.Success(w, records, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	fieldName, ok := fieldPathParam(w, r, requestID)
	if !ok {
		return
	}

	record, err := h.Verifications.Get(r.Context(), entityTypeParam(r), chi.URLParam(r, "candidateID"), fieldName)
	if err != nil {
		failVerification(w, err, requestID)
		return
	}
	if record == nil {
		api.Fail(w, http.StatusNotFound, "not_found", "no verification recorded for field", requestID)
		return
	}

	api.Success(w, record, requestID)
}

func (h *Handler) handleSetValue(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	fieldName, ok := fieldPathParam(w, r, requestID)
	if !ok {
		return
	}
	path, err := verification.ParseFieldPath(fieldName)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_field_path", "malformed field path", requestID)
		return
	}

	var payload setValueRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	source := verification.Source(strings.TrimSpace(payload.Source))
	if source == "" {
		source = verification.SourceManualEntry
	}

	entityType := entityTypeParam(r)
	entityID := chi.URLParam(r, "candidateID")
	actor := actorName(r)

	// The candidate record is the source of truth for the value; the
	// verification record tracks who vouched for it. Apply the value to
	// the candidate first so a failed write never leaves a dangling
	// audit entry claiming a change that did not happen.
	if entityType == verification.EntityCandidate && payload.Value != nil {
		if _, err := h.Candidates.UpdateField(r.Context(), entityID, path.Collection, path.Index, path.Field, *payload.Value); err != nil {
			if errors.Is(err, candidate.ErrNotFound) {
				api.Fail(w, http.StatusNotFound, "not_found", "candidate not found", requestID)
				return
			}
			if errors.Is(err, candidate.ErrBadField) {
				api.Fail(w, http.StatusBadRequest, "invalid_field_path", "field path does not address a known field", requestID)
				return
			}
			api.Fail(w, http.StatusInternalServerError, "field_update_failed", "failed to update candidate field", requestID)
			return
		}
	}

	record, err := h.Verifications.SetFieldValue(r.Context(), entityType, entityID, fieldName, payload.Value, payload.Verify, source, actor)
	if err != nil {
		failVerification(w, err, requestID)
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordVerificationWrite()
	}

	api.Success(w, record, requestID)
}

func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	fieldName, ok := fieldPathParam(w, r, requestID)
	if !ok {
		return
	}

	record, err := h.Verifications.ToggleVerified(r.Context(), entityTypeParam(r), chi.URLParam(r, "candidateID"), fieldName, actorName(r))
	if err != nil {
		failVerification(w, err, requestID)
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordVerificationWrite()
	}

	api.Success(w, record, requestID)
}

func (h *Handler) handleBulk(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload bulkRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if len(payload.FieldNames) == 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "fieldNames is required", requestID)
		return
	}

	entityType := entityTypeParam(r)
	entityID := chi.URLParam(r, "candidateID")
	if err := h.Verifications.BulkSetVerified(r.Context(), entityType, entityID, payload.FieldNames, payload.Verified, actorName(r)); err != nil {
		failVerification(w, err, requestID)
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordVerificationWrite()
	}

	records, err := h.Verifications.ListForEntity(r.Context(), entityType, entityID)
	if err != nil {
		failVerification(w, err, requestID)
		return
	}
	api.Success(w, records, requestID)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	fieldName, ok := fieldPathParam(w, r, requestID)
	if !ok {
		return
	}

	var since time.Time
	if raw := r.URL.Query().Get("since"); strings.TrimSpace(raw) != "" {
		validator := shared.NewValidator()
		parsed, ok := validator.Date("since", raw)
		if validator.Reject(w, requestID) {
			return
		}
		if ok {
			since = parsed
		}
	}

	entries, err := h.Verifications.History(r.Context(), entityTypeParam(r), chi.URLParam(r, "candidateID"), fieldName)
	if err != nil {
		failVerification(w, err, requestID)
		return
	}
	if !since.IsZero() {
		filtered := make([]verification.AuditEntry, 0, len(entries))
		for _, entry := range entries {
			if !entry.ChangedAt.Before(since) {
				filtered = append(filtered, entry)
			}
		}
		entries = filtered
	}

	api.Success(w, entries, requestID)
}

func (h *Handler) handleProgress(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload progressRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	progress, err := h.Verifications.SectionProgress(r.Context(), entityTypeParam(r), chi.URLParam(r, "candidateID"), payload.FieldNames)
	if err != nil {
		failVerification(w, err, requestID)
		return
	}

	api.Success(w, progress, requestID)
}

func entityTypeParam(r *http.Request) verification.EntityType {
	raw := strings.TrimSpace(r.URL.Query().Get("entityType"))
	if raw == "" {
		return verification.EntityCandidate
	}
	return verification.EntityType(raw)
}

func fieldPathParam(w http.ResponseWriter, r *http.Request, requestID string) (string, bool) {
	raw := chi.URLParam(r, "fieldPath")
	decoded, err := url.PathUnescape(raw)
	if err != nil || strings.TrimSpace(decoded) == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_field_path", "malformed field path", requestID)
		return "", false
	}
	return decoded, true
}

func actorName(r *http.Request) string {
	if user, ok := middleware.GetUser(r.Context()); ok && user.Name != "" {
		return user.Name
	}
	return "system"
}

func failVerification(w http.ResponseWriter, err error, requestID string) {
	if errors.Is(err, verification.ErrInvalidEntityType) {
		api.Fail(w, http.StatusBadRequest, "invalid_entity_type", "entity type must be candidate or project", requestID)
		return
	}
	api.Fail(w, http.StatusInternalServerError, "verification_failed", "verification operation failed", requestID)
}
