// Package httpx provides the JSON HTTP handlers for the sdrleads dashboard API.
package httpx

import (
	"errors"
	"net/http"

	"github.com/JulienDevoi/sdrleads/internal/domain/model"
	"github.com/JulienDevoi/sdrleads/internal/service"
)

const (
	defaultLeadsLimit = 1000
	maxLeadsLimit     = 5000
)

// LeadHandlers provides HTTP handlers for lead-related operations.
type LeadHandlers struct {
	Svc   *service.LeadService
	Dedup *service.DedupService
	Stats *service.StatsService
}

// ListLeads handles HTTP requests to list leads, newest first, optionally
// filtered by sprint.
func (h *LeadHandlers) ListLeads(w http.ResponseWriter, r *http.Request) {
	opts := model.LeadsListOptions{}
	opts.Limit, opts.Offset = ParseLimitOffset(r, defaultLeadsLimit, maxLeadsLimit)
	if sprint := r.URL.Query().Get("sprint"); sprint != "" {
		opts.Sprint = &sprint
	}

	leads, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, leads)
}

// CreateLead handles HTTP requests to create a lead manually.
func (h *LeadHandlers) CreateLead(w http.ResponseWriter, r *http.Request) {
	var req model.CreateLeadRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation", Err: err})
		return
	}

	lead, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	h.invalidateStats(r)
	WriteJSON(w, http.StatusCreated, lead)
}

// GetLead handles HTTP requests to fetch a single lead.
func (h *LeadHandlers) GetLead(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("lead id is required")})
		return
	}

	lead, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, lead)
}

// UpdateLead handles HTTP requests to update a lead's workflow status.
func (h *LeadHandlers) UpdateLead(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("lead id is required")})
		return
	}

	var req model.UpdateLeadRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	lead, err := h.Svc.UpdateStatus(r.Context(), id, req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	h.invalidateStats(r)
	WriteJSON(w, http.StatusOK, lead)
}

// DeleteLead handles HTTP requests to delete a lead.
func (h *LeadHandlers) DeleteLead(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("lead id is required")})
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		WriteServiceError(w, err)
		return
	}

	h.invalidateStats(r)
	WriteJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Lead deleted successfully"})
}

// RemoveDuplicates handles HTTP requests to run the email deduplication pass.
func (h *LeadHandlers) RemoveDuplicates(w http.ResponseWriter, r *http.Request) {
	result, err := h.Dedup.RemoveDuplicates(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if result.DuplicatesRemoved > 0 {
		h.invalidateStats(r)
	}
	WriteJSON(w, http.StatusOK, result)
}

// SprintValues handles HTTP requests for the distinct sprint labels in use.
func (h *LeadHandlers) SprintValues(w http.ResponseWriter, r *http.Request) {
	sprints, err := h.Svc.SprintValues(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"success": true, "sprints": sprints})
}

// SendToLemlist handles HTTP requests to push a verified lead to the
// outbound campaign webhook.
func (h *LeadHandlers) SendToLemlist(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("lead id is required")})
		return
	}

	lead, err := h.Svc.SendToLemlist(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Lead sent to lemlist successfully",
		"lead":    lead,
	})
}

// invalidateStats drops the cached dashboard stats after a mutation. The
// stats service is optional in tests.
func (h *LeadHandlers) invalidateStats(r *http.Request) {
	if h.Stats != nil {
		h.Stats.Invalidate(r.Context())
	}
}
