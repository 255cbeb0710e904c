package httpx

import (
	"net/http"

	"github.com/JulienDevoi/sdrleads/internal/domain/model"
	"github.com/JulienDevoi/sdrleads/internal/service"
)

// ScraperHandlers provides HTTP handlers for the Apollo scraping workflow:
// starting a run, polling its status, and ingesting its results.
type ScraperHandlers struct {
	Sourcing *service.SourcingService
	Ingest   *service.IngestService
	Stats    *service.StatsService
}

// StartScraping handles HTTP requests to submit a scraping run.
func (h *ScraperHandlers) StartScraping(w http.ResponseWriter, r *http.Request) {
	var criteria model.SearchCriteria
	if !DecodeJSON(w, r, &criteria) {
		return
	}

	result, err := h.Sourcing.StartScraping(r.Context(), criteria)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// JobStatus handles HTTP requests to poll a run's status.
func (h *ScraperHandlers) JobStatus(w http.ResponseWriter, r *http.Request) {
	res, err := h.Sourcing.Status(r.Context(), r.URL.Query().Get("jobId"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}

// RetrieveResults handles HTTP requests to ingest a finished run's dataset
// into the lead store.
func (h *ScraperHandlers) RetrieveResults(w http.ResponseWriter, r *http.Request) {
	var body struct {
		JobID     string `json:"jobId"`
		DatasetID string `json:"datasetId"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}

	result, err := h.Ingest.RetrieveResults(r.Context(), body.JobID, body.DatasetID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if h.Stats != nil && result.StoredLeads > 0 {
		h.Stats.Invalidate(r.Context())
	}
	WriteJSON(w, http.StatusOK, result)
}
