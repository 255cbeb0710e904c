package httpx

import (
	"net/http"

	"github.com/JulienDevoi/sdrleads/internal/service"
)

// SourcingJobHandlers provides HTTP handlers for the dashboard job list.
type SourcingJobHandlers struct {
	Svc *service.SourcingService
}

// ListJobs handles HTTP requests for the recent sourcing jobs.
func (h *SourcingJobHandlers) ListJobs(w http.ResponseWriter, r *http.Request) {
	res, err := h.Svc.List(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}
