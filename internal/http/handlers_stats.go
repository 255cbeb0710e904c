package httpx

import (
	"net/http"

	"github.com/JulienDevoi/sdrleads/internal/service"
)

// StatsHandlers provides HTTP handlers for dashboard stats.
type StatsHandlers struct {
	Svc *service.StatsService
}

// Dashboard handles HTTP requests for the aggregate dashboard stats.
func (h *StatsHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Svc.Dashboard(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}
