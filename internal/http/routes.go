package httpx

import (
	"log/slog"
	"net/http"

	"github.com/JulienDevoi/sdrleads/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Leads    *service.LeadService
	Dedup    *service.DedupService
	Sourcing *service.SourcingService
	Ingest   *service.IngestService
	Stats    *service.StatsService
	Logger   *slog.Logger
}

// NewRouter creates and configures the HTTP router with the standard
// middleware chain applied.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	leadHandlers := &LeadHandlers{
		Svc:   services.Leads,
		Dedup: services.Dedup,
		Stats: services.Stats,
	}
	scraperHandlers := &ScraperHandlers{
		Sourcing: services.Sourcing,
		Ingest:   services.Ingest,
		Stats:    services.Stats,
	}

	registerLeadRoutes(mux, leadHandlers)
	registerScraperRoutes(mux, scraperHandlers)
	mux.Handle("GET /api/sourcing-jobs", http.HandlerFunc((&SourcingJobHandlers{Svc: services.Sourcing}).ListJobs))
	mux.Handle("GET /api/stats", http.HandlerFunc((&StatsHandlers{Svc: services.Stats}).Dashboard))
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	var handler http.Handler = mux
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	handler = RequestID()(handler)
	return handler
}

func registerLeadRoutes(mux *http.ServeMux, h *LeadHandlers) {
	mux.Handle("GET /api/leads", http.HandlerFunc(h.ListLeads))
	mux.Handle("POST /api/leads", http.HandlerFunc(h.CreateLead))
	mux.Handle("GET /api/leads/sprint-values", http.HandlerFunc(h.SprintValues))
	mux.Handle("POST /api/leads/remove-duplicates", http.HandlerFunc(h.RemoveDuplicates))
	mux.Handle("GET /api/leads/{id}", http.HandlerFunc(h.GetLead))
	mux.Handle("PATCH /api/leads/{id}", http.HandlerFunc(h.UpdateLead))
	mux.Handle("DELETE /api/leads/{id}", http.HandlerFunc(h.DeleteLead))
	mux.Handle("POST /api/leads/{id}/send-to-lemlist", http.HandlerFunc(h.SendToLemlist))
}

func registerScraperRoutes(mux *http.ServeMux, h *ScraperHandlers) {
	mux.Handle("POST /api/apollo-scraper", http.HandlerFunc(h.StartScraping))
	mux.Handle("GET /api/apollo-scraper/status", http.HandlerFunc(h.JobStatus))
	mux.Handle("POST /api/apollo-scraper/results", http.HandlerFunc(h.RetrieveResults))
}
