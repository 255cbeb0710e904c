package bootstrap

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/JulienDevoi/sdrleads/config"
	"github.com/JulienDevoi/sdrleads/internal/adapters/apify"
	"github.com/JulienDevoi/sdrleads/internal/adapters/lemlist"
	"github.com/JulienDevoi/sdrleads/internal/core"
	"github.com/JulienDevoi/sdrleads/internal/data"
	apperrors "github.com/JulienDevoi/sdrleads/internal/errors"
	"github.com/JulienDevoi/sdrleads/internal/service"
)

// ServiceDeps contains the shared infrastructure handed to NewServices.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// ServiceContainer holds the constructed application services.
type ServiceContainer struct {
	Leads    *service.LeadService
	Dedup    *service.DedupService
	Sourcing *service.SourcingService
	Ingest   *service.IngestService
	Stats    *service.StatsService
}

// NewServices builds the repositories, adapters and services from shared
// infrastructure.
func NewServices(deps *ServiceDeps) ServiceContainer {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	leadRepo := data.NewLeadRepo(deps.DB)
	jobRepo := data.NewSourcingJobRepo(deps.DB)

	var cache core.CacheRepository
	if deps.RedisClient != nil {
		cache = data.NewRedisCacheRepo(deps.RedisClient)
	}

	scraper := apify.NewClient(deps.Config.Apify, &http.Client{Timeout: deps.Config.Apify.Timeout})
	webhook := newCampaignWebhook(deps.Config.Webhooks, logger)

	return ServiceContainer{
		Leads: service.NewLeadService(service.LeadServiceOptions{
			LeadRepo: leadRepo,
			Webhook:  webhook,
			Logger:   logger,
		}),
		Dedup: service.NewDedupService(service.DedupServiceOptions{
			LeadRepo: leadRepo,
			Logger:   logger,
		}),
		Sourcing: service.NewSourcingService(service.SourcingServiceOptions{
			JobRepo: jobRepo,
			Scraper: scraper,
			Logger:  logger,
		}),
		Ingest: service.NewIngestService(service.IngestServiceOptions{
			LeadRepo: leadRepo,
			JobRepo:  jobRepo,
			Scraper:  scraper,
			Logger:   logger,
		}),
		Stats: service.NewStatsService(service.StatsServiceOptions{
			LeadRepo: leadRepo,
			Cache:    cache,
			CacheTTL: deps.Config.Cache.StatsTTL,
			Logger:   logger,
		}),
	}
}

// newCampaignWebhook constructs the lemlist webhook client. A missing URL is
// tolerated at startup; sends fail with a configuration error instead.
//
//nolint:ireturn // the webhook is consumed through its port interface.
func newCampaignWebhook(cfg config.WebhookConfig, logger *slog.Logger) core.CampaignWebhook {
	client, err := lemlist.NewClient(lemlist.Config{
		WebhookURL: cfg.LemlistURL,
		Timeout:    cfg.Timeout,
		RetryLimit: cfg.RetryLimit,
	})
	if err != nil {
		logger.Warn("lemlist webhook not configured", "err", err)
		return unconfiguredWebhook{}
	}
	return client
}

// unconfiguredWebhook rejects sends when no webhook URL was configured.
type unconfiguredWebhook struct{}

func (unconfiguredWebhook) Send(context.Context, map[string]any) error {
	return apperrors.Configuration("lemlist webhook URL is not configured")
}
