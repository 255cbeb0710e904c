package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/JulienDevoi/sdrleads/internal/core"
	"github.com/JulienDevoi/sdrleads/internal/domain/model"
)

// statsCacheKey holds the cached dashboard stats snapshot.
const statsCacheKey = "sdrleads:stats:dashboard"

// StatsServiceOptions groups dependencies for StatsService.
type StatsServiceOptions struct {
	LeadRepo core.LeadRepository
	Cache    core.CacheRepository
	CacheTTL time.Duration
	Logger   *slog.Logger
}

// StatsService computes dashboard stats with a short-lived cache in front of
// the aggregate query. The cache is optional; without it every call hits the
// database.
type StatsService struct {
	leads    core.LeadRepository
	cache    core.CacheRepository
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewStatsService constructs a new StatsService.
func NewStatsService(opts StatsServiceOptions) *StatsService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &StatsService{
		leads:    opts.LeadRepo,
		cache:    opts.Cache,
		cacheTTL: ttl,
		logger:   logger.With("component", "stats_service"),
	}
}

// Dashboard returns the aggregate lead stats, serving from cache when a
// fresh snapshot exists. Cache failures degrade to a direct query.
func (s *StatsService) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	counts, err := s.leads.StatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	stats := model.StatsFromCounts(counts)

	s.toCache(ctx, &stats)
	return &stats, nil
}

// Invalidate drops the cached snapshot, forcing the next read to recompute.
func (s *StatsService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Delete(ctx, statsCacheKey); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate stats cache", "err", err)
	}
}

func (s *StatsService) fromCache(ctx context.Context) *model.DashboardStats {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, statsCacheKey)
	if err != nil {
		s.logger.WarnContext(ctx, "stats cache read failed", "err", err)
		return nil
	}
	if raw == nil {
		return nil
	}
	var stats model.DashboardStats
	if unmarshalErr := json.Unmarshal(raw, &stats); unmarshalErr != nil {
		s.logger.WarnContext(ctx, "stats cache entry is corrupt", "err", unmarshalErr)
		return nil
	}
	return &stats
}

func (s *StatsService) toCache(ctx context.Context, stats *model.DashboardStats) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	// NX write: concurrent recomputes race to the same snapshot, the first
	// one wins and the rest are no-ops instead of TTL-extending overwrites.
	if _, setErr := s.cache.SetIfNotExists(ctx, statsCacheKey, raw, s.cacheTTL); setErr != nil {
		s.logger.WarnContext(ctx, "stats cache write failed", "err", setErr)
	}
}
