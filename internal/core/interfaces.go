// Package core contains the port interfaces between the service layer and
// the data/adapter layers. Service implementations depend on these
// interfaces, not on concrete implementations.
package core

import (
	"context"
	"time"

	"github.com/JulienDevoi/sdrleads/internal/domain/model"
)

// LeadRepository defines the interface for lead data operations.
type LeadRepository interface {
	Create(ctx context.Context, req *model.CreateLeadRequest) (*model.Lead, error)
	GetByID(ctx context.Context, id string) (*model.Lead, error)
	List(ctx context.Context, opts model.LeadsListOptions) ([]*model.Lead, error)
	UpdateStatus(ctx context.Context, id string, status model.LeadStatus) (*model.Lead, error)
	Delete(ctx context.Context, id string) (bool, error)

	// ListDedupFields returns {id, email, created_at} for every lead,
	// ordered ascending by created_at, for the deduplication pass.
	ListDedupFields(ctx context.Context) ([]model.DedupFields, error)
	// DeleteByIDs deletes the given lead rows and returns the count removed.
	// Callers are expected to batch; the store rejects oversized id lists.
	DeleteByIDs(ctx context.Context, ids []string) (int, error)

	// BulkInsert inserts transformed sourced leads and returns the stored rows.
	BulkInsert(ctx context.Context, leads []model.LeadInsert) ([]*model.Lead, error)

	// DistinctSprints returns the sorted set of non-empty sprint labels.
	DistinctSprints(ctx context.Context) ([]string, error)
	// StatusCounts returns per-status lead counts.
	StatusCounts(ctx context.Context) (model.StatusCounts, error)

	// MarkSentToLemlist records a successful webhook delivery on the lead.
	MarkSentToLemlist(ctx context.Context, id string, note string) (*model.Lead, error)
}

// SourcingJobRepository defines the interface for sourcing job data operations.
type SourcingJobRepository interface {
	Create(ctx context.Context, req *model.CreateSourcingJobRequest) (*model.SourcingJob, error)
	GetByExternalID(ctx context.Context, jobID string) (*model.SourcingJob, error)
	// ApplyRunStatus overwrites the remote-owned columns of a job row with
	// the latest poll result. The overwrite is idempotent, not incremental.
	ApplyRunStatus(ctx context.Context, jobID string, upd model.RunStatusUpdate) error
	// MarkResultsRetrieved flips results_retrieved false to true and records
	// the final leads_found count. It reports false when the flag was
	// already set, which makes result ingestion exactly-once.
	MarkResultsRetrieved(ctx context.Context, id string, leadsFound int) (bool, error)
	// ListRecent returns the most recent jobs, newest first.
	ListRecent(ctx context.Context, limit int) ([]*model.SourcingJob, error)
}

// CacheRepository defines the interface for cache operations.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) (bool, error)
	// SetIfNotExists atomically stores a value only when the key is absent,
	// reporting whether the write happened.
	SetIfNotExists(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
}

// ActorRun is the remote run state reported by the scraping platform.
type ActorRun struct {
	ID               string
	Status           model.RunStatus
	StartedAt        *time.Time
	FinishedAt       *time.Time
	Stats            map[string]any
	DefaultDatasetID *string
}

// ItemsOutputted extracts the best available item count from run stats.
// The actor reports progress under several keys depending on its version.
func (r *ActorRun) ItemsOutputted() int {
	for _, key := range []string{"itemsOutputted", "requestsFinished", "pagesProcessed"} {
		if v, ok := r.Stats[key]; ok {
			if f, isNum := v.(float64); isNum && f > 0 {
				return int(f)
			}
		}
	}
	return 0
}

// StartRunParams groups parameters for ScraperClient.StartRun.
type StartRunParams struct {
	SearchURL    string
	TotalRecords int
	FileName     string
}

// ScraperClient defines the interface to the external scraping actor platform.
type ScraperClient interface {
	// StartRun submits an actor run without waiting for completion and
	// returns the remote run id.
	StartRun(ctx context.Context, params StartRunParams) (*ActorRun, error)
	// GetRun fetches the current state of an actor run.
	GetRun(ctx context.Context, runID string) (*ActorRun, error)
	// GetDatasetItems fetches the raw result records of a run's dataset.
	GetDatasetItems(ctx context.Context, datasetID string) ([]map[string]any, error)
}

// CampaignWebhook delivers a lead payload to the outbound-email automation.
type CampaignWebhook interface {
	Send(ctx context.Context, payload map[string]any) error
}
