package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JulienDevoi/sdrleads/internal/core"
	"github.com/JulienDevoi/sdrleads/internal/domain/model"
)

// dedupBatchSize bounds each delete statement during the dedup pass.
const dedupBatchSize = 100

// DedupResult reports the outcome of a deduplication pass.
type DedupResult struct {
	Success           bool   `json:"success"`
	DuplicatesRemoved int    `json:"duplicatesRemoved"`
	Message           string `json:"message,omitempty"`
}

// DedupServiceOptions groups dependencies for DedupService.
type DedupServiceOptions struct {
	LeadRepo core.LeadRepository
	Logger   *slog.Logger
}

// DedupService removes duplicate leads that share an email address.
type DedupService struct {
	leads  core.LeadRepository
	logger *slog.Logger
}

// NewDedupService constructs a new DedupService.
func NewDedupService(opts DedupServiceOptions) *DedupService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &DedupService{
		leads:  opts.LeadRepo,
		logger: logger.With("component", "dedup_service"),
	}
}

// RemoveDuplicates scans all leads oldest-first, groups them by normalized
// email, keeps the oldest lead per group and deletes the rest in batches.
// Leads without a usable email are exempt. A failed batch aborts the pass;
// earlier batches stay deleted.
func (s *DedupService) RemoveDuplicates(ctx context.Context) (*DedupResult, error) {
	fields, err := s.leads.ListDedupFields(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leads for dedup: %w", err)
	}
	if len(fields) == 0 {
		return &DedupResult{Success: true, Message: "No leads found"}, nil
	}

	duplicateIDs := collectDuplicateIDs(fields)
	if len(duplicateIDs) == 0 {
		return &DedupResult{Success: true, Message: "No duplicates found"}, nil
	}

	s.logger.InfoContext(ctx, "removing duplicate leads", "count", len(duplicateIDs))

	totalDeleted := 0
	for start := 0; start < len(duplicateIDs); start += dedupBatchSize {
		end := min(start+dedupBatchSize, len(duplicateIDs))
		batch := duplicateIDs[start:end]

		deleted, delErr := s.leads.DeleteByIDs(ctx, batch)
		if delErr != nil {
			return nil, fmt.Errorf("delete duplicate batch: %w", delErr)
		}
		totalDeleted += deleted
	}

	s.logger.InfoContext(ctx, "duplicate removal finished", "removed", totalDeleted)
	return &DedupResult{
		Success:           true,
		DuplicatesRemoved: totalDeleted,
		Message:           fmt.Sprintf("Successfully removed %d duplicate leads", totalDeleted),
	}, nil
}

// collectDuplicateIDs walks the oldest-first projection and picks every lead
// after the first occurrence of each normalized email.
func collectDuplicateIDs(fields []model.DedupFields) []string {
	seen := make(map[string]bool, len(fields))
	var duplicateIDs []string
	for _, f := range fields {
		if f.Email == nil {
			continue
		}
		email := model.NormalizeEmail(*f.Email)
		if email == "" {
			continue
		}
		if seen[email] {
			duplicateIDs = append(duplicateIDs, f.ID)
			continue
		}
		seen[email] = true
	}
	return duplicateIDs
}
