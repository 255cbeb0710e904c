// Package mocks provides mock implementations for testing the sdrleads services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockLeadRepository(ctrl)
//	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(lead, nil)
package mocks

// Generate mock for LeadRepository interface from internal/core package.
// This creates MockLeadRepository with methods for all LeadRepository interface methods:
// Create, GetByID, List, UpdateStatus, Delete, ListDedupFields, DeleteByIDs,
// BulkInsert, DistinctSprints, StatusCounts, MarkSentToLemlist
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=lead_repository_mock.go github.com/JulienDevoi/sdrleads/internal/core LeadRepository

// Generate mock for SourcingJobRepository interface from internal/core package.
// This creates MockSourcingJobRepository with methods for all SourcingJobRepository interface methods:
// Create, GetByExternalID, ApplyRunStatus, MarkResultsRetrieved, ListRecent
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=sourcing_job_repository_mock.go github.com/JulienDevoi/sdrleads/internal/core SourcingJobRepository

// Generate mock for CacheRepository interface from internal/core package.
// This creates MockCacheRepository with methods for all CacheRepository interface methods:
// Set, Get, Delete, SetIfNotExists
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=cache_repository_mock.go github.com/JulienDevoi/sdrleads/internal/core CacheRepository

// Generate mock for ScraperClient interface from internal/core package.
// This creates MockScraperClient with methods for all ScraperClient interface methods:
// StartRun, GetRun, GetDatasetItems
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=scraper_client_mock.go github.com/JulienDevoi/sdrleads/internal/core ScraperClient

// Generate mock for CampaignWebhook interface from internal/core package.
// This creates MockCampaignWebhook with methods for all CampaignWebhook interface methods:
// Send
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=campaign_webhook_mock.go github.com/JulienDevoi/sdrleads/internal/core CampaignWebhook
