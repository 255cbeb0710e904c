package service

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/JulienDevoi/sdrleads/internal/core"
	"github.com/JulienDevoi/sdrleads/internal/data"
	"github.com/JulienDevoi/sdrleads/internal/domain/model"
	apperrors "github.com/JulienDevoi/sdrleads/internal/errors"
)

// recentJobsLimit bounds the dashboard job list.
const recentJobsLimit = 5

// apolloPeopleSearchBase is the people-search page the actor scrapes.
const apolloPeopleSearchBase = "https://app.apollo.io/#/people"

// StartScrapingResult reports a submitted scraping run.
type StartScrapingResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	JobID         string `json:"jobId"`
	SearchURL     string `json:"searchUrl"`
	NumberOfLeads int    `json:"numberOfLeads"`
	DBID          string `json:"dbId,omitempty"`
}

// JobStatusResponse wraps the merged job status for the polling frontend.
type JobStatusResponse struct {
	Success bool                `json:"success"`
	Job     model.JobStatusView `json:"job"`
}

// SourcingJobsResponse wraps the dashboard job list.
type SourcingJobsResponse struct {
	Success bool                    `json:"success"`
	Jobs    []model.SourcingJobView `json:"jobs"`
}

// SourcingServiceOptions groups dependencies for SourcingService.
type SourcingServiceOptions struct {
	JobRepo core.SourcingJobRepository
	Scraper core.ScraperClient
	Logger  *slog.Logger
	Now     func() time.Time
}

// SourcingService submits scraping runs to the actor platform and tracks
// their lifecycle in local job rows.
type SourcingService struct {
	jobs    core.SourcingJobRepository
	scraper core.ScraperClient
	logger  *slog.Logger
	now     func() time.Time
}

// NewSourcingService constructs a new SourcingService.
func NewSourcingService(opts SourcingServiceOptions) *SourcingService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &SourcingService{
		jobs:    opts.JobRepo,
		scraper: opts.Scraper,
		logger:  logger.With("component", "sourcing_service"),
		now:     now,
	}
}

// StartScraping submits a run for the given criteria and persists the local
// job row. A failed persist does not fail the call; the remote run is
// already underway.
func (s *SourcingService) StartScraping(ctx context.Context, criteria model.SearchCriteria) (*StartScrapingResult, error) {
	if err := criteria.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	searchURL := buildApolloSearchURL(criteria.JobTitle, criteria.Keywords, criteria.Location)
	s.logger.InfoContext(ctx, "starting scraping run", "search_url", searchURL,
		"number_of_leads", criteria.NumberOfLeads)

	run, err := s.scraper.StartRun(ctx, core.StartRunParams{
		SearchURL:    searchURL,
		TotalRecords: criteria.NumberOfLeads,
	})
	if err != nil {
		return nil, err
	}

	result := &StartScrapingResult{
		Success:       true,
		Message:       "Apollo lead scraping job started successfully",
		JobID:         run.ID,
		SearchURL:     searchURL,
		NumberOfLeads: criteria.NumberOfLeads,
	}

	job, saveErr := s.jobs.Create(ctx, &model.CreateSourcingJobRequest{
		JobID:           run.ID,
		Criteria:        criteria,
		ApolloSearchURL: searchURL,
	})
	if saveErr != nil {
		// The remote run exists regardless; report success and log the gap.
		s.logger.ErrorContext(ctx, "failed to persist sourcing job", "job_id", run.ID, "err", saveErr)
		return result, nil
	}
	result.DBID = job.ID

	return result, nil
}

// Status polls the remote run, merges its state into the local job row and
// returns the combined view.
func (s *SourcingService) Status(ctx context.Context, jobID string) (*JobStatusResponse, error) {
	if strings.TrimSpace(jobID) == "" {
		return nil, apperrors.Validation("job id is required")
	}

	run, err := s.scraper.GetRun(ctx, jobID)
	if err != nil {
		return nil, err
	}

	leadsFound := run.ItemsOutputted()
	// Finished runs sometimes report empty stats; fall back to counting the
	// dataset directly.
	if run.Status == model.RunStatusSucceeded && run.DefaultDatasetID != nil && leadsFound == 0 {
		items, countErr := s.scraper.GetDatasetItems(ctx, *run.DefaultDatasetID)
		if countErr != nil {
			s.logger.WarnContext(ctx, "failed to count dataset items", "job_id", jobID, "err", countErr)
		} else {
			leadsFound = len(items)
		}
	}

	duration := s.runDuration(run)

	view := model.JobStatusView{
		JobID:            run.ID,
		Status:           run.Status,
		StartedAt:        run.StartedAt,
		FinishedAt:       run.FinishedAt,
		Duration:         duration,
		Stats:            run.Stats,
		DefaultDatasetID: run.DefaultDatasetID,
		Progress:         run.Status.Progress(),
		EstimatedLeads:   leadsFound,
	}

	if updateErr := s.jobs.ApplyRunStatus(ctx, jobID, model.RunStatusUpdate{
		Status:     run.Status,
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
		DurationMS: duration,
		LeadsFound: leadsFound,
		DatasetID:  run.DefaultDatasetID,
	}); updateErr != nil && !errors.Is(updateErr, data.ErrSourcingJobNotFound) {
		s.logger.ErrorContext(ctx, "failed to update job status", "job_id", jobID, "err", updateErr)
	}

	// The retrieved flag is locally owned; merge it in from the stored row.
	if job, getErr := s.jobs.GetByExternalID(ctx, jobID); getErr == nil {
		view.ResultsRetrieved = job.ResultsRetrieved
	}

	return &JobStatusResponse{Success: true, Job: view}, nil
}

// List returns the most recent sourcing jobs with their stored status.
func (s *SourcingService) List(ctx context.Context) (*SourcingJobsResponse, error) {
	jobs, err := s.jobs.ListRecent(ctx, recentJobsLimit)
	if err != nil {
		return nil, err
	}

	views := make([]model.SourcingJobView, len(jobs))
	for i, job := range jobs {
		views[i] = job.View()
	}
	return &SourcingJobsResponse{Success: true, Jobs: views}, nil
}

func (s *SourcingService) runDuration(run *core.ActorRun) int64 {
	if run.StartedAt == nil {
		return 0
	}
	if run.FinishedAt != nil {
		return run.FinishedAt.Sub(*run.StartedAt).Milliseconds()
	}
	return s.now().Sub(*run.StartedAt).Milliseconds()
}

// buildApolloSearchURL reconstructs the Apollo people-search URL the actor
// expects: verified emails only, sorted by recommendation score, with the
// criteria mapped onto the search filters. Keywords are comma-split into
// organization tags.
func buildApolloSearchURL(jobTitle, keywords, location string) string {
	params := url.Values{}
	params.Set("sortByField", "recommendations_score")
	params.Set("contactEmailStatusV2[]", "verified")
	params.Set("sortAscending", "false")
	params.Set("contactEmailExcludeCatchAll", "true")

	if loc := strings.TrimSpace(location); loc != "" {
		params.Add("personLocations[]", loc)
	}
	if title := strings.TrimSpace(jobTitle); title != "" {
		params.Add("personTitles[]", strings.ToLower(title))
	}
	for _, keyword := range strings.Split(keywords, ",") {
		if k := strings.TrimSpace(keyword); k != "" {
			params.Add("qOrganizationKeywordTags[]", k)
		}
	}

	return apolloPeopleSearchBase + "?" + params.Encode()
}
