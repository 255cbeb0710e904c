package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/JulienDevoi/sdrleads/internal/core"
	"github.com/JulienDevoi/sdrleads/internal/data"
	"github.com/JulienDevoi/sdrleads/internal/domain/model"
	apperrors "github.com/JulienDevoi/sdrleads/internal/errors"
)

// IngestResult reports the outcome of a results retrieval.
type IngestResult struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	LeadsCount  int    `json:"leadsCount"`
	JobID       string `json:"jobId"`
	DatasetID   string `json:"datasetId"`
	StoredLeads int    `json:"storedLeads"`
}

// IngestServiceOptions groups dependencies for IngestService.
type IngestServiceOptions struct {
	LeadRepo core.LeadRepository
	JobRepo  core.SourcingJobRepository
	Scraper  core.ScraperClient
	Logger   *slog.Logger
}

// IngestService pulls raw scraper records out of a run's dataset, transforms
// them into leads and stores them. Each job's results are ingested at most
// once.
type IngestService struct {
	leads   core.LeadRepository
	jobs    core.SourcingJobRepository
	scraper core.ScraperClient
	logger  *slog.Logger
}

// NewIngestService constructs a new IngestService.
func NewIngestService(opts IngestServiceOptions) *IngestService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &IngestService{
		leads:   opts.LeadRepo,
		jobs:    opts.JobRepo,
		scraper: opts.Scraper,
		logger:  logger.With("component", "ingest_service"),
	}
}

// RetrieveResults fetches the dataset of a finished run, transforms the raw
// records into leads and bulk-inserts them. The explicit datasetID overrides
// the one recorded on the job.
func (s *IngestService) RetrieveResults(ctx context.Context, jobID, datasetID string) (*IngestResult, error) {
	if strings.TrimSpace(jobID) == "" {
		return nil, apperrors.Validation("job id is required")
	}

	job, err := s.jobs.GetByExternalID(ctx, jobID)
	if err != nil {
		if errors.Is(err, data.ErrSourcingJobNotFound) {
			return nil, apperrors.NotFound("job not found")
		}
		return nil, err
	}

	if job.ResultsRetrieved {
		return nil, apperrors.Conflict("results for this job were already retrieved")
	}

	targetDatasetID := strings.TrimSpace(datasetID)
	if targetDatasetID == "" && job.DatasetID != nil {
		targetDatasetID = *job.DatasetID
	}
	if targetDatasetID == "" {
		return nil, apperrors.Validation("no dataset id available for this job")
	}

	records, err := s.scraper.GetDatasetItems(ctx, targetDatasetID)
	if err != nil {
		// Nothing stored, job left unmarked: the caller can retry.
		return nil, err
	}

	s.logger.InfoContext(ctx, "retrieved scraper records",
		"job_id", jobID, "dataset_id", targetDatasetID, "count", len(records))

	inserts := make([]model.LeadInsert, 0, len(records))
	for _, record := range records {
		inserts = append(inserts, transformRecord(record, job))
	}

	stored, err := s.leads.BulkInsert(ctx, inserts)
	if err != nil {
		// Job stays unmarked so the retrieval can be retried.
		return nil, fmt.Errorf("store sourced leads: %w", err)
	}

	// Flip the flag and record the final count in one conditional update.
	// Losing the claim means a concurrent caller ingested this run between
	// our pre-check and now.
	claimed, err := s.jobs.MarkResultsRetrieved(ctx, job.ID, len(records))
	if err != nil {
		return nil, fmt.Errorf("mark results retrieved: %w", err)
	}
	if !claimed {
		s.logger.WarnContext(ctx, "lost results claim after storing leads", "job_id", jobID)
		return nil, apperrors.Conflict("results for this job were already retrieved")
	}

	return &IngestResult{
		Success:     true,
		Message:     fmt.Sprintf("Successfully retrieved and stored %d leads", len(records)),
		LeadsCount:  len(records),
		JobID:       jobID,
		DatasetID:   targetDatasetID,
		StoredLeads: len(stored),
	}, nil
}

// Fallback extraction paths for fields the actor nests under the organization
// object in some dataset versions.
var orgFallbackExprs = map[string]string{
	"company":      "organization.name",
	"industry":     "organization.industry",
	"logo_url":     "organization.logo_url",
	"website_url":  "organization.website_url",
	"linkedin_url": "organization.linkedin_url",
	"employees":    "organization.estimated_num_employees",
}

// transformRecord maps one raw scraper record onto the lead row shape,
// deriving the category from the job criteria and tagging provenance.
func transformRecord(record map[string]any, job *model.SourcingJob) model.LeadInsert {
	firstName := stringField(record, "first_name")
	lastName := stringField(record, "last_name")
	name := stringField(record, "name")
	if name == "" {
		name = strings.TrimSpace(firstName + " " + lastName)
	}

	company := stringField(record, "organization_name")
	if company == "" {
		company = searchString(record, orgFallbackExprs["company"])
	}
	industry := stringField(record, "industry")
	if industry == "" {
		industry = searchString(record, orgFallbackExprs["industry"])
	}
	if industry == "" {
		industry = "Unknown"
	}

	employees := intField(record, "estimated_num_employees")
	if employees == nil {
		employees = searchInt(record, orgFallbackExprs["employees"])
	}
	websiteURL := stringField(record, "organization_website_url")
	if websiteURL == "" {
		websiteURL = searchString(record, orgFallbackExprs["website_url"])
	}
	orgLinkedinURL := stringField(record, "organization_linkedin_url")
	if orgLinkedinURL == "" {
		orgLinkedinURL = searchString(record, orgFallbackExprs["linkedin_url"])
	}
	logoURL := searchString(record, orgFallbackExprs["logo_url"])

	notes := fmt.Sprintf("Sourced via Apollo AI Agent. Job ID: %s", job.JobID)
	rank := "N/A"
	category := deriveCategory(job.JobTitle, job.Keywords, job.Location)

	return model.LeadInsert{
		Name:      name,
		FirstName: optional(firstName),
		LastName:  optional(lastName),
		Email:     optional(stringField(record, "email")),
		Company:   company,
		Industry:  industry,
		Headline:  optional(stringField(record, "headline")),

		Status: model.LeadStatusSourced,
		Source: model.LeadSourceApollo,

		Category: &category,
		Rank:     &rank,
		Country:  optional(stringField(record, "country")),
		City:     optional(stringField(record, "city")),
		Notes:    &notes,
		Title:    optional(stringField(record, "title")),

		PhotoURL:    optional(stringField(record, "photo_url")),
		LinkedinURL: optional(stringField(record, "linkedin_url")),

		OrganizationLogoURL:               optional(logoURL),
		OrganizationWebsiteURL:            optional(websiteURL),
		OrganizationLinkedinURL:           optional(orgLinkedinURL),
		OrganizationEstimatedNumEmployees: employees,

		SourcingJobID: &job.ID,
	}
}

// deriveCategory labels a lead batch from the search criteria. Rules are
// ordered; the first match wins.
func deriveCategory(jobTitle, keywords, location string) string {
	title := strings.ToLower(jobTitle)
	keys := strings.ToLower(keywords)

	switch {
	case containsAny(title, "engineer", "developer", "tech") || containsAny(keys, "saas", "software"):
		return "Technology & Software"
	case containsAny(title, "ceo", "cto", "cfo", "president", "founder"):
		return "Executive Leadership"
	case containsAny(title, "marketing", "sales", "business development"):
		return "Marketing & Sales"
	case containsAny(title, "finance", "accounting", "controller"):
		return "Finance & Accounting"
	case containsAny(title, "operations", "manager", "director"):
		return "Operations & Management"
	case containsAny(keys, "healthcare", "medical"):
		return "Healthcare"
	case containsAny(keys, "fintech", "financial"):
		return "Financial Services"
	case containsAny(keys, "crypto", "blockchain", "web3"):
		return "Crypto & Blockchain"
	case containsAny(keys, "ecommerce", "retail"):
		return "E-commerce & Retail"
	case location != "":
		return jobTitle + " - " + location
	default:
		return jobTitle
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func stringField(record map[string]any, key string) string {
	if v, ok := record[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func intField(record map[string]any, key string) *int {
	if f, ok := record[key].(float64); ok {
		n := int(f)
		return &n
	}
	return nil
}

func searchString(record map[string]any, expr string) string {
	v, err := jmespath.Search(expr, record)
	if err != nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func searchInt(record map[string]any, expr string) *int {
	v, err := jmespath.Search(expr, record)
	if err != nil {
		return nil
	}
	if f, ok := v.(float64); ok {
		n := int(f)
		return &n
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
