// Package devseed populates a development database with sample leads and
// sourcing jobs so the dashboard has data to render. It is idempotent
// enough for repeated startups: seeding is skipped when leads already exist.
package devseed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JulienDevoi/sdrleads/internal/data"
	"github.com/JulienDevoi/sdrleads/internal/domain/model"
)

// Services bundles the repositories used for seeding.
type Services struct {
	Leads *data.LeadRepo
	Jobs  *data.SourcingJobRepo
	DB    *sql.DB
}

// NewServices constructs seeding repositories from a database handle.
func NewServices(db *sql.DB) Services {
	return Services{
		Leads: data.NewLeadRepo(db),
		Jobs:  data.NewSourcingJobRepo(db),
		DB:    db,
	}
}

// Run seeds sample data. Existing leads short-circuit the whole pass.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	existing, err := svcs.Leads.List(ctx, model.LeadsListOptions{Limit: 1})
	if err != nil {
		return fmt.Errorf("check existing leads: %w", err)
	}
	if len(existing) > 0 {
		logger.InfoContext(ctx, "devseed skipped, leads already present")
		return nil
	}

	job, err := seedSourcingJob(ctx, svcs.Jobs)
	if err != nil {
		return fmt.Errorf("seed sourcing job: %w", err)
	}

	created := seedLeads(ctx, svcs.Leads, logger)

	logger.InfoContext(ctx, "devseed completed", "leads", created, "sourcing_job", job.JobID)
	return nil
}

func seedSourcingJob(ctx context.Context, jobs *data.SourcingJobRepo) (*model.SourcingJob, error) {
	return jobs.Create(ctx, &model.CreateSourcingJobRequest{
		JobID: "seed-" + uuid.NewString(),
		Criteria: model.SearchCriteria{
			JobTitle:      "CTO",
			Keywords:      "fintech, saas",
			Location:      "France",
			NumberOfLeads: 25,
		},
		ApolloSearchURL: "https://app.apollo.io/#/people?personTitles[]=cto",
	})
}

func seedLeads(ctx context.Context, leads *data.LeadRepo, logger *slog.Logger) int {
	created := 0
	for _, req := range sampleLeads() {
		if _, err := leads.Create(ctx, req); err != nil {
			logger.WarnContext(ctx, "devseed lead create failed", "name", req.Name, "error", err)
			continue
		}
		created++
	}
	return created
}

func sampleLeads() []*model.CreateLeadRequest {
	sprint := "S1"
	return []*model.CreateLeadRequest{
		{
			Name:     "Marie Dubois",
			Email:    stringPtr("marie.dubois@example.com"),
			Company:  "Fintech Dynamics",
			Industry: "Financial Services",
			Status:   model.LeadStatusVerified,
			Source:   model.LeadSourceLinkedin,
			Sprint:   &sprint,
			Title:    stringPtr("CTO"),
			Country:  stringPtr("France"),
			City:     stringPtr("Paris"),
		},
		{
			Name:     "Lucas Meyer",
			Email:    stringPtr("lucas.meyer@example.com"),
			Company:  "CloudWorks",
			Industry: "Technology",
			Status:   model.LeadStatusSourced,
			Source:   model.LeadSourceWebsite,
			Sprint:   &sprint,
			Title:    stringPtr("VP Engineering"),
			Country:  stringPtr("Germany"),
			City:     stringPtr("Berlin"),
		},
		{
			Name:     "Sofia Rossi",
			Email:    stringPtr("sofia.rossi@example.com"),
			Company:  "Retail Next",
			Industry: "E-commerce",
			Status:   model.LeadStatusEnriched,
			Source:   model.LeadSourceReferral,
			Title:    stringPtr("Head of Growth"),
			Country:  stringPtr("Italy"),
			City:     stringPtr("Milan"),
		},
		{
			Name:     "Tom Janssen",
			Company:  "Medly Health",
			Industry: "Healthcare",
			Status:   model.LeadStatusSourced,
			Source:   model.LeadSourceColdCall,
			Notes:    stringPtr("Met at SaaStr, follow up in Q3"),
		},
	}
}

func stringPtr(s string) *string { return &s }
