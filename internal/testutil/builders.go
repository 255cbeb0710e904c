package testutil

import (
	"fmt"

	"github.com/JulienDevoi/sdrleads/internal/domain/model"
)

// LeadRequestBuilder provides a fluent interface for building CreateLeadRequest objects for testing.
type LeadRequestBuilder struct {
	req *model.CreateLeadRequest
}

// NewLeadRequest creates a new LeadRequestBuilder with sensible defaults.
func NewLeadRequest() *LeadRequestBuilder {
	return &LeadRequestBuilder{
		req: &model.CreateLeadRequest{
			Name:     "Jane Prospect",
			Company:  "Acme Corp",
			Industry: "Technology",
			Status:   model.LeadStatusSourced,
			Source:   model.LeadSourceWebsite,
		},
	}
}

// WithName sets the lead name.
func (b *LeadRequestBuilder) WithName(name string) *LeadRequestBuilder {
	b.req.Name = name
	return b
}

// WithEmail sets the lead email.
func (b *LeadRequestBuilder) WithEmail(email string) *LeadRequestBuilder {
	b.req.Email = &email
	return b
}

// WithCompany sets the lead company.
func (b *LeadRequestBuilder) WithCompany(company string) *LeadRequestBuilder {
	b.req.Company = company
	return b
}

// WithStatus sets the lead status.
func (b *LeadRequestBuilder) WithStatus(status model.LeadStatus) *LeadRequestBuilder {
	b.req.Status = status
	return b
}

// WithSource sets the lead source.
func (b *LeadRequestBuilder) WithSource(source string) *LeadRequestBuilder {
	b.req.Source = source
	return b
}

// WithSprint sets the sprint label.
func (b *LeadRequestBuilder) WithSprint(sprint string) *LeadRequestBuilder {
	b.req.Sprint = &sprint
	return b
}

// WithNotes sets the lead notes.
func (b *LeadRequestBuilder) WithNotes(notes string) *LeadRequestBuilder {
	b.req.Notes = &notes
	return b
}

// Build returns the constructed CreateLeadRequest.
func (b *LeadRequestBuilder) Build() *model.CreateLeadRequest {
	return b.req
}

// SourcingJobRequestBuilder provides a fluent interface for building
// CreateSourcingJobRequest objects for testing.
type SourcingJobRequestBuilder struct {
	req *model.CreateSourcingJobRequest
}

// NewSourcingJobRequest creates a new SourcingJobRequestBuilder with sensible defaults.
func NewSourcingJobRequest() *SourcingJobRequestBuilder {
	return &SourcingJobRequestBuilder{
		req: &model.CreateSourcingJobRequest{
			JobID: "run-test-1",
			Criteria: model.SearchCriteria{
				JobTitle:      "CTO",
				Keywords:      "fintech, saas",
				Location:      "France",
				NumberOfLeads: 50,
			},
			ApolloSearchURL: "https://app.apollo.io/#/people?page=1",
		},
	}
}

// WithJobID sets the remote run id.
func (b *SourcingJobRequestBuilder) WithJobID(jobID string) *SourcingJobRequestBuilder {
	b.req.JobID = jobID
	return b
}

// WithCriteria sets the search criteria.
func (b *SourcingJobRequestBuilder) WithCriteria(c model.SearchCriteria) *SourcingJobRequestBuilder {
	b.req.Criteria = c
	return b
}

// Build returns the constructed CreateSourcingJobRequest.
func (b *SourcingJobRequestBuilder) Build() *model.CreateSourcingJobRequest {
	return b.req
}

// ScraperRecord builds a raw scraper result record in the shape the actor
// dataset returns. The index keeps generated emails unique.
func ScraperRecord(i int) map[string]any {
	return map[string]any{
		"first_name": fmt.Sprintf("First%d", i),
		"last_name":  fmt.Sprintf("Last%d", i),
		"name":       fmt.Sprintf("First%d Last%d", i, i),
		"email":      fmt.Sprintf("person%d@example.com", i),
		"title":      "Software Engineer",
		"headline":   "Engineer at Acme",
		"city":       "Paris",
		"country":    "France",
		"organization": map[string]any{
			"name":                    "Acme Corp",
			"industry":                "information technology",
			"logo_url":                "https://cdn.example.com/logo.png",
			"website_url":             "https://acme.example.com",
			"linkedin_url":            "https://linkedin.com/company/acme",
			"estimated_num_employees": float64(120),
		},
		"photo_url":    fmt.Sprintf("https://cdn.example.com/p%d.jpg", i),
		"linkedin_url": fmt.Sprintf("https://linkedin.com/in/person%d", i),
	}
}
