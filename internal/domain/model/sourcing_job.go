package model

import (
	"errors"
	"strings"
	"time"
)

// RunStatus mirrors the Apify actor run states. The local job row stores
// whatever the remote service last reported; transitions are not validated
// locally, each poll overwrites the status wholesale.
type RunStatus string

const (
	RunStatusPending   RunStatus = "PENDING"
	RunStatusReady     RunStatus = "READY"
	RunStatusRunning   RunStatus = "RUNNING"
	RunStatusSucceeded RunStatus = "SUCCEEDED"
	RunStatusFailed    RunStatus = "FAILED"
	RunStatusTimedOut  RunStatus = "TIMED-OUT"
	RunStatusAborted   RunStatus = "ABORTED"
)

// Valid reports whether the run status is one of the known Apify states.
func (s RunStatus) Valid() bool {
	switch s {
	case RunStatusPending, RunStatusReady, RunStatusRunning,
		RunStatusSucceeded, RunStatusFailed, RunStatusTimedOut, RunStatusAborted:
		return true
	default:
		return false
	}
}

// Terminal reports whether the run has finished, successfully or not.
// Polling stops once a job reaches a terminal status.
func (s RunStatus) Terminal() bool {
	switch s {
	case RunStatusSucceeded, RunStatusFailed, RunStatusTimedOut, RunStatusAborted:
		return true
	default:
		return false
	}
}

// Progress derives a coarse 0/50/100 progress value from the run status.
func (s RunStatus) Progress() int {
	switch s {
	case RunStatusPending, RunStatusReady:
		return 0
	case RunStatusRunning:
		return 50
	case RunStatusSucceeded, RunStatusFailed, RunStatusTimedOut, RunStatusAborted:
		return 100
	default:
		return 0
	}
}

// SourcingJob represents one invocation of the external scraping actor.
type SourcingJob struct {
	ID              string    `json:"id"                 db:"id"`
	JobID           string    `json:"job_id"             db:"job_id"`
	JobTitle        string    `json:"job_title"          db:"job_title"`
	Keywords        string    `json:"keywords"           db:"keywords"`
	Location        string    `json:"location"           db:"location"`
	NumberOfLeads   int       `json:"number_of_leads"    db:"number_of_leads"`
	ApolloSearchURL string    `json:"apollo_search_url"  db:"apollo_search_url"`
	Status          RunStatus `json:"status"             db:"status"`
	LeadsFound      int       `json:"leads_found"        db:"leads_found"`
	DatasetID       *string   `json:"dataset_id,omitempty" db:"dataset_id"`
	DurationMS      int64     `json:"duration_ms"        db:"duration_ms"`

	// ResultsRetrieved is the only locally-owned lifecycle bit: it flips
	// false to true exactly once, after a successful ingestion.
	ResultsRetrieved bool `json:"results_retrieved" db:"results_retrieved"`

	StartedAt  *time.Time `json:"started_at,omitempty"  db:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty" db:"finished_at"`
	CreatedAt  time.Time  `json:"created_at"            db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"            db:"updated_at"`
}

// SearchCriteria are the user-submitted criteria for a scraping run.
type SearchCriteria struct {
	JobTitle      string `json:"jobTitle"`
	Keywords      string `json:"keywords"`
	Location      string `json:"location"`
	NumberOfLeads int    `json:"numberOfLeads"`
}

// Validate validates SearchCriteria. All fields are required.
func (c *SearchCriteria) Validate() error {
	if strings.TrimSpace(c.JobTitle) == "" ||
		strings.TrimSpace(c.Keywords) == "" ||
		strings.TrimSpace(c.Location) == "" ||
		c.NumberOfLeads == 0 {
		return errors.New("missing required fields: jobTitle, keywords, location, numberOfLeads")
	}
	if c.NumberOfLeads < 0 {
		return errors.New("numberOfLeads must be positive")
	}
	return nil
}

// CreateSourcingJobRequest represents parameters to persist a local job row
// after a run has been submitted to the remote actor.
type CreateSourcingJobRequest struct {
	JobID           string
	Criteria        SearchCriteria
	ApolloSearchURL string
}

// Validate validates CreateSourcingJobRequest.
func (r *CreateSourcingJobRequest) Validate() error {
	if strings.TrimSpace(r.JobID) == "" {
		return errors.New("job_id is required")
	}
	return r.Criteria.Validate()
}

// RunStatusUpdate carries the remote run state applied wholesale to the
// local job row on every poll.
type RunStatusUpdate struct {
	Status     RunStatus
	StartedAt  *time.Time
	FinishedAt *time.Time
	DurationMS int64
	LeadsFound int
	DatasetID  *string
}

// JobStatusView is the merged job status returned to the dashboard.
// Field names match what the polling frontend consumes.
type JobStatusView struct {
	JobID            string         `json:"jobId"`
	Status           RunStatus      `json:"status"`
	StartedAt        *time.Time     `json:"startedAt,omitempty"`
	FinishedAt       *time.Time     `json:"finishedAt,omitempty"`
	Duration         int64          `json:"duration"`
	Stats            map[string]any `json:"stats"`
	DefaultDatasetID *string        `json:"defaultDatasetId,omitempty"`
	Progress         int            `json:"progress"`
	EstimatedLeads   int            `json:"estimatedLeads"`
	ResultsRetrieved bool           `json:"resultsRetrieved"`
}

// SourcingJobView pairs a job's original criteria with its latest status.
type SourcingJobView struct {
	JobID     string         `json:"jobId"`
	Criteria  SearchCriteria `json:"criteria"`
	StartTime time.Time      `json:"startTime"`
	Status    JobStatusView  `json:"status"`
}

// StatusView derives the dashboard view of a stored job row.
func (j *SourcingJob) StatusView() JobStatusView {
	return JobStatusView{
		JobID:            j.JobID,
		Status:           j.Status,
		StartedAt:        j.StartedAt,
		FinishedAt:       j.FinishedAt,
		Duration:         j.DurationMS,
		Stats:            map[string]any{},
		DefaultDatasetID: j.DatasetID,
		Progress:         j.Status.Progress(),
		EstimatedLeads:   j.LeadsFound,
		ResultsRetrieved: j.ResultsRetrieved,
	}
}

// View derives the dashboard list entry for a stored job row.
func (j *SourcingJob) View() SourcingJobView {
	return SourcingJobView{
		JobID: j.JobID,
		Criteria: SearchCriteria{
			JobTitle:      j.JobTitle,
			Keywords:      j.Keywords,
			Location:      j.Location,
			NumberOfLeads: j.NumberOfLeads,
		},
		StartTime: j.CreatedAt,
		Status:    j.StatusView(),
	}
}
