package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStatus_Progress(t *testing.T) {
	tests := []struct {
		status RunStatus
		want   int
	}{
		{RunStatusPending, 0},
		{RunStatusReady, 0},
		{RunStatusRunning, 50},
		{RunStatusSucceeded, 100},
		{RunStatusFailed, 100},
		{RunStatusTimedOut, 100},
		{RunStatusAborted, 100},
		{RunStatus("SOMETHING-NEW"), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.status.Progress(), string(tt.status))
	}
}

func TestRunStatus_Terminal(t *testing.T) {
	assert.False(t, RunStatusPending.Terminal())
	assert.False(t, RunStatusReady.Terminal())
	assert.False(t, RunStatusRunning.Terminal())
	assert.True(t, RunStatusSucceeded.Terminal())
	assert.True(t, RunStatusFailed.Terminal())
	assert.True(t, RunStatusTimedOut.Terminal())
	assert.True(t, RunStatusAborted.Terminal())
}

func TestSearchCriteria_Validate(t *testing.T) {
	valid := SearchCriteria{JobTitle: "CEO", Keywords: "fintech", Location: "NY", NumberOfLeads: 500}
	require.NoError(t, valid.Validate())

	missing := []SearchCriteria{
		{Keywords: "fintech", Location: "NY", NumberOfLeads: 500},
		{JobTitle: "CEO", Location: "NY", NumberOfLeads: 500},
		{JobTitle: "CEO", Keywords: "fintech", NumberOfLeads: 500},
		{JobTitle: "CEO", Keywords: "fintech", Location: "NY"},
	}
	for i, c := range missing {
		assert.Error(t, c.Validate(), i)
	}
}

func TestSourcingJob_View(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	datasetID := "ds-1"
	job := SourcingJob{
		ID:               "row-1",
		JobID:            "run-abc",
		JobTitle:         "CTO",
		Keywords:         "saas",
		Location:         "Berlin",
		NumberOfLeads:    100,
		Status:           RunStatusRunning,
		LeadsFound:       42,
		DatasetID:        &datasetID,
		DurationMS:       1500,
		ResultsRetrieved: false,
		CreatedAt:        created,
	}

	view := job.View()
	assert.Equal(t, "run-abc", view.JobID)
	assert.Equal(t, "CTO", view.Criteria.JobTitle)
	assert.Equal(t, created, view.StartTime)
	assert.Equal(t, 50, view.Status.Progress)
	assert.Equal(t, 42, view.Status.EstimatedLeads)
	assert.Equal(t, &datasetID, view.Status.DefaultDatasetID)
	assert.NotNil(t, view.Status.Stats)
}

func TestStatsFromCounts(t *testing.T) {
	stats := StatsFromCounts(StatusCounts{Total: 40, Sourced: 20, Verified: 10, Enriched: 6, Rejected: 4})
	assert.Equal(t, 40, stats.TotalLeads)
	assert.Equal(t, 16, stats.QualifiedLeads)
	assert.Equal(t, 15.0, stats.ConversionRate)

	empty := StatsFromCounts(StatusCounts{})
	assert.Equal(t, 0, empty.TotalLeads)
	assert.Equal(t, 0.0, empty.ConversionRate)
}
