package httpx

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/JulienDevoi/sdrleads/internal/core"
	"github.com/JulienDevoi/sdrleads/internal/domain/model"
	"github.com/JulienDevoi/sdrleads/internal/service"
	"github.com/JulienDevoi/sdrleads/internal/testutil"
)

func TestStartScraping(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	router, m := newTestRouter(ctrl)

	m.scraper.EXPECT().StartRun(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, params core.StartRunParams) (*core.ActorRun, error) {
			assert.Equal(t, 25, params.TotalRecords)
			assert.Contains(t, params.SearchURL, "personTitles%5B%5D=cto")
			assert.Contains(t, params.SearchURL, "qOrganizationKeywordTags%5B%5D=fintech")
			return &core.ActorRun{ID: "run-1", Status: model.RunStatusReady}, nil
		})
	m.jobs.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(&model.SourcingJob{ID: "db-1", JobID: "run-1"}, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/apollo-scraper",
		`{"jobTitle":"CTO","keywords":"fintech","location":"France","numberOfLeads":25}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result service.StartScrapingResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, "run-1", result.JobID)
	assert.Equal(t, "db-1", result.DBID)
}

func TestStartScraping_MissingFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	router, _ := newTestRouter(ctrl)

	rec := doJSON(t, router, http.MethodPost, "/api/apollo-scraper",
		`{"jobTitle":"CTO"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing required fields")
}

func TestJobStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	router, m := newTestRouter(ctrl)

	started := testutil.TestTime()
	run := &core.ActorRun{
		ID:        "run-1",
		Status:    model.RunStatusRunning,
		StartedAt: &started,
		Stats:     map[string]any{"itemsOutputted": float64(12)},
	}
	m.scraper.EXPECT().GetRun(gomock.Any(), "run-1").Return(run, nil)
	m.jobs.EXPECT().ApplyRunStatus(gomock.Any(), "run-1", gomock.Any()).Return(nil)
	m.jobs.EXPECT().GetByExternalID(gomock.Any(), "run-1").
		Return(&model.SourcingJob{JobID: "run-1"}, nil)

	rec := doJSON(t, router, http.MethodGet, "/api/apollo-scraper/status?jobId=run-1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res service.JobStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 50, res.Job.Progress)
	assert.Equal(t, 12, res.Job.EstimatedLeads)
}

func TestJobStatus_MissingJobID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	router, _ := newTestRouter(ctrl)

	rec := doJSON(t, router, http.MethodGet, "/api/apollo-scraper/status", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRetrieveResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	router, m := newTestRouter(ctrl)

	datasetID := "ds-1"
	job := &model.SourcingJob{ID: "db-1", JobID: "run-1", DatasetID: &datasetID}
	m.jobs.EXPECT().GetByExternalID(gomock.Any(), "run-1").Return(job, nil)
	m.scraper.EXPECT().GetDatasetItems(gomock.Any(), "ds-1").
		Return([]map[string]any{testutil.ScraperRecord(1)}, nil)
	m.leads.EXPECT().BulkInsert(gomock.Any(), gomock.Len(1)).
		Return([]*model.Lead{{ID: "l1"}}, nil)
	m.jobs.EXPECT().MarkResultsRetrieved(gomock.Any(), "db-1", 1).Return(true, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/apollo-scraper/results",
		`{"jobId":"run-1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result service.IngestResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1, result.StoredLeads)
}

func TestRetrieveResults_AlreadyRetrieved(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	router, m := newTestRouter(ctrl)

	datasetID := "ds-1"
	job := &model.SourcingJob{ID: "db-1", JobID: "run-1", DatasetID: &datasetID, ResultsRetrieved: true}
	m.jobs.EXPECT().GetByExternalID(gomock.Any(), "run-1").Return(job, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/apollo-scraper/results",
		`{"jobId":"run-1"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already retrieved")
}
