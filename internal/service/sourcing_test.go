package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/JulienDevoi/sdrleads/internal/core"
	"github.com/JulienDevoi/sdrleads/internal/data"
	"github.com/JulienDevoi/sdrleads/internal/domain/model"
	apperrors "github.com/JulienDevoi/sdrleads/internal/errors"
	"github.com/JulienDevoi/sdrleads/internal/mocks"
	"github.com/JulienDevoi/sdrleads/internal/testutil"
)

func testCriteria() model.SearchCriteria {
	return model.SearchCriteria{
		JobTitle:      "CTO",
		Keywords:      "fintech, saas",
		Location:      "France",
		NumberOfLeads: 50,
	}
}

func TestBuildApolloSearchURL(t *testing.T) {
	raw := buildApolloSearchURL("CTO", "fintech, saas", "France")
	require.True(t, strings.HasPrefix(raw, apolloPeopleSearchBase+"?"))

	params, err := url.ParseQuery(strings.TrimPrefix(raw, apolloPeopleSearchBase+"?"))
	require.NoError(t, err)

	assert.Equal(t, "recommendations_score", params.Get("sortByField"))
	assert.Equal(t, "verified", params.Get("contactEmailStatusV2[]"))
	assert.Equal(t, "false", params.Get("sortAscending"))
	assert.Equal(t, "true", params.Get("contactEmailExcludeCatchAll"))
	assert.Equal(t, []string{"France"}, params["personLocations[]"])
	assert.Equal(t, []string{"cto"}, params["personTitles[]"])
	assert.Equal(t, []string{"fintech", "saas"}, params["qOrganizationKeywordTags[]"])
}

func TestBuildApolloSearchURL_SkipsEmptyParts(t *testing.T) {
	raw := buildApolloSearchURL("", " , ,", "")
	params, err := url.ParseQuery(strings.TrimPrefix(raw, apolloPeopleSearchBase+"?"))
	require.NoError(t, err)

	assert.Empty(t, params["personLocations[]"])
	assert.Empty(t, params["personTitles[]"])
	assert.Empty(t, params["qOrganizationKeywordTags[]"])
}

func TestSourcingService_StartScraping(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockJobs := mocks.NewMockSourcingJobRepository(ctrl)
	mockScraper := mocks.NewMockScraperClient(ctrl)
	svc := NewSourcingService(SourcingServiceOptions{JobRepo: mockJobs, Scraper: mockScraper})

	criteria := testCriteria()
	mockScraper.EXPECT().StartRun(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, params core.StartRunParams) (*core.ActorRun, error) {
			assert.Equal(t, 50, params.TotalRecords)
			assert.Contains(t, params.SearchURL, apolloPeopleSearchBase)
			return &core.ActorRun{ID: "run-1", Status: model.RunStatusReady}, nil
		})
	mockJobs.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, req *model.CreateSourcingJobRequest) (*model.SourcingJob, error) {
			assert.Equal(t, "run-1", req.JobID)
			assert.Equal(t, criteria, req.Criteria)
			return &model.SourcingJob{ID: "db-1", JobID: "run-1"}, nil
		})

	res, err := svc.StartScraping(ctx, criteria)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "run-1", res.JobID)
	assert.Equal(t, "db-1", res.DBID)
	assert.Equal(t, 50, res.NumberOfLeads)
}

func TestSourcingService_StartScraping_PersistFailureStillSucceeds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockJobs := mocks.NewMockSourcingJobRepository(ctrl)
	mockScraper := mocks.NewMockScraperClient(ctrl)
	svc := NewSourcingService(SourcingServiceOptions{JobRepo: mockJobs, Scraper: mockScraper})

	mockScraper.EXPECT().StartRun(ctx, gomock.Any()).
		Return(&core.ActorRun{ID: "run-1", Status: model.RunStatusReady}, nil)
	mockJobs.EXPECT().Create(ctx, gomock.Any()).Return(nil, errors.New("db down"))

	res, err := svc.StartScraping(ctx, testCriteria())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "run-1", res.JobID)
	assert.Empty(t, res.DBID)
}

func TestSourcingService_StartScraping_InvalidCriteria(t *testing.T) {
	svc := NewSourcingService(SourcingServiceOptions{})
	_, err := svc.StartScraping(context.Background(), model.SearchCriteria{JobTitle: "CTO"})
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))
}

func TestSourcingService_Status(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockJobs := mocks.NewMockSourcingJobRepository(ctrl)
	mockScraper := mocks.NewMockScraperClient(ctrl)
	svc := NewSourcingService(SourcingServiceOptions{JobRepo: mockJobs, Scraper: mockScraper})

	started := testutil.TestTime()
	finished := started.Add(90 * time.Second)
	datasetID := "ds-1"
	run := &core.ActorRun{
		ID:               "run-1",
		Status:           model.RunStatusSucceeded,
		StartedAt:        &started,
		FinishedAt:       &finished,
		Stats:            map[string]any{"itemsOutputted": float64(42)},
		DefaultDatasetID: &datasetID,
	}
	mockScraper.EXPECT().GetRun(ctx, "run-1").Return(run, nil)
	mockJobs.EXPECT().ApplyRunStatus(ctx, "run-1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, upd model.RunStatusUpdate) error {
			assert.Equal(t, model.RunStatusSucceeded, upd.Status)
			assert.Equal(t, 42, upd.LeadsFound)
			assert.Equal(t, int64(90_000), upd.DurationMS)
			return nil
		})
	mockJobs.EXPECT().GetByExternalID(ctx, "run-1").
		Return(&model.SourcingJob{JobID: "run-1", ResultsRetrieved: true}, nil)

	res, err := svc.Status(ctx, "run-1")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 42, res.Job.EstimatedLeads)
	assert.Equal(t, 100, res.Job.Progress)
	assert.True(t, res.Job.ResultsRetrieved)
}

func TestSourcingService_Status_DatasetCountFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockJobs := mocks.NewMockSourcingJobRepository(ctrl)
	mockScraper := mocks.NewMockScraperClient(ctrl)
	svc := NewSourcingService(SourcingServiceOptions{JobRepo: mockJobs, Scraper: mockScraper})

	started := testutil.TestTime()
	finished := started.Add(time.Minute)
	datasetID := "ds-1"
	run := &core.ActorRun{
		ID:               "run-1",
		Status:           model.RunStatusSucceeded,
		StartedAt:        &started,
		FinishedAt:       &finished,
		Stats:            map[string]any{},
		DefaultDatasetID: &datasetID,
	}
	mockScraper.EXPECT().GetRun(ctx, "run-1").Return(run, nil)
	mockScraper.EXPECT().GetDatasetItems(ctx, "ds-1").
		Return([]map[string]any{testutil.ScraperRecord(1), testutil.ScraperRecord(2)}, nil)
	mockJobs.EXPECT().ApplyRunStatus(ctx, "run-1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, upd model.RunStatusUpdate) error {
			assert.Equal(t, 2, upd.LeadsFound)
			return nil
		})
	mockJobs.EXPECT().GetByExternalID(ctx, "run-1").Return(nil, data.ErrSourcingJobNotFound)

	res, err := svc.Status(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Job.EstimatedLeads)
	assert.False(t, res.Job.ResultsRetrieved)
}

func TestSourcingService_Status_RunningUsesNow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockJobs := mocks.NewMockSourcingJobRepository(ctrl)
	mockScraper := mocks.NewMockScraperClient(ctrl)
	started := testutil.TestTime()
	now := started.Add(30 * time.Second)
	svc := NewSourcingService(SourcingServiceOptions{
		JobRepo: mockJobs,
		Scraper: mockScraper,
		Now:     func() time.Time { return now },
	})

	run := &core.ActorRun{
		ID:        "run-1",
		Status:    model.RunStatusRunning,
		StartedAt: &started,
		Stats:     map[string]any{"pagesProcessed": float64(3)},
	}
	mockScraper.EXPECT().GetRun(ctx, "run-1").Return(run, nil)
	mockJobs.EXPECT().ApplyRunStatus(ctx, "run-1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, upd model.RunStatusUpdate) error {
			assert.Equal(t, int64(30_000), upd.DurationMS)
			return nil
		})
	mockJobs.EXPECT().GetByExternalID(ctx, "run-1").
		Return(&model.SourcingJob{JobID: "run-1"}, nil)

	res, err := svc.Status(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, 50, res.Job.Progress)
	assert.Equal(t, 3, res.Job.EstimatedLeads)
	assert.Equal(t, int64(30_000), res.Job.Duration)
}

func TestSourcingService_Status_MissingJobID(t *testing.T) {
	svc := NewSourcingService(SourcingServiceOptions{})
	_, err := svc.Status(context.Background(), "")
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))
}

func TestSourcingService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	mockJobs := mocks.NewMockSourcingJobRepository(ctrl)
	svc := NewSourcingService(SourcingServiceOptions{JobRepo: mockJobs})

	jobs := []*model.SourcingJob{
		{
			JobID:         "run-2",
			JobTitle:      "CTO",
			Keywords:      "saas",
			Location:      "France",
			NumberOfLeads: 25,
			Status:        model.RunStatusRunning,
			LeadsFound:    10,
			CreatedAt:     testutil.TestTime().Add(time.Hour),
		},
		{
			JobID:            "run-1",
			JobTitle:         "CFO",
			Keywords:         "fintech",
			Location:         "Germany",
			NumberOfLeads:    50,
			Status:           model.RunStatusSucceeded,
			LeadsFound:       50,
			ResultsRetrieved: true,
			CreatedAt:        testutil.TestTime(),
		},
	}
	mockJobs.EXPECT().ListRecent(ctx, recentJobsLimit).Return(jobs, nil)

	res, err := svc.List(ctx)
	require.NoError(t, err)
	assert.True(t, res.Success)
	require.Len(t, res.Jobs, 2)

	first := res.Jobs[0]
	assert.Equal(t, "run-2", first.JobID)
	assert.Equal(t, "CTO", first.Criteria.JobTitle)
	assert.Equal(t, 50, first.Status.Progress)
	assert.Equal(t, 10, first.Status.EstimatedLeads)

	second := res.Jobs[1]
	assert.Equal(t, "run-1", second.JobID)
	assert.True(t, second.Status.ResultsRetrieved)
	assert.Equal(t, 100, second.Status.Progress)
}
