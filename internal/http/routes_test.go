package httpx

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/JulienDevoi/sdrleads/internal/domain/model"
	"github.com/JulienDevoi/sdrleads/internal/testutil"
)

func TestHealthz(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	router, _ := newTestRouter(ctrl)

	rec := doJSON(t, router, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	router, m := newTestRouter(ctrl)

	m.leads.EXPECT().StatusCounts(gomock.Any()).
		Return(model.StatusCounts{Total: 4, Verified: 1, Enriched: 1}, nil)

	rec := doJSON(t, router, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalLeads":4`)
	assert.Contains(t, rec.Body.String(), `"qualifiedLeads":2`)
}

func TestSourcingJobs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	router, m := newTestRouter(ctrl)

	jobs := []*model.SourcingJob{{
		JobID:         "run-1",
		JobTitle:      "CTO",
		Keywords:      "saas",
		Location:      "France",
		NumberOfLeads: 50,
		Status:        model.RunStatusSucceeded,
		LeadsFound:    48,
		CreatedAt:     testutil.TestTime().Add(time.Hour),
	}}
	m.jobs.EXPECT().ListRecent(gomock.Any(), 5).Return(jobs, nil)

	rec := doJSON(t, router, http.MethodGet, "/api/sourcing-jobs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"jobId":"run-1"`)
	assert.Contains(t, rec.Body.String(), `"estimatedLeads":48`)
}

func TestUnknownRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	router, _ := newTestRouter(ctrl)

	rec := doJSON(t, router, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
