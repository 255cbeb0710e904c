package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/JulienDevoi/sdrleads/internal/data/pgxutil"
	"github.com/JulienDevoi/sdrleads/internal/domain/model"
	apperrors "github.com/JulienDevoi/sdrleads/internal/errors"
)

// ErrSourcingJobNotFound is returned when a sourcing job is not found.
var ErrSourcingJobNotFound = errors.New("sourcing job not found")

const defaultJobListLimit = 100

// SourcingJobRepo provides database operations for sourcing jobs.
type SourcingJobRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewSourcingJobRepo creates a new SourcingJobRepo with real time provider.
func NewSourcingJobRepo(db *sql.DB) *SourcingJobRepo {
	return &SourcingJobRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewSourcingJobRepoWithTimeProvider creates a new SourcingJobRepo with a custom time provider.
func NewSourcingJobRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *SourcingJobRepo {
	return &SourcingJobRepo{DB: db, timeProvider: tp}
}

const sourcingJobColumnList = `id, job_id, job_title, keywords, location, number_of_leads,
		       apollo_search_url, status, leads_found, dataset_id, duration_ms,
		       results_retrieved, started_at, finished_at, created_at, updated_at`

const (
	sourcingJobGetByExternalIDQuery = `
		SELECT ` + sourcingJobColumnList + `
		FROM sourcing_jobs
		WHERE job_id = $1`

	sourcingJobListRecentQuery = `
		SELECT ` + sourcingJobColumnList + `
		FROM sourcing_jobs
		ORDER BY created_at DESC
		LIMIT $1`
)

// Create persists a local job row after a run was submitted to the remote actor.
func (r *SourcingJobRepo) Create(ctx context.Context, req *model.CreateSourcingJobRequest) (*model.SourcingJob, error) {
	if req == nil {
		return nil, errors.New("create sourcing job request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid sourcing job")
	}

	now := r.timeProvider.Now().UTC()
	var out model.SourcingJob
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO sourcing_jobs (
				job_id, job_title, keywords, location, number_of_leads,
				apollo_search_url, status, created_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8
			) RETURNING `+sourcingJobColumnList,
			req.JobID,
			req.Criteria.JobTitle,
			req.Criteria.Keywords,
			req.Criteria.Location,
			req.Criteria.NumberOfLeads,
			req.ApolloSearchURL,
			model.RunStatusPending,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.SourcingJob])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByExternalID retrieves a job by its remote run id.
func (r *SourcingJobRepo) GetByExternalID(ctx context.Context, jobID string) (*model.SourcingJob, error) {
	var job model.SourcingJob
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, sourcingJobGetByExternalIDQuery, jobID)
		if err != nil {
			return err
		}
		defer rows.Close()
		job, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.SourcingJob])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSourcingJobNotFound
		}
		return nil, fmt.Errorf("failed to get sourcing job: %w", apperrors.MapDBError(err))
	}
	return &job, nil
}

// ApplyRunStatus overwrites the remote-owned columns with the latest poll
// result. The write is idempotent; re-applying the same state is harmless.
func (r *SourcingJobRepo) ApplyRunStatus(ctx context.Context, jobID string, upd model.RunStatusUpdate) error {
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `
			UPDATE sourcing_jobs
			SET status = $1,
			    started_at = COALESCE($2, started_at),
			    finished_at = COALESCE($3, finished_at),
			    duration_ms = $4,
			    leads_found = $5,
			    dataset_id = COALESCE($6, dataset_id),
			    updated_at = $7
			WHERE job_id = $8`,
			upd.Status,
			upd.StartedAt,
			upd.FinishedAt,
			upd.DurationMS,
			upd.LeadsFound,
			upd.DatasetID,
			r.timeProvider.Now().UTC(),
			jobID,
		)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return ErrSourcingJobNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSourcingJobNotFound) {
			return err
		}
		return fmt.Errorf("failed to apply run status: %w", apperrors.MapDBError(err))
	}
	return nil
}

// MarkResultsRetrieved flips results_retrieved false to true and records the
// final leads_found count. The conditional WHERE makes the flip atomic:
// exactly one caller observes true, everyone after gets false.
func (r *SourcingJobRepo) MarkResultsRetrieved(ctx context.Context, id string, leadsFound int) (bool, error) {
	var flipped bool
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `
			UPDATE sourcing_jobs
			SET results_retrieved = TRUE,
			    leads_found = $2,
			    updated_at = $3
			WHERE id = $1 AND results_retrieved = FALSE`,
			id, leadsFound, r.timeProvider.Now().UTC())
		if err != nil {
			return err
		}
		flipped = ct.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to mark results retrieved: %w", apperrors.MapDBError(err))
	}
	return flipped, nil
}

// ListRecent returns the most recent jobs, newest first.
func (r *SourcingJobRepo) ListRecent(ctx context.Context, limit int) ([]*model.SourcingJob, error) {
	if limit <= 0 {
		limit = defaultJobListLimit
	}

	var rowsOut []model.SourcingJob
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, sourcingJobListRecentQuery, limit)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.SourcingJob])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list sourcing jobs: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.SourcingJob, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
