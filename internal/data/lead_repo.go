package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/JulienDevoi/sdrleads/internal/data/pgxutil"
	"github.com/JulienDevoi/sdrleads/internal/domain/model"
	apperrors "github.com/JulienDevoi/sdrleads/internal/errors"
)

// ErrLeadNotFound is returned when a lead is not found.
var ErrLeadNotFound = errors.New("lead not found")

const defaultLeadListLimit = 1000

// LeadRepo provides database operations for leads.
type LeadRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewLeadRepo creates a new LeadRepo with real time provider.
func NewLeadRepo(db *sql.DB) *LeadRepo {
	return &LeadRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewLeadRepoWithTimeProvider creates a new LeadRepo with a custom time provider (useful for tests).
func NewLeadRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *LeadRepo {
	return &LeadRepo{DB: db, timeProvider: tp}
}

// leadColumnList is the standard column list for lead queries.
const leadColumnList = `id, name, first_name, last_name, email, company, industry, headline,
		       status, source, sprint, category, rank, country, city, notes, title,
		       photo_url, linkedin_url, organization_logo_url, organization_website_url,
		       organization_linkedin_url, organization_estimated_num_employees,
		       sourcing_job_id, sent_to_lemlist, sent_to_lemlist_at, created_at, updated_at`

// SQL query constants for static queries.
const (
	leadGetByIDQuery = `
		SELECT ` + leadColumnList + `
		FROM leads
		WHERE id = $1`

	leadListQuery = `
		SELECT ` + leadColumnList + `
		FROM leads
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	leadListBySprintQuery = `
		SELECT ` + leadColumnList + `
		FROM leads
		WHERE sprint = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	leadDedupFieldsQuery = `
		SELECT id, email, created_at
		FROM leads
		ORDER BY created_at ASC`

	leadDistinctSprintsQuery = `
		SELECT DISTINCT sprint
		FROM leads
		WHERE sprint IS NOT NULL AND btrim(sprint) <> ''
		ORDER BY sprint ASC`

	leadStatusCountsQuery = `
		SELECT status, count(*) AS n
		FROM leads
		GROUP BY status`
)

// Create inserts a new manually-entered lead.
func (r *LeadRepo) Create(ctx context.Context, req *model.CreateLeadRequest) (*model.Lead, error) {
	if req == nil {
		return nil, errors.New("create lead request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid lead")
	}

	now := r.timeProvider.Now().UTC()
	var out model.Lead
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO leads (
				name, email, company, industry, status, source, sprint, title, country, city, notes, created_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
			) RETURNING `+leadColumnList,
			req.Name,
			req.Email,
			req.Company,
			req.Industry,
			req.Status,
			req.Source,
			req.Sprint,
			req.Title,
			req.Country,
			req.City,
			req.Notes,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Lead])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a lead by ID.
func (r *LeadRepo) GetByID(ctx context.Context, id string) (*model.Lead, error) {
	var lead model.Lead
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, leadGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		lead, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Lead])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("failed to get lead by ID: %w", apperrors.MapDBError(err))
	}
	return &lead, nil
}

// List retrieves leads ordered by creation time descending, optionally
// filtered to a sprint.
func (r *LeadRepo) List(ctx context.Context, opts model.LeadsListOptions) ([]*model.Lead, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLeadListLimit
	}
	offset := max(opts.Offset, 0)

	query := leadListQuery
	args := []any{limit, offset}
	if opts.Sprint != nil && strings.TrimSpace(*opts.Sprint) != "" {
		query = leadListBySprintQuery
		args = []any{strings.TrimSpace(*opts.Sprint), limit, offset}
	}

	var rowsOut []model.Lead
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Lead])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.Lead, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// UpdateStatus sets the workflow status of a lead.
func (r *LeadRepo) UpdateStatus(ctx context.Context, id string, status model.LeadStatus) (*model.Lead, error) {
	var out model.Lead
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE leads
			SET status = $1, updated_at = $2
			WHERE id = $3
			RETURNING `+leadColumnList,
			status, r.timeProvider.Now().UTC(), id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Lead])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete deletes a lead by ID.
func (r *LeadRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete lead: %w", apperrors.MapDBError(err))
	}
	return rows > 0, nil
}

// ListDedupFields returns the dedup projection of every lead, oldest first.
func (r *LeadRepo) ListDedupFields(ctx context.Context) ([]model.DedupFields, error) {
	var out []model.DedupFields
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, leadDedupFieldsQuery)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.DedupFields])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list dedup fields: %w", apperrors.MapDBError(err))
	}
	return out, nil
}

// DeleteByIDs deletes the given lead rows and returns the count removed.
func (r *LeadRepo) DeleteByIDs(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM leads WHERE id = ANY($1)`, ids)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete leads: %w", apperrors.MapDBError(err))
	}
	return int(rows), nil
}

// BulkInsert inserts transformed sourced leads in a single transaction using
// pgx batching, returning the stored rows.
func (r *LeadRepo) BulkInsert(ctx context.Context, leads []model.LeadInsert) ([]*model.Lead, error) {
	if len(leads) == 0 {
		return nil, nil
	}

	now := r.timeProvider.Now().UTC()
	out := make([]*model.Lead, 0, len(leads))
	err := pgxutil.WithPgxTx(ctx, r.DB, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for i := range leads {
			l := &leads[i]
			batch.Queue(`
				INSERT INTO leads (
					name, first_name, last_name, email, company, industry, headline,
					status, source, category, rank, country, city, notes, title,
					photo_url, linkedin_url, organization_logo_url, organization_website_url,
					organization_linkedin_url, organization_estimated_num_employees,
					sourcing_job_id, created_at
				) VALUES (
					$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
					$16, $17, $18, $19, $20, $21, $22, $23
				) RETURNING `+leadColumnList,
				l.Name, l.FirstName, l.LastName, l.Email, l.Company, l.Industry, l.Headline,
				l.Status, l.Source, l.Category, l.Rank, l.Country, l.City, l.Notes, l.Title,
				l.PhotoURL, l.LinkedinURL, l.OrganizationLogoURL, l.OrganizationWebsiteURL,
				l.OrganizationLinkedinURL, l.OrganizationEstimatedNumEmployees,
				l.SourcingJobID, now)
		}

		br := tx.SendBatch(ctx, batch)
		defer func() {
			_ = br.Close()
		}()

		for range leads {
			rows, err := br.Query()
			if err != nil {
				return err
			}
			lead, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Lead])
			if err != nil {
				return err
			}
			out = append(out, &lead)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("bulk insert leads: %w", apperrors.MapDBError(err))
	}
	return out, nil
}

// DistinctSprints returns the sorted set of non-empty sprint labels.
func (r *LeadRepo) DistinctSprints(ctx context.Context) ([]string, error) {
	var out []string
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, leadDistinctSprintsQuery)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowTo[string])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list sprint values: %w", apperrors.MapDBError(err))
	}
	return out, nil
}

// StatusCounts returns per-status lead counts.
func (r *LeadRepo) StatusCounts(ctx context.Context) (model.StatusCounts, error) {
	var counts model.StatusCounts
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, leadStatusCountsQuery)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var status string
			var n int
			if scanErr := rows.Scan(&status, &n); scanErr != nil {
				return scanErr
			}
			counts.Total += n
			switch model.LeadStatus(status) {
			case model.LeadStatusSourced:
				counts.Sourced = n
			case model.LeadStatusVerified:
				counts.Verified = n
			case model.LeadStatusEnriched:
				counts.Enriched = n
			case model.LeadStatusRejected:
				counts.Rejected = n
			}
		}
		return rows.Err()
	})
	if err != nil {
		return model.StatusCounts{}, fmt.Errorf("failed to count leads: %w", apperrors.MapDBError(err))
	}
	return counts, nil
}

// MarkSentToLemlist records a successful webhook delivery: it flips
// sent_to_lemlist, stamps the delivery time, and appends the note to any
// existing notes.
func (r *LeadRepo) MarkSentToLemlist(ctx context.Context, id string, note string) (*model.Lead, error) {
	var out model.Lead
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE leads
			SET sent_to_lemlist = TRUE,
			    sent_to_lemlist_at = $1,
			    notes = CASE
			        WHEN notes IS NULL OR notes = '' THEN $2
			        ELSE notes || E'\n\n' || $2
			    END,
			    updated_at = $1
			WHERE id = $3
			RETURNING `+leadColumnList,
			r.timeProvider.Now().UTC(), note, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Lead])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}
