package jobs

import (
	"context"
	"database/sql"
	"strings"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"

	"github.com/ShahwaizZahid/Job-Listing/errors"
)

// Store provides persistence for job postings on top of bun.
type Store struct {
	db *bun.DB
}

// NewStore creates a job store backed by db.
func NewStore(db *bun.DB) *Store {
	return &Store{db: db}
}

// Create inserts a new job, assigning its id and timestamps. A unique
// index violation on the trimmed (title, company, location) triple is
// reported as a conflict so that racing duplicate creates never surface
// as internal errors.
func (s *Store) Create(ctx context.Context, job *Job) error {
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now

	if _, err := s.db.NewInsert().Model(job).Exec(ctx); err != nil {
		if isDuplicateKey(err) {
			return errors.NewConflictError("job %q at %q", job.Title, job.Company)
		}
		return errors.Wrap(err, "failed to insert job")
	}
	return nil
}

// Get retrieves a job by id.
func (s *Store) Get(ctx context.Context, id int64) (*Job, error) {
	job := new(Job)
	err := s.db.NewSelect().Model(job).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("job %d", id)
		}
		return nil, errors.Wrapf(err, "failed to get job %d", id)
	}
	return job, nil
}

// List returns the page of jobs selected by params plus the total number
// of matches before pagination. The result slice is never nil.
func (s *Store) List(ctx context.Context, params ListParams) ([]*Job, int, error) {
	params.Normalize()

	listed := make([]*Job, 0, params.PageSize)
	q := s.db.NewSelect().Model(&listed)
	q = applyFilters(q, params)

	if params.Sort == SortPostingDateAsc {
		q = q.Order("posting_date ASC")
	} else {
		q = q.Order("posting_date DESC")
	}

	total, err := q.Offset(params.Offset()).Limit(params.PageSize).ScanAndCount(ctx)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list jobs")
	}
	return listed, total, nil
}

// Update persists every mutable column of the record and refreshes
// updated_at. Moving the record onto another record's trimmed identity
// triple is reported as a conflict.
func (s *Store) Update(ctx context.Context, job *Job) error {
	job.UpdatedAt = time.Now().UTC()

	res, err := s.db.NewUpdate().Model(job).WherePK().Exec(ctx)
	if err != nil {
		if isDuplicateKey(err) {
			return errors.NewConflictError("job %q at %q", job.Title, job.Company)
		}
		return errors.Wrapf(err, "failed to update job %d", job.ID)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.NewNotFoundError("job %d", job.ID)
	}
	return nil
}

// Delete removes a job by id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.NewDelete().Model((*Job)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return errors.Wrapf(err, "failed to delete job %d", id)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.NewNotFoundError("job %d", id)
	}
	return nil
}

// ExistsTriple reports whether a job with the same trimmed
// (title, company, location) triple already exists.
func (s *Store) ExistsTriple(ctx context.Context, title, company, location string) (bool, error) {
	exists, err := s.db.NewSelect().Model((*Job)(nil)).
		Where("TRIM(title) = ?", strings.TrimSpace(title)).
		Where("TRIM(company) = ?", strings.TrimSpace(company)).
		Where("TRIM(location) = ?", strings.TrimSpace(location)).
		Exists(ctx)
	if err != nil {
		return false, errors.Wrap(err, "failed to check for duplicate job")
	}
	return exists, nil
}

func applyFilters(q *bun.SelectQuery, params ListParams) *bun.SelectQuery {
	if params.Search != "" {
		pattern := "%" + strings.ToLower(params.Search) + "%"
		q = q.Where("(LOWER(title) LIKE ? OR LOWER(company) LIKE ?)", pattern, pattern)
	}
	if params.Location != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(params.Location)+"%")
	}
	if params.JobType != "" {
		q = q.Where("job_type = ?", params.JobType)
	}
	if params.Tag != "" {
		q = q.Where("LOWER(tags) LIKE ?", "%"+strings.ToLower(params.Tag)+"%")
	}
	return q
}

// isDuplicateKey checks if err is a SQLite unique constraint violation.
func isDuplicateKey(err error) bool {
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		return serr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
