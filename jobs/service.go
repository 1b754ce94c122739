package jobs

import (
	"context"
	"slices"

	"go.uber.org/zap"

	"github.com/ShahwaizZahid/Job-Listing/errors"
	"github.com/ShahwaizZahid/Job-Listing/logger"
)

// Service orchestrates job posting operations: validation, duplicate
// detection, and persistence. All entry points share the same validator
// and the same error taxonomy.
type Service struct {
	store *Store
	log   *zap.SugaredLogger
}

// NewService creates a Service using store for persistence. A nil log is
// replaced with a no-op logger.
func NewService(store *Store, log *zap.SugaredLogger) *Service {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Service{store: store, log: log}
}

// CreateInput carries the client-supplied fields for a new job posting.
// Empty strings are treated as unset.
type CreateInput struct {
	Title          string `json:"title"`
	Company        string `json:"company"`
	Location       string `json:"location"`
	PostingDate    string `json:"posting_date"`
	PostingDateRaw string `json:"posting_date_raw"`
	JobType        string `json:"job_type"`
	Tags           string `json:"tags"`
}

// UpdateInput carries the fields of a partial update. A nil pointer means
// the field was not supplied and keeps its stored value; a present empty
// string overwrites with the empty value.
type UpdateInput struct {
	Title          *string `json:"title"`
	Company        *string `json:"company"`
	Location       *string `json:"location"`
	PostingDate    *string `json:"posting_date"`
	PostingDateRaw *string `json:"posting_date_raw"`
	JobType        *string `json:"job_type"`
	Tags           *string `json:"tags"`
}

// Empty reports whether no updatable field was supplied.
func (in *UpdateInput) Empty() bool {
	return in.Title == nil && in.Company == nil && in.Location == nil &&
		in.PostingDate == nil && in.PostingDateRaw == nil &&
		in.JobType == nil && in.Tags == nil
}

// Create validates the input, rejects duplicate (title, company, location)
// triples, and persists a new posting. Validation failures are returned as
// a *ValidationError carrying every violated rule.
func (s *Service) Create(ctx context.Context, in *CreateInput) (*Job, error) {
	job := &Job{
		Title:          in.Title,
		Company:        in.Company,
		Location:       in.Location,
		PostingDateRaw: in.PostingDateRaw,
		JobType:        in.JobType,
		Tags:           in.Tags,
	}

	fieldErrs := make(FieldErrors)
	if in.PostingDate != "" {
		t, err := ParsePostingDate(in.PostingDate)
		if err != nil {
			fieldErrs.Add("posting_date", msgInvalidPostingDate)
		} else {
			job.PostingDate = &t
		}
	}
	fieldErrs.Merge(Validate(job))
	if len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	exists, err := s.store.ExistsTriple(ctx, job.Title, job.Company, job.Location)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.NewConflictError("job %q at %q", job.Title, job.Company)
	}

	// The unique index backstops this check-then-insert window: a racing
	// duplicate insert comes back from the store as a conflict, not an
	// internal error.
	if err := s.store.Create(ctx, job); err != nil {
		return nil, err
	}

	s.log.Infow("job created",
		logger.FieldJobID, job.ID,
		"title", job.Title,
		"company", job.Company,
	)
	return job, nil
}

// Get fetches a job by id.
func (s *Service) Get(ctx context.Context, id int64) (*Job, error) {
	return s.store.Get(ctx, id)
}

// List returns the jobs matching params and the total match count before
// pagination.
func (s *Service) List(ctx context.Context, params ListParams) ([]*Job, int, error) {
	listed, total, err := s.store.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	s.log.Debugw("listed jobs",
		logger.FieldCount, len(listed),
		logger.FieldTotal, total,
		logger.FieldPage, params.Page,
	)
	return listed, total, nil
}

// Update applies a partial update: only fields present in the input
// overwrite the stored record, and the merged result is validated as a
// whole before anything is persisted. A not-found id short-circuits; an
// input with no known fields is rejected.
func (s *Service) Update(ctx context.Context, id int64, in *UpdateInput) (*Job, error) {
	job, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Empty() {
		return nil, &ValidationError{Fields: FieldErrors{
			"payload": {"At least one field required"},
		}}
	}

	if in.Title != nil {
		job.Title = *in.Title
	}
	if in.Company != nil {
		job.Company = *in.Company
	}
	if in.Location != nil {
		job.Location = *in.Location
	}
	if in.PostingDateRaw != nil {
		job.PostingDateRaw = *in.PostingDateRaw
	}
	if in.JobType != nil {
		job.JobType = *in.JobType
	}
	if in.Tags != nil {
		job.Tags = *in.Tags
	}

	fieldErrs := make(FieldErrors)
	if in.PostingDate != nil {
		if *in.PostingDate == "" {
			job.PostingDate = nil
		} else if t, perr := ParsePostingDate(*in.PostingDate); perr != nil {
			fieldErrs.Add("posting_date", msgInvalidPostingDate)
		} else {
			job.PostingDate = &t
		}
	}
	fieldErrs.Merge(Validate(job))
	if len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	if err := s.store.Update(ctx, job); err != nil {
		return nil, err
	}

	s.log.Infow("job updated", logger.FieldJobID, job.ID)
	return job, nil
}

// Delete removes a job by id. Not exposed over HTTP.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Infow("job deleted", logger.FieldJobID, id)
	return nil
}

// JobTypes returns the accepted job_type values.
func (s *Service) JobTypes() []string {
	return slices.Clone(JobTypes)
}
