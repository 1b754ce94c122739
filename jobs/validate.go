package jobs

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ShahwaizZahid/Job-Listing/errors"
)

// Field length limits, counted in characters. The required text fields are
// measured after trimming, tags and posting_date_raw on the raw value.
const (
	MaxNameLen           = 255
	MaxTagsLen           = 1000
	MaxPostingDateRawLen = 128
)

const msgInvalidPostingDate = "Posting date must be a valid ISO-8601 datetime"

// FieldErrors maps a field name to the rule violations recorded against it.
// A record is valid exactly when the map is empty.
type FieldErrors map[string][]string

// Add records a violation against a field.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// Merge folds other's violations into fe.
func (fe FieldErrors) Merge(other FieldErrors) {
	for field, msgs := range other {
		fe[field] = append(fe[field], msgs...)
	}
}

// ValidationError carries the per-field violations for a rejected create or
// update. It unwraps to errors.ErrInvalidRequest so callers can branch on
// the failure class without inspecting individual fields.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	slices.Sort(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

func (e *ValidationError) Unwrap() error {
	return errors.ErrInvalidRequest
}

// Validate applies every field rule to the candidate record and collects
// all violations rather than stopping at the first.
func Validate(job *Job) FieldErrors {
	fe := make(FieldErrors)

	checkRequired(fe, "title", "Title", job.Title)
	checkRequired(fe, "company", "Company", job.Company)
	checkRequired(fe, "location", "Location", job.Location)

	if job.JobType != "" && !slices.Contains(JobTypes, job.JobType) {
		fe.Add("job_type", "Job type must be one of: "+strings.Join(JobTypes, ", "))
	}
	if utf8.RuneCountInString(job.Tags) > MaxTagsLen {
		fe.Add("tags", fmt.Sprintf("Tags must be %d characters or less", MaxTagsLen))
	}
	if utf8.RuneCountInString(job.PostingDateRaw) > MaxPostingDateRawLen {
		fe.Add("posting_date_raw", fmt.Sprintf("Posting date raw must be %d characters or less", MaxPostingDateRawLen))
	}

	return fe
}

func checkRequired(fe FieldErrors, field, label, value string) {
	trimmed := strings.TrimSpace(value)
	switch {
	case trimmed == "":
		fe.Add(field, label+" is required")
	case utf8.RuneCountInString(trimmed) > MaxNameLen:
		fe.Add(field, fmt.Sprintf("%s must be %d characters or less", label, MaxNameLen))
	}
}

// Layouts accepted for posting_date input. Offset-less forms are taken as UTC.
var postingDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParsePostingDate parses an ISO-8601 datetime string, accepting a literal
// trailing Z as the UTC offset marker. The result is normalized to UTC.
func ParsePostingDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range postingDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.Wrapf(errors.ErrInvalidRequest, "invalid ISO-8601 datetime %q", s)
}
