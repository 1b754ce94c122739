// Package jobs implements job posting storage, validation, and the
// create/read/update orchestration behind the HTTP surface.
package jobs

import (
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// JobTypes is the set of accepted values for a posting's job_type field.
// Matching is exact and case-sensitive.
var JobTypes = []string{"Full-time", "Part-time", "Contract", "Internship"}

// Job is a single job posting. Tags are stored as one comma-delimited
// string; use TagList and SetTagList for the token form. The created_at
// and updated_at timestamps are persisted but never serialized into API
// responses.
type Job struct {
	bun.BaseModel `bun:"table:jobs" json:"-"`

	ID             int64      `bun:"id,pk,autoincrement" json:"id"`
	Title          string     `bun:"title,notnull" json:"title"`
	Company        string     `bun:"company,notnull" json:"company"`
	Location       string     `bun:"location,notnull" json:"location"`
	PostingDate    *time.Time `bun:"posting_date" json:"posting_date"`
	PostingDateRaw string     `bun:"posting_date_raw" json:"posting_date_raw"`
	JobType        string     `bun:"job_type" json:"job_type"`
	Tags           string     `bun:"tags" json:"tags"`
	CreatedAt      time.Time  `bun:"created_at,notnull" json:"-"`
	UpdatedAt      time.Time  `bun:"updated_at,notnull" json:"-"`
}

// TagList splits the stored tags string on commas, trims each token, and
// drops empties.
func (j *Job) TagList() []string {
	if j.Tags == "" {
		return nil
	}
	var tags []string
	for _, tok := range strings.Split(j.Tags, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			tags = append(tags, tok)
		}
	}
	return tags
}

// SetTagList stores the given tokens as a comma-delimited string, trimming
// each token and dropping empties. An empty list clears the field.
func (j *Job) SetTagList(tags []string) {
	var kept []string
	for _, tok := range tags {
		if tok = strings.TrimSpace(tok); tok != "" {
			kept = append(kept, tok)
		}
	}
	j.Tags = strings.Join(kept, ",")
}
