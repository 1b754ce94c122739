package jobs

// SortPostingDateAsc requests ascending posting_date order from List. Any
// other sort value, including an absent one, yields descending order.
const SortPostingDateAsc = "posting_date_asc"

// Pagination defaults and bounds for List.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ListParams carries the filter, sort, and pagination inputs for List.
// Empty filter strings mean "no filter"; all supplied filters are combined
// with AND.
type ListParams struct {
	// Search matches as a case-insensitive substring of title or company.
	Search string
	// Location matches as a case-insensitive substring of location.
	Location string
	// JobType matches exactly.
	JobType string
	// Tag matches as a case-insensitive substring of the raw tags string,
	// not against individual tokens.
	Tag string
	// Sort selects the posting_date order; see SortPostingDateAsc.
	Sort string
	// Page is 1-indexed.
	Page     int
	PageSize int
}

// Normalize applies pagination defaults and clamps: page and page_size
// below 1 fall back to their defaults, page_size above MaxPageSize is
// clamped. Safe to call repeatedly.
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

// Offset returns the number of records skipped before the page window.
func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}
