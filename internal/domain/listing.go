package domain

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 20
)

// ListOptions are the query parameters every list endpoint accepts.
type ListOptions struct {
	PageNumber int
	PageSize   int
	Keyword    string
}

// WithDefaults fills unset paging fields.
func (o ListOptions) WithDefaults(pageSize int) ListOptions {
	if o.PageNumber <= 0 {
		o.PageNumber = DefaultPageNumber
	}
	if o.PageSize <= 0 {
		o.PageSize = pageSize
	}
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	return o
}

// Page is one list response. TotalCount is zero when the backend returned a
// bare array without paging metadata.
type Page struct {
	Items      []Record
	TotalCount int
}

// Total prefers the server count and falls back to the page length.
func (p Page) Total() int {
	if p.TotalCount > 0 {
		return p.TotalCount
	}
	return len(p.Items)
}
