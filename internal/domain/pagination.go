package domain

// PaginationParams is a 1-based page request for operator list queries.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Limit is the SQL LIMIT for the page.
func (p PaginationParams) Limit() int {
	if p.PageSize < 0 {
		return 0
	}
	return p.PageSize
}

// Offset is the SQL OFFSET for the page; pages below 1 are treated as the first.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit()
}
