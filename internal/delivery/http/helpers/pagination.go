package helpers

import (
	"errors"
	"net/http"
	"strconv"

	"classregistration/internal/domain"
)

// Pagination query parameter defaults and limits.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var errNotPositive = errors.New("must be a positive integer")

// QueryPositiveInt reads key from the query string. present is false when the key is absent
// or empty; err is set when it is present but not an integer >= 1.
func QueryPositiveInt(r *http.Request, key string) (v int, present bool, err error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, nil
	}
	v, err = strconv.Atoi(s)
	if err != nil || v < 1 {
		return 0, true, errNotPositive
	}
	return v, true, nil
}

// ParsePagination reads page and page_size from the query string. Invalid or missing values
// fall back to defaults and page_size is capped at MaxPageSize.
func ParsePagination(r *http.Request) domain.PaginationParams {
	p := domain.PaginationParams{Page: DefaultPage, PageSize: DefaultPageSize}
	if v, ok, err := QueryPositiveInt(r, "page"); ok && err == nil {
		p.Page = v
	}
	if v, ok, err := QueryPositiveInt(r, "page_size"); ok && err == nil {
		p.PageSize = min(v, MaxPageSize)
	}
	return p
}

// PaginationMeta is the pagination metadata included in paginated list responses.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPaginationMeta builds PaginationMeta; TotalPages is 0 when pageSize is 0.
func NewPaginationMeta(page, pageSize, total int) PaginationMeta {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return PaginationMeta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
