package query

import (
	"net/url"
	"strconv"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page is a clamped page request: Number >= 1 and Size in [1, MaxPageSize].
type Page struct {
	Number int
	Size   int
}

// ParsePage reads page and pageSize from the query string. Missing or
// non-numeric values fall back to the defaults, out of range values are
// clamped.
func ParsePage(v url.Values, defaultSize int) Page {
	return NewPage(intOr(v.Get("page"), 1), intOr(v.Get("pageSize"), defaultSize))
}

func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = 1
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Number: number, Size: size}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

func NewPagination(total int, p Page) Pagination {
	return Pagination{
		Total:      total,
		Page:       p.Number,
		PageSize:   p.Size,
		TotalPages: (total + p.Size - 1) / p.Size,
	}
}

func (p Pagination) HasPrev() bool {
	return p.Page > 1
}

func (p Pagination) HasNext() bool {
	return p.Page < p.TotalPages
}

// Paginated is the {items, pagination} envelope.
type Paginated[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

func intOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
