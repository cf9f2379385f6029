// internal/pkg/pagination/pagination.go
package pagination

// DefaultPageSize is the storefront's listing page size
const DefaultPageSize = 8

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// New computes pagination info for a collection of total items.
// TotalPages has a floor of 1 so an empty collection still yields one
// (empty) page. Out-of-range page requests are clamped into
// [1, TotalPages] rather than returning an empty slice silently.
func New(total int64, page, limit int) Pagination {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// Offset returns the database offset for the current page
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Slice paginates an in-memory list, preserving its order
func Slice[T any](items []T, page, limit int) ([]T, Pagination) {
	p := New(int64(len(items)), page, limit)

	start := p.Offset()
	if start >= len(items) {
		return []T{}, p
	}

	end := start + p.Limit
	if end > len(items) {
		end = len(items)
	}

	return items[start:end], p
}
