// Package pagination computes offsets and page-navigation view-models for
// paginated listings.
package pagination

// Offset returns the row offset for the given page, 1-based.
func Offset(limit, page int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}

// Pagination is the page-navigation view-model rendered alongside a listing.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	Prev        int   `json:"prev"`
	Next        int   `json:"next"`
	Pages       []int `json:"pages"`
}

// New builds a Pagination for the given page size, requested page and total
// row count. The current page is clamped into [1, totalPages].
func New(limit, page int, total int64) Pagination {
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

	prev := page - 1
	if prev < 1 {
		prev = 1
	}
	next := page + 1
	if next > totalPages {
		next = totalPages
	}

	pages := make([]int, totalPages)
	for i := range pages {
		pages[i] = i + 1
	}

	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		Prev:        prev,
		Next:        next,
		Pages:       pages,
	}
}
