package services

// DefaultPageSize is the page size of the console tables
const DefaultPageSize = 10

// Page is one page of a list the API returns whole
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// Paginate cuts page (1-based) out of items. Out of range pages are
// clamped to the nearest existing page.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(items)
	pages := (total + size - 1) / size
	if pages == 0 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}
	return Page[T]{
		Items:      items[start:end],
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: pages,
	}
}

// HasPrev reports whether there is a page before this one
func (p Page[T]) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether there is a page after this one
func (p Page[T]) HasNext() bool { return p.Page < p.TotalPages }

// Pages lists the page numbers for the pager
func (p Page[T]) Pages() []int {
	out := make([]int, p.TotalPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
