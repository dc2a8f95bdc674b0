package pagination

const (
	// DefaultPageSize is used when a page size is not provided.
	DefaultPageSize = 10
	// MaxPageSize caps how many rows a single page shows.
	MaxPageSize = 100
	// WindowSize is how many consecutive page numbers are shown at once.
	WindowSize = 5
)

// PageSizes are the selectable page sizes.
var PageSizes = []int{10, 25, 50, 100}

// Link is one entry of the page selector: a page number or an ellipsis.
type Link struct {
	Number   int
	Ellipsis bool
	Current  bool
}

// Page describes the visible slice of a list.
type Page struct {
	Page       int
	PageSize   int
	TotalItems int
	PageCount  int
	StartIndex int
	EndIndex   int
	Links      []Link
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a next page exists.
func (p Page) HasNext() bool { return p.Page < p.PageCount }

// NormalizePageSize enforces the default and maximum page size.
func NormalizePageSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// Paginate computes the visible range for page of a list with totalItems
// entries. The page is clamped to [1, max(PageCount, 1)].
func Paginate(totalItems, page, pageSize int) Page {
	if totalItems < 0 {
		totalItems = 0
	}
	pageSize = NormalizePageSize(pageSize)
	pageCount := (totalItems + pageSize - 1) / pageSize

	page = clamp(page, 1, max(pageCount, 1))

	start := 0
	end := 0
	if totalItems > 0 {
		start = (page - 1) * pageSize
		end = min(start+pageSize, totalItems)
	}

	return Page{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		PageCount:  pageCount,
		StartIndex: start,
		EndIndex:   end,
		Links:      Links(page, pageCount),
	}
}

// Links builds the page selector: a window of at most WindowSize pages
// around current, with the first and last page as anchors and an ellipsis
// wherever pages are skipped.
func Links(current, pageCount int) []Link {
	if pageCount <= 0 {
		return nil
	}
	current = clamp(current, 1, pageCount)

	start := max(1, current-WindowSize/2)
	end := min(pageCount, start+WindowSize-1)
	if end-start < WindowSize-1 {
		start = max(1, end-WindowSize+1)
	}

	links := make([]Link, 0, WindowSize+4)
	if start > 1 {
		links = append(links, Link{Number: 1})
		if start > 2 {
			links = append(links, Link{Ellipsis: true})
		}
	}
	for n := start; n <= end; n++ {
		links = append(links, Link{Number: n, Current: n == current})
	}
	if end < pageCount {
		if end < pageCount-1 {
			links = append(links, Link{Ellipsis: true})
		}
		links = append(links, Link{Number: pageCount})
	}
	return links
}

// Slice returns the items visible on p.
func Slice[T any](items []T, p Page) []T {
	if p.StartIndex >= len(items) || p.StartIndex >= p.EndIndex {
		return nil
	}
	return items[p.StartIndex:min(p.EndIndex, len(items))]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
