package pagination

// Pager keeps the current page and page size of one table. The zero value
// is ready to use.
type Pager struct {
	page int
	size int
}

func NewPager(size int) *Pager {
	return &Pager{page: 1, size: NormalizePageSize(size)}
}

// Page resolves the pager against the current item count and stores the
// clamped page back.
func (p *Pager) Page(totalItems int) Page {
	res := Paginate(totalItems, p.current(), p.PageSize())
	p.page = res.Page
	return res
}

func (p *Pager) PageSize() int { return NormalizePageSize(p.size) }

func (p *Pager) SetPage(n int) { p.page = max(n, 1) }

func (p *Pager) Next() { p.page = p.current() + 1 }

func (p *Pager) Prev() { p.page = max(p.current()-1, 1) }

// SetPageSize changes the page size and returns to the first page.
func (p *Pager) SetPageSize(n int) {
	p.size = NormalizePageSize(n)
	p.page = 1
}

// Reset returns to the first page, keeping the page size.
func (p *Pager) Reset() { p.page = 1 }

func (p *Pager) current() int {
	if p.page < 1 {
		return 1
	}
	return p.page
}
