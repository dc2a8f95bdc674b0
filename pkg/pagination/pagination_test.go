package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name               string
		total, page, size  int
		wantPage           int
		wantStart, wantEnd int
		wantPageCount      int
	}{
		{"first page", 23, 1, 10, 1, 0, 10, 3},
		{"last partial page", 23, 3, 10, 3, 20, 23, 3},
		{"page past end clamps", 23, 9, 10, 3, 20, 23, 3},
		{"page below one clamps", 23, -2, 10, 1, 0, 10, 3},
		{"empty list", 0, 4, 10, 1, 0, 0, 0},
		{"exact multiple", 20, 2, 10, 2, 10, 20, 2},
		{"invalid size falls back", 15, 2, 0, 2, 10, 15, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(tt.total, tt.page, tt.size)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantStart, p.StartIndex)
			assert.Equal(t, tt.wantEnd, p.EndIndex)
			assert.Equal(t, tt.wantPageCount, p.PageCount)
		})
	}
}

func render(links []Link) []int {
	out := make([]int, 0, len(links))
	for _, l := range links {
		if l.Ellipsis {
			out = append(out, 0)
			continue
		}
		out = append(out, l.Number)
	}
	return out
}

func TestLinks(t *testing.T) {
	// 0 marks an ellipsis.
	tests := []struct {
		name           string
		current, count int
		want           []int
	}{
		{"no pages", 1, 0, []int{}},
		{"fewer than window", 2, 3, []int{1, 2, 3}},
		{"exact window", 5, 5, []int{1, 2, 3, 4, 5}},
		{"start of long list", 1, 20, []int{1, 2, 3, 4, 5, 0, 20}},
		{"middle of long list", 10, 20, []int{1, 0, 8, 9, 10, 11, 12, 0, 20}},
		{"end of long list", 20, 20, []int{1, 0, 16, 17, 18, 19, 20}},
		{"adjacent anchor without ellipsis", 4, 7, []int{1, 2, 3, 4, 5, 6, 7}},
		{"window shifted left at edge", 6, 7, []int{1, 0, 3, 4, 5, 6, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			links := Links(tt.current, tt.count)
			got := render(links)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLinksMarksCurrent(t *testing.T) {
	for _, l := range Links(3, 10) {
		assert.Equal(t, l.Number == 3, l.Current)
	}
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{3, 4}, Slice(items, Paginate(len(items), 2, 2)))
	assert.Equal(t, []int{5}, Slice(items, Paginate(len(items), 3, 2)))
	assert.Empty(t, Slice([]int{}, Paginate(0, 1, 2)))
}

func TestPager(t *testing.T) {
	p := NewPager(10)
	p.SetPage(3)
	assert.Equal(t, 3, p.Page(23).Page)

	p.Next()
	assert.Equal(t, 3, p.Page(23).Page, "clamped to last page")

	p.Prev()
	assert.Equal(t, 2, p.Page(23).Page)

	p.SetPageSize(25)
	page := p.Page(23)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 25, page.PageSize)
	assert.Equal(t, 1, page.PageCount)

	var zero Pager
	assert.Equal(t, DefaultPageSize, zero.Page(5).PageSize)
	assert.Equal(t, 1, zero.Page(5).Page)
}
