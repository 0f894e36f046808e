package directory

import "github.com/charmbracelet/bubbles/paginator"

// DefaultPageSize is the number of rows shown per page.
const DefaultPageSize = 5

// PageCount returns how many pages total items fill.
func PageCount(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	m := paginator.New()
	m.PerPage = perPage
	return m.SetTotalPages(total)
}

// Page returns the items on 1-based page. Out-of-range pages are clamped.
func Page[T any](items []T, page, perPage int) []T {
	m, ok := modelAt(page, perPage, len(items))
	if !ok {
		return nil
	}
	start, end := m.GetSliceBounds(len(items))
	return items[start:end]
}

// Window returns the 1-based positions of the first and last item on page,
// as shown in "Showing first–last of total".
func Window(page, perPage, total int) (first, last int) {
	m, ok := modelAt(page, perPage, total)
	if !ok {
		return 0, 0
	}
	start, end := m.GetSliceBounds(total)
	return start + 1, end
}

// modelAt builds a paginator positioned on the clamped 1-based page.
func modelAt(page, perPage, total int) (paginator.Model, bool) {
	m := paginator.New()
	if total <= 0 || perPage <= 0 {
		return m, false
	}
	m.PerPage = perPage
	m.SetTotalPages(total)
	m.Page = clamp(page-1, 0, m.TotalPages-1)
	return m, true
}

// Pager tracks the current page of a list whose length can change. It wraps
// a paginator.Model so the TUI can render the same state it steps through.
type Pager struct {
	model paginator.Model
	total int
}

// NewPager starts on page 1.
func NewPager(perPage int) Pager {
	if perPage <= 0 {
		perPage = DefaultPageSize
	}
	m := paginator.New()
	m.Type = paginator.Arabic
	m.PerPage = perPage
	return Pager{model: m}
}

// Current returns the 1-based page.
func (p Pager) Current() int {
	return p.model.Page + 1
}

// PerPage returns the page size.
func (p Pager) PerPage() int {
	return p.model.PerPage
}

// Total returns the item count last given to SetTotal.
func (p Pager) Total() int {
	return p.total
}

// Pages returns the page count; zero for an empty list.
func (p Pager) Pages() int {
	if p.total <= 0 {
		return 0
	}
	return p.model.TotalPages
}

// SetTotal updates the item count and keeps the current page in range.
func (p *Pager) SetTotal(total int) {
	p.total = total
	if total <= 0 {
		// SetTotalPages ignores an empty list; reset to a single blank page.
		p.model.TotalPages = 1
		p.model.Page = 0
		return
	}
	p.model.SetTotalPages(total)
	p.Goto(p.Current())
}

// Goto moves to page, clamped to the available pages.
func (p *Pager) Goto(page int) {
	p.model.Page = clamp(page-1, 0, p.model.TotalPages-1)
}

// Next advances one page if possible.
func (p *Pager) Next() bool {
	if p.model.OnLastPage() {
		return false
	}
	p.model.NextPage()
	return true
}

// Prev goes back one page if possible.
func (p *Pager) Prev() bool {
	if p.model.Page <= 0 {
		return false
	}
	p.model.PrevPage()
	return true
}

// Window returns the visible item positions for the current page.
func (p Pager) Window() (first, last int) {
	return Window(p.Current(), p.PerPage(), p.total)
}

// View renders the page indicator.
func (p Pager) View() string {
	return p.model.View()
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
