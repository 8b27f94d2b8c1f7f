package paginator

import "strconv"

// PerPage is the page size of every feed.
const PerPage = 10

// Paginator splits an ordered collection of total items into pages.
type Paginator struct {
	total   int64
	perPage int
}

func New(total int64, perPage int) *Paginator {
	if perPage <= 0 {
		perPage = PerPage
	}
	if total < 0 {
		total = 0
	}
	return &Paginator{total: total, perPage: perPage}
}

// NumPages is never less than 1, an empty collection has one empty page.
func (p *Paginator) NumPages() int {
	if p.total == 0 {
		return 1
	}
	return int((p.total + int64(p.perPage) - 1) / int64(p.perPage))
}

// Page resolves a raw 1-based page number leniently: anything that is not an
// integer or is below 1 yields the first page, anything past the end yields
// the last page.
func (p *Paginator) Page(raw string) Page {
	number, err := strconv.Atoi(raw)
	if err != nil || number < 1 {
		number = 1
	}
	if last := p.NumPages(); number > last {
		number = last
	}
	return Page{
		Number:   number,
		NumPages: p.NumPages(),
		PerPage:  p.perPage,
		Total:    p.total,
	}
}

// Page is one window of the collection.
type Page struct {
	Number   int
	NumPages int
	PerPage  int
	Total    int64
}

func (pg Page) Offset() int { return (pg.Number - 1) * pg.PerPage }

func (pg Page) Limit() int { return pg.PerPage }

func (pg Page) HasPrevious() bool { return pg.Number > 1 }

func (pg Page) HasNext() bool { return pg.Number < pg.NumPages }

func (pg Page) HasOtherPages() bool { return pg.HasPrevious() || pg.HasNext() }

func (pg Page) PreviousNumber() int { return pg.Number - 1 }

func (pg Page) NextNumber() int { return pg.Number + 1 }

// PageRange lists every page number, for rendering page links.
func (pg Page) PageRange() []int {
	r := make([]int, pg.NumPages)
	for i := range r {
		r[i] = i + 1
	}
	return r
}
