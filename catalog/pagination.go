package catalog

// PageState is the pagination record of one section.
type PageState struct {
	Page       int
	TotalPages int
	Loading    bool
}

// Pagination owns the PageState of every section. Loading is the only
// guard against duplicate fetches: it is set before a request is issued and
// cleared when its outcome is handled, whatever the outcome.
type Pagination struct {
	entries [numSections]PageState
}

// NewPagination starts every section on page 1 of 1.
func NewPagination() *Pagination {
	p := &Pagination{}
	for i := range p.entries {
		p.entries[i] = PageState{Page: 1, TotalPages: 1}
	}
	return p
}

// TryBegin marks s as loading. It returns false, and changes nothing, when
// a fetch for s is already outstanding.
func (p *Pagination) TryBegin(s Section) bool {
	e := &p.entries[s]
	if e.Loading {
		return false
	}
	e.Loading = true
	return true
}

// Complete records the page confirmed by a response and clears loading.
func (p *Pagination) Complete(s Section, page, totalPages int) {
	p.entries[s] = PageState{
		Page:       max(page, 1),
		TotalPages: max(totalPages, 1),
	}
}

// Abort clears loading after a failed fetch, keeping the last confirmed page.
func (p *Pagination) Abort(s Section) {
	p.entries[s].Loading = false
}

// Reset rewinds s to page 1. TotalPages is kept until the next response.
func (p *Pagination) Reset(s Section) {
	p.entries[s].Page = 1
}

// NextPage is the page "load more" asks for.
func (p *Pagination) NextPage(s Section) int {
	return p.entries[s].Page + 1
}

// HasMore reports whether pages remain after the current one.
func (p *Pagination) HasMore(s Section) bool {
	e := p.entries[s]
	return e.Page < e.TotalPages
}

// Entry returns a copy of the record for s.
func (p *Pagination) Entry(s Section) PageState {
	return p.entries[s]
}
