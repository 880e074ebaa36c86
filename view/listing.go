package view

import "github.com/sebastiantruijens/vincent/movie"

// Listing is the content of one section container.
type Listing struct {
	Cards       []Card
	Placeholder string
	ShowMore    bool

	// Loaded is set once a page has been rendered, even an empty one.
	Loaded bool
}

// Render paints movies into the listing. Without appendMode the listing is
// cleared first, and an empty result shows emptyText instead of cards. The
// "load more" control is shown iff page < totalPages.
func (l *Listing) Render(movies []movie.Summary, appendMode bool, page, totalPages int, emptyText string) {
	if !appendMode {
		l.Cards = nil
		l.Placeholder = ""
	}

	if len(movies) == 0 {
		if !appendMode {
			l.Placeholder = emptyText
		}
	} else {
		l.Placeholder = ""
		l.Cards = append(l.Cards, NewCards(movies, false)...)
	}

	l.ShowMore = page < totalPages
	l.Loaded = true
}

// Clear empties the listing and marks it as never loaded.
func (l *Listing) Clear() {
	*l = Listing{}
}

// Len returns the number of cards.
func (l Listing) Len() int {
	return len(l.Cards)
}
