// Package catalog holds the client's application state: which section is
// shown, per-section pagination, the detail overlay, filters and search.
// Transitions return the fetches they need as Requests; the caller runs
// them and feeds the outcome back.
package catalog

import "fmt"

// Section is one independently paginated content stream.
type Section int

const (
	Popular Section = iota
	TopRated
	NowPlaying
	Upcoming
	Discover
	Search

	numSections
)

// Sections lists every section in navigation order.
var Sections = []Section{Popular, TopRated, NowPlaying, Upcoming, Discover, Search}

var sectionInfo = [numSections]struct {
	id       string
	title    string
	category string
}{
	Popular:    {"popular", "Popular", "popular"},
	TopRated:   {"top-rated", "Top Rated", "top_rated"},
	NowPlaying: {"now-playing", "Now Playing", "now_playing"},
	Upcoming:   {"upcoming", "Upcoming", "upcoming"},
	Discover:   {"discover", "Discover", ""},
	Search:     {"search", "Search", ""},
}

// String returns the section identifier, e.g. "top-rated".
func (s Section) String() string {
	if !s.Valid() {
		return fmt.Sprintf("section(%d)", int(s))
	}
	return sectionInfo[s].id
}

// Title is the human readable name used for tabs and headings.
func (s Section) Title() string {
	if !s.Valid() {
		return s.String()
	}
	return sectionInfo[s].title
}

// Category returns the API category for the four fixed lists.
func (s Section) Category() (string, bool) {
	if !s.Valid() || sectionInfo[s].category == "" {
		return "", false
	}
	return sectionInfo[s].category, true
}

// Valid reports whether s is a known section.
func (s Section) Valid() bool {
	return s >= 0 && s < numSections
}

// ParseSection accepts a section identifier ("now-playing") or its API
// category ("now_playing").
func ParseSection(name string) (Section, error) {
	for _, s := range Sections {
		if sectionInfo[s].id == name || (sectionInfo[s].category != "" && sectionInfo[s].category == name) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown section %q", name)
}
