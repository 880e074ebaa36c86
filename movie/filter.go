package movie

import (
	"net/url"
	"strconv"
)

// SortOptions lists the sort_by values accepted by the discover endpoint.
var SortOptions = []string{
	"popularity.desc",
	"popularity.asc",
	"vote_average.desc",
	"vote_average.asc",
	"release_date.desc",
	"release_date.asc",
	"revenue.desc",
	"revenue.asc",
}

// ValidSort reports whether s is one of SortOptions.
func ValidSort(s string) bool {
	for _, opt := range SortOptions {
		if opt == s {
			return true
		}
	}
	return false
}

// MinYear is the oldest year offered by the year control.
const MinYear = 1900

// Filter is the discover selection. Zero values mean "unset".
type Filter struct {
	Year    int
	GenreID int
	SortBy  string
}

// IsZero reports whether no field is set.
func (f Filter) IsZero() bool {
	return f.Year == 0 && f.GenreID == 0 && f.SortBy == ""
}

// Encode adds the set fields to v.
func (f Filter) Encode(v url.Values) {
	if f.Year > 0 {
		v.Set("year", strconv.Itoa(f.Year))
	}
	if f.GenreID > 0 {
		v.Set("genre", strconv.Itoa(f.GenreID))
	}
	if f.SortBy != "" {
		v.Set("sort_by", f.SortBy)
	}
}
