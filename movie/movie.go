// Package movie holds the data shapes returned by the catalog API.
package movie

import (
	"strconv"
	"strings"
)

// Summary is the card-level record returned by list, search and
// recommendation endpoints.
type Summary struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	PosterURL   string   `json:"poster_url,omitempty"`
	Year        *int     `json:"year,omitempty"`
	ReleaseDate string   `json:"release_date,omitempty"`
	VoteAverage float64  `json:"vote_average"`
	Genres      []string `json:"genres"`

	// Only set on hybrid recommendations.
	HybridScore float64 `json:"hybrid_score,omitempty"`
}

// ReleaseYear returns the explicit year, else the year part of the release
// date, else an empty string.
func (s Summary) ReleaseYear() string {
	if s.Year != nil && *s.Year > 0 {
		return strconv.Itoa(*s.Year)
	}
	if s.ReleaseDate != "" {
		year, _, _ := strings.Cut(s.ReleaseDate, "-")
		return year
	}
	return ""
}

// CastMember is one credited actor.
type CastMember struct {
	Name        string `json:"name"`
	Character   string `json:"character,omitempty"`
	ProfilePath string `json:"profile_path,omitempty"`
}

// CrewMember is one credited crew member (directors in practice).
type CrewMember struct {
	Name string `json:"name"`
	Job  string `json:"job,omitempty"`
}

// Video is a trailer hosted on YouTube, identified by its key.
type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site,omitempty"`
}

// Detail is the full record returned by GET /movies/{id}.
type Detail struct {
	Summary
	Overview      string       `json:"overview,omitempty"`
	OriginalTitle string       `json:"original_title,omitempty"`
	VoteCount     int          `json:"vote_count"`
	BackdropURL   string       `json:"backdrop_url,omitempty"`
	Cast          []CastMember `json:"cast"`
	Crew          []CrewMember `json:"crew"`
	Videos        []Video      `json:"videos"`
}

// Genre is an entry of GET /genres.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Page is one page of a paginated movie list.
type Page struct {
	Movies       []Summary `json:"movies"`
	Page         int       `json:"page"`
	TotalPages   int       `json:"total_pages"`
	TotalResults int       `json:"total_results"`
}
