package view

import (
	"fmt"
	"strings"

	"github.com/sebastiantruijens/vincent/movie"
)

// MaxCast is how many cast entries the detail view shows.
const MaxCast = 6

const (
	profileBaseURL = "https://image.tmdb.org/t/p/w185"
	embedBaseURL   = "https://www.youtube.com/embed/"
	watchBaseURL   = "https://www.youtube.com/watch?v="
)

// CastEntry is one actor in the cast grid. Photo is empty when the API had
// no profile picture; the renderer draws a placeholder icon instead.
type CastEntry struct {
	Name      string
	Character string
	Photo     string
}

// Trailer is one trailer button, keyed by its video identifier.
type Trailer struct {
	Key  string
	Name string
}

// EmbedURL is the player URL shown in the trailer overlay.
func (t Trailer) EmbedURL() string {
	return embedBaseURL + t.Key
}

// WatchURL is the page opened in the system browser.
func (t Trailer) WatchURL() string {
	return watchBaseURL + t.Key
}

// Detail is the full display of one movie.
type Detail struct {
	ID        int
	Title     string
	Backdrop  string
	Poster    string
	Year      string
	Rating    string
	Votes     string
	Genres    []string
	Synopsis  string
	Directors string
	Cast      []CastEntry
	Trailers  []Trailer
}

// HasTrailers reports whether the trailer section is shown.
func (d Detail) HasTrailers() bool {
	return len(d.Trailers) > 0
}

// NewDetail builds the detail view for m.
func NewDetail(m movie.Detail) Detail {
	d := Detail{
		ID:       m.ID,
		Title:    PlainText(m.Title),
		Backdrop: m.BackdropURL,
		Poster:   m.PosterURL,
		Year:     m.ReleaseYear(),
		Rating:   FormatRating(m.VoteAverage) + "/10",
		Votes:    fmt.Sprintf("(%d votes)", m.VoteCount),
		Genres:   []string{NoGenre},
		Synopsis: NoSynopsis,
	}

	if d.Poster == "" {
		d.Poster = NoPoster
	}
	if len(m.Genres) > 0 {
		d.Genres = append([]string(nil), m.Genres...)
	}
	if text := PlainText(m.Overview); text != "" {
		d.Synopsis = text
	}

	d.Directors = NotAvailable
	if len(m.Crew) > 0 {
		names := make([]string, 0, len(m.Crew))
		for _, p := range m.Crew {
			names = append(names, p.Name)
		}
		d.Directors = strings.Join(names, ", ")
	}

	for i, p := range m.Cast {
		if i == MaxCast {
			break
		}
		entry := CastEntry{Name: p.Name, Character: p.Character}
		if p.ProfilePath != "" {
			entry.Photo = profileBaseURL + p.ProfilePath
		}
		d.Cast = append(d.Cast, entry)
	}

	for _, v := range m.Videos {
		if v.Key == "" {
			continue
		}
		d.Trailers = append(d.Trailers, Trailer{Key: v.Key, Name: PlainText(v.Name)})
	}

	return d
}
