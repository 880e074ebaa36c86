// Package view turns movie records into display-ready view-models. Nothing
// here touches the terminal; the ui package lays these out.
package view

import (
	"fmt"
	"strings"

	"github.com/sebastiantruijens/vincent/movie"
)

// Placeholder texts shown when a record lacks a field.
const (
	NoPoster        = "no poster"
	NoGenre         = "No genre"
	NoResults       = "No movies found"
	NoSearchResults = "No movies found for your search"
	NoSynopsis      = "No synopsis available"
	NotAvailable    = "Information not available"
	NoRecommended   = "No recommendations available"
	RecommendedFail = "Could not load recommendations"
)

// MaxCardGenres is how many genre names a card shows.
const MaxCardGenres = 2

// Card is the list-level display of one movie.
type Card struct {
	ID     int
	Title  string
	Poster string
	Rating string
	Year   string
	Genres string
	Small  bool
}

// NewCard builds the card for m.
func NewCard(m movie.Summary) Card {
	poster := m.PosterURL
	if poster == "" {
		poster = NoPoster
	}

	genres := NoGenre
	if len(m.Genres) > 0 {
		n := min(len(m.Genres), MaxCardGenres)
		genres = strings.Join(m.Genres[:n], ", ")
	}

	return Card{
		ID:     m.ID,
		Title:  PlainText(m.Title),
		Poster: poster,
		Rating: FormatRating(m.VoteAverage),
		Year:   m.ReleaseYear(),
		Genres: genres,
	}
}

// NewCards builds one card per movie.
func NewCards(movies []movie.Summary, small bool) []Card {
	cards := make([]Card, 0, len(movies))
	for _, m := range movies {
		c := NewCard(m)
		c.Small = small
		cards = append(cards, c)
	}
	return cards
}

// FormatRating rounds a vote average to one decimal.
func FormatRating(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
