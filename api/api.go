package api

import (
	"context"

	"github.com/sebastiantruijens/vincent/movie"
)

// Catalog defines the operations the client offers against the movie API.
type Catalog interface {
	// Genres lists every genre known to the API.
	Genres(ctx context.Context) ([]movie.Genre, error)

	// Category fetches one page of popular, top_rated, now_playing or upcoming.
	Category(ctx context.Context, category string, page int) (*movie.Page, error)

	// Discover fetches one page filtered by the set fields of f.
	Discover(ctx context.Context, page int, f movie.Filter) (*movie.Page, error)

	// Search fetches one page of title matches.
	Search(ctx context.Context, query string, page int) (*movie.Page, error)

	// Movie fetches the full record of one movie.
	Movie(ctx context.Context, id int) (*movie.Detail, error)

	// Recommendations fetches movies recommended from id.
	Recommendations(ctx context.Context, id int) ([]movie.Summary, error)
}

var _ Catalog = (*Client)(nil)
