package catalog

import (
	"fmt"

	"github.com/sebastiantruijens/vincent/movie"
)

// RequestKind says which API operation a Request stands for.
type RequestKind int

const (
	FetchList RequestKind = iota
	FetchDetail
	FetchRecommendations
	FetchGenres
)

// Request describes one fetch the state wants run. Seq tags the request so
// a response that is no longer wanted can be recognised and dropped.
type Request struct {
	Kind    RequestKind
	Seq     uint64
	Section Section
	Page    int
	Append  bool
	Query   string
	Filter  movie.Filter
	MovieID int
}

func (r Request) String() string {
	switch r.Kind {
	case FetchList:
		return fmt.Sprintf("list %s page %d", r.Section, r.Page)
	case FetchDetail:
		return fmt.Sprintf("detail %d", r.MovieID)
	case FetchRecommendations:
		return fmt.Sprintf("recommendations %d", r.MovieID)
	case FetchGenres:
		return "genres"
	}
	return fmt.Sprintf("request(%d)", int(r.Kind))
}
