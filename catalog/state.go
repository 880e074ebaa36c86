package catalog

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/sebastiantruijens/vincent/movie"
	"github.com/sebastiantruijens/vincent/view"
)

// MinQueryLength is the shortest search query sent to the API.
const MinQueryLength = 2

// Options configures a State.
type Options struct {
	// Start is the section shown first. Defaults to Popular.
	Start Section

	// FreezeFilters makes "load more" on discover reuse the selection
	// captured by the last ApplyFilters instead of the live controls.
	FreezeFilters bool

	Logger zerolog.Logger
}

// DetailState is the open detail overlay.
type DetailState struct {
	Seq     uint64
	MovieID int
	View    view.Detail

	// Recommendations stays unloaded until its fetch settles.
	Recommendations       view.Listing
	RecommendationsFailed bool
}

// State is the whole client state. It is not safe for concurrent use; the
// owner applies every transition from a single goroutine.
type State struct {
	pagination *Pagination
	nav        Navigator
	listings   [numSections]view.Listing
	genres     GenreCache

	controls      movie.Filter
	applied       movie.Filter
	freezeFilters bool

	query       string
	searchTitle string

	detail    *DetailState
	detailSeq uint64

	seq      uint64
	inflight int
	notices  []Notice
	logger   zerolog.Logger
}

// New returns the initial state.
func New(opts Options) *State {
	start := opts.Start
	if !start.Valid() || start == Search {
		start = Popular
	}
	return &State{
		pagination:    NewPagination(),
		nav:           Navigator{current: start},
		freezeFilters: opts.FreezeFilters,
		logger:        opts.Logger,
	}
}

// Start returns the fetches issued at startup: the genre list and the first
// page of the start section.
func (st *State) Start() []Request {
	st.seq++
	reqs := []Request{{Kind: FetchGenres, Seq: st.seq}}
	if r, ok := st.loadPage(st.nav.current, 1, false); ok {
		reqs = append(reqs, r)
	}
	return reqs
}

// Pagination exposes the per-section page records.
func (st *State) Pagination() *Pagination { return st.pagination }

// Nav exposes the navigator.
func (st *State) Nav() *Navigator { return &st.nav }

// Listing returns the container content of s.
func (st *State) Listing(s Section) view.Listing { return st.listings[s] }

// Detail returns the open detail overlay, or nil.
func (st *State) Detail() *DetailState { return st.detail }

// Genres returns the genre cache.
func (st *State) Genres() *GenreCache { return &st.genres }

// Query returns the stored search query.
func (st *State) Query() string { return st.query }

// SearchTitle is the heading of the search section.
func (st *State) SearchTitle() string { return st.searchTitle }

// Loading reports whether any list or detail fetch is outstanding.
func (st *State) Loading() bool { return st.inflight > 0 }

// Controls returns the current filter control values.
func (st *State) Controls() movie.Filter { return st.controls }

// SetControls records new filter control values. They take effect on the
// next discover fetch.
func (st *State) SetControls(f movie.Filter) { st.controls = f }

// TakeNotices returns and clears the pending notices.
func (st *State) TakeNotices() []Notice {
	n := st.notices
	st.notices = nil
	return n
}

// Activate switches to section s. The first visit to a section loads its
// first page; later visits show what is already there.
func (st *State) Activate(s Section) []Request {
	if !s.Valid() {
		return nil
	}
	st.nav.switchTo(s)
	st.dropDetail()

	if st.listings[s].Loaded {
		return nil
	}
	if r, ok := st.loadPage(s, 1, false); ok {
		return []Request{r}
	}
	return nil
}

// LoadMore asks for the page after the current one of s.
func (st *State) LoadMore(s Section) []Request {
	if !s.Valid() || !st.listings[s].ShowMore {
		return nil
	}
	if r, ok := st.loadPage(s, st.pagination.NextPage(s), true); ok {
		return []Request{r}
	}
	return nil
}

// ApplyFilters captures the control values, rewinds discover to page 1,
// fetches it and switches to the discover section.
func (st *State) ApplyFilters() []Request {
	if st.pagination.Entry(Discover).Loading {
		st.notify(Info, "Discover results are still loading")
		return nil
	}

	st.applied = st.controls
	st.pagination.Reset(Discover)

	var reqs []Request
	if r, ok := st.loadPage(Discover, 1, false); ok {
		reqs = append(reqs, r)
	}
	return append(reqs, st.Activate(Discover)...)
}

// Search starts a new search for raw. Queries shorter than MinQueryLength
// are rejected with a notice and no fetch.
func (st *State) Search(raw string) ([]Request, error) {
	q := strings.TrimSpace(raw)
	if utf8.RuneCountInString(q) < MinQueryLength {
		st.notify(Error, fmt.Sprintf("Please enter at least %d characters to search", MinQueryLength))
		return nil, &movie.ValidationError{Field: "query", Reason: fmt.Sprintf("needs at least %d characters", MinQueryLength)}
	}
	if st.pagination.Entry(Search).Loading {
		st.notify(Info, "A search is already in progress")
		return nil, nil
	}

	st.query = q
	st.pagination.Reset(Search)
	st.nav.switchTo(Search)
	st.searchTitle = fmt.Sprintf("Results for: \"%s\"", q)
	st.listings[Search].Clear()
	st.dropDetail()

	if r, ok := st.loadPage(Search, 1, false); ok {
		return []Request{r}, nil
	}
	return nil, nil
}

// ListLoaded applies the outcome of a FetchList request.
func (st *State) ListLoaded(req Request, page *movie.Page, err error) {
	st.settle()
	s := req.Section

	if err != nil || page == nil {
		st.pagination.Abort(s)
		if err == nil {
			err = fmt.Errorf("empty response")
		}
		st.logger.Error().Err(err).Stringer("section", s).Int("page", req.Page).Msg("Failed to load movies")
		what := "load movies"
		if s == Search {
			what = "search movies"
		}
		st.notify(Error, fmt.Sprintf("Could not %s: %v", what, err))
		return
	}

	// TryBegin admits one fetch per section, so this response is the
	// latest for s.
	st.pagination.Complete(s, page.Page, page.TotalPages)

	empty := view.NoResults
	if s == Search {
		empty = view.NoSearchResults
	}
	entry := st.pagination.Entry(s)
	st.listings[s].Render(page.Movies, req.Append, entry.Page, entry.TotalPages, empty)
}

// OpenDetail starts loading the detail of movie id. The overlay opens once
// the response arrives.
func (st *State) OpenDetail(id int) []Request {
	if id <= 0 {
		return nil
	}
	st.seq++
	st.detailSeq = st.seq
	st.inflight++
	return []Request{{Kind: FetchDetail, Seq: st.seq, MovieID: id}}
}

// DetailLoaded applies the outcome of a FetchDetail request. On success the
// overlay opens and recommendations are requested; on failure the section
// that was active before the attempt is activated again.
func (st *State) DetailLoaded(req Request, d *movie.Detail, err error) []Request {
	st.settle()
	if req.Seq != st.detailSeq {
		st.logger.Debug().Stringer("request", req).Msg("Dropping stale detail response")
		return nil
	}
	st.detailSeq = 0

	if err != nil || d == nil {
		if err == nil {
			err = fmt.Errorf("empty response")
		}
		st.logger.Error().Err(err).Int("movie_id", req.MovieID).Msg("Failed to load movie details")
		st.notify(Error, fmt.Sprintf("Could not load details: %v", err))
		return st.Activate(st.nav.current)
	}

	st.detail = &DetailState{
		Seq:     req.Seq,
		MovieID: req.MovieID,
		View:    view.NewDetail(*d),
	}
	st.nav.showDetail()
	return []Request{{Kind: FetchRecommendations, Seq: req.Seq, MovieID: req.MovieID}}
}

// RecommendationsLoaded fills the recommendation strip of the open detail.
// A failure only affects the strip.
func (st *State) RecommendationsLoaded(req Request, recs []movie.Summary, err error) {
	if st.detail == nil || st.detail.Seq != req.Seq {
		return
	}
	l := view.Listing{Loaded: true}
	switch {
	case err != nil:
		st.logger.Warn().Err(err).Int("movie_id", req.MovieID).Msg("Failed to load recommendations")
		st.detail.RecommendationsFailed = true
		l.Placeholder = view.RecommendedFail
	case len(recs) == 0:
		l.Placeholder = view.NoRecommended
	default:
		l.Cards = view.NewCards(recs, true)
	}
	st.detail.Recommendations = l
}

// GenresLoaded fills the genre cache. Failures are only logged.
func (st *State) GenresLoaded(genres []movie.Genre, err error) {
	if err != nil {
		st.logger.Error().Err(err).Msg("Failed to load genres")
		return
	}
	st.genres.Fill(genres)
}

// CloseDetail hides the overlay and shows the current section again. It
// never fetches.
func (st *State) CloseDetail() {
	st.dropDetail()
}

func (st *State) dropDetail() {
	st.nav.hideDetail()
	st.detail = nil
	st.detailSeq = 0
}

func (st *State) loadPage(s Section, page int, appendMode bool) (Request, bool) {
	if s == Search && st.query == "" {
		return Request{}, false
	}
	if !st.pagination.TryBegin(s) {
		st.logger.Debug().Stringer("section", s).Msg("Fetch already in flight")
		return Request{}, false
	}

	st.seq++
	st.inflight++

	r := Request{Kind: FetchList, Seq: st.seq, Section: s, Page: page, Append: appendMode}
	switch s {
	case Discover:
		r.Filter = st.discoverFilter()
	case Search:
		r.Query = st.query
	}
	return r, true
}

func (st *State) discoverFilter() movie.Filter {
	if st.freezeFilters {
		return st.applied
	}
	return st.controls
}

func (st *State) settle() {
	if st.inflight > 0 {
		st.inflight--
	}
}

func (st *State) notify(level Level, text string) {
	st.notices = append(st.notices, Notice{Level: level, Text: text})
}
