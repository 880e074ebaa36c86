package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sebastiantruijens/vincent/api"
	"github.com/sebastiantruijens/vincent/catalog"
	"github.com/sebastiantruijens/vincent/movie"
	"github.com/sebastiantruijens/vincent/theme"
)

// Custom message types
type listLoadedMsg struct {
	req  catalog.Request
	page *movie.Page
	err  error
}

type detailLoadedMsg struct {
	req    catalog.Request
	detail *movie.Detail
	err    error
}

type recommendationsMsg struct {
	req    catalog.Request
	movies []movie.Summary
	err    error
}

type genresMsg struct {
	genres []movie.Genre
	err    error
}

type toastExpiredMsg struct {
	id int
}

type themeSavedMsg struct {
	pref theme.Preference
	err  error
}

// run turns the requests returned by a state transition into commands.
func (m Model) run(reqs []catalog.Request) tea.Cmd {
	if len(reqs) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(reqs))
	for _, req := range reqs {
		cmds = append(cmds, m.fetch(req))
	}
	return tea.Batch(cmds...)
}

func (m Model) fetch(req catalog.Request) tea.Cmd {
	client, ctx := m.client, m.ctx

	switch req.Kind {
	case catalog.FetchList:
		return func() tea.Msg {
			page, err := fetchList(ctx, client, req)
			return listLoadedMsg{req: req, page: page, err: err}
		}
	case catalog.FetchDetail:
		return func() tea.Msg {
			d, err := client.Movie(ctx, req.MovieID)
			return detailLoadedMsg{req: req, detail: d, err: err}
		}
	case catalog.FetchRecommendations:
		return func() tea.Msg {
			recs, err := client.Recommendations(ctx, req.MovieID)
			return recommendationsMsg{req: req, movies: recs, err: err}
		}
	case catalog.FetchGenres:
		return func() tea.Msg {
			genres, err := client.Genres(ctx)
			return genresMsg{genres: genres, err: err}
		}
	}
	return nil
}

// fetchList calls the endpoint behind the request's section.
func fetchList(ctx context.Context, client api.Catalog, req catalog.Request) (*movie.Page, error) {
	switch req.Section {
	case catalog.Discover:
		return client.Discover(ctx, req.Page, req.Filter)
	case catalog.Search:
		return client.Search(ctx, req.Query, req.Page)
	}
	category, ok := req.Section.Category()
	if !ok {
		return nil, fmt.Errorf("section %s has no endpoint", req.Section)
	}
	return client.Category(ctx, category, req.Page)
}

func expireToast(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func saveTheme(store *theme.Store, p theme.Preference) tea.Cmd {
	return func() tea.Msg {
		return themeSavedMsg{pref: p, err: store.Save(p)}
	}
}
