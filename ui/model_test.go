package ui

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastiantruijens/vincent/api"
	"github.com/sebastiantruijens/vincent/catalog"
	"github.com/sebastiantruijens/vincent/movie"
	"github.com/sebastiantruijens/vincent/theme"
)

type fakeCatalog struct {
	mu        sync.Mutex
	calls     map[string]int
	detailErr error
}

var _ api.Catalog = (*fakeCatalog)(nil)

func (f *fakeCatalog) hit(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[name]++
}

func (f *fakeCatalog) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeCatalog) Genres(context.Context) ([]movie.Genre, error) {
	f.hit("genres")
	return []movie.Genre{{ID: 28, Name: "Action"}, {ID: 18, Name: "Drama"}}, nil
}

func (f *fakeCatalog) Category(_ context.Context, category string, page int) (*movie.Page, error) {
	f.hit("category:" + category)
	return &movie.Page{
		Movies:     []movie.Summary{{ID: 550, Title: "Fight Club", ReleaseDate: "1999-10-15", VoteAverage: 8.4, Genres: []string{"Drama"}}},
		Page:       page,
		TotalPages: 2,
	}, nil
}

func (f *fakeCatalog) Discover(_ context.Context, page int, _ movie.Filter) (*movie.Page, error) {
	f.hit("discover")
	return &movie.Page{Page: page, TotalPages: 1}, nil
}

func (f *fakeCatalog) Search(_ context.Context, query string, page int) (*movie.Page, error) {
	f.hit("search")
	return &movie.Page{
		Movies:     []movie.Summary{{ID: 348, Title: "Alien", VoteAverage: 8.1}},
		Page:       page,
		TotalPages: 1,
	}, nil
}

func (f *fakeCatalog) Movie(_ context.Context, id int) (*movie.Detail, error) {
	f.hit("movie")
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	return &movie.Detail{
		Summary:  movie.Summary{ID: id, Title: "Fight Club", VoteAverage: 8.4},
		Overview: "An insomniac office worker...",
		Videos:   []movie.Video{{Key: "qtRKdVHc-cE", Name: "Official Trailer"}},
	}, nil
}

func (f *fakeCatalog) Recommendations(_ context.Context, id int) ([]movie.Summary, error) {
	f.hit("recommendations")
	return []movie.Summary{{ID: 807, Title: "Se7en", VoteAverage: 8.4}}, nil
}

// drain runs cmd and every command batched inside it, collecting the
// messages that arrive quickly. Timers such as toast expiry are left out.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, drain(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(200 * time.Millisecond):
		return nil
	}
}

// settle feeds every fetch result back into the model until no more
// fetches are produced.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for i := 0; i < 10; i++ {
		var next []tea.Cmd
		for _, msg := range drain(cmd) {
			switch msg.(type) {
			case listLoadedMsg, detailLoadedMsg, recommendationsMsg, genresMsg, themeSavedMsg, browserMsg:
				var c tea.Cmd
				m, c = update(m, msg)
				next = append(next, c)
			}
		}
		if len(next) == 0 {
			return m
		}
		cmd = tea.Batch(next...)
	}
	t.Fatal("model did not settle")
	return m
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, client *fakeCatalog, store *theme.Store) Model {
	t.Helper()
	m := New(Options{
		Client:  client,
		Store:   store,
		Logger:  zerolog.Nop(),
		OpenURL: func(string) error { return nil },
	})
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return settle(t, m, m.Init())
}

func TestInitLoadsFirstSection(t *testing.T) {
	client := &fakeCatalog{}
	m := newTestModel(t, client, nil)

	assert.Equal(t, 1, client.count("genres"))
	assert.Equal(t, 1, client.count("category:popular"))
	assert.False(t, m.state.Loading())
	assert.Contains(t, m.View(), "Fight Club (1999)")
	assert.Contains(t, m.View(), "Load more")
}

func TestThemePersistsAcrossReload(t *testing.T) {
	store := theme.NewStore(filepath.Join(t.TempDir(), "vincent", "state.json"))
	m := newTestModel(t, &fakeCatalog{}, store)
	require.Equal(t, theme.Light, m.pref)
	assert.Contains(t, m.View(), "light")

	m, cmd := update(m, keyPress("t"))
	m = settle(t, m, cmd)
	assert.Equal(t, theme.Dark, m.pref)

	// Simulated reload: a fresh model over the same state file.
	reloaded := newTestModel(t, &fakeCatalog{}, store)
	assert.Equal(t, theme.Dark, reloaded.pref)
	assert.Equal(t, newStyles(theme.Dark), reloaded.styles)
	assert.Contains(t, reloaded.View(), "☾ dark")

	p, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, theme.Dark, p)
}

func TestOverlappingThemeSavesKeepLatest(t *testing.T) {
	store := theme.NewStore(filepath.Join(t.TempDir(), "vincent", "state.json"))
	m := newTestModel(t, &fakeCatalog{}, store)

	m, toDark := update(m, keyPress("t"))
	m, toLight := update(m, keyPress("t"))
	require.Equal(t, theme.Light, m.pref)

	// The second save lands first, then the older one overwrites it.
	light := drain(toLight)
	dark := drain(toDark)
	for _, msg := range append(light, dark...) {
		var cmd tea.Cmd
		m, cmd = update(m, msg)
		m = settle(t, m, cmd)
	}

	p, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, m.pref, p)
	assert.Empty(t, m.toasts)
}

func TestShortSearchIssuesNoFetch(t *testing.T) {
	client := &fakeCatalog{}
	m := newTestModel(t, client, nil)

	m, _ = update(m, keyPress("/"))
	require.Equal(t, focusSearch, m.focus)
	m, _ = update(m, keyPress("a"))
	m, cmd := update(m, keyPress("enter"))

	for _, msg := range drain(cmd) {
		_, isList := msg.(listLoadedMsg)
		assert.False(t, isList)
	}
	assert.Zero(t, client.count("search"))
	assert.Equal(t, focusSearch, m.focus, "input keeps focus after a rejected query")
	require.Len(t, m.toasts, 1)
	assert.Contains(t, m.View(), "Please enter at least 2 characters to search")
}

func TestSearchFlow(t *testing.T) {
	client := &fakeCatalog{}
	m := newTestModel(t, client, nil)

	m, _ = update(m, keyPress("/"))
	for _, r := range "alien" {
		m, _ = update(m, keyPress(string(r)))
	}
	m, cmd := update(m, keyPress("enter"))
	m = settle(t, m, cmd)

	assert.Equal(t, 1, client.count("search"))
	assert.Equal(t, catalog.Search, m.state.Nav().Current())
	assert.Contains(t, m.View(), `Results for: "alien"`)
	assert.Contains(t, m.View(), "Alien")
}

func TestOpenDetailAndTrailer(t *testing.T) {
	client := &fakeCatalog{}
	m := newTestModel(t, client, nil)

	m, cmd := update(m, keyPress("enter"))
	m = settle(t, m, cmd)

	require.NotNil(t, m.state.Detail())
	assert.Equal(t, 1, client.count("recommendations"))
	assert.Contains(t, m.View(), "Se7en")
	assert.Contains(t, m.View(), "Official Trailer")

	m, _ = update(m, keyPress("1"))
	require.NotNil(t, m.trailer)
	assert.Contains(t, m.View(), "https://www.youtube.com/embed/qtRKdVHc-cE")

	var opened string
	m.openURL = func(u string) error { opened = u; return nil }
	m, cmd = update(m, keyPress("o"))
	m = settle(t, m, cmd)
	assert.Equal(t, "https://www.youtube.com/watch?v=qtRKdVHc-cE", opened)

	// A click outside the box closes the overlay.
	m, _ = update(m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Nil(t, m.trailer)
	require.NotNil(t, m.state.Detail())

	m, _ = update(m, keyPress("esc"))
	assert.Nil(t, m.state.Detail())
	assert.True(t, m.state.Nav().Visible(catalog.Popular))
}

func TestDetailFailureReturnsToSection(t *testing.T) {
	client := &fakeCatalog{detailErr: &api.APIError{StatusCode: 404, Status: "Not Found"}}
	m := newTestModel(t, client, nil)

	m, cmd := update(m, keyPress("enter"))
	m = settle(t, m, cmd)

	assert.Nil(t, m.state.Detail())
	assert.True(t, m.state.Nav().Visible(catalog.Popular))
	assert.Contains(t, m.View(), "Could not load details: Error 404: Not Found")
	assert.Contains(t, m.View(), "Fight Club")
}

func TestLoadMoreLine(t *testing.T) {
	client := &fakeCatalog{}
	m := newTestModel(t, client, nil)

	m, _ = update(m, keyPress("j"))
	m, cmd := update(m, keyPress("enter"))
	m = settle(t, m, cmd)

	assert.Equal(t, 2, client.count("category:popular"))
	assert.Equal(t, 2, m.state.Listing(catalog.Popular).Len())
	assert.NotContains(t, m.View(), "Load more")
}

func TestTabSwitchAndToastExpiry(t *testing.T) {
	client := &fakeCatalog{}
	m := newTestModel(t, client, nil)

	m, cmd := update(m, keyPress("tab"))
	m = settle(t, m, cmd)
	assert.Equal(t, catalog.TopRated, m.state.Nav().Current())
	assert.Equal(t, 1, client.count("category:top_rated"))

	m, cmd = update(m, keyPress("tab"))
	m = settle(t, m, cmd)
	m, _ = update(m, keyPress("tab"))
	m, _ = update(m, keyPress("tab"))
	require.Equal(t, catalog.Discover, m.state.Nav().Current())
	assert.Contains(t, m.View(), "Year: ‹ Any ›")

	m, _ = update(m, browserMsg{url: "https://example.com", err: errors.New("no browser")})
	require.Len(t, m.toasts, 1)
	m, _ = update(m, toastExpiredMsg{id: m.toasts[0].id})
	assert.Empty(t, m.toasts)
}

func TestSwitchingSectionsStartsAtTop(t *testing.T) {
	client := &fakeCatalog{}
	m := newTestModel(t, client, nil)

	m, _ = update(m, keyPress("j"))
	require.Equal(t, 1, m.cursor[catalog.Popular])

	m, cmd := update(m, keyPress("tab"))
	m = settle(t, m, cmd)
	m, _ = update(m, keyPress("1"))

	assert.Equal(t, catalog.Popular, m.state.Nav().Current())
	assert.Zero(t, m.cursor[catalog.Popular])
	assert.Contains(t, m.View(), "> Fight Club (1999)")
}

func TestSearchFromDetailShowsInput(t *testing.T) {
	client := &fakeCatalog{}
	m := newTestModel(t, client, nil)

	m, cmd := update(m, keyPress("enter"))
	m = settle(t, m, cmd)
	require.NotNil(t, m.state.Detail())

	m, _ = update(m, keyPress("/"))
	assert.Nil(t, m.state.Detail())
	require.Equal(t, focusSearch, m.focus)

	for _, r := range "zqx" {
		m, _ = update(m, keyPress(string(r)))
	}
	assert.Contains(t, m.View(), "zqx")
}
