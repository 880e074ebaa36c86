// Package ui is the terminal front end. It owns a catalog.State, runs the
// fetches its transitions ask for and lays out the view-models it holds.
package ui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/sebastiantruijens/vincent/api"
	"github.com/sebastiantruijens/vincent/catalog"
	"github.com/sebastiantruijens/vincent/theme"
	"github.com/sebastiantruijens/vincent/view"
)

const defaultToastDuration = 3 * time.Second

// Options configures the model.
type Options struct {
	Client api.Catalog

	// Store persists the theme. Without one the theme resets every run.
	Store *theme.Store

	Start         catalog.Section
	FreezeFilters bool
	ToastDuration time.Duration

	// Context bounds every fetch. Defaults to context.Background().
	Context context.Context
	Logger  zerolog.Logger

	// OpenURL defaults to the system browser.
	OpenURL func(string) error
	// Now defaults to time.Now; it bounds the year control.
	Now func() time.Time
}

type focus int

const (
	focusList focus = iota
	focusSearch
	focusFilters
)

type toast struct {
	id    int
	level catalog.Level
	text  string
}

// Model represents the application state
type Model struct {
	state  *catalog.State
	client api.Catalog
	ctx    context.Context
	logger zerolog.Logger

	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	input    textinput.Model
	viewport viewport.Model

	store  *theme.Store
	pref   theme.Preference
	styles styles

	focus     focus
	cursor    map[catalog.Section]int
	control   int
	recCursor int
	trailer   *view.Trailer
	spinning  bool

	toasts        []toast
	nextToast     int
	toastDuration time.Duration

	openURL func(string) error
	now     func() time.Time

	width  int
	height int
}

// New creates a new application model. The stored theme is read here so the
// first frame is already drawn in it.
func New(opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.OpenURL == nil {
		opts.OpenURL = openBrowser
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ToastDuration <= 0 {
		opts.ToastDuration = defaultToastDuration
	}

	pref := theme.Light
	if opts.Store != nil {
		p, err := opts.Store.Load()
		if err != nil {
			opts.Logger.Warn().Err(err).Str("path", opts.Store.Path()).Msg("Failed to read theme preference")
		}
		pref = p
	}
	st := newStyles(pref)

	ti := textinput.New()
	ti.Placeholder = "Search for a movie..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.KeyMap.DeleteWordBackward = key.NewBinding(
		key.WithKeys("alt+backspace", "ctrl+w"),
	)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = st.spinner

	return Model{
		state: catalog.New(catalog.Options{
			Start:         opts.Start,
			FreezeFilters: opts.FreezeFilters,
			Logger:        opts.Logger,
		}),
		client:        opts.Client,
		ctx:           opts.Context,
		logger:        opts.Logger,
		keys:          defaultKeyMap(),
		help:          help.New(),
		spinner:       sp,
		input:         ti,
		viewport:      viewport.New(80, 20),
		store:         opts.Store,
		pref:          pref,
		styles:        st,
		cursor:        make(map[catalog.Section]int, len(catalog.Sections)),
		spinning:      true,
		toastDuration: opts.ToastDuration,
		openURL:       opts.OpenURL,
		now:           opts.Now,
		width:         80,
		height:        24,
	}
}

// Init loads the genre list and the first section.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.run(m.state.Start()), m.spinner.Tick)
}

// Update handles messages and user input
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeViewport()
		m.refreshDetail()

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))

	case spinner.TickMsg:
		if !m.state.Loading() {
			m.spinning = false
			break
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case genresMsg:
		m.state.GenresLoaded(msg.genres, msg.err)

	case listLoadedMsg:
		m.state.ListLoaded(msg.req, msg.page, msg.err)

	case detailLoadedMsg:
		cmds = append(cmds, m.run(m.state.DetailLoaded(msg.req, msg.detail, msg.err)))
		if d := m.state.Detail(); d != nil && d.Seq == msg.req.Seq {
			m.recCursor = 0
			m.trailer = nil
			m.viewport.SetYOffset(0)
		}
		m.refreshDetail()

	case recommendationsMsg:
		m.state.RecommendationsLoaded(msg.req, msg.movies, msg.err)
		m.refreshDetail()

	case themeSavedMsg:
		switch {
		case msg.err != nil:
			m.logger.Error().Err(msg.err).Msg("Failed to save theme preference")
			cmds = append(cmds, m.toast(catalog.Error, fmt.Sprintf("Could not save theme: %v", msg.err)))
		case msg.pref != m.pref && m.store != nil:
			// An older toggle finished last; write the current preference again.
			cmds = append(cmds, saveTheme(m.store, m.pref))
		}

	case browserMsg:
		if msg.err != nil {
			m.logger.Warn().Err(msg.err).Str("url", msg.url).Msg("Failed to open browser")
			cmds = append(cmds, m.toast(catalog.Error, fmt.Sprintf("failed to open browser: %v", msg.err)))
		} else {
			cmds = append(cmds, m.toast(catalog.Info, "Opened trailer in browser"))
		}

	case clipboardMsg:
		if msg.err != nil {
			cmds = append(cmds, m.toast(catalog.Error, fmt.Sprintf("Could not copy: %v", msg.err)))
		} else {
			cmds = append(cmds, m.toast(catalog.Info, "Copied "+msg.text))
		}

	case toastExpiredMsg:
		for i, t := range m.toasts {
			if t.id == msg.id {
				m.toasts = append(m.toasts[:i:i], m.toasts[i+1:]...)
				break
			}
		}
	}

	cmds = append(cmds, m.absorbNotices(), m.ensureSpinner())
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	switch {
	case m.trailer != nil:
		return m.handleTrailerKey(msg)
	case m.focus == focusSearch:
		return m.handleSearchKey(msg)
	case m.focus == focusFilters:
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizeViewport()
		return nil
	case key.Matches(msg, m.keys.Theme):
		return m.toggleTheme()
	case key.Matches(msg, m.keys.Search):
		// The input is drawn over the section listing only.
		m.state.CloseDetail()
		m.focus = focusSearch
		m.input.SetValue(m.state.Query())
		m.input.CursorEnd()
		return m.input.Focus()
	case key.Matches(msg, m.keys.NextTab):
		return m.activate(m.relativeSection(1))
	case key.Matches(msg, m.keys.PrevTab):
		return m.activate(m.relativeSection(-1))
	}

	if d := m.state.Detail(); d != nil {
		return m.handleDetailKey(msg, d)
	}
	return m.handleListKey(msg)
}

func (m *Model) handleListKey(msg tea.KeyMsg) tea.Cmd {
	s := m.state.Nav().Current()
	n := m.itemCount(s)

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor[s] > 0 {
			m.cursor[s]--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor[s] < n-1 {
			m.cursor[s]++
		}
	case key.Matches(msg, m.keys.Filters):
		if m.state.Nav().FilterPanelVisible() {
			m.focus = focusFilters
		}
	case key.Matches(msg, m.keys.Select):
		return m.selectItem(s)
	case key.Matches(msg, m.keys.Back):
		if prev, ok := m.state.Nav().Previous(); ok {
			return m.activate(prev)
		}
	default:
		if i, err := strconv.Atoi(msg.String()); err == nil && i >= 1 && i <= len(catalog.Sections) {
			return m.activate(catalog.Sections[i-1])
		}
	}
	return nil
}

func (m *Model) handleDetailKey(msg tea.KeyMsg, d *catalog.DetailState) tea.Cmd {
	recs := d.Recommendations.Cards

	switch {
	case key.Matches(msg, m.keys.Back):
		m.state.CloseDetail()
		return nil
	case key.Matches(msg, m.keys.Left):
		if m.recCursor > 0 {
			m.recCursor--
			m.refreshDetail()
		}
		return nil
	case key.Matches(msg, m.keys.Right):
		if m.recCursor < len(recs)-1 {
			m.recCursor++
			m.refreshDetail()
		}
		return nil
	case key.Matches(msg, m.keys.Select):
		if m.recCursor < len(recs) {
			return m.run(m.state.OpenDetail(recs[m.recCursor].ID))
		}
		return nil
	}

	if i, err := strconv.Atoi(msg.String()); err == nil && i >= 1 && i <= len(d.View.Trailers) {
		t := d.View.Trailers[i-1]
		m.trailer = &t
		return nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.blurSearch()
		return nil
	case tea.KeyEnter:
		reqs, err := m.state.Search(m.input.Value())
		if err != nil {
			m.logger.Debug().Err(err).Msg("Search rejected")
			return nil
		}
		m.blurSearch()
		m.cursor[catalog.Search] = 0
		return m.run(reqs)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	n := len(catalog.Controls)

	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Filters):
		m.focus = focusList
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.PrevTab):
		m.control = (m.control + n - 1) % n
	case key.Matches(msg, m.keys.Down), key.Matches(msg, m.keys.NextTab):
		m.control = (m.control + 1) % n
	case key.Matches(msg, m.keys.Left):
		m.state.StepControl(catalog.Controls[m.control], -1, m.now())
	case key.Matches(msg, m.keys.Right):
		m.state.StepControl(catalog.Controls[m.control], 1, m.now())
	case key.Matches(msg, m.keys.Select):
		m.focus = focusList
		m.cursor[catalog.Discover] = 0
		return m.run(m.state.ApplyFilters())
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	}
	return nil
}

func (m *Model) handleTrailerKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.trailer = nil
	case key.Matches(msg, m.keys.Open):
		return openURLCmd(m.openURL, m.trailer.WatchURL())
	case key.Matches(msg, m.keys.Copy):
		return copyCmd(m.trailer.WatchURL())
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		delta := 1
		if msg.Button == tea.MouseButtonWheelUp {
			delta = -1
		}
		if m.trailer != nil {
			return nil
		}
		if m.state.Detail() != nil {
			m.viewport.SetYOffset(m.viewport.YOffset + 3*delta)
			return nil
		}
		s := m.state.Nav().Current()
		m.cursor[s] = clamp(m.cursor[s]+delta, 0, m.itemCount(s)-1)

	case tea.MouseButtonLeft:
		if m.trailer != nil {
			if !m.insideOverlay(msg.X, msg.Y) {
				m.trailer = nil
			}
			return nil
		}
		if msg.Y == tabsRow {
			if s, ok := m.tabAt(msg.X); ok {
				return m.activate(s)
			}
		}
	}
	return nil
}

func (m *Model) selectItem(s catalog.Section) tea.Cmd {
	l := m.state.Listing(s)
	if !l.Loaded {
		// Retry after a failed first page.
		return m.run(m.state.Activate(s))
	}

	i := m.cursor[s]
	if i < l.Len() {
		return m.run(m.state.OpenDetail(l.Cards[i].ID))
	}
	if l.ShowMore {
		return m.run(m.state.LoadMore(s))
	}
	return nil
}

func (m *Model) activate(s catalog.Section) tea.Cmd {
	if s != m.state.Nav().Current() {
		m.cursor[s] = 0
	}
	m.viewport.GotoTop()
	m.trailer = nil
	m.focus = focusList
	return m.run(m.state.Activate(s))
}

func (m *Model) relativeSection(delta int) catalog.Section {
	n := len(catalog.Sections)
	i := int(m.state.Nav().Current())
	return catalog.Sections[((i+delta)%n+n)%n]
}

// itemCount is the number of selectable lines of s: its cards plus the
// "load more" line when shown.
func (m *Model) itemCount(s catalog.Section) int {
	l := m.state.Listing(s)
	n := l.Len()
	if l.ShowMore {
		n++
	}
	return n
}

func (m *Model) blurSearch() {
	m.focus = focusList
	m.input.Blur()
}

func (m *Model) toggleTheme() tea.Cmd {
	m.pref = m.pref.Toggle()
	m.styles = newStyles(m.pref)
	m.spinner.Style = m.styles.spinner
	m.refreshDetail()
	if m.store == nil {
		return nil
	}
	return saveTheme(m.store, m.pref)
}

// toast shows text until it expires.
func (m *Model) toast(level catalog.Level, text string) tea.Cmd {
	m.nextToast++
	m.toasts = append(m.toasts, toast{id: m.nextToast, level: level, text: text})
	return expireToast(m.nextToast, m.toastDuration)
}

func (m *Model) absorbNotices() tea.Cmd {
	var cmds []tea.Cmd
	for _, n := range m.state.TakeNotices() {
		cmds = append(cmds, m.toast(n.Level, n.Text))
	}
	return tea.Batch(cmds...)
}

// ensureSpinner restarts the spinner when loading begins. It only ticks
// while something is loading.
func (m *Model) ensureSpinner() tea.Cmd {
	if !m.state.Loading() || m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
