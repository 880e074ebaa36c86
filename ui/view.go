package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sebastiantruijens/vincent/catalog"
	"github.com/sebastiantruijens/vincent/view"
)

// tabsRow is the screen row of the section tabs.
const tabsRow = 1

const recCardWidth = 24

// View renders the current UI
func (m Model) View() string {
	if m.trailer != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.overlayView())
	}

	top := lipgloss.JoinVertical(lipgloss.Left, m.headerView(), m.tabsView(), "")
	bottom := m.footerView()
	avail := max(m.height-lipgloss.Height(top)-lipgloss.Height(bottom), 1)

	var body string
	if m.state.Detail() != nil {
		vp := m.viewport
		vp.Height = avail
		body = vp.View()
	} else {
		body = m.sectionView(avail)
	}

	return lipgloss.NewStyle().
		MaxHeight(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, top, body, bottom))
}

func (m Model) headerView() string {
	left := m.styles.title.Render("🎬 Vincent")
	if m.state.Loading() {
		left += " " + m.spinner.View() + m.styles.muted.Render("Loading...")
	}

	label := "☀ light"
	if m.pref.IsDark() {
		label = "☾ dark"
	}
	right := m.styles.muted.Render("theme: ") + m.styles.normal.Render(label)

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderTab(i int, s catalog.Section) string {
	label := fmt.Sprintf("%d %s", i+1, s.Title())
	if s == m.state.Nav().Current() {
		return m.styles.activeTab.Render(label)
	}
	return m.styles.tab.Render(label)
}

func (m Model) tabsView() string {
	var sb strings.Builder
	for i, s := range catalog.Sections {
		sb.WriteString(m.renderTab(i, s))
	}
	return sb.String()
}

// tabAt maps a column of the tab row to its section.
func (m Model) tabAt(x int) (catalog.Section, bool) {
	pos := 0
	for i, s := range catalog.Sections {
		w := lipgloss.Width(m.renderTab(i, s))
		if x >= pos && x < pos+w {
			return s, true
		}
		pos += w
	}
	return 0, false
}

func (m Model) sectionView(avail int) string {
	s := m.state.Nav().Current()

	heading := s.Title()
	if s == catalog.Search && m.state.SearchTitle() != "" {
		heading = m.state.SearchTitle()
	}
	parts := []string{m.styles.subtitle.Render(heading)}

	if m.state.Nav().FilterPanelVisible() {
		parts = append(parts, m.filterView())
	}
	if m.focus == focusSearch || s == catalog.Search {
		parts = append(parts, m.styles.input.Render(m.input.View()))
	}

	head := lipgloss.JoinVertical(lipgloss.Left, parts...)
	rows := max(avail-lipgloss.Height(head), 1)
	return lipgloss.JoinVertical(lipgloss.Left, head, m.listingView(s, rows))
}

func (m Model) filterView() string {
	controls := make([]string, 0, len(catalog.Controls))
	for i, c := range catalog.Controls {
		label := fmt.Sprintf("%s: ‹ %s ›", c, m.state.ControlLabel(c))
		if m.focus == focusFilters && i == m.control {
			controls = append(controls, m.styles.activeCtl.Render(label))
		} else {
			controls = append(controls, m.styles.control.Render(label))
		}
	}

	hint := "f: edit filters"
	if m.focus == focusFilters {
		hint = "↑/↓: control • ←/→: change • enter: apply • esc: done"
	}
	return m.styles.filterPanel.Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, controls...),
		m.styles.muted.Render(hint),
	))
}

func (m Model) listingView(s catalog.Section, rows int) string {
	l := m.state.Listing(s)
	entry := m.state.Pagination().Entry(s)

	if !l.Loaded {
		switch {
		case entry.Loading:
			return m.spinner.View() + m.styles.normal.Render("Loading movies...")
		case s == catalog.Search && m.state.Query() == "":
			return m.styles.muted.Render("Press / to search for a movie")
		default:
			return m.styles.muted.Render("Nothing loaded yet. Press enter to retry")
		}
	}
	if l.Placeholder != "" {
		return m.styles.muted.Render(l.Placeholder)
	}

	cursor := clamp(m.cursor[s], 0, m.itemCount(s)-1)
	lines := make([]string, 0, l.Len()+1)
	for i, c := range l.Cards {
		lines = append(lines, m.cardLine(c, i == cursor))
	}
	if l.ShowMore {
		label := "Load more"
		if entry.Loading {
			label = "Loading more..."
		}
		if cursor == l.Len() {
			lines = append(lines, m.styles.highlighted.Render("> "+label))
		} else {
			lines = append(lines, m.styles.muted.Render("  "+label))
		}
	}

	start := 0
	if cursor >= rows {
		start = cursor - rows + 1
	}
	end := min(start+rows, len(lines))
	return strings.Join(lines[start:end], "\n")
}

func (m Model) cardLine(c view.Card, selected bool) string {
	title := c.Title
	if c.Year != "" {
		title = fmt.Sprintf("%s (%s)", c.Title, c.Year)
	}

	meta := " " + m.styles.score.Render("★ "+c.Rating) + " " + m.styles.muted.Render(c.Genres)
	if c.Poster == view.NoPoster {
		meta += m.styles.muted.Render(" · " + view.NoPoster)
	}

	if selected {
		return m.styles.highlighted.Render("> "+title) + meta
	}
	return m.styles.card.Render("  "+title) + meta
}

func (m Model) footerView() string {
	parts := make([]string, 0, len(m.toasts)+1)
	for _, t := range m.toasts {
		if t.level == catalog.Error {
			parts = append(parts, m.styles.errorToast.Render("✗ "+t.text))
		} else {
			parts = append(parts, m.styles.infoToast.Render("• "+t.text))
		}
	}
	parts = append(parts, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) overlayView() string {
	t := m.trailer
	name := t.Name
	if name == "" {
		name = "Trailer"
	}
	return m.styles.overlay.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.styles.subtitle.Render(name),
		"",
		m.styles.normal.Render("Player: "+t.EmbedURL()),
		m.styles.normal.Render("Watch:  "+t.WatchURL()),
		"",
		m.styles.muted.Render("o: open in browser • y: copy url • esc: close"),
	))
}

// insideOverlay reports whether the cell x, y lies on the trailer box.
func (m Model) insideOverlay(x, y int) bool {
	box := m.overlayView()
	w, h := lipgloss.Width(box), lipgloss.Height(box)
	x0, y0 := (m.width-w)/2, (m.height-h)/2
	return x >= x0 && x < x0+w && y >= y0 && y < y0+h
}

func (m *Model) resizeViewport() {
	m.viewport.Width = max(m.width-2, 20)
	m.viewport.Height = max(m.height-6, 5)
}

// refreshDetail re-renders the detail pane into the viewport.
func (m *Model) refreshDetail() {
	d := m.state.Detail()
	if d == nil {
		return
	}
	m.viewport.SetContent(m.detailContent(d))
}

func (m Model) detailContent(d *catalog.DetailState) string {
	v := d.View
	width := max(m.viewport.Width-2, 20)
	s := m.styles

	title := v.Title
	if v.Year != "" {
		title = fmt.Sprintf("%s (%s)", v.Title, v.Year)
	}

	var sb strings.Builder
	sb.WriteString(s.title.Render(title))
	sb.WriteString("\n")
	sb.WriteString(s.score.Render("★ "+v.Rating) + " " + s.muted.Render(v.Votes))
	sb.WriteString("\n")
	sb.WriteString(s.normal.Render(strings.Join(v.Genres, " · ")))
	sb.WriteString("\n")
	sb.WriteString(s.muted.Render("Poster: " + v.Poster))
	if v.Backdrop != "" {
		sb.WriteString("\n")
		sb.WriteString(s.muted.Render("Backdrop: " + v.Backdrop))
	}
	sb.WriteString("\n\n")

	sb.WriteString(s.subtitle.Render("Synopsis"))
	sb.WriteString("\n")
	sb.WriteString(s.normal.Render(view.Wrap(v.Synopsis, width)))
	sb.WriteString("\n\n")

	sb.WriteString(s.subtitle.Render("Director"))
	sb.WriteString("\n")
	sb.WriteString(s.normal.Render(view.Wrap(v.Directors, width)))
	sb.WriteString("\n\n")

	sb.WriteString(s.subtitle.Render("Cast"))
	sb.WriteString("\n")
	if len(v.Cast) == 0 {
		sb.WriteString(s.muted.Render(view.NotAvailable))
		sb.WriteString("\n")
	}
	for _, c := range v.Cast {
		line := "• " + c.Name
		if c.Character != "" {
			line += " as " + c.Character
		}
		photo := "no photo"
		if c.Photo != "" {
			photo = c.Photo
		}
		sb.WriteString(s.normal.Render(line) + "  " + s.muted.Render(photo))
		sb.WriteString("\n")
	}

	if v.HasTrailers() {
		sb.WriteString("\n")
		sb.WriteString(s.subtitle.Render("Trailers"))
		sb.WriteString("\n")
		for i, t := range v.Trailers {
			name := t.Name
			if name == "" {
				name = "Trailer"
			}
			if i < 9 {
				sb.WriteString(s.highlighted.Render(fmt.Sprintf("[%d] ", i+1)))
			} else {
				sb.WriteString("    ")
			}
			sb.WriteString(s.normal.Render(name))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(s.subtitle.Render("Recommended"))
	sb.WriteString("\n")
	sb.WriteString(m.recommendationsView(d.Recommendations, width))

	return sb.String()
}

func (m Model) recommendationsView(l view.Listing, width int) string {
	switch {
	case !l.Loaded:
		return m.styles.muted.Render("Loading recommendations...")
	case l.Placeholder != "":
		return m.styles.muted.Render(l.Placeholder)
	}

	perRow := max(width/(recCardWidth+4), 1)
	start := (m.recCursor / perRow) * perRow
	end := min(start+perRow, len(l.Cards))

	boxes := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		c := l.Cards[i]
		content := lipgloss.JoinVertical(lipgloss.Left,
			c.Title,
			m.styles.muted.Render(fmt.Sprintf("★ %s · %s", c.Rating, c.Year)),
		)
		style := m.styles.smallCard
		if i == m.recCursor {
			style = m.styles.selected
		}
		boxes = append(boxes, style.Width(recCardWidth).Render(content))
	}

	hint := m.styles.muted.Render(fmt.Sprintf("←/→: select • enter: open (%d/%d)", m.recCursor+1, len(l.Cards)))
	return lipgloss.JoinVertical(lipgloss.Left, lipgloss.JoinHorizontal(lipgloss.Top, boxes...), hint)
}
