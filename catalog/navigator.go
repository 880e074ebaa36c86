package catalog

// Pane identifies what the main area shows. Exactly one pane is visible.
type Pane int

const (
	SectionPane Pane = iota
	DetailPane
)

// Navigator tracks the current and previous section and whether the detail
// overlay is drawn on top of the current one.
type Navigator struct {
	current     Section
	previous    Section
	hasPrevious bool
	detailOpen  bool
}

// Current is the active section.
func (n *Navigator) Current() Section {
	return n.current
}

// Previous is the section active before the last switch.
func (n *Navigator) Previous() (Section, bool) {
	return n.previous, n.hasPrevious
}

// DetailOpen reports whether the detail overlay is shown.
func (n *Navigator) DetailOpen() bool {
	return n.detailOpen
}

// Pane returns the visible pane.
func (n *Navigator) Pane() Pane {
	if n.detailOpen {
		return DetailPane
	}
	return SectionPane
}

// Visible reports whether the container of s is the one shown.
func (n *Navigator) Visible(s Section) bool {
	return !n.detailOpen && n.current == s
}

// FilterPanelVisible is true only on the discover section.
func (n *Navigator) FilterPanelVisible() bool {
	return n.Visible(Discover)
}

func (n *Navigator) switchTo(s Section) {
	n.previous, n.hasPrevious = n.current, true
	n.current = s
	n.detailOpen = false
}

func (n *Navigator) showDetail() {
	n.detailOpen = true
}

func (n *Navigator) hideDetail() {
	n.detailOpen = false
}
