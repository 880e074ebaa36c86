package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/sebastiantruijens/vincent/filter"
	"github.com/sebastiantruijens/vincent/movie"
	"github.com/sebastiantruijens/vincent/view"
)

// headingStyle underlines section headings in headless output.
var headingStyle = lipgloss.NewStyle().
	Bold(true).
	Border(lipgloss.NormalBorder(), false, false, true, false)

func printPage(w io.Writer, heading string, page *movie.Page, empty string, where *filter.Filter) {
	var l view.Listing
	l.Render(where.Apply(page.Movies), false, page.Page, page.TotalPages, empty)

	fmt.Fprintln(w)
	fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("%s (page %d of %d)", heading, max(page.Page, 1), max(page.TotalPages, 1))))

	if l.Placeholder != "" {
		fmt.Fprintln(w, l.Placeholder)
	}
	if len(l.Cards) > 0 {
		fmt.Fprintln(w, cardTable(l.Cards))
	}
	if l.ShowMore {
		fmt.Fprintf(w, "\nMore results: --page %d\n", page.Page+1)
	}
}

// cardTable lays cards out one per row.
func cardTable(cards []view.Card) string {
	t := table.New().Headers("ID", "TITLE", "YEAR", "RATING", "GENRES", "POSTER")
	for _, c := range cards {
		poster := "yes"
		if c.Poster == view.NoPoster {
			poster = view.NoPoster
		}
		t.Row(strconv.Itoa(c.ID), c.Title, c.Year, "★ "+c.Rating, c.Genres, poster)
	}
	return t.Render()
}

func printDetail(w io.Writer, d view.Detail, recs view.Listing, width int) {
	title := d.Title
	if d.Year != "" {
		title = fmt.Sprintf("%s (%s)", d.Title, d.Year)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, headingStyle.Width(width).Render(title))
	fmt.Fprintf(w, "Rating:   %s %s\n", d.Rating, d.Votes)
	fmt.Fprintf(w, "Genres:   %s\n", strings.Join(d.Genres, ", "))
	fmt.Fprintf(w, "Director: %s\n", d.Directors)
	fmt.Fprintf(w, "Poster:   %s\n", d.Poster)
	if d.Backdrop != "" {
		fmt.Fprintf(w, "Backdrop: %s\n", d.Backdrop)
	}

	fmt.Fprintf(w, "\nSynopsis:\n%s\n", view.Wrap(d.Synopsis, width))

	fmt.Fprintln(w, "\nCast:")
	if len(d.Cast) == 0 {
		fmt.Fprintf(w, "  %s\n", view.NotAvailable)
	}
	for _, c := range d.Cast {
		fmt.Fprintf(w, "  • %s", c.Name)
		if c.Character != "" {
			fmt.Fprintf(w, " as %s", c.Character)
		}
		if c.Photo != "" {
			fmt.Fprintf(w, " (%s)", c.Photo)
		}
		fmt.Fprintln(w)
	}

	if d.HasTrailers() {
		fmt.Fprintln(w, "\nTrailers:")
		for _, t := range d.Trailers {
			fmt.Fprintf(w, "  • %s: %s\n", t.Name, t.WatchURL())
		}
	}

	fmt.Fprintln(w, "\nRecommended:")
	if recs.Placeholder != "" {
		fmt.Fprintf(w, "  %s\n", recs.Placeholder)
	}
	if len(recs.Cards) > 0 {
		fmt.Fprintln(w, cardTable(recs.Cards))
	}
}
