package catalog

import (
	"strconv"
	"time"

	"github.com/sebastiantruijens/vincent/movie"
)

// Control identifies one of the discover filter controls.
type Control int

const (
	YearControl Control = iota
	GenreControl
	SortControl
)

// Controls lists the filter controls in panel order.
var Controls = []Control{YearControl, GenreControl, SortControl}

func (c Control) String() string {
	switch c {
	case YearControl:
		return "Year"
	case GenreControl:
		return "Genre"
	case SortControl:
		return "Sort by"
	}
	return "?"
}

// YearOptions lists the selectable years, newest first, down to movie.MinYear.
func YearOptions(now time.Time) []int {
	years := make([]int, 0, now.Year()-movie.MinYear+1)
	for y := now.Year(); y >= movie.MinYear; y-- {
		years = append(years, y)
	}
	return years
}

// StepControl moves control c forward (delta > 0) or backward through its
// options. The first option of every control is "unset"; stepping wraps.
func (st *State) StepControl(c Control, delta int, now time.Time) {
	f := st.controls
	switch c {
	case YearControl:
		opts := append([]int{0}, YearOptions(now)...)
		f.Year = opts[step(indexOf(opts, f.Year), delta, len(opts))]
	case GenreControl:
		opts := []int{0}
		for _, g := range st.genres.List() {
			opts = append(opts, g.ID)
		}
		f.GenreID = opts[step(indexOf(opts, f.GenreID), delta, len(opts))]
	case SortControl:
		opts := append([]string{""}, movie.SortOptions...)
		f.SortBy = opts[step(indexOf(opts, f.SortBy), delta, len(opts))]
	}
	st.controls = f
}

// ControlLabel renders the current value of c, "Any" when unset.
func (st *State) ControlLabel(c Control) string {
	f := st.controls
	switch c {
	case YearControl:
		if f.Year > 0 {
			return strconv.Itoa(f.Year)
		}
	case GenreControl:
		if f.GenreID > 0 {
			if name, ok := st.genres.Name(f.GenreID); ok {
				return name
			}
			return strconv.Itoa(f.GenreID)
		}
	case SortControl:
		if f.SortBy != "" {
			return f.SortBy
		}
	}
	return "Any"
}

func indexOf[T comparable](opts []T, v T) int {
	for i, o := range opts {
		if o == v {
			return i
		}
	}
	return 0
}

func step(i, delta, n int) int {
	if n == 0 {
		return 0
	}
	return ((i+delta)%n + n) % n
}
