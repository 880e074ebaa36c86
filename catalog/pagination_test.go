package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTryBeginGuardsEverySection(t *testing.T) {
	p := NewPagination()
	for _, s := range Sections {
		t.Run(s.String(), func(t *testing.T) {
			assert.True(t, p.TryBegin(s))
			assert.False(t, p.TryBegin(s), "second fetch must be refused while the first is outstanding")
			assert.True(t, p.Entry(s).Loading)
		})
	}
}

func TestCompleteClearsLoading(t *testing.T) {
	p := NewPagination()
	for _, s := range Sections {
		p.TryBegin(s)
		p.Complete(s, 4, 7)

		e := p.Entry(s)
		assert.False(t, e.Loading)
		assert.Equal(t, 4, e.Page)
		assert.Equal(t, 7, e.TotalPages)
		assert.True(t, p.TryBegin(s), "section must be usable again after completion")
	}
}

func TestCompleteClampsToPositive(t *testing.T) {
	p := NewPagination()
	p.Complete(Popular, 0, 0)
	assert.Equal(t, PageState{Page: 1, TotalPages: 1}, p.Entry(Popular))
}

func TestAbortKeepsConfirmedPage(t *testing.T) {
	p := NewPagination()
	p.Complete(Upcoming, 2, 5)
	p.TryBegin(Upcoming)
	p.Abort(Upcoming)

	assert.Equal(t, PageState{Page: 2, TotalPages: 5}, p.Entry(Upcoming))
}

func TestResetAndNextPage(t *testing.T) {
	p := NewPagination()
	p.Complete(Discover, 3, 10)
	assert.Equal(t, 4, p.NextPage(Discover))
	assert.True(t, p.HasMore(Discover))

	p.Reset(Discover)
	e := p.Entry(Discover)
	assert.Equal(t, 1, e.Page)
	assert.Equal(t, 10, e.TotalPages, "total pages survive a reset")
	assert.Equal(t, 2, p.NextPage(Discover))
}

func TestSectionsAreIndependent(t *testing.T) {
	p := NewPagination()
	assert.True(t, p.TryBegin(Popular))
	assert.True(t, p.TryBegin(Search))
	p.Complete(Popular, 2, 2)
	assert.True(t, p.Entry(Search).Loading)
	assert.False(t, p.HasMore(Popular))
}

func TestParseSection(t *testing.T) {
	tests := []struct {
		in      string
		want    Section
		wantErr bool
	}{
		{in: "popular", want: Popular},
		{in: "top-rated", want: TopRated},
		{in: "top_rated", want: TopRated},
		{in: "now-playing", want: NowPlaying},
		{in: "discover", want: Discover},
		{in: "search", want: Search},
		{in: "trending", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSection(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	cat, ok := NowPlaying.Category()
	assert.True(t, ok)
	assert.Equal(t, "now_playing", cat)
	_, ok = Discover.Category()
	assert.False(t, ok)
}
