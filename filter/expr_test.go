package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastiantruijens/vincent/movie"
)

func intPtr(v int) *int { return &v }

var movies = []movie.Summary{
	{ID: 1, Title: "Heat", Year: intPtr(1995), VoteAverage: 7.9, Genres: []string{"Action", "Crime", "Drama"}, PosterURL: "/heat.jpg"},
	{ID: 2, Title: "Cats", ReleaseDate: "2019-12-20", VoteAverage: 4.1, Genres: []string{"Comedy"}},
	{ID: 3, Title: "Drive", ReleaseDate: "2011-09-15", VoteAverage: 7.6},
}

func ids(ms []movie.Summary) []int {
	out := make([]int, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.ID)
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		expr string
		want []int
	}{
		{expr: "rating >= 7", want: []int{1, 3}},
		{expr: `hasGenre("drama")`, want: []int{1}},
		{expr: "year > 2000 && year < 2015", want: []int{3}},
		{expr: `contains(title, "AT")`, want: []int{1, 2}},
		{expr: "len(genres) == 0", want: []int{3}},
		{expr: "hasPoster", want: []int{1}},
		{expr: `"Comedy" in genres`, want: []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			f, err := Compile(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(f.Apply(movies)))
		})
	}
}

func TestCompileErrors(t *testing.T) {
	for _, in := range []string{"", "   ", "rating >=", "rating && true", "rating", "unknownField > 1"} {
		_, err := Compile(in)
		var cErr *CompilationError
		assert.ErrorAs(t, err, &cErr, in)
	}
}

func TestNilFilterKeepsAll(t *testing.T) {
	var f *Filter
	assert.Len(t, f.Apply(movies), len(movies))
}
