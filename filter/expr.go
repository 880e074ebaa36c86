// Package filter narrows printed movie lists with expr-lang expressions,
// e.g. `rating >= 7 && hasGenre("Drama")`.
package filter

import (
	"slices"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/sebastiantruijens/vincent/movie"
)

// Filter is a compiled expression evaluated against movie summaries.
// A Filter is safe for concurrent use.
type Filter struct {
	expression string
	program    *vm.Program
}

// Compile compiles expression. Variables available to it:
//
//	id, title, year (0 when unknown), rating, genres, hasPoster, score
//
// plus the helpers contains, startsWith, lower, upper and hasGenre.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty expression"}
	}

	program, err := expr.Compile(expression,
		expr.Env(environment(movie.Summary{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}
	return &Filter{expression: expression, program: program}, nil
}

// Expression returns the source expression.
func (f *Filter) Expression() string {
	return f.expression
}

// Match reports whether m satisfies the expression. Evaluation errors count
// as no match.
func (f *Filter) Match(m movie.Summary) bool {
	out, err := expr.Run(f.program, environment(m))
	if err != nil {
		return false
	}
	return out.(bool)
}

// Apply returns the movies matching f, in order. A nil filter keeps all.
func (f *Filter) Apply(movies []movie.Summary) []movie.Summary {
	if f == nil {
		return movies
	}
	out := make([]movie.Summary, 0, len(movies))
	for _, m := range movies {
		if f.Match(m) {
			out = append(out, m)
		}
	}
	return out
}

func environment(m movie.Summary) map[string]any {
	year, _ := strconv.Atoi(m.ReleaseYear())
	genres := m.Genres
	if genres == nil {
		genres = []string{}
	}

	return map[string]any{
		"id":        m.ID,
		"title":     m.Title,
		"year":      year,
		"rating":    m.VoteAverage,
		"genres":    genres,
		"hasPoster": m.PosterURL != "",
		"score":     m.HybridScore,

		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		"hasGenre": func(name string) bool {
			return slices.ContainsFunc(genres, func(g string) bool {
				return strings.EqualFold(g, name)
			})
		},
	}
}
