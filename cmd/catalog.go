package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sebastiantruijens/vincent/catalog"
	"github.com/sebastiantruijens/vincent/filter"
	"github.com/sebastiantruijens/vincent/movie"
	"github.com/sebastiantruijens/vincent/view"
)

var (
	pageNum   int
	whereExpr string
	year      int
	genreFlag string
	sortBy    string
	wrapWidth int
)

// listCmd prints one page of a section
var listCmd = &cobra.Command{
	Use:   "list <section>",
	Short: "Print one page of a section",
	Long: `Print one page of popular, top-rated, now-playing, upcoming or discover.
Discover accepts --year, --genre and --sort.`,
	Example: `  vincent list top-rated --page 2
  vincent list discover --year 1999 --genre Drama --sort vote_average.desc
  vincent list popular --where 'rating >= 7.5 && hasGenre("Comedy")'`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

// searchCmd prints one page of title matches
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search movies by title",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

// showCmd prints the details of one movie
var showCmd = &cobra.Command{
	Use:   "show <movie-id>",
	Short: "Show the details and recommendations of a movie",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

// genresCmd prints the genre list
var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List the genres known to the catalog",
	Args:  cobra.NoArgs,
	RunE:  runGenres,
}

func init() {
	for _, c := range []*cobra.Command{listCmd, searchCmd} {
		c.Flags().IntVar(&pageNum, "page", 1, "page to fetch")
	}
	for _, c := range []*cobra.Command{listCmd, searchCmd, showCmd} {
		c.Flags().StringVarP(&whereExpr, "where", "w", "", "only print movies matching this expression")
	}

	listCmd.Flags().IntVar(&year, "year", 0, "discover: release year")
	listCmd.Flags().StringVar(&genreFlag, "genre", "", "discover: genre id or name")
	listCmd.Flags().StringVar(&sortBy, "sort", "", "discover: sort order, e.g. popularity.desc")

	showCmd.Flags().IntVar(&wrapWidth, "width", 80, "wrap the synopsis at this width")
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := catalog.ParseSection(args[0])
	if err != nil {
		return err
	}
	where, err := compileWhere()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var page *movie.Page

	switch s {
	case catalog.Search:
		return fmt.Errorf("use the search command to search")
	case catalog.Discover:
		f := movie.Filter{Year: year, SortBy: sortBy}
		if genreFlag != "" {
			if f.GenreID, err = resolveGenre(cmd, genreFlag); err != nil {
				return err
			}
		}
		logger.Debug().Int("year", f.Year).Int("genre", f.GenreID).Str("sort", f.SortBy).Msg("Discovering movies")
		page, err = client.Discover(ctx, pageNum, f)
	default:
		if cmd.Flags().Changed("year") || cmd.Flags().Changed("genre") || cmd.Flags().Changed("sort") {
			return fmt.Errorf("--year, --genre and --sort only apply to discover")
		}
		category, _ := s.Category()
		page, err = client.Category(ctx, category, pageNum)
	}
	if err != nil {
		return fmt.Errorf("could not load movies: %w", err)
	}

	printPage(cmd.OutOrStdout(), s.Title(), page, view.NoResults, where)
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if utf8.RuneCountInString(query) < catalog.MinQueryLength {
		return &movie.ValidationError{
			Field:  "query",
			Reason: fmt.Sprintf("needs at least %d characters", catalog.MinQueryLength),
		}
	}
	where, err := compileWhere()
	if err != nil {
		return err
	}

	page, err := client.Search(cmd.Context(), query, pageNum)
	if err != nil {
		return fmt.Errorf("could not search movies: %w", err)
	}

	printPage(cmd.OutOrStdout(), fmt.Sprintf("Results for: %q", query), page, view.NoSearchResults, where)
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return &movie.ValidationError{Field: "movie id", Reason: fmt.Sprintf("%q is not a positive number", args[0])}
	}
	where, err := compileWhere()
	if err != nil {
		return err
	}

	var (
		detail  *movie.Detail
		recs    []movie.Summary
		recsErr error
	)

	// Recommendations are fetched alongside the detail; their failure only
	// affects the recommendation block.
	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		d, err := client.Movie(ctx, id)
		if err != nil {
			return fmt.Errorf("could not load details: %w", err)
		}
		detail = d
		return nil
	})
	g.Go(func() error {
		recs, recsErr = client.Recommendations(ctx, id)
		if recsErr != nil {
			logger.Warn().Err(recsErr).Int("movie_id", id).Msg("Failed to load recommendations")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	recs = where.Apply(recs)
	rl := view.Listing{Loaded: true}
	switch {
	case recsErr != nil:
		rl.Placeholder = view.RecommendedFail
	case len(recs) == 0:
		rl.Placeholder = view.NoRecommended
	default:
		rl.Cards = view.NewCards(recs, true)
	}

	printDetail(cmd.OutOrStdout(), view.NewDetail(*detail), rl, wrapWidth)
	return nil
}

func runGenres(cmd *cobra.Command, args []string) error {
	genres, err := client.Genres(cmd.Context())
	if err != nil {
		return fmt.Errorf("could not load genres: %w", err)
	}

	var cache catalog.GenreCache
	cache.Fill(genres)

	t := table.New().Headers("ID", "NAME")
	for _, g := range cache.List() {
		t.Row(strconv.Itoa(g.ID), g.Name)
	}
	fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	return nil
}

func compileWhere() (*filter.Filter, error) {
	if strings.TrimSpace(whereExpr) == "" {
		return nil, nil
	}
	f, err := filter.Compile(whereExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid --where expression: %w", err)
	}
	return f, nil
}

// resolveGenre accepts a genre id or a case-insensitive genre name.
func resolveGenre(cmd *cobra.Command, value string) (int, error) {
	if id, err := strconv.Atoi(value); err == nil {
		return id, nil
	}

	genres, err := client.Genres(cmd.Context())
	if err != nil {
		return 0, fmt.Errorf("could not load genres: %w", err)
	}
	return matchGenre(genres, value)
}

func matchGenre(genres []movie.Genre, name string) (int, error) {
	for _, g := range genres {
		if strings.EqualFold(g.Name, name) {
			return g.ID, nil
		}
	}
	return 0, &movie.ValidationError{Field: "genre", Reason: fmt.Sprintf("no genre named %q", name)}
}
