package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/sebastiantruijens/vincent/catalog"
	"github.com/sebastiantruijens/vincent/theme"
	"github.com/sebastiantruijens/vincent/ui"
)

// browseCmd represents the interactive browser
var browseCmd = &cobra.Command{
	Use:   "browse [section]",
	Short: "Open the interactive movie browser",
	Long: `Open the interactive browser. The optional section picks the first
tab: popular, top-rated, now-playing, upcoming or discover.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return fmt.Errorf("the browser needs an interactive terminal; use list, search or show instead")
	}

	start := catalog.Popular
	if len(args) == 1 {
		s, err := catalog.ParseSection(args[0])
		if err != nil {
			return err
		}
		if s == catalog.Search {
			return fmt.Errorf("cannot start on the search section; press / once the browser is open")
		}
		start = s
	}

	ctx := cmd.Context()
	model := ui.New(ui.Options{
		Client:        client,
		Store:         theme.NewStore(cfg.UI.StateFile),
		Start:         start,
		FreezeFilters: cfg.Discover.FreezeFilters,
		ToastDuration: cfg.UI.ToastDuration,
		Context:       ctx,
		Logger:        logger,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	logger.Info().
		Str("base_url", client.BaseURL()).
		Stringer("start", start).
		Msg("Starting browser")

	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		return fmt.Errorf("browser exited: %w", err)
	}
	return nil
}
