package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sebastiantruijens/vincent/api"
	"github.com/sebastiantruijens/vincent/config"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *api.Client
	logFile *os.File

	version   = "dev"
	buildTime = "unknown"

	// Command flags
	baseURL string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "vincent",
	Short: "Browse a movie catalog from the terminal",
	Long: `vincent is a terminal client for a movie catalog API. Without a
subcommand it opens the interactive browser with the popular, top rated,
now playing, upcoming, discover and search sections. The list, search,
show and genres subcommands print the same data for scripts.`,
	Args:               cobra.NoArgs,
	PersistentPostRunE: closeLog,
	RunE:               runBrowse,
	SilenceUsage:       true,
}

// SetVersion records build information shown by --version.
func SetVersion(v, built string) {
	version, buildTime = v, built
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	// Assigned here rather than in the literal to avoid an initialization
	// cycle: initializeApp -> ownsTerminal -> rootCmd.
	rootCmd.PersistentPreRunE = initializeApp

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "catalog API base URL (overrides api.base_url)")

	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(genresCmd)
}

// initializeApp initializes the configuration, logger and API client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("base-url") {
		cfg.API.BaseURL = baseURL
	}

	// The interactive browser owns the terminal, so it logs to a file.
	var out io.Writer = os.Stderr
	color := cfg.Logging.Color && isatty.IsTerminal(os.Stderr.Fd())
	if ownsTerminal(cmd) {
		logFile, err = openLogFile(cfg.Logging.File)
		if err != nil {
			return err
		}
		out, color = logFile, false
	}
	logger = setupLogger(cfg.Logging, out, color)

	client, err = api.NewClient(cfg.API.BaseURL, logger,
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetries(cfg.API.Retries),
		api.WithRecommendations(cfg.API.Recommendations),
		api.WithUserAgent("vincent/"+version),
	)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	logger.Debug().
		Str("base_url", client.BaseURL()).
		Str("version", version).
		Msg("Initialized")
	return nil
}

func closeLog(cmd *cobra.Command, args []string) error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

func ownsTerminal(cmd *cobra.Command) bool {
	return cmd == rootCmd || cmd == browseCmd
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, out io.Writer, color bool) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(out).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !color,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
