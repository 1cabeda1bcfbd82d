package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"eventdesk/internal/api"
	"eventdesk/internal/cache"
	"eventdesk/internal/config"
	"eventdesk/internal/logger"
	"eventdesk/internal/nav"
	"eventdesk/internal/view"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig  string
	flagBaseURL string
	flagFormat  string
	flagVerbose bool
)

// app bundles the wired client stack a command runs against.
type app struct {
	cfg    *config.Config
	client *api.Client
	store  *cache.Store
	nav    *nav.Navigator
}

// newApp loads config, applies flag overrides and wires the stack:
// one cache, one store, one navigator with the event routes registered.
func newApp() (*app, error) {
	path := flagConfig
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if flagBaseURL != "" {
		cfg.BaseURL = flagBaseURL
	}
	if flagFormat != "" {
		cfg.Format = flagFormat
	}
	cfg.Normalize()

	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	client := api.NewClient(cfg.BaseURL, cfg.Timeout())
	store := cache.NewStore(cache.NewWithTTL(cfg.CacheTTL()), client)
	navigator := nav.New()
	view.RegisterRoutes(navigator, store, client)

	return &app{
		cfg:    cfg,
		client: client,
		store:  store,
		nav:    navigator,
	}, nil
}

func (a *app) format() (OutputFormat, error) {
	format := OutputFormat(a.cfg.Format)
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", a.cfg.Format)
	}
	return format, nil
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eventdesk",
		Short: "Manage events against an eventdesk backend",
		Long: `A CLI client for an eventdesk backend.
List, show, create, edit and delete events; import listings from HTML
pages and export single events as iCalendar files.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default ~/.config/eventdesk/config.yaml)")
	cmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Backend base URL (overrides config)")
	cmd.PersistentFlags().StringVar(&flagFormat, "format", "", "Output format: text or json")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(
		newListCmd(),
		newShowCmd(),
		newCreateCmd(),
		newEditCmd(),
		newDeleteCmd(),
		newImportCmd(),
		newExportCmd(),
	)

	return cmd
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}

// eventFieldFlags registers the shared event field flags on a command.
func eventFieldFlags(cmd *cobra.Command, fields map[string]*string) {
	cmd.Flags().StringVar(fields["title"], "title", "", "Event title")
	cmd.Flags().StringVar(fields["description"], "description", "", "Event description")
	cmd.Flags().StringVar(fields["date"], "date", "", "Event date (YYYY-MM-DD)")
	cmd.Flags().StringVar(fields["time"], "time", "", "Event time (HH:MM)")
	cmd.Flags().StringVar(fields["location"], "location", "", "Event location")
	cmd.Flags().StringVar(fields["image"], "image", "", "Event image URL")
}

// commandTimeout bounds a single command's reads. Writes are not
// cancellable once issued; this covers loaders and cached reads.
func commandTimeout(cfg *config.Config) time.Duration {
	return cfg.Timeout() + 5*time.Second
}
