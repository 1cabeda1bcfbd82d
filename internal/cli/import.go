package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"eventdesk/internal/cache"
	"eventdesk/internal/event"
	"eventdesk/internal/importer"
	"eventdesk/internal/logger"
)

func newImportCmd() *cobra.Command {
	var flagDryRun bool

	cmd := &cobra.Command{
		Use:   "import <file-or-url>",
		Short: "Import events from an HTML listing",
		Long: `Import events from an HTML page, either a local file or an http(s)
URL. Parsed entries that fail validation are skipped and reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := args[0]

			a, err := newApp()
			if err != nil {
				return err
			}

			fieldsList, err := loadListing(source)
			if err != nil {
				return fmt.Errorf("reading listing %s: %w", source, err)
			}
			if len(fieldsList) == 0 {
				return fmt.Errorf("no events found in %s", source)
			}

			out := cmd.OutOrStdout()
			created := 0
			skipped := 0
			for _, fields := range fieldsList {
				if err := fields.Validate(); err != nil {
					skipped++
					fmt.Fprintf(out, "skipping %q: %v\n", fields["title"], err)
					continue
				}
				if flagDryRun {
					fmt.Fprintf(out, "would create %q on %s\n", fields["title"], fields["date"])
					created++
					continue
				}
				if _, err := a.client.CreateEvent(fields); err != nil {
					skipped++
					logger.Warn("import create failed", logger.Fields{"title": fields["title"], "error": err.Error()})
					fmt.Fprintf(out, "skipping %q: %v\n", fields["title"], err)
					continue
				}
				created++
			}

			if created > 0 && !flagDryRun {
				a.store.Invalidate(cache.KindEvents)
			}

			fmt.Fprintf(out, "Imported %d event(s), skipped %d.\n", created, skipped)
			return nil
		},
	}

	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Parse and validate without creating events")

	return cmd
}

func loadListing(source string) ([]event.Fields, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return importer.New().FetchListing(source)
	}
	f, err := os.Open(source)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return importer.Parse(f)
}
