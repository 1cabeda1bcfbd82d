package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"eventdesk/internal/event"
	"eventdesk/internal/filter"
	"eventdesk/internal/nav"
	"eventdesk/internal/view"
)

func newListCmd() *cobra.Command {
	var (
		flagSort   string
		flagFilter string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			format, err := a.format()
			if err != nil {
				return err
			}

			order := SortOrder(flagSort)
			if order != SortByDate && order != SortByTitle {
				return fmt.Errorf("invalid sort order: %s (must be 'date' or 'title')", flagSort)
			}

			f, err := filter.Parse(flagFilter)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout(a.cfg))
			defer cancel()

			// The route loader fetches the collection before anything renders
			if err := a.nav.Go(ctx, view.RouteEvents, nav.Params{}); err != nil {
				return err
			}
			data, loadErr := a.nav.LoaderData()
			if loadErr != nil {
				return fmt.Errorf("fetching events: %w", loadErr)
			}

			events := f.Apply(data.([]*event.Event))
			sortEvents(events, order)

			result := &ListResult{
				FetchedAt:  time.Now().UTC(),
				Events:     events,
				EventCount: len(events),
				Filtered:   !f.IsEmpty(),
			}
			return WriteList(cmd.OutOrStdout(), result, format, flagVerbose)
		},
	}

	cmd.Flags().StringVar(&flagSort, "sort", "date", "Sort order: date or title")
	cmd.Flags().StringVar(&flagFilter, "filter", "", "Filter expression, e.g. 'after:2024-05-01 title:party upcoming'")

	return cmd
}
