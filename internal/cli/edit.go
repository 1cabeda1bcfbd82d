package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"eventdesk/internal/nav"
	"eventdesk/internal/view"
)

func newEditCmd() *cobra.Command {
	var title, description, date, timeOfDay, location, image string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an event",
		Long: `Edit an event. The form is pre-populated from the current record;
only the fields passed as flags change. The update is submitted through
the navigation pipeline, which invalidates the cache and returns to the
event on success.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			a, err := newApp()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout(a.cfg))
			defer cancel()

			// The edit route loader pre-fetches the record, so the form
			// mounts with data already present or errored
			if err := a.nav.Go(ctx, view.RouteEventEdit, nav.Params{"id": id}); err != nil {
				return err
			}

			v := view.NewEditView(id, a.store, a.nav)
			v.Load(ctx)
			if _, loadErr := a.nav.LoaderData(); loadErr != nil {
				v.Render(cmd.OutOrStdout())
				return fmt.Errorf("fetching event %s failed", id)
			}

			changed := false
			for name, value := range map[string]string{
				"title":       title,
				"description": description,
				"date":        date,
				"time":        timeOfDay,
				"location":    location,
				"image":       image,
			} {
				if cmd.Flags().Changed(name) {
					v.SetField(name, value)
					changed = true
				}
			}
			if !changed {
				v.Render(cmd.OutOrStdout())
				return fmt.Errorf("no field flags given, nothing to save")
			}

			if err := v.Submit(ctx); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Event updated.")
			return nil
		},
	}

	eventFieldFlags(cmd, map[string]*string{
		"title":       &title,
		"description": &description,
		"date":        &date,
		"time":        &timeOfDay,
		"location":    &location,
		"image":       &image,
	})

	return cmd
}
