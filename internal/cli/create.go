package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"eventdesk/internal/event"
	"eventdesk/internal/nav"
	"eventdesk/internal/view"
)

func newCreateCmd() *cobra.Command {
	var title, description, date, timeOfDay, location, image string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new event",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			fields := event.Fields{
				"title":       title,
				"description": description,
				"date":        date,
				"time":        timeOfDay,
				"location":    location,
				"image":       image,
			}
			if err := fields.Validate(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout(a.cfg))
			defer cancel()

			// Creation goes through the submission pipeline: the route
			// action performs the mutation, invalidates and redirects.
			if err := a.nav.Go(ctx, view.RouteEventNew, nav.Params{}); err != nil {
				return err
			}
			if err := a.nav.Submit(ctx, fields, nav.MethodPost); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Event created.")
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
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("date")

	return cmd
}
