package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"eventdesk/internal/nav"
	"eventdesk/internal/view"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			a, err := newApp()
			if err != nil {
				return err
			}
			format, err := a.format()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout(a.cfg))
			defer cancel()

			if err := a.nav.Go(ctx, view.RouteEventDetail, nav.Params{"id": id}); err != nil {
				return err
			}

			v := view.NewDetailView(id, a.store, a.store, a.client, a.nav)
			v.Load(ctx)

			if format == FormatJSON {
				evt := v.Event()
				if evt == nil {
					return fmt.Errorf("fetching event %s failed", id)
				}
				return WriteEvent(cmd.OutOrStdout(), evt, format)
			}

			v.Render(cmd.OutOrStdout())
			if v.Event() == nil {
				return fmt.Errorf("fetching event %s failed", id)
			}
			return nil
		},
	}
}
