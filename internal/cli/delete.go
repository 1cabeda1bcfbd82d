package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"eventdesk/internal/nav"
	"eventdesk/internal/view"
)

func newDeleteCmd() *cobra.Command {
	var flagYes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an event",
		Long: `Delete an event after a confirmation step. Deleting is a two-step
flow: the first step only opens the confirmation, the second issues the
request. Pass --yes to confirm immediately.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			a, err := newApp()
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

			out := cmd.OutOrStdout()
			if v.Event() == nil {
				v.Render(out)
				return fmt.Errorf("fetching event %s failed", id)
			}

			if err := v.StartDelete(); err != nil {
				return err
			}
			v.Render(out)

			if !flagYes {
				fmt.Fprint(out, "\nConfirm? [y/N]: ")
				reader := bufio.NewReader(cmd.InOrStdin())
				answer, _ := reader.ReadString('\n')
				if !strings.EqualFold(strings.TrimSpace(answer), "y") {
					v.CancelDelete()
					fmt.Fprintln(out, "Cancelled.")
					return nil
				}
			}

			if err := v.ConfirmDelete(ctx); err != nil {
				v.Render(out)
				return fmt.Errorf("deleting event %s failed", id)
			}

			v.Render(out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&flagYes, "yes", false, "Confirm the deletion without prompting")

	return cmd
}
