package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"eventdesk/internal/calendar"
)

func newExportCmd() *cobra.Command {
	var flagOutput string

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export an event as an iCalendar file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			a, err := newApp()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout(a.cfg))
			defer cancel()

			evt, err := a.store.GetEvent(ctx, id)
			if err != nil {
				return fmt.Errorf("fetching event %s: %w", id, err)
			}

			ics, err := calendar.GenerateICS(evt)
			if err != nil {
				return fmt.Errorf("generating calendar for event %s: %w", id, err)
			}

			if flagOutput == "" {
				fmt.Fprint(cmd.OutOrStdout(), ics)
				return nil
			}
			if err := os.WriteFile(flagOutput, []byte(ics), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", flagOutput, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", flagOutput)
			return nil
		},
	}

	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Write the calendar to a file instead of stdout")

	return cmd
}
