package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

func (a *app) saveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save REVIEW_ID",
		Short: "Save a review, or unsave it if already saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := a.currentUserID(ctx)
			if err != nil {
				return err
			}

			saved, err := a.client(ctx).ToggleSaved(ctx, userID, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if slices.Contains(saved, args[0]) {
				fmt.Fprintf(out, "Saved %s (%d saved).\n", args[0], len(saved))
			} else {
				fmt.Fprintf(out, "Removed %s (%d saved).\n", args[0], len(saved))
			}
			return nil
		},
	}
}

func (a *app) savedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "saved",
		Short: "List your saved review IDs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := a.currentUserID(ctx)
			if err != nil {
				return err
			}

			saved, err := a.client(ctx).Saved(ctx, userID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(saved) == 0 {
				fmt.Fprintln(out, "Nothing saved yet.")
				return nil
			}
			for _, id := range saved {
				fmt.Fprintln(out, id)
			}
			return nil
		},
	}
}
