package cli

import (
	"fmt"

	"github.com/momentumhq/momentum/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newBrowseCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse ID",
		Short: "List every activity with its completed quantity and earned hours",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, a, args[0])
			if err != nil {
				return err
			}
			view, err := a.progressUseCase().Browse(ctx, projectID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBrowse(view))
			return nil
		},
	}
}

func newWeeklyCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "weekly ID",
		Short: "Show completed work by week ending Saturday",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, a, args[0])
			if err != nil {
				return err
			}
			view, err := a.progressUseCase().WeeklyBreakdown(ctx, projectID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWeekly(view))
			return nil
		},
	}
}
