package cli

import (
	"fmt"

	"github.com/momentumhq/momentum/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPhaseCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Move activities between phases of the same WBS item",
	}
	cmd.AddCommand(newPhaseOptionsCmd(a), newPhaseReassignCmd(a), newPhaseRevertCmd(a))
	return cmd
}

func newPhaseOptionsCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "options ID ACTIVITY",
		Short: "List the phases an activity can move to",
		Args:  cobra.ExactArgs(2),
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
			activityID, err := resolveActivityID(view, args[1])
			if err != nil {
				return err
			}
			row := rowByID(view, activityID)

			rows := [][]string{}
			for _, opt := range view.PhaseOptions[row.WBSID] {
				marker := ""
				switch opt.ID {
				case row.PhaseID:
					marker = formatter.StyleGreen.Render("current")
				case row.OriginalPhaseID:
					marker = formatter.StylePurple.Render("original")
				}
				rows = append(rows, []string{formatter.TruncID(opt.ID), opt.Code, opt.Description, marker})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.Bold(row.Description), formatter.Dim(row.WBSCode+"/"+row.PhaseCode))
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"ID", "CODE", "DESCRIPTION", ""}, rows))
			return nil
		},
	}
}

func newPhaseReassignCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reassign ID ACTIVITY PHASE",
		Short: "Move an activity and its recorded entries to another phase",
		Long: `Move an activity and its recorded entries to another phase.

PHASE may be a phase code, WBS/PHASE, or a phase ID prefix. The target must
belong to the activity's WBS item. Reassigning to the original phase reverts.`,
		Args: cobra.ExactArgs(3),
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
			activityID, err := resolveActivityID(view, args[1])
			if err != nil {
				return err
			}
			phaseID, err := resolvePhaseID(view, args[2])
			if err != nil {
				return err
			}
			if err := a.phaseReassignUseCase().Reassign(ctx, projectID, activityID, phaseID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reassigned %s to %s\n", rowByID(view, activityID).Description, args[2])
			return nil
		},
	}
}

func newPhaseRevertCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "revert ID ACTIVITY",
		Short: "Return an activity to its original phase",
		Args:  cobra.ExactArgs(2),
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
			activityID, err := resolveActivityID(view, args[1])
			if err != nil {
				return err
			}
			if err := a.phaseReassignUseCase().Revert(ctx, projectID, activityID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reverted %s\n", rowByID(view, activityID).Description)
			return nil
		},
	}
}
