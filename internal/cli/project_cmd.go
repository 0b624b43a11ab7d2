package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/momentumhq/momentum/internal/cli/formatter"
	"github.com/momentumhq/momentum/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectCreateCmd(a),
		newProjectListCmd(a),
		newProjectShowCmd(a),
		newProjectUpdateCmd(a),
		newProjectDeleteCmd(a),
	)

	return cmd
}

func newProjectCreateCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create PROPOSAL",
		Short: "Start tracking an imported estimate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			proposalID, err := resolveProposalID(ctx, a, args[0])
			if err != nil {
				return err
			}
			p, err := a.Projects.CreateFromProposal(ctx, proposalID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%s]\n", p.Name, p.ID)
			return nil
		},
	}
}

func newProjectListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects with overall progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries, err := a.listProjectsUseCase().ListSummaries(cmd.Context())
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjectList(summaries))
			return nil
		},
	}
}

func newProjectShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show the WBS and phase roll-up of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, a, args[0])
			if err != nil {
				return err
			}
			view, err := a.progressUseCase().ProjectWBS(ctx, projectID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjectWBS(view))
			return nil
		},
	}
}

func newProjectUpdateCmd(a *App) *cobra.Command {
	var name, job, owner, location, status, start, end string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update project details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, a, args[0])
			if err != nil {
				return err
			}

			var patch domain.ProjectPatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("job") {
				patch.JobNumber = &job
			}
			if flags.Changed("owner") {
				patch.Owner = &owner
			}
			if flags.Changed("location") {
				patch.Location = &location
			}
			if flags.Changed("status") {
				s := domain.ProjectStatus(status)
				patch.Status = &s
			}
			if flags.Changed("start") {
				d, err := parseDate(start)
				if err != nil {
					return err
				}
				patch.StartDate = &d
			}
			if flags.Changed("end") {
				d, err := parseDate(end)
				if err != nil {
					return err
				}
				patch.EndDate = &d
			}

			if err := a.Projects.Update(ctx, projectID, patch); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s\n", projectID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&job, "job", "", "Job number")
	cmd.Flags().StringVar(&owner, "owner", "", "Owner")
	cmd.Flags().StringVar(&location, "location", "", "Location")
	cmd.Flags().StringVar(&status, "status", "", "Status (active|on-hold|completed|archived)")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")

	return cmd
}

func newProjectDeleteCmd(a *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a project with its entries and phase overrides",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, a, args[0])
			if err != nil {
				return err
			}
			p, err := a.Projects.GetByID(ctx, projectID)
			if err != nil {
				return err
			}

			if !yes {
				if !a.interactive() {
					return fmt.Errorf("refusing to delete %q without --yes", p.Name)
				}
				confirmed, err := confirm(fmt.Sprintf("Delete %s and all of its entries?", p.Name))
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := a.Projects.Delete(ctx, projectID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", p.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

func confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(momentumHuhTheme()).WithShowHelp(false).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
	}
	return d, nil
}
