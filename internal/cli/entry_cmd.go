package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/momentumhq/momentum/internal/app"
	"github.com/momentumhq/momentum/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newEntryCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Record and review daily completed quantities",
	}
	cmd.AddCommand(newEntryLogCmd(a), newEntryShowCmd(a), newEntryHistoryCmd(a))
	return cmd
}

func newEntryLogCmd(a *App) *cobra.Command {
	var date, user string
	var specs []string

	cmd := &cobra.Command{
		Use:   "log ID",
		Short: "Record quantities completed on a date",
		Long: `Record quantities completed on a date.

Each --qty is ACTIVITY=QUANTITY with an optional :NOTE suffix. A quantity of
zero clears what was recorded for that activity on that date. Without --qty
an interactive form is shown.`,
		Example: `  momentum entry log J-2291 --date 2025-03-03 --qty 3f2a=12.5 --qty 91bc=4:north rack`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, a, args[0])
			if err != nil {
				return err
			}
			day, err := dateOrToday(date)
			if err != nil {
				return err
			}
			view, err := a.progressUseCase().Browse(ctx, projectID)
			if err != nil {
				return err
			}

			var inputs []app.EntryInput
			switch {
			case len(specs) > 0:
				if inputs, err = parseQtySpecs(view, specs); err != nil {
					return err
				}
			case a.interactive():
				if len(view.Rows) == 0 {
					return fmt.Errorf("project has no activities to record against")
				}
				existing, err := a.Ledger.EntriesForDate(ctx, projectID, day)
				if err != nil {
					return err
				}
				form, fields := newEntryForm(day.Format("2006-01-02"), view.Rows, existing)
				if err := form.Run(); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
						return nil
					}
					return err
				}
				if inputs, err = changedInputs(fields); err != nil {
					return err
				}
				if len(inputs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing changed.")
					return nil
				}
			default:
				return fmt.Errorf("no quantities given (use --qty ACTIVITY=QTY)")
			}

			if user == "" {
				user = a.EnteredBy
			}
			res, err := a.saveEntriesUseCase().SaveEntries(ctx, projectID, day, user, inputs)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSaveResult(res))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Entry date (YYYY-MM-DD, default today)")
	cmd.Flags().StringArrayVar(&specs, "qty", nil, "ACTIVITY=QUANTITY[:NOTE] (repeatable)")
	cmd.Flags().StringVar(&user, "user", "", "Name recorded on the entries")

	return cmd
}

func newEntryShowCmd(a *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show what was recorded on a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, a, args[0])
			if err != nil {
				return err
			}
			day, err := dateOrToday(date)
			if err != nil {
				return err
			}
			entries, err := a.Ledger.EntriesForDate(ctx, projectID, day)
			if err != nil {
				return err
			}
			view, err := a.progressUseCase().Browse(ctx, projectID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDayEntries(day.Format("2006-01-02"), view.Rows, entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Entry date (YYYY-MM-DD, default today)")

	return cmd
}

func newEntryHistoryCmd(a *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history ID",
		Short: "Show recent entries grouped by date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, a, args[0])
			if err != nil {
				return err
			}
			view, err := a.Ledger.History(ctx, projectID, limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(view))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum entries to show (default from config)")

	return cmd
}

// parseQtySpecs parses ACTIVITY=QUANTITY[:NOTE] arguments. Activities are
// resolved by ID or unique prefix within the project.
func parseQtySpecs(view *app.BrowseView, specs []string) ([]app.EntryInput, error) {
	inputs := make([]app.EntryInput, 0, len(specs))
	for _, spec := range specs {
		ref, rest, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --qty %q (expected ACTIVITY=QUANTITY[:NOTE])", spec)
		}
		qtyStr, note, _ := strings.Cut(rest, ":")
		id, err := resolveActivityID(view, strings.TrimSpace(ref))
		if err != nil {
			return nil, err
		}
		q, err := parseQuantity(qtyStr)
		if err != nil {
			return nil, fmt.Errorf("--qty %q: %w", spec, err)
		}
		inputs = append(inputs, app.EntryInput{ActivityID: id, Quantity: q, Notes: strings.TrimSpace(note)})
	}
	return inputs, nil
}

func dateOrToday(s string) (time.Time, error) {
	if s == "" {
		return parseDate(time.Now().Format("2006-01-02"))
	}
	return parseDate(s)
}
