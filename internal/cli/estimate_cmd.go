package cli

import (
	"fmt"

	"github.com/momentumhq/momentum/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newEstimateCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Import and list estimates",
	}
	cmd.AddCommand(newEstimateImportCmd(a), newEstimateListCmd(a))
	return cmd
}

func newEstimateImportCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import an estimate from a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.importEstimateUseCase().ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImportResult(res))
			return nil
		},
	}
}

func newEstimateListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List imported estimates",
		RunE: func(cmd *cobra.Command, args []string) error {
			listings, err := a.Estimates.ListProposals(cmd.Context())
			if err != nil {
				return err
			}
			if len(listings) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No estimates imported.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProposalList(listings))
			return nil
		},
	}
}
