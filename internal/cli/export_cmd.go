package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/momentumhq/momentum/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(a *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export ID",
		Short: "Write the progress workbook (xlsx) for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, a, args[0])
			if err != nil {
				return err
			}
			data, err := a.progressUseCase().ExportData(ctx, projectID)
			if err != nil {
				return err
			}
			if out == "" {
				out = filepath.Join(a.ExportDir, defaultExportName(data.Project.DisplayID(), time.Now()))
			}
			if err := export.WriteFile(out, data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rows to %s\n", len(data.Rows), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default <job>-progress-<date>.xlsx in the export directory)")

	return cmd
}

func defaultExportName(displayID string, now time.Time) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '_'
		}
		return r
	}, displayID)
	return fmt.Sprintf("%s-progress-%s.xlsx", name, now.Format("2006-01-02"))
}
