package cli

import (
	"github.com/momentumhq/momentum/internal/app"
	"github.com/momentumhq/momentum/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects  service.ProjectService
	Estimates service.EstimateService
	Ledger    service.LedgerService
	Phases    service.PhaseOverrideService
	Progress  service.ProgressService

	// Use-case ports. Commands fall back to the services above when unset.
	ListProjects   app.ListProjectsUseCase
	ProgressViews  app.ProgressUseCase
	SaveEntries    app.SaveEntriesUseCase
	PhaseReassign  app.PhaseReassignUseCase
	ImportEstimate app.ImportEstimateUseCase

	// EnteredBy is recorded on every saved entry unless --user overrides it.
	EnteredBy string
	// ExportDir is where workbooks go when --out is not given.
	ExportDir string

	// IsInteractive reports whether prompts may be shown. Nil means never.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "momentum" command and registers all
// subcommands against the provided App.
func NewRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "momentum",
		Short:         "Construction progress tracking against estimated man-hours",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newEstimateCmd(a),
		newProjectCmd(a),
		newBrowseCmd(a),
		newEntryCmd(a),
		newWeeklyCmd(a),
		newPhaseCmd(a),
		newExportCmd(a),
	)

	return root
}
