package cli

import "github.com/momentumhq/momentum/internal/app"

func (a *App) listProjectsUseCase() app.ListProjectsUseCase {
	if a.ListProjects != nil {
		return a.ListProjects
	}
	return a.Projects
}

func (a *App) progressUseCase() app.ProgressUseCase {
	if a.ProgressViews != nil {
		return a.ProgressViews
	}
	return a.Progress
}

func (a *App) saveEntriesUseCase() app.SaveEntriesUseCase {
	if a.SaveEntries != nil {
		return a.SaveEntries
	}
	return a.Ledger
}

func (a *App) phaseReassignUseCase() app.PhaseReassignUseCase {
	if a.PhaseReassign != nil {
		return a.PhaseReassign
	}
	return a.Phases
}

func (a *App) importEstimateUseCase() app.ImportEstimateUseCase {
	if a.ImportEstimate != nil {
		return a.ImportEstimate
	}
	return a.Estimates
}
