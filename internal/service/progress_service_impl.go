package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/momentumhq/momentum/internal/app"
	"github.com/momentumhq/momentum/internal/domain"
	"github.com/momentumhq/momentum/internal/repository"
	"github.com/momentumhq/momentum/internal/rollup"
)

type progressService struct {
	loader  snapshotLoader
	entries repository.EntryRepo
}

func NewProgressService(
	projects repository.ProjectRepo,
	estimates repository.EstimateRepo,
	entries repository.EntryRepo,
	overrides repository.OverrideRepo,
) ProgressService {
	return &progressService{
		loader:  snapshotLoader{projects: projects, estimates: estimates, entries: entries, overrides: overrides},
		entries: entries,
	}
}

func (s *progressService) ProjectWBS(ctx context.Context, projectID string) (*app.ProjectWBSView, error) {
	snap, err := s.loader.load(ctx, projectID)
	if err != nil {
		return nil, err
	}

	view := &app.ProjectWBSView{
		Project: snap.project,
		Totals:  projectLevel(snap.project, snap.tree.Metrics),
	}
	for _, w := range snap.tree.WBS {
		ws := app.WBSSummary{LevelSummary: wbsLevel(w)}
		for _, ph := range w.Phases {
			ws.Phases = append(ws.Phases, phaseSummary(ph))
		}
		view.WBS = append(view.WBS, ws)
	}
	return view, nil
}

func (s *progressService) Browse(ctx context.Context, projectID string) (*app.BrowseView, error) {
	snap, err := s.loader.load(ctx, projectID)
	if err != nil {
		return nil, err
	}

	phaseCodes := make(map[string]string, len(snap.estimate.Phases))
	for _, ph := range snap.estimate.Phases {
		phaseCodes[ph.ID] = ph.Code
	}

	view := &app.BrowseView{
		Project:      snap.project,
		Totals:       projectLevel(snap.project, snap.tree.Metrics),
		PhaseOptions: make(map[string][]app.PhaseOption, len(snap.tree.WBS)),
	}
	for _, w := range snap.tree.WBS {
		view.WBS = append(view.WBS, wbsLevel(w))
		for _, ph := range w.Phases {
			view.Phases = append(view.Phases, phaseSummary(ph))
			view.PhaseOptions[w.WBS.ID] = append(view.PhaseOptions[w.WBS.ID], app.PhaseOption{
				ID:          ph.Phase.ID,
				Code:        ph.Phase.Code,
				Description: ph.Phase.Description,
			})
			for _, n := range ph.Activities {
				view.Rows = append(view.Rows, browseRow(n, ph.Phase, w.WBS, phaseCodes))
			}
		}
	}
	return view, nil
}

func browseRow(n *rollup.ActivityNode, ph *domain.Phase, w *domain.WBSItem, phaseCodes map[string]string) app.BrowseRow {
	a := n.Activity
	row := app.BrowseRow{
		ActivityID:      a.ID,
		Description:     a.Description,
		Type:            a.Type,
		Unit:            a.Unit,
		Quantity:        a.Quantity,
		CompletedQty:    n.CompletedQty,
		RemainingQty:    max(0, a.Quantity-n.CompletedQty),
		TotalMH:         n.Metrics.TotalMH,
		EarnedMH:        n.Metrics.EarnedMH,
		PercentComplete: rollup.PercentComplete(n.CompletedQty, a.Quantity),
		LaborBearing:    a.IsLaborBearing(),
		PhaseID:         ph.ID,
		PhaseCode:       ph.Code,
		WBSID:           w.ID,
		WBSCode:         w.Code,
		IsOverridden:    n.Overridden,
	}
	if n.Overridden {
		row.OriginalPhaseID = n.OriginalPhaseID
		row.OriginalPhaseCode = phaseCodes[n.OriginalPhaseID]
	}
	return row
}

// WeeklyBreakdown buckets every entry into its week ending Saturday. Entries
// of activities no longer in the estimate are ignored.
func (s *progressService) WeeklyBreakdown(ctx context.Context, projectID string) (*app.WeeklyView, error) {
	snap, err := s.loader.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	entries, err := s.entries.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}

	view := &app.WeeklyView{Project: snap.project, TotalMH: snap.tree.Metrics.TotalMH}
	totals := make(map[string]*app.WeekTotal)
	perActivity := make(map[string]*app.ActivityWeek)

	for _, e := range entries {
		n, ok := placedActivity(snap.tree, e.ActivityID)
		if !ok {
			continue
		}
		week := rollup.WeekKey(e.EntryDate)

		wt, ok := totals[week]
		if !ok {
			wt = &app.WeekTotal{WeekEnding: week}
			totals[week] = wt
		}
		wt.EntryCount++
		wt.EarnedMH += n.Activity.EarnedMH(e.Quantity)

		aw, ok := perActivity[e.ActivityID]
		if !ok {
			aw = &app.ActivityWeek{
				ActivityID:  n.Activity.ID,
				Description: n.Activity.Description,
				Unit:        n.Activity.Unit,
				Weeks:       make(map[string]float64),
			}
			perActivity[e.ActivityID] = aw
		}
		aw.Weeks[week] += e.Quantity
		aw.Total += e.Quantity
	}

	view.WeekEndings = sortedKeys(totals)
	var cumulative float64
	for _, week := range view.WeekEndings {
		wt := totals[week]
		cumulative += wt.EarnedMH
		wt.CumulativeMH = cumulative
		wt.PercentComplete = rollup.PercentComplete(cumulative, view.TotalMH)
		view.Totals = append(view.Totals, *wt)
	}

	for _, w := range snap.tree.WBS {
		for _, ph := range w.Phases {
			for _, n := range ph.Activities {
				aw, ok := perActivity[n.Activity.ID]
				if !ok {
					continue
				}
				aw.PhaseCode = ph.Phase.Code
				aw.WBSCode = w.WBS.Code
				view.Activities = append(view.Activities, *aw)
			}
		}
	}
	return view, nil
}

// ExportData lays the project out as WBS, phase and detail rows with weekly
// and daily columns for the workbook writer.
func (s *progressService) ExportData(ctx context.Context, projectID string) (*app.ExportData, error) {
	snap, err := s.loader.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	entries, err := s.entries.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}

	weekly := make(map[string]map[string]float64) // activity -> week -> qty
	daily := make(map[string]map[string]float64)  // activity -> date -> qty
	weeks := make(map[string]struct{})
	dates := make(map[string]struct{})
	for _, e := range entries {
		if _, ok := placedActivity(snap.tree, e.ActivityID); !ok {
			continue
		}
		week := rollup.WeekKey(e.EntryDate)
		date := e.EntryDate.Format(rollup.DateLayout)
		addTo(weekly, e.ActivityID, week, e.Quantity)
		addTo(daily, e.ActivityID, date, e.Quantity)
		weeks[week] = struct{}{}
		dates[date] = struct{}{}
	}

	data := &app.ExportData{
		Project:     snap.project,
		WeekEndings: sortedKeys(weeks),
		Dates:       sortedKeys(dates),
		Totals:      projectLevel(snap.project, snap.tree.Metrics),
	}

	for _, w := range snap.tree.WBS {
		wbsRow := levelRow(app.ExportRowWBS, w.WBS.Code, w.WBS.Name, w.Metrics)
		data.Rows = append(data.Rows, wbsRow)
		wbsIdx := len(data.Rows) - 1

		for _, ph := range w.Phases {
			phRow := levelRow(app.ExportRowPhase, ph.Phase.Code, ph.Phase.Description, ph.Metrics)
			phRow.Size, phRow.Spec, phRow.Insulation, phRow.Sheet = ph.Phase.Size, ph.Phase.Spec, ph.Phase.Insulation, ph.Phase.Sheet
			data.Rows = append(data.Rows, phRow)
			phIdx := len(data.Rows) - 1

			for _, n := range ph.Activities {
				a := n.Activity
				detail := app.ExportRow{
					Kind:            app.ExportRowDetail,
					Description:     a.Description,
					Unit:            a.Unit,
					Quantity:        a.Quantity,
					CompletedQty:    n.CompletedQty,
					CraftMH:         n.Metrics.CraftMH,
					WeldMH:          n.Metrics.WeldMH,
					TotalMH:         n.Metrics.TotalMH,
					EarnedMH:        n.Metrics.EarnedMH,
					PercentComplete: rollup.PercentComplete(n.CompletedQty, a.Quantity),
					Weekly:          orEmpty(weekly[a.ID]),
					Daily:           orEmpty(daily[a.ID]),
				}
				data.Rows = append(data.Rows, detail)

				if !a.IsLaborBearing() {
					continue
				}
				for k, qty := range detail.Weekly {
					data.Rows[phIdx].Weekly[k] += a.EarnedMH(qty)
					data.Rows[wbsIdx].Weekly[k] += a.EarnedMH(qty)
				}
				for k, qty := range detail.Daily {
					data.Rows[phIdx].Daily[k] += a.EarnedMH(qty)
					data.Rows[wbsIdx].Daily[k] += a.EarnedMH(qty)
				}
			}
		}
	}
	return data, nil
}

// placedActivity finds an activity that sits under a known phase.
func placedActivity(t *rollup.Tree, activityID string) (*rollup.ActivityNode, bool) {
	n, ok := t.Activity(activityID)
	if !ok {
		return nil, false
	}
	_, placed := t.Phase(n.PhaseID)
	return n, placed
}

func levelRow(kind app.ExportRowKind, code, description string, m rollup.Metrics) app.ExportRow {
	return app.ExportRow{
		Kind:            kind,
		Code:            code,
		Description:     description,
		CraftMH:         m.CraftMH,
		WeldMH:          m.WeldMH,
		TotalMH:         m.TotalMH,
		EarnedMH:        m.EarnedMH,
		PercentComplete: m.Percent(),
		Weekly:          make(map[string]float64),
		Daily:           make(map[string]float64),
	}
}

func addTo(m map[string]map[string]float64, outer, inner string, v float64) {
	if m[outer] == nil {
		m[outer] = make(map[string]float64)
	}
	m[outer][inner] += v
}

func orEmpty(m map[string]float64) map[string]float64 {
	if m == nil {
		return map[string]float64{}
	}
	return m
}

// sortedKeys returns map keys in ascending order. Date keys are YYYY-MM-DD so
// lexical order is chronological.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
