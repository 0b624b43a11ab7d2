package rollup

import (
	"sort"

	"github.com/momentumhq/momentum/internal/domain"
)

// ActivityNode is one activity with its completed quantity and leaf metrics.
// Non-labor-bearing activities have zero metrics and are not folded upward.
type ActivityNode struct {
	Activity        *domain.Activity
	CompletedQty    float64
	Metrics         Metrics
	PhaseID         string
	WBSID           string
	Overridden      bool
	OriginalPhaseID string
}

type PhaseNode struct {
	Phase      *domain.Phase
	Metrics    Metrics
	Activities []*ActivityNode
}

type WBSNode struct {
	WBS     *domain.WBSItem
	Metrics Metrics
	Phases  []*PhaseNode
}

// Tree is the full roll-up of one project: Activity -> Phase -> WBS -> Project.
type Tree struct {
	Metrics    Metrics
	WBS        []*WBSNode
	activities map[string]*ActivityNode
	phases     map[string]*PhaseNode
}

// Activity returns the node for any activity in the estimate, labor-bearing or not.
func (t *Tree) Activity(id string) (*ActivityNode, bool) {
	n, ok := t.activities[id]
	return n, ok
}

// Phase returns the node for a phase id.
func (t *Tree) Phase(id string) (*PhaseNode, bool) {
	n, ok := t.phases[id]
	return n, ok
}

// Build folds the estimate and completed quantities (activity id -> summed
// quantity) into a Tree in a single traversal. Activities are grouped by
// effective phase, phases by their WBS. Every WBS item and phase of the
// estimate appears, even with zero hours, ordered by sort order.
func Build(est *domain.Estimate, completed map[string]float64, placement *Placement) *Tree {
	t := &Tree{
		activities: make(map[string]*ActivityNode, len(est.Activities)),
		phases:     make(map[string]*PhaseNode, len(est.Phases)),
	}

	wbsNodes := make(map[string]*WBSNode, len(est.WBS))
	for _, w := range sortedWBS(est.WBS) {
		node := &WBSNode{WBS: w}
		wbsNodes[w.ID] = node
		t.WBS = append(t.WBS, node)
	}
	for _, ph := range sortedPhases(est.Phases) {
		parent, ok := wbsNodes[ph.WBSID]
		if !ok {
			continue
		}
		node := &PhaseNode{Phase: ph}
		t.phases[ph.ID] = node
		parent.Phases = append(parent.Phases, node)
	}

	for _, a := range sortedActivities(est.Activities) {
		phaseID, wbsID, overridden := placement.Effective(a)
		node := &ActivityNode{
			Activity:     a,
			CompletedQty: completed[a.ID],
			PhaseID:      phaseID,
			WBSID:        wbsID,
			Overridden:   overridden,
		}
		if overridden {
			node.OriginalPhaseID = a.PhaseID
		}
		node.Metrics = ActivityMetrics(a, node.CompletedQty)
		t.activities[a.ID] = node

		phaseNode, ok := t.phases[phaseID]
		if !ok {
			continue
		}
		phaseNode.Activities = append(phaseNode.Activities, node)
		if !a.IsLaborBearing() {
			continue
		}
		phaseNode.Metrics.Add(node.Metrics)
		wbsNodes[phaseNode.Phase.WBSID].Metrics.Add(node.Metrics)
		t.Metrics.Add(node.Metrics)
	}

	return t
}

func sortedWBS(items []*domain.WBSItem) []*domain.WBSItem {
	out := append([]*domain.WBSItem(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Code < out[j].Code
	})
	return out
}

func sortedPhases(items []*domain.Phase) []*domain.Phase {
	out := append([]*domain.Phase(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Code < out[j].Code
	})
	return out
}

func sortedActivities(items []*domain.Activity) []*domain.Activity {
	out := append([]*domain.Activity(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortOrder < out[j].SortOrder
	})
	return out
}
