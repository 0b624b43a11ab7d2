package rollup

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/momentumhq/momentum/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEstimate() *domain.Estimate {
	return &domain.Estimate{
		Proposal: &domain.Proposal{ID: "prop"},
		WBS: []*domain.WBSItem{
			{ID: "w2", Code: "200", Name: "Piperack", SortOrder: 2},
			{ID: "w1", Code: "100", Name: "Tank Farm", SortOrder: 1},
		},
		Phases: []*domain.Phase{
			{ID: "p1", WBSID: "w1", Code: "100-01", SortOrder: 1},
			{ID: "p2", WBSID: "w1", Code: "100-02", SortOrder: 2},
			{ID: "p3", WBSID: "w2", Code: "200-01", SortOrder: 1},
		},
		Activities: []*domain.Activity{
			{ID: "a1", PhaseID: "p1", Type: domain.ActivityLabor, Quantity: 10, Labor: &domain.Labor{CraftConstant: 1, WelderConstant: 1}, SortOrder: 1},
			{ID: "a2", PhaseID: "p1", Type: domain.ActivityMaterial, Quantity: 50, Unit: "LF", SortOrder: 2},
			{ID: "a3", PhaseID: "p2", Type: domain.ActivityCustomLabor, Quantity: 4, Labor: &domain.Labor{CraftConstant: 2.5}, SortOrder: 3},
			{ID: "a4", PhaseID: "p3", Type: domain.ActivityLabor, Quantity: 8, Labor: &domain.Labor{CraftConstant: 0.5, WelderConstant: 0.25}, SortOrder: 4},
		},
	}
}

func TestBuild_RollsUpEachLevel(t *testing.T) {
	est := sampleEstimate()
	completed := map[string]float64{"a1": 5, "a2": 20, "a4": 8}

	tree := Build(est, completed, NewPlacement(est.Phases, nil))

	// a1: total 20, earned 10; a3: total 10, earned 0; a4: total 6, earned 6.
	assert.InDelta(t, 36.0, tree.Metrics.TotalMH, 1e-9)
	assert.InDelta(t, 16.0, tree.Metrics.EarnedMH, 1e-9)
	assert.InDelta(t, 10+10+4, tree.Metrics.CraftMH, 1e-9)
	assert.InDelta(t, 10+0+2, tree.Metrics.WeldMH, 1e-9)
	assert.Equal(t, 44, tree.Metrics.Percent())

	require.Len(t, tree.WBS, 2)
	assert.Equal(t, "w1", tree.WBS[0].WBS.ID, "WBS ordered by sort order")
	assert.InDelta(t, 30.0, tree.WBS[0].Metrics.TotalMH, 1e-9)
	assert.InDelta(t, 10.0, tree.WBS[0].Metrics.EarnedMH, 1e-9)
	assert.Equal(t, 33, tree.WBS[0].Metrics.Percent())
	assert.Equal(t, 100, tree.WBS[1].Metrics.Percent())

	p1, ok := tree.Phase("p1")
	require.True(t, ok)
	assert.InDelta(t, 20.0, p1.Metrics.TotalMH, 1e-9)
	assert.Len(t, p1.Activities, 2, "non-labor activities are still listed")
}

func TestBuild_NonLaborActivityIsTransparent(t *testing.T) {
	est := sampleEstimate()
	tree := Build(est, map[string]float64{"a2": 50}, NewPlacement(est.Phases, nil))

	node, ok := tree.Activity("a2")
	require.True(t, ok)
	assert.Equal(t, 50.0, node.CompletedQty)
	assert.Zero(t, node.Metrics.TotalMH)
	assert.Zero(t, node.Metrics.EarnedMH)
	assert.Zero(t, tree.Metrics.EarnedMH)
}

func TestBuild_PercentIsNotAnAverageOfChildren(t *testing.T) {
	est := &domain.Estimate{
		WBS:    []*domain.WBSItem{{ID: "w"}},
		Phases: []*domain.Phase{{ID: "big", WBSID: "w"}, {ID: "small", WBSID: "w"}},
		Activities: []*domain.Activity{
			{ID: "big-a", PhaseID: "big", Type: domain.ActivityLabor, Quantity: 100, Labor: &domain.Labor{CraftConstant: 1}},
			{ID: "small-a", PhaseID: "small", Type: domain.ActivityLabor, Quantity: 1, Labor: &domain.Labor{CraftConstant: 1}},
		},
	}
	tree := Build(est, map[string]float64{"small-a": 1}, NewPlacement(est.Phases, nil))

	// Average of children would be 50%; weighted by hours it is 1%.
	assert.Equal(t, 1, tree.WBS[0].Metrics.Percent())
}

func TestBuild_OverrideMovesActivityToTargetPhase(t *testing.T) {
	est := sampleEstimate()
	overrides := []*domain.PhaseOverride{{ActivityID: "a1", OverridePhaseID: "p2", OriginalPhaseID: "p1", OriginalWBSID: "w1"}}

	tree := Build(est, map[string]float64{"a1": 5}, NewPlacement(est.Phases, overrides))

	p1, _ := tree.Phase("p1")
	p2, _ := tree.Phase("p2")
	assert.Zero(t, p1.Metrics.TotalMH)
	assert.InDelta(t, 30.0, p2.Metrics.TotalMH, 1e-9)
	assert.InDelta(t, 10.0, p2.Metrics.EarnedMH, 1e-9)

	node, _ := tree.Activity("a1")
	assert.True(t, node.Overridden)
	assert.Equal(t, "p2", node.PhaseID)
	assert.Equal(t, "p1", node.OriginalPhaseID)
	assert.InDelta(t, 30.0, tree.WBS[0].Metrics.TotalMH, 1e-9, "same-WBS move leaves WBS totals unchanged")
}

func TestBuild_OverrideToUnknownPhaseFallsBackToNative(t *testing.T) {
	est := sampleEstimate()
	overrides := []*domain.PhaseOverride{{ActivityID: "a1", OverridePhaseID: "gone"}}

	tree := Build(est, nil, NewPlacement(est.Phases, overrides))
	node, _ := tree.Activity("a1")
	assert.False(t, node.Overridden)
	assert.Equal(t, "p1", node.PhaseID)
}

func TestBuild_ActivityUnderUnknownPhaseIsSkipped(t *testing.T) {
	est := sampleEstimate()
	est.Activities = append(est.Activities, &domain.Activity{
		ID: "orphan", PhaseID: "nope", Type: domain.ActivityLabor, Quantity: 100, Labor: &domain.Labor{CraftConstant: 1},
	})

	tree := Build(est, nil, NewPlacement(est.Phases, nil))
	assert.InDelta(t, 36.0, tree.Metrics.TotalMH, 1e-9)
}

// TestBuild_Additivity property-tests that every level equals the sum of its
// children and the project equals the sum of all labor-bearing activities.
func TestBuild_Additivity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 100; trial++ {
		est := &domain.Estimate{}
		completed := map[string]float64{}
		nWBS := rng.Intn(4) + 1
		for w := 0; w < nWBS; w++ {
			wid := fmt.Sprintf("w%d", w)
			est.WBS = append(est.WBS, &domain.WBSItem{ID: wid, SortOrder: w})
			for p := 0; p < rng.Intn(4)+1; p++ {
				pid := fmt.Sprintf("%s-p%d", wid, p)
				est.Phases = append(est.Phases, &domain.Phase{ID: pid, WBSID: wid})
				for a := 0; a < rng.Intn(6); a++ {
					act := &domain.Activity{
						ID:       fmt.Sprintf("%s-a%d", pid, a),
						PhaseID:  pid,
						Type:     domain.ActivityLabor,
						Quantity: float64(rng.Intn(200)),
						Labor:    &domain.Labor{CraftConstant: rng.Float64() * 3, WelderConstant: rng.Float64()},
					}
					if rng.Intn(5) == 0 {
						act.Type = domain.ActivityMaterial
					}
					est.Activities = append(est.Activities, act)
					completed[act.ID] = act.Quantity * rng.Float64() * 1.2
				}
			}
		}

		tree := Build(est, completed, NewPlacement(est.Phases, nil))

		var want Metrics
		for _, a := range est.Activities {
			if a.IsLaborBearing() {
				want.Add(ActivityMetrics(a, completed[a.ID]))
			}
		}
		assert.InDelta(t, want.TotalMH, tree.Metrics.TotalMH, 1e-6, "trial %d", trial)
		assert.InDelta(t, want.EarnedMH, tree.Metrics.EarnedMH, 1e-6, "trial %d", trial)
		assert.InDelta(t, want.CraftMH, tree.Metrics.CraftMH, 1e-6, "trial %d", trial)
		assert.InDelta(t, want.WeldMH, tree.Metrics.WeldMH, 1e-6, "trial %d", trial)

		var wbsSum Metrics
		for _, w := range tree.WBS {
			var phaseSum Metrics
			for _, p := range w.Phases {
				phaseSum.Add(p.Metrics)
			}
			assert.InDelta(t, w.Metrics.TotalMH, phaseSum.TotalMH, 1e-6, "trial %d", trial)
			assert.InDelta(t, w.Metrics.EarnedMH, phaseSum.EarnedMH, 1e-6, "trial %d", trial)
			wbsSum.Add(w.Metrics)
		}
		assert.InDelta(t, tree.Metrics.TotalMH, wbsSum.TotalMH, 1e-6, "trial %d", trial)
		assert.InDelta(t, tree.Metrics.CraftMH+tree.Metrics.WeldMH, tree.Metrics.TotalMH, 1e-6, "trial %d", trial)
	}
}
