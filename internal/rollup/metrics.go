package rollup

import (
	"math"

	"github.com/momentumhq/momentum/internal/domain"
)

// Metrics accumulates man-hours at any level of the hierarchy. Craft and weld
// are independent accumulators, not derived from earned.
type Metrics struct {
	TotalMH  float64
	CraftMH  float64
	WeldMH   float64
	EarnedMH float64
}

// ActivityMetrics computes the leaf metrics for one activity and its completed quantity.
func ActivityMetrics(a *domain.Activity, completedQty float64) Metrics {
	return Metrics{
		TotalMH:  a.TotalMH(),
		CraftMH:  a.CraftMH(),
		WeldMH:   a.WeldMH(),
		EarnedMH: a.EarnedMH(completedQty),
	}
}

func (m *Metrics) Add(o Metrics) {
	m.TotalMH += o.TotalMH
	m.CraftMH += o.CraftMH
	m.WeldMH += o.WeldMH
	m.EarnedMH += o.EarnedMH
}

// Percent is computed from this level's own sums, never averaged from children.
func (m Metrics) Percent() int {
	return PercentComplete(m.EarnedMH, m.TotalMH)
}

// RemainingMH is never negative, even on overrun.
func (m Metrics) RemainingMH() float64 {
	return math.Max(0, m.TotalMH-m.EarnedMH)
}

func (m Metrics) Status() domain.ProgressStatus {
	return StatusFor(m.Percent())
}

// PercentComplete returns round(100 * earned / total), or 0 when total is 0.
// Values above 100 are overruns and are not clamped.
func PercentComplete(earned, total float64) int {
	if total == 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return 0
	}
	pct := 100 * earned / total
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0
	}
	return int(math.Round(pct))
}

func StatusFor(percent int) domain.ProgressStatus {
	switch {
	case percent <= 0:
		return domain.ProgressNotStarted
	case percent >= 100:
		return domain.ProgressComplete
	default:
		return domain.ProgressInProgress
	}
}
