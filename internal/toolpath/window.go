package toolpath

import "sort"

// DefaultVisualisationBudget caps how many deposition points the renderer
// is asked to draw. Beyond this the point set is stride-subsampled, trading
// positional fidelity for bounded per-frame rendering cost.
const DefaultVisualisationBudget = 50000

// DepositionWindow answers "how many points are already deposited at time
// t" for the progressive-deposition renderer. It holds the travel-filtered,
// optionally subsampled point set so the per-tick query is a single binary
// search.
type DepositionWindow struct {
	points []Waypoint
}

// NewDepositionWindow filters travel/rapid segments out of waypoints and
// subsamples the remainder to budget (DefaultVisualisationBudget when
// budget <= 0). The input must be time-ascending; the filtered subset
// preserves that order.
func NewDepositionWindow(waypoints []Waypoint, budget int) *DepositionWindow {
	if budget <= 0 {
		budget = DefaultVisualisationBudget
	}
	deposited := make([]Waypoint, 0, len(waypoints))
	for _, wp := range waypoints {
		if wp.Kind.IsTravel() {
			continue
		}
		deposited = append(deposited, wp)
	}
	return &DepositionWindow{points: Subsample(deposited, budget)}
}

// Points returns the windowed point set the renderer draws from. Callers
// must not mutate it.
func (dw *DepositionWindow) Points() []Waypoint {
	return dw.points
}

// VisibleCount returns how many leading points have Time <= t. It is
// non-decreasing in t and runs in O(log n); it is called every rendering
// tick. Empty windows return 0.
func (dw *DepositionWindow) VisibleCount(t float64) int {
	// First index with Time > t; that index equals the count of points at
	// or before t.
	return sort.Search(len(dw.points), func(i int) bool {
		return dw.points[i].Time > t
	})
}

// Subsample uniformly stride-samples points down to at most budget entries:
// step = n/budget, sampled[i] = points[floor(i*step)]. Inputs at or under
// budget are returned unchanged.
func Subsample(points []Waypoint, budget int) []Waypoint {
	n := len(points)
	if budget <= 0 || n <= budget {
		return points
	}
	step := float64(n) / float64(budget)
	sampled := make([]Waypoint, budget)
	for i := 0; i < budget; i++ {
		idx := int(float64(i) * step)
		if idx >= n {
			idx = n - 1
		}
		sampled[i] = points[idx]
	}
	return sampled
}
