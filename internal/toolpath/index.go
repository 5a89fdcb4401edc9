package toolpath

import (
	"sort"

	"github.com/addcomposites/openaxis/internal/frames"
)

// At locates the waypoint bracketing time t and linearly interpolates the
// position between the bracketing pair. Categorical fields (segment kind,
// layer) are taken from the next sample, never interpolated.
//
// Precondition: waypoints is sorted ascending by Time. This is not checked;
// unsorted input yields an arbitrary bracketing but never a panic.
//
// Queries before the first timestamp return the first waypoint, queries
// after the last return the last: At never extrapolates. An empty slice
// returns ok=false with a zero waypoint.
func At(waypoints []Waypoint, t float64) (Waypoint, bool) {
	if len(waypoints) == 0 {
		return Waypoint{}, false
	}
	if t <= waypoints[0].Time {
		return waypoints[0], true
	}
	last := waypoints[len(waypoints)-1]
	if t >= last.Time {
		return last, true
	}

	// First index with Time >= t; the clamps above guarantee 0 < next < len.
	next := sort.Search(len(waypoints), func(i int) bool {
		return waypoints[i].Time >= t
	})
	prev := waypoints[next-1]
	cur := waypoints[next]

	frac := TimeFraction(prev.Time, cur.Time, t)
	return Waypoint{
		Position: lerpVec(prev.Position, cur.Position, frac),
		Time:     t,
		Kind:     cur.Kind,
		Layer:    cur.Layer,
	}, true
}

// TimeFraction returns (t-t0)/(t1-t0) with the divide-by-zero guard the
// rendering hot path requires: coincident timestamps yield 0, not NaN.
func TimeFraction(t0, t1, t float64) float64 {
	if t1 == t0 {
		return 0
	}
	return (t - t0) / (t1 - t0)
}

func lerpVec(a, b frames.Vec3, frac float64) frames.Vec3 {
	return frames.Vec3{
		X: a.X + (b.X-a.X)*frac,
		Y: a.Y + (b.Y-a.Y)*frac,
		Z: a.Z + (b.Z-a.Z)*frac,
	}
}
