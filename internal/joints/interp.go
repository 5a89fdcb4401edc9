package joints

import (
	"sort"

	"github.com/addcomposites/openaxis/internal/toolpath"
)

// Options carries the optional inputs to At.
type Options struct {
	// Pad enables the three-phase home-transit model. When set, the
	// trajectory must carry the two extra home samples (§Trajectory).
	Pad *HomePad

	// Reachable flags one entry per waypoint sample, supplied by the
	// inverse-kinematics service. Missing or short slices are treated as
	// all-reachable.
	Reachable []bool

	// LastKnown is the caller's last displayed pose, substituted when the
	// interpolation result is a near-zero artifact on an unreachable
	// segment. Without it the simulated arm would visibly snap to its
	// zero pose.
	LastKnown Sample
}

// At returns the interpolated joint sample for playback time t.
//
// With home-transit padding the timeline has three phases:
// home→first over [0, htt), toolpath playback over [htt, T-htt], and
// last→home after, where htt is the transit duration and
// T = lastWaypointTime + 2·htt. Without padding the trajectory is aligned
// 1:1 with the waypoints and queried directly.
//
// Empty trajectories return nil; out-of-range times clamp, never
// extrapolate.
func At(tr Trajectory, waypoints []toolpath.Waypoint, t float64, opts Options) Sample {
	if len(tr) == 0 {
		return nil
	}

	var result Sample
	if opts.Pad != nil && opts.Pad.TransitSeconds > 0 && len(tr) >= 2 {
		result = atPadded(tr, waypoints, t, opts.Pad)
	} else {
		result = atUnpadded(tr, waypoints, t)
	}

	if result.NearZero() && !bracketReachable(opts.Reachable, waypoints, t, opts.Pad) && len(opts.LastKnown) > 0 {
		return opts.LastKnown.Clone()
	}
	return result
}

func atPadded(tr Trajectory, waypoints []toolpath.Waypoint, t float64, pad *HomePad) Sample {
	htt := pad.TransitSeconds
	var pathTime float64
	if len(waypoints) > 0 {
		pathTime = waypoints[len(waypoints)-1].Time
	}
	total := pathTime + 2*htt

	switch {
	case t < htt:
		// Phase 1: home to first toolpath pose.
		return Lerp(tr[0], tr[1], clamp01(t/htt))
	case t > total-htt:
		// Phase 3: last toolpath pose back to home.
		return Lerp(tr[len(tr)-2], tr[len(tr)-1], clamp01((t-(total-htt))/htt))
	default:
		// Phase 2: toolpath playback on the unpadded waypoint timing,
		// offset by one to skip the leading home sample.
		prev, next, frac := bracket(waypoints, t-htt)
		return Lerp(sampleAt(tr, prev+1), sampleAt(tr, next+1), frac)
	}
}

func atUnpadded(tr Trajectory, waypoints []toolpath.Waypoint, t float64) Sample {
	prev, next, frac := bracket(waypoints, t)
	return Lerp(sampleAt(tr, prev), sampleAt(tr, next), frac)
}

// bracket finds the waypoint pair surrounding time t and the interpolation
// fraction between them, clamping to the endpoints. Empty input brackets
// index 0 so a 1-sample trajectory still resolves.
func bracket(waypoints []toolpath.Waypoint, t float64) (prev, next int, frac float64) {
	if len(waypoints) == 0 {
		return 0, 0, 0
	}
	if t <= waypoints[0].Time {
		return 0, 0, 0
	}
	last := len(waypoints) - 1
	if t >= waypoints[last].Time {
		return last, last, 0
	}
	next = sort.Search(len(waypoints), func(i int) bool {
		return waypoints[i].Time >= t
	})
	prev = next - 1
	frac = toolpath.TimeFraction(waypoints[prev].Time, waypoints[next].Time, t)
	return prev, next, frac
}

// sampleAt clamps i into tr. The padded trajectory is two samples longer
// than the waypoint list, so the +1 offsets in atPadded stay in range for
// well-formed input; the clamp keeps malformed input from panicking on the
// rendering hot path.
func sampleAt(tr Trajectory, i int) Sample {
	if i < 0 {
		i = 0
	}
	if i >= len(tr) {
		i = len(tr) - 1
	}
	return tr[i]
}

// bracketReachable reports whether either waypoint bracketing time t is
// flagged reachable. Missing flags count as reachable.
func bracketReachable(reachable []bool, waypoints []toolpath.Waypoint, t float64, pad *HomePad) bool {
	if len(reachable) == 0 {
		return true
	}
	adjT := t
	if pad != nil {
		adjT = t - pad.TransitSeconds
	}
	prev, next, _ := bracket(waypoints, adjT)
	return flagAt(reachable, prev) || flagAt(reachable, next)
}

func flagAt(reachable []bool, i int) bool {
	if i < 0 || i >= len(reachable) {
		return true
	}
	return reachable[i]
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
