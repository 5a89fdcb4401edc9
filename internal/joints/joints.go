// Package joints interpolates precomputed robot joint-angle trajectories
// during playback. It does not solve kinematics: the per-waypoint samples
// and home pose come from the external inverse-kinematics service.
package joints

import "math"

// nearZeroRad is the per-axis threshold under which a sample is treated as
// the robot's all-zero pose for the unreachable-segment guard.
const nearZeroRad = 0.001

// Sample is one robot pose as per-axis angles in radians, ordered from the
// base joint outward.
type Sample []float64

// Clone returns a copy of the sample.
func (s Sample) Clone() Sample {
	if s == nil {
		return nil
	}
	out := make(Sample, len(s))
	copy(out, s)
	return out
}

// NearZero reports whether every axis is within nearZeroRad of zero. An
// all-near-zero interpolation result on an unreachable segment is an
// artifact, not a real pose.
func (s Sample) NearZero() bool {
	if len(s) == 0 {
		return true
	}
	for _, a := range s {
		if math.Abs(a) > nearZeroRad {
			return false
		}
	}
	return true
}

// Lerp linearly interpolates each axis between a and b. Angles are blended
// as plain values: no wrap-around or shortest-path handling is applied, so
// interpolating across the ±180° seam goes the long way round. This is a
// documented limitation, kept until real joint-range data says otherwise.
func Lerp(a, b Sample, frac float64) Sample {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	out := make(Sample, n)
	for i := 0; i < n; i++ {
		out[i] = a[i] + (b[i]-a[i])*frac
	}
	return out
}

// Trajectory is an ordered sequence of joint samples. It is aligned 1:1
// with a toolpath's waypoints, or carries two extra samples
// [home, ...perWaypoint, home] when home-transit padding is enabled.
type Trajectory []Sample

// HomePad describes the transit-to/from-home phases wrapped around the
// toolpath-proper playback.
type HomePad struct {
	// Home is the rest pose the arm starts from and returns to.
	Home Sample
	// TransitSeconds is the duration of each transit phase.
	TransitSeconds float64
}
