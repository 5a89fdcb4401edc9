// Package toolpath models the time-stamped waypoint sequences produced by
// the external slicing service and provides the time-index and
// progressive-deposition queries the playback engine runs every tick.
package toolpath

import (
	"encoding/json"
	"fmt"

	"github.com/addcomposites/openaxis/internal/frames"
)

// SegmentKind classifies a waypoint's move. It is a closed enum; the
// stringly-typed segment labels from the slicer are parsed once at the
// boundary and matched exhaustively afterwards.
type SegmentKind int

const (
	SegmentUnknown SegmentKind = iota
	SegmentPerimeter
	SegmentInfill
	SegmentSupport
	SegmentSkirt
	SegmentTravel
	SegmentRapid
)

var segmentNames = map[SegmentKind]string{
	SegmentUnknown:   "unknown",
	SegmentPerimeter: "perimeter",
	SegmentInfill:    "infill",
	SegmentSupport:   "support",
	SegmentSkirt:     "skirt",
	SegmentTravel:    "travel",
	SegmentRapid:     "rapid",
}

// ParseSegmentKind maps a slicer segment label to its SegmentKind.
// Unrecognised labels map to SegmentUnknown rather than erroring; the
// playback engine treats unknown segments as deposition.
func ParseSegmentKind(s string) SegmentKind {
	for k, name := range segmentNames {
		if name == s {
			return k
		}
	}
	return SegmentUnknown
}

// String returns the wire label for the segment kind.
func (k SegmentKind) String() string {
	if name, ok := segmentNames[k]; ok {
		return name
	}
	return fmt.Sprintf("segment(%d)", int(k))
}

// IsTravel reports whether the segment deposits no material.
func (k SegmentKind) IsTravel() bool {
	return k == SegmentTravel || k == SegmentRapid
}

// MarshalJSON encodes the kind as its wire label.
func (k SegmentKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a wire label into a SegmentKind.
func (k *SegmentKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*k = ParseSegmentKind(s)
	return nil
}

// Waypoint is one timestamped sample of the toolpath. Position is in the
// manufacturing frame (Z-up, mm); Time is seconds from job start and is
// monotonically non-decreasing along a trajectory.
type Waypoint struct {
	Position frames.Vec3 `json:"position"`
	Time     float64     `json:"time"`
	Kind     SegmentKind `json:"segment_type"`
	Layer    int         `json:"layer"`
}

// Trajectory is a full ordered waypoint sequence for a manufacturing job.
type Trajectory struct {
	Waypoints []Waypoint `json:"waypoints"`
}

// TotalTime returns the timestamp of the last waypoint, or 0 when empty.
func (tr *Trajectory) TotalTime() float64 {
	if len(tr.Waypoints) == 0 {
		return 0
	}
	return tr.Waypoints[len(tr.Waypoints)-1].Time
}

// TotalLayers returns the highest layer index plus one, or 0 when empty.
func (tr *Trajectory) TotalLayers() int {
	max := -1
	for _, wp := range tr.Waypoints {
		if wp.Layer > max {
			max = wp.Layer
		}
	}
	return max + 1
}
