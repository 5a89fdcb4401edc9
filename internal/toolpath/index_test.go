package toolpath

import (
	"math"
	"testing"

	"github.com/addcomposites/openaxis/internal/frames"
)

func testWaypoints() []Waypoint {
	return []Waypoint{
		{Position: frames.Vec3{X: 0}, Time: 0, Kind: SegmentPerimeter, Layer: 0},
		{Position: frames.Vec3{X: 10}, Time: 1, Kind: SegmentPerimeter, Layer: 0},
		{Position: frames.Vec3{X: 10, Y: 20}, Time: 3, Kind: SegmentTravel, Layer: 1},
		{Position: frames.Vec3{X: 10, Y: 20, Z: 5}, Time: 4, Kind: SegmentInfill, Layer: 1},
	}
}

func TestAt_Empty(t *testing.T) {
	if _, ok := At(nil, 1.0); ok {
		t.Error("expected ok=false for empty input")
	}
}

func TestAt_ClampsToEndpoints(t *testing.T) {
	wps := testWaypoints()

	got, ok := At(wps, -5)
	if !ok || got != wps[0] {
		t.Errorf("below-range query: got %+v, want first waypoint", got)
	}

	got, ok = At(wps, 100)
	if !ok || got != wps[len(wps)-1] {
		t.Errorf("above-range query: got %+v, want last waypoint", got)
	}
}

func TestAt_Interpolates(t *testing.T) {
	wps := testWaypoints()

	got, ok := At(wps, 0.5)
	if !ok {
		t.Fatal("expected ok")
	}
	if math.Abs(got.Position.X-5) > 1e-9 {
		t.Errorf("X at t=0.5 = %v, want 5", got.Position.X)
	}

	// Categorical fields come from the next sample.
	got, _ = At(wps, 2.0)
	if got.Kind != SegmentTravel || got.Layer != 1 {
		t.Errorf("categorical fields = kind %v layer %d, want travel/1", got.Kind, got.Layer)
	}
	if math.Abs(got.Position.Y-10) > 1e-9 {
		t.Errorf("Y at t=2 = %v, want 10 (halfway)", got.Position.Y)
	}
}

func TestAt_ExactTimestamp(t *testing.T) {
	wps := testWaypoints()
	got, _ := At(wps, 1.0)
	if math.Abs(got.Position.X-10) > 1e-9 {
		t.Errorf("X at exact timestamp = %v, want 10", got.Position.X)
	}
}

func TestTimeFraction_DuplicateTimestampGuard(t *testing.T) {
	if frac := TimeFraction(2, 2, 2); frac != 0 {
		t.Errorf("fraction over zero-width interval = %v, want 0", frac)
	}
	// Duplicate timestamps in the sequence must not produce NaN positions.
	wps := []Waypoint{
		{Position: frames.Vec3{X: 0}, Time: 1},
		{Position: frames.Vec3{X: 5}, Time: 1},
	}
	got, _ := At(wps, 1)
	if math.IsNaN(got.Position.X) {
		t.Error("duplicate timestamps produced NaN position")
	}
}

func TestSegmentKindJSONRoundTrip(t *testing.T) {
	for _, k := range []SegmentKind{SegmentPerimeter, SegmentTravel, SegmentRapid, SegmentUnknown} {
		if ParseSegmentKind(k.String()) != k {
			t.Errorf("kind %v did not round-trip through its label", k)
		}
	}
	if !SegmentTravel.IsTravel() || !SegmentRapid.IsTravel() {
		t.Error("travel/rapid must report IsTravel")
	}
	if SegmentPerimeter.IsTravel() {
		t.Error("perimeter must not report IsTravel")
	}
}
