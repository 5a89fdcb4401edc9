package playback

import (
	"math"
	"testing"

	"github.com/addcomposites/openaxis/internal/frames"
	"github.com/addcomposites/openaxis/internal/joints"
	"github.com/addcomposites/openaxis/internal/toolpath"
)

// testJob is a 10s toolpath over 5 layers with a travel move in the
// middle, plus a padded joint trajectory with 1s home transits.
func testJob() Job {
	wps := []toolpath.Waypoint{
		{Position: frames.Vec3{X: 0}, Time: 0, Kind: toolpath.SegmentPerimeter, Layer: 0},
		{Position: frames.Vec3{X: 1000}, Time: 2, Kind: toolpath.SegmentPerimeter, Layer: 0},
		{Position: frames.Vec3{X: 2000}, Time: 4, Kind: toolpath.SegmentTravel, Layer: 1},
		{Position: frames.Vec3{X: 3000}, Time: 6, Kind: toolpath.SegmentInfill, Layer: 2},
		{Position: frames.Vec3{X: 4000}, Time: 8, Kind: toolpath.SegmentInfill, Layer: 3},
		{Position: frames.Vec3{X: 5000}, Time: 10, Kind: toolpath.SegmentPerimeter, Layer: 4},
	}
	home := joints.Sample{0, 0, 0, 0, 0, 0}
	tr := joints.Trajectory{home}
	for i := range wps {
		v := float64(i+1) * 0.1
		tr = append(tr, joints.Sample{v, v, v, v, v, v})
	}
	tr = append(tr, home)
	return Job{
		Trajectory: &toolpath.Trajectory{Waypoints: wps},
		Joints:     tr,
		Pad:        &joints.HomePad{Home: home, TransitSeconds: 1.0},
	}
}

func newTestController() *Controller {
	c := NewController(Cell{}, 0, 0)
	c.LoadJob(testJob())
	return c
}

func TestLoadJobTotals(t *testing.T) {
	c := newTestController()
	st := c.Snapshot()

	// 10s of toolpath plus two 1s home transits.
	if st.TotalTime != 12 {
		t.Errorf("TotalTime = %v, want 12", st.TotalTime)
	}
	if st.TotalLayers != 5 {
		t.Errorf("TotalLayers = %d, want 5", st.TotalLayers)
	}
	if st.Running {
		t.Error("controller running before Start")
	}
}

func TestStartResetsAndAssignsSession(t *testing.T) {
	c := newTestController()
	c.Start()
	c.SeekTime(5)

	st := c.Start()
	if st.CurrentTime != 0 {
		t.Errorf("time after restart = %v, want 0", st.CurrentTime)
	}
	if !st.Running || st.Paused {
		t.Errorf("state after Start = running=%v paused=%v", st.Running, st.Paused)
	}
	if st.SessionID == "" {
		t.Error("no session ID assigned")
	}

	st2 := c.Start()
	if st2.SessionID == st.SessionID {
		t.Error("restart did not assign a fresh session ID")
	}
}

func TestPauseResumeIdempotent(t *testing.T) {
	c := newTestController()
	c.Start()
	c.Tick(0.05)
	mid := c.Snapshot().CurrentTime

	c.Pause()
	c.Pause() // double pause is a no-op
	if c.Tick(0.05) {
		t.Error("tick advanced while paused")
	}
	if got := c.Snapshot().CurrentTime; got != mid {
		t.Errorf("time moved while paused: %v -> %v", mid, got)
	}

	c.Resume()
	if !c.Tick(0.05) {
		t.Error("tick did not advance after resume")
	}
}

func TestPauseBeforeStartIsNoOp(t *testing.T) {
	c := newTestController()
	st := c.Pause()
	if st.Paused {
		t.Error("pause on a stopped controller set Paused")
	}
}

func TestStopResetsTimeAndLayer(t *testing.T) {
	c := newTestController()
	c.Start()
	c.SeekTime(9)

	st := c.Stop()
	if st.Running || st.Paused {
		t.Errorf("state after Stop = running=%v paused=%v", st.Running, st.Paused)
	}
	if st.CurrentTime != 0 || st.CurrentLayer != 0 {
		t.Errorf("Stop left time=%v layer=%d", st.CurrentTime, st.CurrentLayer)
	}
}

func TestTickClampsWallDelta(t *testing.T) {
	c := newTestController()
	c.Start()

	// A 3s stall (e.g. backgrounded tab) must advance at most 0.1s.
	c.Tick(3.0)
	if got := c.Snapshot().CurrentTime; got != 0.1 {
		t.Errorf("time after clamped tick = %v, want 0.1", got)
	}
}

func TestTickSpeedMultiplier(t *testing.T) {
	c := newTestController()
	c.Start()
	c.SetSpeed(4.0)

	c.Tick(0.05)
	if got := c.Snapshot().CurrentTime; math.Abs(got-0.2) > 1e-9 {
		t.Errorf("time at 4x = %v, want 0.2", got)
	}
}

func TestTickPublishThreshold(t *testing.T) {
	c := newTestController()
	c.Start()

	if c.Tick(1e-6) {
		t.Error("sub-threshold tick published")
	}
	if c.Tick(0.01) != true {
		t.Error("normal tick did not publish")
	}
}

func TestAutoStopAtEnd(t *testing.T) {
	c := newTestController()
	c.Start()
	c.SeekTime(11.95)

	c.Tick(0.1)
	st := c.Snapshot()
	if st.Running {
		t.Error("still running past the end")
	}
	if st.CurrentTime != 12 {
		t.Errorf("time at end = %v, want 12 (not reset)", st.CurrentTime)
	}

	// Further ticks are no-ops.
	if c.Tick(0.1) {
		t.Error("tick published after auto-stop")
	}
}

func TestSetSpeedRejectsNonPositive(t *testing.T) {
	c := newTestController()
	c.SetSpeed(0)
	c.SetSpeed(-2)
	if got := c.Snapshot().Speed; got != 1.0 {
		t.Errorf("speed = %v, want 1.0", got)
	}
}

func TestSeekTimeClamps(t *testing.T) {
	c := newTestController()
	if got := c.SeekTime(-5).CurrentTime; got != 0 {
		t.Errorf("seek below zero = %v", got)
	}
	if got := c.SeekTime(100).CurrentTime; got != 12 {
		t.Errorf("seek past end = %v, want 12", got)
	}
}

func TestSeekLayerProportionalMapping(t *testing.T) {
	c := newTestController()

	// 5 layers over 12s: layer 2 starts at 2/5 * 12 = 4.8s.
	st := c.SeekLayer(2)
	if st.CurrentLayer != 2 {
		t.Errorf("layer = %d, want 2", st.CurrentLayer)
	}
	if math.Abs(st.CurrentTime-4.8) > 1e-9 {
		t.Errorf("time = %v, want 4.8", st.CurrentTime)
	}

	// Out-of-range layers clamp.
	if got := c.SeekLayer(99).CurrentLayer; got != 4 {
		t.Errorf("layer clamp high = %d, want 4", got)
	}
	if got := c.SeekLayer(-1).CurrentLayer; got != 0 {
		t.Errorf("layer clamp low = %d, want 0", got)
	}
}

func TestSeekTimeDerivesLayer(t *testing.T) {
	c := newTestController()

	// t=6 of 12 with 5 layers: floor(6/12*5) = 2.
	if got := c.SeekTime(6).CurrentLayer; got != 2 {
		t.Errorf("layer at t=6 = %d, want 2", got)
	}
	// End of timeline clamps to the last layer.
	if got := c.SeekTime(12).CurrentLayer; got != 4 {
		t.Errorf("layer at t=12 = %d, want 4", got)
	}
}

func TestCurrentPoseDuringTransit(t *testing.T) {
	c := newTestController()
	c.Start()

	// t=0.5 is mid home-transit: TCP holds at the first waypoint, joints
	// are halfway from home to the first sample.
	c.SeekTime(0.5)
	pose := c.CurrentPose()
	if pose.SceneTCP != (frames.Vec3{}) {
		t.Errorf("scene TCP during transit = %+v, want origin", pose.SceneTCP)
	}
	if len(pose.Joints) != 6 || math.Abs(pose.Joints[0]-0.05) > 1e-9 {
		t.Errorf("joints during transit = %v, want [0.05 ...]", pose.Joints)
	}
	if pose.VisibleCount != 0 {
		t.Errorf("visible count during transit = %d, want 0", pose.VisibleCount)
	}
}

func TestCurrentPoseMidPath(t *testing.T) {
	c := newTestController()
	c.Start()

	// t=2 playback is path time 1s: halfway between waypoints at x=0 and
	// x=1000mm, so scene x = 0.5m.
	c.SeekTime(2)
	pose := c.CurrentPose()
	if math.Abs(pose.SceneTCP.X-0.5) > 1e-9 {
		t.Errorf("scene TCP x = %v, want 0.5", pose.SceneTCP.X)
	}
	if pose.Segment != "perimeter" {
		t.Errorf("segment = %q, want perimeter", pose.Segment)
	}
	// One deposition point (the t=0 waypoint) is visible at path time 1.
	if pose.VisibleCount != 1 {
		t.Errorf("visible count = %d, want 1", pose.VisibleCount)
	}
}

func TestCurrentPoseEmptyController(t *testing.T) {
	c := NewController(Cell{}, 0, 0)
	pose := c.CurrentPose()
	if pose.VisibleCount != 0 || len(pose.Joints) != 0 {
		t.Errorf("pose on empty controller = %+v", pose)
	}
}

func TestDepositionPointsFilterTravel(t *testing.T) {
	c := newTestController()
	pts := c.DepositionPoints()

	// 6 waypoints, 1 travel.
	if len(pts) != 5 {
		t.Fatalf("deposition points = %d, want 5", len(pts))
	}
	for _, p := range pts {
		if p.Kind.IsTravel() {
			t.Errorf("travel point %+v in deposition set", p)
		}
	}
}
