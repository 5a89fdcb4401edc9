// Package playback owns the simulated timeline: the run/pause/stop state
// machine, the per-tick clock advance, and the derived pose snapshot the
// renderer reads between ticks.
//
// All mutation goes through one Controller guarded by a single mutex:
// user actions (start/pause/seek) and the rendering tick serialise on it,
// with last-writer-wins semantics for seeks that race a tick.
package playback

import (
	"sync"

	"github.com/google/uuid"

	"github.com/addcomposites/openaxis/internal/frames"
	"github.com/addcomposites/openaxis/internal/joints"
	"github.com/addcomposites/openaxis/internal/toolpath"
)

const (
	// defaultMaxTickDelta bounds the wall-clock jump applied in one tick,
	// so a suspended or backgrounded process does not fast-forward the
	// simulation when it wakes.
	defaultMaxTickDelta = 0.1

	// publishEpsilon suppresses downstream notification for sub-0.1ms
	// time changes.
	publishEpsilon = 1e-4
)

// State is the externally visible playback state.
type State struct {
	SessionID    string  `json:"session_id,omitempty"`
	Running      bool    `json:"running"`
	Paused       bool    `json:"paused"`
	CurrentTime  float64 `json:"current_time_s"`
	TotalTime    float64 `json:"total_time_s"`
	Speed        float64 `json:"speed"`
	CurrentLayer int     `json:"current_layer"`
	TotalLayers  int     `json:"total_layers"`
}

// Pose is the per-tick snapshot the renderer consumes.
type Pose struct {
	SceneTCP     frames.Vec3   `json:"scene_tcp_m"`
	RobotTCP     frames.Vec3   `json:"robot_tcp_m"`
	Joints       joints.Sample `json:"joints_rad,omitempty"`
	VisibleCount int           `json:"visible_count"`
	Layer        int           `json:"layer"`
	Segment      string        `json:"segment_type"`
}

// Cell is the scene-frame layout of the robot cell.
type Cell struct {
	BuildPlateOrigin frames.Vec3
	RobotBase        frames.Vec3
}

// Job bundles the playback inputs for one manufacturing job.
type Job struct {
	Trajectory *toolpath.Trajectory
	Joints     joints.Trajectory
	Pad        *joints.HomePad
	Reachable  []bool
}

// Controller owns one playback timeline.
type Controller struct {
	mu sync.Mutex

	state       State
	job         Job
	cell        Cell
	window      *toolpath.DepositionWindow
	budget      int
	maxDelta    float64
	lastJoints  joints.Sample
	totalLayers int
}

// NewController creates a controller for the given cell layout.
// budget caps the deposition window size (0 means the package default);
// maxTickDelta bounds the per-tick wall delta (0 means 0.1s).
func NewController(cell Cell, budget int, maxTickDelta float64) *Controller {
	if maxTickDelta <= 0 {
		maxTickDelta = defaultMaxTickDelta
	}
	return &Controller{
		cell:     cell,
		budget:   budget,
		maxDelta: maxTickDelta,
		state:    State{Speed: 1.0},
	}
}

// LoadJob binds a job to the controller and resets the timeline. The
// trajectory's waypoints are owned by the session after this call.
func (c *Controller) LoadJob(job Job) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.job = job
	c.window = toolpath.NewDepositionWindow(job.Trajectory.Waypoints, c.budget)
	c.totalLayers = job.Trajectory.TotalLayers()
	c.lastJoints = nil

	total := job.Trajectory.TotalTime()
	if job.Pad != nil {
		total += 2 * job.Pad.TransitSeconds
	}
	speed := c.state.Speed
	c.state = State{
		TotalTime:   total,
		Speed:       speed,
		TotalLayers: c.totalLayers,
	}
}

// Start resets the timeline to zero, clears any prior fault state, and
// begins running under a fresh session ID.
func (c *Controller) Start() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.SessionID = uuid.NewString()
	c.state.Running = true
	c.state.Paused = false
	c.state.CurrentTime = 0
	c.state.CurrentLayer = 0
	c.lastJoints = nil
	return c.state
}

// Pause suspends the clock without resetting time. Pausing while already
// paused is a no-op.
func (c *Controller) Pause() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Running {
		c.state.Paused = true
	}
	return c.state
}

// Resume continues a paused playback.
func (c *Controller) Resume() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Running {
		c.state.Paused = false
	}
	return c.state
}

// Stop halts playback and resets time and layer to zero.
func (c *Controller) Stop() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Running = false
	c.state.Paused = false
	c.state.CurrentTime = 0
	c.state.CurrentLayer = 0
	return c.state
}

// SetSpeed sets the playback speed multiplier. Non-positive values are
// ignored.
func (c *Controller) SetSpeed(speed float64) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if speed > 0 {
		c.state.Speed = speed
	}
	return c.state
}

// SeekTime jumps the timeline to t (clamped into [0, total]) and
// recomputes the derived layer.
func (c *Controller) SeekTime(t float64) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.CurrentTime = clamp(t, 0, c.state.TotalTime)
	c.state.CurrentLayer = c.layerForTimeLocked(c.state.CurrentTime)
	return c.state
}

// SeekLayer jumps the timeline to the start of the given layer using the
// proportional layer↔time mapping. The mapping assumes uniform per-layer
// duration, so this is approximate scrubbing, not authoritative timing.
func (c *Controller) SeekLayer(layer int) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.totalLayers <= 0 {
		return c.state
	}
	if layer < 0 {
		layer = 0
	}
	if layer >= c.totalLayers {
		layer = c.totalLayers - 1
	}
	c.state.CurrentLayer = layer
	c.state.CurrentTime = float64(layer) / float64(c.totalLayers) * c.state.TotalTime
	return c.state
}

// Tick advances the simulated clock by the wall-clock delta (seconds)
// scaled by the current speed. The delta is clamped so one tick can never
// jump more than maxDelta of simulated wall time. Returns true when the
// time change was large enough to publish downstream.
//
// Reaching the end leaves Running=false without resetting time, so the
// final pose stays visible.
func (c *Controller) Tick(wallDelta float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.Running || c.state.Paused {
		return false
	}
	if wallDelta < 0 {
		wallDelta = 0
	}
	if wallDelta > c.maxDelta {
		wallDelta = c.maxDelta
	}

	newTime := c.state.CurrentTime + c.state.Speed*wallDelta
	if newTime >= c.state.TotalTime {
		newTime = c.state.TotalTime
		c.state.Running = false
	}

	if abs(newTime-c.state.CurrentTime) <= publishEpsilon {
		return false
	}
	c.state.CurrentTime = newTime
	c.state.CurrentLayer = c.layerForTimeLocked(newTime)
	return true
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CurrentPose derives the renderer-facing snapshot for the current time:
// interpolated TCP in scene and robot frames, joint sample, and visible
// deposition count.
func (c *Controller) CurrentPose() Pose {
	c.mu.Lock()
	defer c.mu.Unlock()

	pose := Pose{Layer: c.state.CurrentLayer}
	if c.job.Trajectory == nil {
		return pose
	}

	// During home transit the waypoint clock has not started; clamping in
	// the time-index holds the TCP at the first/last waypoint.
	pathTime := c.state.CurrentTime
	if c.job.Pad != nil {
		pathTime -= c.job.Pad.TransitSeconds
	}

	if wp, ok := toolpath.At(c.job.Trajectory.Waypoints, pathTime); ok {
		pose.SceneTCP = frames.ToScene(wp.Position).Add(c.cell.BuildPlateOrigin)
		pose.RobotTCP = frames.ToRobotFrame(wp.Position, c.cell.BuildPlateOrigin, c.cell.RobotBase)
		pose.Segment = wp.Kind.String()
	}

	if len(c.job.Joints) > 0 {
		sample := joints.At(c.job.Joints, c.job.Trajectory.Waypoints, c.state.CurrentTime, joints.Options{
			Pad:       c.job.Pad,
			Reachable: c.job.Reachable,
			LastKnown: c.lastJoints,
		})
		pose.Joints = sample
		if len(sample) > 0 {
			c.lastJoints = sample
		}
	}

	if c.window != nil {
		pose.VisibleCount = c.window.VisibleCount(pathTime)
	}
	return pose
}

// DepositionPoints returns the travel-filtered, budget-bounded point set
// the progressive renderer draws from.
func (c *Controller) DepositionPoints() []toolpath.Waypoint {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.window == nil {
		return nil
	}
	return c.window.Points()
}

// layerForTimeLocked maps a time onto a layer index proportionally.
// Approximate by construction: real layers have uneven durations.
func (c *Controller) layerForTimeLocked(t float64) int {
	if c.totalLayers <= 0 || c.state.TotalTime <= 0 {
		return 0
	}
	layer := int(t / c.state.TotalTime * float64(c.totalLayers))
	if layer >= c.totalLayers {
		layer = c.totalLayers - 1
	}
	if layer < 0 {
		layer = 0
	}
	return layer
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
