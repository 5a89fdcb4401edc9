// Package testutil provides shared test fixtures and helpers.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/addcomposites/openaxis/internal/frames"
	"github.com/addcomposites/openaxis/internal/joints"
	"github.com/addcomposites/openaxis/internal/toolpath"
)

// AssertStatusCode checks that the response status code matches expected.
func AssertStatusCode(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status code = %d, want %d", got, want)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// NewTestRequest creates a test HTTP request.
func NewTestRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

// NewTestRecorder creates a test response recorder.
func NewTestRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}

// LinearTrajectory builds a straight-line deposition toolpath with n
// waypoints spaced dt seconds and dx millimetres apart, all on layer 0.
func LinearTrajectory(n int, dt, dx float64) *toolpath.Trajectory {
	tr := &toolpath.Trajectory{Waypoints: make([]toolpath.Waypoint, n)}
	for i := 0; i < n; i++ {
		tr.Waypoints[i] = toolpath.Waypoint{
			Position: frames.Vec3{X: float64(i) * dx},
			Time:     float64(i) * dt,
			Kind:     toolpath.SegmentPerimeter,
		}
	}
	return tr
}

// SixAxisRamp builds n six-axis joint samples whose angles ramp linearly
// from zero in steps of 0.1 rad.
func SixAxisRamp(n int) joints.Trajectory {
	tr := make(joints.Trajectory, n)
	for i := range tr {
		v := float64(i) * 0.1
		tr[i] = joints.Sample{v, v, v, v, v, v}
	}
	return tr
}
