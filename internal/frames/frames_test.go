package frames

import (
	"math"
	"testing"
)

const tol = 1e-9

func vecNear(t *testing.T, got, want Vec3, eps float64) {
	t.Helper()
	if math.Abs(got.X-want.X) > eps || math.Abs(got.Y-want.Y) > eps || math.Abs(got.Z-want.Z) > eps {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestToScene_ScaleRoundTrip(t *testing.T) {
	for _, mm := range []float64{0, 1, 150, 2500, 0.05} {
		scene := ToScene(Vec3{X: mm})
		if math.Abs(scene.X-mm/1000) > tol {
			t.Errorf("ToScene(%v mm).X = %v, want %v", mm, scene.X, mm/1000)
		}
		if math.Abs(scene.X*1000-mm) > 1e-6 {
			t.Errorf("inverse scale lost precision for %v mm", mm)
		}
	}
}

// These two assertions pin the axis permutation signs. A regression here
// reintroduces the historical class of sign-flip bugs where the whole
// simulated toolpath renders mirrored through the build plate.
func TestToScene_AxisPermutationSigns(t *testing.T) {
	// Manufacturing height (+Z) maps to scene up (+Y).
	vecNear(t, ToScene(Vec3{Z: 1000}), Vec3{X: 0, Y: 1, Z: 0}, tol)
	// Manufacturing depth (+Y) maps to negative scene depth (-Z).
	vecNear(t, ToScene(Vec3{Y: 1000}), Vec3{X: 0, Y: 0, Z: -1}, tol)
	// Manufacturing X is unchanged apart from scale.
	vecNear(t, ToScene(Vec3{X: 1000}), Vec3{X: 1, Y: 0, Z: 0}, tol)
}

func TestToRobotFrame_CompositionIdentity(t *testing.T) {
	p := Vec3{X: 150, Y: 0, Z: 100}
	plate := Vec3{X: 2.0, Y: 0.05, Z: 0.0}
	base := Vec3{X: 0.4, Y: 0, Z: 0.1}

	got := ToRobotFrame(p, plate, base)
	vecNear(t, got, Vec3{X: 1.75, Y: 0.1, Z: 0.15}, 1e-4)

	// Manual composition must agree with the packaged function.
	scene := ToScene(p).Add(plate)
	rel := scene.Sub(base)
	manual := Vec3{X: rel.X, Y: -rel.Z, Z: rel.Y}
	vecNear(t, got, manual, tol)
}

func TestToRobotFrame_OriginAtBase(t *testing.T) {
	// A point whose scene projection lands exactly on the robot base maps
	// to the robot-frame origin.
	base := Vec3{X: 0.5, Y: 0.2, Z: -0.1}
	got := ToRobotFrame(Vec3{}, base, base)
	vecNear(t, got, Vec3{}, tol)
}

func TestRotationXYZ_Identity(t *testing.T) {
	r := RotationXYZ(EulerXYZ{})
	vecNear(t, Rotate(r, Vec3{X: 1, Y: 2, Z: 3}), Vec3{X: 1, Y: 2, Z: 3}, tol)
}

func TestRotationXYZ_HalfTurnAboutX(t *testing.T) {
	r := RotationXYZ(EulerXYZ{RX: math.Pi})
	vecNear(t, Rotate(r, Vec3{X: 0, Y: 1, Z: 0}), Vec3{X: 0, Y: -1, Z: 0}, 1e-9)
	vecNear(t, Rotate(r, Vec3{X: 0, Y: 0, Z: 1}), Vec3{X: 0, Y: 0, Z: -1}, 1e-9)
}

func TestRotationXYZ_CompoundOrder(t *testing.T) {
	// Intrinsic XYZ: R = Rx·Ry·Rz, so the Z rotation is applied to the
	// vector first. For v = +X and rz = 90°, Rz·v = +Y, then rx = 90°
	// carries +Y to +Z. The reversed order would give -Y instead.
	r := RotationXYZ(EulerXYZ{RX: math.Pi / 2, RZ: math.Pi / 2})
	vecNear(t, Rotate(r, Vec3{X: 1}), Vec3{Z: 1}, 1e-9)
}
