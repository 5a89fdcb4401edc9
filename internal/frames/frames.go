// Package frames is the single home for conversions between the three
// coordinate conventions the system straddles:
//
//   - Manufacturing frame: Z-up, millimetres. Native to slicer/toolpath data.
//   - Scene frame: Y-up, metres. Native to the 3D visualisation.
//   - Robot-base frame: Z-up, metres, relative to the robot mount point.
//
// The axis permutations below used to be duplicated inline at call sites,
// which is exactly how the historical sign-flip bugs got in. Every caller
// must go through this package; the signs are pinned by regression tests.
package frames

import (
	"github.com/addcomposites/openaxis/internal/units"
)

// Vec3 is a three-component vector. The frame and unit of a Vec3 are
// determined by context; functions in this package name both explicitly.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns the component-wise sum v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns the component-wise difference v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// EulerXYZ is a rotation expressed as intrinsic X-Y-Z Euler angles in
// radians, matching the convention of the geometry editor.
type EulerXYZ struct {
	RX float64 `json:"rx"`
	RY float64 `json:"ry"`
	RZ float64 `json:"rz"`
}

// IsZero reports whether all three angles are exactly zero.
func (e EulerXYZ) IsZero() bool {
	return e.RX == 0 && e.RY == 0 && e.RZ == 0
}

// ToScene converts a manufacturing-frame point (Z-up, mm) to a scene-frame
// point (Y-up, m). Manufacturing height (Z) becomes scene up (Y);
// manufacturing depth (Y) becomes negative scene depth (Z). The negative
// sign on the third axis is load-bearing: see the coordinate-chain tests.
func ToScene(p Vec3) Vec3 {
	return Vec3{
		X: units.MillimetresToMetres(p.X),
		Y: units.MillimetresToMetres(p.Z),
		Z: -units.MillimetresToMetres(p.Y),
	}
}

// sceneToRobot applies the scene→robot axis permutation (x, y, z) → (x, -z, y).
// This is the algebraic inverse of the robot model's fixed scene placement
// (a -90° rotation about scene X) and must stay consistent with it.
func sceneToRobot(p Vec3) Vec3 {
	return Vec3{X: p.X, Y: -p.Z, Z: p.Y}
}

// ToRobotFrame converts a manufacturing-frame point (Z-up, mm) to the
// robot-base frame (Z-up, m). buildPlateOrigin and robotBase are scene-frame
// positions (m) of the build plate origin and the robot mount point.
//
// Composition: project into the scene at the build plate, subtract the robot
// base, then undo the robot's scene placement rotation. A sign error in the
// final permutation silently displaces every simulated TCP by the part's
// full dimension, so keep this in lockstep with sceneToRobot's doc comment.
func ToRobotFrame(p, buildPlateOrigin, robotBase Vec3) Vec3 {
	scene := ToScene(p).Add(buildPlateOrigin)
	return sceneToRobot(scene.Sub(robotBase))
}
