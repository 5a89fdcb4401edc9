// Package part computes placement geometry for imported parts, keeping a
// rotated part resting on the build plate.
package part

import (
	"github.com/addcomposites/openaxis/internal/frames"
)

// RestOffset returns the vertical shift (mm) that keeps a rotated part's
// lowest point on the build plate.
//
// The part's axis-aligned bounding box is centred on X/Z and based at Y=0
// in its local frame; dims are the box extents in mm. The rotation is
// applied as a composed intrinsic-XYZ rotation matrix to all eight corners
// and the offset is -min(corner.Y): how far the lowest rotated corner
// dipped below the plate. Zero rotation yields 0.
func RestOffset(dims frames.Vec3, rot frames.EulerXYZ) float64 {
	if rot.IsZero() {
		return 0
	}

	r := frames.RotationXYZ(rot)

	halfX := dims.X / 2
	halfZ := dims.Z / 2
	minY := 0.0
	first := true
	for _, x := range [2]float64{-halfX, halfX} {
		for _, y := range [2]float64{0, dims.Y} {
			for _, z := range [2]float64{-halfZ, halfZ} {
				corner := frames.Rotate(r, frames.Vec3{X: x, Y: y, Z: z})
				if first || corner.Y < minY {
					minY = corner.Y
					first = false
				}
			}
		}
	}
	return -minY
}
