package frames

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// RotationXYZ builds the 3x3 rotation matrix for intrinsic X-Y-Z Euler
// angles: R = Rx(rx) · Ry(ry) · Rz(rz). Compound rotations do not decompose
// additively, so callers must use the composed matrix rather than applying
// per-axis 2D trig in sequence.
func RotationXYZ(e EulerXYZ) *mat.Dense {
	cx, sx := math.Cos(e.RX), math.Sin(e.RX)
	cy, sy := math.Cos(e.RY), math.Sin(e.RY)
	cz, sz := math.Cos(e.RZ), math.Sin(e.RZ)

	rx := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, cx, -sx,
		0, sx, cx,
	})
	ry := mat.NewDense(3, 3, []float64{
		cy, 0, sy,
		0, 1, 0,
		-sy, 0, cy,
	})
	rz := mat.NewDense(3, 3, []float64{
		cz, -sz, 0,
		sz, cz, 0,
		0, 0, 1,
	})

	var r mat.Dense
	r.Mul(rx, ry)
	r.Mul(&r, rz)
	return &r
}

// Rotate applies the rotation matrix r to v.
func Rotate(r *mat.Dense, v Vec3) Vec3 {
	var out mat.VecDense
	out.MulVec(r, mat.NewVecDense(3, []float64{v.X, v.Y, v.Z}))
	return Vec3{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}
}
