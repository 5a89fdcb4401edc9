// Package units provides shared conversion constants for the length and
// angle units used across the simulation core.
//
// Manufacturing data (toolpaths, part dimensions) is in millimetres; the
// visualisation scene and robot cell are in metres; joint angles are in
// radians throughout, with degrees appearing only at UI boundaries.
package units

import "math"

// Unit conversion constants
const (
	MillimetresPerMetre = 1000.0
	DegreesPerRadian    = 180.0 / math.Pi
)

// MillimetresToMetres converts a length in millimetres to metres.
func MillimetresToMetres(mm float64) float64 {
	return mm / MillimetresPerMetre
}

// MetresToMillimetres converts a length in metres to millimetres.
func MetresToMillimetres(m float64) float64 {
	return m * MillimetresPerMetre
}

// DegreesToRadians converts an angle in degrees to radians.
func DegreesToRadians(deg float64) float64 {
	return deg / DegreesPerRadian
}

// RadiansToDegrees converts an angle in radians to degrees.
func RadiansToDegrees(rad float64) float64 {
	return rad * DegreesPerRadian
}
