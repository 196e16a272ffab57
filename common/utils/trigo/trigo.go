package trigo

import "math"

// FullCircleAngleToSignedHalfCircleAngle converts an angle in [0, 2π)
// to the equivalent angle in [-π, π].
func FullCircleAngleToSignedHalfCircleAngle(rad float64) float64 {
	if rad > math.Pi {
		return rad - 2*math.Pi
	}

	return rad
}
