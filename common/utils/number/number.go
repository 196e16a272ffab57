package number

import "math"

func DegreeToRadian(degree float64) float64 {
	return degree * math.Pi / 180.0
}

func Clamp(val float64, min float64, max float64) float64 {
	if val < min {
		return min
	}

	if val > max {
		return max
	}

	return val
}
