package core

import "math"

// Round2 rounds to 2 decimal places, half away from zero.
// math.Round alone is not enough: the half-step must be applied in the
// scaled domain so exact .005 boundaries round outward, never to even.
func Round2(x float64) float64 {
	return math.Trunc(x*100+math.Copysign(0.5, x)) / 100
}
