package coord

import "math"

const twoPi = 2 * math.Pi

// ReduceAngle reduces an angle, in radians, into a bounded range.
//
// Angles whose magnitude is at least 2π are first reduced by the largest
// multiple of 2π below them, using floor division so that negative angles end
// up in [0, 2π) as well. Smaller angles are left alone, which means the result
// of this first step lies in (-2π, 2π).
//
// If center is set, the result is then folded into [-π, π]. If forcePositive
// is set, negative results are shifted by 2π, giving [0, 2π).
func ReduceAngle(angle float64, center, forcePositive bool) float64 {
	if angle == 0 {
		return 0
	}
	if math.Abs(angle) >= twoPi {
		angle -= math.Floor(angle/twoPi) * twoPi
		if angle >= twoPi {
			// Rounding of the floor product.
			angle = 0
		}
	}
	if center {
		if angle > math.Pi {
			angle -= twoPi
		} else if angle < -math.Pi {
			angle += twoPi
		}
	}
	if forcePositive && angle < 0 {
		angle += twoPi
		if angle >= twoPi {
			angle = 0
		}
	}
	return angle
}

// ReduceAngles applies [ReduceAngle] to every element of angles and returns the
// results in a new slice of the same length.
func ReduceAngles(angles []float64, center, forcePositive bool) []float64 {
	out := make([]float64, len(angles))
	for i, a := range angles {
		out[i] = ReduceAngle(a, center, forcePositive)
	}
	return out
}
