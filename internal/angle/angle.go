// Package angle provides the angle arithmetic shared by hit-testing and rendering.
// All angles are in radians, measured counterclockwise from the positive X axis.
package angle

import "math"

// Turn is one full revolution in radians.
const Turn = 2 * math.Pi

// Handle identifies one of the two markers on the dial.
type Handle uint8

const (
	// Alpha is the first handle.
	Alpha Handle = iota + 1
	// Beta is the second handle.
	Beta
)

// String returns the handle name.
func (h Handle) String() string {
	switch h {
	case Alpha:
		return "alpha"
	case Beta:
		return "beta"
	default:
		return "unknown"
	}
}

// Normalize maps an angle into [0, 2π) with a single correction step.
// Inputs more than one turn out of range are only corrected by one turn.
func Normalize(a float64) float64 {
	if a < 0 {
		return a + Turn
	}
	if a >= Turn {
		return a - Turn
	}
	return a
}

// Atan2 is the four-quadrant arctangent mapped into [0, 2π).
func Atan2(y, x float64) float64 {
	a := math.Atan2(y, x)
	if a < 0 {
		return a + Turn
	}
	return a
}

// Distance returns the shortest unsigned angular distance between a and b,
// both in [0, 2π). The result is the same bit for bit with the arguments
// swapped.
func Distance(a, b float64) float64 {
	d := math.Abs(a - b)
	return math.Min(d, Turn-d)
}

// MinProximity returns how close angle is to the nearer of the two handles.
func MinProximity(alpha, beta, a float64) float64 {
	return math.Min(Distance(alpha, a), Distance(beta, a))
}

// Closest returns the handle nearer to angle. Ties go to Beta.
func Closest(alpha, beta, a float64) Handle {
	if Distance(alpha, a)-Distance(beta, a) < 0 {
		return Alpha
	}
	return Beta
}

// Degrees converts radians to degrees.
func Degrees(a float64) float64 {
	return a * 180 / math.Pi
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}
