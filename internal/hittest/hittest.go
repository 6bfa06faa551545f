// Package hittest decides which dial handle a pointer press grabs and how
// subsequent pointer motion moves the handles.
package hittest

import (
	"math"

	"github.com/phinze/huedial/internal/angle"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// InnerRing is the fraction of the disk radius inside which a press always
	// grabs both handles.
	InnerRing = 0.3

	// GrabAngle is how close (in radians) a press must land to a handle to grab it.
	GrabAngle = math.Pi / 12
)

// Target says which handles follow pointer motion during a drag.
type Target uint8

const (
	// TargetAlpha moves only the alpha handle.
	TargetAlpha Target = iota + 1
	// TargetBeta moves only the beta handle.
	TargetBeta
	// TargetBoth rotates both handles, keeping their separation.
	TargetBoth
)

// String returns the target name.
func (t Target) String() string {
	switch t {
	case TargetAlpha:
		return "alpha"
	case TargetBeta:
		return "beta"
	case TargetBoth:
		return "both"
	default:
		return "none"
	}
}

// Session is the transient per-drag state, created on press and dropped on release.
type Session struct {
	Target    Target
	LastAngle float64

	// Modifiers is the modifier state reported with the press.
	Modifiers uint32
}

// Geometry describes the dial as seen by the pointer.
type Geometry struct {
	// Center is the dial center in widget-local coordinates.
	Center r2.Vec
	// Size is the disk diameter in pixels.
	Size int
}

// PointerAngle returns the angle of p around the center. Screen Y grows
// downward, so it is inverted to get a counterclockwise angle.
func (g Geometry) PointerAngle(p r2.Vec) float64 {
	return angle.Atan2(g.Center.Y-p.Y, p.X-g.Center.X)
}

// Angles holds the two handle positions.
type Angles struct {
	Alpha float64
	Beta  float64
}

// Press starts a drag session for a press at p. When the press lands outside
// the inner ring and within GrabAngle of a handle, that handle is grabbed and
// snapped to the press angle; otherwise both handles are grabbed.
func Press(g Geometry, cur Angles, p r2.Vec) (*Session, Angles) {
	pressAngle := g.PointerAngle(p)
	s := &Session{LastAngle: pressAngle, Target: TargetBoth}

	radial := r2.Norm(r2.Sub(p, g.Center))
	if radial > float64(g.Size)/2*InnerRing && angle.MinProximity(cur.Alpha, cur.Beta, pressAngle) < GrabAngle {
		switch angle.Closest(cur.Alpha, cur.Beta, pressAngle) {
		case angle.Alpha:
			s.Target = TargetAlpha
			cur.Alpha = pressAngle
		case angle.Beta:
			s.Target = TargetBeta
			cur.Beta = pressAngle
		}
	}

	return s, cur
}

// Motion applies pointer motion to p. It reports whether the angles changed;
// a motion that lands on the previous angle changes nothing.
func (s *Session) Motion(g Geometry, cur Angles, p r2.Vec) (Angles, bool) {
	motionAngle := g.PointerAngle(p)

	// Raw difference: near the 0/2π seam this can approach a full turn.
	delta := motionAngle - s.LastAngle
	s.LastAngle = motionAngle

	if delta == 0 {
		return cur, false
	}

	switch s.Target {
	case TargetAlpha:
		cur.Alpha = motionAngle
	case TargetBeta:
		cur.Beta = motionAngle
	case TargetBoth:
		cur = cur.Rotate(delta)
	}
	return cur, true
}

// Rotate turns both handles by delta radians.
func (a Angles) Rotate(delta float64) Angles {
	return Angles{
		Alpha: angle.Normalize(a.Alpha + delta),
		Beta:  angle.Normalize(a.Beta + delta),
	}
}
