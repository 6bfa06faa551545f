// Package pointer turns polled or gesture-level input into the press, motion,
// and release events the dial controller consumes.
package pointer

import (
	"image"

	"github.com/phinze/huedial/internal/dial"
)

// Sample is one frame of polled pointer state in widget-local coordinates.
type Sample struct {
	X, Y      int
	Primary   bool
	Secondary bool
	Modifiers dial.Modifier

	// Focused is false when the host window has lost input focus.
	Focused bool
}

// Tracker diffs consecutive samples. The zero value is ready to use.
type Tracker struct {
	prev Sample
}

// Step returns the events implied by moving from the previous sample to cur.
// Losing focus while the primary button is held is reported as a release so
// the controller never keeps a stuck drag.
func (t *Tracker) Step(cur Sample) []dial.Event {
	prev := t.prev
	if !cur.Focused {
		cur.Primary = false
		cur.Secondary = false
	}

	var events []dial.Event
	moved := cur.X != prev.X || cur.Y != prev.Y

	if cur.Secondary && !prev.Secondary {
		events = append(events, dial.PressEvent{X: float64(cur.X), Y: float64(cur.Y), Button: dial.Button3, Modifiers: cur.Modifiers})
	}

	switch {
	case cur.Primary && !prev.Primary:
		events = append(events, dial.PressEvent{X: float64(cur.X), Y: float64(cur.Y), Button: dial.Button1, Modifiers: cur.Modifiers})
	case cur.Primary && prev.Primary && moved:
		events = append(events, dial.MotionEvent{X: float64(cur.X), Y: float64(cur.Y)})
	case !cur.Primary && prev.Primary:
		if moved && cur.Focused {
			events = append(events, dial.MotionEvent{X: float64(cur.X), Y: float64(cur.Y)})
		}
		events = append(events, dial.ReleaseEvent{Button: dial.Button1})
	}

	if !cur.Secondary && prev.Secondary {
		events = append(events, dial.ReleaseEvent{Button: dial.Button3})
	}

	t.prev = cur
	return events
}

// Swipe expands a gesture from origin to dest into a press, steps evenly
// spaced motions ending at dest, and a release.
func Swipe(origin, dest image.Point, steps int) []dial.Event {
	steps = max(1, steps)
	events := make([]dial.Event, 0, steps+2)
	events = append(events, dial.PressEvent{X: float64(origin.X), Y: float64(origin.Y), Button: dial.Button1})

	dx := float64(dest.X - origin.X)
	dy := float64(dest.Y - origin.Y)
	for i := 1; i <= steps; i++ {
		f := float64(i) / float64(steps)
		events = append(events, dial.MotionEvent{X: float64(origin.X) + dx*f, Y: float64(origin.Y) + dy*f})
	}

	return append(events, dial.ReleaseEvent{Button: dial.Button1})
}

// Tap is a press and release at p.
func Tap(p image.Point) []dial.Event {
	return []dial.Event{
		dial.PressEvent{X: float64(p.X), Y: float64(p.Y), Button: dial.Button1},
		dial.ReleaseEvent{Button: dial.Button1},
	}
}
