package deck

import (
	"image"
	"log"

	"github.com/phinze/huedial/internal/angle"
	"github.com/phinze/huedial/internal/device"
	"github.com/phinze/huedial/internal/dial"
	"github.com/phinze/huedial/internal/pointer"
)

// swipeSteps is how many motion events a strip swipe is expanded into. The
// strip only reports endpoints, so the path between them is interpolated.
const swipeSteps = 12

func (d *Deck) setupEventHandlers() error {
	handlers := []error{
		d.dev.AddKeyHandler(KeyDirection, func(device.Device, device.Key) error {
			d.mu.Lock()
			defer d.mu.Unlock()
			d.ctrl.SetClockwise(!d.ctrl.Clockwise())
			return nil
		}),
		d.dev.AddKeyHandler(KeyReset, func(device.Device, device.Key) error {
			d.mu.Lock()
			defer d.mu.Unlock()
			d.ctrl.Reset()
			return nil
		}),
		d.dev.AddTouchStripSwipeHandler(func(_ device.Device, origin, dest image.Point) error {
			d.handleSwipe(origin, dest)
			return nil
		}),
		d.dev.AddTouchStripTouchHandler(func(_ device.Device, t device.TouchStripTouchType, p image.Point) error {
			d.handleTouch(t, p)
			return nil
		}),
	}
	for _, id := range device.Dials {
		handlers = append(handlers,
			d.dev.AddDialRotateHandler(id, func(_ device.Device, di device.Dial, delta int8) error {
				d.handleRotate(di.GetID(), delta)
				return nil
			}),
			d.dev.AddDialSwitchHandler(id, func(_ device.Device, di device.Dial) error {
				d.handleDialPress(di.GetID())
				return nil
			}),
		)
	}

	for _, err := range handlers {
		if err != nil {
			return err
		}
	}
	return nil
}

// handleSwipe replays a swipe that starts on the dial as a drag. The end point
// may lie anywhere on the strip.
func (d *Deck) handleSwipe(origin, dest image.Point) {
	if !origin.In(d.region) {
		return
	}
	d.feed(pointer.Swipe(origin.Sub(d.region.Min), dest.Sub(d.region.Min), swipeSteps))
}

// handleTouch treats a short tap as a click on the dial and a long tap as a reset.
func (d *Deck) handleTouch(t device.TouchStripTouchType, p image.Point) {
	if !p.In(d.region) {
		return
	}
	if t == device.TouchLong {
		d.mu.Lock()
		d.ctrl.Reset()
		d.mu.Unlock()
		return
	}
	d.feed(pointer.Tap(p.Sub(d.region.Min)))
}

// handleRotate maps knob detents to handle motion. Dial 1 turns both handles,
// dials 2 and 3 turn alpha and beta alone, and dial 4 adjusts the border.
// Positive deltas are clockwise, which decreases the angle.
func (d *Deck) handleRotate(id device.DialID, delta int8) {
	step := -float64(delta) * angle.Radians(d.cfg.RotateStep)

	d.mu.Lock()
	defer d.mu.Unlock()
	switch id {
	case device.Dial1:
		d.ctrl.Rotate(step)
	case device.Dial2:
		d.ctrl.SetAlpha(d.ctrl.Alpha() + step)
	case device.Dial3:
		d.ctrl.SetBeta(d.ctrl.Beta() + step)
	case device.Dial4:
		d.ctrl.SetBorderWidth(d.ctrl.BorderWidth() + int(delta))
	}
}

// handleDialPress on dial 1 flips the sweep direction.
func (d *Deck) handleDialPress(id device.DialID) {
	if id != device.Dial1 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ctrl.SetClockwise(!d.ctrl.Clockwise())
}

func (d *Deck) feed(events []dial.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, ev := range events {
		d.ctrl.HandleEvent(ev)
		if !d.Verbose {
			continue
		}
		switch ev.(type) {
		case dial.PressEvent:
			log.Printf("Drag start: target=%s", d.ctrl.Target())
		case dial.ReleaseEvent:
			log.Printf("Drag end: alpha=%.1f° beta=%.1f°", angle.Degrees(d.ctrl.Alpha()), angle.Degrees(d.ctrl.Beta()))
		}
	}
}
