// Package deck hosts the dial on a Stream Deck Plus: the touch strip shows and
// drives the dial, the knobs rotate the handles, and two keys toggle the sweep
// direction and reset the handles.
package deck

import (
	"context"
	"errors"
	"image"
	"log"
	"sync"
	"time"

	"github.com/phinze/huedial/internal/config"
	"github.com/phinze/huedial/internal/device"
	"github.com/phinze/huedial/internal/dial"
)

// ErrNoStrip is returned when the connected device has no touch strip.
var ErrNoStrip = errors.New("device has no touch strip")

// Keys used by the host.
const (
	KeyDirection = device.Key1
	KeyReset     = device.Key2
)

// frameInterval bounds how often the strip is repainted.
const frameInterval = 33 * time.Millisecond

// Deck routes device input to a dial controller and paints its output. The
// device invokes handlers on its own goroutines, so every controller access
// happens under mu.
type Deck struct {
	dev device.Device
	cfg config.DeckConfig

	// Verbose logs drag sessions.
	Verbose bool

	mu   sync.Mutex
	ctrl *dial.Controller

	stripRect image.Rectangle
	region    image.Rectangle
	keyRect   image.Rectangle
	preferred image.Point

	// Key icons are repainted only when the direction changes.
	keysPainted   bool
	keysClockwise bool

	redraw chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Deck that drives ctrl from dev.
func New(dev device.Device, ctrl *dial.Controller, cfg config.DeckConfig) *Deck {
	return &Deck{
		dev:    dev,
		cfg:    cfg,
		ctrl:   ctrl,
		redraw: make(chan struct{}, 1),
	}
}

// Region returns the dial's square on the touch strip.
func (d *Deck) Region() image.Rectangle {
	return d.region
}

// Prepare configures the device, sizes the dial to the strip height, and
// registers input handlers. Start calls it; it is exported for hosts that run
// their own event loop.
func (d *Deck) Prepare() error {
	if !d.dev.GetTouchStripSupported() {
		return ErrNoStrip
	}
	rect, err := d.dev.GetTouchStripImageRectangle()
	if err != nil {
		return err
	}
	d.stripRect = rect

	side := min(rect.Dx(), rect.Dy())
	x := max(0, min(d.cfg.StripX, rect.Dx()-side))
	d.region = image.Rect(x, 0, x+side, side).Add(rect.Min)

	d.keyRect, err = d.dev.GetKeyImageRectangle()
	if err != nil {
		d.keyRect = image.Rect(0, 0, 72, 72)
	}

	if err := d.dev.SetBrightness(byte(d.cfg.Brightness)); err != nil {
		log.Printf("Setting brightness: %v", err)
	}
	d.dev.ForEachKey(func(key device.KeyID) error {
		return d.dev.ClearKey(key)
	})

	d.mu.Lock()
	d.ctrl.SetHost(d)
	d.ctrl.HandleEvent(dial.LayoutEvent{Width: side, Height: side})
	if d.preferred.Y > side {
		log.Printf("Dial prefers %dx%d, strip allows %dx%d", d.preferred.X, d.preferred.Y, side, side)
	}
	d.mu.Unlock()

	return d.setupEventHandlers()
}

// Start prepares the device and runs the event and paint loops until ctx is
// done or the device disconnects.
func (d *Deck) Start(ctx context.Context) error {
	d.ctx, d.cancel = context.WithCancel(ctx)

	if err := d.Prepare(); err != nil {
		return err
	}

	listenErr := make(chan error, 1)
	go func() {
		if err := d.dev.Listen(nil); err != nil {
			listenErr <- err
		}
		close(listenErr)
	}()

	d.wg.Add(1)
	go d.paintLoop()

	select {
	case <-d.ctx.Done():
		return nil
	case err := <-listenErr:
		return err
	}
}

// Stop ends the paint loop, waits for it, and drops any drag in flight.
func (d *Deck) Stop() {
	if d.cancel != nil {
		d.cancel()
	}
	d.wg.Wait()

	d.mu.Lock()
	d.ctrl.Cancel()
	d.mu.Unlock()
}

// RequestRedraw schedules a repaint. It never blocks.
func (d *Deck) RequestRedraw() {
	select {
	case d.redraw <- struct{}{}:
	default:
	}
}

// RequestRelayout repaints; the strip allocation never changes size.
func (d *Deck) RequestRelayout() {
	d.RequestRedraw()
}

// ReportPreferredSize records the controller's size hint. The disk shrinks to
// fit when the hint exceeds the strip height.
func (d *Deck) ReportPreferredSize(width, height int) {
	d.preferred = image.Pt(width, height)
}

func (d *Deck) paintLoop() {
	defer d.wg.Done()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	d.paint()

	pending := false
	for {
		select {
		case <-d.ctx.Done():
			return
		case <-d.redraw:
			pending = true
		case <-ticker.C:
			if pending {
				d.paint()
				pending = false
			}
		}
	}
}

// paint renders under the lock and pushes images to the device outside it.
func (d *Deck) paint() {
	d.mu.Lock()
	strip := d.renderStrip()
	cw := d.ctrl.Clockwise()
	var keys map[device.KeyID]image.Image
	if !d.keysPainted || d.keysClockwise != cw {
		keys = d.renderKeys(cw)
		d.keysPainted, d.keysClockwise = true, cw
	}
	d.mu.Unlock()

	if err := d.dev.SetTouchStripImage(strip); err != nil {
		log.Printf("Setting strip image: %v", err)
	}
	for key, img := range keys {
		if err := d.dev.SetKeyImage(key, img); err != nil {
			log.Printf("Setting key %d image: %v", key, err)
		}
	}
}
