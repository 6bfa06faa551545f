// Package window hosts the dial in a desktop window using Ebitengine.
package window

import (
	"image"
	"image/color"
	"log"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phinze/huedial/internal/angle"
	"github.com/phinze/huedial/internal/config"
	"github.com/phinze/huedial/internal/dial"
	"github.com/phinze/huedial/internal/pointer"
	"golang.org/x/image/draw"
)

// wheelStep is how far one scroll notch turns both handles, in degrees.
const wheelStep = 5

var colorBackground = color.RGBA{30, 30, 30, 255}

// Window is an ebiten.Game that forwards pointer input to a dial controller
// and shows its rendering. Ebitengine calls Update, Draw and Layout from one
// goroutine, so the controller needs no locking here.
type Window struct {
	ctrl *dial.Controller
	cfg  config.WindowConfig

	// Verbose logs drag sessions.
	Verbose bool

	tracker       pointer.Tracker
	width, height int
	dirty         bool
	canvas        *image.RGBA
	frame         *ebiten.Image
	showReadout   bool

	stopCh    chan struct{}
	closeOnce sync.Once
}

// New creates a window host for ctrl.
func New(ctrl *dial.Controller, cfg config.WindowConfig) *Window {
	return &Window{
		ctrl:        ctrl,
		cfg:         cfg,
		dirty:       true,
		showReadout: true,
		stopCh:      make(chan struct{}),
	}
}

// Run opens the window and blocks until it is closed. It must be called from
// the main goroutine on macOS.
func (w *Window) Run() error {
	ebiten.SetWindowSize(w.cfg.Width, w.cfg.Height)
	ebiten.SetWindowTitle(w.cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w.ctrl.SetHost(w)

	err := ebiten.RunGame(w)
	w.ctrl.Cancel()
	return err
}

// Close asks the game loop to stop.
func (w *Window) Close() {
	w.closeOnce.Do(func() { close(w.stopCh) })
}

// RequestRedraw marks the frame stale.
func (w *Window) RequestRedraw() {
	w.dirty = true
}

// RequestRelayout marks the frame stale; Ebitengine re-runs Layout every frame.
func (w *Window) RequestRelayout() {
	w.dirty = true
}

// ReportPreferredSize keeps the window at least as large as the dial wants.
func (w *Window) ReportPreferredSize(width, height int) {
	ebiten.SetWindowSizeLimits(width, height, -1, -1)
}

func (w *Window) Update() error {
	select {
	case <-w.stopCh:
		return ebiten.Termination
	default:
	}

	w.handlePointer()
	w.handleKeys()
	return nil
}

func (w *Window) handlePointer() {
	x, y := ebiten.CursorPosition()
	s := pointer.Sample{
		X:         x,
		Y:         y,
		Primary:   ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Secondary: ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		Focused:   ebiten.IsFocused(),
	}
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		s.Modifiers |= dial.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		s.Modifiers |= dial.ModControl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		s.Modifiers |= dial.ModAlt
	}

	for _, ev := range w.tracker.Step(s) {
		w.ctrl.HandleEvent(ev)
		if !w.Verbose {
			continue
		}
		switch e := ev.(type) {
		case dial.PressEvent:
			log.Printf("Press (%v,%v) button=%d target=%s", e.X, e.Y, e.Button, w.ctrl.Target())
		case dial.ReleaseEvent:
			log.Printf("Release button=%d alpha=%.1f° beta=%.1f°", e.Button, angle.Degrees(w.ctrl.Alpha()), angle.Degrees(w.ctrl.Beta()))
		}
	}

	// Scrolling up turns counterclockwise, matching the angle convention.
	if _, dy := ebiten.Wheel(); dy != 0 && !w.ctrl.Dragging() {
		w.ctrl.Rotate(dy * angle.Radians(wheelStep))
	}
}

func (w *Window) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		w.ctrl.SetClockwise(!w.ctrl.Clockwise())
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		w.ctrl.Reset()
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		w.showReadout = !w.showReadout
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		w.ctrl.SetBorderWidth(w.ctrl.BorderWidth() - 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		w.ctrl.SetBorderWidth(w.ctrl.BorderWidth() + 1)
	}
}

func (w *Window) Draw(screen *ebiten.Image) {
	if w.width <= 0 || w.height <= 0 {
		return
	}

	if w.frame == nil || w.canvas.Bounds().Dx() != w.width || w.canvas.Bounds().Dy() != w.height {
		w.canvas = image.NewRGBA(image.Rect(0, 0, w.width, w.height))
		w.frame = ebiten.NewImage(w.width, w.height)
		w.dirty = true
	}
	if w.dirty {
		draw.Draw(w.canvas, w.canvas.Bounds(), &image.Uniform{colorBackground}, image.Point{}, draw.Src)
		w.ctrl.Render(w.canvas)
		w.frame.WritePixels(w.canvas.Pix)
		w.dirty = false
	}

	screen.DrawImage(w.frame, nil)
	if w.showReadout {
		ebitenutil.DebugPrintAt(screen, strings.Join(w.ctrl.State().Readout(), "\n"), 4, 4)
	}
}

// Layout hands the window size to the controller as its allocation.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != w.width || outsideHeight != w.height {
		w.width, w.height = outsideWidth, outsideHeight
		w.ctrl.HandleEvent(dial.LayoutEvent{Width: outsideWidth, Height: outsideHeight})
	}
	return outsideWidth, outsideHeight
}
