// Package dial provides the dual-handle dial controller. It owns the handle
// angles and drives hit-testing and rendering on behalf of a host toolkit.
//
// A Controller is not safe for concurrent use; hosts deliver events and
// render calls from a single goroutine.
package dial

import (
	"fmt"
	"image"
	"math"

	"github.com/phinze/huedial/internal/angle"
	"github.com/phinze/huedial/internal/hittest"
	"github.com/phinze/huedial/internal/overlay"
	"github.com/phinze/huedial/internal/wheel"
	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// MaxBorderWidth is the largest accepted border width in pixels.
	MaxBorderWidth = 64

	// DefaultAlpha and DefaultBeta are the initial handle angles.
	DefaultAlpha = 0.0
	DefaultBeta  = math.Pi

	// naturalDiameter is the disk diameter reported in the size hint.
	naturalDiameter = 96
)

// Host is the toolkit side of the controller: it receives redraw, relayout,
// and size-hint requests.
type Host interface {
	RequestRedraw()
	RequestRelayout()
	ReportPreferredSize(width, height int)
}

// NopHost ignores all requests.
type NopHost struct{}

func (NopHost) RequestRedraw()               {}
func (NopHost) RequestRelayout()             {}
func (NopHost) ReportPreferredSize(_, _ int) {}

// Widget is the capability set a host adapter binds to.
type Widget interface {
	HandleEvent(ev Event)
	Render(dst draw.Image)
	PreferredSize() (width, height int)
}

// State is a snapshot of the controller.
type State struct {
	Alpha       float64
	Beta        float64
	Clockwise   bool
	BorderWidth int

	// Width and Height are the last allocation received from the host.
	Width, Height int
}

// Layout is the disk placement derived from one allocation snapshot.
type Layout struct {
	// Size is the disk diameter.
	Size int
	// Disk is the disk's bounding square in widget coordinates.
	Disk image.Rectangle
	// Center is the pointer reference point for hit-testing.
	Center r2.Vec
}

// Readout describes the state for display: both handles in whole degrees and
// the sweep direction. It is plain ASCII so bitmap fonts can draw it.
func (s State) Readout() []string {
	dir := "ccw"
	if s.Clockwise {
		dir = "cw"
	}
	return []string{
		fmt.Sprintf("alpha %3d deg", wholeDegrees(s.Alpha)),
		fmt.Sprintf("beta  %3d deg", wholeDegrees(s.Beta)),
		"sweep " + dir,
	}
}

func wholeDegrees(a float64) int {
	return int(math.Round(angle.Degrees(a))) % 360
}

// Layout computes the disk placement for the state's allocation and border.
func (s State) Layout() Layout {
	size := min(s.Width, s.Height) - 2*s.BorderWidth
	x := (s.Width - 2*s.BorderWidth - size) / 2
	y := (s.Height - 2*s.BorderWidth - size) / 2
	corner := image.Pt(s.BorderWidth+x, s.BorderWidth+y)

	l := Layout{
		Size:   size,
		Center: r2.Vec{X: float64(s.Width) / 2, Y: float64(s.Height) / 2},
	}
	if size > 0 {
		l.Disk = image.Rectangle{Min: corner, Max: corner.Add(image.Pt(size, size))}
	}
	return l
}

// Controller owns the dial state and the active drag session.
type Controller struct {
	state   State
	session *hittest.Session
	host    Host

	background wheel.ColorFunc

	// Rendered wheel for the current disk size.
	cached     *image.RGBA
	cachedSize int
}

// Option configures a Controller.
type Option func(*Controller)

// WithHost sets the host that receives redraw and relayout requests.
func WithHost(h Host) Option {
	return func(c *Controller) { c.host = h }
}

// WithBackground sets the wheel color strategy.
func WithBackground(fn wheel.ColorFunc) Option {
	return func(c *Controller) { c.background = fn }
}

// New creates a Controller with the default angles and no border.
func New(opts ...Option) *Controller {
	c := &Controller{
		state:      State{Alpha: DefaultAlpha, Beta: DefaultBeta},
		host:       NopHost{},
		background: wheel.HSV,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetHost replaces the host and sends it the current size hint.
func (c *Controller) SetHost(h Host) {
	if h == nil {
		h = NopHost{}
	}
	c.host = h
	c.host.ReportPreferredSize(c.PreferredSize())
}

// State returns a snapshot of the controller state.
func (c *Controller) State() State {
	return c.state
}

// Alpha returns the first handle angle.
func (c *Controller) Alpha() float64 { return c.state.Alpha }

// Beta returns the second handle angle.
func (c *Controller) Beta() float64 { return c.state.Beta }

// Clockwise returns the arc sweep direction.
func (c *Controller) Clockwise() bool { return c.state.Clockwise }

// BorderWidth returns the padding around the disk.
func (c *Controller) BorderWidth() int { return c.state.BorderWidth }

// SetAlpha moves the first handle.
func (c *Controller) SetAlpha(a float64) {
	if c.assignAlpha(a) {
		c.host.RequestRedraw()
	}
}

// SetBeta moves the second handle.
func (c *Controller) SetBeta(b float64) {
	if c.assignBeta(b) {
		c.host.RequestRedraw()
	}
}

// SetClockwise sets the arc sweep direction.
func (c *Controller) SetClockwise(cw bool) {
	if c.state.Clockwise == cw {
		return
	}
	c.state.Clockwise = cw
	c.host.RequestRedraw()
}

// SetBorderWidth sets the padding around the disk, clamped to [0, MaxBorderWidth].
func (c *Controller) SetBorderWidth(w int) {
	w = max(0, min(w, MaxBorderWidth))
	if c.state.BorderWidth == w {
		return
	}
	c.state.BorderWidth = w
	c.host.ReportPreferredSize(c.PreferredSize())
	c.host.RequestRelayout()
	c.host.RequestRedraw()
}

// SetBackground replaces the wheel color strategy.
func (c *Controller) SetBackground(fn wheel.ColorFunc) {
	if fn == nil {
		fn = wheel.HSV
	}
	c.background = fn
	c.cached = nil
	c.host.RequestRedraw()
}

// Rotate turns both handles by delta radians, keeping their separation.
func (c *Controller) Rotate(delta float64) {
	c.setAngles(hittest.Angles{Alpha: c.state.Alpha, Beta: c.state.Beta}.Rotate(delta))
}

// Reset puts both handles back at their default angles.
func (c *Controller) Reset() {
	c.setAngles(hittest.Angles{Alpha: DefaultAlpha, Beta: DefaultBeta})
}

// PreferredSize returns the natural size: a 96 pixel disk plus the border.
func (c *Controller) PreferredSize() (width, height int) {
	n := 2*c.state.BorderWidth + naturalDiameter
	return n, n
}

// Dragging reports whether a drag session is active.
func (c *Controller) Dragging() bool {
	return c.session != nil
}

// Target returns what the active drag moves, or zero when not dragging.
func (c *Controller) Target() hittest.Target {
	if c.session == nil {
		return 0
	}
	return c.session.Target
}

// HandleEvent dispatches a host event.
func (c *Controller) HandleEvent(ev Event) {
	switch e := ev.(type) {
	case PressEvent:
		c.HandlePress(e)
	case MotionEvent:
		c.HandleMotion(e)
	case ReleaseEvent:
		c.HandleRelease(e)
	case LayoutEvent:
		c.HandleLayout(e)
	}
}

// HandlePress starts a drag session for a primary-button press. Context-menu
// gestures and other buttons start nothing.
func (c *Controller) HandlePress(e PressEvent) {
	if e.triggersContextMenu() || e.Button != Button1 {
		return
	}

	l := c.state.Layout()
	s, angles := hittest.Press(
		hittest.Geometry{Center: l.Center, Size: l.Size},
		hittest.Angles{Alpha: c.state.Alpha, Beta: c.state.Beta},
		r2.Vec{X: e.X, Y: e.Y},
	)
	s.Modifiers = uint32(e.Modifiers)
	c.session = s
	c.setAngles(angles)
}

// HandleMotion updates the grabbed handles. Motion outside a drag is ignored.
func (c *Controller) HandleMotion(e MotionEvent) {
	if c.session == nil {
		return
	}

	l := c.state.Layout()
	angles, changed := c.session.Motion(
		hittest.Geometry{Center: l.Center, Size: l.Size},
		hittest.Angles{Alpha: c.state.Alpha, Beta: c.state.Beta},
		r2.Vec{X: e.X, Y: e.Y},
	)
	if changed {
		c.setAngles(angles)
	}
}

// HandleRelease ends the drag session when the primary button is released.
func (c *Controller) HandleRelease(e ReleaseEvent) {
	if e.Button == Button1 {
		c.session = nil
	}
}

// Cancel ends any drag session. Hosts call this when they lose pointer capture.
func (c *Controller) Cancel() {
	c.session = nil
}

// HandleLayout records a new allocation.
func (c *Controller) HandleLayout(e LayoutEvent) {
	if c.state.Width == e.Width && c.state.Height == e.Height {
		return
	}
	c.state.Width, c.state.Height = e.Width, e.Height
	c.host.RequestRedraw()
}

// Render paints the wheel and overlay into dst, whose bounds are taken as the
// widget allocation origin. A degenerate allocation draws nothing.
func (c *Controller) Render(dst draw.Image) {
	st := c.state
	l := st.Layout()
	if l.Size <= 0 {
		return
	}

	origin := dst.Bounds().Min
	disk := l.Disk.Add(origin)
	draw.Draw(dst, disk, c.wheelImage(l.Size), image.Point{}, draw.Over)
	overlay.Render(dst, disk.Min, l.Size, st.Alpha, st.Beta, st.Clockwise)
}

func (c *Controller) wheelImage(size int) *image.RGBA {
	if c.cached == nil || c.cachedSize != size {
		c.cached = wheel.Render(size, c.background)
		c.cachedSize = size
	}
	return c.cached
}

func (c *Controller) setAngles(a hittest.Angles) {
	changed := c.assignAlpha(a.Alpha)
	changed = c.assignBeta(a.Beta) || changed
	if changed {
		c.host.RequestRedraw()
	}
}

func (c *Controller) assignAlpha(a float64) bool {
	a = angle.Normalize(a)
	if c.state.Alpha == a {
		return false
	}
	c.state.Alpha = a
	return true
}

func (c *Controller) assignBeta(b float64) bool {
	b = angle.Normalize(b)
	if c.state.Beta == b {
		return false
	}
	c.state.Beta = b
	return true
}
