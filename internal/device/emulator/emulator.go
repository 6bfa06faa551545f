// Package emulator provides a windowed Stream Deck Plus stand-in so the deck
// host can run without hardware.
package emulator

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phinze/huedial/internal/device"
	"golang.org/x/image/draw"
)

// Stream Deck Plus geometry at native resolution.
const (
	keySize     = 72
	keyCount    = 8
	keysPerRow  = 4
	dialCount   = 4
	dialSize    = 96
	stripWidth  = 800
	stripHeight = 100

	margin     = 20
	header     = 24
	keyGap     = (stripWidth - keysPerRow*keySize) / (keysPerRow + 1)
	keysHeight = 2*keySize + keyGap
	dialGap    = (stripWidth - dialCount*dialSize) / (dialCount + 1)

	keysY  = header + margin
	stripY = keysY + keysHeight + margin
	dialsY = stripY + stripHeight + margin

	windowWidth  = stripWidth + 2*margin
	windowHeight = dialsY + dialSize + margin + 16

	// tapRadius is how far a strip press may travel and still count as a tap.
	tapRadius = 20
	longTap   = 500 * time.Millisecond
)

var (
	colorWindow = color.RGBA{30, 30, 30, 255}
	colorFrame  = color.RGBA{60, 60, 60, 255}
	colorDial   = color.RGBA{80, 80, 80, 255}
)

var errClosed = errors.New("emulator: device is not open")

var _ device.Device = (*Emulator)(nil)

// Emulator implements device.Device with an Ebitengine window.
type Emulator struct {
	mu sync.RWMutex

	open       bool
	brightness byte
	keyImages  [keyCount]*image.RGBA
	stripImage *image.RGBA

	keyHandlers    [keyCount][]device.KeyHandler
	rotateHandlers [dialCount][]device.DialRotateHandler
	switchHandlers [dialCount][]device.DialSwitchHandler
	touchHandlers  []device.TouchStripTouchHandler
	swipeHandlers  []device.TouchStripSwipeHandler

	stopCh     chan struct{}
	listenDone chan struct{}
	errCh      chan error

	// Strip gesture in progress, owned by the game loop.
	dragging   bool
	dragStart  image.Point
	dragBegan  time.Time
	stripFrame *ebiten.Image
}

// New creates a closed emulator.
func New() *Emulator {
	e := &Emulator{
		brightness: 100,
		stripImage: image.NewRGBA(image.Rect(0, 0, stripWidth, stripHeight)),
		listenDone: make(chan struct{}),
	}
	for i := range e.keyImages {
		e.keyImages[i] = image.NewRGBA(image.Rect(0, 0, keySize, keySize))
	}
	return e
}

func (e *Emulator) Open() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.open {
		return errors.New("emulator: device is already open")
	}
	e.open = true
	e.stopCh = make(chan struct{})
	return nil
}

func (e *Emulator) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.open {
		return errClosed
	}
	e.open = false
	close(e.stopCh)
	return nil
}

func (e *Emulator) IsOpen() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.open
}

func (e *Emulator) GetModelName() string         { return "Stream Deck Plus (Emulator)" }
func (e *Emulator) GetTouchStripSupported() bool { return true }

func (e *Emulator) GetKeyImageRectangle() (image.Rectangle, error) {
	return image.Rect(0, 0, keySize, keySize), nil
}

func (e *Emulator) GetTouchStripImageRectangle() (image.Rectangle, error) {
	return image.Rect(0, 0, stripWidth, stripHeight), nil
}

func (e *Emulator) SetBrightness(perc byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.brightness = min(perc, 100)
	return nil
}

func (e *Emulator) SetKeyImage(key device.KeyID, img image.Image) error {
	idx, err := keyIndex(key)
	if err != nil {
		return err
	}
	rgba := image.NewRGBA(image.Rect(0, 0, keySize, keySize))
	draw.ApproxBiLinear.Scale(rgba, rgba.Bounds(), img, img.Bounds(), draw.Src, nil)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.keyImages[idx] = rgba
	return nil
}

func (e *Emulator) SetTouchStripImage(img image.Image) error {
	rgba := image.NewRGBA(image.Rect(0, 0, stripWidth, stripHeight))
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.stripImage = rgba
	return nil
}

func (e *Emulator) ClearKey(key device.KeyID) error {
	idx, err := keyIndex(key)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.keyImages[idx] = image.NewRGBA(image.Rect(0, 0, keySize, keySize))
	return nil
}

func (e *Emulator) ForEachKey(cb func(device.KeyID) error) error {
	for k := device.Key1; k <= device.Key8; k++ {
		if err := cb(k); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emulator) AddKeyHandler(key device.KeyID, fn device.KeyHandler) error {
	idx, err := keyIndex(key)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.keyHandlers[idx] = append(e.keyHandlers[idx], fn)
	return nil
}

func (e *Emulator) AddDialRotateHandler(id device.DialID, fn device.DialRotateHandler) error {
	idx, err := dialIndex(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rotateHandlers[idx] = append(e.rotateHandlers[idx], fn)
	return nil
}

func (e *Emulator) AddDialSwitchHandler(id device.DialID, fn device.DialSwitchHandler) error {
	idx, err := dialIndex(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.switchHandlers[idx] = append(e.switchHandlers[idx], fn)
	return nil
}

func (e *Emulator) AddTouchStripTouchHandler(fn device.TouchStripTouchHandler) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.touchHandlers = append(e.touchHandlers, fn)
	return nil
}

func (e *Emulator) AddTouchStripSwipeHandler(fn device.TouchStripSwipeHandler) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.swipeHandlers = append(e.swipeHandlers, fn)
	return nil
}

// Listen blocks until the window closes. Handler errors go to errCh.
func (e *Emulator) Listen(errCh chan error) error {
	e.mu.Lock()
	if !e.open {
		e.mu.Unlock()
		return errClosed
	}
	e.errCh = errCh
	e.mu.Unlock()

	<-e.listenDone
	return nil
}

// RunGUI runs the window on the calling goroutine, which must be the main
// goroutine on macOS, until it is closed.
func (e *Emulator) RunGUI() error {
	if !e.IsOpen() {
		return errClosed
	}
	defer close(e.listenDone)

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("huedial: Stream Deck Plus emulator")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	return ebiten.RunGame(e)
}

func (e *Emulator) Update() error {
	select {
	case <-e.stopCh:
		return ebiten.Termination
	default:
	}
	e.handleInput()
	return nil
}

func (e *Emulator) Layout(_, _ int) (int, int) {
	return windowWidth, windowHeight
}

func (e *Emulator) Draw(screen *ebiten.Image) {
	screen.Fill(colorWindow)
	ebitenutil.DebugPrintAt(screen, "Stream Deck Plus emulator", margin, 6)

	e.mu.RLock()
	defer e.mu.RUnlock()
	dim := float32(e.brightness) / 100

	for i, img := range e.keyImages {
		r := keyRect(i)
		fill(screen, r.Inset(-2), colorFrame)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
		op.ColorScale.Scale(dim, dim, dim, 1)
		screen.DrawImage(ebiten.NewImageFromImage(img), op)
	}

	sr := stripRect()
	fill(screen, sr.Inset(-2), colorFrame)
	if e.stripFrame == nil {
		e.stripFrame = ebiten.NewImage(stripWidth, stripHeight)
	}
	e.stripFrame.WritePixels(e.stripImage.Pix)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(sr.Min.X), float64(sr.Min.Y))
	op.ColorScale.Scale(dim, dim, dim, 1)
	screen.DrawImage(e.stripFrame, op)

	for i := 0; i < dialCount; i++ {
		r := dialRect(i)
		fill(screen, r, colorDial)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("D%d", i+1), r.Min.X+dialSize/2-8, r.Min.Y+dialSize/2-8)
	}

	ebitenutil.DebugPrintAt(screen, "Click keys | Drag or tap the strip | Scroll or click dials", margin, windowHeight-18)
}

func (e *Emulator) handleInput() {
	mx, my := ebiten.CursorPosition()
	p := image.Pt(mx, my)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		for i := 0; i < keyCount; i++ {
			if p.In(keyRect(i)) {
				e.fireKey(device.KeyID(i + 1))
				return
			}
		}
		for i := 0; i < dialCount; i++ {
			if p.In(dialRect(i)) {
				e.fireDialSwitch(device.DialID(i + 1))
				return
			}
		}
		if p.In(stripRect()) {
			e.dragging = true
			e.dragStart = p.Sub(stripRect().Min)
			e.dragBegan = time.Now()
		}
	}

	if e.dragging && !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		e.dragging = false
		end := clampToStrip(p.Sub(stripRect().Min))
		d := end.Sub(e.dragStart)
		if d.X*d.X+d.Y*d.Y < tapRadius*tapRadius {
			t := device.TouchShort
			if time.Since(e.dragBegan) > longTap {
				t = device.TouchLong
			}
			e.fireTouch(t, e.dragStart)
		} else {
			e.fireSwipe(e.dragStart, end)
		}
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		for i := 0; i < dialCount; i++ {
			if p.In(dialRect(i)) {
				// Scrolling down reads as turning the knob clockwise.
				e.fireRotate(device.DialID(i+1), int8(max(-5, min(5, -wy))))
				break
			}
		}
	}
}

// Handlers run on their own goroutines, as on hardware.
func (e *Emulator) dispatch(fn func() error) {
	go func() {
		if err := fn(); err != nil {
			e.mu.RLock()
			errCh := e.errCh
			e.mu.RUnlock()
			if errCh != nil {
				select {
				case errCh <- err:
				default:
				}
			}
		}
	}()
}

func (e *Emulator) fireKey(id device.KeyID) {
	e.mu.RLock()
	handlers := e.keyHandlers[id-1]
	e.mu.RUnlock()
	for _, h := range handlers {
		e.dispatch(func() error { return h(e, releasedKey(id)) })
	}
}

func (e *Emulator) fireDialSwitch(id device.DialID) {
	e.mu.RLock()
	handlers := e.switchHandlers[id-1]
	e.mu.RUnlock()
	for _, h := range handlers {
		e.dispatch(func() error { return h(e, releasedDial(id)) })
	}
}

func (e *Emulator) fireRotate(id device.DialID, delta int8) {
	e.mu.RLock()
	handlers := e.rotateHandlers[id-1]
	e.mu.RUnlock()
	for _, h := range handlers {
		e.dispatch(func() error { return h(e, releasedDial(id), delta) })
	}
}

func (e *Emulator) fireTouch(t device.TouchStripTouchType, p image.Point) {
	e.mu.RLock()
	handlers := e.touchHandlers
	e.mu.RUnlock()
	for _, h := range handlers {
		e.dispatch(func() error { return h(e, t, p) })
	}
}

func (e *Emulator) fireSwipe(origin, dest image.Point) {
	e.mu.RLock()
	handlers := e.swipeHandlers
	e.mu.RUnlock()
	for _, h := range handlers {
		e.dispatch(func() error { return h(e, origin, dest) })
	}
}

// A mouse click has already ended by the time handlers run.
type releasedKey device.KeyID

func (k releasedKey) GetID() device.KeyID           { return device.KeyID(k) }
func (k releasedKey) WaitForRelease() time.Duration { return 0 }

type releasedDial device.DialID

func (d releasedDial) GetID() device.DialID          { return device.DialID(d) }
func (d releasedDial) WaitForRelease() time.Duration { return 0 }

func keyIndex(key device.KeyID) (int, error) {
	idx := int(key) - 1
	if idx < 0 || idx >= keyCount {
		return 0, fmt.Errorf("emulator: invalid key ID: %d", key)
	}
	return idx, nil
}

func dialIndex(id device.DialID) (int, error) {
	idx := int(id) - 1
	if idx < 0 || idx >= dialCount {
		return 0, fmt.Errorf("emulator: invalid dial ID: %d", id)
	}
	return idx, nil
}

func keyRect(i int) image.Rectangle {
	row, col := i/keysPerRow, i%keysPerRow
	x := margin + keyGap + col*(keySize+keyGap)
	y := keysY + row*(keySize+keyGap)
	return image.Rect(x, y, x+keySize, y+keySize)
}

func stripRect() image.Rectangle {
	return image.Rect(margin, stripY, margin+stripWidth, stripY+stripHeight)
}

func dialRect(i int) image.Rectangle {
	x := margin + dialGap + i*(dialSize+dialGap)
	return image.Rect(x, dialsY, x+dialSize, dialsY+dialSize)
}

func clampToStrip(p image.Point) image.Point {
	return image.Pt(max(0, min(p.X, stripWidth-1)), max(0, min(p.Y, stripHeight-1)))
}

func fill(screen *ebiten.Image, r image.Rectangle, c color.Color) {
	screen.SubImage(r).(*ebiten.Image).Fill(c)
}
