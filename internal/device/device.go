// Package device defines the Stream Deck surface the deck host drives.
package device

import (
	"image"
	"time"
)

// Device is the subset of Stream Deck hardware the dial host uses. The
// hardware adapter implements it; tests substitute fakes.
type Device interface {
	// Lifecycle
	Open() error
	Close() error
	IsOpen() bool

	// Device info
	GetModelName() string
	GetTouchStripSupported() bool
	GetKeyImageRectangle() (image.Rectangle, error)
	GetTouchStripImageRectangle() (image.Rectangle, error)

	// Display
	SetBrightness(perc byte) error
	SetKeyImage(key KeyID, img image.Image) error
	SetTouchStripImage(img image.Image) error
	ClearKey(key KeyID) error
	ForEachKey(cb func(KeyID) error) error

	// Event handlers
	AddKeyHandler(key KeyID, fn KeyHandler) error
	AddDialRotateHandler(dial DialID, fn DialRotateHandler) error
	AddDialSwitchHandler(dial DialID, fn DialSwitchHandler) error
	AddTouchStripTouchHandler(fn TouchStripTouchHandler) error
	AddTouchStripSwipeHandler(fn TouchStripSwipeHandler) error

	// Event loop
	Listen(errCh chan error) error
}

// KeyID identifies a physical key.
type KeyID byte

// Key IDs for the Stream Deck Plus.
const (
	Key1 KeyID = iota + 1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
)

// DialID identifies a rotary dial.
type DialID byte

// Dial IDs for the Stream Deck Plus.
const (
	Dial1 DialID = iota + 1
	Dial2
	Dial3
	Dial4
)

// Dials lists every dial on the Stream Deck Plus.
var Dials = []DialID{Dial1, Dial2, Dial3, Dial4}

// TouchStripTouchType distinguishes short and long taps.
type TouchStripTouchType byte

const (
	TouchShort TouchStripTouchType = iota + 1
	TouchLong
)

// Key is the pressed key handed to a KeyHandler.
type Key interface {
	GetID() KeyID
	WaitForRelease() time.Duration
}

// Dial is the dial handed to dial handlers.
type Dial interface {
	GetID() DialID
	WaitForRelease() time.Duration
}

type (
	// KeyHandler is called when a key is pressed.
	KeyHandler func(d Device, k Key) error

	// DialSwitchHandler is called when a dial is pressed.
	DialSwitchHandler func(d Device, di Dial) error

	// DialRotateHandler is called when a dial is rotated. Positive delta is clockwise.
	DialRotateHandler func(d Device, di Dial, delta int8) error

	// TouchStripTouchHandler is called when the touch strip is tapped.
	TouchStripTouchHandler func(d Device, t TouchStripTouchType, p image.Point) error

	// TouchStripSwipeHandler is called when the touch strip is swiped.
	TouchStripSwipeHandler func(d Device, origin, destination image.Point) error
)
