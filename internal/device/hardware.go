package device

import (
	"context"
	"errors"
	"image"
	"log"
	"time"

	"rafaelmartins.com/p/streamdeck"
)

// ErrDetectTimeout is returned when USB enumeration does not answer in time.
var ErrDetectTimeout = errors.New("device detection timed out")

var _ Device = (*HardwareDevice)(nil)

// HardwareDevice adapts a streamdeck.Device to Device.
type HardwareDevice struct {
	dev *streamdeck.Device
}

// NewHardware wraps dev.
func NewHardware(dev *streamdeck.Device) *HardwareDevice {
	return &HardwareDevice{dev: dev}
}

// Detect finds and opens the first Stream Deck. The timeout bounds a USB
// stack that has stopped answering.
func Detect(timeout time.Duration) (*HardwareDevice, error) {
	dev, err := openWithTimeout(openFirst, func(d *streamdeck.Device) { d.Close() }, timeout)
	if err != nil {
		return nil, err
	}
	return NewHardware(dev), nil
}

func openFirst() (*streamdeck.Device, error) {
	dev, err := streamdeck.GetDevice("")
	if err != nil {
		return nil, err
	}
	if err := dev.Open(); err != nil {
		return nil, err
	}
	return dev, nil
}

// openWithTimeout runs open in the background and waits at most timeout for
// it. A device that opens after the timeout is handed to release.
func openWithTimeout[T any](open func() (T, error), release func(T), timeout time.Duration) (T, error) {
	type result struct {
		dev T
		err error
	}
	ch := make(chan result, 1)

	go func() {
		dev, err := open()
		ch <- result{dev, err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case r := <-ch:
		return r.dev, r.err
	case <-timer.C:
		go func() {
			if r := <-ch; r.err == nil {
				log.Println("Closing device that opened after detection timed out")
				release(r.dev)
			}
		}()
		var zero T
		return zero, ErrDetectTimeout
	}
}

// WaitFor polls until a device is available or ctx is done.
func WaitFor(ctx context.Context, poll, timeout time.Duration) (*HardwareDevice, error) {
	dev, err := Detect(timeout)
	if err == nil {
		return dev, nil
	}
	log.Printf("Waiting for device: %v", err)

	ticker := time.NewTicker(poll)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
		if dev, err := Detect(timeout); err == nil {
			log.Println("Device connected")
			return dev, nil
		}
	}
}

func (h *HardwareDevice) Open() error  { return h.dev.Open() }
func (h *HardwareDevice) Close() error { return h.dev.Close() }
func (h *HardwareDevice) IsOpen() bool { return h.dev.IsOpen() }

func (h *HardwareDevice) GetModelName() string         { return h.dev.GetModelName() }
func (h *HardwareDevice) GetTouchStripSupported() bool { return h.dev.GetTouchStripSupported() }

func (h *HardwareDevice) GetKeyImageRectangle() (image.Rectangle, error) {
	return h.dev.GetKeyImageRectangle()
}

func (h *HardwareDevice) GetTouchStripImageRectangle() (image.Rectangle, error) {
	return h.dev.GetTouchStripImageRectangle()
}

func (h *HardwareDevice) SetBrightness(perc byte) error {
	return h.dev.SetBrightness(perc)
}

func (h *HardwareDevice) SetKeyImage(key KeyID, img image.Image) error {
	return h.dev.SetKeyImage(streamdeck.KeyID(key), img)
}

func (h *HardwareDevice) SetTouchStripImage(img image.Image) error {
	return h.dev.SetTouchStripImage(img)
}

func (h *HardwareDevice) ClearKey(key KeyID) error {
	return h.dev.ClearKey(streamdeck.KeyID(key))
}

func (h *HardwareDevice) ForEachKey(cb func(KeyID) error) error {
	return h.dev.ForEachKey(func(k streamdeck.KeyID) error {
		return cb(KeyID(k))
	})
}

type hardwareKey struct{ key *streamdeck.Key }

func (k hardwareKey) GetID() KeyID                  { return KeyID(k.key.GetID()) }
func (k hardwareKey) WaitForRelease() time.Duration { return k.key.WaitForRelease() }

type hardwareDial struct{ dial *streamdeck.Dial }

func (d hardwareDial) GetID() DialID                 { return DialID(d.dial.GetID()) }
func (d hardwareDial) WaitForRelease() time.Duration { return d.dial.WaitForRelease() }

func (h *HardwareDevice) AddKeyHandler(key KeyID, fn KeyHandler) error {
	return h.dev.AddKeyHandler(streamdeck.KeyID(key), func(_ *streamdeck.Device, k *streamdeck.Key) error {
		return fn(h, hardwareKey{k})
	})
}

func (h *HardwareDevice) AddDialRotateHandler(dial DialID, fn DialRotateHandler) error {
	return h.dev.AddDialRotateHandler(streamdeck.DialID(dial), func(_ *streamdeck.Device, di *streamdeck.Dial, delta int8) error {
		return fn(h, hardwareDial{di}, delta)
	})
}

func (h *HardwareDevice) AddDialSwitchHandler(dial DialID, fn DialSwitchHandler) error {
	return h.dev.AddDialSwitchHandler(streamdeck.DialID(dial), func(_ *streamdeck.Device, di *streamdeck.Dial) error {
		return fn(h, hardwareDial{di})
	})
}

func (h *HardwareDevice) AddTouchStripTouchHandler(fn TouchStripTouchHandler) error {
	return h.dev.AddTouchStripTouchHandler(func(_ *streamdeck.Device, t streamdeck.TouchStripTouchType, p image.Point) error {
		return fn(h, TouchStripTouchType(t), p)
	})
}

func (h *HardwareDevice) AddTouchStripSwipeHandler(fn TouchStripSwipeHandler) error {
	return h.dev.AddTouchStripSwipeHandler(func(_ *streamdeck.Device, origin, destination image.Point) error {
		return fn(h, origin, destination)
	})
}

// Listen runs the device event loop until the device goes away.
func (h *HardwareDevice) Listen(errCh chan error) error {
	return h.dev.Listen(errCh)
}
