package dial

// Button identifies a pointer button. Button1 is the primary button.
type Button uint8

const (
	Button1 Button = iota + 1
	Button2
	Button3
)

// Modifier is a bit set of keyboard modifiers held during a press.
type Modifier uint32

const (
	ModShift Modifier = 1 << iota
	ModControl
	ModAlt
)

// Event is one of the inbound host events below.
type Event interface {
	isEvent()
}

// PressEvent represents a pointer button press.
type PressEvent struct {
	// X and Y are widget-local coordinates, origin top-left, Y growing downward.
	X, Y float64

	Button    Button
	Modifiers Modifier
}

// MotionEvent represents pointer motion.
type MotionEvent struct {
	X, Y float64
}

// ReleaseEvent represents a pointer button release. Where it happens does not matter.
type ReleaseEvent struct {
	Button Button
}

// LayoutEvent carries a new allocation from the host.
type LayoutEvent struct {
	Width, Height int
}

func (PressEvent) isEvent()   {}
func (MotionEvent) isEvent()  {}
func (ReleaseEvent) isEvent() {}
func (LayoutEvent) isEvent()  {}

// triggersContextMenu reports whether a press is the platform's context-menu gesture.
func (e PressEvent) triggersContextMenu() bool {
	return e.Button == Button3 || (e.Button == Button1 && e.Modifiers&ModControl != 0)
}
