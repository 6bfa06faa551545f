package wheel

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"
)

// ErrUnknownBackground is returned by Lookup for names with no registered strategy.
var ErrUnknownBackground = errors.New("unknown background")

// ColorFunc maps a position on the disk to an opaque color. angle is a turn
// fraction in [0, 1); distance is the radial distance clamped to [0, 1].
type ColorFunc func(angle, distance float64) color.RGBA

// HSV is the default strategy: hue follows the angle, saturation the distance,
// and value darkens slightly toward the rim.
func HSV(angle, distance float64) color.RGBA {
	return hsvToRGB(angle, distance, 1-math.Sqrt(distance)/4)
}

// Hue paints fully saturated hues regardless of distance.
func Hue(angle, _ float64) color.RGBA {
	return hsvToRGB(angle, 1, 1)
}

// Gray paints a radial ramp from white at the center to mid gray at the rim.
func Gray(_, distance float64) color.RGBA {
	v := channel(1 - distance/2)
	return color.RGBA{v, v, v, 255}
}

var strategies = map[string]ColorFunc{
	"hsv":  HSV,
	"hue":  Hue,
	"gray": Gray,
}

// Lookup returns the strategy registered under name.
func Lookup(name string) (ColorFunc, error) {
	fn, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownBackground, name, Names())
	}
	return fn, nil
}

// Names returns the registered strategy names in sorted order.
func Names() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// hsvToRGB converts HSV with h, s and v in [0, 1] to an opaque color.
func hsvToRGB(h, s, v float64) color.RGBA {
	if s == 0 {
		c := channel(v)
		return color.RGBA{c, c, c, 255}
	}

	h = math.Mod(h*6, 6)
	if h < 0 {
		h += 6
	}
	i := math.Floor(h)
	f := h - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	var r, g, b float64
	switch int(i) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return color.RGBA{channel(r), channel(g), channel(b), 255}
}

// channel rounds a [0, 1] intensity to a byte.
func channel(x float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Floor(x*255+0.5))))
}
