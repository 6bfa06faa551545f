package wheel

import (
	"errors"
	"image/color"
	"math"
	"testing"
)

func TestRenderEmpty(t *testing.T) {
	for _, size := range []int{0, -5} {
		img := Render(size, HSV)
		if !img.Bounds().Empty() {
			t.Errorf("Render(%d) bounds = %v, want empty", size, img.Bounds())
		}
		if len(img.Pix) != 0 {
			t.Errorf("Render(%d) has %d bytes of pixels", size, len(img.Pix))
		}
	}
}

func TestRenderDisk(t *testing.T) {
	const size = 100
	img := Render(size, HSV)

	if got := img.Bounds().Dx(); got != size {
		t.Fatalf("width = %d, want %d", got, size)
	}

	tests := []struct {
		name   string
		x, y   int
		opaque bool
	}{
		{"center", 50, 50, true},
		{"right of center", 75, 50, true},
		{"near rim", 50, 3, true},
		{"top left corner", 0, 0, false},
		{"bottom right corner", 99, 99, false},
		{"outside rim diagonal", 90, 90, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := img.RGBAAt(tt.x, tt.y).A
			if tt.opaque && a != 255 {
				t.Errorf("alpha at (%d,%d) = %d, want 255", tt.x, tt.y, a)
			}
			if !tt.opaque && a != 0 {
				t.Errorf("alpha at (%d,%d) = %d, want 0", tt.x, tt.y, a)
			}
		})
	}
}

func TestRenderUsesColorFunc(t *testing.T) {
	const size = 100
	img := Render(size, HSV)

	// At (75, 50) the pixel lies on the positive X axis, halfway to the rim.
	want := HSV(0, 0.5)
	if got := img.RGBAAt(75, 50); got != want {
		t.Errorf("pixel (75,50) = %v, want %v", got, want)
	}
	if got := img.RGBAAt(50, 50); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("center pixel = %v, want white", got)
	}

	var calls int
	Render(8, func(angle, distance float64) color.RGBA {
		calls++
		if angle < 0 || angle >= 1 {
			t.Errorf("angle %v out of [0, 1)", angle)
		}
		if distance < 0 || distance > 1 {
			t.Errorf("distance %v out of [0, 1]", distance)
		}
		return color.RGBA{}
	})
	if calls != 64 {
		t.Errorf("color func called %d times, want 64 (full square)", calls)
	}
}

func TestRenderForcesOpaque(t *testing.T) {
	img := Render(10, func(_, _ float64) color.RGBA { return color.RGBA{10, 20, 30, 0} })
	if got := img.RGBAAt(5, 5); got != (color.RGBA{10, 20, 30, 255}) {
		t.Errorf("center pixel = %v, want opaque", got)
	}
}

func TestHSVStrategy(t *testing.T) {
	tests := []struct {
		name     string
		fn       ColorFunc
		angle    float64
		distance float64
		want     color.RGBA
	}{
		{"hsv center is white", HSV, 0.3, 0, color.RGBA{255, 255, 255, 255}},
		{"hue red", Hue, 0, 0.7, color.RGBA{255, 0, 0, 255}},
		{"hue cyan", Hue, 0.5, 0.1, color.RGBA{0, 255, 255, 255}},
		{"gray center", Gray, 0.9, 0, color.RGBA{255, 255, 255, 255}},
		{"gray rim", Gray, 0.2, 1, color.RGBA{128, 128, 128, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.angle, tt.distance); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	// Rim value is 1 - sqrt(1)/4 = 0.75.
	rim := HSV(0, 1)
	if want := uint8(math.Floor(0.75*255 + 0.5)); rim.R != want || rim.G != 0 || rim.B != 0 {
		t.Errorf("HSV rim red = %v, want R=%d", rim, want)
	}
}

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		if _, err := Lookup(name); err != nil {
			t.Errorf("Lookup(%q): %v", name, err)
		}
	}

	_, err := Lookup("plaid")
	if !errors.Is(err, ErrUnknownBackground) {
		t.Errorf("Lookup(plaid) error = %v, want ErrUnknownBackground", err)
	}
}
