package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/phinze/huedial/internal/dial"
	"github.com/phinze/huedial/internal/wheel"
	"gonum.org/v1/gonum/floats/scalar"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	want := Default()
	if cfg.Dial != want.Dial || cfg.Window != want.Window || cfg.Deck != want.Deck {
		t.Errorf("got %+v, want defaults %+v", cfg, want)
	}
	if cfg.Dial.Beta != math.Pi {
		t.Errorf("default beta = %v, want π", cfg.Dial.Beta)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
dial:
  border_width: 12
  alpha: 1.5
  beta: 7.0
  clockwise: true
  background: hue
window:
  width: 320
deck:
  brightness: 150
  strip_x: 200
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.Dial.BorderWidth != 12 || !cfg.Dial.Clockwise || cfg.Dial.Background != "hue" {
		t.Errorf("dial = %+v", cfg.Dial)
	}
	if !scalar.EqualWithinAbs(cfg.Dial.Beta, 7.0-2*math.Pi, 1e-12) {
		t.Errorf("beta = %v, want reduced into one turn", cfg.Dial.Beta)
	}
	if cfg.Window.Width != 320 || cfg.Window.Height != 240 {
		t.Errorf("window = %+v, want width 320 and default height", cfg.Window)
	}
	if cfg.Deck.Brightness != 100 || cfg.Deck.StripX != 200 || cfg.Deck.RotateStep != 5 {
		t.Errorf("deck = %+v", cfg.Deck)
	}
}

func TestLoadClampsBorderWidth(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "dial:\n  border_width: 200\n"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Dial.BorderWidth != dial.MaxBorderWidth {
		t.Errorf("border width = %d, want %d", cfg.Dial.BorderWidth, dial.MaxBorderWidth)
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, "dial:\n  border_width: 3\n  background: gray\n")
	t.Setenv("HUEDIAL_BORDER_WIDTH", "20")
	t.Setenv("HUEDIAL_ALPHA", "0.25")
	t.Setenv("HUEDIAL_CLOCKWISE", "true")
	t.Setenv("HUEDIAL_BACKGROUND", "hsv")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Dial.BorderWidth != 20 || cfg.Dial.Alpha != 0.25 || !cfg.Dial.Clockwise || cfg.Dial.Background != "hsv" {
		t.Errorf("dial = %+v", cfg.Dial)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		env     map[string]string
		invalid bool
	}{
		{"bad yaml", "dial: [", nil, false},
		{"unknown background", "dial:\n  background: plaid\n", nil, true},
		{"bad env int", "", map[string]string{"HUEDIAL_BORDER_WIDTH": "wide"}, false},
		{"bad env bool", "", map[string]string{"HUEDIAL_CLOCKWISE": "sideways"}, false},
		{"infinite alpha", "", map[string]string{"HUEDIAL_ALPHA": "+Inf"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadFile(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("LoadFile succeeded, want error")
			}
			if got := errors.Is(err, ErrInvalid); got != tt.invalid {
				t.Errorf("errors.Is(err, ErrInvalid) = %v, want %v (err: %v)", got, tt.invalid, err)
			}
		})
	}
}

func TestUnknownBackgroundWrapsWheelError(t *testing.T) {
	_, err := LoadFile(writeConfig(t, "dial:\n  background: plaid\n"))
	if !errors.Is(err, wheel.ErrUnknownBackground) {
		t.Errorf("err = %v, want wheel.ErrUnknownBackground in chain", err)
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Dial.BorderWidth = 8
	cfg.Deck.StripX = 400

	if err := WriteFile(path, cfg); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got.Dial.BorderWidth != 8 || got.Deck.StripX != 400 {
		t.Errorf("round trip = %+v", got)
	}
}

func TestApply(t *testing.T) {
	c := dial.New()
	d := DialConfig{BorderWidth: 4, Alpha: 1, Beta: 2, Clockwise: true, Background: "gray"}
	if err := d.Apply(c); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	st := c.State()
	if st.BorderWidth != 4 || st.Alpha != 1 || st.Beta != 2 || !st.Clockwise {
		t.Errorf("state = %+v", st)
	}

	d.Background = "plaid"
	if err := d.Apply(c); !errors.Is(err, wheel.ErrUnknownBackground) {
		t.Errorf("Apply with unknown background: %v", err)
	}
}
