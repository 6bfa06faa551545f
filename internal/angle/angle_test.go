package angle

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

const tol = 1e-12

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"in range", 1.5, 1.5},
		{"negative", -math.Pi / 2, 3 * math.Pi / 2},
		{"just under turn", Turn - 1e-9, Turn - 1e-9},
		{"full turn", Turn, 0},
		{"over one turn", Turn + 0.25, 0.25},
		{"just above -turn", -Turn + 0.5, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if !scalar.EqualWithinAbs(got, tt.want, tol) {
				t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeSingleStep(t *testing.T) {
	// Values more than one turn away are only shifted once.
	got := Normalize(-3 * math.Pi)
	if !scalar.EqualWithinAbs(got, -math.Pi, tol) {
		t.Errorf("Normalize(-3π) = %v, want -π", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for a := -Turn + 0.01; a < 2*Turn; a += 0.173 {
		once := Normalize(a)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize(Normalize(%v)) = %v, want %v", a, twice, once)
		}
		if once < 0 || once >= Turn {
			t.Errorf("Normalize(%v) = %v, out of [0, 2π)", a, once)
		}
	}
}

func TestAtan2(t *testing.T) {
	tests := []struct {
		name string
		y, x float64
		want float64
	}{
		{"east", 0, 1, 0},
		{"north", 1, 0, math.Pi / 2},
		{"west", 0, -1, math.Pi},
		{"south", -1, 0, 3 * math.Pi / 2},
		{"south east", -1, 1, 7 * math.Pi / 4},
		{"origin", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Atan2(tt.y, tt.x)
			if !scalar.EqualWithinAbs(got, tt.want, tol) {
				t.Errorf("Atan2(%v, %v) = %v, want %v", tt.y, tt.x, got, tt.want)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{"same", 1, 1, 0},
		{"quarter", 0, math.Pi / 2, math.Pi / 2},
		{"across zero", 0.1, Turn - 0.1, 0.2},
		{"opposite", 0, math.Pi, math.Pi},
		{"three quarters is a quarter", 0, 3 * math.Pi / 2, math.Pi / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			if !scalar.EqualWithinAbs(got, tt.want, 1e-9) {
				t.Errorf("Distance(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDistanceSymmetric(t *testing.T) {
	for a := 0.0; a < Turn; a += 0.29 {
		for b := 0.0; b < Turn; b += 0.31 {
			if Distance(a, b) != Distance(b, a) {
				t.Errorf("Distance(%v, %v) = %v but Distance(%v, %v) = %v",
					a, b, Distance(a, b), b, a, Distance(b, a))
			}
		}
		if d := Distance(a, a); d != 0 {
			t.Errorf("Distance(%v, %v) = %v, want 0", a, a, d)
		}
	}
}

func TestDistanceSymmetricPairs(t *testing.T) {
	tests := []struct {
		a, b float64
	}{
		{4.35, 3.1},
		{0.1, Turn - 0.1},
		{5.9, 0.3},
		{math.Pi, 0},
		{2.61, 6.2},
	}

	for _, tt := range tests {
		if got, rev := Distance(tt.a, tt.b), Distance(tt.b, tt.a); got != rev {
			t.Errorf("Distance(%v, %v) = %v but Distance(%v, %v) = %v", tt.a, tt.b, got, tt.b, tt.a, rev)
		}
	}
}

func TestMinProximity(t *testing.T) {
	got := MinProximity(0, math.Pi, math.Pi-0.2)
	if !scalar.EqualWithinAbs(got, 0.2, 1e-9) {
		t.Errorf("MinProximity = %v, want 0.2", got)
	}
}

func TestClosest(t *testing.T) {
	tests := []struct {
		name               string
		alpha, beta, angle float64
		want               Handle
	}{
		{"near alpha", 0, math.Pi, 0.3, Alpha},
		{"near beta", 0, math.Pi, 2.9, Beta},
		{"alpha across zero", 0.1, math.Pi, Turn - 0.1, Alpha},
		{"tie goes to beta", 1, Turn - 1, 0, Beta},
		{"coincident handles", 1, 1, 1, Beta},
		{"mirrored tie", 1, 2, 1.5, Beta},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Closest(tt.alpha, tt.beta, tt.angle); got != tt.want {
				t.Errorf("Closest(%v, %v, %v) = %v, want %v", tt.alpha, tt.beta, tt.angle, got, tt.want)
			}
		})
	}
}
