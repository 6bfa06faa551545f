// Package overlay draws the dial handles, their arrowheads, and the arc
// connecting them on top of the wheel.
package overlay

import (
	"image"
	"image/color"
	"math"

	"github.com/phinze/huedial/internal/angle"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"
	"gonum.org/v1/gonum/spatial/r2"
)

// Shape parameters
const (
	arrowReach  = 0.8 // arrowhead tails sit at this fraction of the radius
	arrowSpread = 0.1 // angular offset of each arrowhead tail, radians
	tickLength  = 10  // direction tick length, pixels
	arcRing     = 0.3 // arc radius as a fraction of the disk radius
)

// Stroke passes: a wide light halo, then a thin dark core on the same path.
var (
	haloColor = color.NRGBA{255, 255, 255, 153}
	coreColor = color.NRGBA{0, 0, 0, 204}
)

const (
	haloWidth = 3.0
	coreWidth = 1.0
)

// Segment is a straight stroke between two points.
type Segment struct {
	From, To r2.Vec
}

// Arc is a circular stroke starting at angle Start and sweeping Sweep radians.
// A positive sweep runs counterclockwise on screen.
type Arc struct {
	Center r2.Vec
	Radius float64
	Start  float64
	Sweep  float64
}

// Point returns the screen point on the arc's circle at angle theta.
func (a Arc) Point(theta float64) r2.Vec {
	return onCircle(a.Center, a.Radius, theta)
}

// Shape is everything the overlay strokes, in disk-local coordinates.
type Shape struct {
	Segments []Segment
	Arc      Arc
}

// Build lays out the overlay for a disk of the given diameter.
func Build(size int, alpha, beta float64, clockwise bool) Shape {
	radius := size / 2
	if radius <= 0 {
		return Shape{}
	}
	r := float64(radius)
	center := r2.Vec{X: r, Y: r}

	var sh Shape
	for _, theta := range []float64{alpha, beta} {
		tip := onCircle(center, r, theta)
		sh.Segments = append(sh.Segments,
			Segment{From: center, To: round(tip)},
			Segment{From: tip, To: round(onCircle(center, r*arrowReach, theta-arrowSpread))},
			Segment{From: tip, To: round(onCircle(center, r*arrowReach, theta+arrowSpread))},
		)
	}

	dist := float64(int(r * arcRing))

	direction := 1.0
	if clockwise {
		direction = -1
	}
	base := onCircle(center, dist, beta)
	sh.Segments = append(sh.Segments, Segment{
		From: base,
		To: round(r2.Vec{
			X: base.X + direction*tickLength*math.Sin(beta),
			Y: base.Y + direction*tickLength*math.Cos(beta),
		}),
	})

	sh.Arc = Arc{Center: center, Radius: dist, Start: alpha}
	if clockwise {
		sh.Arc.Sweep = -angle.Normalize(alpha - beta)
	} else {
		sh.Arc.Sweep = angle.Normalize(beta - alpha)
	}
	return sh
}

// Render strokes the overlay for a disk of the given diameter whose top-left
// corner is at the given point of dst.
func Render(dst draw.Image, at image.Point, size int, alpha, beta float64, clockwise bool) {
	sh := Build(size, alpha, beta, clockwise)
	if len(sh.Segments) == 0 {
		return
	}
	sh.Stroke(dst, at)
}

// Stroke rasterizes the shape onto dst with its origin at the given point.
func (sh Shape) Stroke(dst draw.Image, at image.Point) {
	b := dst.Bounds()
	if b.Empty() {
		return
	}
	offset := r2.Vec{X: float64(at.X - b.Min.X), Y: float64(at.Y - b.Min.Y)}
	path := sh.path(offset)

	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b)
	stroker := rasterx.NewStroker(b.Dx(), b.Dy(), scanner)

	for _, pass := range []struct {
		width float64
		color color.Color
	}{
		{haloWidth, haloColor},
		{coreWidth, coreColor},
	} {
		stroker.SetStroke(toFixed(pass.width), toFixed(10), rasterx.ButtCap, nil, rasterx.FlatGap, rasterx.Miter)
		path.AddTo(stroker)
		stroker.SetColor(pass.color)
		stroker.Draw()
		stroker.Clear()
	}
}

// path converts the shape to a rasterx path translated by offset.
func (sh Shape) path(offset r2.Vec) rasterx.Path {
	var p rasterx.Path
	for _, s := range sh.Segments {
		p.Start(toPoint(r2.Add(s.From, offset)))
		p.Line(toPoint(r2.Add(s.To, offset)))
		p.Stop(false)
	}

	a := sh.Arc
	if a.Sweep == 0 || a.Radius <= 0 {
		return p
	}

	// One cubic per quarter turn or less.
	n := int(math.Ceil(math.Abs(a.Sweep) / (math.Pi / 2)))
	step := a.Sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4) * a.Radius

	p.Start(toPoint(r2.Add(a.Point(a.Start), offset)))
	for i := 0; i < n; i++ {
		t0 := a.Start + float64(i)*step
		t1 := t0 + step
		p0, p1 := a.Point(t0), a.Point(t1)
		c1 := r2.Add(p0, r2.Scale(k, tangent(t0)))
		c2 := r2.Sub(p1, r2.Scale(k, tangent(t1)))
		p.CubeBezier(toPoint(r2.Add(c1, offset)), toPoint(r2.Add(c2, offset)), toPoint(r2.Add(p1, offset)))
	}
	p.Stop(false)
	return p
}

// onCircle maps an angle to screen space; Y is flipped so angles run counterclockwise.
func onCircle(center r2.Vec, r, theta float64) r2.Vec {
	return r2.Vec{X: center.X + r*math.Cos(theta), Y: center.Y - r*math.Sin(theta)}
}

// tangent is the screen-space derivative direction of onCircle at theta.
func tangent(theta float64) r2.Vec {
	return r2.Vec{X: -math.Sin(theta), Y: -math.Cos(theta)}
}

func round(v r2.Vec) r2.Vec {
	return r2.Vec{X: math.Floor(v.X + 0.5), Y: math.Floor(v.Y + 0.5)}
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

func toPoint(v r2.Vec) fixed.Point26_6 {
	return fixed.Point26_6{X: toFixed(v.X), Y: toFixed(v.Y)}
}
