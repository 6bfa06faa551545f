// Package wheel rasterizes the circular color background of the dial.
package wheel

import (
	"image"
	"image/color"
	"math"

	"github.com/phinze/huedial/internal/angle"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
)

// Render paints a size×size square where every pixel gets fn(angle, distance),
// then clips it to the inscribed disk. Pixels outside the disk are transparent.
// A non-positive size yields an empty image.
func Render(size int, fn ColorFunc) *image.RGBA {
	if size <= 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	if fn == nil {
		fn = HSV
	}

	bounds := image.Rect(0, 0, size, size)
	square := image.NewRGBA(bounds)
	half := float64(size) / 2

	for j := 0; j < size; j++ {
		for i := 0; i < size; i++ {
			dx := float64(i) - half
			dy := float64(j) - half
			distance := math.Sqrt((dx*dx + dy*dy) / (half * half))
			turn := angle.Atan2(half-float64(j), float64(i)-half) / angle.Turn

			c := fn(turn, math.Min(1, distance))
			c.A = 255
			square.SetRGBA(i, j, c)
		}
	}

	out := image.NewRGBA(bounds)
	draw.DrawMask(out, bounds, square, image.Point{}, diskMask(size), image.Point{}, draw.Over)
	return out
}

// diskMask returns an anti-aliased coverage mask of the disk inscribed in a size×size square.
func diskMask(size int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, size, size))
	half := float64(size) / 2

	scanner := rasterx.NewScannerGV(size, size, mask, mask.Bounds())
	filler := rasterx.NewFiller(size, size, scanner)
	filler.SetColor(color.Opaque)
	rasterx.AddCircle(half, half, half, filler)
	filler.Draw()

	return mask
}
