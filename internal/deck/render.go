package deck

import (
	_ "embed"
	"fmt"
	"image"
	"image/color"
	"log"
	"strings"

	"github.com/phinze/huedial/internal/device"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

//go:embed icons/clockwise.svg
var iconClockwiseSVG string

//go:embed icons/counterclockwise.svg
var iconCounterclockwiseSVG string

//go:embed icons/reset.svg
var iconResetSVG string

var (
	colorBackground = color.RGBA{25, 25, 25, 255}
	colorKeyBg      = color.RGBA{40, 40, 40, 255}
	colorWhite      = color.RGBA{255, 255, 255, 255}
	colorGray       = color.RGBA{160, 160, 160, 255}
)

const (
	// readoutScale enlarges the 7x13 bitmap face for the strip.
	readoutScale = 2
	readoutGap   = 16
)

// renderStrip composes the dial and the readout onto a full-strip image.
// Callers hold mu.
func (d *Deck) renderStrip() *image.RGBA {
	img := image.NewRGBA(d.stripRect)
	draw.Draw(img, img.Bounds(), &image.Uniform{colorBackground}, image.Point{}, draw.Src)

	d.ctrl.Render(img.SubImage(d.region).(*image.RGBA))

	lines := d.ctrl.State().Readout()
	text := renderText(lines, colorWhite)
	size := text.Bounds().Size().Mul(readoutScale)

	// Right of the dial when it fits, otherwise left of it.
	at := image.Pt(d.region.Max.X+readoutGap, d.region.Min.Y+(d.region.Dy()-size.Y)/2)
	if at.X+size.X > d.stripRect.Max.X {
		at.X = d.region.Min.X - readoutGap - size.X
	}
	draw.NearestNeighbor.Scale(img, image.Rectangle{Min: at, Max: at.Add(size)}, text, text.Bounds(), draw.Over, nil)

	return img
}

// renderText draws lines in the basic bitmap face onto a transparent image.
func renderText(lines []string, col color.Color) *image.RGBA {
	face := basicfont.Face7x13
	m := face.Metrics()
	lineHeight := m.Height.Ceil()

	width := 0
	for _, l := range lines {
		width = max(width, font.MeasureString(face, l).Ceil())
	}
	img := image.NewRGBA(image.Rect(0, 0, width, lineHeight*len(lines)))

	for i, l := range lines {
		dr := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(col),
			Face: face,
			Dot:  fixed.Point26_6{X: 0, Y: fixed.I(i*lineHeight) + m.Ascent},
		}
		dr.DrawString(l)
	}
	return img
}

// renderKeys returns the direction and reset key images.
func (d *Deck) renderKeys(clockwise bool) map[device.KeyID]image.Image {
	dirIcon := iconCounterclockwiseSVG
	if clockwise {
		dirIcon = iconClockwiseSVG
	}
	return map[device.KeyID]image.Image{
		KeyDirection: keyImage(d.keyRect, dirIcon, colorWhite),
		KeyReset:     keyImage(d.keyRect, iconResetSVG, colorGray),
	}
}

// keyImage centers an icon on the key background with a margin.
func keyImage(rect image.Rectangle, svg string, col color.Color) image.Image {
	img := image.NewRGBA(rect)
	draw.Draw(img, img.Bounds(), &image.Uniform{colorKeyBg}, image.Point{}, draw.Src)

	side := min(rect.Dx(), rect.Dy())
	iconSize := side * 2 / 3
	icon := renderSVGIcon(svg, iconSize, col)
	at := rect.Min.Add(image.Pt((rect.Dx()-iconSize)/2, (rect.Dy()-iconSize)/2))
	draw.Draw(img, image.Rectangle{Min: at, Max: at.Add(image.Pt(iconSize, iconSize))}, icon, image.Point{}, draw.Over)
	return img
}

// renderSVGIcon rasterizes an icon, substituting col for currentColor.
func renderSVGIcon(svgContent string, size int, col color.Color) image.Image {
	r, g, b, _ := col.RGBA()
	svgContent = strings.ReplaceAll(svgContent, "currentColor", fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	icon, err := oksvg.ReadIconStream(strings.NewReader(svgContent))
	if err != nil {
		log.Printf("Failed to parse SVG: %v", err)
		return img
	}

	icon.SetTarget(0, 0, float64(size), float64(size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1.0)
	return img
}
