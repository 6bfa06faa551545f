package main

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"

	"github.com/phinze/huedial/internal/angle"
	"github.com/phinze/huedial/internal/dial"
	"github.com/phinze/huedial/internal/wheel"
	"github.com/spf13/cobra"
)

var renderOpts struct {
	width, height int
	alpha, beta   float64
	degrees       bool
	clockwise     bool
	border        int
	background    string
	output        string
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the dial to a PNG file",
	Long: `Render the dial at a fixed allocation and write it as PNG.

Unset flags fall back to the config file. Angles are radians unless --degrees is given.`,
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.IntVar(&renderOpts.width, "width", 256, "allocation width in pixels")
	f.IntVar(&renderOpts.height, "height", 256, "allocation height in pixels")
	f.Float64Var(&renderOpts.alpha, "alpha", 0, "alpha handle angle")
	f.Float64Var(&renderOpts.beta, "beta", 0, "beta handle angle")
	f.BoolVar(&renderOpts.degrees, "degrees", false, "read --alpha and --beta as degrees")
	f.BoolVar(&renderOpts.clockwise, "clockwise", false, "sweep the arc clockwise from alpha")
	f.IntVar(&renderOpts.border, "border", 0, "border width in pixels")
	f.StringVar(&renderOpts.background, "background", "", fmt.Sprintf("wheel strategy %v", wheel.Names()))
	f.StringVarP(&renderOpts.output, "output", "o", "huedial.png", "output file")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	f := cmd.Flags()
	if f.Changed("alpha") {
		cfg.Dial.Alpha = toRadians(renderOpts.alpha)
	}
	if f.Changed("beta") {
		cfg.Dial.Beta = toRadians(renderOpts.beta)
	}
	if f.Changed("clockwise") {
		cfg.Dial.Clockwise = renderOpts.clockwise
	}
	if f.Changed("border") {
		cfg.Dial.BorderWidth = renderOpts.border
	}
	if f.Changed("background") {
		cfg.Dial.Background = renderOpts.background
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.Clamp()

	ctrl, err := newController(cfg)
	if err != nil {
		return err
	}
	img := renderImage(ctrl, renderOpts.width, renderOpts.height)

	if err := writePNG(renderOpts.output, img); err != nil {
		return err
	}
	log.Printf("Wrote %dx%d dial to %s", renderOpts.width, renderOpts.height, renderOpts.output)
	return nil
}

func toRadians(v float64) float64 {
	if renderOpts.degrees {
		return angle.Radians(v)
	}
	return v
}

// renderImage draws ctrl into a transparent canvas of the given allocation.
func renderImage(ctrl *dial.Controller, width, height int) *image.RGBA {
	ctrl.HandleEvent(dial.LayoutEvent{Width: width, Height: height})
	img := image.NewRGBA(image.Rect(0, 0, max(0, width), max(0, height)))
	ctrl.Render(img)
	return img
}

func writePNG(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return out.Close()
}
