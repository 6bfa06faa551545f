package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/phinze/huedial/internal/angle"
	"github.com/phinze/huedial/internal/config"
	"github.com/phinze/huedial/internal/device"
	"github.com/phinze/huedial/internal/wheel"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check config and device health",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("=== huedial status ===")
	fmt.Println()

	allOK := true

	path := resolvedConfigPath()
	fmt.Printf("Config file: %s\n", path)
	if _, err := os.Stat(path); err == nil {
		fmt.Println("  Status: found")
	} else {
		fmt.Println("  Status: not found (using defaults)")
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		fmt.Printf("  Load error: %v\n", err)
		if errors.Is(err, wheel.ErrUnknownBackground) {
			fmt.Printf("  Known backgrounds: %v\n", wheel.Names())
		}
		allOK = false
	}
	fmt.Println()

	if cfg != nil {
		fmt.Println("Dial:")
		fmt.Printf("  Alpha: %.1f°\n", angle.Degrees(cfg.Dial.Alpha))
		fmt.Printf("  Beta: %.1f°\n", angle.Degrees(cfg.Dial.Beta))
		fmt.Printf("  Clockwise: %v\n", cfg.Dial.Clockwise)
		fmt.Printf("  Border: %dpx\n", cfg.Dial.BorderWidth)
		fmt.Printf("  Background: %s\n", cfg.Dial.Background)
		fmt.Println()
	}

	fmt.Println("Stream Deck:")
	dev, err := device.Detect(2 * time.Second)
	if err == nil {
		fmt.Printf("  Device: CONNECTED (%s)\n", dev.GetModelName())
		if !dev.GetTouchStripSupported() {
			fmt.Println("  Touch strip: MISSING (deck mode needs a Stream Deck Plus)")
			allOK = false
		}
		dev.Close()
	} else {
		fmt.Printf("  Device: not detected (%v)\n", err)
	}
	fmt.Println()

	if allOK {
		fmt.Println("All checks passed.")
	} else {
		fmt.Println("Some checks failed. Run 'huedial setup' to write a config.")
	}
	return nil
}
