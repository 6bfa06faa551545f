package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/phinze/huedial/internal/window"
	"github.com/spf13/cobra"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Show the dial in a desktop window",
	Long: `Show the dial in a resizable window.

Drag a handle to move it, drag near the center to turn both, scroll to rotate.
Keys: C toggles the sweep direction, R resets, [ and ] change the border, H hides the readout.`,
	RunE: runWindow,
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctrl, err := newController(cfg)
	if err != nil {
		return err
	}

	w := window.New(ctrl, cfg.Window)
	w.Verbose = verbose

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		w.Close()
	}()

	// Run on the main goroutine; Cocoa requires it.
	if err := w.Run(); err != nil {
		return err
	}
	log.Println("Window closed")
	return nil
}
