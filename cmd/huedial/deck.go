package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/phinze/huedial/internal/config"
	"github.com/phinze/huedial/internal/deck"
	"github.com/phinze/huedial/internal/device"
	"github.com/phinze/huedial/internal/device/emulator"
	"github.com/phinze/huedial/internal/dial"
	"github.com/spf13/cobra"
)

const (
	deviceTimeout = 5 * time.Second
	devicePoll    = 2 * time.Second
)

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Run the dial on a Stream Deck Plus touch strip",
	Long: `Run the dial on a Stream Deck Plus.

Swipe on the strip to drag a handle, tap to snap one. Dial 1 turns both handles
and toggles the sweep direction when pressed; dials 2 and 3 turn alpha and beta;
dial 4 changes the border. Key 1 toggles the direction and key 2 resets.
The dial state survives reconnects.`,
	RunE: runDeck,
}

var deckEmulator bool

func init() {
	deckCmd.Flags().BoolVar(&deckEmulator, "emulator", false, "run against a windowed Stream Deck Plus emulator")
}

func runDeck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctrl, err := newController(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if deckEmulator {
		return runEmulated(ctx, ctrl, cfg.Deck)
	}

	// Wait for a device, run until it disconnects, repeat.
	for {
		dev, err := device.WaitFor(ctx, devicePoll, deviceTimeout)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("Exiting...")
				return nil
			}
			return err
		}

		// USB enumeration can lag behind a successful open.
		time.Sleep(500 * time.Millisecond)

		if err := runWithDevice(ctx, dev, ctrl, cfg.Deck); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			log.Println("Exiting...")
			return nil
		default:
			log.Println("Waiting for device reconnect...")
		}
	}
}

// runEmulated drives an emulator window. The GUI owns the main goroutine and
// the deck host runs beside it.
func runEmulated(ctx context.Context, ctrl *dial.Controller, cfg config.DeckConfig) error {
	emu := emulator.New()
	if err := emu.Open(); err != nil {
		return err
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- runWithDevice(ctx, emu, ctrl, cfg)
	}()

	if err := emu.RunGUI(); err != nil {
		return fmt.Errorf("emulator GUI: %w", err)
	}
	return <-errChan
}

// runWithDevice drives dev until it disconnects or ctx is done. Only a device
// without a touch strip is a fatal error.
func runWithDevice(ctx context.Context, dev device.Device, ctrl *dial.Controller, cfg config.DeckConfig) error {
	log.Printf("Connected to: %s", dev.GetModelName())

	d := deck.New(dev, ctrl, cfg)
	d.Verbose = verbose

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- d.Start(runCtx)
	}()

	select {
	case <-ctx.Done():
		log.Println("Shutting down...")
	case err := <-errChan:
		if errors.Is(err, deck.ErrNoStrip) {
			dev.Close()
			return err
		}
		if err != nil {
			log.Printf("Device disconnected: %v", err)
		}
	}

	cancel()
	done := make(chan struct{})
	go func() {
		d.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		log.Println("Cleanup timed out")
	}

	closeDone := make(chan struct{})
	go func() {
		dev.Close()
		close(closeDone)
	}()
	select {
	case <-closeDone:
	case <-time.After(3 * time.Second):
		log.Println("Device close timed out")
	}
	return nil
}
