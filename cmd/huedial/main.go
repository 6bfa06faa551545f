// Command huedial shows the dual-handle hue dial in a window, on a Stream
// Deck Plus, or as a rendered PNG.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/phinze/huedial/internal/config"
	"github.com/phinze/huedial/internal/dial"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "huedial",
	Short:         "Dual-handle hue dial",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $HUEDIAL_CONFIG or ~/.config/huedial/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log drag sessions")

	rootCmd.AddCommand(renderCmd, windowCmd, deckCmd, statusCmd, setupCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "huedial:", err)
		os.Exit(1)
	}
}

// resolvedConfigPath returns --config or the default location.
func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultConfigPath()
}

func loadConfig() (*config.Config, error) {
	path := resolvedConfigPath()
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	return cfg, nil
}

// newController builds a controller from the dial section of cfg.
func newController(cfg *config.Config) (*dial.Controller, error) {
	ctrl := dial.New()
	if err := cfg.Dial.Apply(ctrl); err != nil {
		return nil, err
	}
	if verbose {
		st := ctrl.State()
		log.Printf("Dial: alpha=%.3f beta=%.3f clockwise=%v border=%d background=%s",
			st.Alpha, st.Beta, st.Clockwise, st.BorderWidth, cfg.Dial.Background)
	}
	return ctrl, nil
}
