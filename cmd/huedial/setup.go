package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/phinze/huedial/internal/angle"
	"github.com/phinze/huedial/internal/config"
	"github.com/phinze/huedial/internal/wheel"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup: write the config file",
	RunE:  runSetup,
}

func runSetup(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(os.Stdin)
	fmt.Println("=== huedial setup ===")
	fmt.Println()

	path := resolvedConfigPath()

	// Existing values become the prompt defaults.
	cfg, err := config.LoadFile(path)
	if err != nil {
		fmt.Printf("Ignoring unreadable config: %v\n\n", err)
		cfg = config.Default()
	}

	fmt.Println("-- Dial --")
	cfg.Dial.Background = promptChoice(reader, "Background", cfg.Dial.Background, wheel.Names())
	cfg.Dial.BorderWidth = promptInt(reader, "Border width (px)", cfg.Dial.BorderWidth)
	cfg.Dial.Alpha = angle.Radians(promptFloat(reader, "Alpha (degrees)", angle.Degrees(cfg.Dial.Alpha)))
	cfg.Dial.Beta = angle.Radians(promptFloat(reader, "Beta (degrees)", angle.Degrees(cfg.Dial.Beta)))
	cfg.Dial.Clockwise = promptBool(reader, "Sweep clockwise", cfg.Dial.Clockwise)
	fmt.Println()

	fmt.Println("-- Window --")
	cfg.Window.Width = promptInt(reader, "Width", cfg.Window.Width)
	cfg.Window.Height = promptInt(reader, "Height", cfg.Window.Height)
	fmt.Println()

	fmt.Println("-- Stream Deck --")
	cfg.Deck.Brightness = promptInt(reader, "Brightness (0-100)", cfg.Deck.Brightness)
	cfg.Deck.StripX = promptInt(reader, "Dial position on strip (px from left)", cfg.Deck.StripX)
	cfg.Deck.RotateStep = promptFloat(reader, "Degrees per dial detent", cfg.Deck.RotateStep)
	fmt.Println()

	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.Clamp()

	if err := config.WriteFile(path, cfg); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	fmt.Printf("Config written to %s\n", path)
	fmt.Println("Setup complete!")
	return nil
}

// prompt asks for a value with an optional default.
func prompt(reader *bufio.Reader, label, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("  %s [%s]: ", label, defaultVal)
	} else {
		fmt.Printf("  %s: ", label)
	}
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return defaultVal
	}
	return line
}

// promptParsed re-asks until parse accepts the answer. An empty answer, or
// end of input, yields defaultVal, which must parse.
func promptParsed[T any](reader *bufio.Reader, label, defaultVal string, parse func(string) (T, error)) T {
	for {
		v, err := parse(prompt(reader, label, defaultVal))
		if err == nil {
			return v
		}
		fmt.Printf("  -> %v\n", err)
	}
}

func promptInt(reader *bufio.Reader, label string, def int) int {
	return promptParsed(reader, label, strconv.Itoa(def), strconv.Atoi)
}

func promptFloat(reader *bufio.Reader, label string, def float64) float64 {
	return promptParsed(reader, label, strconv.FormatFloat(def, 'f', -1, 64), func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

func promptBool(reader *bufio.Reader, label string, def bool) bool {
	return promptParsed(reader, label, strconv.FormatBool(def), strconv.ParseBool)
}

func promptChoice(reader *bufio.Reader, label, def string, choices []string) string {
	return promptParsed(reader, fmt.Sprintf("%s %v", label, choices), def, func(s string) (string, error) {
		if _, err := wheel.Lookup(s); err != nil {
			return "", err
		}
		return s, nil
	})
}
