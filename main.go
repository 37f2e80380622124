// main.go - Main entry point for the HackVM fantasy console

/*
(c) 2024 - 2026 Kade Angell
https://github.com/kadeangell/hackvm
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kadeangell/hackvm/assembler"
)

// Default CPU clock. Step stops at each DISPLAY and the front-ends call Step
// once per tick, so a frame-per-DISPLAY program presents at most one frame
// per tick (60Hz in the window).
const DEFAULT_CLOCK_HZ = 4_000_000

var (
	flagHeadless   bool
	flagScale      int
	flagFullscreen bool
	flagClockHz    uint32
	flagOutput     string
)

var rootCmd = &cobra.Command{
	Use:   "hackvm",
	Short: "HackVM - a 16-bit fantasy console",
	Long: `HackVM is a 16-bit fantasy console: a register machine with a
128x128 RGB332 framebuffer, a text console, keyboard and wall-clock timers,
plus a two-pass assembler for its instruction set.`,
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run <program.{asm,bin}>",
	Short: "Boot the machine with a program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		image, err := LoadImage(args[0])
		if err != nil {
			return err
		}

		m := NewMachine()
		m.LoadProgram(image)

		config := DisplayConfig{
			Scale:      flagScale,
			Fullscreen: flagFullscreen,
			Title:      "HackVM",
			ClockHz:    flagClockHz,
		}

		if flagHeadless {
			return NewTerminalFrontend(config).Run(m)
		}
		frontend, err := NewFrontend(config)
		if err != nil {
			return err
		}
		return frontend.Run(m)
	},
}

var asmCmd = &cobra.Command{
	Use:   "asm <source.asm>",
	Short: "Assemble a source file to a flat binary image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		image, errs := assembler.Assemble(string(source))
		if len(errs) > 0 {
			for _, e := range errs {
				fmt.Fprintf(os.Stderr, "%s:%v\n", args[0], e)
			}
			return fmt.Errorf("assembly failed with %d error(s)", len(errs))
		}

		out := flagOutput
		if out == "" {
			out = strings.TrimSuffix(args[0], ".asm") + ".bin"
		}
		if err := os.WriteFile(out, image, 0644); err != nil {
			return err
		}
		fmt.Printf("assembled %s (%d bytes)\n", out, len(image))
		return nil
	},
}

func main() {
	runCmd.Flags().BoolVar(&flagHeadless, "headless", false, "run in the terminal without a window")
	runCmd.Flags().IntVar(&flagScale, "scale", 4, "window scale factor")
	runCmd.Flags().BoolVar(&flagFullscreen, "fullscreen", false, "start fullscreen")
	runCmd.Flags().Uint32Var(&flagClockHz, "hz", DEFAULT_CLOCK_HZ, "CPU clock in cycles per second")
	asmCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output file (default: source with .bin extension)")

	rootCmd.AddCommand(runCmd, asmCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
