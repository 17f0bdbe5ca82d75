// Package app assembles a machine from configuration and a set of
// peripherals. The hardware entry point and the desktop emulator share it.
package app

import (
	"io"
	"log"
	"os"
	"time"

	"micro-life/internal/config"
	"micro-life/internal/core"
	"micro-life/internal/hw"
	"micro-life/internal/machine"
)

// Inputs are the four controls of the device.
type Inputs struct {
	Toggle hw.Line
	Button hw.Line
	Pot1   hw.AnalogInput
	Pot2   hw.AnalogInput
}

// Timing converts the configured delays.
func Timing(cfg *config.Config) machine.Timing {
	return machine.Timing{
		Poll:        cfg.PollInterval,
		Frame:       cfg.FrameInterval,
		Debounce:    cfg.Debounce,
		ReleasePoll: cfg.ReleasePoll,
	}
}

// Seed returns the configured RNG seed, or one taken from the clock.
func Seed(cfg *config.Config) int64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return time.Now().UnixNano()
}

// Logger returns the transition logger: stderr when verbose, silent otherwise.
func Logger(cfg *config.Config) *log.Logger {
	if !cfg.Verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "microlife: ", log.Ltime|log.Lmicroseconds)
}

// NewMachine wires a machine to the given display, inputs and clock.
func NewMachine(cfg *config.Config, display hw.Display, in Inputs, clock hw.Clock, logger *log.Logger) *machine.Machine {
	p := machine.Peripherals{
		Display:   display,
		Toggle:    in.Toggle,
		Button:    in.Button,
		Pot1:      in.Pot1,
		Pot2:      in.Pot2,
		FullScale: cfg.ADCFullScale,
		Bits:      core.NewRNG(Seed(cfg)),
		Clock:     clock,
	}
	return machine.New(p, cfg.Layout(), Timing(cfg), logger)
}
