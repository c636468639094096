package chip8vm

import (
	"errors"
	"fmt"
	"time"

	"chip8vm/chip8"

	"github.com/retroenv/retrogolib/log"
)

// Options configures an Emulator.
type Options struct {
	// ClockRate is the delay between two instructions.
	ClockRate time.Duration
	Quirks    chip8.Quirks
	// Scale is the size of one CHIP-8 pixel in the GUI window.
	Scale int
	// Headless runs in the terminal instead of a window.
	Headless bool
	Mute     bool
	// Tone is the beeper frequency in Hz.
	Tone float64
	// Trace logs every executed instruction.
	Trace bool
}

func DefaultOptions() Options {
	return Options{
		ClockRate: chip8.ClockRate,
		Quirks:    chip8.QuirksCOSMAC,
		Scale:     10,
		Tone:      440.0,
	}
}

func (o Options) Validate() error {
	if o.ClockRate <= 0 {
		return errors.New("clock rate must be positive")
	}
	if o.ClockRate > chip8.TimerRate {
		return fmt.Errorf("clock rate %v is slower than the %v timer rate", o.ClockRate, chip8.TimerRate)
	}
	if o.Scale < 1 || o.Scale > 40 {
		return fmt.Errorf("scale %d out of range 1-40", o.Scale)
	}
	if o.Tone < 20 || o.Tone > 20000 {
		return fmt.Errorf("tone %.0fHz outside the audible range", o.Tone)
	}
	return nil
}

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
