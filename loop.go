package chip8vm

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"chip8vm/chip8"
	"chip8vm/keypad"

	"github.com/retroenv/retrogolib/log"
)

// host is a frontend the run loop reports to. Both methods are called from
// the loop goroutine, which owns the machine, so a host may read machine
// state from inside them.
type host interface {
	// stepped follows every executed instruction, with the address it was
	// fetched from.
	stepped(pc uint16, op chip8.Opcode)
	// frame follows every timer tick. redraw is set when the display
	// changed since the previous frame.
	frame(display []byte, redraw bool)
}

// Emulator drives one machine for a frontend.
type Emulator struct {
	opts    Options
	logger  *log.Logger
	machine *chip8.Machine
	keypad  keypad.Keypad
	beep    Beep
	paused  atomic.Bool
	next    atomic.Bool
}

func New(opts Options, logger *log.Logger) (*Emulator, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	m := chip8.New(chip8.Config{
		Quirks: opts.Quirks,
		Logger: logger,
		Trace:  opts.Trace,
	})

	return &Emulator{
		opts:    opts,
		logger:  logger,
		machine: m,
		beep:    Beep{Tone: opts.Tone},
	}, nil
}

// Load resets the machine and loads a program image.
func (e *Emulator) Load(program []byte) error {
	e.keypad.Reset()
	if err := e.machine.Load(program); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	e.logger.Info("Program loaded", log.Uint16("size", uint16(len(program))))
	return nil
}

// Pause stops instruction execution and timers until resumed.
func (e *Emulator) Pause(paused bool) {
	if e.paused.Swap(paused) != paused {
		if paused {
			e.logger.Info("Paused", log.Hex("pc", e.machine.ProgramCounter()))
		} else {
			e.logger.Info("Resumed")
		}
	}
}

func (e *Emulator) TogglePause() {
	e.Pause(!e.paused.Load())
}

// StepOnce executes a single instruction while paused.
func (e *Emulator) StepOnce() {
	e.next.Store(true)
}

// loop runs the machine until ctx is done or the machine faults. Instructions
// run at the configured clock rate; timers, input and output at TimerRate.
func (e *Emulator) loop(ctx context.Context, h host) error {
	cpuTicker := time.NewTicker(e.opts.ClockRate)
	defer cpuTicker.Stop()

	frameTicker := time.NewTicker(chip8.TimerRate)
	defer frameTicker.Stop()

	defer e.sound(ctx, false)

	var display []byte
	redraw := true

	e.logger.Debug("Run loop started",
		log.String("clock", e.opts.ClockRate.String()),
		log.String("state", e.machine.State().String()))

	for {
		select {
		case <-ctx.Done():
			e.logger.Debug("Run loop stopped")
			return nil

		case now := <-frameTicker.C:
			e.machine.SetKeys(e.keypad.Snapshot(now))

			if !e.paused.Load() {
				e.machine.Tick()
			}
			e.sound(ctx, !e.paused.Load() && e.machine.SoundTimer() > 0)

			display = e.machine.Frame(display)
			h.frame(display, redraw)
			redraw = false

		case <-cpuTicker.C:
			if e.paused.Load() && !e.next.CompareAndSwap(true, false) {
				continue
			}

			pc := e.machine.ProgramCounter()
			op, _ := e.machine.OpcodeAt(pc)
			waiting := e.machine.State() == chip8.WaitingForKey

			info, err := e.machine.Step()
			if err != nil {
				return fmt.Errorf("emulation halted: %w", err)
			}

			if info&chip8.Redraw != 0 {
				redraw = true
			}
			if !waiting {
				h.stepped(pc, op)
			}
		}
	}
}

func (e *Emulator) sound(ctx context.Context, on bool) {
	if e.opts.Mute {
		return
	}
	if err := e.beep.Set(ctx, on); err != nil {
		e.logger.Warn("Beeper failed", log.Err(err))
	}
}
