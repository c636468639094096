package chip8vm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"chip8vm/byteconv"
	"chip8vm/chip8"
	"chip8vm/keypad"
	"chip8vm/termview"

	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// Terminals only report key presses, so a typed key is held down for this
// long before it is released again.
const tapHold = 150 * time.Millisecond

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1b
)

// terminal is the headless host. It draws the display with half blocks and a
// status line below it.
type terminal struct {
	machine *chip8.Machine
	out     io.Writer
	last    string
	lines   []string
}

func (t *terminal) stepped(uint16, chip8.Opcode) {}

func (t *terminal) frame(display []byte, redraw bool) {
	if redraw || t.lines == nil {
		t.lines = termview.Render(display, chip8.Width)
	}

	status := fmt.Sprintf("PC %s  I %s  DT %3d  ST %3d  %-14s",
		byteconv.U16toh(t.machine.ProgramCounter(), 3),
		byteconv.U16toh(t.machine.Index(), 3),
		t.machine.DelayTimer(),
		t.machine.SoundTimer(),
		t.machine.State())

	if !redraw && status == t.last {
		return
	}
	t.last = status

	var sb strings.Builder
	sb.WriteString("\x1b[H")
	for _, line := range t.lines {
		sb.WriteString(line)
		sb.WriteString("\r\n")
	}
	sb.WriteString(status)
	sb.WriteString("\r\n[p] pause  [n] step  [esc] quit")
	_, _ = io.WriteString(t.out, sb.String())
}

// RunTerminal runs the loaded program in the current terminal until Escape
// or Ctrl+C is typed, ctx is done or the machine faults.
func (e *Emulator) RunTerminal(ctx context.Context) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("headless mode requires an interactive terminal")
	}

	if width, height, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		if width < chip8.Width || height < chip8.Height/2+2 {
			e.logger.Warn("Terminal is smaller than the display",
				log.String("size", fmt.Sprintf("%dx%d", width, height)))
		}
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("setting raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	fmt.Print("\x1b[2J\x1b[?25l")
	defer fmt.Print("\x1b[?25h\r\n")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	input := make(chan byte, 16)
	go readInput(os.Stdin, input)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return e.loop(ctx, &terminal{machine: e.machine, out: os.Stdout})
	})

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case b, ok := <-input:
				if !ok || b == keyCtrlC || b == keyEscape {
					cancel()
					return nil
				}
				e.handleInput(b)
			}
		}
	})

	return g.Wait()
}

func (e *Emulator) handleInput(b byte) {
	r := rune(b)
	if key, ok := keypad.Lookup(r); ok {
		e.keypad.Tap(key, time.Now(), tapHold)
		return
	}

	switch r {
	case 'p', 'P':
		e.TogglePause()
	case 'n', 'N':
		e.StepOnce()
	}
}

// readInput forwards bytes from r until it fails. The blocking read is left
// behind when the terminal session ends.
func readInput(r io.Reader, input chan<- byte) {
	defer close(input)
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			input <- buf[0]
		}
		if err != nil {
			return
		}
	}
}
