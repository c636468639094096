// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"io"
	"time"

	"chip8vm/chip8"
)

// Program holds the parsed command line.
type Program struct {
	ROM string

	ClockRate time.Duration
	Quirks    chip8.Quirks
	Scale     int
	Tone      float64

	Headless bool
	Mute     bool
	Trace    bool
	Debug    bool
	Quiet    bool
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage(w io.Writer) {
	_, _ = fmt.Fprintf(w, "usage: chip8vm [options] <program file>\n\n")
	if e.flags != nil {
		e.flags.SetOutput(w)
		e.flags.PrintDefaults()
	}
	_, _ = fmt.Fprintln(w)
}

// quirkFlags override single quirks of the selected preset.
type quirkFlags struct {
	vfReset, shiftVY, memIndex, jumpVX, wrap, indexFlag, sys bool
}

// ParseFlags parses the arguments following the program name.
func ParseFlags(args []string) (Program, error) {
	flags := flag.NewFlagSet("chip8vm", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts Program
	var clock int
	var preset string
	var quirks quirkFlags

	flags.IntVar(&clock, "clock", 700, "instructions executed per second")
	flags.StringVar(&preset, "quirks", "cosmac", "quirks preset (cosmac/vip/modern/schip)")
	flags.IntVar(&opts.Scale, "scale", 10, "window pixels per display pixel")
	flags.Float64Var(&opts.Tone, "tone", 440, "beeper frequency in Hz")
	flags.BoolVar(&opts.Headless, "headless", false, "render in the terminal instead of a window")
	flags.BoolVar(&opts.Mute, "mute", false, "disable the beeper")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")

	flags.BoolVar(&quirks.vfReset, "vfreset", false, "8XY1/8XY2/8XY3 reset VF")
	flags.BoolVar(&quirks.shiftVY, "shiftvy", false, "8XY6/8XYE shift VY into VX")
	flags.BoolVar(&quirks.memIndex, "memindex", false, "FX55/FX65 advance I")
	flags.BoolVar(&quirks.jumpVX, "jumpvx", false, "BNNN jumps to XNN+VX")
	flags.BoolVar(&quirks.wrap, "wrap", false, "wrap sprites at the display edges instead of clipping")
	flags.BoolVar(&quirks.indexFlag, "indexflag", false, "FX1E sets VF when I passes 0xFFF")
	flags.BoolVar(&quirks.sys, "sys", false, "ignore 0NNN machine code calls")

	if err := flags.Parse(args); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	rest := flags.Args()
	if len(rest) != 1 {
		return opts, &UsageError{flags: flags, msg: "expected exactly one program file"}
	}
	opts.ROM = rest[0]

	if clock <= 0 {
		return opts, fmt.Errorf("invalid clock rate %d", clock)
	}
	opts.ClockRate = time.Second / time.Duration(clock)

	q, err := chip8.QuirksByName(preset)
	if err != nil {
		return opts, err
	}
	opts.Quirks = applyQuirkFlags(flags, q, quirks)

	if opts.Trace {
		opts.Debug = true
	}
	return opts, nil
}

// applyQuirkFlags copies only the quirk flags given on the command line over
// the preset, so -vfreset=false can clear a preset quirk.
func applyQuirkFlags(flags *flag.FlagSet, q chip8.Quirks, set quirkFlags) chip8.Quirks {
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "vfreset":
			q.VFReset = set.vfReset
		case "shiftvy":
			q.ShiftUsesVY = set.shiftVY
		case "memindex":
			q.MemoryIncrementsIndex = set.memIndex
		case "jumpvx":
			q.JumpUsesVX = set.jumpVX
		case "wrap":
			q.WrapSprites = set.wrap
		case "indexflag":
			q.IndexOverflowFlag = set.indexFlag
		case "sys":
			q.IgnoreSys = set.sys
		}
	})
	return q
}
