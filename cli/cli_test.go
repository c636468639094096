package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"chip8vm/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlagsDefaults(t *testing.T) {
	opts, err := ParseFlags([]string{"pong.ch8"})
	assert.NoError(t, err)

	assert.Equal(t, "pong.ch8", opts.ROM)
	assert.Equal(t, time.Second/700, opts.ClockRate)
	assert.Equal(t, chip8.QuirksCOSMAC, opts.Quirks)
	assert.Equal(t, 10, opts.Scale)
	assert.Equal(t, 440.0, opts.Tone)
	assert.False(t, opts.Headless)
	assert.False(t, opts.Debug)
}

func TestParseFlagsQuirks(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want chip8.Quirks
	}{
		{
			name: "modern preset",
			args: []string{"-quirks", "modern", "a.ch8"},
			want: chip8.QuirksModern,
		},
		{
			name: "preset is case insensitive",
			args: []string{"-quirks", "SCHIP", "a.ch8"},
			want: chip8.QuirksModern,
		},
		{
			name: "override clears preset quirk",
			args: []string{"-vfreset=false", "a.ch8"},
			want: chip8.Quirks{ShiftUsesVY: true, MemoryIncrementsIndex: true},
		},
		{
			name: "override adds quirks",
			args: []string{"-quirks", "modern", "-wrap", "-indexflag", "a.ch8"},
			want: chip8.Quirks{JumpUsesVX: true, IgnoreSys: true, WrapSprites: true, IndexOverflowFlag: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := ParseFlags(tt.args)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, opts.Quirks)
		})
	}
}

func TestParseFlagsTraceImpliesDebug(t *testing.T) {
	opts, err := ParseFlags([]string{"-trace", "-headless", "-clock", "1000", "a.ch8"})
	assert.NoError(t, err)
	assert.True(t, opts.Trace)
	assert.True(t, opts.Debug)
	assert.True(t, opts.Headless)
	assert.Equal(t, time.Millisecond, opts.ClockRate)
}

func TestParseFlagsErrors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		usage bool
	}{
		{"no file", nil, true},
		{"two files", []string{"a.ch8", "b.ch8"}, true},
		{"unknown flag", []string{"-turbo", "a.ch8"}, true},
		{"flag after file", []string{"a.ch8", "-mute"}, true},
		{"bad preset", []string{"-quirks", "xo", "a.ch8"}, false},
		{"bad clock", []string{"-clock", "0", "a.ch8"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFlags(tt.args)
			assert.Error(t, err)

			var usageErr *UsageError
			assert.Equal(t, tt.usage, errors.As(err, &usageErr))
		})
	}
}

func TestShowUsage(t *testing.T) {
	_, err := ParseFlags(nil)
	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))

	var buf bytes.Buffer
	usageErr.ShowUsage(&buf)
	assert.True(t, strings.HasPrefix(buf.String(), "usage: chip8vm"))
	assert.True(t, strings.Contains(buf.String(), "-quirks"))
}
