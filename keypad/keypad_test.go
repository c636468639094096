package keypad

import (
	"testing"
	"time"

	"chip8vm/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		r   rune
		key uint8
		ok  bool
	}{
		{'1', 0x1, true},
		{'4', 0xC, true},
		{'x', 0x0, true},
		{'X', 0x0, true},
		{'V', 0xF, true},
		{'p', 0, false},
		{'\x1b', 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			key, ok := Lookup(tt.r)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestLayoutCoversAllKeys(t *testing.T) {
	var seen chip8.Keys
	for _, key := range Layout {
		seen[key] = true
	}
	assert.Equal(t, chip8.KeyCount, len(Layout))
	for _, ok := range seen {
		assert.True(t, ok)
	}
}

func TestKeypadSet(t *testing.T) {
	var k Keypad
	now := time.Now()

	k.Set(0x5, true)
	k.Set(0x20, true)
	keys := k.Snapshot(now)
	assert.True(t, keys[0x5])

	k.Set(0x5, false)
	assert.Equal(t, chip8.Keys{}, k.Snapshot(now))
}

func TestKeypadTap(t *testing.T) {
	var k Keypad
	now := time.Now()

	k.Tap(0xA, now, 100*time.Millisecond)
	assert.True(t, k.Snapshot(now.Add(50*time.Millisecond))[0xA])
	assert.False(t, k.Snapshot(now.Add(100*time.Millisecond))[0xA])

	// A held key is not released by time.
	k.Set(0xB, true)
	assert.True(t, k.Snapshot(now.Add(time.Hour))[0xB])

	k.Reset()
	assert.Equal(t, chip8.Keys{}, k.Snapshot(now))
}
