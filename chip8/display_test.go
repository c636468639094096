package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func litPixels(d *Display) int {
	var n int
	for _, p := range d {
		n += int(p)
	}
	return n
}

func TestDisplayDrawIsSelfInverse(t *testing.T) {
	var d Display
	// Some unrelated content that must survive both draws.
	d.Draw([]byte{0xFF}, 30, 20, false)
	before := d

	sprite := []byte{0xBA, 0x7C, 0xD6, 0xFE, 0x54, 0xAA}

	collision := d.Draw(sprite, 10, 5, false)
	assert.False(t, collision)
	assert.True(t, d != before)

	collision = d.Draw(sprite, 10, 5, false)
	assert.True(t, collision)
	assert.Equal(t, before, d)
}

func TestDisplayDrawCollision(t *testing.T) {
	var d Display

	assert.False(t, d.Draw([]byte{0x80}, 0, 0, false))
	// Lights a neighbour only, nothing turns off.
	assert.False(t, d.Draw([]byte{0x40}, 0, 0, false))
	// Turns 0,0 off again.
	assert.True(t, d.Draw([]byte{0x80}, 0, 0, false))

	assert.False(t, d.Pixel(0, 0))
	assert.True(t, d.Pixel(1, 0))
}

func TestDisplayDrawWrapsStartCoordinates(t *testing.T) {
	var d Display

	d.Draw([]byte{0x80}, uint8(Width+3), uint8(Height+2), false)

	assert.True(t, d.Pixel(3, 2))
	assert.Equal(t, 1, litPixels(&d))
}

func TestDisplayDrawClipsAtEdges(t *testing.T) {
	var d Display

	d.Draw([]byte{0xFF, 0xFF, 0xFF}, uint8(Width-4), uint8(Height-2), false)

	// 4 columns by 2 rows remain, nothing wraps to the opposite side.
	assert.Equal(t, 8, litPixels(&d))
	assert.True(t, d.Pixel(Width-1, Height-1))
	assert.False(t, d.Pixel(0, 0))
	assert.False(t, d.Pixel(0, Height-1))
}

func TestDisplayDrawWrapsAtEdges(t *testing.T) {
	var d Display

	d.Draw([]byte{0xFF, 0xFF, 0xFF}, uint8(Width-4), uint8(Height-2), true)

	assert.Equal(t, 24, litPixels(&d))
	assert.True(t, d.Pixel(0, 0))
	assert.True(t, d.Pixel(3, 0))
	assert.False(t, d.Pixel(4, 0))
}

func TestDisplayClearAndSnapshot(t *testing.T) {
	var d Display
	d.Draw([]byte{0xF0}, 0, 0, false)

	frame := d.Snapshot(nil)
	assert.Len(t, frame, Area)
	assert.Equal(t, byte(1), frame[0])
	assert.Equal(t, byte(0), frame[4])

	// The snapshot is a copy.
	d.Clear()
	assert.Equal(t, byte(1), frame[0])
	assert.Equal(t, 0, litPixels(&d))

	reused := d.Snapshot(frame)
	assert.Equal(t, byte(0), reused[0])
}
