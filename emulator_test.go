package chip8vm

import (
	"image/color"
	"testing"

	"chip8vm/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestFrameImageIsIndependentOfSnapshot(t *testing.T) {
	display := make([]byte, chip8.Area)
	display[0] = 1
	display[chip8.Width+1] = 1

	img := frameImage(display)
	assert.Equal(t, chip8.Width, img.Bounds().Dx())
	assert.Equal(t, chip8.Height, img.Bounds().Dy())

	white := color.RGBAModel.Convert(color.White)
	black := color.RGBAModel.Convert(color.Black)
	assert.Equal(t, white, img.At(0, 0))
	assert.Equal(t, white, img.At(1, 1))
	assert.Equal(t, black, img.At(1, 0))

	// The loop reuses its snapshot buffer for the next frame.
	display[0] = 0
	assert.Equal(t, white, img.At(0, 0))

	next := frameImage(display)
	assert.Equal(t, black, next.At(0, 0))
	assert.Equal(t, white, img.At(0, 0))
}
