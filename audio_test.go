package chip8vm

import (
	"context"
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestBeepErrorIsPerBeep(t *testing.T) {
	errDevice := errors.New("no output device")

	var calls int
	b := Beep{
		play: func(ctx context.Context) error {
			calls++
			if calls == 1 {
				return errDevice
			}
			return nil
		},
	}
	ctx := context.Background()

	assert.NoError(t, b.Set(ctx, true))
	assert.ErrorIs(t, b.Set(ctx, false), errDevice)

	assert.NoError(t, b.Set(ctx, true))
	assert.NoError(t, b.Set(ctx, false))
	assert.Equal(t, 2, calls)
}

func TestBeepSetIsIdempotent(t *testing.T) {
	var calls int
	b := Beep{
		play: func(ctx context.Context) error {
			calls++
			return nil
		},
	}
	ctx := context.Background()

	assert.NoError(t, b.Stop())

	b.Start(ctx)
	b.Start(ctx)
	assert.NoError(t, b.Stop())
	assert.NoError(t, b.Stop())
	assert.Equal(t, 1, calls)
}
