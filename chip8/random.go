package chip8

import "math/rand/v2"

// RandomSource supplies uniformly distributed bytes to RND.
type RandomSource interface {
	Uint8() uint8
}

// RandomFunc adapts a function to RandomSource.
type RandomFunc func() uint8

func (f RandomFunc) Uint8() uint8 {
	return f()
}

type globalRandom struct{}

func (globalRandom) Uint8() uint8 {
	return byte(rand.Uint32N(256))
}
