// Package keypad collects host key events into snapshots of the 16 key hex
// keypad.
package keypad

import (
	"sync"
	"time"

	"chip8vm/chip8"
)

// Layout maps the conventional QWERTY block onto the hex keypad:
//
//	1 2 3 4      1 2 3 C
//	Q W E R      4 5 6 D
//	A S D F  ->  7 8 9 E
//	Z X C V      A 0 B F
var Layout = map[rune]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Lookup maps a host character to a keypad key, ignoring case.
func Lookup(r rune) (uint8, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	key, ok := Layout[r]
	return key, ok
}

// Keypad is written by input callbacks and read once per frame by the run
// loop, so it is safe for concurrent use.
type Keypad struct {
	mu    sync.Mutex
	down  chip8.Keys
	until [chip8.KeyCount]time.Time
}

// Set presses or releases a key.
func (k *Keypad) Set(key uint8, pressed bool) {
	if int(key) >= chip8.KeyCount {
		return
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	k.down[key] = pressed
	k.until[key] = time.Time{}
}

// Tap presses a key and releases it once hold has passed. Used by hosts
// that report presses but no releases.
func (k *Keypad) Tap(key uint8, now time.Time, hold time.Duration) {
	if int(key) >= chip8.KeyCount {
		return
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	k.down[key] = true
	k.until[key] = now.Add(hold)
}

// Snapshot returns the keys held at now, releasing expired taps.
func (k *Keypad) Snapshot(now time.Time) chip8.Keys {
	k.mu.Lock()
	defer k.mu.Unlock()

	for i := range k.down {
		if k.down[i] && !k.until[i].IsZero() && !now.Before(k.until[i]) {
			k.down[i] = false
			k.until[i] = time.Time{}
		}
	}
	return k.down
}

// Reset releases every key.
func (k *Keypad) Reset() {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.down = chip8.Keys{}
	k.until = [chip8.KeyCount]time.Time{}
}
