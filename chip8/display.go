package chip8

const (
	Width  int = 64
	Height int = 32
	Area   int = Width * Height

	// SpriteWidth is the number of pixels encoded in one sprite byte.
	SpriteWidth = 8
)

// Display is a row-major monochrome frame, one byte per pixel holding 0 or 1.
type Display [Area]byte

func (d *Display) Clear() {
	for i := range d {
		d[i] = 0
	}
}

// Pixel reports whether the pixel at x, y is lit. Coordinates outside the
// frame read as unlit.
func (d *Display) Pixel(x, y int) bool {
	if x < 0 || y < 0 || x >= Width || y >= Height {
		return false
	}
	return d[x+y*Width] == 1
}

// Draw XORs sprite rows onto the frame with the top left corner at x, y.
// The start coordinates wrap around the frame. Pixels that run past the right
// or bottom edge are clipped, or wrapped when wrap is set. Draw reports
// whether any lit pixel was turned off.
func (d *Display) Draw(sprite []byte, x, y uint8, wrap bool) bool {
	startX := int(x) % Width
	startY := int(y) % Height

	var collision bool

	for row, line := range sprite {
		py := startY + row
		if py >= Height {
			if !wrap {
				// Reached the bottom of the display.
				break
			}
			py %= Height
		}

		for col := range SpriteWidth {
			if line&(0x80>>col) == 0 {
				continue
			}

			px := startX + col
			if px >= Width {
				if !wrap {
					break
				}
				px %= Width
			}

			index := px + py*Width
			if d[index] == 1 {
				// Pixel was already on. This indicates a graphical object collision.
				collision = true
			}
			d[index] ^= 1
		}
	}
	return collision
}

// Snapshot copies the frame into dst, allocating when dst is too small.
func (d *Display) Snapshot(dst []byte) []byte {
	if len(dst) < Area {
		dst = make([]byte, Area)
	}
	copy(dst, d[:])
	return dst[:Area]
}
