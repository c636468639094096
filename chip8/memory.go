package chip8

const (
	MemorySize          = 4096
	FontStartAddress    = 0x50
	FontGlyphSize       = 5
	ProgramStartAddress = 0x200

	// MaxProgramSize is the largest image Load accepts.
	MaxProgramSize = MemorySize - ProgramStartAddress
)

var fontSet = [16 * FontGlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Glyph returns the font sprite for the hex digit in the low nibble of d.
func Glyph(d uint8) []byte {
	start := int(d&0x0F) * FontGlyphSize
	return fontSet[start : start+FontGlyphSize]
}

// Memory is the flat 4K address space.
type Memory [MemorySize]byte

// span reports whether n bytes starting at loc are addressable. On failure it
// returns the first address that is not.
func span(loc uint16, n int) (uint16, bool) {
	end := int(loc) + n
	if end <= MemorySize {
		return 0, true
	}
	if int(loc) >= MemorySize {
		return loc, false
	}
	return MemorySize, false
}

// Read fills data from loc onwards. It fails without copying anything when
// the range is not fully addressable, returning the first bad address.
func (m *Memory) Read(loc uint16, data []byte) (uint16, bool) {
	if bad, ok := span(loc, len(data)); !ok {
		return bad, false
	}
	copy(data, m[loc:])
	return 0, true
}

// Write stores data from loc onwards, with the same all or nothing bounds
// rule as Read.
func (m *Memory) Write(loc uint16, data []byte) (uint16, bool) {
	if bad, ok := span(loc, len(data)); !ok {
		return bad, false
	}
	copy(m[loc:], data)
	return 0, true
}

func (m *Memory) installFont() {
	copy(m[FontStartAddress:], fontSet[:])
}
