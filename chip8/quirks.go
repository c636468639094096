package chip8

import (
	"fmt"
	"strings"
)

// Quirks selects between historically divergent interpretations of the
// instruction set.
type Quirks struct {
	// VFReset zeroes VF after 8XY1, 8XY2 and 8XY3.
	VFReset bool
	// ShiftUsesVY makes 8XY6 and 8XYE shift VY into VX instead of shifting
	// VX in place.
	ShiftUsesVY bool
	// MemoryIncrementsIndex leaves I at I+X+1 after FX55 and FX65.
	MemoryIncrementsIndex bool
	// JumpUsesVX turns BNNN into BXNN, jumping to XNN+VX.
	JumpUsesVX bool
	// WrapSprites wraps sprite pixels that pass the right or bottom edge
	// around to the opposite side. Clipped otherwise.
	WrapSprites bool
	// IndexOverflowFlag sets VF when FX1E moves I past 0xFFF.
	IndexOverflowFlag bool
	// IgnoreSys skips 0NNN machine code calls instead of faulting.
	IgnoreSys bool
}

var (
	// QuirksCOSMAC follows the original COSMAC VIP interpreter.
	QuirksCOSMAC = Quirks{
		VFReset:               true,
		ShiftUsesVY:           true,
		MemoryIncrementsIndex: true,
	}

	// QuirksModern follows CHIP-48 / SUPER-CHIP era interpreters.
	QuirksModern = Quirks{
		JumpUsesVX: true,
		IgnoreSys:  true,
	}
)

var quirkPresets = map[string]Quirks{
	"cosmac": QuirksCOSMAC,
	"vip":    QuirksCOSMAC,
	"modern": QuirksModern,
	"schip":  QuirksModern,
}

// QuirksByName returns a preset by name, case insensitive.
func QuirksByName(name string) (Quirks, error) {
	q, ok := quirkPresets[strings.ToLower(name)]
	if !ok {
		return Quirks{}, fmt.Errorf("unknown quirks preset '%s', valid presets: cosmac, vip, modern, schip", name)
	}
	return q, nil
}
