package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	op := Decode(0xD1, 0x2F)

	assert.Equal(t, Opcode(0xD12F), op)
	assert.Equal(t, uint8(0xD), op.Kind())
	assert.Equal(t, uint8(0x1), op.X())
	assert.Equal(t, uint8(0x2), op.Y())
	assert.Equal(t, uint8(0xF), op.N())
	assert.Equal(t, uint8(0x2F), op.NN())
	assert.Equal(t, uint16(0x12F), op.NNN())
}

func TestOpcodeString(t *testing.T) {
	tests := []struct {
		op       Opcode
		expected string
	}{
		{0x00E0, "CLS"},
		{0x00EE, "RET"},
		{0x0123, "SYS 123"},
		{0x1ABC, "JP ABC"},
		{0x2206, "CALL 206"},
		{0x3A07, "SE VA, 07"},
		{0x4B10, "SNE VB, 10"},
		{0x5120, "SE V1, V2"},
		{0x5121, "DW 5121"},
		{0x6CFF, "LD VC, FF"},
		{0x7D01, "ADD VD, 01"},
		{0x8120, "LD V1, V2"},
		{0x8121, "OR V1, V2"},
		{0x8122, "AND V1, V2"},
		{0x8123, "XOR V1, V2"},
		{0x8124, "ADD V1, V2"},
		{0x8125, "SUB V1, V2"},
		{0x8126, "SHR V1, V2"},
		{0x8127, "SUBN V1, V2"},
		{0x812E, "SHL V1, V2"},
		{0x812F, "DW 812F"},
		{0x9340, "SNE V3, V4"},
		{0xA2F0, "LD I, 2F0"},
		{0xB300, "JP V0, 300"},
		{0xC50F, "RND V5, 0F"},
		{0xD015, "DRW V0, V1, 5"},
		{0xE29E, "SKP V2"},
		{0xE2A1, "SKNP V2"},
		{0xE200, "DW E200"},
		{0xF107, "LD V1, DT"},
		{0xF10A, "LD V1, K"},
		{0xF115, "LD DT, V1"},
		{0xF118, "LD ST, V1"},
		{0xF11E, "ADD I, V1"},
		{0xF129, "LD F, V1"},
		{0xF133, "LD B, V1"},
		{0xF155, "LD [I], V1"},
		{0xF165, "LD V1, [I]"},
		{0xF1FF, "DW F1FF"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.op.String())
		})
	}
}
