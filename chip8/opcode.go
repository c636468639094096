/*
 * Copyright 2026 Joshua Jones <joshua.jones.software@gmail.com>
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      www.apache.org
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package chip8

import "chip8vm/byteconv"

// Opcode is a raw 16bit instruction word. Every value decodes; whether it
// names a defined instruction is decided at dispatch.
type Opcode uint16

// Decode joins the two bytes of an instruction, high-order byte first.
func Decode(high, low byte) Opcode {
	return Opcode(uint16(high)<<8 | uint16(low))
}

// Kind is the top nibble, selecting the instruction family.
func (o Opcode) Kind() uint8 {
	return uint8((uint16(o) & 0xF000) >> 12)
}

// X is the first register operand.
func (o Opcode) X() uint8 {
	return uint8((uint16(o) & 0x0F00) >> 8)
}

// Y is the second register operand.
func (o Opcode) Y() uint8 {
	return uint8((uint16(o) & 0x00F0) >> 4)
}

// N is the low nibble, the sprite height for DXYN.
func (o Opcode) N() uint8 {
	return uint8(uint16(o) & 0x000F)
}

// NN is the low byte immediate.
func (o Opcode) NN() uint8 {
	return uint8(uint16(o) & 0x00FF)
}

// NNN is the 12bit address operand.
func (o Opcode) NNN() uint16 {
	return uint16(o) & 0x0FFF
}

func u16toh(i uint16, n int) string {
	return byteconv.U16toh(i, n)
}

func u8toh(i uint8, n int) string {
	return byteconv.U8toh(i, n)
}

func (o Opcode) vx() string {
	return "V" + u8toh(o.X(), 1)
}

func (o Opcode) vy() string {
	return "V" + u8toh(o.Y(), 1)
}

func (o Opcode) String() string {
	var str string

	switch o.Kind() {
	case 0x0:
		switch uint16(o) {
		case 0x00E0:
			str = "CLS"
		case 0x00EE:
			str = "RET"
		default:
			str = "SYS " + u16toh(o.NNN(), 3)
		}
	case 0x1:
		str = "JP " + u16toh(o.NNN(), 3)
	case 0x2:
		str = "CALL " + u16toh(o.NNN(), 3)
	case 0x3:
		str = "SE " + o.vx() + ", " + u8toh(o.NN(), 2)
	case 0x4:
		str = "SNE " + o.vx() + ", " + u8toh(o.NN(), 2)
	case 0x5:
		if o.N() == 0 {
			str = "SE " + o.vx() + ", " + o.vy()
		}
	case 0x6:
		str = "LD " + o.vx() + ", " + u8toh(o.NN(), 2)
	case 0x7:
		str = "ADD " + o.vx() + ", " + u8toh(o.NN(), 2)
	case 0x8:
		switch o.N() {
		case 0x0:
			str = "LD " + o.vx() + ", " + o.vy()
		case 0x1:
			str = "OR " + o.vx() + ", " + o.vy()
		case 0x2:
			str = "AND " + o.vx() + ", " + o.vy()
		case 0x3:
			str = "XOR " + o.vx() + ", " + o.vy()
		case 0x4:
			str = "ADD " + o.vx() + ", " + o.vy()
		case 0x5:
			str = "SUB " + o.vx() + ", " + o.vy()
		case 0x6:
			str = "SHR " + o.vx() + ", " + o.vy()
		case 0x7:
			str = "SUBN " + o.vx() + ", " + o.vy()
		case 0xE:
			str = "SHL " + o.vx() + ", " + o.vy()
		}
	case 0x9:
		if o.N() == 0 {
			str = "SNE " + o.vx() + ", " + o.vy()
		}
	case 0xA:
		str = "LD I, " + u16toh(o.NNN(), 3)
	case 0xB:
		str = "JP V0, " + u16toh(o.NNN(), 3)
	case 0xC:
		str = "RND " + o.vx() + ", " + u8toh(o.NN(), 2)
	case 0xD:
		str = "DRW " + o.vx() + ", " + o.vy() + ", " + u8toh(o.N(), 1)
	case 0xE:
		switch o.NN() {
		case 0x9E:
			str = "SKP " + o.vx()
		case 0xA1:
			str = "SKNP " + o.vx()
		}
	case 0xF:
		switch o.NN() {
		case 0x07:
			str = "LD " + o.vx() + ", DT"
		case 0x0A:
			str = "LD " + o.vx() + ", K"
		case 0x15:
			str = "LD DT, " + o.vx()
		case 0x18:
			str = "LD ST, " + o.vx()
		case 0x1E:
			str = "ADD I, " + o.vx()
		case 0x29:
			str = "LD F, " + o.vx()
		case 0x33:
			str = "LD B, " + o.vx()
		case 0x55:
			str = "LD [I], " + o.vx()
		case 0x65:
			str = "LD " + o.vx() + ", [I]"
		}
	}

	if str == "" {
		// Not an instruction, render it the way an assembler would emit data.
		str = "DW " + u16toh(uint16(o), 4)
	}
	return str
}
