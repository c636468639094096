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

import "github.com/retroenv/retrogolib/log"

// Instruction handlers. Any handler that writes a result and a VF flag writes
// the result first, so VF holds the flag when X is 0xF.

func clearScreen(m *Machine, info *uint8) {
	m.display.Clear()
	*info |= Redraw
}

func machineCall(m *Machine, nnn uint16) error {
	if !m.quirks.IgnoreSys {
		return m.fail(UnknownOpcodeFault, m.opPC)
	}
	if m.logger != nil {
		m.logger.Info("Machine code call ignored",
			log.Hex("pc", m.opPC),
			log.Hex("address", nnn))
	}
	return nil
}

func callSubroutine(m *Machine, nnn uint16) error {
	if int(m.sp) >= len(m.stack) {
		return m.fail(StackOverflowFault, m.opPC)
	}
	m.stack[m.sp] = m.pc
	m.sp++
	m.pc = nnn
	return nil
}

func returnFromSubroutine(m *Machine) error {
	if m.sp == 0 {
		return m.fail(StackUnderflowFault, m.opPC)
	}
	m.sp--
	m.pc = m.stack[m.sp]
	return nil
}

func jumpToLocation(m *Machine, nnn uint16) {
	m.pc = nnn
}

func jumpWithOffset(m *Machine, x uint8, nnn uint16) {
	if m.quirks.JumpUsesVX {
		m.pc = nnn + uint16(m.v[x])
		return
	}
	m.pc = nnn + uint16(m.v[0x0])
}

func stepIfXEqualsNN(m *Machine, x, nn uint8) {
	if m.v[x] == nn {
		m.pc += OpcodeSize
	}
}

func stepIfXNotEqualsNN(m *Machine, x, nn uint8) {
	if m.v[x] != nn {
		m.pc += OpcodeSize
	}
}

func stepIfXEqualsY(m *Machine, x, y uint8) {
	if m.v[x] == m.v[y] {
		m.pc += OpcodeSize
	}
}

func stepIfXNotEqualsY(m *Machine, x, y uint8) {
	if m.v[x] != m.v[y] {
		m.pc += OpcodeSize
	}
}

func setXToNN(m *Machine, x, nn uint8) {
	m.v[x] = nn
}

func addNNToX(m *Machine, x, nn uint8) {
	m.v[x] += nn
}

func setXToY(m *Machine, x, y uint8) {
	m.v[x] = m.v[y]
}

func resetFlag(m *Machine) {
	if m.quirks.VFReset {
		m.v[CarryFlag] = 0
	}
}

func orXY(m *Machine, x, y uint8) {
	m.v[x] |= m.v[y]
	resetFlag(m)
}

func andXY(m *Machine, x, y uint8) {
	m.v[x] &= m.v[y]
	resetFlag(m)
}

func xorXY(m *Machine, x, y uint8) {
	m.v[x] ^= m.v[y]
	resetFlag(m)
}

func addXY(m *Machine, x, y uint8) {
	sum := uint16(m.v[x]) + uint16(m.v[y])
	m.v[x] = byte(sum)
	m.v[CarryFlag] = byte(sum >> 8)
}

func subtractYFromX(m *Machine, x, y uint8) {
	vx, vy := m.v[x], m.v[y]
	m.v[x] = vx - vy
	m.v[CarryFlag] = flag(vx >= vy)
}

func subtractXFromY(m *Machine, x, y uint8) {
	vx, vy := m.v[x], m.v[y]
	m.v[x] = vy - vx
	m.v[CarryFlag] = flag(vy >= vx)
}

func shiftSource(m *Machine, x, y uint8) byte {
	if m.quirks.ShiftUsesVY {
		return m.v[y]
	}
	return m.v[x]
}

func shiftRightX(m *Machine, x, y uint8) {
	src := shiftSource(m, x, y)
	m.v[x] = src >> 1
	m.v[CarryFlag] = src & 0x1
}

func shiftLeftX(m *Machine, x, y uint8) {
	src := shiftSource(m, x, y)
	m.v[x] = src << 1
	m.v[CarryFlag] = src >> 7
}

func setIToNNN(m *Machine, nnn uint16) {
	m.i = nnn
}

func setXToRandom(m *Machine, x, nn uint8) {
	m.v[x] = m.random.Uint8() & nn
}

func drawSprite(m *Machine, x, y, n uint8, info *uint8) error {
	var sprite [15]byte
	rows := sprite[:n]
	if bad, ok := m.memory.Read(m.i, rows); !ok {
		return m.fail(MemoryAccessFault, bad)
	}

	collision := m.display.Draw(rows, m.v[x], m.v[y], m.quirks.WrapSprites)
	m.v[CarryFlag] = flag(collision)
	*info |= Redraw
	return nil
}

func stepIfKeyDown(m *Machine, x uint8) {
	key := m.v[x] & 0x0F
	if m.keys[key] {
		m.pc += OpcodeSize
	}
}

func stepIfKeyUp(m *Machine, x uint8) {
	key := m.v[x] & 0x0F
	if !m.keys[key] {
		m.pc += OpcodeSize
	}
}

func setXToDelay(m *Machine, x uint8) {
	m.v[x] = m.delay
}

// waitForKey parks the machine until a key that is up now goes down. Keys
// already held when the wait starts do not count until released.
func waitForKey(m *Machine, x uint8) {
	m.state = WaitingForKey
	m.waitReg = x
	m.waitKeys = m.keys
}

func setDelayToX(m *Machine, x uint8) {
	m.delay = m.v[x]
}

func setSoundToX(m *Machine, x uint8) {
	m.sound = m.v[x]
}

func addXToI(m *Machine, x uint8) {
	sum := uint32(m.i) + uint32(m.v[x])
	m.i = uint16(sum)
	if m.quirks.IndexOverflowFlag {
		m.v[CarryFlag] = flag(sum > MemorySize-1)
	}
}

func setIToSymbol(m *Machine, x uint8) {
	digit := uint16(m.v[x] & 0x0F)
	m.i = FontStartAddress + digit*FontGlyphSize
}

func binaryCodedDecimal(m *Machine, x uint8) error {
	// Double dabble: shift the value in one bit at a time, adding 3 to any
	// decimal nibble that is 5 or more before the shift so it carries into
	// the next nibble.
	var bcd uint32

	val := uint32(m.v[x])

	for i := range 8 {
		if (bcd & 0x00F) >= 5 {
			bcd += 3
		}
		if (bcd & 0x0F0) >= 0x050 {
			bcd += 0x030
		}
		if (bcd & 0xF00) >= 0x500 {
			bcd += 0x300
		}
		bcd = (bcd << 1) | ((val >> (7 - i)) & 1)
	}

	digits := [3]byte{
		byte((bcd >> 8) & 0xF), // Hundreds
		byte((bcd >> 4) & 0xF), // Tens
		byte(bcd & 0xF),        // Ones
	}
	if bad, ok := m.memory.Write(m.i, digits[:]); !ok {
		return m.fail(MemoryAccessFault, bad)
	}
	return nil
}

func setRegistersToMemory(m *Machine, x uint8) error {
	if bad, ok := m.memory.Write(m.i, m.v[:x+1]); !ok {
		return m.fail(MemoryAccessFault, bad)
	}
	if m.quirks.MemoryIncrementsIndex {
		m.i += uint16(x) + 1
	}
	return nil
}

func setMemoryToRegisters(m *Machine, x uint8) error {
	if bad, ok := m.memory.Read(m.i, m.v[:x+1]); !ok {
		return m.fail(MemoryAccessFault, bad)
	}
	if m.quirks.MemoryIncrementsIndex {
		m.i += uint16(x) + 1
	}
	return nil
}

func flag(b bool) byte {
	if b {
		return 1
	}
	return 0
}
