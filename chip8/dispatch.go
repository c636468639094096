package chip8

// execute routes op to its handler. Words that name no instruction halt the
// machine with an UnknownOpcodeFault.
func (m *Machine) execute(op Opcode, info *uint8) error {
	x, y := op.X(), op.Y()

	switch op.Kind() {
	case 0x0:
		switch uint16(op) {
		case 0x00E0:
			clearScreen(m, info)
		case 0x00EE:
			return returnFromSubroutine(m)
		default:
			return machineCall(m, op.NNN())
		}
	case 0x1:
		jumpToLocation(m, op.NNN())
	case 0x2:
		return callSubroutine(m, op.NNN())
	case 0x3:
		stepIfXEqualsNN(m, x, op.NN())
	case 0x4:
		stepIfXNotEqualsNN(m, x, op.NN())
	case 0x5:
		if op.N() != 0 {
			return m.unknown()
		}
		stepIfXEqualsY(m, x, y)
	case 0x6:
		setXToNN(m, x, op.NN())
	case 0x7:
		addNNToX(m, x, op.NN())
	case 0x8:
		switch op.N() {
		case 0x0:
			setXToY(m, x, y)
		case 0x1:
			orXY(m, x, y)
		case 0x2:
			andXY(m, x, y)
		case 0x3:
			xorXY(m, x, y)
		case 0x4:
			addXY(m, x, y)
		case 0x5:
			subtractYFromX(m, x, y)
		case 0x6:
			shiftRightX(m, x, y)
		case 0x7:
			subtractXFromY(m, x, y)
		case 0xE:
			shiftLeftX(m, x, y)
		default:
			return m.unknown()
		}
	case 0x9:
		if op.N() != 0 {
			return m.unknown()
		}
		stepIfXNotEqualsY(m, x, y)
	case 0xA:
		setIToNNN(m, op.NNN())
	case 0xB:
		jumpWithOffset(m, x, op.NNN())
	case 0xC:
		setXToRandom(m, x, op.NN())
	case 0xD:
		return drawSprite(m, x, y, op.N(), info)
	case 0xE:
		switch op.NN() {
		case 0x9E:
			stepIfKeyDown(m, x)
		case 0xA1:
			stepIfKeyUp(m, x)
		default:
			return m.unknown()
		}
	case 0xF:
		switch op.NN() {
		case 0x07:
			setXToDelay(m, x)
		case 0x0A:
			waitForKey(m, x)
		case 0x15:
			setDelayToX(m, x)
		case 0x18:
			setSoundToX(m, x)
		case 0x1E:
			addXToI(m, x)
		case 0x29:
			setIToSymbol(m, x)
		case 0x33:
			return binaryCodedDecimal(m, x)
		case 0x55:
			return setRegistersToMemory(m, x)
		case 0x65:
			return setMemoryToRegisters(m, x)
		default:
			return m.unknown()
		}
	}
	return nil
}

func (m *Machine) unknown() error {
	return m.fail(UnknownOpcodeFault, m.opPC)
}

// fail halts the machine on a fault raised by the instruction being executed.
func (m *Machine) fail(kind FaultKind, address uint16) error {
	return m.halt(&Fault{
		Kind:    kind,
		PC:      m.opPC,
		Address: address,
		Opcode:  m.op,
	})
}
