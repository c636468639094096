package chip8

import (
	"errors"
	"fmt"
)

var (
	ErrLoad             = errors.New("program does not fit into memory")
	ErrFetchOutOfBounds = errors.New("program counter out of bounds")
	ErrUnknownOpcode    = errors.New("unknown opcode")
	ErrStackOverflow    = errors.New("stack overflow")
	ErrStackUnderflow   = errors.New("stack underflow")
	ErrMemoryAccess     = errors.New("memory access out of bounds")

	// ErrNotLoaded is returned when stepping a machine that has no program.
	ErrNotLoaded = errors.New("no program loaded")
)

type FaultKind uint8

const (
	LoadFault FaultKind = iota + 1
	FetchFault
	UnknownOpcodeFault
	StackOverflowFault
	StackUnderflowFault
	MemoryAccessFault
)

var faultErrors = map[FaultKind]error{
	LoadFault:           ErrLoad,
	FetchFault:          ErrFetchOutOfBounds,
	UnknownOpcodeFault:  ErrUnknownOpcode,
	StackOverflowFault:  ErrStackOverflow,
	StackUnderflowFault: ErrStackUnderflow,
	MemoryAccessFault:   ErrMemoryAccess,
}

func (k FaultKind) String() string {
	switch k {
	case LoadFault:
		return "load"
	case FetchFault:
		return "fetch"
	case UnknownOpcodeFault:
		return "unknown opcode"
	case StackOverflowFault:
		return "stack overflow"
	case StackUnderflowFault:
		return "stack underflow"
	case MemoryAccessFault:
		return "memory access"
	}
	return "fault(" + u8toh(uint8(k), 2) + ")"
}

// Fault describes why the machine halted. PC is the location of the faulting
// instruction. Address is the offending address for fetch, load and memory
// access faults, and equals PC otherwise. For a load fault it is the first
// address the program would overrun and Size is the rejected image size.
type Fault struct {
	Kind    FaultKind
	PC      uint16
	Address uint16
	Opcode  Opcode
	Size    int
}

func (f *Fault) Error() string {
	switch f.Kind {
	case LoadFault:
		return fmt.Sprintf("%v: %d byte program overruns address 0x%04X, %d bytes available from 0x%03X",
			ErrLoad, f.Size, f.Address, MaxProgramSize, ProgramStartAddress)
	case FetchFault:
		return fmt.Sprintf("%v: pc=0x%04X", ErrFetchOutOfBounds, f.Address)
	case MemoryAccessFault:
		return fmt.Sprintf("%v: address=0x%04X pc=0x%04X opcode=0x%04X (%s)", ErrMemoryAccess, f.Address, f.PC, uint16(f.Opcode), f.Opcode)
	}
	return fmt.Sprintf("%v: pc=0x%04X opcode=0x%04X (%s)", f.Unwrap(), f.PC, uint16(f.Opcode), f.Opcode)
}

func (f *Fault) Unwrap() error {
	if err, ok := faultErrors[f.Kind]; ok {
		return err
	}
	return nil
}
