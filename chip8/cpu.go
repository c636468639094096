package chip8

import (
	"time"

	"github.com/retroenv/retrogolib/log"
)

const (
	RegisterCount = 16
	KeyCount      = 16
	StackDepth    = 16
	CarryFlag     = 0xF
	OpcodeSize    = 2

	TimerRate time.Duration = time.Second / 60  // 60hz
	ClockRate time.Duration = time.Second / 700 // 700hz
)

// Step status bits.
const (
	Delay uint8 = 1 << iota
	Sound
	Redraw
	Waiting
)

// State is the engine state.
type State uint8

const (
	// Idle means no program is loaded.
	Idle State = iota
	// Running fetches and executes one instruction per Step.
	Running
	// WaitingForKey holds PC on an FX0A until a key goes down.
	WaitingForKey
	// Halted is terminal until the next Reset or Load.
	Halted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case WaitingForKey:
		return "waiting for key"
	case Halted:
		return "halted"
	}
	return "unknown"
}

// Keys is the pressed state of the 16 key hex keypad, indexed by key value.
type Keys [KeyCount]bool

// Config controls a Machine.
type Config struct {
	Quirks Quirks
	// Random feeds RND. A math/rand/v2 source is used when nil.
	Random RandomSource
	// Logger receives load, fault and trace output. Optional.
	Logger *log.Logger
	// Trace logs every executed instruction at debug level.
	Trace bool
}

// DefaultConfig returns a config with the COSMAC VIP quirks.
func DefaultConfig() Config {
	return Config{Quirks: QuirksCOSMAC}
}

// Machine is a single CHIP-8 interpreter instance. It is not safe for
// concurrent use; Step, Tick and SetKeys must be called from one goroutine or
// externally serialized.
type Machine struct {
	memory  Memory
	v       [RegisterCount]byte
	display Display
	stack   [StackDepth]uint16
	sp      uint8
	pc      uint16
	i       uint16
	delay   uint8
	sound   uint8

	keys     Keys
	waitKeys Keys // key state last seen while waiting for a key
	waitReg  uint8

	state State
	fault *Fault

	// instruction being executed, for fault reports
	opPC uint16
	op   Opcode

	quirks Quirks
	random RandomSource
	logger *log.Logger
	trace  bool
}

func New(cfg Config) *Machine {
	m := &Machine{
		quirks: cfg.Quirks,
		random: cfg.Random,
		logger: cfg.Logger,
		trace:  cfg.Trace,
	}
	if m.random == nil {
		m.random = globalRandom{}
	}
	m.Reset()
	return m
}

// Reset clears all machine state, reinstalls the font and returns to Idle.
func (m *Machine) Reset() {
	m.memory = Memory{}
	m.v = [RegisterCount]byte{}
	m.display.Clear()
	m.stack = [StackDepth]uint16{}
	m.sp = 0
	m.pc = ProgramStartAddress
	m.i = 0
	m.delay = 0
	m.sound = 0
	m.keys = Keys{}
	m.waitKeys = Keys{}
	m.waitReg = 0
	m.state = Idle
	m.fault = nil
	m.opPC = 0
	m.op = 0

	m.memory.installFont()
}

// Load resets the machine and copies program to ProgramStartAddress. A program
// larger than MaxProgramSize halts the machine with a LoadFault.
func (m *Machine) Load(program []byte) error {
	m.Reset()

	if len(program) > MaxProgramSize {
		return m.halt(&Fault{
			Kind:    LoadFault,
			PC:      ProgramStartAddress,
			Address: MemorySize,
			Size:    len(program),
		})
	}

	copy(m.memory[ProgramStartAddress:], program)
	m.state = Running

	if m.logger != nil {
		m.logger.Debug("Program loaded",
			log.Uint16("size", uint16(len(program))),
			log.Hex("start", uint16(ProgramStartAddress)))
	}
	return nil
}

// Step executes one instruction, or re-checks the keypad while an FX0A is
// pending. The returned bits report timer activity, display changes and key
// waits. A fault halts the machine; later calls return the same fault.
func (m *Machine) Step() (uint8, error) {
	var info uint8

	switch m.state {
	case Idle:
		return 0, ErrNotLoaded
	case Halted:
		return m.status(), m.fault
	case WaitingForKey:
		if !m.keyDown() {
			return m.status() | Waiting, nil
		}
		m.state = Running
		return m.status(), nil
	}

	op, ok := m.OpcodeAt(m.pc)
	if !ok {
		return m.status(), m.halt(&Fault{Kind: FetchFault, PC: m.pc, Address: m.pc})
	}

	if m.trace && m.logger != nil {
		m.logger.Debug("Exec",
			log.Hex("pc", m.pc),
			log.Hex("opcode", uint16(op)),
			log.String("instruction", op.String()))
	}

	m.opPC = m.pc
	m.op = op
	m.pc += OpcodeSize

	if err := m.execute(op, &info); err != nil {
		return m.status() | info, err
	}

	info |= m.status()
	if m.state == WaitingForKey {
		info |= Waiting
	}
	return info, nil
}

// Tick counts both timers down by one. Call it at TimerRate.
func (m *Machine) Tick() {
	if m.delay > 0 {
		m.delay--
	}
	if m.sound > 0 {
		m.sound--
	}
}

func (m *Machine) status() uint8 {
	var info uint8
	if m.sound > 0 {
		info |= Sound
	}
	if m.delay > 0 {
		info |= Delay
	}
	return info
}

// keyDown completes a pending FX0A when a key goes from released to pressed
// since the previous check.
func (m *Machine) keyDown() bool {
	defer func() {
		m.waitKeys = m.keys
	}()

	for k := range uint8(KeyCount) {
		if m.keys[k] && !m.waitKeys[k] {
			m.v[m.waitReg] = k
			return true
		}
	}
	return false
}

func (m *Machine) halt(f *Fault) error {
	m.state = Halted
	m.fault = f

	if m.logger != nil {
		m.logger.Error("Machine halted",
			log.String("fault", f.Kind.String()),
			log.Hex("pc", f.PC),
			log.Hex("address", f.Address),
			log.Hex("opcode", uint16(f.Opcode)))
	}
	return f
}

// SetKeys replaces the input snapshot.
func (m *Machine) SetKeys(keys Keys) {
	m.keys = keys
}

// SetKey updates a single key. Keys outside 0x0-0xF are ignored.
func (m *Machine) SetKey(key uint8, pressed bool) {
	if int(key) >= KeyCount {
		return
	}
	m.keys[key] = pressed
}

func (m *Machine) Keys() Keys {
	return m.keys
}

func (m *Machine) Register(x uint8) byte {
	return m.v[x&0x0F]
}

func (m *Machine) Index() uint16 {
	return m.i
}

func (m *Machine) ProgramCounter() uint16 {
	return m.pc
}

func (m *Machine) StackDepth() int {
	return int(m.sp)
}

func (m *Machine) DelayTimer() uint8 {
	return m.delay
}

// SoundTimer is non-zero while the beeper should sound.
func (m *Machine) SoundTimer() uint8 {
	return m.sound
}

func (m *Machine) State() State {
	return m.state
}

// Fault returns the fault that halted the machine, or nil.
func (m *Machine) Fault() error {
	if m.fault == nil {
		return nil
	}
	return m.fault
}

func (m *Machine) Quirks() Quirks {
	return m.quirks
}

// OpcodeAt reads the instruction word at loc without executing it.
func (m *Machine) OpcodeAt(loc uint16) (Opcode, bool) {
	var buffer [OpcodeSize]byte
	if _, ok := m.memory.Read(loc, buffer[:]); !ok {
		return 0, false
	}

	// opcode is a 16bit value, comprised of two contiguous 8bit values
	// in memory, starting at the program counter
	return Decode(buffer[0], buffer[1]), true
}

// ReadMemory copies memory from loc into data.
func (m *Machine) ReadMemory(loc uint16, data []byte) bool {
	_, ok := m.memory.Read(loc, data)
	return ok
}

// Frame copies the display into dst, see Display.Snapshot.
func (m *Machine) Frame(dst []byte) []byte {
	return m.display.Snapshot(dst)
}

func (m *Machine) Pixel(x, y int) bool {
	return m.display.Pixel(x, y)
}
