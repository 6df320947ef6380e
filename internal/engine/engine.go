package engine

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrogolib/log"
)

const (
	registerCount = 16
	flagRegister  = 0xF
)

// Config contains the construction parameters of an engine.
type Config struct {
	// Quirks maps quirk keys to their enabled state, see QuirkKeys.
	Quirks map[string]bool

	// Keypad answers the key held queries, defaults to a KeyState with all
	// keys released.
	Keypad Keypad

	// Random is the source for the random instruction, defaults to a time
	// seeded source.
	Random RandomSource

	// Logger receives debug output, optional.
	Logger *log.Logger

	// Trace logs every executed instruction at debug level.
	Trace bool
}

// keyWait is the pending wait-for-key instruction.
type keyWait struct {
	register uint8
}

// Engine is a CHIP-8 virtual machine.
type Engine struct {
	logger *log.Logger
	trace  bool
	quirks Quirks
	keypad Keypad
	random RandomSource

	memory  memory
	v       [registerCount]byte
	i       uint16
	pc      uint16
	stack   []uint16
	dt      byte
	st      byte
	display FrameBuffer

	wait *keyWait // set while paused awaiting a key press

	cleared bool // display was cleared since the last TakeDisplayChanges
	dirty   bool // display was modified since the last TakeDisplayChanges
}

// New returns a new engine in reset state.
func New(cfg Config) (*Engine, error) {
	quirks, err := QuirksFromMap(cfg.Quirks)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		logger: cfg.Logger,
		trace:  cfg.Trace,
		quirks: quirks,
		keypad: cfg.Keypad,
		random: cfg.Random,
	}
	if e.keypad == nil {
		e.keypad = &KeyState{}
	}
	if e.random == nil {
		e.random = NewRandom(0)
	}

	e.Reset()
	return e, nil
}

// Reset zeroes registers, index, timers and stack, sets the program counter
// to ProgramStart, clears the frame buffer and writes the built-in font.
// Memory outside of the font area is left untouched.
func (e *Engine) Reset() {
	e.v = [registerCount]byte{}
	e.i = 0
	e.pc = ProgramStart
	e.stack = e.stack[:0]
	e.dt = 0
	e.st = 0
	e.wait = nil

	e.display.clear()
	e.cleared = true
	e.dirty = true

	e.memory.loadFont()
}

// LoadProgram copies the program image into memory starting at ProgramStart.
// No other state is modified. Images that do not fit are rejected without
// writing any byte.
func (e *Engine) LoadProgram(program []byte) error {
	if ProgramStart+len(program) > MemorySize {
		return fmt.Errorf("%w: %d bytes exceed the %d bytes available",
			ErrOutOfBoundsLoad, len(program), MemorySize-ProgramStart)
	}

	copy(e.memory[ProgramStart:], program)

	if e.logger != nil {
		e.logger.Debug("Program loaded",
			log.Hex("address", ProgramStart),
			log.Int("size", len(program)))
	}
	return nil
}

// Step fetches, decodes and executes one instruction. It does nothing while
// the engine is awaiting a key press.
//
// A failed step leaves the program counter at the failing instruction.
func (e *Engine) Step() error {
	if e.wait != nil {
		return nil
	}

	pc := e.pc
	opcode := e.memory.readWord(pc)
	e.pc += chip8.OpcodeSize

	ins, err := chip8.Decode(opcode)
	if err != nil {
		e.pc = pc
		return fmt.Errorf("decoding instruction at $%04X: %w", pc, err)
	}

	if e.trace && e.logger != nil {
		e.logger.Debug("Executing",
			log.Hex("pc", pc),
			log.Hex("opcode", opcode),
			log.String("instruction", ins.String()))
	}

	if err := e.execute(ins); err != nil {
		e.pc = pc
		return fmt.Errorf("executing %s at $%04X: %w", ins.String(), pc, err)
	}
	return nil
}

// Tick decrements the delay and sound timers by one, stopping at zero.
func (e *Engine) Tick() {
	if e.dt > 0 {
		e.dt--
	}
	if e.st > 0 {
		e.st--
	}
}

// Cycle executes up to steps instructions followed by one timer tick.
// Execution stops early when an instruction starts waiting for a key press,
// timers are frozen while the engine waits.
func (e *Engine) Cycle(steps int) error {
	for range steps {
		if e.wait != nil {
			break
		}
		if err := e.Step(); err != nil {
			return err
		}
	}

	if e.wait == nil {
		e.Tick()
	}
	return nil
}

// DeliverKey resolves a pending wait-for-key instruction by storing the key
// in the target register and resuming execution. Without a pending wait the
// call does nothing.
func (e *Engine) DeliverKey(key uint8) error {
	if int(key) >= KeyCount {
		return fmt.Errorf("%w: $%02X", ErrInvalidKey, key)
	}
	if e.wait == nil {
		return nil
	}

	e.v[e.wait.register] = key
	if e.logger != nil {
		e.logger.Debug("Key wait resolved",
			log.Hex("key", key),
			log.String("register", fmt.Sprintf("V%X", e.wait.register)))
	}
	e.wait = nil
	return nil
}

// AwaitingKey returns the register that the next key press will be stored in
// and whether the engine is paused waiting for it.
func (e *Engine) AwaitingKey() (uint8, bool) {
	if e.wait == nil {
		return 0, false
	}
	return e.wait.register, true
}

// TakeDisplayChanges reports whether the frame buffer was cleared or modified
// since the previous call and resets both indicators.
func (e *Engine) TakeDisplayChanges() (cleared, dirty bool) {
	cleared, dirty = e.cleared, e.dirty
	e.cleared = false
	e.dirty = false
	return cleared, dirty
}

// FrameBuffer returns a copy of the current frame buffer.
func (e *Engine) FrameBuffer() FrameBuffer {
	return e.display
}

// Pixel returns whether the pixel at the given column and row is set.
func (e *Engine) Pixel(x, y int) bool {
	return e.display.Pixel(x, y)
}

// SoundActive returns true while the sound timer is non zero and a tone
// should be played.
func (e *Engine) SoundActive() bool {
	return e.st > 0
}

// Register returns the value of register Vx, x is taken modulo 16.
func (e *Engine) Register(x uint8) byte {
	return e.v[x&0xF]
}

// Registers returns a copy of the register file.
func (e *Engine) Registers() [16]byte {
	return e.v
}

// Index returns the index register I.
func (e *Engine) Index() uint16 {
	return e.i
}

// PC returns the program counter.
func (e *Engine) PC() uint16 {
	return e.pc
}

// DelayTimer returns the delay timer value.
func (e *Engine) DelayTimer() byte {
	return e.dt
}

// SoundTimer returns the sound timer value.
func (e *Engine) SoundTimer() byte {
	return e.st
}

// Stack returns a copy of the return address stack, bottom first.
func (e *Engine) Stack() []uint16 {
	return append([]uint16(nil), e.stack...)
}

// ReadMemory returns the byte at the given address, masked to 12 bits.
func (e *Engine) ReadMemory(address uint16) byte {
	return e.memory.read(address)
}

// Quirks returns the quirk configuration of the engine.
func (e *Engine) Quirks() Quirks {
	return e.quirks
}
