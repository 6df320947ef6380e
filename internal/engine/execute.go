package engine

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrogolib/log"
)

const spriteWidth = 8

// execute applies the side effects of a decoded instruction. The program
// counter already points to the following instruction.
func (e *Engine) execute(ins chip8.Instruction) error {
	switch ins.Kind {
	case chip8.ClearScreen:
		e.display.clear()
		e.cleared = true
		e.dirty = true

	case chip8.Return:
		return e.ret()

	case chip8.Jump:
		e.pc = ins.Addr

	case chip8.Call:
		e.stack = append(e.stack, e.pc)
		e.pc = ins.Addr

	case chip8.SkipEqualByte:
		e.skipIf(e.v[ins.X] == ins.KK)
	case chip8.SkipNotEqualByte:
		e.skipIf(e.v[ins.X] != ins.KK)
	case chip8.SkipEqualReg:
		e.skipIf(e.v[ins.X] == e.v[ins.Y])
	case chip8.SkipNotEqualReg:
		e.skipIf(e.v[ins.X] != e.v[ins.Y])

	case chip8.LoadByte:
		e.v[ins.X] = ins.KK
	case chip8.AddByte:
		e.v[ins.X] += ins.KK // wraps, VF is not affected

	case chip8.LoadReg, chip8.Or, chip8.And, chip8.Xor, chip8.AddReg,
		chip8.Sub, chip8.ShiftRight, chip8.SubN, chip8.ShiftLeft:
		e.executeALU(ins)

	case chip8.LoadIndex:
		e.i = ins.Addr
	case chip8.JumpV0:
		e.pc = uint16(e.v[0]) + ins.Addr
	case chip8.Random:
		e.v[ins.X] = byte(e.random.Uint32()) & ins.KK
	case chip8.Draw:
		e.draw(ins)

	case chip8.SkipKeyPressed:
		e.skipIf(e.keypad.IsPressed(e.v[ins.X]))
	case chip8.SkipKeyNotPressed:
		e.skipIf(!e.keypad.IsPressed(e.v[ins.X]))

	default:
		return e.executeMisc(ins)
	}
	return nil
}

func (e *Engine) skipIf(condition bool) {
	if condition {
		e.pc += chip8.OpcodeSize
	}
}

func (e *Engine) ret() error {
	if len(e.stack) == 0 {
		return ErrStackUnderflow
	}
	last := len(e.stack) - 1
	e.pc = e.stack[last]
	e.stack = e.stack[:last]
	return nil
}

// executeALU handles the 8xyN family. Flags are computed from the operand
// values before the destination is written and VF is written last, so the
// flag wins when x is F.
func (e *Engine) executeALU(ins chip8.Instruction) {
	x, y := e.v[ins.X], e.v[ins.Y]

	switch ins.Kind {
	case chip8.LoadReg:
		e.v[ins.X] = y

	case chip8.Or:
		e.v[ins.X] = x | y
		e.v[flagRegister] = 0
	case chip8.And:
		e.v[ins.X] = x & y
		e.v[flagRegister] = 0
	case chip8.Xor:
		e.v[ins.X] = x ^ y
		e.v[flagRegister] = 0

	case chip8.AddReg:
		sum := uint16(x) + uint16(y)
		e.v[ins.X] = byte(sum)
		e.v[flagRegister] = boolToFlag(sum > 0xFF)

	case chip8.Sub:
		e.v[ins.X] = x - y
		e.v[flagRegister] = boolToFlag(x >= y)

	case chip8.SubN:
		e.v[ins.X] = y - x
		e.v[flagRegister] = boolToFlag(y >= x)

	case chip8.ShiftRight:
		if e.quirks.OriginalShiftBehavior {
			x = y
		}
		e.v[ins.X] = x >> 1
		e.v[flagRegister] = x & 0x01

	case chip8.ShiftLeft:
		if e.quirks.OriginalShiftBehavior {
			x = y
		}
		e.v[ins.X] = x << 1
		e.v[flagRegister] = x >> 7
	}
}

// executeMisc handles the Fx family.
func (e *Engine) executeMisc(ins chip8.Instruction) error {
	switch ins.Kind {
	case chip8.LoadDelay:
		e.v[ins.X] = e.dt

	case chip8.WaitKey:
		e.wait = &keyWait{register: ins.X}
		if e.logger != nil {
			e.logger.Debug("Waiting for key press",
				log.Hex("pc", e.pc-chip8.OpcodeSize),
				log.String("register", fmt.Sprintf("V%X", ins.X)))
		}

	case chip8.SetDelay:
		e.dt = e.v[ins.X]
	case chip8.SetSound:
		e.st = e.v[ins.X]

	case chip8.AddIndex:
		e.i += uint16(e.v[ins.X]) // masked at memory access time

	case chip8.LoadFont:
		e.i = FontStart + uint16(e.v[ins.X])*GlyphSize

	case chip8.StoreBCD:
		value := e.v[ins.X]
		e.memory.write(e.i, value/100)
		e.memory.write(e.i+1, value/10%10)
		e.memory.write(e.i+2, value%10)

	case chip8.StoreRegisters:
		for r := uint16(0); r <= uint16(ins.X); r++ {
			e.memory.write(e.i+r, e.v[r])
		}
		e.advanceIndex(ins.X)

	case chip8.LoadRegisters:
		for r := uint16(0); r <= uint16(ins.X); r++ {
			e.v[r] = e.memory.read(e.i + r)
		}
		e.advanceIndex(ins.X)

	default:
		return fmt.Errorf("%w $%04X", chip8.ErrUnknownOpcode, ins.Opcode)
	}
	return nil
}

// advanceIndex applies the increment index quirk after a bulk register load
// or store of V0 to Vx.
func (e *Engine) advanceIndex(x uint8) {
	if e.quirks.IncrementIndex {
		e.i += uint16(x) + 1
	}
}

// draw XORs an 8 pixel wide sprite of n rows read from memory at I onto the
// frame buffer. The start position wraps around the display, pixels beyond
// the right or bottom edge are clipped. VF is set to 1 if any set pixel was
// erased and to 0 otherwise.
func (e *Engine) draw(ins chip8.Instruction) {
	startX := int(e.v[ins.X]) % DisplayWidth
	startY := int(e.v[ins.Y]) % DisplayHeight
	e.v[flagRegister] = 0

	for row := range int(ins.N) {
		y := startY + row
		if y >= DisplayHeight {
			break
		}

		data := e.memory.read(e.i + uint16(row))
		for col := range spriteWidth {
			x := startX + col
			if x >= DisplayWidth {
				break
			}
			if data&(0x80>>col) == 0 {
				continue
			}
			if e.display.toggle(x, y) {
				e.v[flagRegister] = 1
			}
		}
	}

	e.dirty = true
}

func boolToFlag(b bool) byte {
	if b {
		return 1
	}
	return 0
}
