package chip8

import (
	"fmt"
	"math/bits"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// OpcodeSize is the size of CHIP-8 instructions in bytes.
const OpcodeSize = 2

// fallbackNames is used for forms that the reference opcode table does not list.
var fallbackNames = [...]string{
	ClearScreen:       "cls",
	Return:            "ret",
	Jump:              "jp",
	Call:              "call",
	SkipEqualByte:     "se",
	SkipNotEqualByte:  "sne",
	SkipEqualReg:      "se",
	LoadByte:          "ld",
	AddByte:           "add",
	LoadReg:           "ld",
	Or:                "or",
	And:               "and",
	Xor:               "xor",
	AddReg:            "add",
	Sub:               "sub",
	ShiftRight:        "shr",
	SubN:              "subn",
	ShiftLeft:         "shl",
	SkipNotEqualReg:   "sne",
	LoadIndex:         "ld",
	JumpV0:            "jp",
	Random:            "rnd",
	Draw:              "drw",
	SkipKeyPressed:    "skp",
	SkipKeyNotPressed: "sknp",
	LoadDelay:         "ld",
	WaitKey:           "ld",
	SetDelay:          "ld",
	SetSound:          "ld",
	AddIndex:          "add",
	LoadFont:          "ld",
	StoreBCD:          "ld",
	StoreRegisters:    "ld",
	LoadRegisters:     "ld",
}

// Reference returns the retrogolib instruction definition that matches the
// opcode word. When several table entries match, the one with the most
// specific mask wins so that fixed words like 00E0 are not shadowed by
// generic patterns of the same family.
func Reference(opcode uint16) (*chip8cpu.Instruction, bool) {
	firstNibble := (opcode & 0xF000) >> 12
	opcodes := chip8cpu.Opcodes[int(firstNibble)]

	var best *chip8cpu.Instruction
	bestBits := -1
	for _, op := range opcodes {
		if op.Instruction == nil || op.Info.Mask&opcode != op.Info.Value {
			continue
		}
		if n := bits.OnesCount16(op.Info.Mask); n > bestBits {
			best = op.Instruction
			bestBits = n
		}
	}
	return best, best != nil
}

// Name returns the assembler mnemonic of the instruction.
func (i Instruction) Name() string {
	if i.Kind == Invalid {
		return ""
	}
	if ins, ok := Reference(i.Opcode); ok && ins.Name != "" {
		return ins.Name
	}
	return fallbackNames[i.Kind]
}

// String returns the instruction in assembler notation, for example
// "drw V1, V2, $5".
func (i Instruction) String() string {
	if i.Kind == Invalid {
		return fmt.Sprintf("dw $%04X", i.Opcode)
	}
	name := i.Name()
	if params := i.params(); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// params formats the operands of the instruction.
func (i Instruction) params() string {
	switch i.Kind {
	case ClearScreen, Return:
		return "" // No parameters

	case Jump, Call:
		return fmt.Sprintf("$%03X", i.Addr)
	case JumpV0:
		return fmt.Sprintf("V0, $%03X", i.Addr)
	case LoadIndex:
		return fmt.Sprintf("I, $%03X", i.Addr)

	case SkipEqualByte, SkipNotEqualByte, LoadByte, AddByte, Random:
		return fmt.Sprintf("V%X, $%02X", i.X, i.KK)

	case SkipEqualReg, SkipNotEqualReg, LoadReg, Or, And, Xor, AddReg, Sub, SubN,
		ShiftRight, ShiftLeft:
		return fmt.Sprintf("V%X, V%X", i.X, i.Y)

	case Draw:
		return fmt.Sprintf("V%X, V%X, $%X", i.X, i.Y, i.N)

	case SkipKeyPressed, SkipKeyNotPressed:
		return fmt.Sprintf("V%X", i.X)

	default:
		return i.miscParams()
	}
}

// miscParams formats the Fx family operands.
func (i Instruction) miscParams() string {
	switch i.Kind {
	case LoadDelay:
		return fmt.Sprintf("V%X, DT", i.X)
	case WaitKey:
		return fmt.Sprintf("V%X, K", i.X)
	case SetDelay:
		return fmt.Sprintf("DT, V%X", i.X)
	case SetSound:
		return fmt.Sprintf("ST, V%X", i.X)
	case AddIndex:
		return fmt.Sprintf("I, V%X", i.X)
	case LoadFont:
		return fmt.Sprintf("F, V%X", i.X)
	case StoreBCD:
		return fmt.Sprintf("B, V%X", i.X)
	case StoreRegisters:
		return fmt.Sprintf("[I], V%X", i.X)
	case LoadRegisters:
		return fmt.Sprintf("V%X, [I]", i.X)
	default:
		return ""
	}
}
