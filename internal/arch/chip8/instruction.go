package chip8

import (
	"errors"
	"fmt"
)

// ErrUnknownOpcode is returned when an opcode word matches no known form.
var ErrUnknownOpcode = errors.New("unknown opcode")

// Kind identifies the operation form of a decoded instruction.
type Kind uint8

// Operation forms, named after their effect.
const (
	Invalid           Kind = iota
	ClearScreen            // 00E0
	Return                 // 00EE
	Jump                   // 1nnn
	Call                   // 2nnn
	SkipEqualByte          // 3xkk
	SkipNotEqualByte       // 4xkk
	SkipEqualReg           // 5xy0
	LoadByte               // 6xkk
	AddByte                // 7xkk
	LoadReg                // 8xy0
	Or                     // 8xy1
	And                    // 8xy2
	Xor                    // 8xy3
	AddReg                 // 8xy4
	Sub                    // 8xy5
	ShiftRight             // 8xy6
	SubN                   // 8xy7
	ShiftLeft              // 8xyE
	SkipNotEqualReg        // 9xy0
	LoadIndex              // Annn
	JumpV0                 // Bnnn
	Random                 // Cxkk
	Draw                   // Dxyn
	SkipKeyPressed         // Ex9E
	SkipKeyNotPressed      // ExA1
	LoadDelay              // Fx07
	WaitKey                // Fx0A
	SetDelay               // Fx15
	SetSound               // Fx18
	AddIndex               // Fx1E
	LoadFont               // Fx29
	StoreBCD               // Fx33
	StoreRegisters         // Fx55
	LoadRegisters          // Fx65
)

var kindNames = [...]string{
	Invalid:           "invalid",
	ClearScreen:       "ClearScreen",
	Return:            "Return",
	Jump:              "Jump",
	Call:              "Call",
	SkipEqualByte:     "SkipEqualByte",
	SkipNotEqualByte:  "SkipNotEqualByte",
	SkipEqualReg:      "SkipEqualReg",
	LoadByte:          "LoadByte",
	AddByte:           "AddByte",
	LoadReg:           "LoadReg",
	Or:                "Or",
	And:               "And",
	Xor:               "Xor",
	AddReg:            "AddReg",
	Sub:               "Sub",
	ShiftRight:        "ShiftRight",
	SubN:              "SubN",
	ShiftLeft:         "ShiftLeft",
	SkipNotEqualReg:   "SkipNotEqualReg",
	LoadIndex:         "LoadIndex",
	JumpV0:            "JumpV0",
	Random:            "Random",
	Draw:              "Draw",
	SkipKeyPressed:    "SkipKeyPressed",
	SkipKeyNotPressed: "SkipKeyNotPressed",
	LoadDelay:         "LoadDelay",
	WaitKey:           "WaitKey",
	SetDelay:          "SetDelay",
	SetSound:          "SetSound",
	AddIndex:          "AddIndex",
	LoadFont:          "LoadFont",
	StoreBCD:          "StoreBCD",
	StoreRegisters:    "StoreRegisters",
	LoadRegisters:     "LoadRegisters",
}

// String returns the name of the operation form.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsSkip returns true if the form conditionally skips the next instruction.
func (k Kind) IsSkip() bool {
	switch k {
	case SkipEqualByte, SkipNotEqualByte, SkipEqualReg, SkipNotEqualReg,
		SkipKeyPressed, SkipKeyNotPressed:
		return true
	default:
		return false
	}
}

// Instruction is a decoded CHIP-8 opcode word.
// Only the operand fields that the Kind uses are meaningful.
type Instruction struct {
	Kind   Kind
	Opcode uint16 // raw opcode word

	X    uint8  // register index from bits 8-11
	Y    uint8  // register index from bits 4-7
	N    uint8  // low nibble
	KK   uint8  // low byte
	Addr uint16 // low 12 bits
}

// Decode splits an opcode word into its operation form and operand fields.
func Decode(opcode uint16) (Instruction, error) {
	ins := Instruction{
		Opcode: opcode,
		X:      uint8((opcode & 0x0F00) >> 8),
		Y:      uint8((opcode & 0x00F0) >> 4),
		N:      uint8(opcode & 0x000F),
		KK:     uint8(opcode & 0x00FF),
		Addr:   opcode & 0x0FFF,
	}

	ins.Kind = decodeKind(opcode)
	if ins.Kind == Invalid {
		return ins, fmt.Errorf("%w $%04X", ErrUnknownOpcode, opcode)
	}
	return ins, nil
}

// decodeKind dispatches on the high nibble and, for the families that share
// a high nibble, on the low byte or low nibble.
func decodeKind(opcode uint16) Kind {
	switch opcode & 0xF000 {
	case 0x0000:
		switch opcode {
		case 0x00E0:
			return ClearScreen
		case 0x00EE:
			return Return
		}

	case 0x1000:
		return Jump
	case 0x2000:
		return Call
	case 0x3000:
		return SkipEqualByte
	case 0x4000:
		return SkipNotEqualByte

	case 0x5000:
		if opcode&0x000F == 0 {
			return SkipEqualReg
		}

	case 0x6000:
		return LoadByte
	case 0x7000:
		return AddByte

	case 0x8000:
		return decodeALU(opcode)

	case 0x9000:
		if opcode&0x000F == 0 {
			return SkipNotEqualReg
		}

	case 0xA000:
		return LoadIndex
	case 0xB000:
		return JumpV0
	case 0xC000:
		return Random
	case 0xD000:
		return Draw

	case 0xE000:
		switch opcode & 0x00FF {
		case 0x9E:
			return SkipKeyPressed
		case 0xA1:
			return SkipKeyNotPressed
		}

	case 0xF000:
		return decodeMisc(opcode)
	}
	return Invalid
}

func decodeALU(opcode uint16) Kind {
	switch opcode & 0x000F {
	case 0x0:
		return LoadReg
	case 0x1:
		return Or
	case 0x2:
		return And
	case 0x3:
		return Xor
	case 0x4:
		return AddReg
	case 0x5:
		return Sub
	case 0x6:
		return ShiftRight
	case 0x7:
		return SubN
	case 0xE:
		return ShiftLeft
	default:
		return Invalid
	}
}

func decodeMisc(opcode uint16) Kind {
	switch opcode & 0x00FF {
	case 0x07:
		return LoadDelay
	case 0x0A:
		return WaitKey
	case 0x15:
		return SetDelay
	case 0x18:
		return SetSound
	case 0x1E:
		return AddIndex
	case 0x29:
		return LoadFont
	case 0x33:
		return StoreBCD
	case 0x55:
		return StoreRegisters
	case 0x65:
		return LoadRegisters
	default:
		return Invalid
	}
}
