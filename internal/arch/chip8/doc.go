// Package chip8 provides CHIP-8 instruction decoding for the virtual machine.
//
// # Instruction Set
//
// CHIP-8 has a simple instruction set with 35 opcode forms:
//   - All instructions are 2 bytes (16 bits), stored big-endian
//   - Instructions use direct addressing with 12-bit addresses
//   - 16 general-purpose 8-bit registers (V0-VF), VF doubles as flag register
//   - Special-purpose registers: I (16-bit), PC, delay and sound timers
//
// # Decoding
//
// Decode splits an opcode word into a tagged Instruction. The Kind field
// identifies the operation form, the remaining fields carry the operands
// that are extracted from the word:
//
//	x    = (opcode & 0x0F00) >> 8
//	y    = (opcode & 0x00F0) >> 4
//	kk   = opcode & 0x00FF
//	n    = opcode & 0x000F
//	addr = opcode & 0x0FFF
//
// Words that do not match any known form return an error wrapping
// ErrUnknownOpcode. Decoding has no side effects, execution of the decoded
// instruction is implemented by the engine package.
//
// # Usage Example
//
//	ins, err := chip8.Decode(0xD125)
//	if err != nil {
//		return fmt.Errorf("decoding opcode: %w", err)
//	}
//	fmt.Println(ins) // drw V1, V2, $5
//
// # Mnemonics
//
// Instruction names are taken from the retrogolib CHIP-8 opcode table so that
// trace output matches the naming used by the retroenv disassembler and
// assembler tooling.
package chip8
