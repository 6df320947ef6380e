package engine

// Memory layout constants.
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000

	// ProgramStart is the address that program images are loaded to and
	// execution begins at.
	ProgramStart = 0x200

	// FontStart is the address of the first built-in hexadecimal glyph.
	FontStart = 0x000

	// GlyphSize is the number of bytes per built-in glyph.
	GlyphSize = 5

	addressMask = 0x0FFF
)

// font is the built-in 4x5 pixel hexadecimal font, glyphs 0-F.
// Programs locate a glyph by computing digit * GlyphSize.
var font = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// memory is the 4KB byte addressable memory space.
// All accesses mask the address to 12 bits.
type memory [MemorySize]byte

func (m *memory) read(address uint16) byte {
	return m[address&addressMask]
}

func (m *memory) write(address uint16, value byte) {
	m[address&addressMask] = value
}

// readWord reads a big-endian opcode word.
func (m *memory) readWord(address uint16) uint16 {
	return uint16(m.read(address))<<8 | uint16(m.read(address+1))
}

func (m *memory) loadFont() {
	copy(m[FontStart:], font[:])
}
