// Package listing writes an assembler style listing of a program image.
package listing

import (
	"fmt"
	"hash/crc32"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrochip8/internal/engine"
)

const (
	dataBytesPerLine = 16

	funcNaming  = "_func_%04x"
	labelNaming = "_label_%04x"
)

// Options of the listing writer.
type Options struct {
	HexComments    bool // opcode bytes as hex values in comments
	OffsetComments bool // addresses in comments
}

// Offset is one listed element of the program image, an instruction word or
// trailing data bytes.
type Offset struct {
	Address uint16
	Data    []byte
	Label   string
	Code    string
	IsData  bool
}

// Writer writes a program listing.
type Writer struct {
	program []byte
	offsets []Offset
	options Options
	writer  io.Writer
}

// New creates a listing writer for the program image, which is assumed to
// be loaded at the program start address.
func New(program []byte, writer io.Writer, options Options) *Writer {
	return &Writer{
		program: program,
		offsets: Parse(program),
		options: options,
		writer:  writer,
	}
}

// Parse splits the program into instruction words by a linear sweep and
// assigns labels to jump and call destinations inside of the image.
func Parse(program []byte) []Offset {
	offsets := make([]Offset, 0, len(program)/chip8.OpcodeSize+1)
	instructions := make([]chip8.Instruction, 0, cap(offsets))
	index := make(map[uint16]int)

	i := 0
	for ; i+chip8.OpcodeSize <= len(program); i += chip8.OpcodeSize {
		address := uint16(engine.ProgramStart + i)
		word := uint16(program[i])<<8 | uint16(program[i+1])
		ins, err := chip8.Decode(word)
		if err != nil {
			// undecodable words stay in the listing as Invalid data words
			ins = chip8.Instruction{Opcode: word, Kind: chip8.Invalid}
		}

		index[address] = len(offsets)
		offsets = append(offsets, Offset{
			Address: address,
			Data:    program[i : i+chip8.OpcodeSize],
		})
		instructions = append(instructions, ins)
	}
	if i < len(program) {
		offsets = append(offsets, Offset{
			Address: uint16(engine.ProgramStart + i),
			Data:    program[i:],
			IsData:  true,
		})
	}

	for _, ins := range instructions {
		target, ok := index[ins.Addr]
		if !ok {
			continue
		}
		switch ins.Kind {
		case chip8.Call:
			offsets[target].Label = fmt.Sprintf(funcNaming, ins.Addr)
		case chip8.Jump:
			if offsets[target].Label == "" {
				offsets[target].Label = fmt.Sprintf(labelNaming, ins.Addr)
			}
		}
	}

	for j, ins := range instructions {
		offsets[j].Code = code(ins, offsets, index)
	}
	return offsets
}

// code returns the assembler text of an instruction, destinations that have
// a label are referenced by name.
func code(ins chip8.Instruction, offsets []Offset, index map[uint16]int) string {
	if ins.Kind == chip8.Jump || ins.Kind == chip8.Call {
		if target, ok := index[ins.Addr]; ok && offsets[target].Label != "" {
			return fmt.Sprintf("%s %s", ins.Name(), offsets[target].Label)
		}
	}
	return ins.String()
}

// Write writes the comment header followed by all offsets.
func (w *Writer) Write() error {
	if err := w.WriteCommentHeader(); err != nil {
		return err
	}

	for i, offset := range w.offsets {
		if err := w.writeLabel(i, offset); err != nil {
			return err
		}
		if offset.IsData {
			if err := w.BundleDataWrites(offset.Address, offset.Data); err != nil {
				return err
			}
			continue
		}
		if err := w.writeCodeLine(offset); err != nil {
			return fmt.Errorf("writing code line: %w", err)
		}
	}
	return nil
}

// WriteCommentHeader writes the CRC32 checksum, size and load address as comments to the output.
func (w *Writer) WriteCommentHeader() error {
	if _, err := fmt.Fprintf(w.writer, "; CRC32 checksum: %08x\n", crc32.ChecksumIEEE(w.program)); err != nil {
		return fmt.Errorf("writing checksum: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; Size: %d bytes\n", len(w.program)); err != nil {
		return fmt.Errorf("writing size: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; Code base address: $%04x\n\n", engine.ProgramStart); err != nil {
		return fmt.Errorf("writing code base address: %w", err)
	}
	return nil
}

// BundleDataWrites writes data bytes with dataBytesPerLine bytes per line.
func (w *Writer) BundleDataWrites(address uint16, data []byte) error {
	for i := 0; i < len(data); i += dataBytesPerLine {
		toWrite := min(len(data)-i, dataBytesPerLine)

		buf := &strings.Builder{}
		buf.WriteString(".byte ")
		for j := range toWrite {
			if j > 0 {
				buf.WriteString(", ")
			}
			_, _ = fmt.Fprintf(buf, "$%02x", data[i+j])
		}

		comment := ""
		if w.options.OffsetComments {
			comment = fmt.Sprintf("$%04X", address+uint16(i))
		}
		if err := w.writeLine(buf.String(), comment); err != nil {
			return fmt.Errorf("writing data line: %w", err)
		}
	}
	return nil
}

func (w *Writer) writeLabel(index int, offset Offset) error {
	if offset.Label == "" {
		return nil
	}

	if index > 0 {
		if _, err := fmt.Fprintln(w.writer); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w.writer, "%s:\n", offset.Label); err != nil {
		return fmt.Errorf("writing label: %w", err)
	}
	return nil
}

func (w *Writer) writeCodeLine(offset Offset) error {
	var comments []string
	if w.options.OffsetComments {
		comments = append(comments, fmt.Sprintf("$%04X", offset.Address))
	}
	if w.options.HexComments {
		comments = append(comments, fmt.Sprintf("%02X %02X", offset.Data[0], offset.Data[1]))
	}
	return w.writeLine(offset.Code, strings.Join(comments, "  "))
}

func (w *Writer) writeLine(code, comment string) error {
	var err error
	if comment == "" {
		_, err = fmt.Fprintf(w.writer, "  %s\n", code)
	} else {
		_, err = fmt.Fprintf(w.writer, "  %-30s ; %s\n", code, comment)
	}
	if err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}
