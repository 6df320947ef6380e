// Package loader handles program image loading operations.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/engine"
)

// MaxProgramSize is the largest image that fits between the program start
// address and the end of memory.
const MaxProgramSize = engine.MemorySize - engine.ProgramStart

// Loader handles loading program images from disk.
type Loader struct{}

// New creates a new program loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the program image file. Images larger than MaxProgramSize are
// rejected with an error wrapping engine.ErrOutOfBoundsLoad.
func (l *Loader) Load(fileName string) ([]byte, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", fileName, err)
	}
	defer func() { _ = file.Close() }()

	data, err := l.LoadFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("loading file %s: %w", fileName, err)
	}
	return data, nil
}

// LoadFromReader reads a program image from a reader.
func (l *Loader) LoadFromReader(reader io.Reader) ([]byte, error) {
	// one extra byte detects oversized images without reading them fully
	data, err := io.ReadAll(io.LimitReader(reader, MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}
	if len(data) > MaxProgramSize {
		return nil, fmt.Errorf("%w: image exceeds %d bytes", engine.ErrOutOfBoundsLoad, MaxProgramSize)
	}
	return data, nil
}
