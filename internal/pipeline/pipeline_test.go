package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/engine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// drawProgram draws the glyph of digit 8 at 0,0 and loops forever.
var drawProgram = []byte{
	0x60, 0x08, // LD V0, $08
	0xF0, 0x29, // LD F, V0
	0x61, 0x00, // LD V1, $00
	0xD1, 0x15, // DRW V1, V1, 5
	0x12, 0x08, // JP $208
}

func headlessOptions(input string, frames int) options.Program {
	return options.Program{
		Parameters: options.Parameters{Input: input},
		Flags:      options.Flags{Headless: true, Quiet: true},
		Machine:    options.Machine{Speed: 8, Scale: 15, Seed: 1, Frames: frames},
	}
}

func TestNew(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	assert.NotNil(t, p)
	assert.NotNil(t, p.logger)
	assert.NotNil(t, p.detector)
	assert.NotNil(t, p.loader)
}

func TestExecute(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)
	tmpFile := createTempFile(t, "draw.ch8", drawProgram)

	t.Run("headless run renders final frame", func(t *testing.T) {
		var buf bytes.Buffer
		err := p.Execute(context.Background(), headlessOptions(tmpFile, 2), &buf)
		assert.NoError(t, err)

		lines := strings.Split(buf.String(), "\n")
		// glyph 8 is $F0 $90 $F0 $90 $F0
		assert.True(t, strings.HasPrefix(lines[0], "####."))
		assert.True(t, strings.HasPrefix(lines[1], "#..#."))
		assert.True(t, strings.HasPrefix(lines[2], "####."))
		assert.True(t, strings.HasPrefix(lines[5], "....."))
	})

	t.Run("listing", func(t *testing.T) {
		opts := headlessOptions(tmpFile, 0)
		opts.List = true

		var buf bytes.Buffer
		err := p.Execute(context.Background(), opts, &buf)
		assert.NoError(t, err)
		assert.Contains(t, buf.String(), "; Size: 10 bytes")
		assert.Contains(t, buf.String(), "_label_0208:")
		assert.Contains(t, buf.String(), "; $0206  D1 15")
	})

	t.Run("non chip8 system", func(t *testing.T) {
		opts := headlessOptions(tmpFile, 1)
		opts.System = "nes"

		err := p.Execute(context.Background(), opts, &bytes.Buffer{})
		assert.True(t, errors.Is(err, ErrUnsupportedSystem))
	})

	t.Run("missing file", func(t *testing.T) {
		opts := headlessOptions(filepath.Join(t.TempDir(), "missing.ch8"), 1)

		err := p.Execute(context.Background(), opts, &bytes.Buffer{})
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("oversized file", func(t *testing.T) {
		bigFile := createTempFile(t, "big.ch8", make([]byte, engine.MemorySize))

		err := p.Execute(context.Background(), headlessOptions(bigFile, 1), &bytes.Buffer{})
		assert.True(t, errors.Is(err, engine.ErrOutOfBoundsLoad))
	})
}

func TestExecuteWithProgram(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	tests := []struct {
		name      string
		program   []byte
		quirks    string
		errTarget error
	}{
		{
			name:      "unknown opcode stops the run",
			program:   []byte{0x01, 0x23},
			errTarget: chip8.ErrUnknownOpcode,
		},
		{
			name:      "stack underflow stops the run",
			program:   []byte{0x00, 0xEE},
			errTarget: engine.ErrStackUnderflow,
		},
		{
			name:      "invalid quirk key",
			program:   drawProgram,
			quirks:    "vfReset",
			errTarget: engine.ErrInvalidQuirkKey,
		},
		{
			name:      "malformed quirk list",
			program:   drawProgram,
			quirks:    "incrementIndex=maybe",
			errTarget: config.ErrInvalidQuirkList,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := headlessOptions("test.ch8", 5)
			opts.Quirks = tt.quirks

			err := p.ExecuteWithProgram(context.Background(), tt.program, opts, &bytes.Buffer{})
			assert.True(t, errors.Is(err, tt.errTarget))
		})
	}
}

func TestExecuteWithProgram_Quirks(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	// store V0-V1 at $300, the increment index quirk moves I to $302 so the
	// glyph drawn from I is empty instead of the stored $FF
	program := []byte{
		0x60, 0xFF, // LD V0, $FF
		0x61, 0xFF, // LD V1, $FF
		0xA3, 0x00, // LD I, $300
		0xF1, 0x55, // LD [I], V1
		0x62, 0x00, // LD V2, $00
		0xD2, 0x21, // DRW V2, V2, 1
		0x12, 0x0C, // JP $20C
	}

	tests := []struct {
		quirks   string
		expected string
	}{
		{"", "########"},
		{"incrementIndex", "........"},
	}

	for _, tt := range tests {
		opts := headlessOptions("test.ch8", 1)
		opts.Quirks = tt.quirks

		var buf bytes.Buffer
		err := p.ExecuteWithProgram(context.Background(), program, opts, &buf)
		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(buf.String(), tt.expected))
	}
}

func TestExecuteWithProgram_Cancelled(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := p.ExecuteWithProgram(ctx, drawProgram, headlessOptions("test.ch8", 0), &buf)
	assert.True(t, errors.Is(err, context.Canceled))
	// the last frame is rendered also for an interrupted run
	assert.Equal(t, engine.DisplayHeight*(engine.DisplayWidth+1), buf.Len())
}

func createTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
