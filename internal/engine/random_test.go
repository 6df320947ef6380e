package engine

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestNewRandom_Reproducible(t *testing.T) {
	a := NewRandom(42)
	b := NewRandom(42)
	for range 16 {
		assert.Equal(t, a.Uint32(), b.Uint32())
	}
}

func TestRandom_SeededEngines(t *testing.T) {
	program := []uint16{0xC0FF, 0xC1FF, 0xC2FF, 0xC3FF}

	run := func() [16]byte {
		e, err := New(Config{Random: NewRandom(7)})
		assert.NoError(t, err)
		runWords(t, e, program...)
		return e.Registers()
	}
	assert.Equal(t, run(), run())
}
