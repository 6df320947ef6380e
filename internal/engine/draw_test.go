package engine

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDraw_Glyph(t *testing.T) {
	e := newTestEngine(t, nil)
	runWords(t, e,
		0x6000, // LD V0, $00
		0xF029, // LD F, V0
		0xD005, // DRW V0, V0, 5
	)

	// glyph 0 is $F0 $90 $90 $90 $F0
	for x := range 4 {
		assert.True(t, e.Pixel(x, 0))
		assert.True(t, e.Pixel(x, 4))
	}
	for y := 1; y < 4; y++ {
		assert.True(t, e.Pixel(0, y))
		assert.False(t, e.Pixel(1, y))
		assert.False(t, e.Pixel(2, y))
		assert.True(t, e.Pixel(3, y))
	}
	assert.False(t, e.Pixel(4, 0))
	assert.Equal(t, byte(0), e.Register(0xF))
}

func TestDraw_TwiceRestoresDisplay(t *testing.T) {
	e := newTestEngine(t, nil)
	runWords(t, e,
		0x610A, // LD V1, $0A
		0x6214, // LD V2, $14
		0xA000, // LD I, $000
		0xD125, // DRW V1, V2, 5
	)
	assert.Equal(t, byte(0), e.Register(0xF))
	assert.True(t, e.Pixel(10, 20))

	runWordsAt(t, e, 0xD125)
	assert.Equal(t, byte(1), e.Register(0xF))
	assert.Equal(t, FrameBuffer{}, e.FrameBuffer())
}

func TestDraw_WrapsStartPosition(t *testing.T) {
	e := newTestEngine(t, nil)
	runWords(t, e,
		0x6142, // LD V1, $42 (66 wraps to 2)
		0x6223, // LD V2, $23 (35 wraps to 3)
		0xA000, // LD I, $000
		0xD121, // DRW V1, V2, 1
	)
	for x := 2; x < 6; x++ {
		assert.True(t, e.Pixel(x, 3))
	}
	assert.False(t, e.Pixel(6, 3))

	// coordinate registers are not modified
	assert.Equal(t, byte(0x42), e.Register(1))
	assert.Equal(t, byte(0x23), e.Register(2))
}

func TestDraw_ClipsAtEdges(t *testing.T) {
	e := newTestEngine(t, nil)
	runWords(t, e,
		0x613C, // LD V1, $3C (60)
		0x621E, // LD V2, $1E (30)
		0xA000, // LD I, $000
		0xD125, // DRW V1, V2, 5
	)

	fb := e.FrameBuffer()
	count := 0
	for y := range DisplayHeight {
		for x := range DisplayWidth {
			if fb[y][x] {
				count++
			}
		}
	}
	// rows 30 and 31 of glyph 0 inside columns 60-63: $F0 and $90
	assert.Equal(t, 6, count)
	assert.True(t, e.Pixel(60, 30))
	assert.True(t, e.Pixel(63, 30))
	assert.True(t, e.Pixel(60, 31))
	assert.False(t, e.Pixel(61, 31))
	assert.True(t, e.Pixel(63, 31))
	assert.False(t, e.Pixel(0, 30))
	assert.False(t, e.Pixel(60, 0))
}

func TestDraw_FlagRegisterCoordinates(t *testing.T) {
	// VF as the X coordinate is read before the collision flag is reset
	e := newTestEngine(t, nil)
	runWords(t, e,
		0x6F08, // LD VF, $08
		0x6000, // LD V0, $00
		0xA000, // LD I, $000
		0xDF01, // DRW VF, V0, 1
	)
	assert.True(t, e.Pixel(8, 0))
	assert.False(t, e.Pixel(0, 0))
	assert.Equal(t, byte(0), e.Register(0xF))
}

func TestDraw_ZeroRows(t *testing.T) {
	e := newTestEngine(t, nil)
	runWords(t, e, 0x6F01, 0xD000)
	assert.Equal(t, FrameBuffer{}, e.FrameBuffer())
	assert.Equal(t, byte(0), e.Register(0xF))

	_, dirty := e.TakeDisplayChanges()
	assert.True(t, dirty)
}
