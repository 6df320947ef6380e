package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/retroenv/retrochip8/internal/arch/chip8"
	"github.com/retroenv/retrochip8/internal/engine"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type recordingSpeaker struct {
	states []bool
}

func (s *recordingSpeaker) SetActive(active bool) {
	s.states = append(s.states, active)
}

func newTestEngine(t *testing.T, program ...uint16) *engine.Engine {
	t.Helper()
	e, err := engine.New(engine.Config{Logger: log.NewTestLogger(t)})
	assert.NoError(t, err)

	data := make([]byte, 0, len(program)*2)
	for _, w := range program {
		data = append(data, byte(w>>8), byte(w))
	}
	assert.NoError(t, e.LoadProgram(data))
	return e
}

func TestNew_Defaults(t *testing.T) {
	e := newTestEngine(t)
	r := New(log.NewTestLogger(t), e, nil, nil, Options{})
	assert.Equal(t, DefaultSpeed, r.opts.Speed)
	assert.Equal(t, DefaultFrameRate, r.opts.FrameRate)
	assert.NotNil(t, r.speaker)
}

func TestRunFrame(t *testing.T) {
	e := newTestEngine(t,
		0x6102, // LD V1, $02
		0xF118, // LD ST, V1
		0xD005, // DRW V0, V0, 5
		0x1206, // JP $206
	)
	display := &TextDisplay{}
	speaker := &recordingSpeaker{}
	r := New(log.NewTestLogger(t), e, display, speaker, Options{Speed: 4})

	assert.NoError(t, r.RunFrame())
	assert.Equal(t, 1, r.Frames())
	assert.Equal(t, uint16(0x206), e.PC())
	assert.Equal(t, byte(1), e.SoundTimer())
	// initial reset and the draw mark the display as changed
	assert.Equal(t, 1, display.Refreshes())
	assert.True(t, display.frame[0][0])
	assert.Len(t, speaker.states, 1)
	assert.True(t, speaker.states[0])

	// unchanged display, sound timer expires
	assert.NoError(t, r.RunFrame())
	assert.Equal(t, 1, display.Refreshes())
	assert.Len(t, speaker.states, 2)
	assert.False(t, speaker.states[1])

	assert.NoError(t, r.RunFrame())
	assert.Len(t, speaker.states, 2)
}

func TestRunFrame_Error(t *testing.T) {
	e := newTestEngine(t, 0x00EE)
	r := New(log.NewTestLogger(t), e, nil, nil, Options{})

	err := r.RunFrame()
	assert.True(t, errors.Is(err, engine.ErrStackUnderflow))
	assert.ErrorContains(t, err, "running frame 0")
	assert.Equal(t, 0, r.Frames())
}

func TestRun_FrameLimit(t *testing.T) {
	e := newTestEngine(t, 0x1200) // JP $200
	r := New(log.NewTestLogger(t), e, nil, nil, Options{FrameRate: 1000, Frames: 3})

	assert.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 3, r.Frames())
}

func TestRun_Cancelled(t *testing.T) {
	e := newTestEngine(t, 0x1200) // JP $200
	r := New(log.NewTestLogger(t), e, nil, nil, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRun_ExecutionError(t *testing.T) {
	e := newTestEngine(t, 0x0123)
	r := New(log.NewTestLogger(t), e, nil, nil, Options{FrameRate: 1000})

	err := r.Run(context.Background())
	assert.True(t, errors.Is(err, chip8.ErrUnknownOpcode))
}

func TestRun_SilencesSpeaker(t *testing.T) {
	e := newTestEngine(t,
		0x61FF, // LD V1, $FF
		0xF118, // LD ST, V1
		0x1204, // JP $204
	)
	speaker := &recordingSpeaker{}
	r := New(log.NewTestLogger(t), e, nil, speaker, Options{FrameRate: 1000, Frames: 2})

	assert.NoError(t, r.Run(context.Background()))
	assert.Len(t, speaker.states, 2)
	assert.True(t, speaker.states[0])
	assert.False(t, speaker.states[1])
}

func TestRun_WaitingForKey(t *testing.T) {
	e := newTestEngine(t,
		0x6105, // LD V1, $05
		0xF115, // LD DT, V1
		0xF20A, // LD V2, K
		0x1206, // JP $206
	)
	r := New(log.NewTestLogger(t), e, nil, nil, Options{FrameRate: 1000, Frames: 4})

	assert.NoError(t, r.Run(context.Background()))
	// timers are frozen while waiting
	assert.Equal(t, byte(5), e.DelayTimer())
	_, waiting := e.AwaitingKey()
	assert.True(t, waiting)

	assert.NoError(t, e.DeliverKey(0xB))
	assert.NoError(t, r.RunFrame())
	assert.Equal(t, byte(0xB), e.Register(2))
}
