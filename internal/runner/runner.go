// Package runner drives an engine frame by frame and forwards its output to
// the display and speaker collaborators.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/engine"
	"github.com/retroenv/retrochip8/internal/sound"
	"github.com/retroenv/retrogolib/log"
)

// Defaults for the runner options.
const (
	DefaultSpeed     = 8
	DefaultFrameRate = 60
)

// Display receives the frame buffer whenever it changed during a frame.
type Display interface {
	Refresh(fb engine.FrameBuffer, cleared bool)
}

// Options controls the frame pacing.
type Options struct {
	Speed     int // engine steps per frame
	FrameRate int // frames per second of the headless loop
	Frames    int // headless frame limit, 0 runs until cancelled
}

// Runner advances an engine one frame at a time.
type Runner struct {
	logger  *log.Logger
	engine  *engine.Engine
	display Display
	speaker sound.Speaker
	opts    Options

	frames      int
	soundActive bool
}

// New returns a runner for the engine. A nil display or speaker discards the
// corresponding output.
func New(logger *log.Logger, e *engine.Engine, display Display, speaker sound.Speaker, opts Options) *Runner {
	if opts.Speed <= 0 {
		opts.Speed = DefaultSpeed
	}
	if opts.FrameRate <= 0 {
		opts.FrameRate = DefaultFrameRate
	}
	if speaker == nil {
		speaker = sound.Silent{}
	}

	return &Runner{
		logger:  logger,
		engine:  e,
		display: display,
		speaker: speaker,
		opts:    opts,
	}
}

// RunFrame executes one frame: up to Speed engine steps followed by a timer
// tick, then refreshes the display if the frame buffer changed and switches
// the speaker on a sound state transition.
func (r *Runner) RunFrame() error {
	if err := r.engine.Cycle(r.opts.Speed); err != nil {
		r.logger.Debug("Execution stopped",
			log.Uint16("pc", r.engine.PC()),
			log.Err(err))
		return fmt.Errorf("running frame %d: %w", r.frames, err)
	}
	r.frames++

	if cleared, dirty := r.engine.TakeDisplayChanges(); dirty && r.display != nil {
		r.display.Refresh(r.engine.FrameBuffer(), cleared)
	}

	if active := r.engine.SoundActive(); active != r.soundActive {
		r.soundActive = active
		r.speaker.SetActive(active)
	}
	return nil
}

// Run executes frames paced at the configured frame rate until the frame
// limit is reached, an execution error occurs or the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(r.opts.FrameRate))
	defer ticker.Stop()
	defer r.silence()

	r.logger.Debug("Starting headless run",
		log.Int("speed", r.opts.Speed),
		log.Int("frames", r.opts.Frames))

	for r.opts.Frames == 0 || r.frames < r.opts.Frames {
		select {
		case <-ctx.Done():
			return fmt.Errorf("running: %w", ctx.Err())
		case <-ticker.C:
		}

		if err := r.RunFrame(); err != nil {
			return err
		}
	}
	return nil
}

// Frames returns the number of completed frames.
func (r *Runner) Frames() int {
	return r.frames
}

func (r *Runner) silence() {
	if r.soundActive {
		r.soundActive = false
		r.speaker.SetActive(false)
	}
}
