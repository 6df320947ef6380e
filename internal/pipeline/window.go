//go:build !headless

package pipeline

import (
	"context"

	"github.com/retroenv/retrochip8/internal/engine"
	"github.com/retroenv/retrochip8/internal/frontend/ebitenui"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/sound"
	"github.com/retroenv/retrochip8/internal/sound/otoplayer"
	"github.com/retroenv/retrogolib/log"
)

// runWindow runs the engine in a desktop window with audio output.
func (p *Pipeline) runWindow(ctx context.Context, e *engine.Engine, keys *engine.KeyState, opts options.Program) error {
	speaker, closeSpeaker := p.createSpeaker(opts)
	defer closeSpeaker()

	window := ebitenui.New(p.logger, e, keys, ebitenui.Options{
		Scale: opts.Scale,
		Title: "retrochip8 - " + opts.Input,
	})
	r := runner.New(p.logger, e, window, speaker, runner.Options{Speed: opts.Speed})
	window.SetRunner(r)

	return window.Run(ctx) //nolint:wrapcheck // wrapped by window
}

// createSpeaker opens the audio device. Without a usable device the program
// keeps running silently.
func (p *Pipeline) createSpeaker(opts options.Program) (sound.Speaker, func()) {
	if opts.Mute {
		return sound.Silent{}, func() {}
	}

	player, err := otoplayer.New(sound.DefaultFrequency, sound.DefaultSampleRate)
	if err != nil {
		p.logger.Warn("Audio output unavailable, running muted", log.Err(err))
		return sound.Silent{}, func() {}
	}

	return player, func() {
		player.SetActive(false)
		if err := player.Close(); err != nil {
			p.logger.Warn("Closing audio output failed", log.Err(err))
		}
	}
}
