//go:build !headless

// Package otoplayer plays the speaker tone through the host audio device.
package otoplayer

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/retroenv/retrochip8/internal/sound"
)

// bufferSamples is the player buffer size. A small buffer keeps the latency
// between a sound timer change and the audible result low.
const bufferSamples = 1024

// Player is a sound.Speaker backed by an oto audio context.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
	tone   *sound.Tone

	mu      sync.Mutex
	started bool
}

// New opens the audio device and prepares a square wave tone of the given
// frequency. It blocks until the device is ready.
func New(frequency, sampleRate int) (*Player, error) {
	if sampleRate <= 0 {
		sampleRate = sound.DefaultSampleRate
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	tone := sound.NewTone(frequency, sampleRate)
	player := ctx.NewPlayer(tone)
	player.SetBufferSize(bufferSamples * sound.BytesPerSample)

	return &Player{
		ctx:    ctx,
		player: player,
		tone:   tone,
	}, nil
}

// SetActive implements sound.Speaker. The player is started on the first
// activation and keeps streaming silence while the tone is inactive.
func (p *Player) SetActive(active bool) {
	p.tone.SetActive(active)
	if !active {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started && p.player != nil {
		p.player.Play()
		p.started = true
	}
}

// Close stops playback and releases the player.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	p.started = false
	if err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}
