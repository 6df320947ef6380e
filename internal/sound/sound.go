// Package sound provides the speaker collaborator that is driven by the
// sound timer of the engine.
package sound

import (
	"encoding/binary"
	"math"
	"sync/atomic"
)

// Tone defaults.
const (
	DefaultFrequency  = 440
	DefaultSampleRate = 44100
	DefaultVolume     = 0.25

	// BytesPerSample is the size of one mono float32 little endian sample.
	BytesPerSample = 4
)

// Speaker is switched on while the sound timer is non zero.
type Speaker interface {
	SetActive(active bool)
}

// Silent is a Speaker that produces no output.
type Silent struct{}

// SetActive implements Speaker.
func (Silent) SetActive(bool) {}

// Tone generates a mono square wave as float32 little endian samples.
// Read and SetActive may be called from different goroutines, Read itself
// must not be called concurrently.
type Tone struct {
	active atomic.Bool

	halfPeriod float64 // samples per half wave
	volume     float32
	position   float64
}

// NewTone returns a square wave generator of the given frequency in Hz for
// the given sample rate. The tone starts silenced.
func NewTone(frequency, sampleRate int) *Tone {
	if frequency <= 0 {
		frequency = DefaultFrequency
	}
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &Tone{
		halfPeriod: float64(sampleRate) / float64(frequency) / 2,
		volume:     DefaultVolume,
	}
}

// SetActive implements Speaker.
func (t *Tone) SetActive(active bool) {
	t.active.Store(active)
}

// Active returns whether the tone is currently audible.
func (t *Tone) Active() bool {
	return t.active.Load()
}

// Read fills p with whole samples. Silence is written while the tone is
// inactive, the wave phase restarts on the next activation.
func (t *Tone) Read(p []byte) (int, error) {
	n := len(p) / BytesPerSample * BytesPerSample
	if !t.active.Load() {
		clear(p[:n])
		t.position = 0
		return n, nil
	}

	for i := 0; i < n; i += BytesPerSample {
		sample := t.volume
		if int(t.position/t.halfPeriod)%2 == 1 {
			sample = -t.volume
		}
		binary.LittleEndian.PutUint32(p[i:], math.Float32bits(sample))

		t.position++
		if t.position >= 2*t.halfPeriod {
			t.position -= 2 * t.halfPeriod
		}
	}
	return n, nil
}
