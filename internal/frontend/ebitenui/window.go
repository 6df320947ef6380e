//go:build !headless

// Package ebitenui implements the display and keyboard collaborators in a
// desktop window.
package ebitenui

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrochip8/internal/engine"
	"github.com/retroenv/retrogolib/log"
)

// Defaults for the window options.
const (
	DefaultScale = 15
	DefaultTitle = "CHIP-8"
)

// DefaultColor is the colour of set pixels.
var DefaultColor = color.RGBA{R: 0xE8, G: 0x79, B: 0xF9, A: 0xFF}

const bytesPerPixel = 4

// FrameRunner executes one frame of the machine per window update.
type FrameRunner interface {
	RunFrame() error
}

// Options configures the window.
type Options struct {
	Scale int
	Title string
	Color color.RGBA
}

// Window shows the frame buffer scaled up and feeds the host keyboard into
// the keypad. It implements ebiten.Game and the runner display.
type Window struct {
	logger *log.Logger
	engine *engine.Engine
	keys   *engine.KeyState
	runner FrameRunner
	opts   Options

	mu     sync.Mutex
	pixels []byte // RGBA of the 64x32 frame
	image  *ebiten.Image

	ctx context.Context
}

// New creates a window for the engine. Held keys are written to keys, which
// must be the keypad the engine was created with.
func New(logger *log.Logger, e *engine.Engine, keys *engine.KeyState, opts Options) *Window {
	if opts.Scale <= 0 {
		opts.Scale = DefaultScale
	}
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.Color == (color.RGBA{}) {
		opts.Color = DefaultColor
	}

	w := &Window{
		logger: logger,
		engine: e,
		keys:   keys,
		opts:   opts,
		pixels: make([]byte, engine.DisplayWidth*engine.DisplayHeight*bytesPerPixel),
		ctx:    context.Background(),
	}
	w.rasterize(engine.FrameBuffer{})
	return w
}

// SetRunner sets the runner that is advanced once per window update.
func (w *Window) SetRunner(r FrameRunner) {
	w.runner = r
}

// Run opens the window and blocks until it is closed, Escape is pressed,
// the context is cancelled or a frame fails.
func (w *Window) Run(ctx context.Context) error {
	if w.runner == nil {
		return errors.New("window has no frame runner")
	}
	w.ctx = ctx

	ebiten.SetWindowSize(engine.DisplayWidth*w.opts.Scale, engine.DisplayHeight*w.opts.Scale)
	ebiten.SetWindowTitle(w.opts.Title)
	ebiten.SetTPS(ebiten.DefaultTPS)

	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}

// Refresh implements the runner display.
func (w *Window) Refresh(fb engine.FrameBuffer, _ bool) {
	w.rasterize(fb)
}

// Update implements ebiten.Game.
func (w *Window) Update() error {
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	select {
	case <-w.ctx.Done():
		return ebiten.Termination
	default:
	}

	if err := w.pollKeys(); err != nil {
		return err
	}
	return w.runner.RunFrame()
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.image == nil {
		w.image = ebiten.NewImage(engine.DisplayWidth, engine.DisplayHeight)
	}

	w.mu.Lock()
	w.image.WritePixels(w.pixels)
	w.mu.Unlock()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w.opts.Scale), float64(w.opts.Scale))
	screen.DrawImage(w.image, op)
}

// Layout implements ebiten.Game.
func (w *Window) Layout(_, _ int) (int, int) {
	return engine.DisplayWidth * w.opts.Scale, engine.DisplayHeight * w.opts.Scale
}

// pollKeys updates the held state of every mapped key and delivers fresh
// presses to a pending wait-for-key instruction.
func (w *Window) pollKeys() error {
	for _, binding := range keymap {
		key := binding.key
		if err := w.keys.Set(key, ebiten.IsKeyPressed(binding.host)); err != nil {
			return fmt.Errorf("setting key state: %w", err)
		}
		if !inpututil.IsKeyJustPressed(binding.host) {
			continue
		}

		if register, waiting := w.engine.AwaitingKey(); waiting {
			w.logger.Debug("Delivering key",
				log.Hex("key", key),
				log.String("register", fmt.Sprintf("V%X", register)))
		}
		if err := w.engine.DeliverKey(key); err != nil {
			return fmt.Errorf("delivering key: %w", err)
		}
	}
	return nil
}

// rasterize converts the frame buffer to RGBA pixels, unset pixels are black.
func (w *Window) rasterize(fb engine.FrameBuffer) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for y := range engine.DisplayHeight {
		for x := range engine.DisplayWidth {
			offset := (y*engine.DisplayWidth + x) * bytesPerPixel
			px := w.pixels[offset : offset+bytesPerPixel]
			if fb[y][x] {
				px[0], px[1], px[2], px[3] = w.opts.Color.R, w.opts.Color.G, w.opts.Color.B, w.opts.Color.A
			} else {
				px[0], px[1], px[2], px[3] = 0, 0, 0, 0xFF
			}
		}
	}
}
