// Package pipeline orchestrates the emulation workflow stages.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/engine"
	"github.com/retroenv/retrochip8/internal/listing"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/sound"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// ErrUnsupportedSystem is returned for input that is not a CHIP-8 program.
var ErrUnsupportedSystem = errors.New("unsupported system")

// Pipeline orchestrates the complete emulation workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new emulation pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Execute runs the complete pipeline. Headless runs write the final frame
// to output.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, output io.Writer) error {
	system, err := p.detector.Detect(opts)
	if err != nil {
		return fmt.Errorf("detecting system: %w", err)
	}
	if system != arch.CHIP8System {
		return fmt.Errorf("%w '%s'", ErrUnsupportedSystem, system)
	}

	program, err := p.loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	if opts.List {
		return p.WriteListing(program, opts, output)
	}
	return p.ExecuteWithProgram(ctx, program, opts, output)
}

// ExecuteWithProgram runs the pipeline with a pre-loaded program image.
// This is useful for testing and programmatic usage where the image is already in memory.
func (p *Pipeline) ExecuteWithProgram(ctx context.Context, program []byte, opts options.Program, output io.Writer) error {
	keys := &engine.KeyState{}
	e, err := p.createEngine(opts, keys)
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}

	if err := e.LoadProgram(program); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	p.printInfo(opts, len(program), e.Quirks())

	if opts.Headless {
		return p.runHeadless(ctx, e, opts, output)
	}
	return p.runWindow(ctx, e, keys, opts)
}

// WriteListing writes an assembler style listing of the program image.
func (p *Pipeline) WriteListing(program []byte, opts options.Program, output io.Writer) error {
	w := listing.New(program, output, listing.Options{
		HexComments:    !opts.NoHexComments,
		OffsetComments: !opts.NoOffsets,
	})
	if err := w.Write(); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}

// createEngine creates an engine configured from the program options.
func (p *Pipeline) createEngine(opts options.Program, keys *engine.KeyState) (*engine.Engine, error) {
	quirks, err := config.ParseQuirkList(opts.Quirks)
	if err != nil {
		return nil, fmt.Errorf("parsing quirks: %w", err)
	}

	e, err := engine.New(engine.Config{
		Quirks: quirks,
		Keypad: keys,
		Random: engine.NewRandom(opts.Seed),
		Logger: p.logger,
		Trace:  opts.Trace,
	})
	if err != nil {
		return nil, err //nolint:wrapcheck // wrapped by caller
	}
	return e, nil
}

// runHeadless runs the engine without window and audio and renders the last
// frame as text, also when the run ended with an error.
func (p *Pipeline) runHeadless(ctx context.Context, e *engine.Engine, opts options.Program, output io.Writer) error {
	display := &runner.TextDisplay{}
	r := runner.New(p.logger, e, display, sound.Silent{}, runner.Options{
		Speed:  opts.Speed,
		Frames: opts.Frames,
	})

	runErr := r.Run(ctx)
	p.logger.Debug("Headless run finished",
		log.Int("frames", r.Frames()),
		log.Int("refreshes", display.Refreshes()))

	if err := display.Render(output); err != nil {
		return errors.Join(runErr, fmt.Errorf("rendering frame: %w", err))
	}
	return runErr
}

// printInfo prints information about the program being run.
func (p *Pipeline) printInfo(opts options.Program, size int, quirks engine.Quirks) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Running Chip-8 program",
		log.String("file", opts.Input),
		log.Int("size", size),
		log.Int("speed", opts.Speed),
		log.Stringer("quirks", quirks),
	)
}
