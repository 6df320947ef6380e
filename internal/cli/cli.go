// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/engine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
)

const defaultScale = 15

// ParseFlags parses command line flags and returns the program options.
func ParseFlags() (options.Program, error) {
	return parseArgs(os.Args[0], os.Args[1:], os.Stdout)
}

func parseArgs(name string, arguments []string, output io.Writer) (options.Program, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(output)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(arguments)
	if err != nil {
		return opts, &UsageError{flags: flags, output: output, msg: err.Error()}
	}
	if opts.Version {
		return opts, nil
	}

	args := flags.Args()
	if len(args) == 0 && opts.Input == "" {
		return opts, &UsageError{flags: flags, output: output, msg: "no program file given"}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if opts.Input == "" {
		opts.Input = args[0]
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags  *flag.FlagSet
	output io.Writer
	msg    string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the command synopsis and the flag defaults.
func (e *UsageError) ShowUsage() {
	output := e.output
	if output == nil {
		output = os.Stdout
	}
	_, _ = fmt.Fprintf(output, "usage: retrochip8 [options] <program file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	_, _ = fmt.Fprintln(output)
	_, _ = fmt.Fprintf(output, "supported quirks: %s\n", strings.Join(engine.QuirkKeys(), ", "))
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after program file, please pass the program file as last argument", arg),
			}
		}
	}
	if len(args) > 1 {
		return &UsageError{
			msg: fmt.Sprintf("only one program file can be run, got %d", len(args)),
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.System = strings.ToLower(opts.System)

	if opts.Speed <= 0 {
		return fmt.Errorf("invalid speed %d: must be positive", opts.Speed)
	}
	if opts.Scale <= 0 {
		return fmt.Errorf("invalid scale %d: must be positive", opts.Scale)
	}
	if opts.Frames < 0 {
		return fmt.Errorf("invalid frame limit %d: must not be negative", opts.Frames)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input program image file")
	flags.StringVar(&opts.System, "s", "", "system to run (chip8) - if not auto-detected from file extension")
	flags.StringVar(&opts.Quirks, "quirks", "", "comma separated quirks to enable, for example originalShiftBehavior,incrementIndex=false")
	flags.BoolVar(&opts.Headless, "headless", false, "run without window and audio and print the final frame as text")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, requires -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Version, "version", false, "print version information and exit")

	flags.IntVar(&opts.Speed, "speed", runner.DefaultSpeed, "instructions executed per 60 Hz frame")
	flags.IntVar(&opts.Scale, "scale", defaultScale, "window pixels per display pixel")
	flags.Uint64Var(&opts.Seed, "seed", 0, "random number seed, 0 seeds from the clock")
	flags.IntVar(&opts.Frames, "frames", 0, "headless frame limit, 0 runs until interrupted")
	flags.BoolVar(&opts.Mute, "mute", false, "disable sound output")

	flags.BoolVar(&opts.List, "list", false, "print a program listing instead of running the program")
	flags.BoolVar(&opts.NoHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in listing comments")
	flags.BoolVar(&opts.NoOffsets, "nooffsets", false, "do not output addresses in listing comments")
}
