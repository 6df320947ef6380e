// Package options contains the program options.
package options

// Positional contains positional arguments.
type Positional struct {
	File string `arg:"positional" usage:"program image to run"`
}

// Parameters contains file path options.
type Parameters struct {
	Input string `flag:"i" usage:"input program image file"`
}

// Flags contains behavior options.
type Flags struct {
	System   string `flag:"s" usage:"target system: chip8 (default: auto-detect)"`
	Quirks   string `flag:"quirks" usage:"comma separated quirks, e.g. originalShiftBehavior,incrementIndex=false"`
	Headless bool   `flag:"headless" usage:"run without window and audio, print the final frame"`
	Trace    bool   `flag:"trace" usage:"log every executed instruction"`
	Debug    bool   `flag:"debug" usage:"enable debug logging"`
	Quiet    bool   `flag:"q" usage:"quiet mode"`
	Version  bool   `flag:"version" usage:"print version and exit"`
}

// Machine contains execution options.
type Machine struct {
	Speed  int    `flag:"speed" usage:"instructions executed per 60 Hz frame" default:"8"`
	Scale  int    `flag:"scale" usage:"window pixels per display pixel" default:"15"`
	Seed   uint64 `flag:"seed" usage:"random number seed, 0 seeds from the clock"`
	Frames int    `flag:"frames" usage:"headless frame limit, 0 runs until interrupted"`
	Mute   bool   `flag:"mute" usage:"disable sound output"`
}

// OutputFlags contains listing output options.
type OutputFlags struct {
	List          bool `flag:"list" usage:"print a program listing instead of running it"`
	NoHexComments bool `flag:"nohexcomments" usage:"omit hex opcode bytes in listing comments"`
	NoOffsets     bool `flag:"nooffsets" usage:"omit addresses in listing comments"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	Machine
	OutputFlags
}
