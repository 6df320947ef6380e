package engine

import "errors"

var (
	// ErrOutOfBoundsLoad is returned when a program image does not fit into
	// memory starting at ProgramStart.
	ErrOutOfBoundsLoad = errors.New("program does not fit into memory")

	// ErrInvalidQuirkKey is returned for quirk configuration keys that are not recognized.
	ErrInvalidQuirkKey = errors.New("invalid quirk key")

	// ErrStackUnderflow is returned when a return instruction executes with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrInvalidKey is returned for key values outside of the 16 key keypad.
	ErrInvalidKey = errors.New("invalid key")
)
