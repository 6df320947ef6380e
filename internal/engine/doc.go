// Package engine implements the CHIP-8 virtual machine core.
//
// An Engine owns all machine state: 4KB of memory with the hexadecimal font
// at 0x000-0x04F, the V0-VF register file, the index register I, the program
// counter, an uncapped call stack, the delay and sound timers and the 64x32
// monochrome frame buffer.
//
// The engine is advanced by discrete calls:
//
//	e, err := engine.New(engine.Config{})
//	if err != nil {
//		return err
//	}
//	if err := e.LoadProgram(rom); err != nil {
//		return err
//	}
//	for running {
//		if err := e.Cycle(8); err != nil { // 8 steps, then one timer tick
//			return err
//		}
//		redraw(e.FrameBuffer())
//		beep(e.SoundActive())
//	}
//
// Display, keyboard, speaker and ROM transport are collaborators outside of
// the engine. The engine queries held keys through the Keypad interface and
// receives key presses for the wait-for-key instruction through DeliverKey.
//
// An Engine is not safe for concurrent use. Separate instances share no
// state and can run on separate goroutines.
package engine
