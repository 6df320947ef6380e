//go:build !headless

package ebitenui

import "github.com/hajimehoshi/ebiten/v2"

// keyBinding binds a host key to a keypad key.
type keyBinding struct {
	host ebiten.Key
	key  uint8
}

// keymap maps the left hand block of a QWERTY keyboard onto the hexadecimal
// keypad, in row order so that simultaneous presses are delivered
// deterministically:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
var keymap = []keyBinding{
	{ebiten.Key1, 0x1}, {ebiten.Key2, 0x2}, {ebiten.Key3, 0x3}, {ebiten.Key4, 0xC},
	{ebiten.KeyQ, 0x4}, {ebiten.KeyW, 0x5}, {ebiten.KeyE, 0x6}, {ebiten.KeyR, 0xD},
	{ebiten.KeyA, 0x7}, {ebiten.KeyS, 0x8}, {ebiten.KeyD, 0x9}, {ebiten.KeyF, 0xE},
	{ebiten.KeyZ, 0xA}, {ebiten.KeyX, 0x0}, {ebiten.KeyC, 0xB}, {ebiten.KeyV, 0xF},
}
