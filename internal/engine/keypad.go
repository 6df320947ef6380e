package engine

import "fmt"

// KeyCount is the number of keys on the hexadecimal keypad.
const KeyCount = 16

// Keypad reports which keypad keys are currently held down.
type Keypad interface {
	// IsPressed returns true if the key is held. Keys outside of 0-F are never held.
	IsPressed(key uint8) bool
}

// KeyState is a Keypad implementation that stores the held state of each key.
// The zero value has all keys released.
type KeyState [KeyCount]bool

// IsPressed returns true if the key is held.
func (k *KeyState) IsPressed(key uint8) bool {
	if int(key) >= KeyCount {
		return false
	}
	return k[key]
}

// Set updates the held state of a key.
func (k *KeyState) Set(key uint8, pressed bool) error {
	if int(key) >= KeyCount {
		return fmt.Errorf("%w: $%02X", ErrInvalidKey, key)
	}
	k[key] = pressed
	return nil
}

// Reset releases all keys.
func (k *KeyState) Reset() {
	*k = KeyState{}
}
