// keyboard.go - Keyboard latch for HackVM

/*
(c) 2024 - 2026 Kade Angell
https://github.com/kadeangell/hackvm
License: GPLv3 or later
*/

package main

// ------------------------------------------------------------------------------
// Keyboard Codes
// ------------------------------------------------------------------------------
// Letters are 'A'..'Z' (0x41..0x5A) and digits '0'..'9' (0x30..0x39); the
// named keys below cover the rest of the map. Front-ends translate host
// events into these codes before calling SetKey.
const (
	KEY_SPACE     = 0x20
	KEY_ENTER     = 0x0D
	KEY_ESCAPE    = 0x1B
	KEY_BACKSPACE = 0x08
	KEY_TAB       = 0x09
	KEY_UP        = 0x80
	KEY_DOWN      = 0x81
	KEY_LEFT      = 0x82
	KEY_RIGHT     = 0x83
	KEY_SHIFT     = 0x84
	KEY_CONTROL   = 0x85
	KEY_ALT       = 0x86
	KEY_F1        = 0x90
	KEY_F2        = 0x91
	KEY_F3        = 0x92
	KEY_F4        = 0x93
	KEY_F5        = 0x94
	KEY_F6        = 0x95
	KEY_F7        = 0x96
	KEY_F8        = 0x97
	KEY_F9        = 0x98
)

// Keyboard is the key latch behind KEY_CODE/KEY_STATE. KEY_CODE holds the
// last key pressed ("last key" convention: a release leaves it in place),
// KEY_STATE is 1 while a key is held. Both bytes are read-only to the guest;
// the host feeds the latch between Step calls.
type Keyboard struct {
	keyCode  byte
	keyState byte
}

// HandleRead services guest reads of the keyboard overlay bytes.
func (k *Keyboard) HandleRead(addr uint16) byte {
	switch addr {
	case KEY_CODE:
		return k.keyCode
	case KEY_STATE:
		return k.keyState
	}
	return 0
}

// SetKey records a key transition. A press latches the code and raises the
// state; a release only drops the state so KEY_CODE keeps reporting the most
// recent key.
func (k *Keyboard) SetKey(code byte, pressed bool) {
	if pressed {
		k.keyCode = code
		k.keyState = 1
	} else {
		k.keyState = 0
	}
}

func (k *Keyboard) Reset() {
	k.keyCode = 0
	k.keyState = 0
}
