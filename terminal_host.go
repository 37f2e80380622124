// terminal_host.go - Raw-mode terminal front-end for HackVM

/*
(c) 2024 - 2026 Kade Angell
https://github.com/kadeangell/hackvm
License: GPLv3 or later
*/

/*
terminal_host.go - Terminal front-end for the HackVM fantasy console

A windowless host for console-oriented programs: the guest's console ring is
mirrored to stdout as it grows, and stdin keystrokes feed the keyboard latch.
The terminal is switched to raw mode for per-keystroke input when stdin is a
TTY; Ctrl+C always quits.

The framebuffer is ignored here; DISPLAY requests are consumed immediately so
graphics programs still make progress.
*/

package main

import (
	"os"
	"time"

	"golang.org/x/term"
)

// Terminal tick period. 16ms keeps timer granularity close to the windowed
// front-end's frame rate.
const TERM_TICK = 16 * time.Millisecond

type TerminalFrontend struct {
	machine *Machine
	config  DisplayConfig

	// Mirror cursor into the console ring.
	lastPos uint16

	// Currently latched key, released on the following tick.
	keyDown byte
}

func NewTerminalFrontend(config DisplayConfig) *TerminalFrontend {
	return &TerminalFrontend{config: config}
}

// terminalKeyCode translates a raw stdin byte into a keyboard code, or 0 for
// bytes with no key equivalent.
func terminalKeyCode(b byte) byte {
	switch {
	case b >= 'a' && b <= 'z':
		return b - 'a' + 'A'
	case b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return b
	case b == ' ':
		return KEY_SPACE
	case b == '\r', b == '\n':
		return KEY_ENTER
	case b == 0x1B:
		return KEY_ESCAPE
	case b == 0x7F, b == 0x08:
		return KEY_BACKSPACE
	case b == '\t':
		return KEY_TAB
	}
	return 0
}

func (f *TerminalFrontend) Run(m *Machine) error {
	f.machine = m

	fd := int(os.Stdin.Fd())
	keys := make(chan byte, 64)
	quit := make(chan struct{})

	if term.IsTerminal(fd) {
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return err
		}
		defer term.Restore(fd, oldState)

		go func() {
			buf := make([]byte, 1)
			for {
				n, err := os.Stdin.Read(buf)
				if err != nil || n == 0 {
					return
				}
				if buf[0] == 0x03 { // Ctrl+C
					close(quit)
					return
				}
				select {
				case keys <- buf[0]:
				default:
				}
			}
		}()
	}

	ticker := time.NewTicker(TERM_TICK)
	defer ticker.Stop()
	lastTick := time.Now()

	for {
		select {
		case <-quit:
			return nil
		case now := <-ticker.C:
			ms := uint32(now.Sub(lastTick) / time.Millisecond)
			if ms > 0 {
				lastTick = lastTick.Add(time.Duration(ms) * time.Millisecond)
				f.machine.TickTimers(ms)
			}

			f.tickKeys(keys)

			f.machine.Step(f.config.ClockHz / uint32(time.Second/TERM_TICK))
			if f.machine.DisplayRequested() {
				f.machine.ConsumeDisplay()
			}
			f.mirrorConsole()

			if f.machine.IsHalted() {
				f.mirrorConsole()
				return nil
			}
		}
	}
}

// tickKeys releases the previous key and latches the next buffered one, so
// each keystroke is visible to the guest for at least one full tick.
func (f *TerminalFrontend) tickKeys(keys chan byte) {
	if f.keyDown != 0 {
		f.machine.SetKey(f.keyDown, false)
		f.keyDown = 0
	}
	select {
	case b := <-keys:
		if code := terminalKeyCode(b); code != 0 {
			f.machine.SetKey(code, true)
			f.keyDown = code
		}
	default:
	}
}

// mirrorConsole writes console bytes appended since the last call to stdout.
// Raw mode needs CR before LF for sane cursor movement.
func (f *TerminalFrontend) mirrorConsole() {
	if !f.machine.ConsumeConsoleUpdate() {
		return
	}
	buf := f.machine.ConsoleBytes()
	pos := f.machine.ConsoleWritePos()
	var out []byte
	for p := f.lastPos; p != pos; p = (p + 1) % CONSOLE_SIZE {
		if buf[p] == '\n' {
			out = append(out, '\r')
		}
		out = append(out, buf[p])
	}
	f.lastPos = pos
	if len(out) > 0 {
		os.Stdout.Write(out)
	}
}
