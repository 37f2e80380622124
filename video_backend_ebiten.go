//go:build !headless

// video_backend_ebiten.go - Ebiten front-end for HackVM

/*
(c) 2024 - 2026 Kade Angell
https://github.com/kadeangell/hackvm
License: GPLv3 or later
*/

package main

import (
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"
)

// TICK_RATE is ebiten's update frequency; the cycle budget per tick is
// ClockHz / TICK_RATE.
const TICK_RATE = 60

type EbitenFrontend struct {
	machine *Machine
	chip    *VideoChip
	config  DisplayConfig

	window     *ebiten.Image
	fullscreen bool
	lastTick   time.Time

	// Clipboard paste queue: one key transition (press or release) is
	// injected per update tick so the guest latch observes every character.
	pasteQueue   []byte
	pasteKeyDown bool

	clipboardOnce sync.Once
	clipboardOK   bool
}

// keyMap translates ebiten keys into the machine's keyboard codes. Host keys
// with no entry are ignored.
var keyMap = map[ebiten.Key]byte{
	ebiten.KeySpace:      KEY_SPACE,
	ebiten.KeyEnter:      KEY_ENTER,
	ebiten.KeyEscape:     KEY_ESCAPE,
	ebiten.KeyBackspace:  KEY_BACKSPACE,
	ebiten.KeyTab:        KEY_TAB,
	ebiten.KeyArrowUp:    KEY_UP,
	ebiten.KeyArrowDown:  KEY_DOWN,
	ebiten.KeyArrowLeft:  KEY_LEFT,
	ebiten.KeyArrowRight: KEY_RIGHT,
	ebiten.KeyShiftLeft:  KEY_SHIFT,
	ebiten.KeyShiftRight: KEY_SHIFT,
	ebiten.KeyControlLeft:  KEY_CONTROL,
	ebiten.KeyControlRight: KEY_CONTROL,
	ebiten.KeyAltLeft:    KEY_ALT,
	ebiten.KeyAltRight:   KEY_ALT,
	ebiten.KeyF1:         KEY_F1,
	ebiten.KeyF2:         KEY_F2,
	ebiten.KeyF3:         KEY_F3,
	ebiten.KeyF4:         KEY_F4,
	ebiten.KeyF5:         KEY_F5,
	ebiten.KeyF6:         KEY_F6,
	ebiten.KeyF7:         KEY_F7,
	ebiten.KeyF8:         KEY_F8,
	ebiten.KeyF9:         KEY_F9,
}

func init() {
	for k := ebiten.KeyA; k <= ebiten.KeyZ; k++ {
		keyMap[k] = byte('A' + int(k-ebiten.KeyA))
	}
	for k := ebiten.KeyDigit0; k <= ebiten.KeyDigit9; k++ {
		keyMap[k] = byte('0' + int(k-ebiten.KeyDigit0))
	}
}

func NewFrontend(config DisplayConfig) (Frontend, error) {
	config.Scale = ClampScale(config.Scale)
	return &EbitenFrontend{
		chip:   NewVideoChip(),
		config: config,
	}, nil
}

func (f *EbitenFrontend) Run(m *Machine) error {
	f.machine = m
	f.lastTick = time.Now()
	f.fullscreen = f.config.Fullscreen

	ebiten.SetWindowSize(FB_WIDTH*f.config.Scale, FB_HEIGHT*f.config.Scale)
	ebiten.SetWindowTitle(f.config.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(true)
	ebiten.SetTPS(TICK_RATE)
	if f.fullscreen {
		ebiten.SetFullscreen(true)
	}

	err := ebiten.RunGame(f)
	if err == ebiten.Termination {
		return nil
	}
	return err
}

func (f *EbitenFrontend) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		f.fullscreen = !f.fullscreen
		ebiten.SetFullscreen(f.fullscreen)
	}

	// Wall-clock time feeds the timers; the fractional remainder stays in
	// lastTick so long sessions do not drift.
	now := time.Now()
	elapsed := now.Sub(f.lastTick)
	ms := uint32(elapsed / time.Millisecond)
	if ms > 0 {
		f.lastTick = f.lastTick.Add(time.Duration(ms) * time.Millisecond)
		f.machine.TickTimers(ms)
	}

	f.handleKeyboardInput()
	f.drainPasteQueue()

	if !f.machine.IsHalted() {
		f.machine.Step(f.config.ClockHz / TICK_RATE)
	}
	if f.machine.DisplayRequested() {
		// Every tick is followed by a Draw, so the request is satisfied
		// by simply releasing the CPU for the next one.
		f.machine.ConsumeDisplay()
	}
	return nil
}

func (f *EbitenFrontend) handleKeyboardInput() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)

	// Clipboard paste: Ctrl+Shift+V
	if ctrl && shift && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		f.handleClipboardPaste()
		return
	}

	for key, code := range keyMap {
		if inpututil.IsKeyJustPressed(key) {
			f.machine.SetKey(code, true)
		}
		if inpututil.IsKeyJustReleased(key) {
			f.machine.SetKey(code, false)
		}
	}
}

// pasteByteToKey maps a pasted character onto a keyboard code, or 0 when the
// character has no key equivalent.
func pasteByteToKey(b byte) byte {
	switch {
	case b >= 'a' && b <= 'z':
		return b - 'a' + 'A'
	case b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return b
	case b == ' ':
		return KEY_SPACE
	case b == '\n':
		return KEY_ENTER
	case b == '\t':
		return KEY_TAB
	}
	return 0
}

func (f *EbitenFrontend) handleClipboardPaste() {
	f.clipboardOnce.Do(func() {
		f.clipboardOK = clipboard.Init() == nil
	})
	if !f.clipboardOK {
		return
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return
	}
	for _, b := range data {
		if pasteByteToKey(b) != 0 {
			f.pasteQueue = append(f.pasteQueue, b)
		}
	}
}

// drainPasteQueue injects one press or release per tick so every pasted
// character produces a distinct transition in the key latch.
func (f *EbitenFrontend) drainPasteQueue() {
	if len(f.pasteQueue) == 0 {
		return
	}
	code := pasteByteToKey(f.pasteQueue[0])
	if !f.pasteKeyDown {
		f.machine.SetKey(code, true)
		f.pasteKeyDown = true
	} else {
		f.machine.SetKey(code, false)
		f.pasteKeyDown = false
		f.pasteQueue = f.pasteQueue[1:]
	}
}

func (f *EbitenFrontend) Draw(screen *ebiten.Image) {
	if f.window == nil {
		f.window = ebiten.NewImage(FB_WIDTH, FB_HEIGHT)
	}
	f.window.WritePixels(f.chip.RenderFrame(f.machine.Framebuffer()))
	screen.DrawImage(f.window, nil)
}

func (f *EbitenFrontend) Layout(_, _ int) (int, int) {
	return FB_WIDTH, FB_HEIGHT
}
