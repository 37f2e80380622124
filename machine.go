// machine.go - Machine wiring and host entry points for HackVM

/*
(c) 2024 - 2026 Kade Angell
https://github.com/kadeangell/hackvm
License: GPLv3 or later
*/

/*
machine.go - Machine assembly for the HackVM fantasy console

A Machine owns the memory, CPU, timers and keyboard latch, and wires the
MMIO overlay together at construction time. It is an explicit value passed
by reference: the host holds it and drives the cooperative loop

    1. TickTimers(elapsedMs)
    2. Step(budgetCycles)
    3. inspect Halted / DisplayRequested / console, present, consume

There is no concurrency inside the machine; the host and the guest share
memory and the console only between Step calls.
*/

package main

type Machine struct {
	mem    *Memory
	cpu    *CPU
	timers *SystemTimers
	keys   *Keyboard
}

func NewMachine() *Machine {
	/*
		NewMachine builds a powered-on machine:

		1. Allocates the 64KB store
		2. Registers the timer overlay (0xFFF0-0xFFF3; countdown writable)
		3. Registers the keyboard latch (0xFFF4-0xFFF5, read-only)
		4. Registers the reserved band (0xFFF6-0xFFFF; reads 0, writes dropped)
		5. Creates the CPU against the finished bus
	*/

	mem := NewMemory()
	timers := &SystemTimers{}
	keys := &Keyboard{}

	mem.MapIO(SYS_TIMER_LOW, COUNTDOWN_HIGH, timers.HandleRead, timers.HandleWrite)
	mem.MapIO(KEY_CODE, KEY_STATE, keys.HandleRead, nil)
	mem.MapIO(RESERVED_BASE, RESERVED_END, nil, nil)

	return &Machine{
		mem:    mem,
		cpu:    NewCPU(mem),
		timers: timers,
		keys:   keys,
	}
}

// Init resets the whole machine: memory zeroed, devices cleared, CPU back to
// power-on state. The loaded program is gone afterwards.
func (m *Machine) Init() {
	m.mem.Reset()
	m.timers.Reset()
	m.keys.Reset()
	m.cpu.Reset()
}

// ResetCPU resets registers, flags, PC, SP and the cycle counter while
// keeping memory intact, so the resident program restarts from address zero.
func (m *Machine) ResetCPU() {
	m.cpu.Reset()
}

// LoadProgram copies a flat binary image to address zero (truncated at 16KB)
// and resets the CPU so execution starts at the image's first byte.
func (m *Machine) LoadProgram(image []byte) {
	m.mem.LoadProgram(image)
	m.cpu.Reset()
}

// Step runs the CPU against a cycle budget and returns the cycles consumed.
func (m *Machine) Step(maxCycles uint32) uint32 {
	return m.cpu.Step(maxCycles)
}

// TickTimers advances the wall-clock timers by the elapsed milliseconds.
func (m *Machine) TickTimers(deltaMs uint32) {
	m.timers.Tick(deltaMs)
}

// SetKey feeds a host key transition into the keyboard latch.
func (m *Machine) SetKey(code byte, pressed bool) {
	m.keys.SetKey(code, pressed)
}

func (m *Machine) IsHalted() bool {
	return m.cpu.Halted()
}

func (m *Machine) DisplayRequested() bool {
	return m.cpu.DisplayRequested()
}

func (m *Machine) ConsumeDisplay() {
	m.cpu.ConsumeDisplay()
}

func (m *Machine) CyclesExecuted() uint64 {
	return m.cpu.Cycles()
}

func (m *Machine) PC() uint16 {
	return m.cpu.PC
}

func (m *Machine) SP() uint16 {
	return m.cpu.SP
}

func (m *Machine) Register(i int) uint16 {
	return m.cpu.Register(i)
}

func (m *Machine) Flags() byte {
	return m.cpu.Flags()
}

// Memory returns the machine's bus, for hosts that poke RAM between steps.
func (m *Machine) Memory() *Memory {
	return m.mem
}

// Framebuffer is a read-only view of the 16KB framebuffer region.
func (m *Machine) Framebuffer() []byte {
	return m.mem.Framebuffer()
}

// ------------------------------------------------------------------------------
// Console surface
// ------------------------------------------------------------------------------

func (m *Machine) ConsoleBytes() []byte {
	return m.cpu.Console().Bytes()
}

func (m *Machine) ConsoleLength() uint16 {
	return m.cpu.Console().Length()
}

func (m *Machine) ConsoleWritePos() uint16 {
	return m.cpu.Console().WritePos()
}

func (m *Machine) ConsumeConsoleUpdate() bool {
	return m.cpu.Console().ConsumeUpdate()
}

func (m *Machine) ClearConsole() {
	m.cpu.Console().Clear()
}
