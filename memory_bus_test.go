package main

import "testing"

func TestReadWriteRoundTrip(t *testing.T) {
	m := NewMachine()
	mem := m.Memory()

	addrs := []uint16{0x0000, 0x3FFF, 0x4000, 0x7FFF, 0x8000, 0xFFEF}
	for _, addr := range addrs {
		mem.Write8(addr, 0xA5)
		if got := mem.Read8(addr); got != 0xA5 {
			t.Errorf("Read8(0x%04X) = 0x%02X, want 0xA5", addr, got)
		}
	}
}

func TestLittleEndianWordAccess(t *testing.T) {
	mem := NewMachine().Memory()

	mem.Write16(0x8000, 0xBEEF)
	if got := mem.Read8(0x8000); got != 0xEF {
		t.Errorf("low byte = 0x%02X, want 0xEF", got)
	}
	if got := mem.Read8(0x8001); got != 0xBE {
		t.Errorf("high byte = 0x%02X, want 0xBE", got)
	}
	if got := mem.Read16(0x8000); got != 0xBEEF {
		t.Errorf("Read16 = 0x%04X, want 0xBEEF", got)
	}
}

func TestWordStraddlingOverlay(t *testing.T) {
	mem := NewMachine().Memory()

	// A word at 0xFFEF straddles into the MMIO band: the low byte lands in
	// RAM, the high byte targets the read-only system timer and is dropped.
	mem.Write16(0xFFEF, 0x1234)
	if got := mem.Read8(0xFFEF); got != 0x34 {
		t.Errorf("RAM byte = 0x%02X, want 0x34", got)
	}
	if got := mem.Read8(SYS_TIMER_LOW); got != 0 {
		t.Errorf("timer overlay = 0x%02X, want 0 (write discarded)", got)
	}
}

func TestReadOnlyOverlayWritesDiscarded(t *testing.T) {
	mem := NewMachine().Memory()

	for _, addr := range []uint16{SYS_TIMER_LOW, SYS_TIMER_HIGH, KEY_CODE, KEY_STATE} {
		mem.Write8(addr, 0xFF)
		if got := mem.Read8(addr); got != 0 {
			t.Errorf("overlay 0x%04X = 0x%02X after write, want 0", addr, got)
		}
	}
}

func TestReservedBandReadsZero(t *testing.T) {
	mem := NewMachine().Memory()

	for addr := uint32(RESERVED_BASE); addr <= RESERVED_END; addr++ {
		mem.Write8(uint16(addr), 0x77)
		if got := mem.Read8(uint16(addr)); got != 0 {
			t.Errorf("reserved 0x%04X = 0x%02X, want 0", addr, got)
		}
	}
}

func TestCountdownOverlayWritable(t *testing.T) {
	mem := NewMachine().Memory()

	mem.Write8(COUNTDOWN_LOW, 0x64)
	mem.Write8(COUNTDOWN_HIGH, 0x01)
	if got := mem.Read16(COUNTDOWN_LOW); got != 0x0164 {
		t.Fatalf("countdown = 0x%04X, want 0x0164", got)
	}
}

func TestTimerTick(t *testing.T) {
	m := NewMachine()
	mem := m.Memory()

	// sys=0, cd=100; tick(50) -> sys=50, cd=50; tick(60) -> sys=110, cd=0.
	mem.Write16(COUNTDOWN_LOW, 100)
	m.TickTimers(50)
	if got := mem.Read16(SYS_TIMER_LOW); got != 50 {
		t.Errorf("system timer = %d, want 50", got)
	}
	if got := mem.Read16(COUNTDOWN_LOW); got != 50 {
		t.Errorf("countdown = %d, want 50", got)
	}
	m.TickTimers(60)
	if got := mem.Read16(SYS_TIMER_LOW); got != 110 {
		t.Errorf("system timer = %d, want 110", got)
	}
	if got := mem.Read16(COUNTDOWN_LOW); got != 0 {
		t.Errorf("countdown = %d, want 0 (saturated)", got)
	}
}

func TestSystemTimerWraps(t *testing.T) {
	m := NewMachine()

	m.TickTimers(0xFFFF)
	m.TickTimers(2)
	if got := m.Memory().Read16(SYS_TIMER_LOW); got != 1 {
		t.Fatalf("system timer = %d, want 1 after wrap", got)
	}
}

func TestKeyLatch(t *testing.T) {
	m := NewMachine()
	mem := m.Memory()

	m.SetKey(0x41, true)
	m.SetKey(0x00, false)
	if got := mem.Read8(KEY_CODE); got != 0x41 {
		t.Errorf("KEY_CODE = 0x%02X, want 0x41", got)
	}
	if got := mem.Read8(KEY_STATE); got != 0 {
		t.Errorf("KEY_STATE = %d, want 0", got)
	}
	m.SetKey(0x42, true)
	if got := mem.Read8(KEY_CODE); got != 0x42 {
		t.Errorf("KEY_CODE = 0x%02X, want 0x42", got)
	}
	if got := mem.Read8(KEY_STATE); got != 1 {
		t.Errorf("KEY_STATE = %d, want 1", got)
	}
}

func TestLoadProgramTruncates(t *testing.T) {
	mem := NewMachine().Memory()

	image := make([]byte, MAX_PROG_LEN+100)
	for i := range image {
		image[i] = 0xCC
	}
	mem.LoadProgram(image)
	if got := mem.Read8(PROG_LIMIT - 1); got != 0xCC {
		t.Errorf("last program byte = 0x%02X, want 0xCC", got)
	}
	if got := mem.Read8(PROG_LIMIT); got != 0 {
		t.Errorf("byte past program region = 0x%02X, want 0 (truncated)", got)
	}
}
