package main

import "testing"

func TestRGB332ChannelExpansion(t *testing.T) {
	cases := []struct {
		pixel   byte
		r, g, b byte
	}{
		{0x00, 0, 0, 0},
		{0xFF, 255, 255, 255},
		{0xE0, 255, 0, 0},   // red 7
		{0x1C, 0, 255, 0},   // green 7
		{0x03, 0, 0, 255},   // blue 3
		{0x44, 73, 36, 0},   // red 2, green 1: round(2*255/7)=73, round(255/7)=36
		{0x01, 0, 0, 85},    // blue 1: round(255/3)=85
		{0x02, 0, 0, 170},   // blue 2
	}
	for _, tc := range cases {
		got := rgb332Palette[tc.pixel]
		if got[0] != tc.r || got[1] != tc.g || got[2] != tc.b || got[3] != 0xFF {
			t.Errorf("pixel 0x%02X -> (%d,%d,%d,%d), want (%d,%d,%d,255)",
				tc.pixel, got[0], got[1], got[2], got[3], tc.r, tc.g, tc.b)
		}
	}
}

func TestRenderFrameLayout(t *testing.T) {
	m := NewMachine()
	mem := m.Memory()

	// Pixel at (x=2, y=1) lives at FB_START + y*128 + x.
	mem.Write8(FB_START+1*FB_WIDTH+2, 0xE0)

	chip := NewVideoChip()
	frame := chip.RenderFrame(m.Framebuffer())
	offset := (1*FB_WIDTH + 2) * 4
	if frame[offset] != 255 || frame[offset+1] != 0 || frame[offset+2] != 0 {
		t.Fatalf("pixel (2,1) = (%d,%d,%d), want pure red",
			frame[offset], frame[offset+1], frame[offset+2])
	}
	if frame[0] != 0 || frame[3] != 0xFF {
		t.Fatalf("background pixel wrong: (%d,alpha=%d)", frame[0], frame[3])
	}
}
