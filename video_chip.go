// video_chip.go - RGB332 framebuffer rendering for HackVM

/*
(c) 2024 - 2026 Kade Angell
https://github.com/kadeangell/hackvm
License: GPLv3 or later
*/

/*
video_chip.go - Video chip for the HackVM fantasy console

The display is a 128x128 plane of RGB332 bytes living at 0x4000 in guest
memory (addr = 0x4000 + y*128 + x). The chip's only job is to expand that
plane into the RGBA frame the backends consume; there are no sprites,
palettes or raster tricks.

RGB332 packs red in bits 7..5, green in bits 4..2, blue in bits 1..0.
Channel expansion rounds to the nearest 8-bit value (R = round(r3*255/7),
B = round(b2*255/3)); the full 256-entry palette is precomputed once.
*/

package main

const (
	FB_WIDTH  = 128 // Framebuffer width in pixels
	FB_HEIGHT = 128 // Framebuffer height in pixels
)

// rgb332Palette maps every RGB332 byte to its packed RGBA expansion.
var rgb332Palette [256][4]byte

func init() {
	for i := 0; i < 256; i++ {
		r3 := (i >> 5) & 0x07
		g3 := (i >> 2) & 0x07
		b2 := i & 0x03
		rgb332Palette[i] = [4]byte{
			byte((r3*255 + 3) / 7),
			byte((g3*255 + 3) / 7),
			byte((b2*255 + 1) / 3),
			0xFF,
		}
	}
}

// VideoChip converts the guest framebuffer into an RGBA frame. The frame
// buffer is owned by the chip and reused across calls.
type VideoChip struct {
	frame []byte
}

func NewVideoChip() *VideoChip {
	return &VideoChip{
		frame: make([]byte, FB_WIDTH*FB_HEIGHT*4),
	}
}

// RenderFrame expands the RGB332 framebuffer into the chip's RGBA frame and
// returns it. The returned slice stays valid until the next call.
func (v *VideoChip) RenderFrame(fb []byte) []byte {
	for i, p := range fb {
		rgba := &rgb332Palette[p]
		copy(v.frame[i*4:i*4+4], rgba[:])
	}
	return v.frame
}
