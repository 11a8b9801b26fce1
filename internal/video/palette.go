// Package video renders the 32x32 video window a running program writes
// into 0x0200-0x05FF, and injects keypresses back into the well-known
// keyboard slot at 0x00FF. Neither concern touches cpu's interpreter
// semantics; both observe and drive it from the outside through the
// post-instruction hook, the way a host application would.
package video

import "image/color"

// Width and Height are the video window's dimensions in pixels, one byte of
// address space per pixel.
const (
	Width  = 32
	Height = 32
)

// palette maps the low nibble of a video-memory byte to a display color.
// Ported from the reference implementation's color() table; indices 2-7 and
// 9-14 alias to the same six colors so either nibble range reads sensibly.
var palette = [16]color.RGBA{
	0:  {0, 0, 0, 255},       // black
	1:  {255, 255, 255, 255}, // white
	2:  {128, 128, 128, 255}, // grey
	3:  {255, 0, 0, 255},     // red
	4:  {0, 255, 0, 255},     // green
	5:  {0, 0, 255, 255},     // blue
	6:  {255, 0, 255, 255},   // magenta
	7:  {255, 255, 0, 255},   // yellow
	8:  {0, 255, 255, 255},   // cyan (default/fallthrough in the reference)
	9:  {128, 128, 128, 255}, // grey
	10: {255, 0, 0, 255},     // red
	11: {0, 255, 0, 255},     // green
	12: {0, 0, 255, 255},     // blue
	13: {255, 0, 255, 255},   // magenta
	14: {255, 255, 0, 255},   // yellow
	15: {0, 255, 255, 255},   // cyan
}

// Color looks up the display color for a raw video-memory byte using only its
// low nibble, which avoids a 256-entry table. A byte above 0x0f takes the
// color of its low nibble (0x10 is black, 0x13 red); this differs from the
// reference implementation, whose full-byte match sends every byte above 14
// to cyan.
func Color(b byte) color.RGBA {
	return palette[b&0x0f]
}
