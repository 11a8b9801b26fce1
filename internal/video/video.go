package video

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"gone/cpu"
)

// charToShiftMod maps an unshifted ASCII code point to the character a real
// keyboard would produce with shift held, mirroring the reference
// implementation's char_to_shift_mod table. Letters are handled separately
// via XOR 0x20.
var charToShiftMod = map[rune]rune{
	'`': '~', '0': ')', '1': '!', '2': '@', '3': '#', '4': '$',
	'5': '%', '6': '^', '7': '&', '8': '*', '9': '(',
	'-': '_', '=': '+', '\'': '"', ';': ':', '/': '?',
	'.': '>', ',': '<', '[': '{', ']': '}', '\\': '|',
}

func shift(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r ^ 0x20
	}
	if shifted, ok := charToShiftMod[r]; ok {
		return shifted
	}
	return r
}

// Visualiser polls a running Cpu's video window and forwards keypresses into
// its keyboard slot. It implements ebiten.Game, so the host only has to
// call ebiten.RunGame(v) after wiring the Cpu's RunWithHook to v.Hook.
type Visualiser struct {
	Scale int

	frame [Width * Height]byte
}

// New returns a Visualiser with the given pixel scale factor.
func New(scale int) *Visualiser {
	return &Visualiser{Scale: scale}
}

// Hook is a cpu.RunWithHook callback: it samples the video window and
// injects the most recently pressed key on every retired instruction.
func (v *Visualiser) Hook(c *cpu.Cpu) {
	for i := range v.frame {
		v.frame[i] = c.Read(cpu.VideoStart + uint16(i))
	}
	v.handleInput(c)
}

func (v *Visualiser) handleInput(c *cpu.Cpu) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if !c.Flags.Interrupt {
			c.Bus.WriteWord(cpu.IRQVector, 0)
			c.Write(c.ProgramCounter, 0x00) // splice in a BRK
		}
		return
	}

	chars := ebiten.AppendInputChars(nil)
	if len(chars) == 0 {
		return
	}
	r := chars[len(chars)-1]
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		r = shift(r)
	}
	if r > 0x7f {
		return
	}
	c.Write(cpu.KeyboardAddr, byte(r))
}

// Layout reports the fixed logical screen size; ebiten scales it to the
// window.
func (v *Visualiser) Layout(outsideWidth, outsideHeight int) (int, int) {
	return Width, Height
}

// Update is required by ebiten.Game but does no work: the Cpu's own
// RunWithHook loop drives state changes, not ebiten's per-frame ticks.
func (v *Visualiser) Update() error {
	return nil
}

// Draw paints the sampled video window onto the logical screen, one pixel per
// address; ebiten then scales that screen up to the window.
func (v *Visualiser) Draw(screen *ebiten.Image) {
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	for i, b := range v.frame {
		img.Set(i%Width, i/Width, Color(b))
	}
	op := &ebiten.DrawImageOptions{}
	screen.DrawImage(ebiten.NewImageFromImage(img), op)
}

// WindowSize returns the pixel dimensions ebiten's window should open at.
func (v *Visualiser) WindowSize() (int, int) {
	return Width * v.Scale, Height * v.Scale
}

func (v *Visualiser) String() string {
	return fmt.Sprintf("video.Visualiser{scale=%d}", v.Scale)
}
