package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gone/mem"
)

func TestLoadHex(t *testing.T) {
	program := "A2 0A 8E 00 00 A2 03 8E 01 00 AC 00 00 A9 00 18 6D 01 00 88 D0 FA 8D 02 00 EA EA EA" // 28 bytes

	c := New(mem.NewBus())
	c.LoadHex([]byte(program), 0x8000)
	assert.Equal(t, uint8(0xa2), c.Read(0x8000))
	assert.Equal(t, uint8(0x0a), c.Read(0x8001))
	assert.Equal(t, uint8(0x8e), c.Read(0x8002))
	assert.Equal(t, uint8(0xea), c.Read(0x801b))
	assert.Equal(t, uint8(0), c.Read(0x801c))

	assert.Equal(t, "LDX", Opcodes[c.Read(0x8000)].Name)
	assert.Equal(t, "ASL", Opcodes[c.Read(0x8001)].Name)
	assert.Equal(t, "STX", Opcodes[c.Read(0x8002)].Name)
	assert.Equal(t, "NOP", Opcodes[c.Read(0x801b)].Name)
	assert.Equal(t, "BRK", Opcodes[c.Read(0x801c)].Name)
}

// TestThirty runs a hand-assembled program that multiplies 10 by 3 via
// repeated addition, tracing register state after every retired instruction.
// InstName is the instruction the PC points at next; M is whatever decode
// last read, taken before the instruction runs (branches leave it alone).
// The end state is A=0x1e (30), X=3, Y=0, with the three operands left in
// zero page ([0a 03 1e]). The trailing NOPs and BRK then halt the loop,
// since the IRQ vector is left at its zeroed reset-time value.
func TestThirty(t *testing.T) {
	program := "A2 0A 8E 00 00 A2 03 8E 01 00 AC 00 00 A9 00 18 6D 01 00 88 D0 FA 8D 02 00 EA EA EA"

	c := New(mem.NewBus())
	offset := uint16(0x8000)
	c.LoadHex([]byte(program), offset)
	c.Bus.WriteWord(ResetVector, offset) // LoadHex leaves the reset vector alone
	c.Reset()

	assert.Equal(t, "LDX", Opcodes[c.Read(c.ProgramCounter)].Name)

	for _, want := range []struct {
		M        uint8
		A        uint8
		X        uint8
		Y        uint8
		InstName string
	}{
		{M: 0xa, A: 0, X: 0xa, Y: 0, InstName: "STX"},
		{M: 0, A: 0, X: 0xa, Y: 0, InstName: "LDX"},
		{M: 3, A: 0, X: 3, Y: 0, InstName: "STX"},
		{M: 0, A: 0, X: 3, Y: 0, InstName: "LDY"},
		{M: 0xa, A: 0, X: 3, Y: 0xa, InstName: "LDA"},
		{M: 0, A: 0, X: 3, Y: 0xa, InstName: "CLC"},

		{M: 0, A: 0, X: 3, Y: 0xa, InstName: "ADC"},
		{M: 3, A: 3, X: 3, Y: 0xa, InstName: "DEY"},
		{M: 3, A: 3, X: 3, Y: 9, InstName: "BNE"},

		{M: 0x03, A: 3, X: 3, Y: 9, InstName: "ADC"},
		{M: 0x03, A: 6, X: 3, Y: 9, InstName: "DEY"},
		{M: 0x03, A: 6, X: 3, Y: 8, InstName: "BNE"},

		{M: 0x03, A: 6, X: 3, Y: 8, InstName: "ADC"},
		{M: 0x03, A: 9, X: 3, Y: 8, InstName: "DEY"},
		{M: 0x03, A: 9, X: 3, Y: 7, InstName: "BNE"},

		{M: 0x03, A: 9, X: 3, Y: 7, InstName: "ADC"},
		{M: 0x03, A: 12, X: 3, Y: 7, InstName: "DEY"},
		{M: 0x03, A: 12, X: 3, Y: 6, InstName: "BNE"},

		{M: 0x03, A: 12, X: 3, Y: 6, InstName: "ADC"},
		{M: 0x03, A: 15, X: 3, Y: 6, InstName: "DEY"},
		{M: 0x03, A: 15, X: 3, Y: 5, InstName: "BNE"},

		{M: 0x03, A: 15, X: 3, Y: 5, InstName: "ADC"},
		{M: 0x03, A: 18, X: 3, Y: 5, InstName: "DEY"},
		{M: 0x03, A: 18, X: 3, Y: 4, InstName: "BNE"},

		{M: 0x03, A: 18, X: 3, Y: 4, InstName: "ADC"},
		{M: 0x03, A: 21, X: 3, Y: 4, InstName: "DEY"},
		{M: 0x03, A: 21, X: 3, Y: 3, InstName: "BNE"},

		{M: 0x03, A: 21, X: 3, Y: 3, InstName: "ADC"},
		{M: 0x03, A: 24, X: 3, Y: 3, InstName: "DEY"},
		{M: 0x03, A: 24, X: 3, Y: 2, InstName: "BNE"},

		{M: 0x03, A: 24, X: 3, Y: 2, InstName: "ADC"},
		{M: 0x03, A: 27, X: 3, Y: 2, InstName: "DEY"},
		{M: 0x03, A: 27, X: 3, Y: 1, InstName: "BNE"},

		{M: 0x03, A: 27, X: 3, Y: 1, InstName: "ADC"},
		{M: 0x03, A: 30, X: 3, Y: 1, InstName: "DEY"},
		{M: 0x03, A: 30, X: 3, Y: 0, InstName: "BNE"},

		{M: 0x03, A: 30, X: 3, Y: 0, InstName: "STA"},
		{M: 0, A: 30, X: 3, Y: 0, InstName: "NOP"},
		{M: 0, A: 30, X: 3, Y: 0, InstName: "NOP"},
		{M: 0, A: 30, X: 3, Y: 0, InstName: "NOP"},
		{M: 0, A: 30, X: 3, Y: 0, InstName: "BRK"},
		{M: 0, A: 30, X: 3, Y: 0, InstName: "BRK"},
	} {
		retired := Opcodes[c.Read(c.ProgramCounter)].Name
		halted, err := c.tick()
		assert.NoError(t, err)
		currInst := Opcodes[c.Read(c.ProgramCounter)].Name
		assert.Equalf(t, want.M, c.M, "incorrect M at %s", currInst)
		assert.Equalf(t, want.A, c.Accumulator, "incorrect A at %s", currInst)
		assert.Equalf(t, want.X, c.X, "incorrect X at %s", currInst)
		assert.Equalf(t, want.Y, c.Y, "incorrect Y at %s", currInst)
		if retired == "BRK" {
			assert.True(t, halted)
		} else {
			assert.False(t, halted)
		}
	}

	assert.Equal(t, uint8(10), c.Read(0))
	assert.Equal(t, uint8(3), c.Read(1))
	assert.Equal(t, uint8(30), c.Read(2))
}

func TestLoadRejectsOversizedProgram(t *testing.T) {
	c := New(mem.NewBus())
	err := c.Load(make([]byte, 0x8000))
	assert.ErrorIs(t, err, ErrProgramTooLarge)
}

func TestLoadSetsResetVector(t *testing.T) {
	c := New(mem.NewBus())
	assert.NoError(t, c.Load([]byte{0xea, 0xea}))
	c.Reset()
	assert.Equal(t, CodeSegmentStart, c.ProgramCounter)
}

func TestIllegalOpcodeIsFatal(t *testing.T) {
	c := New(mem.NewBus())
	assert.NoError(t, c.Load([]byte{0x02})) // not a documented opcode
	c.Reset()
	err := c.Run()
	assert.ErrorIs(t, err, ErrIllegalOpcode)
}

func TestBrkHaltsOnZeroVector(t *testing.T) {
	c := New(mem.NewBus())
	assert.NoError(t, c.Load([]byte{0x00})) // BRK
	c.Reset()
	assert.NoError(t, c.Run())
}
