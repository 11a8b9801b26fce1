package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gone/mem"
)

// Binary and decimal-mode ADC/SBC vectors, ported from the reference 6502
// core's test suite. Z always comes from the binary result, and so do N and V
// for SBC; decimal ADC takes N and V from the sum after only the low nibble
// has been adjusted. A and C are BCD-adjusted.

func run(t *testing.T, program []byte) *Cpu {
	t.Helper()
	c := New(mem.NewBus())
	assert.NoError(t, c.Load(program))
	c.Reset()
	assert.NoError(t, c.Run())
	return c
}

func TestSbcBasic(t *testing.T) {
	c := run(t, []byte{0xa9, 0x00, 0xe9, 0x01, 0x00})
	assert.Equal(t, uint8(0xfe), c.Accumulator)
	assert.True(t, c.Flags.Negative)
	assert.False(t, c.Flags.Zero)
	assert.False(t, c.Flags.Carry)
	assert.False(t, c.Flags.Overflow)
}

func TestSbcDecimalMode(t *testing.T) {
	for _, tc := range []struct {
		name              string
		program           []byte
		a                 uint8
		n, v, z, carryOut bool
	}{
		{"1", []byte{0xf8, 0xa9, 0x00, 0xe9, 0x00, 0x00}, 0x99, true, false, false, false},
		{"2", []byte{0xf8, 0x38, 0xa9, 0x00, 0xe9, 0x00, 0x00}, 0x00, false, false, true, true},
		{"3", []byte{0xf8, 0x38, 0xa9, 0x00, 0xe9, 0x01, 0x00}, 0x99, true, false, false, false},
		{"4", []byte{0xf8, 0x38, 0xa9, 0x0a, 0xe9, 0x00, 0x00}, 0x0a, false, false, false, true},
		{"5", []byte{0xf8, 0xa9, 0x0b, 0xe9, 0x00, 0x00}, 0x0a, false, false, false, true},
		{"6", []byte{0xf8, 0x38, 0xa9, 0x9a, 0xe9, 0x00, 0x00}, 0x9a, true, false, false, true},
		{"7", []byte{0xf8, 0xa9, 0x9b, 0xe9, 0x00, 0x00}, 0x9a, true, false, false, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := run(t, tc.program)
			assert.Equal(t, tc.a, c.Accumulator)
			assert.Equal(t, tc.n, c.Flags.Negative)
			assert.Equal(t, tc.v, c.Flags.Overflow)
			assert.Equal(t, tc.z, c.Flags.Zero)
			assert.Equal(t, tc.carryOut, c.Flags.Carry)
		})
	}
}

func TestAdcBasic(t *testing.T) {
	c := run(t, []byte{0xa9, 0x55, 0x69, 0x55, 0x00})
	assert.Equal(t, uint8(0xaa), c.Accumulator)
	assert.True(t, c.Flags.Negative)
	assert.True(t, c.Flags.Overflow)
	assert.False(t, c.Flags.Zero)
	assert.False(t, c.Flags.Carry)
}

func TestAdcDecimalMode(t *testing.T) {
	for _, tc := range []struct {
		name              string
		program           []byte
		a                 uint8
		n, v, z, carryOut bool
	}{
		{"1", []byte{0xf8, 0xa9, 0x00, 0x69, 0x00, 0x00}, 0x00, false, false, true, false},
		{"2", []byte{0xf8, 0x38, 0xa9, 0x79, 0x69, 0x00, 0x00}, 0x80, true, true, false, false},
		{"3", []byte{0xf8, 0xa9, 0x24, 0x69, 0x56, 0x00}, 0x80, true, true, false, false},
		{"4", []byte{0xf8, 0xa9, 0x93, 0x69, 0x82, 0x00}, 0x75, false, true, false, true},
		{"5", []byte{0xf8, 0xa9, 0x89, 0x69, 0x76, 0x00}, 0x65, false, false, false, true},
		{"6", []byte{0xf8, 0x38, 0xa9, 0x89, 0x69, 0x76, 0x00}, 0x66, false, false, true, true},
		{"7", []byte{0xf8, 0xa9, 0x80, 0x69, 0xf0, 0x00}, 0xd0, false, true, false, true},
		{"8", []byte{0xf8, 0xa9, 0x80, 0x69, 0xfa, 0x00}, 0xe0, true, false, false, true},
		{"9", []byte{0xf8, 0xa9, 0x2f, 0x69, 0x4f, 0x00}, 0x74, false, false, false, false},
		{"10", []byte{0xf8, 0x38, 0xa9, 0x6f, 0x69, 0x00, 0x00}, 0x76, false, false, false, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := run(t, tc.program)
			assert.Equal(t, tc.a, c.Accumulator)
			assert.Equal(t, tc.n, c.Flags.Negative)
			assert.Equal(t, tc.v, c.Flags.Overflow)
			assert.Equal(t, tc.z, c.Flags.Zero)
			assert.Equal(t, tc.carryOut, c.Flags.Carry)
		})
	}
}

// FuzzAdcSbcInverse checks that SBC undoes ADC for any pair of operands and
// initial carry, mod 256, in binary mode, when SBC runs with the opposite
// carry so its borrow cancels the carry ADC added in.
func FuzzAdcSbcInverse(f *testing.F) {
	f.Add(uint8(0x10), uint8(0x20), true)
	f.Add(uint8(0xff), uint8(0x01), false)
	f.Add(uint8(0x00), uint8(0x00), true)

	f.Fuzz(func(t *testing.T, a, b byte, carry bool) {
		c := New(mem.NewBus())
		c.Accumulator = a
		c.Flags.Carry = carry
		c.adc(b)
		sum := c.Accumulator
		c.Flags.Carry = !carry
		c.sbc(b)
		assert.Equal(t, a, c.Accumulator, "sbc(adc(a, b), b) should recover a (sum was %#x)", sum)
	})
}

// FuzzCompareCarry checks the CMP/CPX/CPY carry-out invariant (Open Question
// b): carry is set exactly when register >= operand.
func FuzzCompareCarry(f *testing.F) {
	f.Add(uint8(5), uint8(5))
	f.Add(uint8(0), uint8(1))
	f.Add(uint8(0xff), uint8(0x00))

	f.Fuzz(func(t *testing.T, register, value byte) {
		c := New(mem.NewBus())
		c.compare(register, value)
		assert.Equal(t, register >= value, c.Flags.Carry)
		assert.Equal(t, register == value, c.Flags.Zero)
	})
}
