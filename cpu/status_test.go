package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusRegisterPackRoundTrip(t *testing.T) {
	for _, b := range []byte{0x00, 0xff, 0b1010_0101, 0b0101_1010} {
		p := NewStatusRegister(b)
		assert.Equal(t, b, p.Pack(), "round trip of %08b", b)
	}
}

func TestStatusRegisterBitLayout(t *testing.T) {
	p := NewStatusRegister(0b1000_0001)
	assert.True(t, p.Negative)
	assert.False(t, p.Overflow)
	assert.False(t, p.Unused)
	assert.False(t, p.B)
	assert.False(t, p.Decimal)
	assert.False(t, p.Interrupt)
	assert.False(t, p.Zero)
	assert.True(t, p.Carry)
}

func TestUpdateZero(t *testing.T) {
	var p StatusRegister
	p.updateZero(0)
	assert.True(t, p.Zero)
	p.updateZero(1)
	assert.False(t, p.Zero)
}

func TestUpdateNegative(t *testing.T) {
	var p StatusRegister
	p.updateNegative(0x80)
	assert.True(t, p.Negative)
	p.updateNegative(0x7f)
	assert.False(t, p.Negative)
}
