package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcodeTableSize(t *testing.T) {
	assert.Len(t, Opcodes, 151)
}

func TestOpcodeTableWellFormed(t *testing.T) {
	for value, op := range Opcodes {
		assert.NotNil(t, op.Instruction, "opcode 0x%02x (%s) has no Instruction", value, op.Name)
		assert.NotEmpty(t, op.Name, "opcode 0x%02x has no Name", value)
		assert.Greater(t, op.Cycles, byte(0), "opcode 0x%02x (%s) has zero cycles", value, op.Name)
	}
}

func TestOpcodeSpotChecks(t *testing.T) {
	assert.Equal(t, "BRK", Opcodes[0x00].Name)
	assert.Equal(t, Implied, Opcodes[0x00].AddressingMode)

	assert.Equal(t, "JSR", Opcodes[0x20].Name)
	assert.Equal(t, Absolute, Opcodes[0x20].AddressingMode)

	assert.Equal(t, "LDA", Opcodes[0xa9].Name)
	assert.Equal(t, Immediate, Opcodes[0xa9].AddressingMode)

	assert.Equal(t, "NOP", Opcodes[0xea].Name)

	assert.Equal(t, "ASL", Opcodes[0x0a].Name)
	assert.Equal(t, Accumulator, Opcodes[0x0a].AddressingMode)
}

func TestFetchRejectsIllegalOpcode(t *testing.T) {
	c := New(nil) // fetch never touches the Bus
	c.ProgramCounter = 0x8001
	_, err := c.fetch(0x02)
	assert.ErrorIs(t, err, ErrIllegalOpcode)
}
