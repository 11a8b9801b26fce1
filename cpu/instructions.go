package cpu

// One function per 6502 mnemonic. Operands arrive implicitly via c.M (the
// value decode resolved), c.mode (the addressing mode decode was given) or
// c.AbsAddress (the effective address, for instructions that write back to
// memory); never as explicit function arguments, so every Instruction has
// the single signature the opcode table expects. Every function returns an
// error only to thread a stack over/underflow out of the stack-touching
// instructions (PHA, PHP, PLA, PLP, JSR, RTS, BRK, RTI); everything else
// always returns nil.
//
// https://www.nesdev.org/obelisk-6502-guide/reference.html

// operand returns the value an instruction should act on: the accumulator
// itself in Accumulator mode, or the memory value decode already fetched
// into c.M otherwise.
func (c *Cpu) operand() byte {
	if c.mode == Accumulator {
		return c.Accumulator
	}
	return c.M
}

// store writes v back to wherever operand read it from.
func (c *Cpu) store(v byte) {
	if c.mode == Accumulator {
		c.Accumulator = v
		return
	}
	c.Write(c.AbsAddress, v)
}

// ADC - Add with Carry
func (c *Cpu) ADC() error {
	c.adc(c.operand())
	return nil
}

// adc implements binary and decimal-mode addition. Z is always derived from
// the binary sum. In decimal mode N and V come from the intermediate sum after
// only the low nibble has been decimal-adjusted, and A and C from the fully
// adjusted result. Ported from the reference 6502 core's nibble-adjustment
// algorithm.
func (c *Cpu) adc(value byte) {
	carry := byte(0)
	if c.Flags.Carry {
		carry = 1
	}

	c.Flags.Overflow = (c.Accumulator^value)&0x80 == 0

	result := uint16(c.Accumulator) + uint16(value) + uint16(carry)
	c.Flags.updateZero(byte(result))

	if c.Flags.Decimal {
		low := uint16(c.Accumulator&0x0f) + uint16(value&0x0f) + uint16(carry)
		if low >= 0x0a {
			low = 0x10 | ((low + 0x06) & 0x0f)
		}
		result = low + uint16(c.Accumulator&0xf0) + uint16(value&0xf0)
		c.Flags.updateNegative(byte(result))
		if result >= 0xa0 {
			c.Flags.Carry = true
			if result >= 0x180 {
				c.Flags.Overflow = false
			}
			result += 0x60
		} else {
			c.Flags.Carry = false
			if result < 0x80 {
				c.Flags.Overflow = false
			}
		}
	} else {
		if result >= 0x100 {
			c.Flags.Carry = true
			if result >= 0x180 {
				c.Flags.Overflow = false
			}
		} else {
			c.Flags.Carry = false
			if result < 0x80 {
				c.Flags.Overflow = false
			}
		}
		c.Flags.updateNegative(byte(result))
	}

	c.Accumulator = byte(result)
}

// SBC - Subtract with Carry
func (c *Cpu) SBC() error {
	c.sbc(c.operand())
	return nil
}

// sbc mirrors adc's structure: binary and decimal subtraction, N/V/Z derived
// from the binary difference.
func (c *Cpu) sbc(value byte) {
	carry := int32(0)
	if c.Flags.Carry {
		carry = 1
	}

	c.Flags.Overflow = (c.Accumulator^value)&0x80 != 0
	binary := byte(0xff + int32(c.Accumulator) - int32(value) + carry)

	var result int32
	if c.Flags.Decimal {
		low := int32(0x0f) + int32(c.Accumulator&0x0f) - int32(value&0x0f) + carry
		if low < 0x10 {
			low -= 0x06
		} else {
			result = 0x10
			low -= 0x10
		}
		result += int32(0xf0) + int32(c.Accumulator&0xf0) - int32(value&0xf0)
		if result < 0x100 {
			c.Flags.Carry = false
			if result < 0x80 {
				c.Flags.Overflow = false
			}
			result -= 0x60
		} else {
			c.Flags.Carry = true
			if result >= 0x180 {
				c.Flags.Overflow = false
			}
		}
		result += low
	} else {
		result = 0xff + int32(c.Accumulator) - int32(value) + carry
		if result < 0x100 {
			c.Flags.Carry = false
			if result < 0x80 {
				c.Flags.Overflow = false
			}
		} else {
			c.Flags.Carry = true
			if result >= 0x180 {
				c.Flags.Overflow = false
			}
		}
	}

	c.Accumulator = byte(result)
	c.Flags.updateZero(binary)
	c.Flags.updateNegative(binary)
}

// AND - Logical AND
func (c *Cpu) AND() error {
	c.Accumulator &= c.operand()
	c.Flags.updateZero(c.Accumulator)
	c.Flags.updateNegative(c.Accumulator)
	return nil
}

// ASL - Arithmetic Shift Left
func (c *Cpu) ASL() error {
	v := c.operand()
	c.Flags.Carry = v&0x80 > 0
	v <<= 1
	c.store(v)
	c.Flags.updateZero(v)
	c.Flags.updateNegative(v)
	return nil
}

// LSR - Logical Shift Right
func (c *Cpu) LSR() error {
	v := c.operand()
	c.Flags.Carry = v&0x01 > 0
	v >>= 1
	c.store(v)
	c.Flags.updateZero(v)
	c.Flags.updateNegative(v)
	return nil
}

// ROL - Rotate Left
func (c *Cpu) ROL() error {
	v := c.operand()
	carryIn := c.Flags.Carry
	c.Flags.Carry = v&0x80 > 0
	v <<= 1
	if carryIn {
		v |= 0x01
	}
	c.store(v)
	c.Flags.updateZero(v)
	c.Flags.updateNegative(v)
	return nil
}

// ROR - Rotate Right
func (c *Cpu) ROR() error {
	v := c.operand()
	carryIn := c.Flags.Carry
	c.Flags.Carry = v&0x01 > 0
	v >>= 1
	if carryIn {
		v |= 0x80
	}
	c.store(v)
	c.Flags.updateZero(v)
	c.Flags.updateNegative(v)
	return nil
}

// BIT - Bit Test
func (c *Cpu) BIT() error {
	v := c.operand()
	c.Flags.Zero = v&c.Accumulator == 0
	c.Flags.Negative = v&0x80 > 0
	c.Flags.Overflow = v&0x40 > 0
	return nil
}

func (c *Cpu) compare(register, value byte) {
	c.Flags.Carry = register >= value
	diff := register - value
	c.Flags.updateZero(diff)
	c.Flags.updateNegative(diff)
}

// CMP - Compare
func (c *Cpu) CMP() error {
	c.compare(c.Accumulator, c.operand())
	return nil
}

// CPX - Compare X Register
func (c *Cpu) CPX() error {
	c.compare(c.X, c.operand())
	return nil
}

// CPY - Compare Y Register
func (c *Cpu) CPY() error {
	c.compare(c.Y, c.operand())
	return nil
}

// DEC - Decrement Memory
func (c *Cpu) DEC() error {
	v := c.operand() - 1
	c.store(v)
	c.Flags.updateZero(v)
	c.Flags.updateNegative(v)
	return nil
}

// DEX - Decrement X Register
func (c *Cpu) DEX() error {
	c.X--
	c.Flags.updateZero(c.X)
	c.Flags.updateNegative(c.X)
	return nil
}

// DEY - Decrement Y Register
func (c *Cpu) DEY() error {
	c.Y--
	c.Flags.updateZero(c.Y)
	c.Flags.updateNegative(c.Y)
	return nil
}

// INC - Increment Memory
func (c *Cpu) INC() error {
	v := c.operand() + 1
	c.store(v)
	c.Flags.updateZero(v)
	c.Flags.updateNegative(v)
	return nil
}

// INX - Increment X Register
func (c *Cpu) INX() error {
	c.X++
	c.Flags.updateZero(c.X)
	c.Flags.updateNegative(c.X)
	return nil
}

// INY - Increment Y Register
func (c *Cpu) INY() error {
	c.Y++
	c.Flags.updateZero(c.Y)
	c.Flags.updateNegative(c.Y)
	return nil
}

// EOR - Exclusive OR
func (c *Cpu) EOR() error {
	c.Accumulator ^= c.operand()
	c.Flags.updateZero(c.Accumulator)
	c.Flags.updateNegative(c.Accumulator)
	return nil
}

// ORA - Logical Inclusive OR
func (c *Cpu) ORA() error {
	c.Accumulator |= c.operand()
	c.Flags.updateZero(c.Accumulator)
	c.Flags.updateNegative(c.Accumulator)
	return nil
}

// LDA - Load Accumulator
func (c *Cpu) LDA() error {
	c.Accumulator = c.operand()
	c.Flags.updateZero(c.Accumulator)
	c.Flags.updateNegative(c.Accumulator)
	return nil
}

// LDX - Load X Register
func (c *Cpu) LDX() error {
	c.X = c.operand()
	c.Flags.updateZero(c.X)
	c.Flags.updateNegative(c.X)
	return nil
}

// LDY - Load Y Register
func (c *Cpu) LDY() error {
	c.Y = c.operand()
	c.Flags.updateZero(c.Y)
	c.Flags.updateNegative(c.Y)
	return nil
}

// STA - Store Accumulator
func (c *Cpu) STA() error {
	c.Write(c.AbsAddress, c.Accumulator)
	return nil
}

// STX - Store X Register
func (c *Cpu) STX() error {
	c.Write(c.AbsAddress, c.X)
	return nil
}

// STY - Store Y Register
func (c *Cpu) STY() error {
	c.Write(c.AbsAddress, c.Y)
	return nil
}

// TAX - Transfer Accumulator to X
func (c *Cpu) TAX() error {
	c.X = c.Accumulator
	c.Flags.updateZero(c.X)
	c.Flags.updateNegative(c.X)
	return nil
}

// TAY - Transfer Accumulator to Y
func (c *Cpu) TAY() error {
	c.Y = c.Accumulator
	c.Flags.updateZero(c.Y)
	c.Flags.updateNegative(c.Y)
	return nil
}

// TXA - Transfer X to Accumulator
func (c *Cpu) TXA() error {
	c.Accumulator = c.X
	c.Flags.updateZero(c.Accumulator)
	c.Flags.updateNegative(c.Accumulator)
	return nil
}

// TYA - Transfer Y to Accumulator
func (c *Cpu) TYA() error {
	c.Accumulator = c.Y
	c.Flags.updateZero(c.Accumulator)
	c.Flags.updateNegative(c.Accumulator)
	return nil
}

// TSX - Transfer Stack Pointer to X
func (c *Cpu) TSX() error {
	c.X = byte(c.StackPointer)
	c.Flags.updateZero(c.X)
	c.Flags.updateNegative(c.X)
	return nil
}

// TXS - Transfer X to Stack Pointer
func (c *Cpu) TXS() error {
	c.StackPointer = stackBottom | uint16(c.X)
	return nil
}

// PHA - Push Accumulator
func (c *Cpu) PHA() error {
	return c.pushByte(c.Accumulator)
}

// PLA - Pull Accumulator
func (c *Cpu) PLA() error {
	v, err := c.popByte()
	if err != nil {
		return err
	}
	c.Accumulator = v
	c.Flags.updateZero(c.Accumulator)
	c.Flags.updateNegative(c.Accumulator)
	return nil
}

// PHP - Push Processor Status. B and Unused are forced to 1 in the pushed
// byte, but left untouched in the live register.
func (c *Cpu) PHP() error {
	p := c.Flags
	p.B = true
	p.Unused = true
	return c.pushByte(p.Pack())
}

// PLP - Pull Processor Status. B is forced to 0 and Unused to 1 in the
// restored register, regardless of what was pushed.
func (c *Cpu) PLP() error {
	v, err := c.popByte()
	if err != nil {
		return err
	}
	c.Flags = NewStatusRegister(v)
	c.Flags.B = false
	c.Flags.Unused = true
	return nil
}

// CLC - Clear Carry Flag
func (c *Cpu) CLC() error { c.Flags.Carry = false; return nil }

// SEC - Set Carry Flag
func (c *Cpu) SEC() error { c.Flags.Carry = true; return nil }

// CLD - Clear Decimal Mode
func (c *Cpu) CLD() error { c.Flags.Decimal = false; return nil }

// SED - Set Decimal Flag
func (c *Cpu) SED() error { c.Flags.Decimal = true; return nil }

// CLI - Clear Interrupt Disable
func (c *Cpu) CLI() error { c.Flags.Interrupt = false; return nil }

// SEI - Set Interrupt Disable
func (c *Cpu) SEI() error { c.Flags.Interrupt = true; return nil }

// CLV - Clear Overflow Flag
func (c *Cpu) CLV() error { c.Flags.Overflow = false; return nil }

// NOP - No Operation
func (c *Cpu) NOP() error { return nil }

// branch takes the Relative-mode target already resolved into c.AbsAddress
// when cond holds; otherwise ProgramCounter is left where decode put it,
// right past the operand byte.
func (c *Cpu) branch(cond bool) error {
	if cond {
		c.ProgramCounter = c.AbsAddress
	}
	return nil
}

// BCC - Branch if Carry Clear
func (c *Cpu) BCC() error { return c.branch(!c.Flags.Carry) }

// BCS - Branch if Carry Set
func (c *Cpu) BCS() error { return c.branch(c.Flags.Carry) }

// BEQ - Branch if Equal
func (c *Cpu) BEQ() error { return c.branch(c.Flags.Zero) }

// BNE - Branch if Not Equal
func (c *Cpu) BNE() error { return c.branch(!c.Flags.Zero) }

// BMI - Branch if Minus
func (c *Cpu) BMI() error { return c.branch(c.Flags.Negative) }

// BPL - Branch if Positive
func (c *Cpu) BPL() error { return c.branch(!c.Flags.Negative) }

// BVC - Branch if Overflow Clear
func (c *Cpu) BVC() error { return c.branch(!c.Flags.Overflow) }

// BVS - Branch if Overflow Set
func (c *Cpu) BVS() error { return c.branch(c.Flags.Overflow) }

// JMP - Jump
func (c *Cpu) JMP() error {
	c.ProgramCounter = c.AbsAddress
	return nil
}

// JSR - Jump to Subroutine. Pushes the address of the last byte of the JSR
// instruction itself; RTS adds the 1 back.
func (c *Cpu) JSR() error {
	target := c.AbsAddress
	returnAddr := c.ProgramCounter - 1
	if err := c.pushWord(returnAddr); err != nil {
		return err
	}
	c.ProgramCounter = target
	return nil
}

// RTS - Return from Subroutine
func (c *Cpu) RTS() error {
	addr, err := c.popWord()
	if err != nil {
		return err
	}
	c.ProgramCounter = addr + 1
	return nil
}

// BRK - Force Interrupt. Per this interpreter's halt convenience, a zero IRQ
// vector stops the run loop instead of entering a handler. BRK only fires
// while interrupts are enabled; with Interrupt set it behaves as a NOP.
func (c *Cpu) BRK() error {
	if c.Flags.Interrupt {
		return nil
	}

	vector := c.Bus.ReadWord(IRQVector)
	if vector == 0 {
		c.halted = true
		return nil
	}

	if err := c.pushWord(c.ProgramCounter); err != nil {
		return err
	}
	p := c.Flags
	p.B = true
	p.Unused = true
	if err := c.pushByte(p.Pack()); err != nil {
		return err
	}
	c.Flags.Interrupt = true
	c.ProgramCounter = vector
	return nil
}

// RTI - Return from Interrupt
func (c *Cpu) RTI() error {
	p, err := c.popByte()
	if err != nil {
		return err
	}
	c.Flags = NewStatusRegister(p)
	c.Flags.B = false
	c.Flags.Unused = true

	addr, err := c.popWord()
	if err != nil {
		return err
	}
	c.ProgramCounter = addr
	return nil
}
