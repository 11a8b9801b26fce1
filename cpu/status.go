package cpu

import "gone/mask"

// A StatusRegister holds the 8 flag bits of the P register.
//
// 7654 3210
// NVUB DIZC
//
// https://www.nesdev.org/wiki/Status_flags#Flags
type StatusRegister struct {
	Negative  bool // bit 7
	Overflow  bool // bit 6
	Unused    bool // bit 5, always 1 when pushed
	B         bool // bit 4, set on PHP/BRK, cleared on PLP/RTI
	Decimal   bool // bit 3
	Interrupt bool // bit 2, interrupt disable
	Zero      bool // bit 1
	Carry     bool // bit 0
}

// NewStatusRegister unpacks a byte (as read off the stack) into a
// StatusRegister.
func NewStatusRegister(b byte) StatusRegister {
	return StatusRegister{
		Carry:     mask.IsSet(b, mask.I8),
		Zero:      mask.IsSet(b, mask.I7),
		Interrupt: mask.IsSet(b, mask.I6),
		Decimal:   mask.IsSet(b, mask.I5),
		B:         mask.IsSet(b, mask.I4),
		Unused:    mask.IsSet(b, mask.I3),
		Overflow:  mask.IsSet(b, mask.I2),
		Negative:  mask.IsSet(b, mask.I1),
	}
}

// Pack compacts the flags into a single byte, suitable for pushing onto the
// stack via PHP/BRK.
func (p StatusRegister) Pack() byte {
	var b byte
	for i, set := range []bool{
		p.Carry,
		p.Zero,
		p.Interrupt,
		p.Decimal,
		p.B,
		p.Unused,
		p.Overflow,
		p.Negative,
	} {
		if set {
			b |= 1 << i
		}
	}
	return b
}

// updateZero sets Zero if v is 0.
func (p *StatusRegister) updateZero(v byte) { p.Zero = v == 0 }

// updateNegative sets Negative to the sign bit of v.
func (p *StatusRegister) updateNegative(v byte) { p.Negative = v&0x80 != 0 }
