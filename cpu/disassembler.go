package cpu

import (
	"bytes"
	"fmt"
)

// Disassemble walks [start, end] as a sequence of opcodes and operands,
// returning one formatted line per instruction keyed by its address. It does
// not require a live Cpu to be running; it reads straight off the Bus.
//
// Ported from the corpus's map[addr]string disassembly idiom (see
// n-ulricksen-nes's cpuDisassembler.go), generalized to this Cpu's
// AddressingMode enum.
func (c *Cpu) Disassemble(start, end uint16) map[uint16]string {
	var line bytes.Buffer
	disassembly := make(map[uint16]string)

	addr := uint32(start)
	for addr <= uint32(end) {
		lineAddr := uint16(addr)
		line.WriteString(fmt.Sprintf("$%04X: ", lineAddr))

		opcode := c.Read(uint16(addr))
		addr++
		op, legal := Opcodes[opcode]
		if !legal {
			line.WriteString("???")
			disassembly[lineAddr] = line.String()
			line.Reset()
			continue
		}
		line.WriteString(op.Name + " ")

		switch op.AddressingMode {
		case Implied:
			line.WriteString("{IMP}")
		case Accumulator:
			line.WriteString("A {ACC}")
		case Immediate:
			v := c.Read(uint16(addr))
			addr++
			line.WriteString(fmt.Sprintf("#$%02X {IMM}", v))
		case Relative:
			rel := c.Read(uint16(addr))
			addr++
			target := uint16(addr) + uint16(rel)
			if rel&0x80 > 0 {
				target -= 0x0100
			}
			line.WriteString(fmt.Sprintf("$%02X [$%04X] {REL}", rel, target))
		case ZeroPage:
			v := c.Read(uint16(addr))
			addr++
			line.WriteString(fmt.Sprintf("$%02X {ZP0}", v))
		case ZeroPageX:
			v := c.Read(uint16(addr))
			addr++
			line.WriteString(fmt.Sprintf("$%02X,X {ZPX}", v))
		case ZeroPageY:
			v := c.Read(uint16(addr))
			addr++
			line.WriteString(fmt.Sprintf("$%02X,Y {ZPY}", v))
		case Absolute:
			lo := c.Read(uint16(addr))
			addr++
			hi := c.Read(uint16(addr))
			addr++
			line.WriteString(fmt.Sprintf("$%04X {ABS}", uint16(hi)<<8|uint16(lo)))
		case AbsoluteX:
			lo := c.Read(uint16(addr))
			addr++
			hi := c.Read(uint16(addr))
			addr++
			line.WriteString(fmt.Sprintf("$%04X,X {ABX}", uint16(hi)<<8|uint16(lo)))
		case AbsoluteY:
			lo := c.Read(uint16(addr))
			addr++
			hi := c.Read(uint16(addr))
			addr++
			line.WriteString(fmt.Sprintf("$%04X,Y {ABY}", uint16(hi)<<8|uint16(lo)))
		case Indirect:
			lo := c.Read(uint16(addr))
			addr++
			hi := c.Read(uint16(addr))
			addr++
			line.WriteString(fmt.Sprintf("($%04X) {IND}", uint16(hi)<<8|uint16(lo)))
		case IndirectX:
			v := c.Read(uint16(addr))
			addr++
			line.WriteString(fmt.Sprintf("($%02X,X) {IZX}", v))
		case IndirectY:
			v := c.Read(uint16(addr))
			addr++
			line.WriteString(fmt.Sprintf("($%02X),Y {IZY}", v))
		}

		disassembly[lineAddr] = line.String()
		line.Reset()
	}

	return disassembly
}
