// Package cpu implements the MOS Technology 6502 microprocessor as a
// fetch/decode/execute interpreter over an external 64 kB address space.
package cpu

import (
	"fmt"
	"strconv"
	"strings"

	"gone/mask"
	"gone/mem"
)

// Well-known memory locations, per the external interface.
const (
	CodeSegmentStart uint16 = 0x8000
	codeSegmentEnd   uint16 = 0xfff0 // exclusive upper bound for a loaded image

	ResetVector uint16 = 0xfffc
	IRQVector   uint16 = 0xfffe

	KeyboardAddr uint16 = 0x00ff
	VideoStart   uint16 = 0x0200
	VideoEnd     uint16 = 0x05ff
)

// The Cpu has no memory of its own (aside from a number of small registers).
// Instead, the Cpu interfaces with a Bus that provides the address space.
type Cpu struct {
	Bus mem.Memory

	// Flags are the 8 bits that make up the status register (aka P
	// register). See StatusRegister.
	Flags StatusRegister

	Accumulator byte // The Accumulator represents a byte value for immediate use, similar to a local variable
	X           byte
	Y           byte

	// StackPointer is kept as the full page-1 address (0x0100-0x01ff),
	// not just the low byte, so push/pop never need to OR in the page.
	StackPointer uint16

	// The ProgramCounter is a 2-byte (word) memory address that increments
	// (almost) continuously. The byte located at this address should
	// provide the Cpu with an Opcode that specifies the next instruction
	// to execute.
	ProgramCounter uint16

	M           byte   // operand value resolved by decode, for non-Accumulator modes
	AbsAddress  uint16 // effective address resolved by decode
	PageCrossed bool   // set by decode when an indexed mode crosses a page
	Cycles      uint64 // running total of elapsed cycles; informational only

	mode   AddressingMode // addressing mode of the instruction currently executing
	halted bool
}

// New returns a Cpu wired to the given address space. Callers must still
// call Load and Reset before Run.
func New(bus mem.Memory) *Cpu {
	return &Cpu{Bus: bus}
}

// Read reads one byte from the given addr.
func (c *Cpu) Read(addr uint16) byte {
	return c.Bus.Read(addr)
}

// Write passes data to the Bus, which actually performs the write.
func (c *Cpu) Write(addr uint16, data byte) {
	c.Bus.Write(addr, data)
}

// Load places program at CodeSegmentStart and points the reset vector at it.
// The code segment runs from CodeSegmentStart to just below the IRQ/BRK
// vector, leaving room for the reset and IRQ vectors themselves.
func (c *Cpu) Load(program []byte) error {
	return c.LoadAt(program, CodeSegmentStart)
}

// LoadAt places program at addr and points the reset vector at it.
func (c *Cpu) LoadAt(program []byte, addr uint16) error {
	maxLen := int(codeSegmentEnd - CodeSegmentStart)
	if len(program) > maxLen {
		return fmt.Errorf("%w: %d bytes exceeds %d byte code segment", ErrProgramTooLarge, len(program), maxLen)
	}
	for i, b := range program {
		c.Write(addr+uint16(i), b)
	}
	c.Bus.WriteWord(ResetVector, addr)
	return nil
}

// LoadHex parses a whitespace-separated string of hex byte pairs (as
// produced by a disassembler or typed by hand in a debugger session) and
// writes it at addr, without touching the reset vector. It panics on a
// malformed token, since it exists for tests and interactive debugging, not
// for loading untrusted program images.
func (c *Cpu) LoadHex(program []byte, addr uint16) {
	for i, s := range strings.Fields(string(program)) {
		b, err := strconv.ParseInt(s, 16, 16)
		if err != nil {
			panic(err)
		}
		c.Write(addr+uint16(i), byte(b))
	}
}

// Reset restores the register file to its power-on state and loads
// ProgramCounter from the reset vector.
func (c *Cpu) Reset() {
	c.Accumulator = 0
	c.X = 0
	c.Y = 0
	c.StackPointer = 0x01ff
	c.Flags = StatusRegister{Unused: true}
	c.ProgramCounter = c.Bus.ReadWord(ResetVector)
	c.M = 0
	c.AbsAddress = 0
	c.PageCrossed = false
	c.Cycles = 0
	c.halted = false
}

// A returns the accumulator. X and Y need no equivalent wrapper: unlike
// Accumulator, they are already exported under the short name the interface
// wants (c.X, c.Y).
func (c *Cpu) A() byte { return c.Accumulator }

// PC returns the program counter.
func (c *Cpu) PC() uint16 { return c.ProgramCounter }

// SP returns the stack pointer, as a full page-1 address.
func (c *Cpu) SP() uint16 { return c.StackPointer }

// Status returns a copy of the current status register.
func (c *Cpu) Status() StatusRegister { return c.Flags }

// An AddressingMode tells the Cpu where to access a given byte of memory.
//
// Most instructions can index the full 64 kB range of memory, that is, 256
// pages of 256 bytes. The exception is ZeroPage, which is confined to the
// first page of 256 bytes.
type AddressingMode int

const (
	Implied     AddressingMode = iota // does not touch memory
	Accumulator                       // operand is the accumulator itself

	Immediate // the operand byte IS the value
	ZeroPage  // 0x0000-0x00ff
	ZeroPageX
	ZeroPageY
	IndirectX
	IndirectY
	Relative

	Absolute
	AbsoluteX
	AbsoluteY

	Indirect // JMP only
)

func (c *Cpu) fetch(b byte) (Opcode, error) {
	op, legal := Opcodes[b]
	if !legal {
		return Opcode{}, fmt.Errorf("%w: 0x%02x at 0x%04x", ErrIllegalOpcode, b, c.ProgramCounter-1)
	}
	return op, nil
}

// decode resolves the operand for addressing mode a. c.ProgramCounter is
// advanced past however many operand bytes the mode consumes (zero to two);
// the resolved value is left in c.M and the resolved address in c.AbsAddress.
func (c *Cpu) decode(a AddressingMode) {
	switch a {

	case Implied:
		return

	case Accumulator:
		c.M = c.Accumulator
		return

	case Immediate:
		c.AbsAddress = c.ProgramCounter
		c.ProgramCounter++

	case ZeroPage:
		c.AbsAddress = uint16(c.Read(c.ProgramCounter))
		c.ProgramCounter++

	case ZeroPageX:
		c.AbsAddress = uint16(c.Read(c.ProgramCounter) + c.X)
		c.ProgramCounter++

	case ZeroPageY:
		c.AbsAddress = uint16(c.Read(c.ProgramCounter) + c.Y)
		c.ProgramCounter++

	case Relative:
		// The branch target is resolved here, relative to the address
		// of the instruction following this one (ProgramCounter after
		// the operand byte is consumed).
		rel := c.Read(c.ProgramCounter)
		c.ProgramCounter++
		c.AbsAddress = c.ProgramCounter + uint16(rel)
		if rel&0x80 > 0 {
			c.AbsAddress -= 0x0100
		}

	case Absolute:
		lo := c.Read(c.ProgramCounter)
		c.ProgramCounter++
		hi := c.Read(c.ProgramCounter)
		c.ProgramCounter++
		c.AbsAddress = mask.Word(hi, lo)

	case AbsoluteX:
		lo := c.Read(c.ProgramCounter)
		c.ProgramCounter++
		hi := c.Read(c.ProgramCounter)
		c.ProgramCounter++
		base := mask.Word(hi, lo)
		c.AbsAddress = base + uint16(c.X)
		c.PageCrossed = c.AbsAddress&0xff00 != uint16(hi)<<8

	case AbsoluteY:
		lo := c.Read(c.ProgramCounter)
		c.ProgramCounter++
		hi := c.Read(c.ProgramCounter)
		c.ProgramCounter++
		base := mask.Word(hi, lo)
		c.AbsAddress = base + uint16(c.Y)
		c.PageCrossed = c.AbsAddress&0xff00 != uint16(hi)<<8

	case IndirectX:
		ptr := c.Read(c.ProgramCounter)
		c.ProgramCounter++
		lo := c.Read(uint16(ptr + c.X))
		hi := c.Read(uint16(ptr + c.X + 1))
		c.AbsAddress = mask.Word(hi, lo)

	case IndirectY:
		ptr := c.Read(c.ProgramCounter)
		c.ProgramCounter++
		lo := c.Read(uint16(ptr))
		hi := c.Read(uint16(ptr + 1))
		base := mask.Word(hi, lo)
		c.AbsAddress = base + uint16(c.Y)
		c.PageCrossed = c.AbsAddress&0xff00 != uint16(hi)<<8

	case Indirect:
		ptrLo := c.Read(c.ProgramCounter)
		c.ProgramCounter++
		ptrHi := c.Read(c.ProgramCounter)
		c.ProgramCounter++
		ptr := mask.Word(ptrHi, ptrLo)
		lo := c.Read(ptr)
		hi := c.Read(ptr + 1)
		c.AbsAddress = mask.Word(hi, lo)
	}

	if a != Relative {
		c.M = c.Read(c.AbsAddress)
	}
}

// tick runs a single fetch/decode/execute cycle and reports whether the Cpu
// has halted (a BRK with a zero IRQ vector).
func (c *Cpu) tick() (bool, error) {
	b := c.Read(c.ProgramCounter)
	op, err := c.fetch(b)
	if err != nil {
		return false, err
	}
	c.ProgramCounter++

	c.PageCrossed = false
	c.mode = op.AddressingMode
	c.decode(op.AddressingMode)
	if c.PageCrossed {
		c.Cycles++
	}

	if err := op.Instruction(c); err != nil {
		return false, err
	}
	c.Cycles += uint64(op.Cycles)

	return c.halted, nil
}

// Run executes instructions until a fatal error or a halting BRK.
func (c *Cpu) Run() error {
	return c.RunWithHook(nil)
}

// RunWithHook executes instructions until a fatal error or a halting BRK,
// invoking hook synchronously after every retired instruction. hook has
// exclusive access to the Cpu for the duration of the call; it is the only
// collaboration point the core exposes (e.g. a visualiser polling the video
// window, or a debugger recording a trace).
func (c *Cpu) RunWithHook(hook func(*Cpu)) error {
	for {
		halted, err := c.tick()
		if err != nil {
			return err
		}
		if hook != nil {
			hook(c)
		}
		if halted {
			return nil
		}
	}
}
