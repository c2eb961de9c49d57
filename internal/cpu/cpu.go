// Package cpu implements the Sharp LR35902 instruction set: the DMG's
// CPU core, its interrupt dispatch logic, and HALT/STOP semantics.
package cpu

import (
	"fmt"
	"strings"

	"github.com/valep27/dmgcore/internal/bitutil"
	"github.com/valep27/dmgcore/internal/bus"
	"github.com/valep27/dmgcore/internal/ioreg"
)

// Flag bits live in the high nibble of F; the low nibble is always
// masked to zero, so only bits 7-4 (Z, N, H, C) are ever meaningful.
const (
	flagZ uint8 = 0x80
	flagN uint8 = 0x40
	flagH uint8 = 0x20
	flagC uint8 = 0x10
)

// CPU holds the Sharp LR35902 register file and executes one
// instruction (or interrupt dispatch, or a HALT-idle cycle) per Step
// call. It never owns the bus; it only holds a reference to read and
// write through.
type CPU struct {
	busDev *bus.Bus

	a, b, c, d, e, h, l, f uint8
	sp, pc                 uint16

	ime           bool
	halted        bool
	haltBug       bool
	currentOpcode uint8
}

// New creates a CPU wired to bus. Registers start zeroed; callers that
// skip the boot ROM should set the post-boot register values themselves
// (see SetPostBootState).
func New(b *bus.Bus) *CPU {
	return &CPU{busDev: b}
}

// SetPostBootState loads the register values the real boot ROM leaves
// behind, for callers that skip booting and jump straight to 0x0100.
func (c *CPU) SetPostBootState() {
	c.a, c.f = 0x01, 0xB0
	c.b, c.c = 0x00, 0x13
	c.d, c.e = 0x00, 0xD8
	c.h, c.l = 0x01, 0x4D
	c.sp = 0xFFFE
	c.pc = 0x0100
}

// PC reports the program counter, mainly for tests and debugging.
func (c *CPU) PC() uint16 { return c.pc }

// Halted reports whether the CPU is currently idling in HALT.
func (c *CPU) Halted() bool { return c.halted }

// IME reports the interrupt master enable flip-flop.
func (c *CPU) IME() bool { return c.ime }

// Step executes one unit of CPU work and returns the machine cycles
// (1-6) it consumed. A unit of work is exactly one of: servicing a
// pending interrupt, idling through HALT, or decoding and executing one
// instruction.
func (c *CPU) Step() int {
	if c.halted {
		if c.interruptsPending() {
			c.halted = false
		} else {
			return 1
		}
	}

	if c.serviceInterrupt() {
		return 5
	}

	var opcode uint8
	if c.haltBug {
		opcode = c.busDev.Get(c.pc)
		c.haltBug = false
	} else {
		opcode = c.readImmediate()
	}
	c.currentOpcode = opcode

	dots := c.safeExecute(opcode)

	return dots / 4
}

// safeExecute runs execute and, if it panics (an unknown opcode or an
// out-of-range memory access), re-panics with a hex dump of CPU state
// and the bytes surrounding PC appended, per the fatal-decode error
// taxonomy: there is no silent fallback, but the failure should be
// diagnosable from the panic message alone.
func (c *CPU) safeExecute(opcode uint8) (dots int) {
	defer func() {
		if r := recover(); r != nil {
			panic(fmt.Sprintf("%v\n%s", r, c.dumpState()))
		}
	}()
	return c.execute(opcode)
}

// dumpState renders registers, flags and the bytes immediately
// surrounding PC, for the fatal-decode crash report.
func (c *CPU) dumpState() string {
	var surrounding [8]string
	base := int(c.pc) - 2
	for i := range surrounding {
		addr := base + i
		if addr < 0 || addr > 0xFFFF {
			surrounding[i] = "--"
			continue
		}
		surrounding[i] = fmt.Sprintf("%02X", c.busDev.Get(uint16(addr)))
	}

	return fmt.Sprintf(
		"cpu state: AF=%s BC=%s DE=%s HL=%s SP=%s PC=%s IME=%v HALT=%v opcode=%s\n"+
			"bytes around PC-2..PC+5: %s",
		bitutil.HexWord(c.getAF()), bitutil.HexWord(c.getBC()), bitutil.HexWord(c.getDE()),
		bitutil.HexWord(c.getHL()), bitutil.HexWord(c.sp), bitutil.HexWord(c.pc),
		c.ime, c.halted, bitutil.HexByte(c.currentOpcode),
		strings.Join(surrounding[:], " "),
	)
}

// halt enters HALT, except for the documented hardware quirk where
// HALT executes with IME clear and an interrupt already pending: real
// hardware doesn't stop the CPU there, but fails to increment PC on the
// fetch that follows HALT, so the byte after HALT is executed twice.
func (c *CPU) halt() {
	if !c.ime && c.interruptsPending() {
		c.haltBug = true
		return
	}
	c.halted = true
}

func (c *CPU) interruptsPending() bool {
	return c.busDev.Get(ioreg.IE)&c.busDev.Get(ioreg.IF)&0x1F != 0
}

var interruptPriority = [5]ioreg.Interrupt{
	ioreg.VBlank, ioreg.LCDStat, ioreg.Timer, ioreg.Serial, ioreg.Joypad,
}

// serviceInterrupt dispatches the single highest-priority pending and
// enabled interrupt, if IME is set. It clears IME, clears the
// corresponding IF bit, pushes PC and jumps to the interrupt vector.
func (c *CPU) serviceInterrupt() bool {
	if !c.ime {
		return false
	}

	ie := c.busDev.Get(ioreg.IE)
	iflags := c.busDev.Get(ioreg.IF)
	pending := ie & iflags & 0x1F
	if pending == 0 {
		return false
	}

	for _, src := range interruptPriority {
		if pending&src.Bit() == 0 {
			continue
		}

		c.ime = false
		c.busDev.Set(ioreg.IF, iflags&^src.Bit())
		c.pushStack(c.pc)
		c.pc = src.Vector()
		return true
	}

	return false
}

func (c *CPU) readImmediate() uint8 {
	v := c.busDev.Get(c.pc)
	c.pc++
	return v
}

func (c *CPU) readImmediateWord() uint16 {
	low := c.readImmediate()
	high := c.readImmediate()
	return bitutil.Combine(high, low)
}

func (c *CPU) getBC() uint16 { return bitutil.Combine(c.b, c.c) }
func (c *CPU) getDE() uint16 { return bitutil.Combine(c.d, c.e) }
func (c *CPU) getHL() uint16 { return bitutil.Combine(c.h, c.l) }
func (c *CPU) getAF() uint16 { return bitutil.Combine(c.a, c.f&0xF0) }

func (c *CPU) setBC(v uint16) { c.b, c.c = bitutil.High(v), bitutil.Low(v) }
func (c *CPU) setDE(v uint16) { c.d, c.e = bitutil.High(v), bitutil.Low(v) }
func (c *CPU) setHL(v uint16) { c.h, c.l = bitutil.High(v), bitutil.Low(v) }
func (c *CPU) setAF(v uint16) { c.a, c.f = bitutil.High(v), bitutil.Low(v)&0xF0 }

// reg8 returns a pointer to the 8-bit register the opcode's 3-bit
// register index selects, following the B,C,D,E,H,L,(HL),A encoding
// shared by LD r,r' and the arithmetic/CB opcode blocks. It returns nil
// for index 6, the (HL) memory operand, which callers must special-case
// since it isn't backed by a struct field.
func (c *CPU) reg8(index uint8) *uint8 {
	switch index & 7 {
	case 0:
		return &c.b
	case 1:
		return &c.c
	case 2:
		return &c.d
	case 3:
		return &c.e
	case 4:
		return &c.h
	case 5:
		return &c.l
	case 7:
		return &c.a
	default:
		return nil
	}
}

func (c *CPU) getReg8(index uint8) uint8 {
	if index&7 == 6 {
		return c.busDev.Get(c.getHL())
	}
	return *c.reg8(index)
}

func (c *CPU) setReg8(index uint8, value uint8) {
	if index&7 == 6 {
		c.busDev.Set(c.getHL(), value)
		return
	}
	*c.reg8(index) = value
}
