package cpu

import (
	"fmt"

	"github.com/valep27/dmgcore/internal/bitutil"
)

func fmtUnimplemented(opcode uint8) string {
	return fmt.Sprintf("cpu: unimplemented opcode 0x%02X", opcode)
}

// execute decodes and runs one primary (non-CB prefixed) opcode,
// returning the dots (T-states) it took. The opcode space below 0x40
// and above 0xBF is irregular enough to warrant one case per
// instruction; the LD r,r' block (0x40-0x7F) and the ALU A,r block
// (0x80-0xBF) both repeat the same 8x8 register matrix, so each of
// those cases is a one-liner over the shared getReg8/setReg8 register
// decode, with the register indices written out per opcode.
func (c *CPU) execute(opcode uint8) int {
	switch opcode {

	case 0x00: // NOP
		return 4
	case 0x01: // LD BC,nn
		c.setBC(c.readImmediateWord())
		return 12
	case 0x02: // LD (BC),A
		c.busDev.Set(c.getBC(), c.a)
		return 8
	case 0x03: // INC BC
		c.setBC(c.getBC() + 1)
		return 8
	case 0x04: // INC B
		c.inc(&c.b)
		return 4
	case 0x05: // DEC B
		c.dec(&c.b)
		return 4
	case 0x06: // LD B,n
		c.b = c.readImmediate()
		return 8
	case 0x07: // RLCA
		c.rlc(&c.a)
		c.resetFlag(flagZ)
		return 4
	case 0x08: // LD (nn),SP
		addr := c.readImmediateWord()
		c.busDev.Set(addr, bitutil.Low(c.sp))
		c.busDev.Set(addr+1, bitutil.High(c.sp))
		return 20
	case 0x09: // ADD HL,BC
		c.addToHL(c.getBC())
		return 8
	case 0x0A: // LD A,(BC)
		c.a = c.busDev.Get(c.getBC())
		return 8
	case 0x0B: // DEC BC
		c.setBC(c.getBC() - 1)
		return 8
	case 0x0C: // INC C
		c.inc(&c.c)
		return 4
	case 0x0D: // DEC C
		c.dec(&c.c)
		return 4
	case 0x0E: // LD C,n
		c.c = c.readImmediate()
		return 8
	case 0x0F: // RRCA
		c.rrc(&c.a)
		c.resetFlag(flagZ)
		return 4
	case 0x10: // STOP
		c.readImmediate() // STOP is followed by an ignored padding byte
		return 4
	case 0x11: // LD DE,nn
		c.setDE(c.readImmediateWord())
		return 12
	case 0x12: // LD (DE),A
		c.busDev.Set(c.getDE(), c.a)
		return 8
	case 0x13: // INC DE
		c.setDE(c.getDE() + 1)
		return 8
	case 0x14: // INC D
		c.inc(&c.d)
		return 4
	case 0x15: // DEC D
		c.dec(&c.d)
		return 4
	case 0x16: // LD D,n
		c.d = c.readImmediate()
		return 8
	case 0x17: // RLA
		c.rl(&c.a)
		c.resetFlag(flagZ)
		return 4
	case 0x18: // JR e
		offset := int8(c.readImmediate())
		c.pc = uint16(int32(c.pc) + int32(offset))
		return 12
	case 0x19: // ADD HL,DE
		c.addToHL(c.getDE())
		return 8
	case 0x1A: // LD A,(DE)
		c.a = c.busDev.Get(c.getDE())
		return 8
	case 0x1B: // DEC DE
		c.setDE(c.getDE() - 1)
		return 8
	case 0x1C: // INC E
		c.inc(&c.e)
		return 4
	case 0x1D: // DEC E
		c.dec(&c.e)
		return 4
	case 0x1E: // LD E,n
		c.e = c.readImmediate()
		return 8
	case 0x1F: // RRA
		c.rr(&c.a)
		c.resetFlag(flagZ)
		return 4
	case 0x20: // JR NZ,e
		offset := int8(c.readImmediate())
		if !c.isSetFlag(flagZ) {
			c.pc = uint16(int32(c.pc) + int32(offset))
			return 12
		}
		return 8
	case 0x21: // LD HL,nn
		c.setHL(c.readImmediateWord())
		return 12
	case 0x22: // LD (HL+),A
		c.busDev.Set(c.getHL(), c.a)
		c.setHL(c.getHL() + 1)
		return 8
	case 0x23: // INC HL
		c.setHL(c.getHL() + 1)
		return 8
	case 0x24: // INC H
		c.inc(&c.h)
		return 4
	case 0x25: // DEC H
		c.dec(&c.h)
		return 4
	case 0x26: // LD H,n
		c.h = c.readImmediate()
		return 8
	case 0x27: // DAA
		c.daa()
		return 4
	case 0x28: // JR Z,e
		offset := int8(c.readImmediate())
		if c.isSetFlag(flagZ) {
			c.pc = uint16(int32(c.pc) + int32(offset))
			return 12
		}
		return 8
	case 0x29: // ADD HL,HL
		c.addToHL(c.getHL())
		return 8
	case 0x2A: // LD A,(HL+)
		c.a = c.busDev.Get(c.getHL())
		c.setHL(c.getHL() + 1)
		return 8
	case 0x2B: // DEC HL
		c.setHL(c.getHL() - 1)
		return 8
	case 0x2C: // INC L
		c.inc(&c.l)
		return 4
	case 0x2D: // DEC L
		c.dec(&c.l)
		return 4
	case 0x2E: // LD L,n
		c.l = c.readImmediate()
		return 8
	case 0x2F: // CPL
		c.a = ^c.a
		c.setFlag(flagN)
		c.setFlag(flagH)
		return 4
	case 0x30: // JR NC,e
		offset := int8(c.readImmediate())
		if !c.isSetFlag(flagC) {
			c.pc = uint16(int32(c.pc) + int32(offset))
			return 12
		}
		return 8
	case 0x31: // LD SP,nn
		c.sp = c.readImmediateWord()
		return 12
	case 0x32: // LD (HL-),A
		c.busDev.Set(c.getHL(), c.a)
		c.setHL(c.getHL() - 1)
		return 8
	case 0x33: // INC SP
		c.sp++
		return 8
	case 0x34: // INC (HL)
		v := c.busDev.Get(c.getHL())
		c.inc(&v)
		c.busDev.Set(c.getHL(), v)
		return 12
	case 0x35: // DEC (HL)
		v := c.busDev.Get(c.getHL())
		c.dec(&v)
		c.busDev.Set(c.getHL(), v)
		return 12
	case 0x36: // LD (HL),n
		c.busDev.Set(c.getHL(), c.readImmediate())
		return 12
	case 0x37: // SCF
		c.setFlag(flagC)
		c.resetFlag(flagN)
		c.resetFlag(flagH)
		return 4
	case 0x38: // JR C,e
		offset := int8(c.readImmediate())
		if c.isSetFlag(flagC) {
			c.pc = uint16(int32(c.pc) + int32(offset))
			return 12
		}
		return 8
	case 0x39: // ADD HL,SP
		c.addToHL(c.sp)
		return 8
	case 0x3A: // LD A,(HL-)
		c.a = c.busDev.Get(c.getHL())
		c.setHL(c.getHL() - 1)
		return 8
	case 0x3B: // DEC SP
		c.sp--
		return 8
	case 0x3C: // INC A
		c.inc(&c.a)
		return 4
	case 0x3D: // DEC A
		c.dec(&c.a)
		return 4
	case 0x3E: // LD A,n
		c.a = c.readImmediate()
		return 8
	case 0x3F: // CCF
		c.setFlagToCondition(flagC, !c.isSetFlag(flagC))
		c.resetFlag(flagN)
		c.resetFlag(flagH)
		return 4

	// LD r,r' (0x40-0x7F); 0x76 is HALT in place of LD (HL),(HL).
	case 0x40:
		c.setReg8(0, c.getReg8(0))
		return 4
	case 0x41:
		c.setReg8(0, c.getReg8(1))
		return 4
	case 0x42:
		c.setReg8(0, c.getReg8(2))
		return 4
	case 0x43:
		c.setReg8(0, c.getReg8(3))
		return 4
	case 0x44:
		c.setReg8(0, c.getReg8(4))
		return 4
	case 0x45:
		c.setReg8(0, c.getReg8(5))
		return 4
	case 0x46:
		c.setReg8(0, c.getReg8(6))
		return 8
	case 0x47:
		c.setReg8(0, c.getReg8(7))
		return 4
	case 0x48:
		c.setReg8(1, c.getReg8(0))
		return 4
	case 0x49:
		c.setReg8(1, c.getReg8(1))
		return 4
	case 0x4A:
		c.setReg8(1, c.getReg8(2))
		return 4
	case 0x4B:
		c.setReg8(1, c.getReg8(3))
		return 4
	case 0x4C:
		c.setReg8(1, c.getReg8(4))
		return 4
	case 0x4D:
		c.setReg8(1, c.getReg8(5))
		return 4
	case 0x4E:
		c.setReg8(1, c.getReg8(6))
		return 8
	case 0x4F:
		c.setReg8(1, c.getReg8(7))
		return 4
	case 0x50:
		c.setReg8(2, c.getReg8(0))
		return 4
	case 0x51:
		c.setReg8(2, c.getReg8(1))
		return 4
	case 0x52:
		c.setReg8(2, c.getReg8(2))
		return 4
	case 0x53:
		c.setReg8(2, c.getReg8(3))
		return 4
	case 0x54:
		c.setReg8(2, c.getReg8(4))
		return 4
	case 0x55:
		c.setReg8(2, c.getReg8(5))
		return 4
	case 0x56:
		c.setReg8(2, c.getReg8(6))
		return 8
	case 0x57:
		c.setReg8(2, c.getReg8(7))
		return 4
	case 0x58:
		c.setReg8(3, c.getReg8(0))
		return 4
	case 0x59:
		c.setReg8(3, c.getReg8(1))
		return 4
	case 0x5A:
		c.setReg8(3, c.getReg8(2))
		return 4
	case 0x5B:
		c.setReg8(3, c.getReg8(3))
		return 4
	case 0x5C:
		c.setReg8(3, c.getReg8(4))
		return 4
	case 0x5D:
		c.setReg8(3, c.getReg8(5))
		return 4
	case 0x5E:
		c.setReg8(3, c.getReg8(6))
		return 8
	case 0x5F:
		c.setReg8(3, c.getReg8(7))
		return 4
	case 0x60:
		c.setReg8(4, c.getReg8(0))
		return 4
	case 0x61:
		c.setReg8(4, c.getReg8(1))
		return 4
	case 0x62:
		c.setReg8(4, c.getReg8(2))
		return 4
	case 0x63:
		c.setReg8(4, c.getReg8(3))
		return 4
	case 0x64:
		c.setReg8(4, c.getReg8(4))
		return 4
	case 0x65:
		c.setReg8(4, c.getReg8(5))
		return 4
	case 0x66:
		c.setReg8(4, c.getReg8(6))
		return 8
	case 0x67:
		c.setReg8(4, c.getReg8(7))
		return 4
	case 0x68:
		c.setReg8(5, c.getReg8(0))
		return 4
	case 0x69:
		c.setReg8(5, c.getReg8(1))
		return 4
	case 0x6A:
		c.setReg8(5, c.getReg8(2))
		return 4
	case 0x6B:
		c.setReg8(5, c.getReg8(3))
		return 4
	case 0x6C:
		c.setReg8(5, c.getReg8(4))
		return 4
	case 0x6D:
		c.setReg8(5, c.getReg8(5))
		return 4
	case 0x6E:
		c.setReg8(5, c.getReg8(6))
		return 8
	case 0x6F:
		c.setReg8(5, c.getReg8(7))
		return 4
	case 0x70:
		c.setReg8(6, c.getReg8(0))
		return 8
	case 0x71:
		c.setReg8(6, c.getReg8(1))
		return 8
	case 0x72:
		c.setReg8(6, c.getReg8(2))
		return 8
	case 0x73:
		c.setReg8(6, c.getReg8(3))
		return 8
	case 0x74:
		c.setReg8(6, c.getReg8(4))
		return 8
	case 0x75:
		c.setReg8(6, c.getReg8(5))
		return 8
	case 0x76: // HALT
		c.halt()
		return 4
	case 0x77:
		c.setReg8(6, c.getReg8(7))
		return 8
	case 0x78:
		c.setReg8(7, c.getReg8(0))
		return 4
	case 0x79:
		c.setReg8(7, c.getReg8(1))
		return 4
	case 0x7A:
		c.setReg8(7, c.getReg8(2))
		return 4
	case 0x7B:
		c.setReg8(7, c.getReg8(3))
		return 4
	case 0x7C:
		c.setReg8(7, c.getReg8(4))
		return 4
	case 0x7D:
		c.setReg8(7, c.getReg8(5))
		return 4
	case 0x7E:
		c.setReg8(7, c.getReg8(6))
		return 8
	case 0x7F:
		c.setReg8(7, c.getReg8(7))
		return 4

	// ALU A,r (0x80-0xBF).
	case 0x80: // ADD A,r
		c.addToA(c.getReg8(0), false)
		return 4
	case 0x81: // ADD A,r
		c.addToA(c.getReg8(1), false)
		return 4
	case 0x82: // ADD A,r
		c.addToA(c.getReg8(2), false)
		return 4
	case 0x83: // ADD A,r
		c.addToA(c.getReg8(3), false)
		return 4
	case 0x84: // ADD A,r
		c.addToA(c.getReg8(4), false)
		return 4
	case 0x85: // ADD A,r
		c.addToA(c.getReg8(5), false)
		return 4
	case 0x86: // ADD A,r
		c.addToA(c.getReg8(6), false)
		return 8
	case 0x87: // ADD A,r
		c.addToA(c.getReg8(7), false)
		return 4
	case 0x88: // ADC A,r
		c.addToA(c.getReg8(0), true)
		return 4
	case 0x89: // ADC A,r
		c.addToA(c.getReg8(1), true)
		return 4
	case 0x8A: // ADC A,r
		c.addToA(c.getReg8(2), true)
		return 4
	case 0x8B: // ADC A,r
		c.addToA(c.getReg8(3), true)
		return 4
	case 0x8C: // ADC A,r
		c.addToA(c.getReg8(4), true)
		return 4
	case 0x8D: // ADC A,r
		c.addToA(c.getReg8(5), true)
		return 4
	case 0x8E: // ADC A,r
		c.addToA(c.getReg8(6), true)
		return 8
	case 0x8F: // ADC A,r
		c.addToA(c.getReg8(7), true)
		return 4
	case 0x90: // SUB r
		c.subFromA(c.getReg8(0), false, false)
		return 4
	case 0x91: // SUB r
		c.subFromA(c.getReg8(1), false, false)
		return 4
	case 0x92: // SUB r
		c.subFromA(c.getReg8(2), false, false)
		return 4
	case 0x93: // SUB r
		c.subFromA(c.getReg8(3), false, false)
		return 4
	case 0x94: // SUB r
		c.subFromA(c.getReg8(4), false, false)
		return 4
	case 0x95: // SUB r
		c.subFromA(c.getReg8(5), false, false)
		return 4
	case 0x96: // SUB r
		c.subFromA(c.getReg8(6), false, false)
		return 8
	case 0x97: // SUB r
		c.subFromA(c.getReg8(7), false, false)
		return 4
	case 0x98: // SBC A,r
		c.subFromA(c.getReg8(0), true, false)
		return 4
	case 0x99: // SBC A,r
		c.subFromA(c.getReg8(1), true, false)
		return 4
	case 0x9A: // SBC A,r
		c.subFromA(c.getReg8(2), true, false)
		return 4
	case 0x9B: // SBC A,r
		c.subFromA(c.getReg8(3), true, false)
		return 4
	case 0x9C: // SBC A,r
		c.subFromA(c.getReg8(4), true, false)
		return 4
	case 0x9D: // SBC A,r
		c.subFromA(c.getReg8(5), true, false)
		return 4
	case 0x9E: // SBC A,r
		c.subFromA(c.getReg8(6), true, false)
		return 8
	case 0x9F: // SBC A,r
		c.subFromA(c.getReg8(7), true, false)
		return 4
	case 0xA0: // AND r
		c.and(c.getReg8(0))
		return 4
	case 0xA1: // AND r
		c.and(c.getReg8(1))
		return 4
	case 0xA2: // AND r
		c.and(c.getReg8(2))
		return 4
	case 0xA3: // AND r
		c.and(c.getReg8(3))
		return 4
	case 0xA4: // AND r
		c.and(c.getReg8(4))
		return 4
	case 0xA5: // AND r
		c.and(c.getReg8(5))
		return 4
	case 0xA6: // AND r
		c.and(c.getReg8(6))
		return 8
	case 0xA7: // AND r
		c.and(c.getReg8(7))
		return 4
	case 0xA8: // XOR r
		c.xor(c.getReg8(0))
		return 4
	case 0xA9: // XOR r
		c.xor(c.getReg8(1))
		return 4
	case 0xAA: // XOR r
		c.xor(c.getReg8(2))
		return 4
	case 0xAB: // XOR r
		c.xor(c.getReg8(3))
		return 4
	case 0xAC: // XOR r
		c.xor(c.getReg8(4))
		return 4
	case 0xAD: // XOR r
		c.xor(c.getReg8(5))
		return 4
	case 0xAE: // XOR r
		c.xor(c.getReg8(6))
		return 8
	case 0xAF: // XOR r
		c.xor(c.getReg8(7))
		return 4
	case 0xB0: // OR r
		c.or(c.getReg8(0))
		return 4
	case 0xB1: // OR r
		c.or(c.getReg8(1))
		return 4
	case 0xB2: // OR r
		c.or(c.getReg8(2))
		return 4
	case 0xB3: // OR r
		c.or(c.getReg8(3))
		return 4
	case 0xB4: // OR r
		c.or(c.getReg8(4))
		return 4
	case 0xB5: // OR r
		c.or(c.getReg8(5))
		return 4
	case 0xB6: // OR r
		c.or(c.getReg8(6))
		return 8
	case 0xB7: // OR r
		c.or(c.getReg8(7))
		return 4
	case 0xB8: // CP r
		c.subFromA(c.getReg8(0), false, true)
		return 4
	case 0xB9: // CP r
		c.subFromA(c.getReg8(1), false, true)
		return 4
	case 0xBA: // CP r
		c.subFromA(c.getReg8(2), false, true)
		return 4
	case 0xBB: // CP r
		c.subFromA(c.getReg8(3), false, true)
		return 4
	case 0xBC: // CP r
		c.subFromA(c.getReg8(4), false, true)
		return 4
	case 0xBD: // CP r
		c.subFromA(c.getReg8(5), false, true)
		return 4
	case 0xBE: // CP r
		c.subFromA(c.getReg8(6), false, true)
		return 8
	case 0xBF: // CP r
		c.subFromA(c.getReg8(7), false, true)
		return 4

	case 0xC0: // RET NZ
		if !c.isSetFlag(flagZ) {
			c.pc = c.popStack()
			return 20
		}
		return 8
	case 0xC1: // POP BC
		c.setBC(c.popStack())
		return 12
	case 0xC2: // JP NZ,nn
		addr := c.readImmediateWord()
		if !c.isSetFlag(flagZ) {
			c.pc = addr
			return 16
		}
		return 12
	case 0xC3: // JP nn
		c.pc = c.readImmediateWord()
		return 16
	case 0xC4: // CALL NZ,nn
		addr := c.readImmediateWord()
		if !c.isSetFlag(flagZ) {
			c.pushStack(c.pc)
			c.pc = addr
			return 24
		}
		return 12
	case 0xC5: // PUSH BC
		c.pushStack(c.getBC())
		return 16
	case 0xC6: // ADD A,n
		c.addToA(c.readImmediate(), false)
		return 8
	case 0xC7: // RST 00H
		c.pushStack(c.pc)
		c.pc = 0x0000
		return 16
	case 0xC8: // RET Z
		if c.isSetFlag(flagZ) {
			c.pc = c.popStack()
			return 20
		}
		return 8
	case 0xC9: // RET
		c.pc = c.popStack()
		return 16
	case 0xCA: // JP Z,nn
		addr := c.readImmediateWord()
		if c.isSetFlag(flagZ) {
			c.pc = addr
			return 16
		}
		return 12
	case 0xCC: // CALL Z,nn
		addr := c.readImmediateWord()
		if c.isSetFlag(flagZ) {
			c.pushStack(c.pc)
			c.pc = addr
			return 24
		}
		return 12
	case 0xCD: // CALL nn
		addr := c.readImmediateWord()
		c.pushStack(c.pc)
		c.pc = addr
		return 24
	case 0xCE: // ADC A,n
		c.addToA(c.readImmediate(), true)
		return 8
	case 0xCF: // RST 08H
		c.pushStack(c.pc)
		c.pc = 0x0008
		return 16
	case 0xD0: // RET NC
		if !c.isSetFlag(flagC) {
			c.pc = c.popStack()
			return 20
		}
		return 8
	case 0xD1: // POP DE
		c.setDE(c.popStack())
		return 12
	case 0xD2: // JP NC,nn
		addr := c.readImmediateWord()
		if !c.isSetFlag(flagC) {
			c.pc = addr
			return 16
		}
		return 12
	case 0xD4: // CALL NC,nn
		addr := c.readImmediateWord()
		if !c.isSetFlag(flagC) {
			c.pushStack(c.pc)
			c.pc = addr
			return 24
		}
		return 12
	case 0xD5: // PUSH DE
		c.pushStack(c.getDE())
		return 16
	case 0xD6: // SUB n
		c.subFromA(c.readImmediate(), false, false)
		return 8
	case 0xD7: // RST 10H
		c.pushStack(c.pc)
		c.pc = 0x0010
		return 16
	case 0xD8: // RET C
		if c.isSetFlag(flagC) {
			c.pc = c.popStack()
			return 20
		}
		return 8
	case 0xD9: // RETI
		c.pc = c.popStack()
		c.ime = true
		return 16
	case 0xDA: // JP C,nn
		addr := c.readImmediateWord()
		if c.isSetFlag(flagC) {
			c.pc = addr
			return 16
		}
		return 12
	case 0xDC: // CALL C,nn
		addr := c.readImmediateWord()
		if c.isSetFlag(flagC) {
			c.pushStack(c.pc)
			c.pc = addr
			return 24
		}
		return 12
	case 0xDE: // SBC A,n
		c.subFromA(c.readImmediate(), true, false)
		return 8
	case 0xDF: // RST 18H
		c.pushStack(c.pc)
		c.pc = 0x0018
		return 16
	case 0xE0: // LDH (n),A
		c.busDev.Set(0xFF00+uint16(c.readImmediate()), c.a)
		return 12
	case 0xE1: // POP HL
		c.setHL(c.popStack())
		return 12
	case 0xE2: // LD (C),A
		c.busDev.Set(0xFF00+uint16(c.c), c.a)
		return 8
	case 0xE5: // PUSH HL
		c.pushStack(c.getHL())
		return 16
	case 0xE6: // AND n
		c.and(c.readImmediate())
		return 8
	case 0xE7: // RST 20H
		c.pushStack(c.pc)
		c.pc = 0x0020
		return 16
	case 0xE8: // ADD SP,e
		c.sp = c.addToSPSigned(int8(c.readImmediate()))
		return 16
	case 0xE9: // JP (HL)
		c.pc = c.getHL()
		return 4
	case 0xEA: // LD (nn),A
		c.busDev.Set(c.readImmediateWord(), c.a)
		return 16
	case 0xEE: // XOR n
		c.xor(c.readImmediate())
		return 8
	case 0xEF: // RST 28H
		c.pushStack(c.pc)
		c.pc = 0x0028
		return 16
	case 0xF0: // LDH A,(n)
		c.a = c.busDev.Get(0xFF00 + uint16(c.readImmediate()))
		return 12
	case 0xF1: // POP AF
		c.setAF(c.popStack())
		return 12
	case 0xF2: // LD A,(C)
		c.a = c.busDev.Get(0xFF00 + uint16(c.c))
		return 8
	case 0xF3: // DI
		c.ime = false
		return 4
	case 0xF5: // PUSH AF
		c.pushStack(c.getAF())
		return 16
	case 0xF6: // OR n
		c.or(c.readImmediate())
		return 8
	case 0xF7: // RST 30H
		c.pushStack(c.pc)
		c.pc = 0x0030
		return 16
	case 0xF8: // LD HL,SP+e
		c.setHL(c.addToSPSigned(int8(c.readImmediate())))
		return 12
	case 0xF9: // LD SP,HL
		c.sp = c.getHL()
		return 8
	case 0xFA: // LD A,(nn)
		c.a = c.busDev.Get(c.readImmediateWord())
		return 16
	case 0xFB: // EI
		c.ime = true
		return 4
	case 0xFE: // CP n
		c.subFromA(c.readImmediate(), false, true)
		return 8
	case 0xFF: // RST 38H
		c.pushStack(c.pc)
		c.pc = 0x0038
		return 16
	case 0xCB:
		return c.executeCB(c.readImmediate())
	default:
		panic(fmtUnimplemented(opcode))
	}
}
