package cpu

import "github.com/valep27/dmgcore/internal/bitutil"

func (c *CPU) setFlag(mask uint8)   { c.f |= mask }
func (c *CPU) resetFlag(mask uint8) { c.f &^= mask }

func (c *CPU) setFlagToCondition(mask uint8, set bool) {
	if set {
		c.setFlag(mask)
	} else {
		c.resetFlag(mask)
	}
}

func (c *CPU) isSetFlag(mask uint8) bool { return c.f&mask != 0 }

func (c *CPU) flagBit(mask uint8) uint8 {
	if c.isSetFlag(mask) {
		return 1
	}
	return 0
}

func (c *CPU) inc(r *uint8) {
	*r++
	c.setFlagToCondition(flagZ, *r == 0)
	c.setFlagToCondition(flagH, (*r)&0xF == 0)
	c.resetFlag(flagN)
}

func (c *CPU) dec(r *uint8) {
	*r--
	c.setFlagToCondition(flagZ, *r == 0)
	c.setFlagToCondition(flagH, (*r)&0xF == 0xF)
	c.setFlag(flagN)
}

func (c *CPU) rlc(r *uint8) uint8 {
	value := *r
	carry := value >> 7
	result := (value << 1) | carry

	c.setFlagToCondition(flagC, carry != 0)
	c.resetFlag(flagN)
	c.resetFlag(flagH)
	*r = result
	c.setFlagToCondition(flagZ, result == 0)
	return result
}

func (c *CPU) rl(r *uint8) uint8 {
	value := *r
	carryIn := c.flagBit(flagC)
	carryOut := value >> 7
	result := (value << 1) | carryIn

	c.setFlagToCondition(flagC, carryOut != 0)
	c.resetFlag(flagN)
	c.resetFlag(flagH)
	*r = result
	c.setFlagToCondition(flagZ, result == 0)
	return result
}

func (c *CPU) rrc(r *uint8) uint8 {
	value := *r
	carry := value & 1
	result := (value >> 1) | (carry << 7)

	c.setFlagToCondition(flagC, carry != 0)
	c.resetFlag(flagN)
	c.resetFlag(flagH)
	*r = result
	c.setFlagToCondition(flagZ, result == 0)
	return result
}

func (c *CPU) rr(r *uint8) uint8 {
	value := *r
	carryIn := c.flagBit(flagC)
	carryOut := value & 1
	result := (value >> 1) | (carryIn << 7)

	c.setFlagToCondition(flagC, carryOut != 0)
	c.resetFlag(flagN)
	c.resetFlag(flagH)
	*r = result
	c.setFlagToCondition(flagZ, result == 0)
	return result
}

func (c *CPU) sla(r *uint8) uint8 {
	value := *r
	carry := value >> 7
	result := value << 1

	c.setFlagToCondition(flagC, carry != 0)
	c.resetFlag(flagN)
	c.resetFlag(flagH)
	*r = result
	c.setFlagToCondition(flagZ, result == 0)
	return result
}

func (c *CPU) sra(r *uint8) uint8 {
	value := *r
	carry := value & 1
	result := (value >> 1) | (value & 0x80)

	c.setFlagToCondition(flagC, carry != 0)
	c.resetFlag(flagN)
	c.resetFlag(flagH)
	*r = result
	c.setFlagToCondition(flagZ, result == 0)
	return result
}

func (c *CPU) srl(r *uint8) uint8 {
	value := *r
	carry := value & 1
	result := value >> 1

	c.setFlagToCondition(flagC, carry != 0)
	c.resetFlag(flagN)
	c.resetFlag(flagH)
	*r = result
	c.setFlagToCondition(flagZ, result == 0)
	return result
}

func (c *CPU) swap(r *uint8) uint8 {
	value := *r
	result := (value << 4) | (value >> 4)
	*r = result

	c.resetFlag(flagN)
	c.resetFlag(flagH)
	c.resetFlag(flagC)
	return result
}

func (c *CPU) bit(index uint8, value uint8) {
	c.setFlagToCondition(flagZ, value&(1<<index) == 0)
	c.resetFlag(flagN)
	c.setFlag(flagH)
}

// addToA adds value (plus carry, if withCarry) to A and sets ZNHC.
func (c *CPU) addToA(value uint8, withCarry bool) {
	carryIn := uint16(0)
	if withCarry && c.isSetFlag(flagC) {
		carryIn = 1
	}

	a := c.a
	sum := uint16(a) + uint16(value) + carryIn
	halfCarry := (a&0xF)+(value&0xF)+uint8(carryIn) > 0xF

	c.a = uint8(sum)
	c.setFlagToCondition(flagZ, c.a == 0)
	c.resetFlag(flagN)
	c.setFlagToCondition(flagH, halfCarry)
	c.setFlagToCondition(flagC, sum > 0xFF)
}

func (c *CPU) addToHL(value uint16) {
	hl := c.getHL()
	sum := uint32(hl) + uint32(value)
	halfCarry := (hl&0xFFF)+(value&0xFFF) > 0xFFF

	c.resetFlag(flagN)
	c.setFlagToCondition(flagH, halfCarry)
	c.setFlagToCondition(flagC, sum > 0xFFFF)
	c.setHL(uint16(sum))
}

// addToSPSigned implements both ADD SP,e8 and LD HL,SP+e8: it adds a
// signed 8-bit immediate to SP and reports the result plus the flags,
// which per hardware behavior are always computed as if adding an
// unsigned byte to the low byte of SP (this is why ADD SP,e8 can set
// carry/half-carry even though the operand is signed).
func (c *CPU) addToSPSigned(offset int8) uint16 {
	sp := c.sp
	value := uint16(int32(sp) + int32(offset))

	low := uint16(sp & 0xFF)
	delta := uint16(uint8(offset))

	c.resetFlag(flagZ)
	c.resetFlag(flagN)
	c.setFlagToCondition(flagH, (low&0xF)+(delta&0xF) > 0xF)
	c.setFlagToCondition(flagC, (low&0xFF)+(delta&0xFF) > 0xFF)

	return value
}

// subFromA subtracts value (plus carry, if withCarry) from A and sets
// ZNHC; compareOnly leaves A unmodified (used by CP).
func (c *CPU) subFromA(value uint8, withCarry bool, compareOnly bool) {
	carryIn := int16(0)
	if withCarry && c.isSetFlag(flagC) {
		carryIn = 1
	}

	a := c.a
	diff := int16(a) - int16(value) - carryIn
	halfCarry := int16(a&0xF)-int16(value&0xF)-carryIn < 0

	c.setFlagToCondition(flagZ, uint8(diff) == 0)
	c.setFlag(flagN)
	c.setFlagToCondition(flagH, halfCarry)
	c.setFlagToCondition(flagC, diff < 0)

	if !compareOnly {
		c.a = uint8(diff)
	}
}

func (c *CPU) and(value uint8) {
	c.a &= value
	c.setFlagToCondition(flagZ, c.a == 0)
	c.resetFlag(flagN)
	c.setFlag(flagH)
	c.resetFlag(flagC)
}

func (c *CPU) or(value uint8) {
	c.a |= value
	c.setFlagToCondition(flagZ, c.a == 0)
	c.resetFlag(flagN)
	c.resetFlag(flagH)
	c.resetFlag(flagC)
}

func (c *CPU) xor(value uint8) {
	c.a ^= value
	c.setFlagToCondition(flagZ, c.a == 0)
	c.resetFlag(flagN)
	c.resetFlag(flagH)
	c.resetFlag(flagC)
}

// daa adjusts A into valid packed BCD after an ADD/ADC/SUB/SBC, per the
// standard Sharp LR35902 algorithm driven by the N/H/C flags left by the
// preceding instruction.
func (c *CPU) daa() {
	a := c.a
	adjust := uint8(0)
	carry := false

	if c.isSetFlag(flagN) {
		if c.isSetFlag(flagH) {
			adjust += 0x06
		}
		if c.isSetFlag(flagC) {
			adjust += 0x60
			carry = true
		}
		a -= adjust
	} else {
		if c.isSetFlag(flagH) || a&0xF > 0x9 {
			adjust += 0x06
		}
		if c.isSetFlag(flagC) || a > 0x99 {
			adjust += 0x60
			carry = true
		}
		a += adjust
	}

	c.a = a
	c.setFlagToCondition(flagZ, c.a == 0)
	c.resetFlag(flagH)
	c.setFlagToCondition(flagC, carry)
}

func (c *CPU) pushStack(value uint16) {
	c.sp--
	c.busDev.Set(c.sp, bitutil.High(value))
	c.sp--
	c.busDev.Set(c.sp, bitutil.Low(value))
}

func (c *CPU) popStack() uint16 {
	low := c.busDev.Get(c.sp)
	c.sp++
	high := c.busDev.Get(c.sp)
	c.sp++
	return bitutil.Combine(high, low)
}
