package cpu

// executeCB decodes and runs one CB-prefixed opcode, returning the
// dots it took. The whole CB table is a regular 8x8(x4) grid over the
// register index (bits 2-0) and, in the rotate/shift block, the
// operation (bits 5-3); BIT/RES/SET instead use bits 5-3 as a bit
// index. (HL) is read-modify-written through the bus rather than a
// register pointer, and costs more dots than the register forms.
func (c *CPU) executeCB(opcode uint8) int {
	reg := opcode & 7
	bitIndex := (opcode >> 3) & 7

	switch {
	// 0x00-0x3F: RLC/RRC/RL/RR/SLA/SRA/SWAP/SRL r
	case opcode < 0x40:
		op := (opcode >> 3) & 7
		if reg == 6 {
			v := c.busDev.Get(c.getHL())
			switch op {
			case 0: // RLC (HL)
				v = c.rlc(&v)
			case 1: // RRC (HL)
				v = c.rrc(&v)
			case 2: // RL (HL)
				v = c.rl(&v)
			case 3: // RR (HL)
				v = c.rr(&v)
			case 4: // SLA (HL)
				v = c.sla(&v)
			case 5: // SRA (HL)
				v = c.sra(&v)
			case 6: // SWAP (HL)
				v = c.swap(&v)
			case 7: // SRL (HL)
				v = c.srl(&v)
			}
			c.busDev.Set(c.getHL(), v)
			return 16
		}
		r := c.reg8(reg)
		switch op {
		case 0: // RLC r
			c.rlc(r)
		case 1: // RRC r
			c.rrc(r)
		case 2: // RL r
			c.rl(r)
		case 3: // RR r
			c.rr(r)
		case 4: // SLA r
			c.sla(r)
		case 5: // SRA r
			c.sra(r)
		case 6: // SWAP r
			c.swap(r)
		case 7: // SRL r
			c.srl(r)
		}
		return 8

	// 0x40-0x7F: BIT b,r
	case opcode < 0x80:
		if reg == 6 {
			c.bit(bitIndex, c.busDev.Get(c.getHL()))
			return 12
		}
		c.bit(bitIndex, c.getReg8(reg))
		return 8

	// 0x80-0xBF: RES b,r
	case opcode < 0xC0:
		if reg == 6 {
			v := c.busDev.Get(c.getHL()) &^ (1 << bitIndex)
			c.busDev.Set(c.getHL(), v)
			return 16
		}
		c.setReg8(reg, c.getReg8(reg)&^(1<<bitIndex))
		return 8

	// 0xC0-0xFF: SET b,r
	case opcode >= 0xC0:
		if reg == 6 {
			v := c.busDev.Get(c.getHL()) | (1 << bitIndex)
			c.busDev.Set(c.getHL(), v)
			return 16
		}
		c.setReg8(reg, c.getReg8(reg)|(1<<bitIndex))
		return 8
	}
	panic(fmtUnimplemented(opcode))
}
