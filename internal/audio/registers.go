package audio

import (
	"github.com/valep27/dmgcore/internal/bitutil"
	"github.com/valep27/dmgcore/internal/ioreg"
)

// ReadRegister returns a register's value with its write-only/unused
// bits forced per Pan Docs (those bits always read as 1).
func (a *APU) ReadRegister(address uint16) uint8 {
	switch address {
	case ioreg.NR10:
		return a.nr10 | 0b1000_0000
	case ioreg.NR11:
		return a.nr11 | 0b0011_1111
	case ioreg.NR12:
		return a.nr12
	case ioreg.NR13:
		return 0xFF
	case ioreg.NR14:
		return a.nr14 | 0b1011_1111
	case ioreg.NR21:
		return a.nr21 | 0b0011_1111
	case ioreg.NR22:
		return a.nr22
	case ioreg.NR23:
		return 0xFF
	case ioreg.NR24:
		return a.nr24 | 0b1011_1111
	case ioreg.NR30:
		return a.nr30 | 0b0111_1111
	case ioreg.NR31:
		return 0xFF
	case ioreg.NR32:
		return a.nr32 | 0b1001_1111
	case ioreg.NR33:
		return 0xFF
	case ioreg.NR34:
		return a.nr34 | 0b1011_1111
	case ioreg.NR41:
		return 0xFF
	case ioreg.NR42:
		return a.nr42
	case ioreg.NR43:
		return a.nr43
	case ioreg.NR44:
		return a.nr44 | 0b1011_1111
	case ioreg.NR50:
		return a.nr50
	case ioreg.NR51:
		return a.nr51
	case ioreg.NR52:
		status := uint8(0b0111_0000)
		if a.enabled {
			status = bitutil.Set(7, status)
		}
		for i := range a.ch {
			if a.ch[i].enabled {
				status = bitutil.Set(uint8(i), status)
			}
		}
		return status
	}

	if address >= ioreg.WaveRAMStart && address <= ioreg.WaveRAMEnd {
		if a.waveRAMLocked() {
			return a.ch[2].waveSample
		}
		return a.waveRAM[address-ioreg.WaveRAMStart]
	}

	return 0xFF
}

// WriteRegister handles a program write to an audio register, storing
// the raw byte and recomputing derived channel state. Writes other than
// to NR52 and wave RAM are dropped while the APU is powered off, per
// invariant (c).
func (a *APU) WriteRegister(address uint16, value uint8) {
	isWaveRAM := address >= ioreg.WaveRAMStart && address <= ioreg.WaveRAMEnd

	if !a.enabled && address != ioreg.NR52 && !isWaveRAM {
		return
	}

	switch address {
	case ioreg.NR10:
		a.nr10 = value
	case ioreg.NR11:
		a.nr11 = value
	case ioreg.NR12:
		a.nr12 = value
	case ioreg.NR13:
		a.nr13 = value
	case ioreg.NR14:
		a.nr14 = value
	case ioreg.NR21:
		a.nr21 = value
	case ioreg.NR22:
		a.nr22 = value
	case ioreg.NR23:
		a.nr23 = value
	case ioreg.NR24:
		a.nr24 = value
	case ioreg.NR30:
		a.nr30 = value
	case ioreg.NR31:
		a.nr31 = value
	case ioreg.NR32:
		a.nr32 = value
	case ioreg.NR33:
		a.nr33 = value
	case ioreg.NR34:
		a.nr34 = value
	case ioreg.NR41:
		a.nr41 = value
	case ioreg.NR42:
		a.nr42 = value
	case ioreg.NR43:
		a.nr43 = value
	case ioreg.NR44:
		a.nr44 = value
	case ioreg.NR50:
		a.nr50 = value
	case ioreg.NR51:
		a.nr51 = value
	case ioreg.NR52:
		a.nr52 = value
	}

	if isWaveRAM {
		offset := address - ioreg.WaveRAMStart
		if a.waveRAMLocked() {
			idx := a.ch[2].waveIndex >> 1
			a.waveRAM[idx] = value
			a.ch[2].waveSample = value
		} else {
			a.waveRAM[offset] = value
		}
	}

	a.mapRegisters()
}

// mapRegisters recomputes every channel's derived state from the raw
// register bytes. It runs after every WriteRegister call, same as the
// reference hardware's register-decoding logic runs continuously.
func (a *APU) mapRegisters() {
	a.enabled = bitutil.IsSet(7, a.nr52)
	if !a.enabled {
		a.nr10, a.nr11, a.nr12, a.nr13, a.nr14 = 0, 0, 0, 0, 0
		a.nr21, a.nr22, a.nr23, a.nr24 = 0, 0, 0, 0
		a.nr30, a.nr31, a.nr32, a.nr33, a.nr34 = 0, 0, 0, 0, 0
		a.nr41, a.nr42, a.nr43, a.nr44 = 0, 0, 0, 0
		a.nr50, a.nr51 = 0, 0
		for i := range a.ch {
			a.ch[i].enabled = false
		}
	}

	for i := range a.ch {
		a.ch[i].right = bitutil.IsSet(uint8(i), a.nr51)
		a.ch[i].left = bitutil.IsSet(uint8(i+4), a.nr51)
	}
	a.vinLeft, a.vinRight = bitutil.IsSet(7, a.nr50), bitutil.IsSet(3, a.nr50)
	a.volLeft, a.volRight = bitutil.ExtractBits(a.nr50, 6, 4), bitutil.ExtractBits(a.nr50, 2, 0)

	a.mapChannel1()
	a.mapChannel2()
	a.mapChannel3()
	a.mapChannel4()

	for i := range a.ch {
		if !a.ch[i].dacEnabled {
			a.ch[i].enabled = false
		}
	}
}

func (a *APU) mapChannel1() {
	ch := &a.ch[0]

	prevSweepDown := ch.sweepDown
	ch.sweepPeriod = bitutil.ExtractBits(a.nr10, 6, 4)
	ch.sweepDown = bitutil.IsSet(3, a.nr10)
	ch.sweepStep = bitutil.ExtractBits(a.nr10, 2, 0)
	if !ch.sweepDown && prevSweepDown && ch.sweepNegUsed && (ch.sweepPeriod > 0 || ch.sweepStep > 0) {
		ch.enabled = false
	}

	ch.duty = bitutil.ExtractBits(a.nr11, 7, 6)
	ch.timer = bitutil.ExtractBits(a.nr11, 5, 0)
	if ch.length == 0 {
		ch.length = 64 - uint16(ch.timer)
	}

	ch.volume = bitutil.ExtractBits(a.nr12, 7, 4)
	ch.envelopeUp = bitutil.IsSet(3, a.nr12)
	ch.envelopePace = bitutil.ExtractBits(a.nr12, 2, 0)
	ch.dacEnabled = ch.volume > 0 || ch.envelopeUp

	ch.period = bitutil.Combine(a.nr14&0b111, a.nr13)

	triggered := bitutil.IsSet(7, a.nr14)
	ch.lengthEnable = bitutil.IsSet(6, a.nr14)
	if triggered {
		if ch.dacEnabled {
			ch.enabled = true
		}
		if ch.length == 0 {
			ch.length = 64
		}
		ch.envelopeLatched = false
		ch.envelopeCounter = orDefault(ch.envelopePace, 8)
		ch.dutyStep = 0
		ch.freqTimer = squarePeriodCycles(ch)

		ch.sweepEnabled = ch.sweepPeriod > 0 || ch.sweepStep > 0
		ch.sweepTimer = orDefault(ch.sweepPeriod, 8)
		ch.shadowFreq = ch.period
		ch.sweepNegUsed = false
		if ch.sweepStep != 0 {
			if ch.sweepDown {
				ch.sweepNegUsed = true
			}
			if _, overflow := ch.sweepTarget(); overflow {
				ch.enabled = false
			}
		}
		a.nr14 = bitutil.Clear(7, a.nr14)
	}
}

func (a *APU) mapChannel2() {
	ch := &a.ch[1]

	ch.duty = bitutil.ExtractBits(a.nr21, 7, 6)
	ch.timer = bitutil.ExtractBits(a.nr21, 5, 0)
	if ch.length == 0 {
		ch.length = 64 - uint16(ch.timer)
	}

	ch.volume = bitutil.ExtractBits(a.nr22, 7, 4)
	ch.envelopeUp = bitutil.IsSet(3, a.nr22)
	ch.envelopePace = bitutil.ExtractBits(a.nr22, 2, 0)
	ch.dacEnabled = ch.volume > 0 || ch.envelopeUp

	ch.period = bitutil.Combine(a.nr24&0b111, a.nr23)

	triggered := bitutil.IsSet(7, a.nr24)
	ch.lengthEnable = bitutil.IsSet(6, a.nr24)
	if triggered {
		if ch.dacEnabled {
			ch.enabled = true
		}
		if ch.length == 0 {
			ch.length = 64
		}
		ch.envelopeLatched = false
		ch.envelopeCounter = orDefault(ch.envelopePace, 8)
		ch.dutyStep = 0
		ch.freqTimer = squarePeriodCycles(ch)
		a.nr24 = bitutil.Clear(7, a.nr24)
	}
}

func (a *APU) mapChannel3() {
	ch := &a.ch[2]

	ch.dacEnabled = bitutil.IsSet(7, a.nr30)
	ch.timer = a.nr31
	if ch.length == 0 {
		ch.length = 256 - uint16(ch.timer)
	}
	ch.volume = bitutil.ExtractBits(a.nr32, 6, 5)

	ch.period = bitutil.Combine(a.nr34&0b111, a.nr33)

	triggered := bitutil.IsSet(7, a.nr34)
	ch.lengthEnable = bitutil.IsSet(6, a.nr34)
	if triggered {
		if ch.dacEnabled {
			ch.enabled = true
		}
		if ch.length == 0 {
			ch.length = 256
		}
		ch.freqTimer = wavePeriodCycles(ch)
		ch.waveIndex = 0
		ch.waveSample = a.waveRAM[0]
		a.nr34 = bitutil.Clear(7, a.nr34)
	}
}

func (a *APU) mapChannel4() {
	ch := &a.ch[3]

	ch.timer = bitutil.ExtractBits(a.nr41, 5, 0)
	if ch.length == 0 {
		ch.length = 64 - uint16(ch.timer)
	}

	ch.volume = bitutil.ExtractBits(a.nr42, 7, 4)
	ch.envelopeUp = bitutil.IsSet(3, a.nr42)
	ch.envelopePace = bitutil.ExtractBits(a.nr42, 2, 0)
	ch.dacEnabled = ch.volume > 0 || ch.envelopeUp

	ch.shift = bitutil.ExtractBits(a.nr43, 7, 4)
	ch.use7bitLFSR = bitutil.IsSet(3, a.nr43)
	ch.divider = bitutil.ExtractBits(a.nr43, 2, 0)

	triggered := bitutil.IsSet(7, a.nr44)
	ch.lengthEnable = bitutil.IsSet(6, a.nr44)
	if triggered {
		if ch.dacEnabled {
			ch.enabled = true
		}
		if ch.length == 0 {
			ch.length = 64
		}
		ch.envelopeLatched = false
		ch.envelopeCounter = orDefault(ch.envelopePace, 8)
		ch.lfsr = 0x7FFF
		ch.noiseTimer = noisePeriodCycles(ch)
		a.nr44 = bitutil.Clear(7, a.nr44)
	}
}

func orDefault(v, fallback uint8) uint8 {
	if v == 0 {
		return fallback
	}
	return v
}
