// Package timer implements the DMG's DIV/TIMA/TMA/TAC timer block.
package timer

import "github.com/valep27/dmgcore/internal/ioreg"

// speedShifts maps a TAC/DIV "speed" selector to a bit position of the
// internal dot accumulator: the counter advances once each time the
// accumulator carries into that bit, i.e. every 1<<shift dots.
// Grounded on original_source/src/timer.rs's timer_increment shift
// table: speed 3 (the DIV rate) shifts by 8; TAC's two speed bits pick
// any of the four entries.
var speedShifts = [4]uint8{8 + 2, 8 - 4, 8 - 2, 8}

// Timer owns DIV/TIMA/TMA/TAC and the internal cycle accumulator that
// drives them. It never touches the bus directly: the bus delegates
// FF04-FF07 reads/writes to it, and it reports a count of elapsed
// 512Hz "frame sequencer" ticks (DeltaDiv).
type Timer struct {
	ticks uint16 // internal dot accumulator

	div  uint8
	tima uint8
	tma  uint8
	tac  uint8

	// DeltaDiv is the number of times DIV's bit 4 went from 1 to 0
	// during the most recent Tick call. Nothing in this core reads it:
	// the APU's frame sequencer runs off its own 8192-dot accumulator.
	DeltaDiv uint8

	// OnTimerInterrupt is invoked whenever TIMA overflows past 0xFF.
	OnTimerInterrupt func()
}

// New creates a Timer with all registers at zero.
func New() *Timer {
	return &Timer{}
}

// Tick advances the timer by n dots (T-states, n >= 1).
func (t *Timer) Tick(n int) {
	if n <= 0 {
		return
	}

	prevTicks := t.ticks
	t.ticks += uint16(n)

	divIncr := increment(prevTicks, n, speedShifts[3])
	t.DeltaDiv = ((t.div & 0x1F) + divIncr) >> 5
	t.div += divIncr

	if t.tac&0x04 == 0 {
		return
	}

	shift := speedShifts[t.tac&0x03]
	incr := increment(prevTicks, n, shift)
	if incr == 0 {
		return
	}

	sum := uint16(t.tima) + uint16(incr)
	if sum <= 0xFF {
		t.tima = uint8(sum)
		return
	}

	// Faithful restatement of original_source/src/timer.rs's overflow
	// branch: tma + ((incr - (0xFF - tima + 1)) & (0xFF - tma)), all in
	// wrapping uint8 arithmetic, so a multi-overflow incr reloads the
	// same way the reference does rather than via a modulus.
	excess := incr - (0xFF - t.tima + 1)
	t.tima = t.tma + (excess & (0xFF - t.tma))
	if t.OnTimerInterrupt != nil {
		t.OnTimerInterrupt()
	}
}

// increment computes how many times the accumulator (prev, then
// advanced by delta) carried into the bit at position shift, i.e. the
// number of 1->0 transitions of bit shift-1 across the interval.
func increment(prev uint16, delta int, shift uint8) uint8 {
	mask := uint16((1 << shift) - 1)
	cur := (prev & mask) + uint16(delta)
	return uint8(cur >> shift)
}

// Read returns the current value of a timer register.
func (t *Timer) Read(addr uint16) uint8 {
	switch addr {
	case ioreg.DIV:
		return t.div
	case ioreg.TIMA:
		return t.tima
	case ioreg.TMA:
		return t.tma
	case ioreg.TAC:
		return t.tac
	default:
		return 0xFF
	}
}

// Write handles a program write to a timer register. Per invariant (b)
// any write to DIV resets it to zero regardless of the value written.
func (t *Timer) Write(addr uint16, value uint8) {
	switch addr {
	case ioreg.DIV:
		t.div = 0
	case ioreg.TIMA:
		t.tima = value
	case ioreg.TMA:
		t.tma = value
	case ioreg.TAC:
		t.tac = value
	}
}
