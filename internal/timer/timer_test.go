package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/valep27/dmgcore/internal/ioreg"
)

func TestTimer_TIMAOverflowReloadsFromTMAAndFiresInterrupt(t *testing.T) {
	tm := New()
	fired := false
	tm.OnTimerInterrupt = func() { fired = true }

	tm.Write(ioreg.TAC, 0b111) // enabled, speed 3: shift 8, 256-dot period
	tm.Write(ioreg.TIMA, 0xFF)
	tm.Write(ioreg.TMA, 0x42)

	tm.Tick(256) // exactly one period: TIMA overflows exactly once

	assert.Equal(t, uint8(0x42), tm.Read(ioreg.TIMA))
	assert.True(t, fired, "TIMA overflow must raise the timer interrupt")
}

func TestTimer_DisabledTACDoesNotAdvanceTIMA(t *testing.T) {
	tm := New()
	tm.Write(ioreg.TAC, 0b011) // bit 2 clear: timer disabled
	tm.Write(ioreg.TIMA, 0x10)

	tm.Tick(10000)

	assert.Equal(t, uint8(0x10), tm.Read(ioreg.TIMA))
}

func TestTimer_WriteToDIVAlwaysResetsToZeroRegardlessOfValue(t *testing.T) {
	tm := New()
	tm.Tick(300)
	assert.NotEqual(t, uint8(0), tm.Read(ioreg.DIV))

	tm.Write(ioreg.DIV, 0x99)
	assert.Equal(t, uint8(0), tm.Read(ioreg.DIV))
}

func TestTimer_DIVIncrementsAtExpectedRate(t *testing.T) {
	tm := New()
	// DIV's visible byte increments once every 256 dots (it is driven by
	// bit 8 of the internal accumulator).
	tm.Tick(256)
	assert.Equal(t, uint8(1), tm.Read(ioreg.DIV))

	tm.Tick(256 * 9)
	assert.Equal(t, uint8(10), tm.Read(ioreg.DIV))
}

func TestTimer_DeltaDivCountsFrameSequencerSteps(t *testing.T) {
	tm := New()
	tm.Tick(8192) // 8192 dots = 32 DIV increments -> one 512Hz step each time bit4 flips
	assert.GreaterOrEqual(t, tm.DeltaDiv, uint8(1))
}

func TestTimer_ReadUnknownAddressReturnsAllOnes(t *testing.T) {
	tm := New()
	assert.Equal(t, uint8(0xFF), tm.Read(0x1234))
}
