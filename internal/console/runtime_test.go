package console

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valep27/dmgcore/internal/bus"
)

func blankROM() []byte {
	rom := make([]byte, 0x8000)
	// NOP forever from 0x0100 onward: 0x00 is already the zero value.
	return rom
}

func TestRuntime_NewWithoutBootROMStartsAtPostBootState(t *testing.T) {
	rt, err := New(blankROM(), nil, "")
	require.NoError(t, err)

	assert.Equal(t, uint16(0x0100), rt.CPU.PC())
}

func TestRuntime_StepAdvancesPastInstructions(t *testing.T) {
	rt, err := New(blankROM(), nil, "")
	require.NoError(t, err)

	startPC := rt.CPU.PC()
	rt.Step(time.Millisecond)

	assert.Greater(t, rt.CPU.PC(), startPC)
}

func TestRuntime_SubInstructionBudgetStillMakesProgressAcrossSteps(t *testing.T) {
	rt, err := New(blankROM(), nil, "")
	require.NoError(t, err)

	startPC := rt.CPU.PC()
	for i := 0; i < 100; i++ {
		rt.Step(500 * time.Nanosecond) // budget (~2 dots) smaller than one NOP's 4 dots per call
	}

	assert.Greater(t, rt.CPU.PC(), startPC, "negative carryover must not stall progress forever")
}

func TestRuntime_JoypadPressIsObservableOnBus(t *testing.T) {
	rt, err := New(blankROM(), nil, "")
	require.NoError(t, err)

	rt.Bus.Set(0xFF00, 0b0010_0000) // select d-pad
	rt.Press(bus.Right)

	assert.False(t, rt.Bus.Get(0xFF00)&0x01 != 0)
}

func TestRuntime_DrainSamplesZeroFillsWithNoAudioActivity(t *testing.T) {
	rt, err := New(blankROM(), nil, "")
	require.NoError(t, err)

	samples := rt.DrainSamples(16)
	assert.Len(t, samples, 2*16)
}
