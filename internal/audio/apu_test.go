package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/valep27/dmgcore/internal/ioreg"
)

const dmgCPUFrequency = 4194304

func TestAPU_PowerControlMasksRegisterReads(t *testing.T) {
	apu := New(dmgCPUFrequency)

	apu.WriteRegister(ioreg.NR52, 0x80) // power on first, writes are dropped while off
	apu.WriteRegister(ioreg.NR10, 0x12)
	apu.WriteRegister(ioreg.NR11, 0x34)
	assert.Equal(t, uint8((0x12&0x7F)|0x80), apu.ReadRegister(ioreg.NR10))
	assert.Equal(t, uint8((0x34&0xC0)|0x3F), apu.ReadRegister(ioreg.NR11))

	apu.WriteRegister(ioreg.NR52, 0x00)

	assert.Equal(t, uint8(0x80), apu.ReadRegister(ioreg.NR10))
	assert.Equal(t, uint8(0x3F), apu.ReadRegister(ioreg.NR11))
	assert.Equal(t, uint8(0x70), apu.ReadRegister(ioreg.NR52))
	assert.False(t, apu.Enabled())
}

func TestAPU_FrameSequencerAdvancesEvery8192Cycles(t *testing.T) {
	apu := New(dmgCPUFrequency)
	apu.WriteRegister(ioreg.NR52, 0x80)

	initial := apu.frameCounter
	apu.Tick(8191)
	assert.Equal(t, initial, apu.frameCounter)

	apu.Tick(1)
	assert.Equal(t, (initial+1)&7, apu.frameCounter)

	for i := 0; i < 7; i++ {
		apu.Tick(8192)
	}
	assert.Equal(t, initial, apu.frameCounter, "sequencer must wrap after 8 steps")
}

func TestAPU_GeneratesNonZeroSamplesForAnActiveChannel(t *testing.T) {
	apu := New(dmgCPUFrequency)

	apu.WriteRegister(ioreg.NR52, 0x80)
	apu.WriteRegister(ioreg.NR51, 0xFF) // pan everything to both sides
	apu.WriteRegister(ioreg.NR50, 0x77)
	apu.WriteRegister(ioreg.NR12, 0xF0) // max initial volume, no envelope
	apu.WriteRegister(ioreg.NR11, 0x80)
	apu.WriteRegister(ioreg.NR13, 0x00)
	apu.WriteRegister(ioreg.NR14, 0x87) // trigger

	for i := 0; i < 200; i++ {
		apu.Tick(95)
	}

	samples := apu.GetSamples(200)

	nonZero := false
	for _, s := range samples {
		if s != 0 {
			nonZero = true
			break
		}
	}
	assert.True(t, nonZero, "an active channel with nonzero volume must produce audible samples")
}

func TestAPU_WaveRAMReadWriteRoundtrips(t *testing.T) {
	apu := New(dmgCPUFrequency)
	apu.WriteRegister(ioreg.NR52, 0x80)

	pattern := []uint8{0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF}
	for i, v := range pattern {
		apu.WriteRegister(ioreg.WaveRAMStart+uint16(i), v)
	}
	for i, v := range pattern {
		assert.Equal(t, v, apu.ReadRegister(ioreg.WaveRAMStart+uint16(i)))
	}
}

func TestAPU_WritesDroppedWhilePoweredOff(t *testing.T) {
	apu := New(dmgCPUFrequency)
	apu.WriteRegister(ioreg.NR52, 0x00)

	apu.WriteRegister(ioreg.NR11, 0xFF)
	assert.Equal(t, uint8(0x3F), apu.ReadRegister(ioreg.NR11), "writes must be ignored while powered off")
}

func TestAPU_GetSamplesZeroFillsOnUnderrun(t *testing.T) {
	apu := New(dmgCPUFrequency)
	samples := apu.GetSamples(10)
	assert.Len(t, samples, 20)
	for _, s := range samples {
		assert.Zero(t, s)
	}
}
