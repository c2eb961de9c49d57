package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestALU_AddToASetsHalfCarryAndCarry(t *testing.T) {
	c := &CPU{}
	c.a = 0x0F
	c.addToA(0x01, false)

	assert.Equal(t, uint8(0x10), c.a)
	assert.True(t, c.isSetFlag(flagH))
	assert.False(t, c.isSetFlag(flagC))
}

func TestALU_AddToAWithCarryIncludesIncomingCarry(t *testing.T) {
	c := &CPU{}
	c.a = 0xFF
	c.setFlag(flagC)
	c.addToA(0x00, true)

	assert.Zero(t, c.a)
	assert.True(t, c.isSetFlag(flagZ))
	assert.True(t, c.isSetFlag(flagC))
}

func TestALU_SubFromACompareOnlyLeavesARegisterUnchanged(t *testing.T) {
	c := &CPU{}
	c.a = 0x10
	c.subFromA(0x10, false, true)

	assert.Equal(t, uint8(0x10), c.a)
	assert.True(t, c.isSetFlag(flagZ))
	assert.True(t, c.isSetFlag(flagN))
}

func TestALU_SubFromASetsCarryOnBorrow(t *testing.T) {
	c := &CPU{}
	c.a = 0x00
	c.subFromA(0x01, false, false)

	assert.Equal(t, uint8(0xFF), c.a)
	assert.True(t, c.isSetFlag(flagC))
	assert.True(t, c.isSetFlag(flagH))
}

func TestALU_AndAlwaysSetsHalfCarryAndClearsCarry(t *testing.T) {
	c := &CPU{}
	c.a = 0xFF
	c.setFlag(flagC)
	c.and(0x00)

	assert.True(t, c.isSetFlag(flagZ))
	assert.True(t, c.isSetFlag(flagH))
	assert.False(t, c.isSetFlag(flagC))
}

func TestALU_DAACorrectsAfterBCDSubtraction(t *testing.T) {
	c := &CPU{}
	c.a = 0x42
	c.subFromA(0x15, false, false) // 0x42 - 0x15 = 0x2D in binary, needs BCD correction
	c.daa()

	assert.Equal(t, uint8(0x27), c.a)
}

func TestALU_AddToSPSignedComputesUnsignedByteCarry(t *testing.T) {
	c := &CPU{}
	c.sp = 0x00FF
	result := c.addToSPSigned(1)

	assert.Equal(t, uint16(0x0100), result)
	assert.True(t, c.isSetFlag(flagH))
	assert.True(t, c.isSetFlag(flagC))
	assert.False(t, c.isSetFlag(flagZ))
}

func TestALU_AddToSPSignedHandlesNegativeOffsets(t *testing.T) {
	c := &CPU{}
	c.sp = 0x0100
	result := c.addToSPSigned(-1)

	assert.Equal(t, uint16(0x00FF), result)
}

func TestALU_PushPopStackRoundtrips(t *testing.T) {
	c, _ := newTestCPU()
	c.sp = 0xFFFE
	c.pushStack(0xBEEF)
	v := c.popStack()

	assert.Equal(t, uint16(0xBEEF), v)
	assert.Equal(t, uint16(0xFFFE), c.sp)
}

func TestALU_IncDoesNotAffectCarryFlag(t *testing.T) {
	c := &CPU{}
	c.setFlag(flagC)
	v := uint8(0xFF)
	c.inc(&v)

	assert.Zero(t, v)
	assert.True(t, c.isSetFlag(flagC), "INC must never touch the carry flag")
}
