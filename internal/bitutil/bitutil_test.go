package bitutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombine(t *testing.T) {
	assert.Equal(t, uint16(0x1234), Combine(0x12, 0x34))
}

func TestLowHigh(t *testing.T) {
	assert.Equal(t, uint8(0x34), Low(0x1234))
	assert.Equal(t, uint8(0x12), High(0x1234))
}

func TestSetClearIsSet(t *testing.T) {
	var v uint8 = 0
	v = Set(3, v)
	assert.True(t, IsSet(3, v))
	v = Clear(3, v)
	assert.False(t, IsSet(3, v))
}

func TestSetTo(t *testing.T) {
	assert.Equal(t, uint8(0x08), SetTo(3, 0, true))
	assert.Equal(t, uint8(0x00), SetTo(3, 0x08, false))
}

func TestExtractBits(t *testing.T) {
	assert.Equal(t, uint8(0b101), ExtractBits(0b11010110, 6, 4))
}

func TestHexFormatting(t *testing.T) {
	assert.Equal(t, "0x0A", HexByte(0x0A))
	assert.Equal(t, "0x1A2B", HexWord(0x1A2B))
}
