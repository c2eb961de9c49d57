package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/valep27/dmgcore/internal/ioreg"
)

func TestJoypad_SelectingDpadReportsPressedDirections(t *testing.T) {
	b := newTestBus()
	b.Set(ioreg.P1, 0b0010_0000) // select d-pad (bit 4 low)
	b.Press(Right)

	p1 := b.Get(ioreg.P1)
	assert.False(t, p1&0x01 != 0, "Right must read as pressed (active low)")
	assert.True(t, p1&0x02 != 0, "Left must still read as released")
}

func TestJoypad_SelectingButtonsReportsPressedButtons(t *testing.T) {
	b := newTestBus()
	b.Set(ioreg.P1, 0b0001_0000) // select buttons (bit 5 low)
	b.Press(A)

	p1 := b.Get(ioreg.P1)
	assert.False(t, p1&0x01 != 0, "A must read as pressed")
}

func TestJoypad_NoGroupSelectedReadsAllReleased(t *testing.T) {
	b := newTestBus()
	b.Set(ioreg.P1, 0b0011_0000) // neither group selected
	b.Press(A)
	b.Press(Up)

	assert.Equal(t, uint8(0x0F), b.Get(ioreg.P1)&0x0F)
}

func TestJoypad_PressReleaseTransitionRaisesInterrupt(t *testing.T) {
	b := newTestBus()
	b.Set(ioreg.P1, 0b0010_0000)

	assert.Zero(t, b.Get(ioreg.IF)&ioreg.Joypad.Bit())

	b.Press(Down)
	assert.NotZero(t, b.Get(ioreg.IF)&ioreg.Joypad.Bit())
}

func TestJoypad_ReleaseClearsPressedBit(t *testing.T) {
	b := newTestBus()
	b.Set(ioreg.P1, 0b0010_0000)

	b.Press(Up)
	b.Release(Up)

	p1 := b.Get(ioreg.P1)
	assert.True(t, p1&0x04 != 0, "Up must read as released again")
}
