package bus

import (
	"github.com/valep27/dmgcore/internal/bitutil"
	"github.com/valep27/dmgcore/internal/ioreg"
)

// Button identifies one of the eight physical inputs.
type Button uint8

const (
	Right Button = iota
	Left
	Up
	Down
	A
	B
	Select
	Start
)

// Press marks a button as held. Buttons are active-low in the joypad
// register; pressing a button that was released raises the joypad
// interrupt, whichever group P1 currently selects, so input can wake
// the CPU from HALT. Release never raises it.
func (b *Bus) Press(button Button) {
	prevButtons, prevDpad := b.joypadButtons, b.joypadDpad

	switch button {
	case Right:
		b.joypadDpad = bitutil.Clear(0, b.joypadDpad)
	case Left:
		b.joypadDpad = bitutil.Clear(1, b.joypadDpad)
	case Up:
		b.joypadDpad = bitutil.Clear(2, b.joypadDpad)
	case Down:
		b.joypadDpad = bitutil.Clear(3, b.joypadDpad)
	case A:
		b.joypadButtons = bitutil.Clear(0, b.joypadButtons)
	case B:
		b.joypadButtons = bitutil.Clear(1, b.joypadButtons)
	case Select:
		b.joypadButtons = bitutil.Clear(2, b.joypadButtons)
	case Start:
		b.joypadButtons = bitutil.Clear(3, b.joypadButtons)
	}

	if (prevButtons & ^b.joypadButtons)|(prevDpad & ^b.joypadDpad) != 0 {
		b.RequestInterrupt(ioreg.Joypad)
	}
}

// Release marks a button as no longer held.
func (b *Bus) Release(button Button) {
	switch button {
	case Right:
		b.joypadDpad = bitutil.Set(0, b.joypadDpad)
	case Left:
		b.joypadDpad = bitutil.Set(1, b.joypadDpad)
	case Up:
		b.joypadDpad = bitutil.Set(2, b.joypadDpad)
	case Down:
		b.joypadDpad = bitutil.Set(3, b.joypadDpad)
	case A:
		b.joypadButtons = bitutil.Set(0, b.joypadButtons)
	case B:
		b.joypadButtons = bitutil.Set(1, b.joypadButtons)
	case Select:
		b.joypadButtons = bitutil.Set(2, b.joypadButtons)
	case Start:
		b.joypadButtons = bitutil.Set(3, b.joypadButtons)
	}
}

// readJoypad composes P1 from the current selection bits (stored raw in
// memory) and whichever button group(s) they select.
func (b *Bus) readJoypad() uint8 {
	p1 := b.memory[ioreg.P1]
	result := uint8(0b1100_0000) | (p1 & 0b0011_0000)

	selectDpad := !bitutil.IsSet(4, p1)
	selectButtons := !bitutil.IsSet(5, p1)

	switch {
	case selectButtons && !selectDpad:
		result |= b.joypadButtons & 0x0F
	case selectDpad && !selectButtons:
		result |= b.joypadDpad & 0x0F
	case selectButtons && selectDpad:
		result |= b.joypadButtons & b.joypadDpad & 0x0F
	default:
		result |= 0x0F
	}

	return result
}

func (b *Bus) writeJoypad(value uint8) {
	b.memory[ioreg.P1] = value & 0b0011_0000
}
