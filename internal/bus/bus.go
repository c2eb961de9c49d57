// Package bus implements the DMG's unified 16-bit address space and
// routes each access to the component that owns that region: the
// cartridge controller, plain RAM, or one of the timer/APU register
// blocks.
package bus

import (
	"fmt"
	"log/slog"

	"github.com/valep27/dmgcore/internal/audio"
	"github.com/valep27/dmgcore/internal/bitutil"
	"github.com/valep27/dmgcore/internal/cart"
	"github.com/valep27/dmgcore/internal/ioreg"
	"github.com/valep27/dmgcore/internal/timer"
)

type region uint8

const (
	regionROM region = iota
	regionVRAM
	regionExtRAM
	regionWRAM
	regionEcho
	regionOAM
	regionIO
	regionHRAM
)

// Bus is the DMG's memory-mapped address space. CPU and PPU each hold a
// *Bus; the timer and APU are attached to it instead, and Bus keeps a
// pointer to each of those two only to route their register accesses.
// Bus holds no pointer to the CPU or PPU.
type Bus struct {
	cart cart.Controller

	bootROM     []byte
	bootEnabled bool

	memory    []byte
	regionMap [256]region

	timer  *timer.Timer
	apu    *audio.APU
	serial *Serial

	joypadButtons uint8
	joypadDpad    uint8
}

// New creates a Bus wired to the given cartridge controller. Timer and
// APU must be attached separately with AttachTimer/AttachAPU once they
// exist, since Bus only ever holds a routing reference to them.
func New(controller cart.Controller) *Bus {
	b := &Bus{
		cart:          controller,
		memory:        make([]byte, 0x10000),
		joypadButtons: 0x0F,
		joypadDpad:    0x0F,
		serial:        newSerial(),
	}
	b.serial.onComplete = func() { b.RequestInterrupt(ioreg.Serial) }
	initRegionMap(b)
	return b
}

func initRegionMap(b *Bus) {
	for i := 0x00; i <= 0x7F; i++ {
		b.regionMap[i] = regionROM
	}
	for i := 0x80; i <= 0x9F; i++ {
		b.regionMap[i] = regionVRAM
	}
	for i := 0xA0; i <= 0xBF; i++ {
		b.regionMap[i] = regionExtRAM
	}
	for i := 0xC0; i <= 0xDF; i++ {
		b.regionMap[i] = regionWRAM
	}
	for i := 0xE0; i <= 0xFD; i++ {
		b.regionMap[i] = regionEcho
	}
	b.regionMap[0xFE] = regionOAM
	b.regionMap[0xFF] = regionIO
}

// AttachTimer wires the timer's FF04-FF07 registers into the bus and
// routes its overflow interrupt through RequestInterrupt.
func (b *Bus) AttachTimer(t *timer.Timer) {
	b.timer = t
	t.OnTimerInterrupt = func() { b.RequestInterrupt(ioreg.Timer) }
}

// AttachAPU wires the APU's FF10-FF3F registers and wave RAM into the
// bus.
func (b *Bus) AttachAPU(a *audio.APU) {
	b.apu = a
}

// LoadBootROM installs a 256-byte boot ROM overlay at 0000-00FF. It
// stays mapped until the guest writes to FF50 (BootROMDisable).
func (b *Bus) LoadBootROM(data []byte) {
	b.bootROM = data
	b.bootEnabled = len(data) > 0
}

// Tick advances the serial stub by n dots; the timer and APU are driven
// directly by console.Runtime since they are ticked with the same dot
// count but are not otherwise coupled to bus state.
func (b *Bus) Tick(n int) {
	b.serial.Tick(n)
}

// RequestInterrupt sets the given interrupt's bit in IF.
func (b *Bus) RequestInterrupt(i ioreg.Interrupt) {
	flags := b.Get(ioreg.IF)
	b.Set(ioreg.IF, bitutil.Set(uint8(i), flags))
}

// Get reads a byte from the address space.
func (b *Bus) Get(address uint16) uint8 {
	switch b.regionMap[address>>8] {
	case regionROM:
		if b.bootEnabled && address < uint16(len(b.bootROM)) && address < 0x0100 {
			return b.bootROM[address]
		}
		if b.cart == nil {
			return 0xFF
		}
		return b.cart.Get(address)
	case regionVRAM, regionWRAM:
		return b.memory[address]
	case regionExtRAM:
		if b.cart == nil {
			return 0xFF
		}
		return b.cart.Get(address)
	case regionEcho:
		return b.memory[address-0x2000]
	case regionOAM:
		return b.memory[address]
	case regionIO:
		return b.getIO(address)
	default:
		panic(fmt.Sprintf("bus: read from unmapped address 0x%04X", address))
	}
}

func (b *Bus) getIO(address uint16) uint8 {
	switch {
	case address == ioreg.P1:
		return b.readJoypad()
	case address == ioreg.SB || address == ioreg.SC:
		return b.serial.Read(address)
	case address == ioreg.DIV || address == ioreg.TIMA || address == ioreg.TMA || address == ioreg.TAC:
		if b.timer == nil {
			return 0xFF
		}
		return b.timer.Read(address)
	case address >= ioreg.NR10 && address <= ioreg.WaveRAMEnd:
		if b.apu == nil {
			return 0xFF
		}
		return b.apu.ReadRegister(address)
	case address == ioreg.IF:
		// The upper three bits are unused and always read as 1.
		return b.memory[address] | 0xE0
	default:
		return b.memory[address]
	}
}

// Set writes a byte to the address space.
func (b *Bus) Set(address uint16, value uint8) {
	switch b.regionMap[address>>8] {
	case regionROM:
		if b.cart == nil {
			slog.Warn("write to ROM with no cartridge loaded", "addr", bitutil.HexWord(address))
			return
		}
		b.cart.Set(address, value)
	case regionVRAM, regionWRAM:
		b.memory[address] = value
	case regionExtRAM:
		if b.cart == nil {
			slog.Warn("write to external RAM with no cartridge loaded", "addr", bitutil.HexWord(address))
			return
		}
		b.cart.Set(address, value)
	case regionEcho:
		b.memory[address-0x2000] = value
	case regionOAM:
		b.memory[address] = value
	case regionIO:
		b.setIO(address, value)
	default:
		panic(fmt.Sprintf("bus: write to unmapped address 0x%04X", address))
	}
}

func (b *Bus) setIO(address uint16, value uint8) {
	switch {
	case address == ioreg.P1:
		b.writeJoypad(value)
	case address == ioreg.SB || address == ioreg.SC:
		b.serial.Write(address, value)
	case address == ioreg.DIV || address == ioreg.TIMA || address == ioreg.TMA || address == ioreg.TAC:
		if b.timer != nil {
			b.timer.Write(address, value)
		}
	case address >= ioreg.NR10 && address <= ioreg.WaveRAMEnd:
		if b.apu != nil {
			b.apu.WriteRegister(address, value)
		}
	case address == ioreg.IF:
		b.memory[address] = value | 0xE0
	case address == ioreg.DMA:
		b.startDMA(value)
		b.memory[address] = value
	case address == ioreg.BootROMDisable:
		if value&1 != 0 {
			b.bootEnabled = false
		}
	default:
		b.memory[address] = value
	}
}

// startDMA copies 160 bytes from (highByte << 8) into OAM. Real
// hardware spreads this over 160 machine cycles during which the CPU
// can only access HRAM; this core performs it instantaneously, which
// is transparent to any guest that waits for the transfer as intended.
func (b *Bus) startDMA(highByte uint8) {
	source := uint16(highByte) << 8
	for i := uint16(0); i < 160; i++ {
		b.memory[ioreg.OAMStart+i] = b.Get(source + i)
	}
}
