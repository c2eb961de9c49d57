// Package video implements the DMG picture processing unit: the
// dot-based mode state machine, the background/window/sprite
// scanline renderer, and the STAT/LYC interrupt logic.
package video

import (
	"github.com/valep27/dmgcore/internal/bitutil"
	"github.com/valep27/dmgcore/internal/bus"
	"github.com/valep27/dmgcore/internal/ioreg"
)

// Mode is the PPU's current rendering stage; it is mirrored into
// STAT bits 1-0.
type Mode uint8

const (
	ModeHBlank Mode = 0
	ModeVBlank Mode = 1
	ModeOAMScan Mode = 2
	ModePixelTransfer Mode = 3
)

const (
	oamScanDots       = 80
	pixelTransferDots = 172
	lineDots          = 456
	hblankDots        = lineDots - oamScanDots - pixelTransferDots
	lastLine          = 153
	vblankStartLine   = 144
)

// PPU walks the LCD state machine one Tick at a time, reading its
// register and VRAM/OAM state straight out of the shared bus and
// writing rendered scanlines into its own framebuffer.
type PPU struct {
	busDev *bus.Bus

	framebuffer *FrameBuffer
	bgColorID   [Width]uint8
	sprites     spritePriority

	mode       Mode
	line       int
	dots       int
	windowLine int
	drawnLine  bool
}

// New creates a PPU attached to b, starting in VBlank at line 144 --
// the state the boot ROM leaves the hardware in just before handing
// off to the cartridge.
func New(b *bus.Bus) *PPU {
	return &PPU{
		busDev:      b,
		framebuffer: NewFrameBuffer(),
		mode:        ModeVBlank,
		line:        vblankStartLine,
	}
}

// FrameBuffer returns the last fully-rendered frame.
func (p *PPU) FrameBuffer() *FrameBuffer { return p.framebuffer }

// Tick advances the PPU by n dots, driving the mode state machine and
// firing VBlank/STAT interrupts at mode transitions.
func (p *PPU) Tick(n int) {
	if !bitutil.IsSet(lcdcEnable, p.busDev.Get(ioreg.LCDC)) {
		return
	}

	p.dots += n
	mode, line := p.mode, p.line

	switch p.mode {
	case ModeOAMScan:
		if p.dots >= oamScanDots {
			p.dots -= oamScanDots
			p.drawnLine = false
			p.setMode(ModePixelTransfer)
		}
	case ModePixelTransfer:
		if !p.drawnLine {
			p.drawScanline()
			p.drawnLine = true
		}
		if p.dots >= pixelTransferDots {
			p.dots -= pixelTransferDots
			p.setMode(ModeHBlank)
			if p.statInterruptArmed(statHBlankInterrupt) {
				p.busDev.RequestInterrupt(ioreg.LCDStat)
			}
		}
	case ModeHBlank:
		if p.dots >= hblankDots {
			p.dots -= hblankDots
			p.setLY(p.line + 1)

			if p.line == vblankStartLine {
				p.setMode(ModeVBlank)
				p.windowLine = 0
				p.busDev.RequestInterrupt(ioreg.VBlank)
				if p.statInterruptArmed(statVBlankInterrupt) {
					p.busDev.RequestInterrupt(ioreg.LCDStat)
				}
			} else {
				p.setMode(ModeOAMScan)
				if p.statInterruptArmed(statOAMInterrupt) {
					p.busDev.RequestInterrupt(ioreg.LCDStat)
				}
			}
		}
	case ModeVBlank:
		if p.dots >= lineDots {
			p.dots -= lineDots

			if p.line < lastLine {
				p.setLY(p.line + 1)
				break
			}
			p.setLY(0)
			p.setMode(ModeOAMScan)
			if p.statInterruptArmed(statOAMInterrupt) {
				p.busDev.RequestInterrupt(ioreg.LCDStat)
			}
		}
	}

	// A single call can cover several mode transitions; keep stepping
	// while the banked dots still complete the current stage.
	if p.mode != mode || p.line != line {
		p.Tick(0)
	}
}

func (p *PPU) setMode(m Mode) {
	p.mode = m
	stat := p.busDev.Get(ioreg.STAT)
	p.busDev.Set(ioreg.STAT, (stat&0xFC)|uint8(m))
}

func (p *PPU) setLY(line int) {
	p.line = line
	p.busDev.Set(ioreg.LY, uint8(line))

	ly := uint8(line)
	lyc := p.busDev.Get(ioreg.LYC)
	stat := p.busDev.Get(ioreg.STAT)
	if ly == lyc {
		stat = bitutil.Set(statCoincidence, stat)
		if bitutil.IsSet(statLYCInterrupt, stat) {
			p.busDev.RequestInterrupt(ioreg.LCDStat)
		}
	} else {
		stat = bitutil.Clear(statCoincidence, stat)
	}
	p.busDev.Set(ioreg.STAT, stat)
}

func (p *PPU) statInterruptArmed(bit uint8) bool {
	return bitutil.IsSet(bit, p.busDev.Get(ioreg.STAT))
}

func (p *PPU) palette(register uint16, colorID uint8) Shade {
	value := p.busDev.Get(register)
	return Shade((value >> (colorID * 2)) & 0x03)
}
