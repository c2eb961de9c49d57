package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valep27/dmgcore/internal/bus"
	"github.com/valep27/dmgcore/internal/cart"
	"github.com/valep27/dmgcore/internal/ioreg"
)

func newTestPPU() (*PPU, *bus.Bus) {
	rom := make([]byte, 0x8000)
	b := bus.New(cart.NewNoMBC(rom))
	b.Set(ioreg.LCDC, 0x93) // LCD+BG+OBJ enabled, tile data at 0x8000, BG map at 0x9800
	b.Set(ioreg.BGP, 0xE4)  // identity palette: 11 10 01 00
	p := New(b)
	p.setMode(ModeOAMScan)
	p.line = 0
	p.busDev.Set(ioreg.LY, 0)
	return p, b
}

func TestPPU_ModeCyclesOAMPixelTransferHBlankPerScanline(t *testing.T) {
	p, _ := newTestPPU()

	p.Tick(oamScanDots)
	assert.Equal(t, ModePixelTransfer, p.mode)

	p.Tick(pixelTransferDots)
	assert.Equal(t, ModeHBlank, p.mode)

	p.Tick(hblankDots)
	assert.Equal(t, ModeOAMScan, p.mode)
	assert.Equal(t, 1, p.line)
}

func TestPPU_EntersVBlankAfter144LinesAndRaisesInterrupt(t *testing.T) {
	p, b := newTestPPU()

	for line := 0; line < 144; line++ {
		p.Tick(lineDots)
	}

	assert.Equal(t, ModeVBlank, p.mode)
	assert.Equal(t, 144, p.line)
	assert.NotZero(t, b.Get(ioreg.IF)&ioreg.VBlank.Bit())
}

func TestPPU_LYWrapsAfterTenVBlankLines(t *testing.T) {
	p, _ := newTestPPU()

	for line := 0; line < 144+10; line++ {
		p.Tick(lineDots)
	}

	assert.Equal(t, ModeOAMScan, p.mode)
	assert.Equal(t, 0, p.line)
}

func TestPPU_LYCCoincidenceRaisesSTATInterruptWhenArmed(t *testing.T) {
	p, b := newTestPPU()
	b.Set(ioreg.LYC, 1)
	b.Set(ioreg.STAT, 0x40) // arm the LYC interrupt source

	p.Tick(oamScanDots)
	p.Tick(pixelTransferDots)
	p.Tick(hblankDots) // line -> 1, matches LYC

	assert.NotZero(t, b.Get(ioreg.IF)&ioreg.LCDStat.Bit())
	assert.NotZero(t, b.Get(ioreg.STAT)&0x04)
}

func TestPPU_BackgroundTileRendersThroughBGP(t *testing.T) {
	p, b := newTestPPU()
	// tile 0 at 0x8000: every row's low byte all 1s, high byte 0 -> color id 1
	for row := 0; row < 8; row++ {
		b.Set(0x8000+uint16(row*2), 0xFF)
		b.Set(0x8000+uint16(row*2)+1, 0x00)
	}
	// BG tile map entry (0,0) -> tile 0 (already zero-filled)

	p.Tick(oamScanDots)
	p.Tick(pixelTransferDots)

	require.Equal(t, Shade(1), p.framebuffer.At(0, 0))
}

func TestPPU_SpriteHiddenBehindNonZeroBackgroundWhenBGPriorityFlagSet(t *testing.T) {
	p, b := newTestPPU()
	// background tile 0: color id 1 everywhere, so bgColorID is non-zero.
	for row := 0; row < 8; row++ {
		b.Set(0x8000+uint16(row*2), 0xFF)
		b.Set(0x8000+uint16(row*2)+1, 0x00)
	}
	// sprite tile 1: color id 1 everywhere too.
	for row := 0; row < 8; row++ {
		b.Set(0x8010+uint16(row*2), 0xFF)
		b.Set(0x8010+uint16(row*2)+1, 0x00)
	}
	b.Set(ioreg.OBP0, 0xE4)
	// OAM entry 0: Y=16 (screen row 0), X=8 (screen col 0), tile 1, bit7 set (BG priority).
	b.Set(ioreg.OAMStart+0, 16)
	b.Set(ioreg.OAMStart+1, 8)
	b.Set(ioreg.OAMStart+2, 1)
	b.Set(ioreg.OAMStart+3, 0x80)

	p.Tick(oamScanDots)
	p.Tick(pixelTransferDots)

	// background color id 1 wins over the sprite: pixel stays the BG's shade.
	assert.Equal(t, Shade(1), p.framebuffer.At(0, 0))
}

func TestPPU_SpriteDrawsOverBackgroundWhenBGPriorityFlagClear(t *testing.T) {
	p, b := newTestPPU()
	for row := 0; row < 8; row++ {
		b.Set(0x8000+uint16(row*2), 0xFF)
		b.Set(0x8000+uint16(row*2)+1, 0x00)
	}
	for row := 0; row < 8; row++ {
		b.Set(0x8010+uint16(row*2), 0x00)
		b.Set(0x8010+uint16(row*2)+1, 0xFF) // color id 2
	}
	b.Set(ioreg.OBP0, 0xE4)
	b.Set(ioreg.OAMStart+0, 16)
	b.Set(ioreg.OAMStart+1, 8)
	b.Set(ioreg.OAMStart+2, 1)
	b.Set(ioreg.OAMStart+3, 0x00) // bit 7 clear: sprite above BG

	p.Tick(oamScanDots)
	p.Tick(pixelTransferDots)

	assert.Equal(t, Shade(2), p.framebuffer.At(0, 0))
}

func TestPPU_SpriteWithLowerXWinsOverlap(t *testing.T) {
	s := spritePriority{}
	s.clear()

	assert.True(t, s.claim(10, 0, 5))  // sprite 0 at X=5 claims pixel 10
	assert.False(t, s.claim(10, 1, 10)) // sprite 1 at X=10 loses: higher X
	assert.Equal(t, 0, s.ownerOf(10))
}

func TestPPU_SpriteTieBreaksOnLowerOAMIndex(t *testing.T) {
	s := spritePriority{}
	s.clear()

	s.claim(12, 3, 10)
	assert.True(t, s.claim(12, 1, 10)) // same X, lower OAM index wins
	assert.Equal(t, 1, s.ownerOf(12))
}
