package video

import (
	"github.com/valep27/dmgcore/internal/bitutil"
	"github.com/valep27/dmgcore/internal/ioreg"
)

// drawScanline renders the current line (background, then window,
// then sprites, each possibly overwriting the last) into the
// framebuffer and the per-pixel bgColorID priority buffer.
func (p *PPU) drawScanline() {
	p.drawBackground()
	p.drawWindow()
	p.drawSprites()
}

func (p *PPU) tileMapBase(useAlternate bool) uint16 {
	if useAlternate {
		return ioreg.TileMap1
	}
	return ioreg.TileMap0
}

// tileAddress resolves a background/window tile index to the address
// of its pixel data, honoring LCDC bit 4's signed/unsigned addressing
// modes (the "0x8800 method").
func (p *PPU) tileAddress(tileIndex uint8, rowInTile int) uint16 {
	lcdc := p.busDev.Get(ioreg.LCDC)
	rowOffset := uint16(rowInTile * 2)

	if bitutil.IsSet(lcdcTileDataSelect, lcdc) {
		return ioreg.TileData0 + uint16(tileIndex)*16 + rowOffset
	}
	signed := int8(tileIndex)
	return uint16(int32(ioreg.TileData2) + int32(signed)*16 + int32(rowOffset))
}

func tileRowColorID(low, high uint8, column int) uint8 {
	bitIndex := uint8(7 - column)
	id := uint8(0)
	if bitutil.IsSet(bitIndex, low) {
		id |= 1
	}
	if bitutil.IsSet(bitIndex, high) {
		id |= 2
	}
	return id
}

func (p *PPU) drawBackground() {
	lcdc := p.busDev.Get(ioreg.LCDC)
	if !bitutil.IsSet(lcdcBGEnable, lcdc) {
		shade := p.palette(ioreg.BGP, 0)
		for x := 0; x < Width; x++ {
			p.framebuffer.set(x, p.line, shade)
			p.bgColorID[x] = 0
		}
		return
	}

	scx := p.busDev.Get(ioreg.SCX)
	scy := p.busDev.Get(ioreg.SCY)
	mapBase := p.tileMapBase(bitutil.IsSet(lcdcBGTileMap, lcdc))

	mapY := (p.line + int(scy)) & 0xFF
	tileRow := (mapY / 8) * 32
	rowInTile := mapY % 8

	for x := 0; x < Width; x++ {
		mapX := (x + int(scx)) & 0xFF
		tileCol := mapX / 8

		tileIndex := p.busDev.Get(mapBase + uint16(tileRow+tileCol))
		addr := p.tileAddress(tileIndex, rowInTile)
		low, high := p.busDev.Get(addr), p.busDev.Get(addr+1)

		colorID := tileRowColorID(low, high, mapX%8)
		p.bgColorID[x] = colorID
		p.framebuffer.set(x, p.line, p.palette(ioreg.BGP, colorID))
	}
}

func (p *PPU) drawWindow() {
	lcdc := p.busDev.Get(ioreg.LCDC)
	if !bitutil.IsSet(lcdcWindowEnable, lcdc) {
		return
	}

	wy := p.busDev.Get(ioreg.WY)
	if int(wy) > p.line {
		return
	}
	wx := int(p.busDev.Get(ioreg.WX)) - 7
	if wx >= Width {
		return
	}

	mapBase := p.tileMapBase(bitutil.IsSet(lcdcWindowTileMap, lcdc))
	tileRow := (p.windowLine / 8) * 32
	rowInTile := p.windowLine % 8

	for x := 0; x < Width; x++ {
		if x < wx {
			continue
		}
		windowX := x - wx
		tileCol := windowX / 8

		tileIndex := p.busDev.Get(mapBase + uint16(tileRow+tileCol))
		addr := p.tileAddress(tileIndex, rowInTile)
		low, high := p.busDev.Get(addr), p.busDev.Get(addr+1)

		colorID := tileRowColorID(low, high, windowX%8)
		p.bgColorID[x] = colorID
		p.framebuffer.set(x, p.line, p.palette(ioreg.BGP, colorID))
	}
	p.windowLine++
}

func (p *PPU) drawSprites() {
	lcdc := p.busDev.Get(ioreg.LCDC)
	if !bitutil.IsSet(lcdcObjEnable, lcdc) {
		return
	}

	height := 8
	if bitutil.IsSet(lcdcObjSize, lcdc) {
		height = 16
	}

	visible := p.scanSprites(height)

	p.sprites.clear()
	for _, sprite := range visible {
		x := int(p.busDev.Get(ioreg.OAMStart+uint16(sprite*4+1))) - 8
		for col := 0; col < 8; col++ {
			p.sprites.claim(x+col, sprite, x)
		}
	}

	for _, sprite := range visible {
		p.drawSprite(sprite, height)
	}
}

// scanSprites replicates OAM selection priority: sprites are
// considered in OAM order and the first ten whose Y range covers the
// current line are kept, regardless of X.
func (p *PPU) scanSprites(height int) []int {
	var visible []int
	for i := 0; i < 40; i++ {
		y := int(p.busDev.Get(ioreg.OAMStart+uint16(i*4))) - 16
		if y > p.line || y+height <= p.line {
			continue
		}
		visible = append(visible, i)
		if len(visible) >= 10 {
			break
		}
	}
	return visible
}

func (p *PPU) drawSprite(sprite, height int) {
	base := ioreg.OAMStart + uint16(sprite*4)
	y := int(p.busDev.Get(base)) - 16
	x := int(p.busDev.Get(base+1)) - 8
	tile := p.busDev.Get(base + 2)
	flags := p.busDev.Get(base + 3)

	paletteReg := uint16(ioreg.OBP0)
	if bitutil.IsSet(4, flags) {
		paletteReg = ioreg.OBP1
	}
	flipX := bitutil.IsSet(5, flags)
	flipY := bitutil.IsSet(6, flags)
	bgHasPriority := bitutil.IsSet(7, flags)

	row := p.line - y
	if flipY {
		row = height - 1 - row
	}
	if height == 16 {
		tile &^= 1
	}

	addr := ioreg.TileData0 + uint16(tile)*16 + uint16(row*2)
	low, high := p.busDev.Get(addr), p.busDev.Get(addr+1)

	for col := 0; col < 8; col++ {
		screenX := x + col
		if p.sprites.ownerOf(screenX) != sprite {
			continue
		}

		column := col
		if flipX {
			column = 7 - col
		}
		colorID := tileRowColorID(low, high, column)
		if colorID == 0 {
			continue
		}
		if bgHasPriority && p.bgColorID[screenX] != 0 {
			continue
		}

		p.framebuffer.set(screenX, p.line, p.palette(paletteReg, colorID))
	}
}
