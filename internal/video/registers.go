package video

// LCDC (FF40) bit positions.
const (
	lcdcEnable          uint8 = 7
	lcdcWindowTileMap   uint8 = 6
	lcdcWindowEnable    uint8 = 5
	lcdcTileDataSelect  uint8 = 4
	lcdcBGTileMap       uint8 = 3
	lcdcObjSize         uint8 = 2
	lcdcObjEnable       uint8 = 1
	lcdcBGEnable        uint8 = 0
)

// STAT (FF41) bit positions.
const (
	statLYCInterrupt   uint8 = 6
	statOAMInterrupt   uint8 = 5
	statVBlankInterrupt uint8 = 4
	statHBlankInterrupt uint8 = 3
	statCoincidence     uint8 = 2
)
