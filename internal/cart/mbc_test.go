package cart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeROM(size int) []byte {
	rom := make([]byte, size)
	for i := range rom {
		rom[i] = byte(i)
	}
	return rom
}

func TestNoMBC_ReadsRawBytesAndDropsWrites(t *testing.T) {
	rom := makeROM(0x8000)
	mbc := NewNoMBC(rom)

	assert.Equal(t, rom[0x1234], mbc.Get(0x1234))

	mbc.Set(0x1234, 0xFF)
	assert.Equal(t, rom[0x1234], mbc.Get(0x1234), "writes to a no-MBC cartridge must be dropped")
}

func TestMBC3_RomBankSwitchingZeroSubstitutesToOne(t *testing.T) {
	rom := makeROM(0x200000) // 2MiB, 128 banks of 16KiB
	mbc := NewMBC3(rom, "")

	mbc.Set(0x2000, 0x00)
	assert.Equal(t, rom[0x4000], mbc.Get(0x4000), "bank 0 must substitute to bank 1")

	mbc.Set(0x2000, 0x05)
	assert.Equal(t, rom[0x4000*5], mbc.Get(0x4000))

	mbc.Set(0x2000, 0xFF) // top bit is masked off, (0xFF & 0x7F) == 0x7F
	assert.Equal(t, rom[0x4000*0x7F], mbc.Get(0x4000))
}

func TestMBC3_RamBankReadWrite(t *testing.T) {
	rom := makeROM(0x4000)
	mbc := NewMBC3(rom, "")

	mbc.Set(0x0000, 0x0A) // enable external RAM
	mbc.Set(0x4000, 0x02) // select RAM bank 2
	mbc.Set(0xA100, 0x77)

	assert.Equal(t, uint8(0x77), mbc.Get(0xA100))

	mbc.Set(0x4000, 0x00)
	assert.Equal(t, uint8(0), mbc.Get(0xA100), "bank 0 must be independent of bank 2")
}

func TestMBC3_RTCBankReadsAsZero(t *testing.T) {
	mbc := NewMBC3(makeROM(0x4000), "")
	mbc.Set(0x4000, 0x08) // select an RTC register
	assert.Equal(t, uint8(0), mbc.Get(0xA000))
}

func TestMBC3_PersistsAndReloadsSaveFile(t *testing.T) {
	dir := t.TempDir()
	savePath := filepath.Join(dir, "game.sav")

	rom := makeROM(0x4000)
	mbc := NewMBC3(rom, savePath)
	mbc.Set(0x0000, 0x0A)
	mbc.Set(0x4000, 0x01)
	mbc.Set(0xA050, 0x42)

	_, err := os.Stat(savePath)
	require.NoError(t, err, "a write to external RAM must flush the save file")

	reloaded := NewMBC3(rom, savePath)
	reloaded.Set(0x4000, 0x01)
	assert.Equal(t, uint8(0x42), reloaded.Get(0xA050))
}

func TestCartridge_DetectType(t *testing.T) {
	rom := makeROM(0x8000)

	rom[cartridgeTypeAddress] = 0x00
	typ, err := New(rom).DetectType()
	require.NoError(t, err)
	assert.Equal(t, TypeNoMBC, typ)

	rom[cartridgeTypeAddress] = 0x13
	typ, err = New(rom).DetectType()
	require.NoError(t, err)
	assert.Equal(t, TypeMBC3, typ)

	rom[cartridgeTypeAddress] = 0x05
	_, err = New(rom).DetectType()
	assert.Error(t, err)
}

func TestCartridge_TitleIsCleaned(t *testing.T) {
	rom := makeROM(0x8000)
	copy(rom[titleAddress:], []byte("TETRIS\x00\x00\x00\x00\x00\x00\x00\x00\x00"))

	assert.Equal(t, "TETRIS", New(rom).Title)
}
