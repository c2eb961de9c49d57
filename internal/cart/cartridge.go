// Package cart models the cartridge image and its bank controller.
package cart

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	titleAddress         = 0x134
	titleLength          = 15
	cartridgeTypeAddress = 0x147
	romSizeAddress       = 0x148
	ramSizeAddress       = 0x149
)

// Type identifies which bank controller a cartridge image requires.
type Type uint8

const (
	// TypeNoMBC covers cartridge header bytes 0x00-0x03: plain ROM, no
	// bank switching, optionally with static RAM/battery.
	TypeNoMBC Type = iota
	// TypeMBC3 covers header byte 0x13: MBC3 with battery-backed RAM.
	TypeMBC3
)

// Cartridge holds the raw ROM image plus the cosmetic header fields.
type Cartridge struct {
	Data  []byte
	Title string

	romSizeCode uint8
	ramSizeCode uint8
}

// New parses a cartridge image. It never fails on a malformed header —
// only the bank controller type byte is load-bearing, and an
// unsupported value there is a fatal condition the caller decides how
// to surface (see DetectType).
func New(data []byte) *Cartridge {
	c := &Cartridge{
		Data: data,
	}

	if len(data) > titleAddress+titleLength {
		c.Title = cleanTitle(data[titleAddress : titleAddress+titleLength])
	}
	if len(data) > romSizeAddress {
		c.romSizeCode = data[romSizeAddress]
	}
	if len(data) > ramSizeAddress {
		c.ramSizeCode = data[ramSizeAddress]
	}

	return c
}

// DetectType inspects the cartridge type byte at 0x147 and returns the
// bank controller variant to use, or an error for any value this core
// does not support.
func (c *Cartridge) DetectType() (Type, error) {
	if len(c.Data) <= cartridgeTypeAddress {
		return TypeNoMBC, fmt.Errorf("cartridge image too small to contain a header")
	}

	switch b := c.Data[cartridgeTypeAddress]; {
	case b <= 0x03:
		return TypeNoMBC, nil
	case b == 0x13:
		return TypeMBC3, nil
	default:
		return TypeNoMBC, fmt.Errorf("unsupported cartridge type byte 0x%02X", b)
	}
}

func cleanTitle(raw []byte) string {
	runes := make([]rune, 0, len(raw))
	for _, b := range raw {
		r := rune(b)
		switch {
		case r == 0:
			continue
		case !unicode.IsPrint(r):
			r = '?'
		}
		runes = append(runes, r)
	}

	title := strings.TrimSpace(string(runes))
	if title == "" {
		return "(untitled)"
	}
	return title
}
