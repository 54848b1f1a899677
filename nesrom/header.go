// package nesrom implements support for the NES (iNES, NES2) ROM
// format. https://www.nesdev.org/wiki/INES
package nesrom

import (
	"fmt"
)

const HEADER_SIZE = 16

// Header is the fixed 16 byte iNES header.
type Header struct {
	// Bytes 0-3
	// Constant $4E $45 $53 $1A (ASCII "NES" followed by MS-DOS end-of-file)
	constant string
	// Byte 4
	// Size of PRG ROM in 16 KB units
	prgSize uint8
	// Byte 5
	// Size of CHR ROM in 8 KB units (value 0 means the board uses CHR RAM)
	chrSize uint8
	// Byte 6
	// Flags 6 – Mapper, mirroring, battery, trainer
	flags6 uint8
	// Byte 7
	// Flags 7 – Mapper, VS/Playchoice, NES 2.0
	flags7 uint8
	// Byte 8
	// Flags 8 – PRG-RAM size (rarely used extension)
	flags8 uint8
	// Byte 9
	// Flags 9 – TV system (rarely used extension)
	flags9 uint8
	// Bytes 10-15 are reserved; some rippers put their name across bytes 7-15
	unused [6]byte
}

// flag6 flag identifiers - the top 4 bits are the lower nibble of the mapper number
const (
	// 0: horizontal (vertical arrangement) (CIRAM A10 = PPU A11)
	// 1: vertical (horizontal arrangement) (CIRAM A10 = PPU A10)
	MIRRORING = 1 << 0
	// 1: Cartridge contains battery-backed PRG RAM ($6000-7FFF)
	// or other persistent memory
	BATTERY_BACKED_SRAM = 1 << 1
	// 1: 512-byte trainer at $7000-$71FF (stored before PRG data)
	TRAINER = 1 << 2
	// 1: Ignore mirroring control or above mirroring bit; instead
	// provide four-screen VRAM
	IGNORE_MIRRORING = 1 << 3
)

// flag7 flag identifiers - the top 4 bits are the upper nibble of the mapper number
const (
	VS_UNISYSTEM  = 1 << 0
	PLAYCHOICE_10 = 1 << 1 // 8 KB of Hint Screen data stored after CHR data
)

// Mirroring mode
const (
	MIRROR_HORIZONTAL = iota
	MIRROR_VERTICAL
	MIRROR_FOUR_SCREEN
)

var mirrorNames = [...]string{MIRROR_HORIZONTAL: "horizontal", MIRROR_VERTICAL: "vertical", MIRROR_FOUR_SCREEN: "four screen"}

func parseHeader(hbytes []byte) *Header {
	h := &Header{
		constant: string(hbytes[0:4]),
		prgSize:  hbytes[4],
		chrSize:  hbytes[5],
		flags6:   hbytes[6],
		flags7:   hbytes[7],
		flags8:   hbytes[8],
		flags9:   hbytes[9],
	}
	copy(h.unused[:], hbytes[10:HEADER_SIZE])
	return h
}

func (h *Header) String() string {
	return fmt.Sprintf("%q, prg(%d), chr(%d), mapper(%d), mirroring(%s), flags(%02x, %02x, %02x, %02x)", h.constant, h.prgSize, h.chrSize, h.MapperNum(), mirrorNames[h.MirroringMode()], h.flags6, h.flags7, h.flags8, h.flags9)
}

// PrgBanks is the number of 16KB program ROM banks.
func (h *Header) PrgBanks() uint8 {
	return h.prgSize
}

// ChrBanks is the number of 8KB character ROM banks.
func (h *Header) ChrBanks() uint8 {
	return h.chrSize
}

// MirroringMode returns an identifier indicating which nametable
// mirroring the board wires up.
// https://www.nesdev.org/wiki/INES#Nametable_Mirroring
func (h *Header) MirroringMode() uint8 {
	if h.flags6&IGNORE_MIRRORING > 0 {
		return MIRROR_FOUR_SCREEN
	}

	return h.flags6 & MIRRORING // 0 = horizonal, 1 = vertical
}

func (h *Header) HasTrainer() bool {
	return h.flags6&TRAINER == TRAINER
}

func (h *Header) HasPlayChoice() bool {
	return h.flags7&PLAYCHOICE_10 == PLAYCHOICE_10
}

func (h *Header) HasPrgRAM() bool {
	return h.flags6&BATTERY_BACKED_SRAM > 0
}

// PrgRAMSize returns the size of PRG RAM in 8KB units with flags8==0
// indicating that there is a single (1) 8KB unit
func (h *Header) PrgRAMSize() uint8 {
	if !h.HasPrgRAM() {
		return 0
	}
	if h.flags8 == 0 {
		return 1
	}
	return h.flags8
}

func (h *Header) IsINesFormat() bool {
	return h.constant == "NES\x1A"
}

func (h *Header) IsNES2Format() bool {
	return h.IsINesFormat() && ((h.flags7 & 0x0C) == 0x08)
}

// ignoreHighNibble returns true if we should not use the high 4 bits
// of the mapper number. Older versions of the iNES emulator ignored
// bytes 7-15, and several ROM management tools wrote messages in
// there ("DiskDude!" adds 64 to the mapper number). If the last 4
// bytes are not all zero, and the header is not marked for NES 2.0
// format, the upper 4 bits are masked off.
func (h *Header) ignoreHighNibble() bool {
	for _, x := range h.unused[2:] {
		if x != 0x00 {
			return !h.IsNES2Format()
		}
	}
	return false
}

// MapperNum returns the mapper number which is constructed of the
// upper 4 bits of flag7 and the upper 4 bits of flag 6.
func (h *Header) MapperNum() uint8 {
	mn := (h.flags6 & 0xF0) >> 4
	if h.ignoreHighNibble() {
		return mn
	}
	return (h.flags7 & 0xF0) | mn
}
