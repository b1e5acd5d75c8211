// This file is part of GBprobe.
//
// GBprobe is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GBprobe is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GBprobe.  If not, see <https://www.gnu.org/licenses/>.

package romfile

import (
	"fmt"
	"strings"
)

// cartridge header field locations.
const (
	addrTitleStart     = 0x0134
	addrTitleEnd       = 0x0143
	addrCGBFlag        = 0x0143
	addrCartridgeType  = 0x0147
	addrROMSize        = 0x0148
	addrRAMSize        = 0x0149
	addrHeaderChecksum = 0x014d

	// decodeHeader requires the ROM to at least cover the checksum byte.
	minHeaderSize = addrHeaderChecksum + 1
)

// Header is the decoded cartridge header of a Game Boy ROM.
type Header struct {
	// Title as stored in the header, trimmed of padding.
	Title string

	// CartridgeType is the raw mapper/feature byte. Mapper gives the
	// human readable form.
	CartridgeType uint8
	Mapper        string

	// ROMSize and RAMSize in bytes, decoded from the header size codes.
	ROMSize int
	RAMSize int

	// CGB is true when the cartridge declares Game Boy Color support.
	CGB bool

	// ChecksumOK indicates whether the header checksum matched. ROMs with
	// a bad checksum still load but a real Game Boy boot ROM would lock up.
	ChecksumOK bool
}

// cartridge type names per the official cartridge type byte.
var mapperNames = map[uint8]string{
	0x00: "ROM ONLY",
	0x01: "MBC1",
	0x02: "MBC1+RAM",
	0x03: "MBC1+RAM+BATTERY",
	0x05: "MBC2",
	0x06: "MBC2+BATTERY",
	0x08: "ROM+RAM",
	0x09: "ROM+RAM+BATTERY",
	0x0f: "MBC3+TIMER+BATTERY",
	0x10: "MBC3+TIMER+RAM+BATTERY",
	0x11: "MBC3",
	0x12: "MBC3+RAM",
	0x13: "MBC3+RAM+BATTERY",
	0x19: "MBC5",
	0x1a: "MBC5+RAM",
	0x1b: "MBC5+RAM+BATTERY",
	0x1c: "MBC5+RUMBLE",
	0x1d: "MBC5+RUMBLE+RAM",
	0x1e: "MBC5+RUMBLE+RAM+BATTERY",
}

// ramSizes maps the RAM size code to a size in bytes.
var ramSizes = map[uint8]int{
	0x00: 0,
	0x01: 2 * 1024,
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// decodeHeader decodes the cartridge header of data. An error is returned
// only when data is too short to contain a header. A failed checksum is
// reported in the ChecksumOK field, not as an error.
func decodeHeader(data []byte) (Header, error) {
	var hdr Header

	if len(data) < minHeaderSize {
		return hdr, fmt.Errorf("data too short for cartridge header (%d bytes)", len(data))
	}

	// title is padded with zero bytes. later cartridges repurpose the
	// upper bytes so stop at the first non-printable character.
	title := data[addrTitleStart : addrTitleEnd+1]
	for i, c := range title {
		if c < 0x20 || c > 0x7e {
			title = title[:i]
			break
		}
	}
	hdr.Title = strings.TrimRight(string(title), " ")

	hdr.CGB = data[addrCGBFlag]&0x80 == 0x80

	hdr.CartridgeType = data[addrCartridgeType]
	if name, ok := mapperNames[hdr.CartridgeType]; ok {
		hdr.Mapper = name
	} else {
		hdr.Mapper = fmt.Sprintf("UNKNOWN (%#02x)", hdr.CartridgeType)
	}

	// ROM size code n means 32KB << n
	if c := data[addrROMSize]; c <= 0x08 {
		hdr.ROMSize = 32 * 1024 << c
	}

	hdr.RAMSize = ramSizes[data[addrRAMSize]]

	var sum uint8
	for _, b := range data[addrTitleStart:addrHeaderChecksum] {
		sum = sum - b - 1
	}
	hdr.ChecksumOK = sum == data[addrHeaderChecksum]

	return hdr, nil
}

// String implements the Stringer interface.
func (hdr Header) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("title: %s\n", hdr.Title))
	s.WriteString(fmt.Sprintf("mapper: %s\n", hdr.Mapper))
	s.WriteString(fmt.Sprintf("rom: %dk  ram: %dk\n", hdr.ROMSize/1024, hdr.RAMSize/1024))
	if hdr.CGB {
		s.WriteString("cgb support declared\n")
	}
	if !hdr.ChecksumOK {
		s.WriteString("header checksum mismatch\n")
	}
	return s.String()
}
