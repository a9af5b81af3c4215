// Package carttest builds synthetic cartridge images for tests.
package carttest

import "encoding/binary"

// NintendoLogo and Fix are kept apart from package cart on purpose,
// so tests never check cart against its own tables.
var NintendoLogo = [48]uint8{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
	0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E, 0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
	0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// ROM describes the image to build. The zero value is a 32 KiB
// rom only cart without ram and with an empty title.
type ROM struct {
	Title         string
	CartridgeType uint8
	ROMSizeCode   uint8
	RAMSizeCode   uint8
	// Size overrides the size derived from ROMSizeCode.
	Size int
}

// Build returns an image with the logo in place and both checksums correct.
func (r ROM) Build() []uint8 {
	size := r.Size
	if size == 0 {
		size = 32 * 1024 << r.ROMSizeCode
	}
	rom := make([]uint8, size)

	copy(rom[0x0104:0x0134], NintendoLogo[:])
	copy(rom[0x0134:0x0144], r.Title)
	rom[0x0144], rom[0x0145] = '0', '1'
	rom[0x0147] = r.CartridgeType
	rom[0x0148] = r.ROMSizeCode
	rom[0x0149] = r.RAMSizeCode
	rom[0x014B] = 0x33
	rom[0x014C] = 0x01

	Fix(rom)
	return rom
}

// Fix recomputes both checksums of rom in place.
func Fix(rom []uint8) {
	var hsum uint8
	for _, b := range rom[0x0134:0x014D] {
		hsum = hsum - b - 1
	}
	rom[0x014D] = hsum

	var gsum uint16
	for i, b := range rom {
		if i == 0x014E || i == 0x014F {
			continue
		}
		gsum += uint16(b)
	}
	binary.BigEndian.PutUint16(rom[0x014E:0x0150], gsum)
}
