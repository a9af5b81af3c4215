package cart

import (
	"bytes"
	"encoding/binary"
	"unicode/utf8"
)

// Header layout, offsets are absolute in the rom image.
//
// $0104-$0133: Nintendo logo
// $0134-$0143: Title
// $0144-$0145: New licensee code
// $0146:       SGB flag
// $0147:       Cartridge type
// $0148:       ROM size code
// $0149:       RAM size code
// $014A:       Destination code
// $014B:       Old licensee code
// $014C:       Mask ROM version
// $014D:       Header checksum
// $014E-$014F: Global checksum (big endian)
const (
	nintendoLogoAddr    = 0x0104
	titleAddr           = 0x0134
	newLicenseeCodeAddr = 0x0144
	sgbFlagAddr         = 0x0146
	cartridgeTypeAddr   = 0x0147
	romSizeAddr         = 0x0148
	ramSizeAddr         = 0x0149
	destinationCodeAddr = 0x014A
	oldLicenseeCodeAddr = 0x014B
	romVersionAddr      = 0x014C
	headerChecksumAddr  = 0x014D
	globalChecksumAddr  = 0x014E

	nintendoLogoSize    = 0x30
	titleSize           = 0x10
	newLicenseeCodeSize = 0x02

	// the last byte of the header is the low byte of the global checksum
	headerEnd = globalChecksumAddr + 2
)

var nintendoLogo = [nintendoLogoSize]uint8{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
	0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E, 0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
	0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// Header is the metadata embedded in every cartridge image.
type Header struct {
	Title           string
	NewLicenseeCode string
	SGBFlag         uint8
	CartridgeType   uint8
	ROMSize         int // bytes
	RAMSize         int // bytes
	DestinationCode uint8
	OldLicenseeCode uint8
	ROMVersion      uint8
	HeaderChecksum  uint8
	GlobalChecksum  uint16
}

// ParseHeader reads the header fields out of a raw rom image.
func ParseHeader(rom []uint8) (Header, error) {
	if len(rom) < headerEnd {
		return Header{}, ErrNoHeader
	}

	title, err := decodeASCII("title", rom[titleAddr:titleAddr+titleSize])
	if err != nil {
		return Header{}, err
	}
	licensee, err := decodeASCII("new licensee code", rom[newLicenseeCodeAddr:newLicenseeCodeAddr+newLicenseeCodeSize])
	if err != nil {
		return Header{}, err
	}
	romSize, err := romSizeFromCode(rom[romSizeAddr])
	if err != nil {
		return Header{}, err
	}
	ramSize, err := ramSizeFromCode(rom[ramSizeAddr])
	if err != nil {
		return Header{}, err
	}

	return Header{
		Title:           title,
		NewLicenseeCode: licensee,
		SGBFlag:         rom[sgbFlagAddr],
		CartridgeType:   rom[cartridgeTypeAddr],
		ROMSize:         romSize,
		RAMSize:         ramSize,
		DestinationCode: rom[destinationCodeAddr],
		OldLicenseeCode: rom[oldLicenseeCodeAddr],
		ROMVersion:      rom[romVersionAddr],
		HeaderChecksum:  rom[headerChecksumAddr],
		GlobalChecksum:  binary.BigEndian.Uint16(rom[globalChecksumAddr : globalChecksumAddr+2]),
	}, nil
}

// decodeASCII takes the bytes up to the first zero byte,
// everything after the terminator is ignored.
func decodeASCII(field string, buf []uint8) (string, error) {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	if !utf8.Valid(buf) {
		return "", &NoASCIIStringError{
			Field: field,
			Bytes: bytes.Clone(buf),
		}
	}
	return string(buf), nil
}

func romSizeFromCode(code uint8) (int, error) {
	switch {
	case code <= 8:
		return 32 * 1024 << code, nil
	// unofficial sizes, found on some pirate carts
	case code == 0x52:
		return 1_153_434, nil // 1.1 MB
	case code == 0x53:
		return 1_258_292, nil // 1.2 MB
	case code == 0x54:
		return 1_572_864, nil // 1.5 MB
	}
	return 0, &UnknownROMSizeError{Value: code}
}

func ramSizeFromCode(code uint8) (int, error) {
	switch code {
	case 0:
		return 0, nil
	case 2:
		return 8 * 1024, nil
	case 3:
		return 32 * 1024, nil
	case 4:
		return 128 * 1024, nil
	case 5:
		return 64 * 1024, nil
	}
	// 1 is listed in some docs as 2 KiB but no licensed cart ever used it
	return 0, &UnknownRAMSizeError{Value: code}
}

// CartridgeTypeName returns the name of the memory controller
// (and extra hardware) declared by the header.
func (h Header) CartridgeTypeName() string {
	if name, ok := cartridgeTypeNames[h.CartridgeType]; ok {
		return name
	}
	return "UNKNOWN"
}

var cartridgeTypeNames = map[uint8]string{
	0x00: "ROM ONLY",
	0x01: "MBC1",
	0x02: "MBC1+RAM",
	0x03: "MBC1+RAM+BATTERY",
	0x05: "MBC2",
	0x06: "MBC2+BATTERY",
	0x08: "ROM+RAM",
	0x09: "ROM+RAM+BATTERY",
	0x0B: "MMM01",
	0x0C: "MMM01+RAM",
	0x0D: "MMM01+RAM+BATTERY",
	0x0F: "MBC3+TIMER+BATTERY",
	0x10: "MBC3+TIMER+RAM+BATTERY",
	0x11: "MBC3",
	0x12: "MBC3+RAM",
	0x13: "MBC3+RAM+BATTERY",
	0x19: "MBC5",
	0x1A: "MBC5+RAM",
	0x1B: "MBC5+RAM+BATTERY",
	0x1C: "MBC5+RUMBLE",
	0x1D: "MBC5+RUMBLE+RAM",
	0x1E: "MBC5+RUMBLE+RAM+BATTERY",
	0x20: "MBC6",
	0x22: "MBC7+SENSOR+RUMBLE+RAM+BATTERY",
	0xFC: "POCKET CAMERA",
	0xFD: "BANDAI TAMA5",
	0xFE: "HuC3",
	0xFF: "HuC1+RAM+BATTERY",
}
