package cart

import "bytes"

// ValidationSettings toggles the integrity checks run before a cartridge is accepted.
type ValidationSettings struct {
	CheckROMSize        bool `yaml:"check_rom_size"`
	CheckNintendoLogo   bool `yaml:"check_nintento_logo"`
	CheckHeaderChecksum bool `yaml:"check_header_checksum"`
	CheckGlobalChecksum bool `yaml:"check_global_checksum"`
}

// DefaultValidationSettings enables every check except the global checksum.
// Plenty of valid images ship with a placeholder there, the hardware never checks it.
func DefaultValidationSettings() ValidationSettings {
	return ValidationSettings{
		CheckROMSize:        true,
		CheckNintendoLogo:   true,
		CheckHeaderChecksum: true,
		CheckGlobalChecksum: false,
	}
}

// Validate runs the enabled checks in order and returns the first failure.
// An image too short to hold a header fails with ErrNoHeader.
func Validate(rom []uint8, h Header, s ValidationSettings) error {
	if len(rom) < headerEnd {
		return ErrNoHeader
	}
	for _, check := range checks(s) {
		if err := check(rom, h); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAll is like Validate but doesn't stop at the first failure.
func ValidateAll(rom []uint8, h Header, s ValidationSettings) []error {
	if len(rom) < headerEnd {
		return []error{ErrNoHeader}
	}
	var errs []error
	for _, check := range checks(s) {
		if err := check(rom, h); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

type checkFunc func(rom []uint8, h Header) error

// order matters, it decides which error surfaces first
func checks(s ValidationSettings) []checkFunc {
	var fns []checkFunc
	if s.CheckROMSize {
		fns = append(fns, checkROMSize)
	}
	if s.CheckNintendoLogo {
		fns = append(fns, checkNintendoLogo)
	}
	if s.CheckHeaderChecksum {
		fns = append(fns, checkHeaderChecksum)
	}
	if s.CheckGlobalChecksum {
		fns = append(fns, checkGlobalChecksum)
	}
	return fns
}

func checkROMSize(rom []uint8, h Header) error {
	if len(rom) != h.ROMSize {
		return &InconsistentROMSizeError{Actual: len(rom), Header: h.ROMSize}
	}
	return nil
}

func checkNintendoLogo(rom []uint8, _ Header) error {
	if !bytes.Equal(rom[nintendoLogoAddr:nintendoLogoAddr+nintendoLogoSize], nintendoLogo[:]) {
		return ErrMissingNintendoLogo
	}
	return nil
}

func checkHeaderChecksum(rom []uint8, h Header) error {
	if sum := HeaderChecksum(rom); sum != h.HeaderChecksum {
		return &InvalidHeaderChecksumError{Actual: sum, Header: h.HeaderChecksum}
	}
	return nil
}

func checkGlobalChecksum(rom []uint8, h Header) error {
	if sum := GlobalChecksum(rom); sum != h.GlobalChecksum {
		return &InvalidGlobalChecksumError{Actual: sum, Header: h.GlobalChecksum}
	}
	return nil
}

// HeaderChecksum computes the checksum of $0134-$014C the way the boot rom does.
// It returns 0 when rom doesn't hold the whole header.
func HeaderChecksum(rom []uint8) uint8 {
	if len(rom) < headerEnd {
		return 0
	}
	var sum uint8
	for _, b := range rom[titleAddr : romVersionAddr+1] {
		sum = sum - b - 1
	}
	return sum
}

// GlobalChecksum sums every byte of the image except the two checksum bytes.
// It returns 0 when rom doesn't hold the whole header.
func GlobalChecksum(rom []uint8) uint16 {
	if len(rom) < headerEnd {
		return 0
	}
	var sum uint16
	for _, b := range rom {
		sum += uint16(b)
	}
	return sum - uint16(rom[globalChecksumAddr]) - uint16(rom[globalChecksumAddr+1])
}
