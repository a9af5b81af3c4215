package cart

import "os"

// Cart owns the rom image and the battery ram of a cartridge.
// It is not safe for concurrent use.
type Cart struct {
	rom []uint8
	ram []uint8

	header Header
}

// NewCart parses and validates rom and allocates the ram declared by its header.
// The cart keeps rom, the caller must not modify it afterwards.
func NewCart(rom []uint8, settings ValidationSettings) (*Cart, error) {
	header, err := ParseHeader(rom)
	if err != nil {
		return nil, err
	}
	if err := Validate(rom, header, settings); err != nil {
		return nil, err
	}

	return &Cart{
		rom:    rom,
		ram:    make([]uint8, header.RAMSize),
		header: header,
	}, nil
}

// NewCartFromFile reads a .gb file and returns a Cart.
// Errors from reading the file are returned as is.
func NewCartFromFile(path string, settings ValidationSettings) (*Cart, error) {
	rom, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewCart(rom, settings)
}

func (c *Cart) Title() string {
	return c.header.Title
}

func (c *Cart) Header() Header {
	return c.header
}

func (c *Cart) ROMLen() int {
	return len(c.rom)
}

func (c *Cart) RAMLen() int {
	return len(c.ram)
}

// ReadROM reads a byte at addr, relative to the start of the rom.
func (c *Cart) ReadROM(addr uint16) (uint8, error) {
	if int(addr) >= len(c.rom) {
		return 0, &AccessViolationError{Op: OpRead, Region: RegionROM, Addr: addr}
	}
	return c.rom[addr], nil
}

// ReadRAM reads a byte at addr, relative to the start of the ram.
func (c *Cart) ReadRAM(addr uint16) (uint8, error) {
	if int(addr) >= len(c.ram) {
		return 0, &AccessViolationError{Op: OpRead, Region: RegionRAM, Addr: addr}
	}
	return c.ram[addr], nil
}

// WriteRAM writes data at addr, relative to the start of the ram.
// There is no rom counterpart, rom is never written.
func (c *Cart) WriteRAM(addr uint16, data uint8) error {
	if int(addr) >= len(c.ram) {
		return &AccessViolationError{Op: OpWrite, Region: RegionRAM, Addr: addr}
	}
	c.ram[addr] = data
	return nil
}
