package bus

import (
	"fmt"

	"github.com/nevisdale/boii/internal/cart"
)

const (
	// Memory Map (only the fixed cartridge windows are mapped):
	//
	// $0000-$7FFF: Cartridge ROM
	//   Bank 0 and bank 1 of the rom, no bank switching.
	//
	// $8000-$9FFF: Video RAM (unmapped)
	//
	// $A000-$BFFF: Cartridge RAM
	//   Battery backed ram on the cartridge, if any.
	//   The window is 8 KiB; offsets past the cartridge ram size are access violations.
	//
	// $C000-$FFFF: Work RAM, OAM, IO registers, HRAM (unmapped)
	CartROMStart = 0x0000
	CartROMEnd   = 0x8000 // exclusive

	CartRAMStart = 0xA000
	CartRAMEnd   = 0xC000 // exclusive
)

// Cartridge is the storage the bus routes accesses to.
// Addresses passed to it are relative to the start of each region.
type Cartridge interface {
	ReadROM(addr uint16) (uint8, error)
	ReadRAM(addr uint16) (uint8, error)
	WriteRAM(addr uint16, data uint8) error
}

var _ Cartridge = (*cart.Cart)(nil)

type Region uint8

const (
	RegionUnmapped Region = iota
	RegionCartROM
	RegionCartRAM
)

func (r Region) String() string {
	switch r {
	case RegionCartROM:
		return "ROM"
	case RegionCartRAM:
		return "RAM"
	}
	return "---"
}

// RegionOf tells which window addr belongs to without accessing it.
func RegionOf(addr uint16) Region {
	switch {
	case addr < CartROMEnd:
		return RegionCartROM
	case addr >= CartRAMStart && addr < CartRAMEnd:
		return RegionCartRAM
	}
	return RegionUnmapped
}

// UnmappedAddressError is returned for addresses outside of any window
// the bus knows about, or for writes to a read only window.
type UnmappedAddressError struct {
	Op   cart.Op
	Addr uint16
}

func (e *UnmappedAddressError) Error() string {
	return fmt.Sprintf("bus: unmapped %s at address %04X", e.Op, e.Addr)
}

// CartridgeError wraps a failure reported by the cartridge.
// Addr is the bus address, the wrapped error holds the relative one.
type CartridgeError struct {
	Addr uint16
	Err  error
}

func (e *CartridgeError) Error() string {
	return fmt.Sprintf("bus: cartridge fault at address %04X: %s", e.Addr, e.Err)
}

func (e *CartridgeError) Unwrap() error {
	return e.Err
}

// Bus routes cpu accesses to the cartridge. It has no state of its own,
// create one for every window of accesses.
type Bus struct {
	cart Cartridge
}

func New(c Cartridge) *Bus {
	return &Bus{cart: c}
}

func (b *Bus) Read8(addr uint16) (uint8, error) {
	var (
		data uint8
		err  error
	)
	switch RegionOf(addr) {
	case RegionCartROM:
		data, err = b.cart.ReadROM(addr - CartROMStart)
	case RegionCartRAM:
		data, err = b.cart.ReadRAM(addr - CartRAMStart)
	default:
		return 0, &UnmappedAddressError{Op: cart.OpRead, Addr: addr}
	}
	if err != nil {
		return 0, &CartridgeError{Addr: addr, Err: err}
	}
	return data, nil
}

func (b *Bus) Write8(addr uint16, data uint8) error {
	// rom is read only, so only the ram window accepts writes
	if RegionOf(addr) != RegionCartRAM {
		return &UnmappedAddressError{Op: cart.OpWrite, Addr: addr}
	}
	if err := b.cart.WriteRAM(addr-CartRAMStart, data); err != nil {
		return &CartridgeError{Addr: addr, Err: err}
	}
	return nil
}
