package cart

import (
	"errors"
	"fmt"
)

var (
	// parsing
	ErrNoHeader = errors.New("rom is too small to contain a header")

	// validation
	ErrMissingNintendoLogo = errors.New("rom does not contain the nintendo logo")

	// access
	ErrReadAccessViolation  = errors.New("read access violation")
	ErrWriteAccessViolation = errors.New("write access violation")
)

type UnknownROMSizeError struct {
	Value uint8
}

func (e *UnknownROMSizeError) Error() string {
	return fmt.Sprintf("unknown rom size value: %02X", e.Value)
}

type UnknownRAMSizeError struct {
	Value uint8
}

func (e *UnknownRAMSizeError) Error() string {
	return fmt.Sprintf("unknown ram size value: %02X", e.Value)
}

// NoASCIIStringError is returned when a text field of the header
// does not hold valid text up to its terminator.
type NoASCIIStringError struct {
	Field string
	Bytes []uint8
}

func (e *NoASCIIStringError) Error() string {
	return fmt.Sprintf("header field %s is not an ascii string: % X", e.Field, e.Bytes)
}

type InconsistentROMSizeError struct {
	Actual int
	Header int
}

func (e *InconsistentROMSizeError) Error() string {
	return fmt.Sprintf("inconsistent rom size (actual=%d, header=%d)", e.Actual, e.Header)
}

type InvalidHeaderChecksumError struct {
	Actual uint8
	Header uint8
}

func (e *InvalidHeaderChecksumError) Error() string {
	return fmt.Sprintf("invalid header checksum (actual=%02X, header=%02X)", e.Actual, e.Header)
}

type InvalidGlobalChecksumError struct {
	Actual uint16
	Header uint16
}

func (e *InvalidGlobalChecksumError) Error() string {
	return fmt.Sprintf("invalid global checksum (actual=%04X, header=%04X)", e.Actual, e.Header)
}

type Op uint8

const (
	OpRead Op = iota + 1
	OpWrite
)

func (op Op) String() string {
	switch op {
	case OpRead:
		return "read"
	case OpWrite:
		return "write"
	}
	return "???"
}

type Region uint8

const (
	RegionROM Region = iota + 1
	RegionRAM
)

func (r Region) String() string {
	switch r {
	case RegionROM:
		return "rom"
	case RegionRAM:
		return "ram"
	}
	return "???"
}

// AccessViolationError reports an offset outside of the backing buffer.
// Addr is relative to the start of the region.
type AccessViolationError struct {
	Op     Op
	Region Region
	Addr   uint16
}

func (e *AccessViolationError) Error() string {
	return fmt.Sprintf("%s access violation in cartridge %s at %04X", e.Op, e.Region, e.Addr)
}

func (e *AccessViolationError) Is(target error) bool {
	switch target {
	case ErrReadAccessViolation:
		return e.Op == OpRead
	case ErrWriteAccessViolation:
		return e.Op == OpWrite
	}
	return false
}
