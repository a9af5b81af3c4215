// Package memview renders cartridge metadata and memory, as seen through the bus, as text.
package memview

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nevisdale/boii/internal/bus"
	"github.com/nevisdale/boii/internal/cart"
)

const BytesPerRow = 16

// Reader is the part of the bus memview needs.
type Reader interface {
	Read8(addr uint16) (uint8, error)
}

var _ Reader = (*bus.Bus)(nil)

func HeaderInfo(h cart.Header) string {
	var s strings.Builder
	fmt.Fprintf(&s, "TITLE: %s\n", h.Title)
	fmt.Fprintf(&s, "TYPE: $%02X %s\n", h.CartridgeType, h.CartridgeTypeName())
	fmt.Fprintf(&s, "ROM: %d KiB\n", h.ROMSize/1024)
	fmt.Fprintf(&s, "RAM: %d KiB\n", h.RAMSize/1024)
	fmt.Fprintf(&s, "LICENSEE: $%02X %q\n", h.OldLicenseeCode, h.NewLicenseeCode)
	fmt.Fprintf(&s, "SGB: $%02X DEST: $%02X VERSION: $%02X\n", h.SGBFlag, h.DestinationCode, h.ROMVersion)
	fmt.Fprintf(&s, "CHECKSUM: $%02X GLOBAL: $%04X\n", h.HeaderChecksum, h.GlobalChecksum)
	return s.String()
}

// Page reads rows lines of memory starting at the row holding start.
// Unmapped bytes are shown as "--", bytes the cartridge refused as "??".
func Page(r Reader, start uint16, rows int) []string {
	if rows <= 0 {
		return nil
	}
	lines := make([]string, 0, rows)
	addr := start &^ (BytesPerRow - 1)
	for i := 0; i < rows; i++ {
		lines = append(lines, row(r, addr))
		// wraps around at $FFFF like the cpu address space does
		addr += BytesPerRow
	}
	return lines
}

func row(r Reader, addr uint16) string {
	var (
		hex   strings.Builder
		ascii strings.Builder
	)
	for i := uint16(0); i < BytesPerRow; i++ {
		data, err := r.Read8(addr + i)
		if err != nil {
			var unmapped *bus.UnmappedAddressError
			if errors.As(err, &unmapped) {
				hex.WriteString(" --")
			} else {
				hex.WriteString(" ??")
			}
			ascii.WriteByte(' ')
			continue
		}
		fmt.Fprintf(&hex, " %02X", data)
		if data >= 0x20 && data < 0x7F {
			ascii.WriteByte(data)
		} else {
			ascii.WriteByte('.')
		}
	}
	return fmt.Sprintf("%04X %-3s:%s |%s|", addr, bus.RegionOf(addr), hex.String(), ascii.String())
}

func Dump(w io.Writer, r Reader, start uint16, rows int) error {
	for _, line := range Page(r, start, rows) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
