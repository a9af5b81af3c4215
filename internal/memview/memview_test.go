package memview

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nevisdale/boii/internal/bus"
	"github.com/nevisdale/boii/internal/cart"
	"github.com/nevisdale/boii/internal/cart/carttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBus(t *testing.T, r carttest.ROM) (*bus.Bus, *cart.Cart) {
	t.Helper()
	c, err := cart.NewCart(r.Build(), cart.DefaultValidationSettings())
	require.NoError(t, err)
	return bus.New(c), c
}

func TestHeaderInfo(t *testing.T) {
	_, c := newBus(t, carttest.ROM{Title: "MEMVIEW", CartridgeType: 0x03, ROMSizeCode: 2, RAMSizeCode: 3})

	info := HeaderInfo(c.Header())
	assert.Contains(t, info, "TITLE: MEMVIEW\n")
	assert.Contains(t, info, "TYPE: $03 MBC1+RAM+BATTERY\n")
	assert.Contains(t, info, "ROM: 128 KiB\n")
	assert.Contains(t, info, "RAM: 32 KiB\n")
	assert.Contains(t, info, `LICENSEE: $33 "01"`)
}

func TestPage(t *testing.T) {
	b, _ := newBus(t, carttest.ROM{})

	lines := Page(b, 0x0104, 1)
	require.Len(t, lines, 1)
	assert.Equal(t, "0100 ROM: 00 00 00 00 CE ED 66 66 CC 0D 00 0B 03 73 00 83 |......ff.....s..|", lines[0])

	lines = Page(b, 0x7FF0, 2)
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "7FF0 ROM:"), lines[0])
	assert.Equal(t, "8000 ---:"+strings.Repeat(" --", 16)+" |"+strings.Repeat(" ", 16)+"|", lines[1])
}

func TestPage_RAM(t *testing.T) {
	t.Run("no ram", func(t *testing.T) {
		b, _ := newBus(t, carttest.ROM{})

		lines := Page(b, 0xA000, 1)
		assert.Equal(t, "A000 RAM:"+strings.Repeat(" ??", 16)+" |"+strings.Repeat(" ", 16)+"|", lines[0])
	})

	t.Run("written bytes", func(t *testing.T) {
		b, _ := newBus(t, carttest.ROM{RAMSizeCode: 2})
		for i, data := range []uint8("HELLO") {
			require.NoError(t, b.Write8(0xA000+uint16(i), data))
		}

		lines := Page(b, 0xA000, 1)
		assert.Equal(t, "A000 RAM: 48 45 4C 4C 4F 00 00 00 00 00 00 00 00 00 00 00 |HELLO...........|", lines[0])
	})
}

func TestPage_Wraps(t *testing.T) {
	b, _ := newBus(t, carttest.ROM{})

	lines := Page(b, 0xFFF0, 2)
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "FFF0 ---:"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "0000 ROM:"), lines[1])
}

func TestDump(t *testing.T) {
	b, _ := newBus(t, carttest.ROM{})

	var out bytes.Buffer
	require.NoError(t, Dump(&out, b, 0x0000, 3))
	assert.Equal(t, strings.Join(Page(b, 0x0000, 3), "\n")+"\n", out.String())
}

func TestPage_NoRows(t *testing.T) {
	b, _ := newBus(t, carttest.ROM{})

	for _, rows := range []int{0, -1, -16} {
		assert.Empty(t, Page(b, 0x0100, rows), "rows %d", rows)

		var out bytes.Buffer
		require.NoError(t, Dump(&out, b, 0x0100, rows))
		assert.Zero(t, out.Len(), "rows %d", rows)
	}
}
