package bus

import (
	"errors"
	"testing"

	"github.com/nevisdale/boii/internal/cart"
	"github.com/nevisdale/boii/internal/cart/carttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type cartMock struct {
	mock.Mock
}

func (m *cartMock) ReadROM(addr uint16) (uint8, error) {
	args := m.Called(addr)
	return args.Get(0).(uint8), args.Error(1)
}

func (m *cartMock) ReadRAM(addr uint16) (uint8, error) {
	args := m.Called(addr)
	return args.Get(0).(uint8), args.Error(1)
}

func (m *cartMock) WriteRAM(addr uint16, data uint8) error {
	args := m.Called(addr, data)
	return args.Error(0)
}

func TestBus_Read8_Routing(t *testing.T) {
	tests := []struct {
		name   string
		addr   uint16
		method string
		offset uint16
	}{
		{name: "rom start", addr: 0x0000, method: "ReadROM", offset: 0x0000},
		{name: "rom entry point", addr: 0x0100, method: "ReadROM", offset: 0x0100},
		{name: "rom end", addr: 0x7FFF, method: "ReadROM", offset: 0x7FFF},
		{name: "ram start", addr: 0xA000, method: "ReadRAM", offset: 0x0000},
		{name: "ram middle", addr: 0xA123, method: "ReadRAM", offset: 0x0123},
		{name: "ram end", addr: 0xBFFF, method: "ReadRAM", offset: 0x1FFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &cartMock{}
			m.On(tt.method, tt.offset).Return(uint8(0x5A), nil).Once()

			data, err := New(m).Read8(tt.addr)
			require.NoError(t, err)
			assert.Equal(t, uint8(0x5A), data)
			m.AssertExpectations(t)
		})
	}
}

func TestBus_Read8_Unmapped(t *testing.T) {
	for _, addr := range []uint16{0x8000, 0x9FFF, 0xC000, 0xFE00, 0xFFFF} {
		m := &cartMock{}

		_, err := New(m).Read8(addr)
		var unmapped *UnmappedAddressError
		require.ErrorAs(t, err, &unmapped, "addr %04X", addr)
		assert.Equal(t, addr, unmapped.Addr)
		assert.Equal(t, cart.OpRead, unmapped.Op)
		m.AssertNotCalled(t, "ReadROM", mock.Anything)
		m.AssertNotCalled(t, "ReadRAM", mock.Anything)
	}
}

func TestBus_Write8(t *testing.T) {
	m := &cartMock{}
	m.On("WriteRAM", uint16(0x0000), uint8(0x11)).Return(nil).Once()
	m.On("WriteRAM", uint16(0x1FFF), uint8(0x22)).Return(nil).Once()

	b := New(m)
	require.NoError(t, b.Write8(0xA000, 0x11))
	require.NoError(t, b.Write8(0xBFFF, 0x22))
	m.AssertExpectations(t)

	// only the ram window is writable, rom included
	for _, addr := range []uint16{0x0000, 0x2000, 0x7FFF, 0x8000, 0x9FFF, 0xC000, 0xFFFF} {
		err := b.Write8(addr, 0xFF)
		var unmapped *UnmappedAddressError
		require.ErrorAs(t, err, &unmapped, "addr %04X", addr)
		assert.Equal(t, &UnmappedAddressError{Op: cart.OpWrite, Addr: addr}, unmapped)
	}
	m.AssertNumberOfCalls(t, "WriteRAM", 2)
}

func TestBus_CartridgeErrors(t *testing.T) {
	errBoom := errors.New("boom")
	m := &cartMock{}
	m.On("ReadROM", uint16(0x0001)).Return(uint8(0), errBoom)
	m.On("WriteRAM", uint16(0x0002), uint8(0x03)).Return(errBoom)

	b := New(m)
	_, err := b.Read8(0x0001)
	var cartErr *CartridgeError
	require.ErrorAs(t, err, &cartErr)
	assert.Equal(t, uint16(0x0001), cartErr.Addr)
	assert.ErrorIs(t, err, errBoom)

	err = b.Write8(0xA002, 0x03)
	require.ErrorAs(t, err, &cartErr)
	assert.Equal(t, uint16(0xA002), cartErr.Addr)
	assert.ErrorIs(t, err, errBoom)
}

func TestBus_WithCart(t *testing.T) {
	newCart := func(t *testing.T, r carttest.ROM) *cart.Cart {
		t.Helper()
		c, err := cart.NewCart(r.Build(), cart.DefaultValidationSettings())
		require.NoError(t, err)
		return c
	}

	t.Run("rom offsets are relative to the rom base", func(t *testing.T) {
		c := newCart(t, carttest.ROM{})
		b := New(c)
		for _, addr := range []uint16{0x0000, 0x0104, 0x0134, 0x7FFF} {
			expected, err := c.ReadROM(addr)
			require.NoError(t, err)
			data, err := b.Read8(addr)
			require.NoError(t, err)
			assert.Equal(t, expected, data, "addr %04X", addr)
		}

		data, err := b.Read8(0x0104)
		require.NoError(t, err)
		assert.Equal(t, uint8(0xCE), data)
	})

	t.Run("write then read", func(t *testing.T) {
		c := newCart(t, carttest.ROM{RAMSizeCode: 3})
		require.NoError(t, New(c).Write8(0xA000, 0x12))
		require.NoError(t, New(c).Write8(0xBFFF, 0x34))

		b := New(c)
		data, err := b.Read8(0xA000)
		require.NoError(t, err)
		assert.Equal(t, uint8(0x12), data)
		data, err = b.Read8(0xBFFF)
		require.NoError(t, err)
		assert.Equal(t, uint8(0x34), data)

		data, err = c.ReadRAM(0x1FFF)
		require.NoError(t, err)
		assert.Equal(t, uint8(0x34), data)
	})

	t.Run("cart without ram", func(t *testing.T) {
		b := New(newCart(t, carttest.ROM{}))

		_, err := b.Read8(0xA000)
		var cartErr *CartridgeError
		require.ErrorAs(t, err, &cartErr)
		assert.ErrorIs(t, err, cart.ErrReadAccessViolation)
		var violation *cart.AccessViolationError
		require.ErrorAs(t, err, &violation)
		assert.Equal(t, uint16(0x0000), violation.Addr)
		assert.Equal(t, cart.RegionRAM, violation.Region)

		err = b.Write8(0xA010, 0x01)
		assert.ErrorIs(t, err, cart.ErrWriteAccessViolation)
		assert.False(t, errors.As(err, new(*UnmappedAddressError)))
	})
}

func TestRegionOf(t *testing.T) {
	tests := map[uint16]Region{
		0x0000: RegionCartROM,
		0x7FFF: RegionCartROM,
		0x8000: RegionUnmapped,
		0x9FFF: RegionUnmapped,
		0xA000: RegionCartRAM,
		0xBFFF: RegionCartRAM,
		0xC000: RegionUnmapped,
		0xFFFF: RegionUnmapped,
	}
	for addr, expected := range tests {
		assert.Equal(t, expected, RegionOf(addr), "addr %04X", addr)
	}
	assert.Equal(t, "ROM", RegionCartROM.String())
	assert.Equal(t, "RAM", RegionCartRAM.String())
	assert.Equal(t, "---", RegionUnmapped.String())
}
