package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarFromNibble_RoundTrip(t *testing.T) {
	for n := uint8(0); n < 16; n++ {
		assert.Equal(t, Var(n), VarFromNibble(n))
	}
}

func TestConst4FromNibble_RoundTrip(t *testing.T) {
	for n := uint8(0); n < 16; n++ {
		assert.Equal(t, Const4(n), Const4FromNibble(n))
	}
}

func TestConst8FromNibbles_RoundTrip(t *testing.T) {
	for v := 0; v <= 0xFF; v++ {
		n2 := uint8(v >> 4)
		n3 := uint8(v & 0x0F)
		assert.Equal(t, Const8(v), Const8FromNibbles(n2, n3))
	}
}

func TestAddressFromNibbles_RoundTrip(t *testing.T) {
	for v := 0; v <= MaxAddress; v++ {
		n1 := uint8(v >> 8)
		n2 := uint8(v >> 4 & 0x0F)
		n3 := uint8(v & 0x0F)
		assert.Equal(t, Address(v), AddressFromNibbles(n1, n2, n3))
	}
}

func TestAddressFromOffset(t *testing.T) {
	for _, offset := range []uint16{0, 1, 0x200, MaxAddress} {
		addr, err := AddressFromOffset(offset)
		require.NoError(t, err)
		assert.Equal(t, Address(offset), addr)
	}

	for _, offset := range []uint16{MaxAddress + 1, 0x2000, 0xFFFF} {
		_, err := AddressFromOffset(offset)
		require.ErrorIs(t, err, ErrAddressOutOfRange)
	}
}

func TestOperandString(t *testing.T) {
	assert.Equal(t, "0x0234", Address(0x234).String())
	assert.Equal(t, "v0", Var(0).String())
	assert.Equal(t, "vf", Var(0xF).String())
}
