package isa

import (
	"errors"
	"fmt"
)

// MaxAddress is the highest value a 12-bit address operand can hold.
const MaxAddress = 0x0FFF

var ErrAddressOutOfRange = errors.New("address out of range")

// Address is a 12-bit memory address operand.
type Address uint16

// AddressFromNibbles assembles an address from the three trailing nibbles
// of an opcode. Three nibbles cannot exceed 12 bits, so this always
// produces a valid address.
func AddressFromNibbles(n1, n2, n3 uint8) Address {
	return Address(uint16(n1&0x0F)<<8 | uint16(n2&0x0F)<<4 | uint16(n3&0x0F))
}

// AddressFromOffset converts a flat memory offset into an address.
// Offsets above MaxAddress can only come from a bug in the caller and are
// rejected with ErrAddressOutOfRange.
func AddressFromOffset(n uint16) (Address, error) {
	if n > MaxAddress {
		return 0, fmt.Errorf("offset 0x%04x: %w", n, ErrAddressOutOfRange)
	}
	return Address(n), nil
}

func (a Address) String() string {
	return fmt.Sprintf("0x%04x", uint16(a))
}

// Const8 is an 8-bit constant operand.
type Const8 uint8

// Const8FromNibbles assembles a constant from the two trailing nibbles of
// an opcode. Any 8-bit pattern is valid.
func Const8FromNibbles(n2, n3 uint8) Const8 {
	return Const8((n2&0x0F)<<4 | n3&0x0F)
}

// Const4 is a 4-bit constant operand. It only appears as the sprite height
// of a draw instruction.
type Const4 uint8

func Const4FromNibble(n uint8) Const4 {
	return Const4(n & 0x0F)
}

// Var is the index of one of the sixteen general-purpose registers V0-VF.
type Var uint8

func VarFromNibble(n uint8) Var {
	return Var(n & 0x0F)
}

func (v Var) String() string {
	return fmt.Sprintf("v%x", uint8(v))
}
