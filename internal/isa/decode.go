package isa

import "fmt"

// UnknownOpcodeError reports a machine word that matches no instruction
// encoding. It carries the four nibbles of the offending word so callers
// can log the word and skip over it.
type UnknownOpcodeError struct {
	Nibbles [4]uint8
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown op code 0x%04X", e.Word())
}

// Word reassembles the offending 16-bit machine word.
func (e *UnknownOpcodeError) Word() uint16 {
	return uint16(e.Nibbles[0])<<12 |
		uint16(e.Nibbles[1])<<8 |
		uint16(e.Nibbles[2])<<4 |
		uint16(e.Nibbles[3])
}

// Decode maps one big-endian machine word, given as its two bytes, to the
// instruction it encodes. It is pure and total: every word yields either
// exactly one instruction or an *UnknownOpcodeError, and decoding cannot
// fail for any other reason. Slicing memory into 2-byte windows at aligned
// offsets is the caller's job.
func Decode(hi, lo byte) (Instruction, error) {
	n0 := hi >> 4
	n1 := hi & 0x0F
	n2 := lo >> 4
	n3 := lo & 0x0F

	switch n0 {
	case 0x0:
		// The two fixed patterns win over the address-carrying fallback.
		switch {
		case n1 == 0x0 && n2 == 0xE && n3 == 0xE:
			return Return{}, nil
		case n1 == 0x0 && n2 == 0xE && n3 == 0x0:
			return ClearScreen{}, nil
		default:
			return CallMachineRoutine{Addr: AddressFromNibbles(n1, n2, n3)}, nil
		}

	case 0x1:
		return Jump{Addr: AddressFromNibbles(n1, n2, n3)}, nil

	case 0x2:
		return CallSubroutine{Addr: AddressFromNibbles(n1, n2, n3)}, nil

	case 0x3:
		return SkipIfEqualConst{X: VarFromNibble(n1), Value: Const8FromNibbles(n2, n3)}, nil

	case 0x4:
		return SkipIfNotEqualConst{X: VarFromNibble(n1), Value: Const8FromNibbles(n2, n3)}, nil

	case 0x5:
		if n3 == 0x0 {
			return SkipIfEqual{X: VarFromNibble(n1), Y: VarFromNibble(n2)}, nil
		}

	case 0x6:
		return SetConst{X: VarFromNibble(n1), Value: Const8FromNibbles(n2, n3)}, nil

	case 0x7:
		return AddConst{X: VarFromNibble(n1), Value: Const8FromNibbles(n2, n3)}, nil

	case 0x8:
		x, y := VarFromNibble(n1), VarFromNibble(n2)
		switch n3 {
		case 0x0:
			return Set{X: x, Y: y}, nil
		case 0x1:
			return Or{X: x, Y: y}, nil
		case 0x2:
			return And{X: x, Y: y}, nil
		case 0x3:
			return Xor{X: x, Y: y}, nil
		case 0x4:
			return AddReg{X: x, Y: y}, nil
		case 0x5:
			return SubReg{X: x, Y: y}, nil
		case 0x6:
			return ShiftRight{X: x, Y: y}, nil
		case 0x7:
			return SubRegReverse{X: x, Y: y}, nil
		case 0xE:
			return ShiftLeft{X: x, Y: y}, nil
		}

	case 0x9:
		if n3 == 0x0 {
			return SkipIfNotEqual{X: VarFromNibble(n1), Y: VarFromNibble(n2)}, nil
		}

	case 0xA:
		return SetIndex{Addr: AddressFromNibbles(n1, n2, n3)}, nil

	case 0xB:
		return JumpWithOffset{Addr: AddressFromNibbles(n1, n2, n3)}, nil

	case 0xC:
		return Random{X: VarFromNibble(n1), Mask: Const8FromNibbles(n2, n3)}, nil

	case 0xD:
		return Draw{X: VarFromNibble(n1), Y: VarFromNibble(n2), Height: Const4FromNibble(n3)}, nil

	case 0xE:
		x := VarFromNibble(n1)
		switch {
		case n2 == 0x9 && n3 == 0xE:
			return KeyPressed{X: x}, nil
		case n2 == 0xA && n3 == 0x1:
			return KeyNotPressed{X: x}, nil
		}

	case 0xF:
		x := VarFromNibble(n1)
		switch {
		case n2 == 0x0 && n3 == 0x7:
			return GetDelayTimer{X: x}, nil
		case n2 == 0x0 && n3 == 0xA:
			return WaitKey{X: x}, nil
		case n2 == 0x1 && n3 == 0x5:
			return SetDelayTimer{X: x}, nil
		case n2 == 0x1 && n3 == 0x8:
			return SetSoundTimer{X: x}, nil
		case n2 == 0x1 && n3 == 0xE:
			return AddIndex{X: x}, nil
		case n2 == 0x2 && n3 == 0x9:
			return SetSpriteIndex{X: x}, nil
		case n2 == 0x3 && n3 == 0x3:
			return StoreBCD{X: x}, nil
		case n2 == 0x5 && n3 == 0x5:
			return StoreRegisters{X: x}, nil
		case n2 == 0x6 && n3 == 0x5:
			return LoadRegisters{X: x}, nil
		}
	}

	// No silent default: any trailing pattern not listed above is a
	// decode failure.
	return nil, &UnknownOpcodeError{Nibbles: [4]uint8{n0, n1, n2, n3}}
}
