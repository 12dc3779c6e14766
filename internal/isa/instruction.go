// Package isa decodes raw CHIP-8 machine words into typed instructions.
//
// A machine word is 16 bits, stored big-endian, and splits into four
// nibbles n0..n3. Decode dispatches on n0, refining on trailing nibbles for
// the groups that overload a single leading nibble, and yields exactly one
// of the instruction variants below or an *UnknownOpcodeError.
package isa

import "fmt"

// Instruction is one decoded machine word. The set of implementations is
// closed: exactly one variant exists per instruction encoding, and each
// variant carries exactly the operands its encoding holds. Consumers
// dispatch with a type switch.
type Instruction interface {
	fmt.Stringer

	isInstruction()
}

// ClearScreen clears the display (00E0).
type ClearScreen struct{}

// Return returns from the current subroutine (00EE).
type Return struct{}

// CallMachineRoutine calls a native routine at Addr (0NNN). Modern
// interpreters have no native routines and treat it as a no-op.
type CallMachineRoutine struct{ Addr Address }

// Jump sets the program counter to Addr (1NNN).
type Jump struct{ Addr Address }

// CallSubroutine pushes the program counter and jumps to Addr (2NNN).
type CallSubroutine struct{ Addr Address }

// SkipIfEqualConst skips the next instruction if VX equals Value (3XNN).
type SkipIfEqualConst struct {
	X     Var
	Value Const8
}

// SkipIfNotEqualConst skips the next instruction if VX does not equal
// Value (4XNN).
type SkipIfNotEqualConst struct {
	X     Var
	Value Const8
}

// SkipIfEqual skips the next instruction if VX equals VY (5XY0).
type SkipIfEqual struct{ X, Y Var }

// SetConst sets VX to Value (6XNN).
type SetConst struct {
	X     Var
	Value Const8
}

// AddConst adds Value to VX without touching the carry flag (7XNN).
type AddConst struct {
	X     Var
	Value Const8
}

// Set copies VY into VX (8XY0).
type Set struct{ X, Y Var }

// Or sets VX to VX|VY (8XY1).
type Or struct{ X, Y Var }

// And sets VX to VX&VY (8XY2).
type And struct{ X, Y Var }

// Xor sets VX to VX^VY (8XY3).
type Xor struct{ X, Y Var }

// AddReg adds VY to VX, carry in VF (8XY4).
type AddReg struct{ X, Y Var }

// SubReg subtracts VY from VX, VF cleared on borrow (8XY5).
type SubReg struct{ X, Y Var }

// ShiftRight shifts VX right by one, bit 0 in VF (8XY6).
type ShiftRight struct{ X, Y Var }

// SubRegReverse sets VX to VY-VX, VF cleared on borrow (8XY7).
type SubRegReverse struct{ X, Y Var }

// ShiftLeft shifts VX left by one, bit 7 in VF (8XYE).
type ShiftLeft struct{ X, Y Var }

// SkipIfNotEqual skips the next instruction if VX does not equal VY (9XY0).
type SkipIfNotEqual struct{ X, Y Var }

// SetIndex loads Addr into the index register (ANNN).
type SetIndex struct{ Addr Address }

// JumpWithOffset jumps to Addr plus V0 (BNNN).
type JumpWithOffset struct{ Addr Address }

// Random sets VX to a random byte masked by Mask (CXNN).
type Random struct {
	X    Var
	Mask Const8
}

// Draw draws the sprite at the index register to (VX, VY) with the given
// height (DXYN).
type Draw struct {
	X, Y   Var
	Height Const4
}

// KeyPressed skips the next instruction if the key in VX is pressed (EX9E).
type KeyPressed struct{ X Var }

// KeyNotPressed skips the next instruction if the key in VX is not
// pressed (EXA1).
type KeyNotPressed struct{ X Var }

// GetDelayTimer stores the delay timer in VX (FX07).
type GetDelayTimer struct{ X Var }

// WaitKey blocks until a key is pressed and stores it in VX (FX0A).
type WaitKey struct{ X Var }

// SetDelayTimer sets the delay timer to VX (FX15).
type SetDelayTimer struct{ X Var }

// SetSoundTimer sets the sound timer to VX (FX18).
type SetSoundTimer struct{ X Var }

// AddIndex adds VX to the index register, VF set on overflow past the
// addressable range (FX1E).
type AddIndex struct{ X Var }

// SetSpriteIndex points the index register at the font sprite for the
// hexadecimal digit in VX (FX29).
type SetSpriteIndex struct{ X Var }

// StoreBCD stores the binary-coded decimal digits of VX at I, I+1 and
// I+2 (FX33).
type StoreBCD struct{ X Var }

// StoreRegisters stores V0..VX at memory starting at the index
// register (FX55).
type StoreRegisters struct{ X Var }

// LoadRegisters loads V0..VX from memory starting at the index
// register (FX65).
type LoadRegisters struct{ X Var }

func (ClearScreen) isInstruction()         {}
func (Return) isInstruction()              {}
func (CallMachineRoutine) isInstruction()  {}
func (Jump) isInstruction()                {}
func (CallSubroutine) isInstruction()      {}
func (SkipIfEqualConst) isInstruction()    {}
func (SkipIfNotEqualConst) isInstruction() {}
func (SkipIfEqual) isInstruction()         {}
func (SetConst) isInstruction()            {}
func (AddConst) isInstruction()            {}
func (Set) isInstruction()                 {}
func (Or) isInstruction()                  {}
func (And) isInstruction()                 {}
func (Xor) isInstruction()                 {}
func (AddReg) isInstruction()              {}
func (SubReg) isInstruction()              {}
func (ShiftRight) isInstruction()          {}
func (SubRegReverse) isInstruction()       {}
func (ShiftLeft) isInstruction()           {}
func (SkipIfNotEqual) isInstruction()      {}
func (SetIndex) isInstruction()            {}
func (JumpWithOffset) isInstruction()      {}
func (Random) isInstruction()              {}
func (Draw) isInstruction()                {}
func (KeyPressed) isInstruction()          {}
func (KeyNotPressed) isInstruction()       {}
func (GetDelayTimer) isInstruction()       {}
func (WaitKey) isInstruction()             {}
func (SetDelayTimer) isInstruction()       {}
func (SetSoundTimer) isInstruction()       {}
func (AddIndex) isInstruction()            {}
func (SetSpriteIndex) isInstruction()      {}
func (StoreBCD) isInstruction()            {}
func (StoreRegisters) isInstruction()      {}
func (LoadRegisters) isInstruction()       {}

// String renders the instruction as an assembler mnemonic.
func (ClearScreen) String() string { return "cls" }

func (Return) String() string { return "rts" }

func (i CallMachineRoutine) String() string { return fmt.Sprintf("sys %s", i.Addr) }

func (i Jump) String() string { return fmt.Sprintf("jmp %s", i.Addr) }

func (i CallSubroutine) String() string { return fmt.Sprintf("jsr %s", i.Addr) }

func (i SkipIfEqualConst) String() string { return fmt.Sprintf("skeq %s, %d", i.X, i.Value) }

func (i SkipIfNotEqualConst) String() string { return fmt.Sprintf("skne %s, %d", i.X, i.Value) }

func (i SkipIfEqual) String() string { return fmt.Sprintf("skeq %s, %s", i.X, i.Y) }

func (i SetConst) String() string { return fmt.Sprintf("mov %s, %d", i.X, i.Value) }

func (i AddConst) String() string { return fmt.Sprintf("add %s, %d", i.X, i.Value) }

func (i Set) String() string { return fmt.Sprintf("mov %s, %s", i.X, i.Y) }

func (i Or) String() string { return fmt.Sprintf("or %s, %s", i.X, i.Y) }

func (i And) String() string { return fmt.Sprintf("and %s, %s", i.X, i.Y) }

func (i Xor) String() string { return fmt.Sprintf("xor %s, %s", i.X, i.Y) }

func (i AddReg) String() string { return fmt.Sprintf("add %s, %s", i.X, i.Y) }

func (i SubReg) String() string { return fmt.Sprintf("sub %s, %s", i.X, i.Y) }

func (i ShiftRight) String() string { return fmt.Sprintf("shr %s", i.X) }

func (i SubRegReverse) String() string { return fmt.Sprintf("rsb %s, %s", i.X, i.Y) }

func (i ShiftLeft) String() string { return fmt.Sprintf("shl %s", i.X) }

func (i SkipIfNotEqual) String() string { return fmt.Sprintf("skne %s, %s", i.X, i.Y) }

func (i SetIndex) String() string { return fmt.Sprintf("mvi %s", i.Addr) }

func (i JumpWithOffset) String() string { return fmt.Sprintf("jmi %s", i.Addr) }

func (i Random) String() string { return fmt.Sprintf("rand %s, %d", i.X, i.Mask) }

func (i Draw) String() string { return fmt.Sprintf("sprite %s, %s, %d", i.X, i.Y, i.Height) }

func (i KeyPressed) String() string { return fmt.Sprintf("skpr %s", i.X) }

func (i KeyNotPressed) String() string { return fmt.Sprintf("skup %s", i.X) }

func (i GetDelayTimer) String() string { return fmt.Sprintf("gdelay %s", i.X) }

func (i WaitKey) String() string { return fmt.Sprintf("key %s", i.X) }

func (i SetDelayTimer) String() string { return fmt.Sprintf("sdelay %s", i.X) }

func (i SetSoundTimer) String() string { return fmt.Sprintf("ssound %s", i.X) }

func (i AddIndex) String() string { return fmt.Sprintf("adi %s", i.X) }

func (i SetSpriteIndex) String() string { return fmt.Sprintf("font %s", i.X) }

func (i StoreBCD) String() string { return fmt.Sprintf("bcd %s", i.X) }

func (i StoreRegisters) String() string { return fmt.Sprintf("str %s", i.X) }

func (i LoadRegisters) String() string { return fmt.Sprintf("ldr %s", i.X) }
