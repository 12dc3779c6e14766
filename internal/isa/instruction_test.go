package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstructionString(t *testing.T) {
	tests := []struct {
		instr    Instruction
		expected string
	}{
		{ClearScreen{}, "cls"},
		{Return{}, "rts"},
		{CallMachineRoutine{Addr: 0x123}, "sys 0x0123"},
		{Jump{Addr: 0x234}, "jmp 0x0234"},
		{CallSubroutine{Addr: 0x345}, "jsr 0x0345"},
		{SkipIfEqualConst{X: 1, Value: 0x42}, "skeq v1, 66"},
		{SkipIfNotEqualConst{X: 1, Value: 0x42}, "skne v1, 66"},
		{SkipIfEqual{X: 1, Y: 2}, "skeq v1, v2"},
		{SetConst{X: 0, Value: 0xFF}, "mov v0, 255"},
		{AddConst{X: 0xE, Value: 1}, "add ve, 1"},
		{Set{X: 1, Y: 2}, "mov v1, v2"},
		{Or{X: 1, Y: 2}, "or v1, v2"},
		{And{X: 1, Y: 2}, "and v1, v2"},
		{Xor{X: 1, Y: 2}, "xor v1, v2"},
		{AddReg{X: 1, Y: 2}, "add v1, v2"},
		{SubReg{X: 1, Y: 2}, "sub v1, v2"},
		{ShiftRight{X: 1, Y: 2}, "shr v1"},
		{SubRegReverse{X: 1, Y: 2}, "rsb v1, v2"},
		{ShiftLeft{X: 1, Y: 2}, "shl v1"},
		{SkipIfNotEqual{X: 1, Y: 2}, "skne v1, v2"},
		{SetIndex{Addr: 0x200}, "mvi 0x0200"},
		{JumpWithOffset{Addr: 0x234}, "jmi 0x0234"},
		{Random{X: 1, Mask: 0x0F}, "rand v1, 15"},
		{Draw{X: 1, Y: 2, Height: 0xF}, "sprite v1, v2, 15"},
		{KeyPressed{X: 1}, "skpr v1"},
		{KeyNotPressed{X: 1}, "skup v1"},
		{GetDelayTimer{X: 1}, "gdelay v1"},
		{WaitKey{X: 1}, "key v1"},
		{SetDelayTimer{X: 1}, "sdelay v1"},
		{SetSoundTimer{X: 1}, "ssound v1"},
		{AddIndex{X: 1}, "adi v1"},
		{SetSpriteIndex{X: 1}, "font v1"},
		{StoreBCD{X: 1}, "bcd v1"},
		{StoreRegisters{X: 1}, "str v1"},
		{LoadRegisters{X: 1}, "ldr v1"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.instr.String())
		})
	}
}
