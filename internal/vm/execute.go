package vm

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/kapitanov/chip8/internal/isa"
)

var errProgramLoop = errors.New("program loop")

// execute applies one decoded instruction to the machine state. The type
// switch covers every instruction variant; decode failures never reach
// this point.
func (vm *VM) execute(instr isa.Instruction) error {
	switch in := instr.(type) {
	case isa.ClearScreen:
		for i := range vm.gfx {
			vm.gfx[i] = 0
		}
		vm.drawFlag = true
		vm.pc += InstructionSize

	case isa.Return:
		vm.sp--
		vm.pc = vm.stack[vm.sp]
		vm.pc += InstructionSize

	case isa.CallMachineRoutine:
		// Native RCA 1802 routines do not exist here.
		slog.Debug("ignoring machine routine call", "addr", in.Addr.String())
		vm.pc += InstructionSize

	case isa.Jump:
		pc := uint16(in.Addr)
		if pc == vm.pc {
			return errProgramLoop
		}
		vm.pc = pc

	case isa.CallSubroutine:
		vm.stack[vm.sp] = vm.pc
		vm.sp++
		vm.pc = uint16(in.Addr)

	case isa.SkipIfEqualConst:
		vm.skipIf(vm.registers[in.X] == uint8(in.Value))

	case isa.SkipIfNotEqualConst:
		vm.skipIf(vm.registers[in.X] != uint8(in.Value))

	case isa.SkipIfEqual:
		vm.skipIf(vm.registers[in.X] == vm.registers[in.Y])

	case isa.SetConst:
		vm.registers[in.X] = uint8(in.Value)
		vm.pc += InstructionSize

	case isa.AddConst:
		// No carry generated
		vm.registers[in.X] += uint8(in.Value)
		vm.pc += InstructionSize

	case isa.Set:
		vm.registers[in.X] = vm.registers[in.Y]
		vm.pc += InstructionSize

	case isa.Or:
		vm.registers[in.X] |= vm.registers[in.Y]
		vm.pc += InstructionSize

	case isa.And:
		vm.registers[in.X] &= vm.registers[in.Y]
		vm.pc += InstructionSize

	case isa.Xor:
		vm.registers[in.X] ^= vm.registers[in.Y]
		vm.pc += InstructionSize

	case isa.AddReg:
		sum := uint16(vm.registers[in.X]) + uint16(vm.registers[in.Y])
		vm.registers[in.X] = uint8(sum)
		if sum > 0xFF {
			vm.registers[0x0F] = 1
		} else {
			vm.registers[0x0F] = 0
		}
		vm.pc += InstructionSize

	case isa.SubReg:
		x, y := vm.registers[in.X], vm.registers[in.Y]
		if y > x {
			vm.registers[0x0F] = 0
		} else {
			vm.registers[0x0F] = 1
		}
		vm.registers[in.X] = x - y
		vm.pc += InstructionSize

	case isa.ShiftRight:
		x := vm.registers[in.X]
		vm.registers[0x0F] = x & 0x1
		vm.registers[in.X] = x >> 1
		vm.pc += InstructionSize

	case isa.SubRegReverse:
		x, y := vm.registers[in.X], vm.registers[in.Y]
		if x > y {
			vm.registers[0x0F] = 0
		} else {
			vm.registers[0x0F] = 1
		}
		vm.registers[in.X] = y - x
		vm.pc += InstructionSize

	case isa.ShiftLeft:
		x := vm.registers[in.X]
		vm.registers[0x0F] = x >> 7
		vm.registers[in.X] = x << 1
		vm.pc += InstructionSize

	case isa.SkipIfNotEqual:
		vm.skipIf(vm.registers[in.X] != vm.registers[in.Y])

	case isa.SetIndex:
		vm.index = uint16(in.Addr)
		vm.pc += InstructionSize

	case isa.JumpWithOffset:
		target, err := isa.AddressFromOffset(uint16(in.Addr) + uint16(vm.registers[0]))
		if err != nil {
			return fmt.Errorf("jmi 0x%04x: %w", uint16(in.Addr), err)
		}
		vm.pc = uint16(target)

	case isa.Random:
		x := uint8(rand.IntN(256))
		vm.registers[in.X] = x & uint8(in.Mask)
		vm.pc += InstructionSize

	case isa.Draw:
		vm.drawSprite(in)

	case isa.KeyPressed:
		vm.skipIf(vm.keypad[vm.registers[in.X]] != 0)

	case isa.KeyNotPressed:
		vm.skipIf(vm.keypad[vm.registers[in.X]] == 0)

	case isa.GetDelayTimer:
		vm.registers[in.X] = vm.delayTimer
		vm.pc += InstructionSize

	case isa.WaitKey:
		// Repeats at the same pc until a key is down.
		for i := range vm.keypad {
			if vm.keypad[i] != 0 {
				vm.registers[in.X] = uint8(i)
				vm.pc += InstructionSize
				break
			}
		}

	case isa.SetDelayTimer:
		vm.delayTimer = vm.registers[in.X]
		vm.pc += InstructionSize

	case isa.SetSoundTimer:
		vm.soundTimer = vm.registers[in.X]
		vm.pc += InstructionSize

	case isa.AddIndex:
		x := uint16(vm.registers[in.X])
		if vm.index+x > 0x0FFF {
			vm.registers[0x0F] = 1
		} else {
			vm.registers[0x0F] = 0
		}
		vm.index += x
		vm.pc += InstructionSize

	case isa.SetSpriteIndex:
		// Font sprites are 5 bytes high, loaded at 0x0000.
		vm.index = uint16(vm.registers[in.X]) * 0x5
		vm.pc += InstructionSize

	case isa.StoreBCD:
		x := vm.registers[in.X]
		vm.memory[vm.index] = x / 100
		vm.memory[vm.index+1] = (x / 10) % 10
		vm.memory[vm.index+2] = x % 10
		vm.pc += InstructionSize

	case isa.StoreRegisters:
		n := uint16(in.X)
		for i := uint16(0); i <= n; i++ {
			vm.memory[vm.index+i] = vm.registers[i]
		}

		// On the original interpreter, when the operation is done, I = I + X + 1.
		vm.index += n + 1
		vm.pc += InstructionSize

	case isa.LoadRegisters:
		n := uint16(in.X)
		for i := uint16(0); i <= n; i++ {
			vm.registers[i] = vm.memory[vm.index+i]
		}

		// On the original interpreter, when the operation is done, I = I + X + 1.
		vm.index += n + 1
		vm.pc += InstructionSize

	default:
		return fmt.Errorf("no execution for instruction %q", instr)
	}

	return nil
}

func (vm *VM) skipIf(condition bool) {
	if condition {
		vm.pc += 2 * InstructionSize
	} else {
		vm.pc += InstructionSize
	}
}

// drawSprite XOR-draws a sprite read from the index register at the screen
// location held in the operand registers. Sprites are 8 pixels wide and
// wrap around the screen. VF reports whether any pixel was cleared.
func (vm *VM) drawSprite(in isa.Draw) {
	xLocation := uint16(vm.registers[in.X])
	yLocation := uint16(vm.registers[in.Y])
	height := uint16(in.Height)

	hasCollision := uint8(0)
	for y := uint16(0); y < height; y++ {
		pixel := vm.memory[(vm.index+y)%MemorySize]

		const width = uint16(8)
		for x := uint16(0); x < width; x++ {
			mask := uint8(0x80 >> x)
			if (pixel & mask) != 0 {
				screenAddr := getScreenAddr(x+xLocation, y+yLocation)

				if vm.gfx[screenAddr] != 0 {
					hasCollision = 1
				}

				vm.gfx[screenAddr] ^= 1
			}
		}
	}

	vm.registers[0x0F] = hasCollision
	vm.drawFlag = true
	vm.pc += InstructionSize
}

func getScreenAddr(x, y uint16) uint16 {
	x %= ScreenWidth
	y %= ScreenHeight

	screenAddr := ScreenWidth*(y) + x
	return screenAddr
}
