package vm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kapitanov/chip8/internal/isa"
)

const (
	MemorySize    = 4096
	StackSize     = 16
	RegisterCount = 16
	ScreenWidth   = 64
	ScreenHeight  = 32
	KeyCount      = 16

	ProgramStart    = uint16(0x200)
	InstructionSize = 2
)

type VM struct {
	memory    []uint8 // Memory (4k)
	registers []uint8 // V registers (V0-VF)

	stack []uint16 // Stack
	sp    uint16   // Stack pointer

	pc    uint16 // Program counter
	index uint16 // Index register

	delayTimer uint8 // Delay timer
	soundTimer uint8 // Sound timer

	gfx      []uint8 // Graphics buffer
	keypad   []uint8 // Keypad
	drawFlag bool    // Indicates a draw has occurred

	steps   uint64 // Executed instruction count
	skipped uint64 // Unrecognized words stepped over

	program []byte
}

func New(program []byte) *VM {
	return &VM{
		memory:    make([]uint8, MemorySize),
		registers: make([]uint8, RegisterCount),
		stack:     make([]uint16, StackSize),
		gfx:       make([]uint8, ScreenWidth*ScreenHeight),
		keypad:    make([]uint8, KeyCount),
		program:   program,
	}
}

// HAL is the hardware boundary the machine drives: key input, the display
// back end, the beeper and frame pacing.
type HAL interface {
	ReadInput(keyDown func(Key), keyUp func(Key)) error
	Draw(gfx []byte) error
	Beep() error
	WaitForNextFrame() error
}

type Key uint8

const (
	Key0 = Key(iota)
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
)

// Steps returns the number of instructions executed since the machine was
// initialized, counting unrecognized words that were stepped over.
func (vm *VM) Steps() uint64 {
	return vm.steps
}

// SkippedWords returns the number of unrecognized machine words that were
// treated as raw data and stepped over.
func (vm *VM) SkippedWords() uint64 {
	return vm.skipped
}

// Run initializes the machine and drives the fetch-decode-execute loop
// until the program jumps to itself or maxSteps instructions have run.
// A maxSteps of zero means no limit.
func (vm *VM) Run(hal HAL, maxSteps uint64) error {
	vm.initialize()

	for maxSteps == 0 || vm.steps < maxSteps {
		err := vm.runStep(hal)
		if err != nil {
			if errors.Is(err, errProgramLoop) {
				slog.Info("program looped")
				return nil
			}

			return err
		}
	}

	return nil
}

func (vm *VM) runStep(hal HAL) error {
	if err := vm.step(hal); err != nil {
		return err
	}

	if vm.drawFlag {
		if err := hal.Draw(vm.gfx); err != nil {
			return err
		}
		vm.drawFlag = false
	}

	if err := hal.ReadInput(vm.keyDown, vm.keyUp); err != nil {
		return err
	}

	if err := hal.WaitForNextFrame(); err != nil {
		return err
	}

	return nil
}

func (vm *VM) initialize() {
	vm.pc = ProgramStart
	vm.index = 0
	vm.sp = 0
	vm.steps = 0
	vm.skipped = 0

	// Clear the display
	for i := range vm.gfx {
		vm.gfx[i] = 0
	}
	vm.drawFlag = true

	// Clear the stack, keypad, and V registers
	slog.Debug("clear stack", "n", len(vm.stack))
	for i := range vm.stack {
		vm.stack[i] = 0
	}

	slog.Debug("clear keypad", "n", len(vm.keypad))
	for i := range vm.keypad {
		vm.keypad[i] = 0
	}

	slog.Debug("clear registers", "n", len(vm.registers))
	for i := range vm.registers {
		vm.registers[i] = 0
	}

	// Clear memory
	slog.Debug("clear memory", "n", len(vm.memory))
	for i := range vm.memory {
		vm.memory[i] = 0
	}

	// Load font set into memory
	slog.Debug("load font", "at", fmt.Sprintf("0x%04x", 0), "n", len(chip8Font))
	copy(vm.memory[0:], chip8Font)

	// Load program into memory
	slog.Info("load program", "at", fmt.Sprintf("0x%04x", ProgramStart), "n", len(vm.program))
	copy(vm.memory[ProgramStart:], vm.program)

	// Reset timers
	vm.delayTimer = 0
	vm.soundTimer = 0
}

func (vm *VM) keyDown(key Key) {
	vm.keypad[int(key)] = 1
}

func (vm *VM) keyUp(key Key) {
	vm.keypad[int(key)] = 0
}

// step fetches and decodes the word at the program counter and executes it.
// Words that match no instruction encoding are logged and stepped over.
func (vm *VM) step(hal HAL) error {
	hi, lo, err := vm.fetch()
	if err != nil {
		return err
	}

	instr, err := isa.Decode(hi, lo)
	if err != nil {
		var unknownErr *isa.UnknownOpcodeError
		if !errors.As(err, &unknownErr) {
			return err
		}

		slog.Warn("skipping unknown op code",
			"pc", fmt.Sprintf("0x%04x", vm.pc),
			"opcode", fmt.Sprintf("0x%04X", unknownErr.Word()),
		)
		vm.skipped++
		vm.pc += InstructionSize
	} else {
		if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
			slog.Debug(
				"exec",
				"pc", fmt.Sprintf("0x%04x", vm.pc),
				"opcode", fmt.Sprintf("0x%02x%02x", hi, lo),
				"instr", instr.String(),
			)
		}

		if err := vm.execute(instr); err != nil {
			return err
		}
	}

	vm.steps++

	// Update timers
	if vm.delayTimer > 0 {
		vm.delayTimer--
	}

	if vm.soundTimer > 0 {
		if vm.soundTimer == 1 {
			if err := hal.Beep(); err != nil {
				return err
			}
		}
		vm.soundTimer--
	}

	return nil
}

// fetch reads the big-endian 2-byte window at the program counter. Bounds
// checking happens here: the decoder only ever sees a full word.
func (vm *VM) fetch() (hi, lo byte, err error) {
	if int(vm.pc)+1 >= len(vm.memory) {
		return 0, 0, fmt.Errorf("program counter 0x%04x is out of memory", vm.pc)
	}

	return vm.memory[vm.pc], vm.memory[vm.pc+1], nil
}
