package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHAL struct {
	keysDown []Key

	draws int
	beeps int
}

func (h *fakeHAL) ReadInput(keyDown func(Key), _ func(Key)) error {
	for _, k := range h.keysDown {
		keyDown(k)
	}
	return nil
}

func (h *fakeHAL) Draw(_ []byte) error {
	h.draws++
	return nil
}

func (h *fakeHAL) Beep() error {
	h.beeps++
	return nil
}

func (h *fakeHAL) WaitForNextFrame() error {
	return nil
}

func newTestVM(program ...byte) *VM {
	v := New(program)
	v.initialize()
	return v
}

func TestInitialize(t *testing.T) {
	v := newTestVM(0x12, 0x34, 0x56)

	assert.Equal(t, ProgramStart, v.pc)
	assert.Equal(t, uint16(0), v.sp)
	assert.Equal(t, uint16(0), v.index)

	// Program bytes land at the program start
	assert.Equal(t, []uint8{0x12, 0x34, 0x56}, v.memory[ProgramStart:ProgramStart+3])

	// Font lands at 0x0000
	assert.Equal(t, chip8Font, v.memory[:len(chip8Font)])
}

func TestFetch(t *testing.T) {
	v := newTestVM(0xA2, 0x00)

	hi, lo, err := v.fetch()
	require.NoError(t, err)
	assert.Equal(t, byte(0xA2), hi)
	assert.Equal(t, byte(0x00), lo)

	v.pc = MemorySize - 1
	_, _, err = v.fetch()
	require.Error(t, err)
}

func TestStep_SkipsUnknownWord(t *testing.T) {
	v := newTestVM(0xFF, 0xFF)

	err := v.step(&fakeHAL{})
	require.NoError(t, err)

	assert.Equal(t, ProgramStart+InstructionSize, v.pc)
	assert.Equal(t, uint64(1), v.SkippedWords())
	assert.Equal(t, uint64(1), v.Steps())
}

func TestStep_Timers(t *testing.T) {
	// 0x0000 decodes to a machine routine call, which is a no-op.
	v := newTestVM(0x00, 0x00, 0x00, 0x00)
	v.delayTimer = 2
	v.soundTimer = 1

	h := &fakeHAL{}
	require.NoError(t, v.step(h))

	assert.Equal(t, uint8(1), v.delayTimer)
	assert.Equal(t, uint8(0), v.soundTimer)
	assert.Equal(t, 1, h.beeps)

	require.NoError(t, v.step(h))
	assert.Equal(t, uint8(0), v.delayTimer)
	assert.Equal(t, 1, h.beeps)
}

func TestRun_ProgramLoop(t *testing.T) {
	// jmp 0x200 at 0x200 jumps to itself
	v := New([]byte{0x12, 0x00})

	err := v.Run(&fakeHAL{}, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v.Steps())
}

func TestRun_MaxSteps(t *testing.T) {
	// mov v0, 1; mov v1, 2; jmp 0x204 (self)
	v := New([]byte{0x60, 0x01, 0x61, 0x02, 0x12, 0x04})

	err := v.Run(&fakeHAL{}, 2)
	require.NoError(t, err)

	assert.Equal(t, uint64(2), v.Steps())
	assert.Equal(t, uint8(1), v.registers[0])
	assert.Equal(t, uint8(2), v.registers[1])
}

func TestRun_DrawsFrames(t *testing.T) {
	// cls; jmp 0x202 (self)
	v := New([]byte{0x00, 0xE0, 0x12, 0x02})
	h := &fakeHAL{}

	err := v.Run(h, 0)
	require.NoError(t, err)
	assert.NotZero(t, h.draws)
}

func TestRun_KeypadInput(t *testing.T) {
	// skpr v0 with key 0 held: both key branches taken over two runs
	v := New([]byte{0xE0, 0x9E, 0x12, 0x02})

	require.NoError(t, v.Run(&fakeHAL{keysDown: []Key{Key0}}, 2))
	assert.Equal(t, uint8(0), v.keypad[1])
	assert.Equal(t, uint8(1), v.keypad[0])
}
