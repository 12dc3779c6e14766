// Package hal provides a headless implementation of the machine's hardware
// boundary. Frames are paced with a plain sleep, no keys are ever reported,
// and draw and beep requests are counted instead of rendered.
package hal

import (
	"log/slog"
	"time"

	"github.com/kapitanov/chip8/internal/vm"
)

const DefaultFrameDelay = 1200 * time.Microsecond

type HAL struct {
	frameDelay time.Duration

	draws uint64
	beeps uint64
}

func New() *HAL {
	return &HAL{
		frameDelay: DefaultFrameDelay,
	}
}

// ReadInput reports no key events: a headless machine has no keypad.
func (hal *HAL) ReadInput(_ func(vm.Key), _ func(vm.Key)) error {
	return nil
}

// Draw accepts a frame and counts it. The frame is not rendered anywhere.
func (hal *HAL) Draw(gfx []byte) error {
	hal.draws++
	slog.Debug("hal: frame", "n", hal.draws, "pixels", countPixels(gfx))
	return nil
}

// Beep counts a beep request.
func (hal *HAL) Beep() error {
	hal.beeps++
	slog.Debug("hal: beep", "n", hal.beeps)
	return nil
}

func (hal *HAL) WaitForNextFrame() error {
	time.Sleep(hal.frameDelay)
	return nil
}

// Draws returns the number of frames the machine has presented.
func (hal *HAL) Draws() uint64 {
	return hal.draws
}

// Beeps returns the number of beep requests the machine has made.
func (hal *HAL) Beeps() uint64 {
	return hal.beeps
}

func countPixels(gfx []byte) int {
	n := 0
	for _, p := range gfx {
		if p != 0 {
			n++
		}
	}
	return n
}
