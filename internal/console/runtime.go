// Package console wires the bus, CPU, timer, PPU and APU into a single
// runnable machine and drives them from wall-clock time.
package console

import (
	"time"

	"github.com/valep27/dmgcore/internal/audio"
	"github.com/valep27/dmgcore/internal/bus"
	"github.com/valep27/dmgcore/internal/cart"
	"github.com/valep27/dmgcore/internal/cpu"
	"github.com/valep27/dmgcore/internal/timer"
	"github.com/valep27/dmgcore/internal/timing"
	"github.com/valep27/dmgcore/internal/video"
)

// Runtime is the Bus-centered aggregate described by the "mutually
// referential ownership" design: it owns the Bus, and the CPU/PPU are
// handed a pointer to it, while Timer/APU are merely attached to it for
// register routing. Nothing holds a pointer back to Runtime itself.
type Runtime struct {
	Bus   *bus.Bus
	CPU   *cpu.CPU
	PPU   *video.PPU
	Timer *timer.Timer
	APU   *audio.APU

	carryoverDots int
}

// New builds a Runtime around the given cartridge image and optional
// boot ROM. With no boot ROM, the CPU starts directly at 0x0100 with
// the post-boot register state real hardware leaves behind.
func New(romData []byte, bootROM []byte, savePath string) (*Runtime, error) {
	image := cart.New(romData)
	controller, err := image.NewController(savePath)
	if err != nil {
		return nil, err
	}

	b := bus.New(controller)
	t := timer.New()
	a := audio.New(timing.CPUFrequency)
	b.AttachTimer(t)
	b.AttachAPU(a)

	c := cpu.New(b)
	p := video.New(b)

	if len(bootROM) > 0 {
		b.LoadBootROM(bootROM)
	} else {
		c.SetPostBootState()
	}

	return &Runtime{Bus: b, CPU: c, PPU: p, Timer: t, APU: a}, nil
}

// Step runs the machine for approximately elapsed wall-clock time,
// executing whole CPU instructions until the dot budget is exhausted
// (the last instruction of a slice may run slightly over budget; the
// excess carries into the next Step's budget rather than being lost).
func (r *Runtime) Step(elapsed time.Duration) {
	budget := timing.DotsFor(elapsed) + r.carryoverDots

	spent := 0
	for spent < budget {
		cycles := r.CPU.Step()
		dots := cycles * 4

		r.Timer.Tick(dots)
		r.PPU.Tick(dots)
		r.APU.Tick(dots)
		r.Bus.Tick(dots)

		spent += dots
	}
	r.carryoverDots = budget - spent
}

// Press/Release forward joypad transitions to the bus.
func (r *Runtime) Press(button bus.Button)   { r.Bus.Press(button) }
func (r *Runtime) Release(button bus.Button) { r.Bus.Release(button) }

// FrameBuffer returns the PPU's last rendered frame.
func (r *Runtime) FrameBuffer() *video.FrameBuffer { return r.PPU.FrameBuffer() }

// DrainSamples pulls up to count mixed stereo sample pairs from the
// APU's output ring and returns them as 2*count interleaved L/R float32
// values, zero-filled on underrun.
func (r *Runtime) DrainSamples(count int) []float32 {
	return r.APU.GetSamples(count)
}
