// Package timing holds the DMG's fixed clock constants and the
// wall-clock/dot-count conversion the console runtime uses to turn
// elapsed host time into a budget of CPU work.
package timing

import "time"

// CyclesPerFrame is the number of dots (T-states) in one 59.7 Hz DMG
// frame (154 scanlines * 456 dots). CPUFrequency is the DMG's fixed
// clock rate.
const (
	CyclesPerFrame = 70224
	CPUFrequency   = 4194304
)

// TargetFPS is the DMG's exact (non-60) refresh rate.
func TargetFPS() float64 {
	return float64(CPUFrequency) / float64(CyclesPerFrame)
}

// FrameDuration is the wall-clock time one frame should take to stay
// in sync with real hardware.
func FrameDuration() time.Duration {
	return time.Duration(float64(time.Second) / TargetFPS())
}

// DotsFor converts an elapsed wall-clock duration into a dot budget,
// the unit console.Runtime.Step consumes.
func DotsFor(elapsed time.Duration) int {
	return int(elapsed.Seconds() * float64(CPUFrequency))
}
