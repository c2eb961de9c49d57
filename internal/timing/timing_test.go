package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTargetFPSMatchesDMGRefreshRate(t *testing.T) {
	assert.InDelta(t, 59.7275, TargetFPS(), 0.001)
}

func TestDotsForOneFrameDurationMatchesCyclesPerFrame(t *testing.T) {
	dots := DotsFor(FrameDuration())
	assert.InDelta(t, CyclesPerFrame, dots, 2)
}

func TestDotsForOneSecondMatchesCPUFrequency(t *testing.T) {
	assert.Equal(t, CPUFrequency, DotsFor(time.Second))
}
