// Package audio implements the DMG's four-voice Audio Processing Unit:
// two pulse channels (one with sweep), a programmable wave channel and
// a noise channel, mixed to 44.1kHz stereo float samples on demand.
package audio

const (
	waveRAMSize       = 16 // bytes; holds 32 packed 4-bit samples
	cyclesPerFrameStep = 8192
	sampleScale       = 1.0 / 15.0
)

// APU is the Audio Processing Unit. It is ticked in CPU dots alongside
// the timer and PPU, and polled for samples by the host audio callback;
// both ends only ever touch it through Tick/ReadRegister/WriteRegister/
// GetSamples. Neither APU nor console.Runtime does any locking, so a
// host that calls GetSamples from a different goroutine than Tick must
// keep those calls from overlapping itself.
type APU struct {
	enabled           bool
	ch                [4]channel
	vinLeft, vinRight bool
	volLeft, volRight uint8

	mixLeftAcc, mixRightAcc float64
	mixAccumCycles          int
	pcmBuffer               []float32
	pcmCursor               int
	pcmCycleAcc             float64
	pcmCyclesPerSample      float64
	hostSampleRate          int

	frameCounter uint8
	cycles       int

	nr10, nr11, nr12, nr13, nr14 uint8
	nr21, nr22, nr23, nr24       uint8
	nr30, nr31, nr32, nr33, nr34 uint8
	nr41, nr42, nr43, nr44       uint8
	nr50, nr51, nr52             uint8
	waveRAM                      [waveRAMSize]uint8

	cpuFrequency int
}

// New creates an APU that synthesizes 44.1kHz stereo samples, deriving
// its per-sample cycle budget from cpuFrequency (4194304 on the DMG).
func New(cpuFrequency int) *APU {
	a := &APU{hostSampleRate: 44100, cpuFrequency: cpuFrequency}
	a.pcmCyclesPerSample = float64(cpuFrequency) / float64(a.hostSampleRate)
	return a
}

// Tick advances every channel generator and the frame sequencer by n
// CPU dots, accumulating mixed samples for later retrieval via
// GetSamples.
func (a *APU) Tick(n int) {
	if !a.enabled || n <= 0 {
		return
	}

	a.tickGenerators(n)

	a.cycles += n
	for a.cycles >= cyclesPerFrameStep {
		a.cycles -= cyclesPerFrameStep
		a.tickFrameSequencer()
	}
}

func (a *APU) tickGenerators(cycles int) {
	var left, right float64
	for i := range a.ch {
		ch := &a.ch[i]
		if !ch.enabled || !ch.dacEnabled {
			continue
		}

		var level float64
		switch i {
		case 0, 1:
			level = a.stepSquare(ch, cycles)
		case 2:
			level = a.stepWave(ch, cycles)
		case 3:
			level = a.stepNoise(ch, cycles)
		}

		if ch.left {
			left += level
		}
		if ch.right {
			right += level
		}
	}

	a.mixLeftAcc += left * float64(cycles)
	a.mixRightAcc += right * float64(cycles)
	a.mixAccumCycles += cycles
	a.flushMix(cycles)
}

func (a *APU) flushMix(cycles int) {
	if a.pcmCyclesPerSample == 0 {
		return
	}

	a.pcmCycleAcc += float64(cycles)
	for a.pcmCycleAcc >= a.pcmCyclesPerSample {
		a.pcmCycleAcc -= a.pcmCyclesPerSample
		left, right := a.exportSample()
		a.pcmBuffer = append(a.pcmBuffer, left, right)
	}
}

func (a *APU) exportSample() (float32, float32) {
	if a.mixAccumCycles == 0 {
		return 0, 0
	}

	leftAvg := a.mixLeftAcc / float64(a.mixAccumCycles)
	rightAvg := a.mixRightAcc / float64(a.mixAccumCycles)

	a.mixLeftAcc, a.mixRightAcc, a.mixAccumCycles = 0, 0, 0

	return scaleSample(leftAvg, a.volLeft), scaleSample(rightAvg, a.volRight)
}

func scaleSample(avg float64, masterVol uint8) float32 {
	gain := float64(masterVol+1) / 8.0
	v := avg * gain * sampleScale
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return float32(v)
}

func (a *APU) stepSquare(ch *channel, cycles int) float64 {
	period := squarePeriodCycles(ch)
	if period == 0 {
		return 0
	}
	if ch.freqTimer <= 0 {
		ch.freqTimer = period
	}

	ch.freqTimer -= cycles
	for ch.freqTimer <= 0 {
		ch.freqTimer += period
		ch.dutyStep = (ch.dutyStep + 1) & 0x7
	}

	if ch.volume == 0 {
		return 0
	}
	if dutyPatterns[ch.duty&0x3][ch.dutyStep] == 0 {
		return -float64(ch.volume)
	}
	return float64(ch.volume)
}

func (a *APU) stepWave(ch *channel, cycles int) float64 {
	period := wavePeriodCycles(ch)
	if period == 0 {
		return 0
	}
	if ch.freqTimer <= 0 {
		ch.freqTimer = period
	}

	ch.freqTimer -= cycles
	for ch.freqTimer <= 0 {
		ch.freqTimer += period
		ch.waveIndex = (ch.waveIndex + 1) & 0x1F
	}

	sample := float64(a.readWaveSample(ch.waveIndex)) - 8
	switch ch.volume & 0b11 {
	case 0:
		return 0
	case 2:
		return sample / 2
	case 3:
		return sample / 4
	default:
		return sample
	}
}

func (a *APU) stepNoise(ch *channel, cycles int) float64 {
	period := noisePeriodCycles(ch)
	if period == 0 {
		return 0
	}
	if ch.lfsr == 0 {
		ch.lfsr = 0x7FFF
	}
	if ch.noiseTimer <= 0 {
		ch.noiseTimer = period
	}

	var low uint16
	ch.noiseTimer -= cycles
	for ch.noiseTimer <= 0 {
		ch.noiseTimer += period
		low = (ch.lfsr & 1) ^ ((ch.lfsr >> 1) & 1)
		ch.lfsr = (ch.lfsr >> 1) | (low << 14)
		if ch.use7bitLFSR {
			ch.lfsr = (ch.lfsr &^ (1 << 6)) | (low << 6)
		}
	}

	if ch.volume == 0 {
		return 0
	}
	if ch.lfsr&1 != 0 {
		return -float64(ch.volume)
	}
	return float64(ch.volume)
}

func squarePeriodCycles(ch *channel) int {
	period := 2048 - int(ch.period&0x7FF)
	if period <= 0 {
		return 0
	}
	return period * 4
}

func wavePeriodCycles(ch *channel) int {
	period := 2048 - int(ch.period&0x7FF)
	if period <= 0 {
		return 0
	}
	return period * 2
}

func noisePeriodCycles(ch *channel) int {
	period := noiseDividers[ch.divider&0x7] << ch.shift
	if period <= 0 {
		return 0
	}
	return period
}

func (a *APU) readWaveSample(index uint8) uint8 {
	value := a.waveRAM[index>>1]
	a.ch[2].waveSample = value
	if index&1 == 0 {
		return value >> 4
	}
	return value & 0x0F
}

func (a *APU) waveRAMLocked() bool {
	return a.enabled && a.ch[2].enabled && a.ch[2].dacEnabled
}

// tickFrameSequencer advances the 512Hz sequencer one step (0-7): length
// ticks on even steps, sweep on steps 2 and 6, envelope on step 7.
func (a *APU) tickFrameSequencer() {
	switch a.frameCounter {
	case 0, 4:
		a.tickLength()
	case 2, 6:
		a.tickLength()
		a.tickSweep()
	case 7:
		a.tickEnvelope()
	}
	a.frameCounter = (a.frameCounter + 1) & 7
}

func (a *APU) tickLength() {
	for i := range a.ch {
		ch := &a.ch[i]
		if ch.lengthEnable && ch.length > 0 {
			ch.length--
			if ch.length == 0 {
				ch.enabled = false
			}
		}
	}
}

func (a *APU) tickSweep() {
	ch := &a.ch[0]
	if !ch.sweepEnabled {
		return
	}

	ch.sweepTimer--
	if ch.sweepTimer > 0 {
		return
	}

	ch.sweepTimer = ch.sweepPeriod
	if ch.sweepTimer == 0 {
		ch.sweepTimer = 8
	}
	if ch.sweepPeriod == 0 {
		return
	}

	newFreq, overflow := ch.sweepTarget()
	if overflow {
		ch.enabled = false
		return
	}
	if ch.sweepDown {
		ch.sweepNegUsed = true
	}
	if ch.sweepStep == 0 {
		return
	}

	ch.shadowFreq = newFreq
	ch.period = newFreq
	a.nr14 = (a.nr14 & 0b1111_1000) | uint8((newFreq>>8)&0b111)
	a.nr13 = uint8(newFreq)

	if _, overflow := ch.sweepTarget(); overflow {
		ch.enabled = false
	}
}

func (a *APU) tickEnvelope() {
	for _, idx := range [3]int{0, 1, 3} {
		ch := &a.ch[idx]
		if !ch.dacEnabled || ch.envelopeLatched {
			continue
		}

		pace := ch.envelopePace
		if pace == 0 {
			pace = 8
		}
		if ch.envelopeCounter == 0 {
			ch.envelopeCounter = pace
		}
		ch.envelopeCounter--
		if ch.envelopeCounter > 0 {
			continue
		}

		if ch.envelopeUp {
			if ch.volume < 15 {
				ch.volume++
				ch.envelopeCounter = pace
			} else {
				ch.envelopeLatched = true
			}
		} else {
			if ch.volume > 0 {
				ch.volume--
				ch.envelopeCounter = pace
			} else {
				ch.envelopeLatched = true
			}
		}
	}
}

// GetSamples drains up to count interleaved stereo sample pairs (so
// 2*count float32 values) from the internal ring, zero-filling any
// shortfall so the host never underruns.
func (a *APU) GetSamples(count int) []float32 {
	if count <= 0 {
		return nil
	}

	needed := count * 2
	out := make([]float32, needed)
	available := len(a.pcmBuffer) - a.pcmCursor
	if available <= 0 {
		return out
	}

	toCopy := min(available, needed)
	copy(out, a.pcmBuffer[a.pcmCursor:a.pcmCursor+toCopy])
	a.pcmCursor += toCopy

	if a.pcmCursor >= len(a.pcmBuffer) {
		a.pcmBuffer = a.pcmBuffer[:0]
		a.pcmCursor = 0
	}

	return out
}

// Enabled reports the APU's master power state (NR52 bit 7).
func (a *APU) Enabled() bool {
	return a.enabled
}
