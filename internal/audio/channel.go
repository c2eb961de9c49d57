package audio

// channel holds the derived (non-register) state of one of the four
// APU voices. Register bytes live on APU itself; mapRegisters recomputes
// these fields every time a register write lands.
//
//   - duty: for the two square channels, which of the four waveform
//     shapes to play
//   - sweep: periodic frequency shift, channel 1 only
//   - envelope: periodic volume shift, channels 1/2/4
//   - period: 11-bit value driving frequency = 131072 / (2048 - period) Hz
//   - dacEnabled: if false the channel is silent regardless of volume
//   - lfsr: linear feedback shift register driving the noise channel
type channel struct {
	enabled    bool
	dacEnabled bool
	left, right bool

	duty   uint8
	timer  uint8
	length uint16
	volume uint8

	sweepPeriod  uint8
	sweepDown    bool
	sweepStep    uint8
	sweepEnabled bool
	sweepTimer   uint8
	shadowFreq   uint16
	sweepNegUsed bool

	envelopePace    uint8
	envelopeUp      bool
	envelopeCounter uint8
	envelopeLatched bool

	period       uint16
	trigger      bool
	lengthEnable bool
	freqTimer    int
	dutyStep     uint8
	waveIndex    uint8
	waveSample   uint8
	noiseTimer   int

	lfsr        uint16
	use7bitLFSR bool
	shift       uint8
	divider     uint8
}

// sweepTarget computes the post-sweep frequency and whether it overflows
// past the 11-bit period range, without mutating channel state. Used
// both for the live sweep tick and the dummy overflow check on trigger.
func (ch *channel) sweepTarget() (freq uint16, overflow bool) {
	delta := ch.shadowFreq >> ch.sweepStep
	if ch.sweepDown {
		if delta > ch.shadowFreq {
			return 0, false
		}
		freq = ch.shadowFreq - delta
	} else {
		freq = ch.shadowFreq + delta
	}
	return freq, freq > 0x7FF
}

var dutyPatterns = [4][8]int32{
	{0, 1, 0, 0, 0, 0, 0, 0},
	{0, 1, 1, 0, 0, 0, 0, 0},
	{0, 1, 1, 1, 1, 0, 0, 0},
	{1, 0, 0, 1, 1, 1, 1, 1},
}

var noiseDividers = [8]int{8, 16, 32, 48, 64, 80, 96, 112}
