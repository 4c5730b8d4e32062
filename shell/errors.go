package shell

import "errors"

var (
	// ErrBlockLength indicates a block that is not exactly FrameLength pulses.
	ErrBlockLength = errors.New("shell: block must hold 16 pulses")

	// ErrNegativePulse indicates a negative amplitude passed to the
	// magnitude-only block coder.
	ErrNegativePulse = errors.New("shell: negative pulse amplitude")

	// ErrPulseOverflow indicates amplitudes too large to code: a block sum
	// above MaxPulses, or a frame block that still overflows after
	// MaxShifts halvings.
	ErrPulseOverflow = errors.New("shell: pulse amplitude exceeds table capacity")

	// ErrFrameLength indicates a frame that is not a whole number of blocks.
	ErrFrameLength = errors.New("shell: frame length must be a multiple of 16")

	// ErrCorruptFrame indicates a frame stream whose overflow escape chain is
	// longer than any encoder produces.
	ErrCorruptFrame = errors.New("shell: corrupt frame")
)

// CheckBlock reports whether pulses satisfies the preconditions of Encode.
func CheckBlock(pulses []int) error {
	if len(pulses) != FrameLength {
		return ErrBlockLength
	}
	sum := 0
	for _, p := range pulses {
		if p < 0 {
			return ErrNegativePulse
		}
		if p > MaxPulses-sum {
			return ErrPulseOverflow
		}
		sum += p
	}
	return nil
}
