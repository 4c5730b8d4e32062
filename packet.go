// packet.go implements the silkshell packet format.

package silkshell

import (
	"fmt"

	"github.com/thesyncim/silkshell/rangecoding"
	"github.com/thesyncim/silkshell/shell"
)

// MaxBlocks is the largest number of 16-pulse blocks in one packet.
const MaxBlocks = 1024

// maxBlockBytes bounds the coded size of one block: 11 block-total symbols,
// 15 splits of at most 8 bits, 160 low bits and 16 signs.
const maxBlockBytes = 64

// Marshal encodes pulses into a packet. The length is rounded up to a whole
// number of blocks; Unmarshal returns the padded length.
func Marshal(pulses []int32) ([]byte, error) {
	if len(pulses) == 0 {
		return nil, ErrEmptyInput
	}
	blocks := (len(pulses) + shell.FrameLength - 1) / shell.FrameLength
	if blocks > MaxBlocks {
		return nil, ErrTooManyBlocks
	}
	frame := pulses
	if len(pulses)%shell.FrameLength != 0 {
		frame = make([]int32, blocks*shell.FrameLength)
		copy(frame, pulses)
	}

	var enc rangecoding.Encoder
	enc.Init(make([]byte, blocks*maxBlockBytes+8))
	enc.EncodeUniform(uint32(blocks-1), MaxBlocks)

	var pc shell.PulseCoder
	if err := pc.EncodeFrame(&enc, frame); err != nil {
		return nil, fmt.Errorf("silkshell: %w", err)
	}
	out := enc.Done()
	if enc.Error() != 0 {
		return nil, ErrBufferTooSmall
	}
	return out, nil
}

// Unmarshal decodes a packet produced by Marshal.
func Unmarshal(data []byte) ([]int32, error) {
	if len(data) == 0 {
		return nil, ErrInvalidPacket
	}
	var dec rangecoding.Decoder
	dec.Init(data)
	blocks := int(dec.DecodeUniform(MaxBlocks)) + 1
	if dec.Error() != 0 {
		return nil, ErrInvalidPacket
	}

	pulses := make([]int32, blocks*shell.FrameLength)
	var pc shell.PulseCoder
	if err := pc.DecodeFrame(pulses, &dec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPacket, err)
	}
	return pulses, nil
}

// EncodedBits returns the cost, in 1/8 bit units, of shell-coding one
// block of 16 nonnegative amplitudes, excluding its total.
func EncodedBits(pulses []int) (int, error) {
	if err := shell.CheckBlock(pulses); err != nil {
		return 0, fmt.Errorf("silkshell: %w", err)
	}
	var enc rangecoding.Encoder
	enc.Init(make([]byte, maxBlockBytes))
	start := enc.TellFrac()
	shell.Encode(&enc, pulses)
	return enc.TellFrac() - start, nil
}
