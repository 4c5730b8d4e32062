package shell

// MaxShifts bounds how many times a block's magnitudes may be halved to
// bring its total within MaxPulses.
const MaxShifts = 10

// sumEscape is the block-total symbol meaning "one more halving".
const sumEscape = MaxPulses + 1

// lsbICDF codes the bits shifted out of an overflowing block.
// From libopus silk_lsb_iCDF.
var lsbICDF = [2]uint8{120, 0}

// FrameEncoder is the entropy coder side consumed by PulseCoder.EncodeFrame.
type FrameEncoder interface {
	SymbolEncoder
	EncodeBit(val int, logp uint)
	EncodeUniform(val uint32, ft uint32)
}

// FrameDecoder is the entropy coder side consumed by PulseCoder.DecodeFrame.
type FrameDecoder interface {
	SymbolDecoder
	DecodeBit(logp uint) int
	DecodeUniform(ft uint32) uint32
}

// PulseCoder codes whole frames of signed pulses, a whole number of shell
// blocks long. It keeps scratch buffers between calls and must not be used
// concurrently. The zero value is ready to use.
type PulseCoder struct {
	scratchAbs    []int
	scratchSums   []int
	scratchShifts []int
}

// EncodeFrame codes a frame in four passes, the way the SILK pulse coder
// lays them out:
//  1. per block, one escape symbol per halving, then the reduced total
//  2. the shell code of every block with a non-zero reduced total
//  3. the bits removed by halving, most significant first
//  4. a sign bit for every non-zero pulse
//
// Nothing is written if the frame is rejected.
func (c *PulseCoder) EncodeFrame(enc FrameEncoder, pulses []int32) error {
	if len(pulses)%FrameLength != 0 {
		return ErrFrameLength
	}
	blocks := len(pulses) / FrameLength
	abs := ensureIntSlice(&c.scratchAbs, len(pulses))
	sums := ensureIntSlice(&c.scratchSums, blocks)
	shifts := ensureIntSlice(&c.scratchShifts, blocks)

	for i, p := range pulses {
		abs[i] = absInt(int(p))
	}
	for i := 0; i < blocks; i++ {
		block := abs[i*FrameLength : (i+1)*FrameLength]
		shifts[i] = 0
		for {
			sum := 0
			for _, a := range block {
				sum += a
			}
			if sum <= MaxPulses {
				sums[i] = sum
				break
			}
			if shifts[i] == MaxShifts {
				return ErrPulseOverflow
			}
			shifts[i]++
			for k := range block {
				block[k] >>= 1
			}
		}
	}

	for i := 0; i < blocks; i++ {
		for k := 0; k < shifts[i]; k++ {
			enc.EncodeUniform(sumEscape, sumEscape+1)
		}
		enc.EncodeUniform(uint32(sums[i]), sumEscape+1)
	}

	for i := 0; i < blocks; i++ {
		if sums[i] > 0 {
			Encode(enc, abs[i*FrameLength:(i+1)*FrameLength])
		}
	}

	for i := 0; i < blocks; i++ {
		if shifts[i] == 0 {
			continue
		}
		for _, p := range pulses[i*FrameLength : (i+1)*FrameLength] {
			m := absInt(int(p))
			for j := shifts[i] - 1; j >= 0; j-- {
				enc.EncodeICDF((m>>j)&1, lsbICDF[:], 8)
			}
		}
	}

	for _, p := range pulses {
		if p != 0 {
			neg := 0
			if p < 0 {
				neg = 1
			}
			enc.EncodeBit(neg, 1)
		}
	}
	return nil
}

// DecodeFrame is the inverse of EncodeFrame. len(dst) selects the number of
// blocks and must match the encoded frame.
func (c *PulseCoder) DecodeFrame(dst []int32, dec FrameDecoder) error {
	if len(dst)%FrameLength != 0 {
		return ErrFrameLength
	}
	blocks := len(dst) / FrameLength
	abs := ensureIntSlice(&c.scratchAbs, len(dst))
	sums := ensureIntSlice(&c.scratchSums, blocks)
	shifts := ensureIntSlice(&c.scratchShifts, blocks)

	for i := 0; i < blocks; i++ {
		shifts[i] = 0
		sum := int(dec.DecodeUniform(sumEscape + 1))
		for sum == sumEscape {
			if shifts[i] == MaxShifts {
				return ErrCorruptFrame
			}
			shifts[i]++
			sum = int(dec.DecodeUniform(sumEscape + 1))
		}
		sums[i] = sum
	}

	for i := 0; i < blocks; i++ {
		block := abs[i*FrameLength : (i+1)*FrameLength]
		if sums[i] > 0 {
			Decode(block, dec, sums[i])
			continue
		}
		for k := range block {
			block[k] = 0
		}
	}

	for i := 0; i < blocks; i++ {
		if shifts[i] == 0 {
			continue
		}
		block := abs[i*FrameLength : (i+1)*FrameLength]
		for k := range block {
			m := block[k]
			for j := 0; j < shifts[i]; j++ {
				m = m<<1 | dec.DecodeICDF(lsbICDF[:], 8)
			}
			block[k] = m
		}
	}

	for i, m := range abs {
		if m != 0 && dec.DecodeBit(1) == 1 {
			m = -m
		}
		dst[i] = int32(m)
	}
	return nil
}

// ensureIntSlice ensures the slice has at least n elements.
func ensureIntSlice(buf *[]int, n int) []int {
	if cap(*buf) < n {
		*buf = make([]int, n)
	} else {
		*buf = (*buf)[:n]
	}
	return *buf
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
