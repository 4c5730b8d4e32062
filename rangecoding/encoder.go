package rangecoding

// Encoder is the range encoder. The zero value is not usable; call Init.
type Encoder struct {
	buf        []byte // Output buffer (caller owned)
	storage    uint32 // Buffer capacity
	offs       uint32 // Range bytes written from the front
	endOffs    uint32 // Raw bytes written from the back
	endWindow  uint32 // Pending raw bits
	nendBits   int    // Bits in endWindow
	nbitsTotal int    // Bits written, for Tell
	rng        uint32 // Range size
	val        uint32 // Low end of range
	rem        int    // Buffered byte awaiting carry (-1 = none)
	ext        uint32 // Pending 0xFF bytes
	err        int    // Non-zero after a buffer overflow
}

// Init resets the encoder to write into buf. The buffer must be sized for
// the largest expected output; overflow sets the error flag.
func (e *Encoder) Init(buf []byte) {
	e.buf = buf
	e.storage = uint32(len(buf))
	e.offs = 0
	e.endOffs = 0
	e.endWindow = 0
	e.nendBits = 0
	e.nbitsTotal = EC_CODE_BITS + 1
	e.rng = EC_CODE_TOP
	e.val = 0
	e.rem = -1
	e.ext = 0
	e.err = 0
}

// carryOut mirrors ec_enc_carry_out. A 0xFF byte cannot be flushed until we
// know whether a later symbol carries into it, so it is counted in ext.
func (e *Encoder) carryOut(c int) {
	if c == EC_SYM_MAX {
		e.ext++
		return
	}
	carry := c >> EC_SYM_BITS
	if e.rem >= 0 {
		e.writeByte(byte(e.rem + carry))
	}
	if e.ext > 0 {
		sym := byte((EC_SYM_MAX + carry) & EC_SYM_MAX)
		for ; e.ext > 0; e.ext-- {
			e.writeByte(sym)
		}
	}
	e.rem = c & EC_SYM_MAX
}

func (e *Encoder) normalize() {
	for e.rng <= EC_CODE_BOT {
		e.carryOut(int(e.val >> EC_CODE_SHIFT))
		e.val = (e.val << EC_SYM_BITS) & (EC_CODE_TOP - 1)
		e.rng <<= EC_SYM_BITS
		e.nbitsTotal += EC_SYM_BITS
	}
}

func (e *Encoder) writeByte(b byte) {
	if e.offs+e.endOffs >= e.storage {
		e.err = -1
		return
	}
	e.buf[e.offs] = b
	e.offs++
}

func (e *Encoder) writeEndByte(b byte) {
	if e.offs+e.endOffs >= e.storage {
		e.err = -1
		return
	}
	e.endOffs++
	e.buf[e.storage-e.endOffs] = b
}

// Encode codes the cumulative-frequency interval [fl, fh) out of ft.
func (e *Encoder) Encode(fl, fh, ft uint32) {
	r := e.rng / ft
	if fl > 0 {
		e.val += e.rng - r*(ft-fl)
		e.rng = r * (fh - fl)
	} else {
		e.rng -= r * (ft - fh)
	}
	e.normalize()
}

// EncodeICDF codes symbol s against an inverse CDF row: a strictly
// decreasing sequence terminated by 0, scaled to 1<<ftb.
// This is ec_enc_icdf.
func (e *Encoder) EncodeICDF(s int, icdf []uint8, ftb uint) {
	r := e.rng >> ftb
	if s > 0 {
		e.val += e.rng - r*uint32(icdf[s-1])
		e.rng = r * uint32(icdf[s-1]-icdf[s])
	} else {
		e.rng -= r * uint32(icdf[s])
	}
	e.normalize()
}

// EncodeBit codes a binary symbol where P(1) = 1/(1<<logp).
func (e *Encoder) EncodeBit(val int, logp uint) {
	if logp == 0 {
		return
	}
	r := e.rng
	s := r >> logp
	if val != 0 {
		e.val += r - s
		e.rng = s
	} else {
		e.rng = r - s
	}
	e.normalize()
}

// EncodeUniform codes val uniformly distributed in [0, ft).
// Reference: libopus ec_enc_uint.
func (e *Encoder) EncodeUniform(val uint32, ft uint32) {
	if ft <= 1 {
		return
	}
	ftb := uint(ilog(ft - 1))
	if ftb > EC_UINT_BITS {
		ftb -= EC_UINT_BITS
		ft1 := ((ft - 1) >> ftb) + 1
		e.Encode(val>>ftb, (val>>ftb)+1, ft1)
		e.EncodeRawBits(val&((1<<ftb)-1), ftb)
		return
	}
	e.Encode(val, val+1, ft)
}

// EncodeRawBits appends bits that bypass the range coder. They are stored
// from the end of the buffer backwards.
func (e *Encoder) EncodeRawBits(val uint32, bits uint) {
	if bits == 0 {
		return
	}
	window := e.endWindow
	used := e.nendBits
	if used+int(bits) > EC_WINDOW_SIZE {
		for used >= EC_SYM_BITS {
			e.writeEndByte(byte(window & EC_SYM_MAX))
			window >>= EC_SYM_BITS
			used -= EC_SYM_BITS
		}
	}
	window |= val << used
	used += int(bits)
	e.endWindow = window
	e.nendBits = used
	e.nbitsTotal += int(bits)
}

// Done flushes the coder (ec_enc_done) and returns the packed output: range
// bytes, then a partial raw byte if any, then the raw bytes written from
// the end. The encoder must be re-initialised before reuse.
func (e *Encoder) Done() []byte {
	l := EC_CODE_BITS - ilog(e.rng)
	msk := uint32(EC_CODE_TOP-1) >> uint(l)
	end := (e.val + msk) &^ msk
	if (end | msk) >= e.val+e.rng {
		l++
		msk >>= 1
		end = (e.val + msk) &^ msk
	}
	for l > 0 {
		e.carryOut(int(end >> EC_CODE_SHIFT))
		end = (end << EC_SYM_BITS) & (EC_CODE_TOP - 1)
		l -= EC_SYM_BITS
	}
	if e.rem >= 0 || e.ext > 0 {
		e.carryOut(0)
	}

	window := e.endWindow
	used := e.nendBits
	for used >= EC_SYM_BITS {
		e.writeEndByte(byte(window & EC_SYM_MAX))
		window >>= EC_SYM_BITS
		used -= EC_SYM_BITS
	}

	if e.err == 0 {
		for i := e.offs; i < e.storage-e.endOffs; i++ {
			e.buf[i] = 0
		}
		if used > 0 {
			if e.endOffs >= e.storage {
				e.err = -1
			} else {
				usable := -l
				if e.offs+e.endOffs >= e.storage && usable < used {
					window &= (uint32(1) << uint(max(usable, 0))) - 1
					e.err = -1
				}
				e.buf[e.storage-e.endOffs-1] |= byte(window)
			}
		}
	}
	if e.err != 0 {
		return e.buf[:e.storage]
	}

	// Compact: move the raw tail down behind the range bytes.
	pad := uint32(0)
	if used > 0 && e.offs+e.endOffs < e.storage {
		pad = 1
		e.buf[e.offs] = byte(window)
	}
	if e.endOffs > 0 {
		copy(e.buf[e.offs+pad:], e.buf[e.storage-e.endOffs:e.storage])
	}
	return e.buf[:e.offs+e.endOffs+pad]
}

// Tell returns the number of whole bits written so far, rounded up.
func (e *Encoder) Tell() int {
	return e.nbitsTotal - ilog(e.rng)
}

// TellFrac returns the bits written so far in 1/8 bit units.
func (e *Encoder) TellFrac() int {
	return tellFrac(e.nbitsTotal, e.rng)
}

// RangeBytes returns the number of range-coded bytes written.
func (e *Encoder) RangeBytes() int {
	return int(e.offs)
}

// Error returns a non-zero value if the output buffer overflowed.
func (e *Encoder) Error() int {
	return e.err
}

// EncoderState is a snapshot of an Encoder taken with SaveStateInto.
type EncoderState struct {
	offs       uint32
	endOffs    uint32
	endWindow  uint32
	nendBits   int
	nbitsTotal int
	rng        uint32
	val        uint32
	rem        int
	ext        uint32
	err        int
}

// SaveStateInto records the encoder position so a trial encoding can be
// undone with RestoreState. Bytes already flushed to either end of the
// buffer are never rewritten before Done, so only the coder registers are
// saved.
func (e *Encoder) SaveStateInto(state *EncoderState) {
	*state = EncoderState{
		offs:       e.offs,
		endOffs:    e.endOffs,
		endWindow:  e.endWindow,
		nendBits:   e.nendBits,
		nbitsTotal: e.nbitsTotal,
		rng:        e.rng,
		val:        e.val,
		rem:        e.rem,
		ext:        e.ext,
		err:        e.err,
	}
}

// RestoreState rewinds the encoder to a state saved from it. It must not be
// used after Done.
func (e *Encoder) RestoreState(state *EncoderState) {
	e.offs = state.offs
	e.endOffs = state.endOffs
	e.endWindow = state.endWindow
	e.nendBits = state.nendBits
	e.nbitsTotal = state.nbitsTotal
	e.rng = state.rng
	e.val = state.val
	e.rem = state.rem
	e.ext = state.ext
	e.err = state.err
}
