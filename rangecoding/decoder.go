package rangecoding

import "math/bits"

// Decoder is the range decoder. The zero value is not usable; call Init.
type Decoder struct {
	buf        []byte // Input buffer
	storage    uint32 // Buffer size
	offs       uint32 // Range bytes read from the front
	endOffs    uint32 // Raw bytes read from the back
	endWindow  uint32 // Unconsumed raw bits
	nendBits   int    // Bits in endWindow
	nbitsTotal int    // Bits read, for Tell
	rng        uint32 // Range size (> EC_CODE_BOT after normalize)
	val        uint32 // Offset of the coded value inside the range
	ext        uint32 // Scale saved by decode for update
	rem        int    // Buffered partial byte
	err        int    // Non-zero after an out-of-range uniform value
}

// Init resets the decoder to read buf (ec_dec_init).
func (d *Decoder) Init(buf []byte) {
	d.buf = buf
	d.storage = uint32(len(buf))
	d.offs = 0
	d.endOffs = 0
	d.endWindow = 0
	d.nendBits = 0
	d.err = 0
	d.ext = 0
	d.rng = 1 << EC_CODE_EXTRA
	d.rem = int(d.readByte())
	d.val = d.rng - 1 - uint32(d.rem>>(EC_SYM_BITS-EC_CODE_EXTRA))
	d.nbitsTotal = EC_CODE_BITS + 1 -
		((EC_CODE_BITS-EC_CODE_EXTRA)/EC_SYM_BITS)*EC_SYM_BITS
	d.normalize()
}

// readByte returns 0 past the end of input, as libopus does.
func (d *Decoder) readByte() byte {
	if d.offs < d.storage {
		b := d.buf[d.offs]
		d.offs++
		return b
	}
	return 0
}

func (d *Decoder) normalize() {
	for d.rng <= EC_CODE_BOT {
		d.nbitsTotal += EC_SYM_BITS
		d.rng <<= EC_SYM_BITS
		sym := d.rem
		d.rem = int(d.readByte())
		sym = (sym<<EC_SYM_BITS | d.rem) >> (EC_SYM_BITS - EC_CODE_EXTRA)
		d.val = ((d.val << EC_SYM_BITS) + uint32(EC_SYM_MAX&^sym)) & (EC_CODE_TOP - 1)
	}
}

// DecodeICDF decodes one symbol against an inverse CDF row (ec_dec_icdf).
func (d *Decoder) DecodeICDF(icdf []uint8, ftb uint) int {
	s := d.rng
	dval := d.val
	r := s >> ftb
	ret := -1
	for {
		t := s
		ret++
		s = r * uint32(icdf[ret])
		if dval >= s {
			d.val = dval - s
			d.rng = t - s
			d.normalize()
			return ret
		}
	}
}

// DecodeBit decodes a binary symbol where P(1) = 1/(1<<logp).
func (d *Decoder) DecodeBit(logp uint) int {
	r := d.rng
	s := r >> logp
	if d.val < s {
		d.rng = s
		d.normalize()
		return 1
	}
	d.val -= s
	d.rng = r - s
	d.normalize()
	return 0
}

// DecodeUniform decodes a value uniformly distributed in [0, ft).
// Reference: libopus ec_dec_uint.
func (d *Decoder) DecodeUniform(ft uint32) uint32 {
	if ft <= 1 {
		return 0
	}
	ft--
	ftb := ilog(ft)
	if ftb > EC_UINT_BITS {
		ftb -= EC_UINT_BITS
		ft1 := (ft >> uint(ftb)) + 1
		s := d.decode(ft1)
		d.update(s, s+1, ft1)
		t := s<<uint(ftb) | d.DecodeRawBits(uint(ftb))
		if t <= ft {
			return t
		}
		d.err = 1
		return ft
	}
	ft++
	s := d.decode(ft)
	d.update(s, s+1, ft)
	return s
}

func (d *Decoder) decode(ft uint32) uint32 {
	d.ext = d.rng / ft
	s := d.val / d.ext
	if s+1 > ft {
		s = ft - 1
	}
	return ft - (s + 1)
}

func (d *Decoder) update(fl, fh, ft uint32) {
	s := d.ext * (ft - fh)
	d.val -= s
	if fl > 0 {
		d.rng = d.ext * (fh - fl)
	} else {
		d.rng -= s
	}
	d.normalize()
}

// DecodeRawBits reads bits written by EncodeRawBits (ec_dec_bits).
func (d *Decoder) DecodeRawBits(n uint) uint32 {
	if n == 0 {
		return 0
	}
	window := d.endWindow
	available := d.nendBits
	if available < int(n) {
		for available <= EC_WINDOW_SIZE-EC_SYM_BITS {
			var b uint32
			if d.endOffs < d.storage {
				d.endOffs++
				b = uint32(d.buf[d.storage-d.endOffs])
			}
			window |= b << uint(available)
			available += EC_SYM_BITS
		}
	}
	ret := window & ((uint32(1) << n) - 1)
	window >>= n
	available -= int(n)
	d.endWindow = window
	d.nendBits = available
	d.nbitsTotal += int(n)
	return ret
}

// Tell returns the number of whole bits consumed so far, rounded up.
func (d *Decoder) Tell() int {
	return d.nbitsTotal - ilog(d.rng)
}

// TellFrac returns the bits consumed so far in 1/8 bit units.
func (d *Decoder) TellFrac() int {
	return tellFrac(d.nbitsTotal, d.rng)
}

// BytesUsed returns the number of range-coded bytes consumed.
func (d *Decoder) BytesUsed() int {
	return int(d.offs)
}

// Error returns a non-zero value if a uniform value decoded out of range.
func (d *Decoder) Error() int {
	return d.err
}

var tellFracCorrection = [8]uint32{35733, 38967, 42495, 46340, 50535, 55109, 60097, 65535}

// tellFrac mirrors ec_tell_frac. rng is always normalised, so l >= 24.
func tellFrac(nbitsTotal int, rng uint32) int {
	nbits := nbitsTotal << 3
	l := ilog(rng)
	r := rng >> uint(l-16)
	b := int((r >> 12) - 8)
	if r > tellFracCorrection[b] {
		b++
	}
	return nbits - (l<<3 + b)
}

// ilog returns the position of the highest set bit plus one; 0 for 0.
func ilog(x uint32) int {
	return bits.Len32(x)
}
