package shell

import (
	"testing"

	"github.com/thesyncim/silkshell/rangecoding"
)

// splitCall is one coded split as seen by the entropy coder.
type splitCall struct {
	level  int
	parent int
	child1 int
}

// identifyRow maps an ICDF row handed to the coder back to the table level
// and parent amplitude it was taken from.
func identifyRow(t testing.TB, icdf []uint8) (level, parent int) {
	t.Helper()
	for l := 0; l < Levels; l++ {
		for p := 1; p <= MaxPulses; p++ {
			row := Table(l).Row(p)
			if &row[0] == &icdf[0] && len(row) == len(icdf) {
				return l, p
			}
		}
	}
	t.Fatalf("coder received a row that is not part of any split table: %v", icdf)
	return -1, -1
}

// recordingEncoder forwards to a range encoder and logs every split.
type recordingEncoder struct {
	t     testing.TB
	enc   *rangecoding.Encoder
	calls []splitCall
}

func newRecordingEncoder(t testing.TB) *recordingEncoder {
	enc := &rangecoding.Encoder{}
	enc.Init(make([]byte, 256))
	return &recordingEncoder{t: t, enc: enc}
}

func (r *recordingEncoder) EncodeICDF(s int, icdf []uint8, ftb uint) {
	if ftb != 8 {
		r.t.Errorf("split coded with %d bits of precision, want 8", ftb)
	}
	level, parent := identifyRow(r.t, icdf)
	r.calls = append(r.calls, splitCall{level, parent, s})
	r.enc.EncodeICDF(s, icdf, ftb)
}

// recordingDecoder forwards to a range decoder and logs every split.
type recordingDecoder struct {
	t     testing.TB
	dec   *rangecoding.Decoder
	calls []splitCall
}

func newRecordingDecoder(t testing.TB, data []byte) *recordingDecoder {
	dec := &rangecoding.Decoder{}
	dec.Init(data)
	return &recordingDecoder{t: t, dec: dec}
}

func (r *recordingDecoder) DecodeICDF(icdf []uint8, ftb uint) int {
	level, parent := identifyRow(r.t, icdf)
	s := r.dec.DecodeICDF(icdf, ftb)
	r.calls = append(r.calls, splitCall{level, parent, s})
	return s
}

// countingCoder counts symbol operations without coding anything.
type countingCoder struct {
	encodes int
	decodes int
}

func (c *countingCoder) EncodeICDF(int, []uint8, uint) { c.encodes++ }

func (c *countingCoder) DecodeICDF([]uint8, uint) int {
	c.decodes++
	return 0
}

// unrolledOrder lists the splits of a block in bitstream order, written out
// node by node with no shared traversal code. Splits with a zero parent are
// included; the coder never sees them.
func unrolledOrder(p0 []int) []splitCall {
	p1 := make([]int, 8)
	p2 := make([]int, 4)
	p3 := make([]int, 2)
	for k := range p1 {
		p1[k] = p0[2*k] + p0[2*k+1]
	}
	for k := range p2 {
		p2[k] = p1[2*k] + p1[2*k+1]
	}
	for k := range p3 {
		p3[k] = p2[2*k] + p2[2*k+1]
	}
	p4 := p3[0] + p3[1]

	return []splitCall{
		{3, p4, p3[0]},
		{2, p3[0], p2[0]},
		{1, p2[0], p1[0]},
		{0, p1[0], p0[0]},
		{0, p1[1], p0[2]},
		{1, p2[1], p1[2]},
		{0, p1[2], p0[4]},
		{0, p1[3], p0[6]},
		{2, p3[1], p2[2]},
		{1, p2[2], p1[4]},
		{0, p1[4], p0[8]},
		{0, p1[5], p0[10]},
		{1, p2[3], p1[6]},
		{0, p1[6], p0[12]},
		{0, p1[7], p0[14]},
	}
}

func codedOnly(calls []splitCall) []splitCall {
	var out []splitCall
	for _, c := range calls {
		if c.parent > 0 {
			out = append(out, c)
		}
	}
	return out
}

func equalCalls(a, b []splitCall) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
