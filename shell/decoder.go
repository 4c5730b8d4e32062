package shell

// Decode reconstructs a block of FrameLength pulse amplitudes whose sum is
// total, reading splits in the order Encode wrote them, and stores them in
// dst. It panics if dst does not hold exactly FrameLength values.
//
// A corrupt stream cannot be detected here: every decoded split is
// consistent with its parent, so the result is a valid but wrong block.
func Decode(dst []int, dec SymbolDecoder, total int) {
	if len(dst) != FrameLength {
		panic("shell: Decode needs room for exactly 16 pulses")
	}
	var t tree
	t[levelBase[Levels]] = total

	for _, s := range traversal {
		c := s.childIndex()
		t[c], t[c+1] = decodeSplit(dec, t[s.parentIndex()], &splitTables[s.level])
	}
	copy(dst, t[:FrameLength])
}
