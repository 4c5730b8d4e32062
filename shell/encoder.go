package shell

// Encode shell-codes one block of FrameLength nonnegative pulse amplitudes.
// The block total must not exceed MaxPulses and is not itself coded; the
// decoder needs it to be sent separately. Encode panics if pulses does not
// hold exactly FrameLength values.
func Encode(enc SymbolEncoder, pulses []int) {
	if len(pulses) != FrameLength {
		panic("shell: Encode needs exactly 16 pulses")
	}
	var t tree
	copy(t[:FrameLength], pulses)
	t.build()

	for _, s := range traversal {
		encodeSplit(enc, t[s.childIndex()], t[s.parentIndex()], &splitTables[s.level])
	}
}
