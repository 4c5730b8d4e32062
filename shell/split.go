package shell

// SymbolEncoder is the entropy coder side consumed by Encode.
// *rangecoding.Encoder satisfies it.
type SymbolEncoder interface {
	// EncodeICDF codes symbol s against an inverse CDF row with ftb bits
	// of precision.
	EncodeICDF(s int, icdf []uint8, ftb uint)
}

// SymbolDecoder is the entropy coder side consumed by Decode.
// *rangecoding.Decoder satisfies it.
type SymbolDecoder interface {
	DecodeICDF(icdf []uint8, ftb uint) int
}

// encodeSplit codes the left child of a node. A zero parent emits nothing.
func encodeSplit(enc SymbolEncoder, child1, parent int, table *SplitTable) {
	if parent > 0 {
		enc.EncodeICDF(child1, table.Row(parent), 8)
	}
}

// decodeSplit is the inverse of encodeSplit. It reads no bits for a zero
// parent, and child1+child2 == parent always.
func decodeSplit(dec SymbolDecoder, parent int, table *SplitTable) (child1, child2 int) {
	if parent > 0 {
		child1 = dec.DecodeICDF(table.Row(parent), 8)
		return child1, parent - child1
	}
	return 0, 0
}
