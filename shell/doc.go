// Package shell implements the SILK shell coder: lossless entropy coding of
// a block of 16 nonnegative pulse amplitudes as a fixed binary tree of
// pairwise sums (RFC 6716 Section 4.2.7.8.3).
//
// The block total is transmitted elsewhere. Given that total, the coder
// sends only the left child of every internal node; the right child is the
// parent minus the left. Nodes whose parent is zero cost nothing, so silent
// blocks are free. Splits are coded in a fixed depth-first order that is
// part of the bitstream format; see traversal.
//
// Encode and Decode work on a single block and never allocate. EncodeFrame
// and DecodeFrame add the per-block totals, amplitude overflow shifts and
// signs needed to code an arbitrary pulse sequence.
package shell

// Block geometry. The traversal and the split tables are built for exactly
// this shape.
const (
	// FrameLength is the number of pulses in one shell block.
	FrameLength = 16

	// Levels is the number of split levels between the leaves and the root.
	Levels = 4

	// MaxPulses is the largest block total the split tables can code: one
	// less than the number of entries in splitOffsets.
	MaxPulses = 16
)
