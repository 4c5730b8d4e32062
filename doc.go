// Package silkshell codes sequences of excitation pulses with the SILK shell
// coder in pure Go.
//
// The shell coder (package shell) compresses blocks of 16 nonnegative pulse
// amplitudes by coding a binary tree of pairwise sums against fixed
// per-level probability tables, bit-exact with libopus and RFC 6716
// Section 4.2.7.8. The range coder it drives lives in package rangecoding.
//
// This package wraps both into a self-delimiting packet:
//
//	data, err := silkshell.Marshal(pulses)
//	...
//	pulses, err := silkshell.Unmarshal(data)
//
// A packet holds the block count, then the frame as laid out by
// shell.PulseCoder: block totals with overflow escapes, shell codes,
// shifted-out low bits, and signs. Input is padded with zeros to a whole
// number of 16-pulse blocks.
package silkshell
