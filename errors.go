// errors.go defines public error types for the silkshell package.

package silkshell

import "errors"

var (
	// ErrEmptyInput indicates Marshal was given no pulses.
	ErrEmptyInput = errors.New("silkshell: no pulses to encode")

	// ErrTooManyBlocks indicates input longer than MaxBlocks shell blocks.
	ErrTooManyBlocks = errors.New("silkshell: too many blocks (must be 1-1024)")

	// ErrBufferTooSmall indicates the range coder ran out of output space.
	ErrBufferTooSmall = errors.New("silkshell: output buffer too small")

	// ErrInvalidPacket indicates data that cannot be a silkshell packet.
	ErrInvalidPacket = errors.New("silkshell: invalid packet")
)
