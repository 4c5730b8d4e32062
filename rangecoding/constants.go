// Package rangecoding implements the entropy coder that carries shell-coded
// pulse splits: the RFC 6716 Section 4.1 range coder, bit-exact with libopus
// celt/entenc.c and celt/entdec.c.
package rangecoding

// Coder geometry, named after libopus celt/mfrngcod.h.
const (
	EC_SYM_BITS    = 8                                // Bits output at a time
	EC_CODE_BITS   = 32                               // Total state register bits
	EC_SYM_MAX     = (1 << EC_SYM_BITS) - 1           // 255
	EC_CODE_TOP    = 1 << (EC_CODE_BITS - 1)          // 0x80000000
	EC_CODE_BOT    = EC_CODE_TOP >> EC_SYM_BITS       // 0x00800000
	EC_CODE_SHIFT  = EC_CODE_BITS - EC_SYM_BITS - 1   // 23
	EC_CODE_EXTRA  = (EC_CODE_BITS-2)%EC_SYM_BITS + 1 // 7
	EC_UINT_BITS   = 8                                // Range-coded bits of a uniform value
	EC_WINDOW_SIZE = 32                               // Raw-bit window
)
