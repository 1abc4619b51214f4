package fib

import (
	"math/bits"
	"strconv"
)

// Uint128 is an unsigned 128-bit integer held as two 64-bit limbs.
// It is a plain value type; copies are independent.
type Uint128 struct {
	Hi, Lo uint64
}

// Max128 is the largest representable Uint128 value, 2^128 - 1.
var Max128 = Uint128{Hi: ^uint64(0), Lo: ^uint64(0)}

// Add returns x+y modulo 2^128 and the carry out of the high limb (0 or 1).
// A non-zero carry means the exact sum does not fit in 128 bits.
func (x Uint128) Add(y Uint128) (Uint128, uint64) {
	lo, c := bits.Add64(x.Lo, y.Lo, 0)
	hi, carry := bits.Add64(x.Hi, y.Hi, c)
	return Uint128{Hi: hi, Lo: lo}, carry
}

// IsZero reports whether x is zero.
func (x Uint128) IsZero() bool {
	return x.Hi == 0 && x.Lo == 0
}

// Cmp returns -1 if x < y, 0 if x == y and 1 if x > y.
func (x Uint128) Cmp(y Uint128) int {
	switch {
	case x.Hi != y.Hi:
		if x.Hi < y.Hi {
			return -1
		}
		return 1
	case x.Lo != y.Lo:
		if x.Lo < y.Lo {
			return -1
		}
		return 1
	}
	return 0
}

// pow19 is 10^19, the largest power of ten that fits in a uint64.
const pow19 = 10_000_000_000_000_000_000

// String renders x as an unsigned base-10 decimal without leading zeros.
func (x Uint128) String() string {
	if x.Hi == 0 {
		return strconv.FormatUint(x.Lo, 10)
	}

	// Divide out 19 decimal digits per round until the value fits in
	// one limb. 2^128-1 has 39 digits, so the buffer never overruns.
	var buf [40]byte
	i := len(buf)
	for x.Hi != 0 {
		qhi := x.Hi / pow19
		r := x.Hi % pow19
		qlo, rem := bits.Div64(r, x.Lo, pow19)
		x = Uint128{Hi: qhi, Lo: qlo}
		for j := 0; j < 19; j++ {
			i--
			buf[i] = byte('0' + rem%10)
			rem /= 10
		}
	}

	head := strconv.FormatUint(x.Lo, 10)
	i -= len(head)
	copy(buf[i:], head)
	return string(buf[i:])
}
