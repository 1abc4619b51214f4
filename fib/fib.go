// Package fib computes Fibonacci numbers in a fixed-width unsigned
// 128-bit domain. F(0) = 0, F(1) = 1, F(i) = F(i-1) + F(i-2).
package fib

import (
	"errors"
	"fmt"
)

// Policy selects how Compute treats an addition whose exact result
// exceeds 128 bits.
type Policy int

const (
	// WrapOnOverflow reduces every addition modulo 2^128.
	WrapOnOverflow Policy = iota
	// FailOnOverflow returns ErrOverflow on the first addition whose
	// exact result exceeds 128 bits.
	FailOnOverflow
)

// MaxIndex128 is the largest index whose exact Fibonacci value fits in
// 128 bits: F(186) < 2^128 <= F(187).
const MaxIndex128 = 186

// ErrOverflow reports that a requested term exceeds 128 bits.
var ErrOverflow = errors.New("fib: 128-bit overflow")

// ParsePolicy maps the configuration spellings "wrap" and "fail" to a
// Policy. The empty string selects WrapOnOverflow.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "wrap":
		return WrapOnOverflow, nil
	case "fail":
		return FailOnOverflow, nil
	}
	return WrapOnOverflow, fmt.Errorf("unknown overflow policy %q", s)
}

func (p Policy) String() string {
	if p == FailOnOverflow {
		return "fail"
	}
	return "wrap"
}

// Compute returns the n-th Fibonacci number using two rolling
// accumulators. The function is pure: the same n and policy always
// yield the same result.
//
// Under WrapOnOverflow it never fails; values beyond MaxIndex128 wrap
// modulo 2^128. Under FailOnOverflow it returns an error wrapping
// ErrOverflow that names the first term exceeding 128 bits.
func Compute(n uint64, p Policy) (Uint128, error) {
	a := Uint128{}      // F(i)
	b := Uint128{Lo: 1} // F(i+1)
	for i := uint64(0); i < n; i++ {
		sum, carry := a.Add(b)
		// The sum here is F(i+2). The final iteration produces
		// F(n+1), which is not part of the result, so its
		// overflow must not fail a representable F(n).
		if carry != 0 && p == FailOnOverflow && i+2 <= n {
			return Uint128{}, fmt.Errorf("computing F(%d): %w", i+2, ErrOverflow)
		}
		a, b = b, sum
	}
	return a, nil
}

// FormatLine renders a computed term the way the CLI and the HTTP
// instruments print it.
func FormatLine(n uint64, v Uint128) string {
	return fmt.Sprintf("Fib(%d) = %s", n, v)
}
