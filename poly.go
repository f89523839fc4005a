// Copyright (c) 2017 Temple3x (temple3x@gmail.com)
//
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cyclic

import "math/bits"

// Polynomials over GF(2) are kept in plain unsigned integers:
// bit i is the coefficient of x^i.

// PolyAdd returns a + b (also a - b) over GF(2).
func PolyAdd(a, b uint32) uint32 {
	return a ^ b
}

// PolyMul returns a * b over GF(2) without any reduction.
// deg(a) + deg(b) must be < 64.
func PolyMul(a, b uint32) uint64 {
	var p uint64
	x := uint64(a)
	for b != 0 {
		if b&1 != 0 {
			p ^= x
		}
		b >>= 1
		x <<= 1
	}
	return p
}

// PolyDeg returns the degree of a, -1 for the zero polynomial.
func PolyDeg(a uint64) int {
	return bits.Len64(a) - 1
}

// PolyRem returns a mod divisor over GF(2).
// It panics if divisor is zero.
func PolyRem(a uint64, divisor uint32) uint32 {
	if divisor == 0 {
		panic("cyclic: polynomial division by zero")
	}
	dd := PolyDeg(uint64(divisor))
	d := uint64(divisor)
	for {
		ad := PolyDeg(a)
		if ad < dd {
			return uint32(a)
		}
		a ^= d << uint(ad-dd)
	}
}

// PolyDiv returns the quotient and remainder of a / divisor over GF(2).
// It panics if divisor is zero.
func PolyDiv(a uint64, divisor uint32) (quo uint64, rem uint32) {
	if divisor == 0 {
		panic("cyclic: polynomial division by zero")
	}
	dd := PolyDeg(uint64(divisor))
	d := uint64(divisor)
	for {
		ad := PolyDeg(a)
		if ad < dd {
			return quo, uint32(a)
		}
		quo |= 1 << uint(ad-dd)
		a ^= d << uint(ad-dd)
	}
}

// parity returns the XOR of all bits in w.
func parity(w uint32) uint32 {
	return uint32(bits.OnesCount32(w) & 1)
}
