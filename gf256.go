// Copyright (c) 2017 Temple3x (temple3x@gmail.com)
//
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cyclic

// GF(2^8) is only needed to find the roots of x^17+1:
// 2 has order 8 mod 17, so every 17th root of unity lives in GF(2^8).

// Primitive Polynomial: x^8+x^4+x^3+x^2+1.
const primitivePolynomial = 0x11d

var (
	expTbl [255]byte
	logTbl [256]byte
)

func init() {
	genGFTables()
}

func genGFTables() {
	x := 1
	for i := 0; i < 255; i++ {
		expTbl[i] = byte(x)
		logTbl[x] = byte(i)
		x <<= 1
		if x&0x100 != 0 {
			x ^= primitivePolynomial
		}
	}
}

// a * b
func gfMul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return expTbl[(int(logTbl[a])+int(logTbl[b]))%255]
}

// a^n, n >= 0
func gfExp(a byte, n int) byte {
	if n == 0 {
		return 1
	}
	if a == 0 {
		return 0
	}
	return expTbl[(int(logTbl[a])*n)%255]
}
