// Copyright (c) 2017 Temple3x (temple3x@gmail.com)
//
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cyclic

import (
	"math/bits"
	"sort"
)

// Generator is the generator polynomial g(x) = x^8 + x^5 + x^4 + x^3 + 1.
//
// It's one of the two degree-8 irreducible factors of x^17 + 1,
// see DeriveGenerator for how it's picked.
const Generator uint32 = 0x139

// cosets returns the cyclotomic cosets of 2 modulo N,
// ordered by their smallest element.
func cosets() [][]int {
	seen := make([]bool, N)
	var cs [][]int
	for i := 0; i < N; i++ {
		if seen[i] {
			continue
		}
		var c []int
		for j := i; !seen[j]; j = j * 2 % N {
			seen[j] = true
			c = append(c, j)
		}
		cs = append(cs, c)
	}
	return cs
}

// minimalPoly returns the minimal polynomial over GF(2) of the
// conjugate roots beta^j (j in coset), where beta is a primitive N-th
// root of unity in GF(2^8).
func minimalPoly(coset []int) uint32 {
	beta := expTbl[255/N]

	// Coefficients in GF(2^8), low degree first.
	p := []byte{1}
	for _, j := range coset {
		r := gfExp(beta, j)
		next := make([]byte, len(p)+1)
		for i, c := range p {
			next[i+1] ^= c
			next[i] ^= gfMul(c, r)
		}
		p = next
	}

	var g uint32
	for i, c := range p {
		switch c {
		case 0:
		case 1:
			g |= 1 << uint(i)
		default:
			panic("cyclic: minimal polynomial has a coefficient outside GF(2)")
		}
	}
	return g
}

// Factors returns the irreducible factors of x^17 + 1 over GF(2),
// one minimal polynomial per cyclotomic coset of 2 mod 17.
func Factors() []uint32 {
	cs := cosets()
	fs := make([]uint32, len(cs))
	for i, c := range cs {
		fs[i] = minimalPoly(c)
	}
	return fs
}

// DeriveGenerator picks the generator polynomial from the factors of x^17 + 1:
// of the factors with degree N-K it takes the one with the fewest taps
// (smallest value on a tie).
func DeriveGenerator() uint32 {
	var cands []uint32
	for _, f := range Factors() {
		if PolyDeg(uint64(f)) == N-K {
			cands = append(cands, f)
		}
	}
	if len(cands) == 0 {
		panic("cyclic: x^17+1 has no factor of degree n-k")
	}
	sort.Slice(cands, func(i, j int) bool {
		wi, wj := bits.OnesCount32(cands[i]), bits.OnesCount32(cands[j])
		if wi != wj {
			return wi < wj
		}
		return cands[i] < cands[j]
	})
	return cands[0]
}
