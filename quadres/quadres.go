// Copyright (c) 2017 Temple3x (temple3x@gmail.com)
//
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package quadres implements the DMR (16, 7, 6) "quadratic residue" code.
//
// It's the (17, 9, 5) cyclic code extended to (18, 9, 6) by an overall
// parity bit in the LSB, then shortened by deleting the 2 MSB data bits.
// A codeword keeps the 7 data bits in bits 15..9,
// the 8 cyclic parity bits in bits 8..1 and the overall parity in bit 0.
//
// It corrects up to 2 bit errors and detects 3.
package quadres

import (
	"errors"
	"math/bits"

	"github.com/templexxx/cyclic"
)

// Code parameters.
const (
	N = 16
	K = 7
	D = 6

	// ParityMask selects the data bits that sum to the overall parity bit.
	ParityMask = 0x57
)

var (
	ErrOutOfRange    = errors.New("quadres: value out of range")
	ErrUncorrectable = errors.New("quadres: too many bit errors")
)

// Encode encodes 7 data bits into a 16-bit codeword.
func Encode(data uint8) (uint16, error) {
	if data >= 1<<K {
		return 0, ErrOutOfRange
	}
	return encode(data), nil
}

func encode(data uint8) uint16 {
	w := cyclic.MustEncode(uint16(data))
	p := uint32(bits.OnesCount8(data&ParityMask) & 1)
	return uint16(w<<1 | p)
}

// Check reports whether word is a valid codeword.
func Check(word uint16) bool {
	return encode(uint8(word>>(N-K))) == word
}

// Decode decodes a received 16-bit word into its 7 data bits,
// correcting up to 2 bit errors.
// fixed is the number of bits flipped.
func Decode(word uint16) (data uint8, fixed int, err error) {
	// The deleted data bits are known zeros.
	d, _, err := cyclic.Decode(uint32(word >> 1))
	if err != nil || d >= 1<<K {
		return 0, 0, ErrUncorrectable
	}
	data = uint8(d)
	fixed = bits.OnesCount16(encode(data) ^ word)
	if fixed > cyclic.T {
		return 0, 0, ErrUncorrectable
	}
	return data, fixed, nil
}
