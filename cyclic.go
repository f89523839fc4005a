// Copyright (c) 2017 Temple3x (temple3x@gmail.com)
//
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package cyclic implements the (17, 9, 5) binary cyclic code
// used in framing fields by DMR and P25.
// Generator Polynomial: x^8+x^5+x^4+x^3+1.
//
// Bit i of a value is the coefficient of x^i.
// A codeword keeps the 9 message bits in bits 16..8
// and the 8 parity bits in bits 7..0.
//
// The code detects up to 4 bit errors and corrects up to 2.
// Words with more errors are reported as uncorrectable, never guessed.
//
// All functions are safe for concurrent use:
// the only shared state is built in package init and never changed.
package cyclic

import "errors"

// Code parameters.
const (
	N = 17    // Codeword length in bits.
	K = 9     // Message length in bits.
	D = 5     // Minimum Hamming distance.
	T = D / 2 // Number of bit errors that can be corrected.

	ParityBits = N - K

	MessageMask  uint32 = 1<<K - 1
	CodewordMask uint32 = 1<<N - 1
)

var (
	ErrOutOfRange    = errors.New("cyclic: value out of range")
	ErrUncorrectable = errors.New("cyclic: too many bit errors")
)

// Encode encodes 9 data bits into a 17-bit codeword.
// It returns ErrOutOfRange if data doesn't fit in 9 bits.
func Encode(data uint16) (uint32, error) {
	if uint32(data) > MessageMask {
		return 0, ErrOutOfRange
	}
	return encode(uint32(data)), nil
}

// MustEncode is like Encode but panics if data doesn't fit in 9 bits.
func MustEncode(data uint16) uint32 {
	w, err := Encode(data)
	if err != nil {
		panic(err)
	}
	return w
}

// data must be < 1<<K.
func encode(data uint32) uint32 {
	w := data << ParityBits
	return w ^ PolyRem(uint64(w), Generator)
}

// Syndrome returns the syndrome of a 17-bit word, zero for a codeword.
// Bits above 16 are ignored.
func Syndrome(word uint32) uint8 {
	return uint8(PolyRem(uint64(word&CodewordMask), Generator))
}

// IsCodeword reports whether word is a valid codeword.
func IsCodeword(word uint32) bool {
	return word <= CodewordMask && Syndrome(word) == 0
}

// Correct corrects up to 2 bit errors in the 17-bit word.
// It returns the nearest codeword and the number of bits flipped.
//
// ErrOutOfRange is returned if word doesn't fit in 17 bits,
// ErrUncorrectable if no error pattern of weight <= 2 explains it.
func Correct(word uint32) (codeword uint32, fixed int, err error) {
	if word > CodewordMask {
		return 0, 0, ErrOutOfRange
	}
	pat, ok := ErrorPattern(Syndrome(word))
	if !ok {
		return 0, 0, ErrUncorrectable
	}
	return word ^ pat, weight(pat), nil
}

// Decode decodes a received 17-bit word into its 9 data bits,
// correcting up to 2 bit errors.
// corrected reports whether any bit had to be flipped.
//
// See Correct for the errors returned.
func Decode(word uint32) (data uint16, corrected bool, err error) {
	cw, fixed, err := Correct(word)
	if err != nil {
		return 0, false, err
	}
	return uint16(cw >> ParityBits), fixed != 0, nil
}
