// Package shortened implements the P25 (16, 8, 5) shortened cyclic code:
// the (17, 9, 5) cyclic code with its MSB data bit deleted.
//
// A codeword keeps the 8 data bits in bits 15..8
// and the 8 parity bits in bits 7..0.
package shortened

import (
	"errors"

	"github.com/templexxx/cyclic"
)

// Code parameters.
const (
	N = 16
	K = 8
	D = 5
)

var ErrUncorrectable = errors.New("shortened: too many bit errors")

// Encode encodes 8 data bits into a 16-bit codeword.
func Encode(data uint8) uint16 {
	return uint16(cyclic.MustEncode(uint16(data)))
}

// Decode decodes a received 16-bit word into its 8 data bits,
// correcting up to 2 bit errors.
// fixed is the number of bits flipped.
func Decode(word uint16) (data uint8, fixed int, err error) {
	cw, fixed, err := cyclic.Correct(uint32(word))
	// A fix on the deleted bit means more errors than we can correct.
	if err != nil || cw>>N != 0 {
		return 0, 0, ErrUncorrectable
	}
	return uint8(cw >> (N - K)), fixed, nil
}
