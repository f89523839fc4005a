// Copyright (c) 2017 Temple3x (temple3x@gmail.com)
//
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cyclic

import (
	"errors"
	"fmt"

	"github.com/templexxx/cpu"
	xor "github.com/templexxx/xorsimd"
)

// Vects are byte slices of packed records, each record big-endian:
// MessageSize bytes per message, CodewordSize bytes per codeword.
const (
	MessageSize  = 2
	CodewordSize = 3
)

var (
	ErrZeroVectSize     = errors.New("cyclic: vect size is 0")
	ErrMismatchVectSize = errors.New("cyclic: vects size mismatched")
)

// RecordError is returned when a record in a vect is out of range.
type RecordError struct {
	Index int // Record index in the vect.
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s (record %d)", e.Err.Error(), e.Index)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// Report sums up a decode of many records.
type Report struct {
	Records   int   // Records decoded.
	Corrected int   // Records with at least one bit flipped.
	Fixed     int   // Bits flipped over all records.
	Failed    []int // Indexes of uncorrectable records.
}

// add merges o into r, o's indexes shifted by off.
func (r *Report) add(o Report, off int) {
	r.Records += o.Records
	r.Corrected += o.Corrected
	r.Fixed += o.Fixed
	for _, i := range o.Failed {
		r.Failed = append(r.Failed, i+off)
	}
}

func getMessage(b []byte) uint32 {
	return uint32(b[0])<<8 | uint32(b[1])
}

func putMessage(b []byte, m uint32) {
	b[0] = byte(m >> 8)
	b[1] = byte(m)
}

func getCodeword(b []byte) uint32 {
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

func putCodeword(b []byte, w uint32) {
	b[0] = byte(w >> 16)
	b[1] = byte(w >> 8)
	b[2] = byte(w)
}

// checkVects checks that msgs and words hold the same number of records
// and returns it.
func checkVects(msgs, words []byte) (n int, err error) {
	if len(msgs) == 0 || len(words) == 0 {
		return 0, ErrZeroVectSize
	}
	if len(msgs)%MessageSize != 0 || len(words)%CodewordSize != 0 {
		return 0, ErrMismatchVectSize
	}
	n = len(msgs) / MessageSize
	if len(words)/CodewordSize != n {
		return 0, ErrMismatchVectSize
	}
	return n, nil
}

// EncodeVect encodes every message record in msgs
// and writes the codeword records into words.
//
// Nothing is written if a message is out of range.
func EncodeVect(words, msgs []byte) error {
	n, err := checkVects(msgs, words)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if getMessage(msgs[i*MessageSize:]) > MessageMask {
			return &RecordError{Index: i, Err: ErrOutOfRange}
		}
	}

	for i := 0; i < n; i++ {
		d := getMessage(msgs[i*MessageSize:])
		putCodeword(words[i*CodewordSize:], d<<ParityBits|parityMatrix.mul(d))
	}
	return nil
}

// DecodeVect decodes every codeword record in words
// and writes the message records into msgs.
//
// Records which can't be corrected are written as zero
// and listed in the Report; the error is then ErrUncorrectable.
// Nothing is written if a codeword is out of range.
func DecodeVect(msgs, words []byte) (rep Report, err error) {
	n, err := checkVects(msgs, words)
	if err != nil {
		return
	}
	for i := 0; i < n; i++ {
		if getCodeword(words[i*CodewordSize:]) > CodewordMask {
			return rep, &RecordError{Index: i, Err: ErrOutOfRange}
		}
	}

	// Error patterns & corrected words of one part.
	split := getSplitSize(n)
	buf := make([]byte, 2*split*CodewordSize)
	pats, fixed := buf[:split*CodewordSize], buf[split*CodewordSize:]

	start := 0
	for start < n {
		end := start + split
		if end > n {
			end = n
		}
		part := decodePart(msgs[start*MessageSize:end*MessageSize],
			words[start*CodewordSize:end*CodewordSize], pats, fixed)
		rep.add(part, start)
		start = end
	}

	if len(rep.Failed) != 0 {
		err = ErrUncorrectable
	}
	return
}

// getSplitSize returns how many records are decoded in one part,
// so that a part's words, patterns and corrected words fit
// in half of L1 Data Cache.
func getSplitSize(n int) int {
	l1d := cpu.X86.Cache.L1D
	if l1d <= 0 { // Cannot detect cache size(-1) or CPU is not X86(0).
		l1d = 32 * 1024
	}
	limit := l1d / 2 / (3 * CodewordSize)
	if n < limit {
		return n
	}
	return limit
}

func decodePart(msgs, words, pats, fixed []byte) (rep Report) {
	n := len(words) / CodewordSize
	size := n * CodewordSize
	pats, fixed = pats[:size], fixed[:size]

	for i := 0; i < n; i++ {
		w := getCodeword(words[i*CodewordSize:])
		pat, ok := ErrorPattern(uint8(checkMatrix.mul(w)))
		if !ok {
			rep.Failed = append(rep.Failed, i)
		} else if pat != 0 {
			rep.Corrected++
			rep.Fixed += weight(pat)
		}
		putCodeword(pats[i*CodewordSize:], pat)
	}
	xor.Encode(fixed, [][]byte{words, pats})

	failed := rep.Failed
	for i := 0; i < n; i++ {
		var m uint32
		if len(failed) != 0 && failed[0] == i {
			failed = failed[1:]
		} else {
			m = getCodeword(fixed[i*CodewordSize:]) >> ParityBits
		}
		putMessage(msgs[i*MessageSize:], m)
	}
	rep.Records = n
	return
}
