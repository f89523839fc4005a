package cyclic

import (
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Stream encodes & decodes record streams (see EncodeVect & DecodeVect for the
// record layout) piece by piece.
// It's safe for concurrent use.
type Stream struct {
	// Logger gets corrected (debug) & uncorrectable (warn) records
	// of DecodeStream. Nil means no logging.
	Logger *log.Logger

	records int // Records per piece.
	bufPool *sync.Pool
}

// Default records per piece.
const defaultStreamRecords = 4 << 10

var (
	ErrNoData      = errors.New("cyclic: no data in stream")
	ErrShortRecord = errors.New("cyclic: stream ends inside a record")
)

// NewStream creates a Stream which works on pieces of records records,
// records <= 0 means the default.
func NewStream(records int) *Stream {
	if records <= 0 {
		records = defaultStreamRecords
	}
	return &Stream{
		records: records,
		bufPool: &sync.Pool{
			New: func() interface{} {
				b := make([]byte, records*(MessageSize+CodewordSize))
				return &b
			},
		},
	}
}

// read reads a piece of up to len(buf)/size records,
// it returns the bytes of the complete records read, always a multiple of size.
// If the stream ends inside a record, the complete records before it
// are returned with ErrShortRecord.
func read(r io.Reader, buf []byte, size int) (int, error) {
	n, err := io.ReadFull(r, buf)
	switch err {
	// The error is EOF only if no bytes were read.
	// If an EOF happens after reading some but not all the bytes,
	// ReadFull returns ErrUnexpectedEOF.
	case io.ErrUnexpectedEOF:
		if n%size != 0 {
			return n - n%size, ErrShortRecord
		}
		return n, nil
	case nil:
		return n, nil
	default: // include EOF
		return 0, err
	}
}

func write(w io.Writer, buf []byte) error {
	n, err := w.Write(buf)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return io.ErrShortWrite
	}
	return nil
}

// EncodeStream reads message records from src
// and writes their codeword records to dst.
//
// If src ends inside a record, every complete record is still written
// and ErrShortRecord is returned.
func (s *Stream) EncodeStream(dst io.Writer, src io.Reader) error {
	bp := s.bufPool.Get().(*[]byte)
	defer s.bufPool.Put(bp)
	buf := *bp
	msgs, words := buf[:s.records*MessageSize], buf[s.records*MessageSize:]

	readDone := false
	off := 0
	for { // for until read all bytes in src
		n, rerr := read(src, msgs, MessageSize)
		switch rerr {
		case nil, ErrShortRecord:
		case io.EOF:
			if !readDone {
				return ErrNoData
			}
			return nil
		default:
			return rerr
		}
		readDone = true

		if n != 0 {
			cnt := n / MessageSize
			err := EncodeVect(words[:cnt*CodewordSize], msgs[:n])
			if err != nil {
				var re *RecordError
				if errors.As(err, &re) {
					re.Index += off
				}
				return err
			}
			err = write(dst, words[:cnt*CodewordSize])
			if err != nil {
				return err
			}
			off += cnt
		}
		if rerr != nil {
			return rerr
		}
	}
}

// DecodeStream reads codeword records from src
// and writes their message records to dst.
//
// Uncorrectable records are written as zero and decoding goes on,
// the Report lists them and the error is then ErrUncorrectable.
// If src ends inside a record, every complete record is still decoded
// and written, and the error is ErrShortRecord.
func (s *Stream) DecodeStream(dst io.Writer, src io.Reader) (rep Report, err error) {
	bp := s.bufPool.Get().(*[]byte)
	defer s.bufPool.Put(bp)
	buf := *bp
	words, msgs := buf[:s.records*CodewordSize], buf[s.records*CodewordSize:]

	readDone := false
	for { // for until read all bytes in src
		n, rerr := read(src, words, CodewordSize)
		switch rerr {
		case nil, ErrShortRecord:
		case io.EOF:
			if !readDone {
				return rep, ErrNoData
			}
			if len(rep.Failed) != 0 {
				return rep, ErrUncorrectable
			}
			return rep, nil
		default:
			return rep, rerr
		}
		readDone = true

		if n != 0 {
			cnt := n / CodewordSize
			part, derr := DecodeVect(msgs[:cnt*MessageSize], words[:n])
			if derr != nil && derr != ErrUncorrectable {
				var re *RecordError
				if errors.As(derr, &re) {
					re.Index += rep.Records
				}
				return rep, derr
			}
			s.logPart(part, rep.Records)
			rep.add(part, rep.Records)

			err = write(dst, msgs[:cnt*MessageSize])
			if err != nil {
				return rep, err
			}
		}
		if rerr != nil {
			return rep, rerr
		}
	}
}

func (s *Stream) logPart(part Report, off int) {
	if s.Logger == nil {
		return
	}
	for _, i := range part.Failed {
		s.Logger.Warn("uncorrectable record", "record", i+off)
	}
	if part.Corrected != 0 {
		s.Logger.Debug("corrected records", "first", off, "records", part.Records,
			"corrected", part.Corrected, "bits", part.Fixed)
	}
}
