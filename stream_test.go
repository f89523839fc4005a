package cyclic

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testStreamRecords = 7

func TestStreamEncode(t *testing.T) {
	s := NewStream(testStreamRecords)
	for _, n := range []int{1, testStreamRecords - 1, testStreamRecords, 3*testStreamRecords + 2} {
		msgs := make([]byte, n*MessageSize)
		exp := make([]byte, n*CodewordSize)
		fillMessages(msgs)
		require.NoError(t, EncodeVect(exp, msgs))

		var out bytes.Buffer
		require.NoError(t, s.EncodeStream(&out, bytes.NewReader(msgs)))
		assert.Equal(t, exp, out.Bytes(), "records: %d", n)
	}
}

func TestStreamRoundTrip(t *testing.T) {
	s := NewStream(0)
	n := 3*defaultStreamRecords + 5
	msgs := make([]byte, n*MessageSize)
	fillMessages(msgs)

	var words, got bytes.Buffer
	require.NoError(t, s.EncodeStream(&words, bytes.NewReader(msgs)))
	rep, err := s.DecodeStream(&got, &words)
	require.NoError(t, err)
	assert.Equal(t, n, rep.Records)
	assert.Equal(t, msgs, got.Bytes())
}

func TestStreamDecodeUncorrectable(t *testing.T) {
	n := 3*testStreamRecords + 1
	msgs := make([]byte, n*MessageSize)
	words := make([]byte, n*CodewordSize)
	ds := fillMessages(msgs)
	require.NoError(t, EncodeVect(words, msgs))

	// Record 9 can't be corrected, record 15 has two bit errors.
	tr := uncorrectableTriples[0]
	w := getCodeword(words[9*CodewordSize:]) ^ (1<<uint(tr[0]) | 1<<uint(tr[1]) | 1<<uint(tr[2]))
	putCodeword(words[9*CodewordSize:], w)
	w = getCodeword(words[15*CodewordSize:]) ^ 0b1000000000000100
	putCodeword(words[15*CodewordSize:], w)

	var logs bytes.Buffer
	s := NewStream(testStreamRecords)
	s.Logger = log.New(&logs)
	s.Logger.SetLevel(log.DebugLevel)

	var got bytes.Buffer
	rep, err := s.DecodeStream(&got, bytes.NewReader(words))
	assert.ErrorIs(t, err, ErrUncorrectable)
	assert.Equal(t, n, rep.Records)
	assert.Equal(t, []int{9}, rep.Failed)
	assert.Equal(t, 1, rep.Corrected)
	assert.Equal(t, 2, rep.Fixed)

	out := got.Bytes()
	require.Len(t, out, n*MessageSize)
	for i, d := range ds {
		if i == 9 {
			assert.Zero(t, getMessage(out[i*MessageSize:]))
			continue
		}
		assert.Equal(t, uint32(d), getMessage(out[i*MessageSize:]), "record: %d", i)
	}

	assert.Contains(t, logs.String(), "uncorrectable record")
	assert.Contains(t, logs.String(), "record=9")
	assert.Contains(t, logs.String(), "corrected records")
}

func TestStreamNoData(t *testing.T) {
	s := NewStream(testStreamRecords)
	var out bytes.Buffer
	assert.Equal(t, ErrNoData, s.EncodeStream(&out, bytes.NewReader(nil)))
	_, err := s.DecodeStream(&out, bytes.NewReader(nil))
	assert.Equal(t, ErrNoData, err)
}

func TestStreamShortRecord(t *testing.T) {
	s := NewStream(testStreamRecords)
	var out bytes.Buffer
	assert.Equal(t, ErrShortRecord, s.EncodeStream(&out, bytes.NewReader(make([]byte, 5))))
	_, err := s.DecodeStream(&out, bytes.NewReader(make([]byte, 2*CodewordSize+1)))
	assert.Equal(t, ErrShortRecord, err)
}

// Complete records before a short trailing record are still written,
// including those in the same piece.
func TestStreamShortRecordKeepsComplete(t *testing.T) {
	s := NewStream(testStreamRecords)
	n := testStreamRecords + 3
	msgs := make([]byte, n*MessageSize)
	fillMessages(msgs)
	words := make([]byte, n*CodewordSize)
	require.NoError(t, EncodeVect(words, msgs))

	var gotWords bytes.Buffer
	err := s.EncodeStream(&gotWords, bytes.NewReader(append(bytes.Clone(msgs), 0x01)))
	assert.Equal(t, ErrShortRecord, err)
	assert.Equal(t, words, gotWords.Bytes())

	var gotMsgs bytes.Buffer
	rep, err := s.DecodeStream(&gotMsgs, bytes.NewReader(append(bytes.Clone(words), 0x01, 0x02)))
	assert.Equal(t, ErrShortRecord, err)
	assert.Equal(t, n, rep.Records)
	assert.Equal(t, msgs, gotMsgs.Bytes())
}

func TestStreamOutOfRange(t *testing.T) {
	s := NewStream(testStreamRecords)
	n := 2*testStreamRecords + 3
	msgs := make([]byte, n*MessageSize)
	putMessage(msgs[(n-1)*MessageSize:], 0xffff)

	var out bytes.Buffer
	err := s.EncodeStream(&out, bytes.NewReader(msgs))
	var re *RecordError
	require.True(t, errors.As(err, &re))
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, n-1, re.Index)

	words := make([]byte, n*CodewordSize)
	words[(n-2)*CodewordSize] = 0x80
	_, err = s.DecodeStream(&out, bytes.NewReader(words))
	require.True(t, errors.As(err, &re))
	assert.Equal(t, n-2, re.Index)
}

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) {
	return len(p) / 2, nil
}

func TestStreamShortWrite(t *testing.T) {
	s := NewStream(testStreamRecords)
	err := s.EncodeStream(shortWriter{}, bytes.NewReader(make([]byte, 4*MessageSize)))
	assert.Error(t, err)
}

func TestStreamConcurrent(t *testing.T) {
	s := NewStream(testStreamRecords)
	n := 10 * testStreamRecords
	msgs := make([]byte, n*MessageSize)
	fillMessages(msgs)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var words, got bytes.Buffer
			if err := s.EncodeStream(&words, bytes.NewReader(msgs)); err != nil {
				errs <- err
				return
			}
			if _, err := s.DecodeStream(&got, &words); err != nil {
				errs <- err
				return
			}
			if !bytes.Equal(msgs, got.Bytes()) {
				errs <- errors.New("stream round trip mismatched")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}
