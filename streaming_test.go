package sqlparam

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"
)

type StreamingSuite struct {
	suite.Suite
}

func (s *StreamingSuite) TestLargeAsciiOneByteChunks() {
	in := strings.Repeat("A", 40000)
	p, err := NewString(in)
	s.Require().NoError(err)
	s.Assert().Equal(KindStreaming, p.Kind())
	s.Assert().EqualValues(40002, p.Length())

	out, calls := drain(s.T(), p, 1)
	s.Assert().Equal(40002, calls)
	s.Assert().Len(out, 40002)
	s.Assert().Equal(Escape(in), string(out))

	// Exhaustion is sticky.
	var buf bytes.Buffer
	n, err := p.WriteNext(&buf, 1)
	s.Require().NoError(err)
	s.Assert().Zero(n)
}

func (s *StreamingSuite) TestChunkSizeInvariance() {
	in := strings.Repeat("ab'cd\\é😀\n", 5000)
	want := []byte(Escape(in))
	s.Require().Greater(len(want), THRESHOLD)

	for _, chunk := range []int{1, 3, 7, 100, WINDOW_SIZE, len(want)} {
		s.T().Run(fmt.Sprintf("Chunk%d", chunk), func(t *testing.T) {
			p, err := NewString(in)
			require.NoError(t, err)
			require.Equal(t, KindStreaming, p.Kind())

			out, _ := drain(t, p, chunk)
			assert.EqualValues(t, len(out), p.Length())
			assert.Equal(t, want, out)
		})
	}
}

func (s *StreamingSuite) TestMultiByteNeverSplit() {
	// 8192 four-byte runes: escaped size 8192*4+2 = 32770, one over the
	// full-buffer threshold.
	in := strings.Repeat("😀", 8192)
	p, err := NewString(in)
	s.Require().NoError(err)
	s.Assert().Equal(KindStreaming, p.Kind())
	s.Assert().EqualValues(32770, p.Length())

	// Drain with a budget that lands mid-rune on nearly every call.
	out, _ := drain(s.T(), p, 3)
	s.Assert().True(utf8.Valid(out))
	s.Assert().Equal(Escape(in), string(out))
}

func (s *StreamingSuite) TestLengthIsIdempotent() {
	in := strings.Repeat("x", 40000)
	p, err := NewString(in)
	s.Require().NoError(err)

	want := p.Length()
	s.Assert().Equal(want, p.Length())

	// Interleaving Length with draining never advances drain state.
	var buf bytes.Buffer
	total := 0
	for {
		s.Assert().Equal(want, p.Length())
		n, err := p.WriteNext(&buf, 1000)
		s.Require().NoError(err)
		if n == 0 {
			break
		}
		total += n
	}
	s.Assert().EqualValues(total, want)
}

func (s *StreamingSuite) TestThresholdBoundary() {
	s.T().Run("ExactlyAtThresholdBuffers", func(t *testing.T) {
		in := strings.Repeat("A", THRESHOLD-2) // escaped size == THRESHOLD
		p, err := NewString(in)
		require.NoError(t, err)
		assert.Equal(t, KindText, p.Kind())

		// Random access works on the buffered side of the boundary.
		var buf bytes.Buffer
		n, err := p.WriteAt(&buf, p.Length()-1, 4)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, "'", buf.String())

		out, _ := drain(t, p, 4096)
		assert.Equal(t, Escape(in), string(out))
	})

	s.T().Run("OneOverThresholdStreams", func(t *testing.T) {
		in := strings.Repeat("A", THRESHOLD-1) // escaped size == THRESHOLD+1
		p, err := NewString(in)
		require.NoError(t, err)
		assert.Equal(t, KindStreaming, p.Kind())

		var buf bytes.Buffer
		_, err = p.WriteAt(&buf, 0, 4)
		assert.ErrorIs(t, err, ErrSequentialOnly)

		out, _ := drain(t, p, 4096)
		assert.Equal(t, Escape(in), string(out))
	})
}

func (s *StreamingSuite) TestZeroBudgetIsNoOp() {
	in := strings.Repeat("z", 40000)
	p, err := NewString(in)
	s.Require().NoError(err)

	var buf bytes.Buffer
	for i := 0; i < 3; i++ {
		n, err := p.WriteNext(&buf, 0)
		s.Require().NoError(err)
		s.Assert().Zero(n)
	}

	out, _ := drain(s.T(), p, 8192)
	s.Assert().Equal(Escape(in), string(out))
}

func (s *StreamingSuite) TestStatefulCharsetLength() {
	// 'é' is two bytes of UTF-8 but one byte of cp1252, so the counting
	// pre-pass must disagree with the escaped text's own size.
	in := strings.Repeat("é", 20000)
	p, err := NewStringCharset(in, "latin1")
	s.Require().NoError(err)
	s.Assert().Equal(KindStreaming, p.Kind())
	s.Assert().EqualValues(20002, p.Length())

	out, _ := drain(s.T(), p, 999)
	s.Assert().Len(out, 20002)
	s.Assert().EqualValues('\'', out[0])
	s.Assert().EqualValues(0xe9, out[1])
	s.Assert().EqualValues('\'', out[len(out)-1])
}

func (s *StreamingSuite) TestEncodeFaultAtConstruction() {
	// The counting pre-pass hits the unrepresentable rune before any byte
	// is emitted.
	in := strings.Repeat("世", 20000)
	_, err := NewStringCharset(in, "latin1")
	s.Assert().ErrorIs(err, ErrEncode)
}

func (s *StreamingSuite) TestSinkFaultLeavesPartialState() {
	in := strings.Repeat("A", 40000)
	p, err := NewString(in)
	s.Require().NoError(err)

	sink := &faultySink{limit: 10}
	n, err := p.WriteNext(sink, 100)
	s.Assert().Equal(10, n)
	s.Assert().ErrorIs(err, errSinkFault)
	s.Assert().Equal(strings.Repeat("A", 9), sink.buf.String()[1:]) // leading quote then As
}

func (s *StreamingSuite) TestNilSink() {
	in := strings.Repeat("A", 40000)
	p, err := NewString(in)
	s.Require().NoError(err)

	_, err = p.WriteNext(nil, 10)
	s.Assert().ErrorIs(err, ErrNilSink)
}

func TestStreamingParameter(t *testing.T) {
	suite.Run(t, new(StreamingSuite))
}

// Each parameter is exclusively owned, so independent parameters must drain
// correctly from concurrent goroutines.
func TestConcurrentIndependentParameters(t *testing.T) {
	in := strings.Repeat("p'q😀", 10000)
	want := Escape(in)

	var g errgroup.Group
	for _, chunk := range []int{1, 17, 256, 4096} {
		g.Go(func() error {
			p, err := NewString(in)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			for {
				n, err := p.WriteNext(&buf, chunk)
				if err != nil {
					return err
				}
				if n == 0 {
					break
				}
			}
			if buf.String() != want {
				return fmt.Errorf("chunk %d: drained output differs from escape", chunk)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
