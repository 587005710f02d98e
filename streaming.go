package sqlparam

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// WINDOW_SIZE is the capacity of the streaming encode window and the source
// staging buffer. Streaming memory use is bounded by these two buffers no
// matter how large the value or how small the caller's byte budgets are.
const WINDOW_SIZE = 4096

// streamCursor owns the encoding position within the escaped text, a small
// reusable window of encoded-but-undrained bytes, and the completion flag.
// It is created fresh for the emit phase after the counting pre-pass and is
// mutated only by writeNext.
type streamCursor struct {
	enc     transform.Transformer
	src     string // escaped text
	pos     int    // bytes of src consumed by the encoder
	window  []byte // encoded output not yet drained
	staging []byte // bounded source chunk handed to the encoder
	wStart  int
	wEnd    int
	done    bool // input consumed and encoder flushed
}

func newStreamCursor(src string, enc encoding.Encoding) *streamCursor {
	return &streamCursor{
		enc:     enc.NewEncoder(),
		src:     src,
		window:  make([]byte, WINDOW_SIZE),
		staging: make([]byte, WINDOW_SIZE),
	}
}

// fill encodes the next bounded chunk of source into the window. On return
// the window holds at least one byte unless the cursor is done. The chunk is
// sized to the staging capacity, not to any caller budget, so memory use is
// independent of the requested chunk size.
//
// The encoder transforms whole character sequences only: every byte placed
// in the window is complete, valid output in the target encoding, wherever a
// later drain budget cuts.
func (c *streamCursor) fill() error {
	c.wStart, c.wEnd = 0, 0
	for c.wEnd == 0 && !c.done {
		n := copy(c.staging, c.src[c.pos:])
		atEOF := c.pos+n == len(c.src)
		nDst, nSrc, err := c.enc.Transform(c.window, c.staging[:n], atEOF)
		c.pos += nSrc
		c.wEnd = nDst
		switch {
		case err == nil:
			if atEOF {
				// Everything consumed and the encoder flushed any tail it
				// was holding. This is the one finalization pass.
				c.done = true
			}
		case errors.Is(err, transform.ErrShortDst):
			// Window is full; the rest comes on the next fill.
		case errors.Is(err, transform.ErrShortSrc) && !atEOF:
			// The staging chunk ends mid-sequence. nSrc stopped before the
			// partial sequence, so the next fill re-presents it whole.
		default:
			return fmt.Errorf("%w: %v", ErrEncode, err)
		}
		if nDst == 0 && nSrc == 0 && !c.done {
			// A transformer making no progress would loop forever.
			return fmt.Errorf("%w: encoder made no progress at byte %d", ErrEncode, c.pos)
		}
	}
	return nil
}

// writeNext drains up to max bytes into sink: window first, then freshly
// encoded chunks until the budget or the input runs out. Returns 0 only once
// fully drained.
func (c *streamCursor) writeNext(sink io.Writer, max int) (int, error) {
	if sink == nil {
		return 0, ErrNilSink
	}
	written := 0
	for written < max {
		if c.wStart == c.wEnd {
			if c.done {
				break
			}
			if err := c.fill(); err != nil {
				return written, err
			}
			if c.wStart == c.wEnd {
				break
			}
		}
		want := min(c.wEnd-c.wStart, max-written)
		n, err := sink.Write(c.window[c.wStart : c.wStart+want])
		if n < 0 || n > want {
			return written, ErrInvalidWrite
		}
		c.wStart += n
		written += n
		if err != nil {
			return written, err
		}
		if n < want {
			return written, io.ErrShortWrite
		}
	}
	return written, nil
}

// countEncodedBytes runs the full encode over src, summing produced byte
// counts without keeping any of the bytes. The pass uses pooled buffers and
// its own throwaway cursor; the real encode starts fresh afterwards.
func countEncodedBytes(src string, enc encoding.Encoding) (int64, error) {
	window, staging := windowPool.Get().(*[]byte), windowPool.Get().(*[]byte)
	defer windowPool.Put(window)
	defer windowPool.Put(staging)

	c := &streamCursor{enc: enc.NewEncoder(), src: src, window: *window, staging: *staging}
	var total int64
	for !c.done {
		if err := c.fill(); err != nil {
			return 0, err
		}
		total += int64(c.wEnd)
	}
	return total, nil
}
