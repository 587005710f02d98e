// Package sqlparam turns host-language values into their escaped, quoted,
// wire-ready byte representation for inclusion in textual SQL statements.
// Output is pulled in arbitrarily sized chunks so a packet assembler can
// interleave many parameters into fixed-size packets without materializing
// unbounded byte arrays.
package sqlparam

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// THRESHOLD is the maximum escaped-text size, in bytes of the host string,
// eligible for full buffering. Anything larger is encoded incrementally with
// a fixed-size window. The escaped size is a cheap pre-encoding proxy; the
// authoritative byte length always comes from the actual charset encode.
const THRESHOLD = 32 * 1024

// Kind discriminates the closed set of parameter representations.
type Kind uint8

const (
	// KindText is escaped, quoted text, fully buffered at construction.
	KindText Kind = iota
	// KindJSON is backslash-escaped JSON text, fully buffered, unquoted.
	KindJSON
	// KindStreaming is escaped, quoted text too large to buffer; it is
	// encoded incrementally and drained strictly sequentially.
	KindStreaming
)

func (k Kind) String() string {
	switch k {
	case KindJSON:
		return "json"
	case KindStreaming:
		return "streaming"
	default:
		return "text"
	}
}

// Parameter is a single bound value, ready to emit its byte representation.
//
// A Parameter belongs to exactly one in-flight statement execution and is
// not safe for concurrent use. Buffered kinds support random access through
// WriteAt; the streaming kind is sequential only. Abandoning a partially
// drained parameter needs no cleanup.
type Parameter struct {
	kind   Kind
	length int64
	buf    []byte        // buffered kinds only
	next   int64         // sequential cursor over buf for WriteNext
	cur    *streamCursor // streaming kind only
}

// NewString builds a parameter from value, escaped, quoted and encoded as
// UTF-8.
func NewString(value string) (*Parameter, error) {
	return NewStringEncoding(value, unicode.UTF8)
}

// NewStringCharset is NewString with the target encoding resolved from a
// registered charset name.
func NewStringCharset(value, charset string) (*Parameter, error) {
	enc, ok := Charset(charset)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, charset)
	}
	return NewStringEncoding(value, enc)
}

// NewStringEncoding builds a parameter from value using the given target
// encoding. Small values are encoded once, up front. Large values get a
// streaming parameter whose total byte length is computed by a counting
// pre-pass; the encode then restarts from scratch with a fresh cursor when
// the bytes are actually drained.
//
// Returns ErrEncode if the escaped value cannot be represented in the target
// encoding.
func NewStringEncoding(value string, enc encoding.Encoding) (*Parameter, error) {
	escaped := Escape(value)
	if len(escaped) <= THRESHOLD {
		buf, err := enc.NewEncoder().Bytes([]byte(escaped))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEncode, err)
		}
		return &Parameter{kind: KindText, length: int64(len(buf)), buf: buf}, nil
	}

	total, err := countEncodedBytes(escaped, enc)
	if err != nil {
		return nil, err
	}
	return &Parameter{
		kind:   KindStreaming,
		length: total,
		cur:    newStreamCursor(escaped, enc),
	}, nil
}

// NewJSON builds a fully buffered parameter from a JSON document. Only the
// backslash character is escaped and no quotes are added; the document is
// emitted as UTF-8.
func NewJSON(value string) *Parameter {
	buf := []byte(JSONEscape(value))
	return &Parameter{kind: KindJSON, length: int64(len(buf)), buf: buf}
}

// Kind returns the parameter's representation kind.
func (p *Parameter) Kind() Kind { return p.kind }

// Length returns the total number of bytes the parameter will ever emit.
// It never mutates drain state and is stable for the parameter's lifetime.
func (p *Parameter) Length() int64 { return p.length }

// WriteNext writes at most max bytes of the parameter's remaining output to
// sink and returns the number written. A return of 0 with a nil error
// signals exhaustion.
//
// For the streaming kind the position is internal and advances monotonically;
// earlier bytes cannot be re-requested. Buffered kinds advance an internal
// cursor over the same bytes WriteAt exposes. After a sink error the cursor
// stays at whatever partial position was reached; the parameter is not safely
// resumable.
func (p *Parameter) WriteNext(sink io.Writer, max int) (int, error) {
	switch p.kind {
	case KindStreaming:
		return p.cur.writeNext(sink, max)
	default:
		n, err := p.WriteAt(sink, p.next, max)
		p.next += int64(n)
		return n, err
	}
}

// WriteAt writes min(max, Length()-offset) bytes starting at the absolute
// byte offset to sink and returns the number written. Calls are independent
// of each other and may be issued in any order or repeated. Out-of-range
// offset and max values are clamped, never rejected; a zero budget is a
// no-op.
//
// Only buffered kinds support random access: WriteAt on a streaming
// parameter returns ErrSequentialOnly.
func (p *Parameter) WriteAt(sink io.Writer, offset int64, max int) (int, error) {
	if p.kind == KindStreaming {
		return 0, ErrSequentialOnly
	}
	if sink == nil {
		return 0, ErrNilSink
	}
	offset = clamp(offset, 0, int64(len(p.buf)))
	if max <= 0 || offset == int64(len(p.buf)) {
		return 0, nil
	}
	end := min(offset+int64(max), int64(len(p.buf)))
	want := int(end - offset)
	n, err := sink.Write(p.buf[offset:end])
	if n < 0 || n > want {
		return 0, ErrInvalidWrite
	}
	if err != nil {
		return n, err
	}
	if n < want {
		return n, io.ErrShortWrite
	}
	return n, nil
}
