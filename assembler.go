package sqlparam

import "io"

// Assembler drains raw statement text and bound parameters into an
// underlying sink, pulling parameter bytes in fixed-size budgets so nothing
// larger than one budget is ever requested at once. It tracks the total
// byte count and the first error that occurs; after an error, all subsequent
// operations become no-ops.
type Assembler struct {
	w      io.Writer
	budget int   // max bytes pulled from a parameter per call
	count  int64 // total bytes written
	err    error // first error encountered. Subsequent writes become no-ops.
}

// NewAssembler creates an Assembler writing to w. A budget <= 0 selects
// WINDOW_SIZE.
func NewAssembler(w io.Writer, budget int) (*Assembler, error) {
	if w == nil {
		return nil, ErrNilSink
	}
	if budget <= 0 {
		budget = WINDOW_SIZE
	}
	return &Assembler{w: w, budget: budget}, nil
}

// WriteParameter drains p to exhaustion in budget-sized pulls. Streaming and
// buffered parameters alike are consumed through their sequential cursor.
func (a *Assembler) WriteParameter(p *Parameter) {
	if p == nil || a.err != nil {
		return
	}
	for {
		n, err := p.WriteNext(a.w, a.budget)
		a.count += int64(n)
		if err != nil {
			a.setError(err)
			return
		}
		if n == 0 {
			return
		}
	}
}

// WriteString writes raw statement text between parameters.
func (a *Assembler) WriteString(s string) {
	if s == "" || a.err != nil {
		return
	}
	n, err := io.WriteString(a.w, s)
	a.count += int64(n)
	a.setError(err)
}

// WriteBytes writes raw statement bytes between parameters.
func (a *Assembler) WriteBytes(buf []byte) {
	if len(buf) == 0 || a.err != nil {
		return
	}
	n, err := a.w.Write(buf)
	a.count += int64(n)
	a.setError(err)
}

// Count returns the total number of bytes written so far.
func (a *Assembler) Count() int64 { return a.count }

// Err returns the first error encountered, if any.
func (a *Assembler) Err() error { return a.err }

// setError records the first non-nil error.
// This preserves the root cause of a failure chain instead of a later,
// less relevant error.
func (a *Assembler) setError(err error) {
	if a.err == nil && err != nil {
		a.err = err
	}
}
