package sqlparam

import "errors"

var (
	// ErrNilSink indicates that a write was attempted with a nil io.Writer.
	ErrNilSink = errors.New("sqlparam: write called with a nil io.Writer")

	// ErrEncode indicates the value contains a sequence that cannot be
	// represented in the target charset. A parameter is unusable after this
	// error; rebuild it from the original value.
	ErrEncode = errors.New("sqlparam: value cannot be represented in the target charset")

	// ErrSequentialOnly indicates a random-access write was attempted on a
	// streaming parameter, which only supports sequential draining.
	ErrSequentialOnly = errors.New("sqlparam: streaming parameter does not support offset writes")

	// ErrInvalidWrite indicates that the sink returned an invalid (negative or
	// outbound) count from Write.
	ErrInvalidWrite = errors.New("sqlparam: sink returned invalid count from Write")

	// ErrUnknownCharset indicates a charset name with no registered encoding.
	ErrUnknownCharset = errors.New("sqlparam: unknown charset name")
)
