package sqlparam

import "strings"

// needsEscape reports whether c must be preceded by a backslash inside a
// single-quoted SQL string literal.
func needsEscape(c byte) bool {
	switch c {
	case '\\', '\'', '"', '\n', '\r', 0x00, 0x1a:
		return true
	}
	return false
}

// Escape returns the quote-wrapped, backslash-escaped form of s, ready for
// inclusion in a textual SQL statement. Every escaped character is emitted as
// a backslash followed by the character itself, unchanged. The result is at
// most 2*len(s)+2 bytes.
//
// Escaping operates on the raw bytes of s. All escape targets are ASCII, so
// multi-byte sequences pass through untouched and are never inspected or
// split here.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if needsEscape(c) {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('\'')
	return b.String()
}

// JSONEscape escapes only the backslash character and wraps nothing in
// quotes. When no escaping is needed the input is returned unchanged.
func JSONEscape(s string) string {
	i := strings.IndexByte(s, '\\')
	if i < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) * 2)
	b.WriteString(s[:i])
	for ; i < len(s); i++ {
		c := s[i]
		if c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}
