package sqlparam

import (
	"strings"

	"github.com/puzpuzpuz/xsync/v4"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// charsets maps database charset names to their x/text encodings. A global
// concurrent map keeps lookups cheap and registration safe from any goroutine.
var charsets = xsync.NewMap[string, encoding.Encoding]()

func init() {
	RegisterCharset("utf8", unicode.UTF8)
	RegisterCharset("utf8mb4", unicode.UTF8)
	// MySQL's latin1 is cp1252, not ISO 8859-1.
	RegisterCharset("latin1", charmap.Windows1252)
	RegisterCharset("ascii", charmap.Windows1252)
	RegisterCharset("binary", encoding.Nop)
}

// RegisterCharset associates a charset name with an encoding, replacing any
// previous registration. Names are case-insensitive.
func RegisterCharset(name string, enc encoding.Encoding) {
	charsets.Store(strings.ToLower(name), enc)
}

// Charset resolves a registered charset name to its encoding.
func Charset(name string) (encoding.Encoding, bool) {
	return charsets.Load(strings.ToLower(name))
}
