package sqlparam

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestCharsetRegistry(t *testing.T) {
	enc, ok := Charset("LATIN1")
	require.True(t, ok)
	require.NotNil(t, enc)

	_, ok = Charset("nope")
	assert.False(t, ok)

	RegisterCharset("custom", charmap.ISO8859_15)
	got, ok := Charset("CUSTOM")
	require.True(t, ok)
	assert.Equal(t, charmap.ISO8859_15, got)
}
