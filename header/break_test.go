package header_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/headerfix/header"
)

func TestBreak_Bytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte{}, header.Meh.Bytes())
	assert.Equal(t, []byte{0x0d, 0x0a}, header.CRLF.Bytes())
	assert.Equal(t, []byte{0x0a}, header.LF.Bytes())
}

func TestBreak_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", header.Meh.String())
	assert.Equal(t, "\r\n", header.CRLF.String())
	assert.Equal(t, "\n", header.LF.String())
}

func TestBreak_Double(t *testing.T) {
	t.Parallel()

	assert.Equal(t, header.Break("\n\n"), header.LF.Double())
	assert.Equal(t, header.Break("\r\n\r\n"), header.CRLF.Double())
	assert.Equal(t, header.Meh, header.Meh.Double())
}

func TestBreak_Name(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "LF", header.LF.Name())
	assert.Equal(t, "CRLF", header.CRLF.Name())
	assert.Equal(t, "none", header.Meh.Name())
	assert.Equal(t, "other", header.Break("\n\r").Name())
}

func TestIsFoldSpace(t *testing.T) {
	t.Parallel()

	assert.True(t, header.IsFoldSpace(' '))
	assert.True(t, header.IsFoldSpace('\t'))
	assert.False(t, header.IsFoldSpace('\n'))
	assert.False(t, header.IsFoldSpace('X'))
}
