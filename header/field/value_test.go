package field_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/headerfix/header"
	"github.com/zostay/headerfix/header/field"
)

func TestConsumeValue_SingleNewline(t *testing.T) {
	t.Parallel()

	text := []byte("From: a\nTo: b\n\nBody")
	v, err := field.ConsumeValue(text, 5, 0)
	require.NoError(t, err)
	assert.Equal(t, " a\n", string(v.Text))
	assert.Equal(t, 8, v.Next)
	assert.Equal(t, field.None, v.Boundary.Kind)
	assert.Equal(t, header.Meh, v.Boundary.Break)

	text = []byte("From: a\r\nTo: b")
	v, err = field.ConsumeValue(text, 5, 0)
	require.NoError(t, err)
	assert.Equal(t, " a\r\n", string(v.Text))
	assert.Equal(t, 9, v.Next)
	assert.Equal(t, field.None, v.Boundary.Kind)
}

func TestConsumeValue_Collapsed(t *testing.T) {
	t.Parallel()

	text := []byte("From: a\n\nTo: b")
	v, err := field.ConsumeValue(text, 5, 0)
	require.NoError(t, err)
	assert.Equal(t, " a\n", string(v.Text))
	assert.Equal(t, 9, v.Next)
	assert.Equal(t, field.Boundary{Kind: field.Collapsed, Break: header.LF}, v.Boundary)

	text = []byte("From: a\r\n\r\nTo: b")
	v, err = field.ConsumeValue(text, 5, 0)
	require.NoError(t, err)
	assert.Equal(t, " a\r\n", string(v.Text))
	assert.Equal(t, 11, v.Next)
	assert.Equal(t, field.Boundary{Kind: field.Collapsed, Break: header.CRLF}, v.Boundary)

	// doubled newline at the very end of the text
	text = []byte("From: a\n\n")
	v, err = field.ConsumeValue(text, 5, 0)
	require.NoError(t, err)
	assert.Equal(t, 9, v.Next)
	assert.Equal(t, field.Collapsed, v.Boundary.Kind)
}

func TestConsumeValue_Folds(t *testing.T) {
	t.Parallel()

	// ordinary fold with a space, then a tab
	text := []byte("Received: x\n  y\n\tz\nTo: b")
	v, err := field.ConsumeValue(text, 9, 0)
	require.NoError(t, err)
	assert.Equal(t, " x\n  y\n\tz\n", string(v.Text))
	assert.Equal(t, field.None, v.Boundary.Kind)
	assert.Equal(t, 2, v.Folds)
	assert.Equal(t, 0, v.RepairedFolds)
	assert.Equal(t, "To: b", string(text[v.Next:]))

	// a fold broken by a doubled newline
	text = []byte("Received: x\n\n  cont\n\nNext-Header: y")
	v, err = field.ConsumeValue(text, 9, 0)
	require.NoError(t, err)
	assert.Equal(t, " x\n  cont\n", string(v.Text))
	assert.Equal(t, field.Collapsed, v.Boundary.Kind)
	assert.Equal(t, 1, v.Folds)
	assert.Equal(t, 1, v.RepairedFolds)
	assert.Equal(t, "Next-Header: y", string(text[v.Next:]))

	// CRLF fold broken by a doubled newline keeps the CRLF dialect
	text = []byte("Received: x\r\n\r\n\tcont\nTo: b")
	v, err = field.ConsumeValue(text, 9, 0)
	require.NoError(t, err)
	assert.Equal(t, " x\r\n\tcont\n", string(v.Text))
	assert.Equal(t, field.None, v.Boundary.Kind)
}

func TestConsumeValue_Terminal(t *testing.T) {
	t.Parallel()

	for _, sep := range []string{"\n\n\n", "\r\n\r\n\r\n", "\n\r\n", "\r\n\n"} {
		text := []byte("From: a" + sep + "Body")
		v, err := field.ConsumeValue(text, 5, 0)
		require.NoError(t, err)
		assert.Equal(t, " a", string(v.Text), "%q", sep)
		assert.Equal(t, 7, v.Next, "%q", sep)
		assert.Equal(t, field.Terminal, v.Boundary.Kind, "%q", sep)
	}
}

func TestConsumeValue_LoneCR(t *testing.T) {
	t.Parallel()

	text := []byte("Subject: a\rb\nTo: c")
	v, err := field.ConsumeValue(text, 8, 0)
	require.NoError(t, err)
	assert.Equal(t, " a\rb\n", string(v.Text))
	assert.Equal(t, field.None, v.Boundary.Kind)

	text = []byte("Subject: a\r\r\nTo: c")
	v, err = field.ConsumeValue(text, 8, 0)
	require.NoError(t, err)
	assert.Equal(t, " a\r\r\n", string(v.Text))
	assert.Equal(t, 13, v.Next)
	assert.Equal(t, field.None, v.Boundary.Kind)
}

func TestConsumeValue_EndOfText(t *testing.T) {
	t.Parallel()

	text := []byte("From: a")
	v, err := field.ConsumeValue(text, 5, 0)
	require.NoError(t, err)
	assert.Equal(t, " a", string(v.Text))
	assert.Equal(t, len(text), v.Next)
	assert.Equal(t, field.None, v.Boundary.Kind)

	v, err = field.ConsumeValue(text, len(text), 0)
	require.NoError(t, err)
	assert.Empty(t, v.Text)
	assert.Equal(t, len(text), v.Next)
}

func TestConsumeValue_LineTooLong(t *testing.T) {
	t.Parallel()

	// exactly at the limit is fine
	text := []byte("Subject:" + strings.Repeat("x", field.MaxLineLength) + "\nTo: b")
	v, err := field.ConsumeValue(text, 8, 0)
	require.NoError(t, err)
	assert.Len(t, v.Text, field.MaxLineLength+1)

	// one more is not
	text = []byte("Subject:" + strings.Repeat("x", field.MaxLineLength+1) + "\nTo: b")
	_, err = field.ConsumeValue(text, 8, 0)
	var tooLong *field.LineTooLongError
	require.ErrorAs(t, err, &tooLong)
	assert.Equal(t, 8, tooLong.Start)
	assert.Equal(t, 8+field.MaxLineLength, tooLong.Offset)
	assert.Equal(t, field.MaxLineLength, tooLong.Limit)

	// the counter starts over at each fold
	long := strings.Repeat("x", 600)
	text = []byte("Subject:" + long + "\n " + long + "\n\n " + long + "\nTo: b")
	v, err = field.ConsumeValue(text, 8, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, v.Folds)

	// a custom limit
	_, err = field.ConsumeValue([]byte("Subject: abcdef\n"), 8, 5)
	assert.ErrorAs(t, err, &tooLong)
	assert.Equal(t, 5, tooLong.Limit)
}

func TestBoundaryKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "none", field.None.String())
	assert.Equal(t, "collapsed", field.Collapsed.String())
	assert.Equal(t, "terminal", field.Terminal.String())
	assert.Equal(t, "unknown", field.BoundaryKind(9).String())
}
