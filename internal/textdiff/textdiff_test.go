package textdiff_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/headerfix/internal/textdiff"
)

func TestLines(t *testing.T) {
	t.Parallel()

	lines := textdiff.Lines("From: a\n\nTo: b\n\nBody", "From: a\nTo: b\n\nBody")
	assert.Equal(t, []textdiff.Line{
		{textdiff.Equal, "From: a\n"},
		{textdiff.Delete, "\n"},
		{textdiff.Equal, "To: b\n"},
		{textdiff.Equal, "\n"},
		{textdiff.Equal, "Body"},
	}, lines)

	deleted, inserted := textdiff.Stats(lines)
	assert.Equal(t, 1, deleted)
	assert.Equal(t, 0, inserted)
}

func TestLines_Same(t *testing.T) {
	t.Parallel()

	lines := textdiff.Lines("a\nb\n", "a\nb\n")
	deleted, inserted := textdiff.Stats(lines)
	assert.Zero(t, deleted)
	assert.Zero(t, inserted)
	assert.Len(t, lines, 2)
}

func TestRender(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	err := textdiff.Render(buf, "From: a\r\n\r\nTo: b\r\n\r\nBody", "From: a\r\nTo: b\r\n\r\nBody", -1)
	require.NoError(t, err)
	assert.Equal(t, ` From: a\r\n
-\r\n
 To: b\r\n
 \r\n
 Body
`, buf.String())
}

func TestRender_Context(t *testing.T) {
	t.Parallel()

	before := "From: a\n\nTo: b\n\nL1\nL2\nL3\nL4\n"
	after := "From: a\nTo: b\n\nL1\nL2\nL3\nL4\n"

	buf := &bytes.Buffer{}
	require.NoError(t, textdiff.Render(buf, before, after, 1))
	assert.Equal(t, ` From: a\n
-\n
 To: b\n
...
`, buf.String())

	buf.Reset()
	require.NoError(t, textdiff.Render(buf, before, after, 0))
	assert.Equal(t, "...\n-\\n\n...\n", buf.String())
}
