package mailbox

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"github.com/emersion/go-mbox"
)

// ErrInvalidFormat is returned by Reader.Next when the stream does not start
// with a separator line. It is the same value go-mbox uses, so either package's
// error can be matched with errors.Is.
var ErrInvalidFormat = mbox.ErrInvalidFormat

var separatorPrefix = []byte("From ")

// Message is one entry of an mbox stream, exactly as it appeared in the input.
type Message struct {
	// Preamble holds any blank lines found before the first separator line.
	// It is only ever set on the first message.
	Preamble []byte

	// Separator is the "From " line that starts the entry, including its line
	// break.
	Separator []byte

	// Text is everything up to the next separator line: the message and the
	// blank line that usually trails it. Escaped ">From " lines are left as
	// they are.
	Text []byte
}

// Bytes returns the entry as it appeared in the stream.
func (m *Message) Bytes() []byte {
	b := make([]byte, 0, len(m.Preamble)+len(m.Separator)+len(m.Text))
	b = append(b, m.Preamble...)
	b = append(b, m.Separator...)
	return append(b, m.Text...)
}

// Reader splits an mbox stream into messages without altering a single byte.
// Line endings, separator lines and escaping are all kept, so writing every
// Message back out with Bytes reproduces the input.
type Reader struct {
	r       *bufio.Reader
	started bool
	sep     []byte
	err     error
}

// NewReader returns a Reader over the mbox stream in r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

func isSeparator(line []byte) bool {
	return bytes.HasPrefix(line, separatorPrefix)
}

func isBlank(line []byte) bool {
	return len(bytes.TrimRight(line, "\r\n")) == 0
}

// Next returns the next message. It returns io.EOF when there are no more.
func (r *Reader) Next() (*Message, error) {
	if r.err != nil {
		return nil, r.err
	}

	msg := &Message{}
	if !r.started {
		r.started = true
		pre, err := r.findFirst()
		if err != nil {
			r.err = err
			return nil, err
		}
		msg.Preamble = pre
	}

	if r.sep == nil {
		r.err = io.EOF
		return nil, r.err
	}

	msg.Separator, r.sep = r.sep, nil

	text := &bytes.Buffer{}
	for {
		line, err := r.r.ReadBytes('\n')
		if len(line) > 0 {
			if isSeparator(line) {
				r.sep = line
				break
			}
			_, _ = text.Write(line)
		}

		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			r.err = err
			return nil, err
		}
	}

	msg.Text = text.Bytes()
	return msg, nil
}

// findFirst skips blank lines up to the first separator line, returning them.
func (r *Reader) findFirst() ([]byte, error) {
	var pre []byte
	for {
		line, err := r.r.ReadBytes('\n')
		if len(line) > 0 {
			if isSeparator(line) {
				r.sep = line
				return pre, nil
			}

			if !isBlank(line) {
				return nil, ErrInvalidFormat
			}
			pre = append(pre, line...)
		}

		if err != nil {
			return nil, err
		}
	}
}
