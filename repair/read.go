package repair

import (
	"bytes"
	"errors"
	"io"
)

// readAll reads the whole message, a chunk at a time, and fails with
// ErrLargeMessage if the message grows past the configured limit.
func (f *Fixer) readAll(r io.Reader) ([]byte, error) {
	p := make([]byte, f.chunkSize)
	buf := &bytes.Buffer{}
	for {
		n, err := r.Read(p)

		if f.maxMessageLen > 0 && n+buf.Len() > f.maxMessageLen {
			return nil, ErrLargeMessage
		}

		_, _ = buf.Write(p[:n])

		if errors.Is(err, io.EOF) {
			return buf.Bytes(), nil
		} else if err != nil {
			return nil, err
		}
	}
}

// FixReader reads a complete message from r and repairs it as Fix does. The
// repair needs the entire message, so r is read to the end before any work is
// done. Reading stops with ErrLargeMessage if the message is longer than the
// WithMaxMessageLength option allows, in which case r may be left partially
// read.
func (f *Fixer) FixReader(r io.Reader) (*Result, error) {
	text, err := f.readAll(r)
	if err != nil {
		return nil, err
	}

	return f.Fix(text)
}

// Copy repairs the message read from r and writes the repaired message to
// w. Nothing is written if the repair fails.
func (f *Fixer) Copy(w io.Writer, r io.Reader) (*Result, error) {
	res, err := f.FixReader(r)
	if err != nil {
		return nil, err
	}

	if _, err := w.Write(res.Text); err != nil {
		return nil, err
	}
	return res, nil
}
