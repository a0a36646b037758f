// Package mailbox applies the header repair to every message of an mbox file.
// Only the blank lines removed by the repair differ between input and output:
// separator lines, line endings and bodies are copied byte for byte. Messages
// whose header cannot be repaired are copied through untouched unless strict
// mode is on.
//
// Writer goes the other way and packs loose messages into a new mbox stream.
package mailbox

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"time"

	"github.com/araddon/dateparse"
	"github.com/emersion/go-mbox"
	"github.com/zostay/go-addr/pkg/addr"

	"github.com/zostay/headerfix/repair"
)

// DefaultSender is used on a new separator line when no sender address can be
// found in a message.
const DefaultSender = "MAILER-DAEMON"

// MessageError describes a message that failed to repair in strict mode.
type MessageError struct {
	Index int   // zero-based position of the message in the mailbox
	Err   error // the repair error
}

// Error returns the error message.
func (err *MessageError) Error() string {
	return fmt.Sprintf("message %d: %v", err.Index, err.Err)
}

// Unwrap returns the repair error.
func (err *MessageError) Unwrap() error {
	return err.Err
}

// Stats summarizes a mailbox repair.
type Stats struct {
	Messages  int // messages read
	Repaired  int // messages that were changed
	Unchanged int // messages that needed no repair
	Malformed int // messages that could not be repaired and were copied as-is
	Collapsed int // blank lines removed across all messages
}

type processor struct {
	fixer  *repair.Fixer
	strict bool
	logf   func(format string, args ...any)
}

// Option modifies how Fix processes a mailbox.
type Option func(p *processor)

// WithFixer is an Option that sets the Fixer used on each message.
func WithFixer(f *repair.Fixer) Option {
	return func(p *processor) { p.fixer = f }
}

// WithStrict is an Option that makes Fix stop with a *MessageError at the first
// message that cannot be repaired.
func WithStrict() Option {
	return func(p *processor) { p.strict = true }
}

// WithLogf is an Option that receives a message for every malformed message
// copied through.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(p *processor) { p.logf = logf }
}

// Fix reads an mbox stream from r and writes the repaired mbox stream to w.
// Each message keeps its original separator line.
func Fix(w io.Writer, r io.Reader, opts ...Option) (*Stats, error) {
	p := &processor{
		fixer: repair.New(),
		logf:  func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(p)
	}

	mr := NewReader(r)
	stats := &Stats{}
	for i := 0; ; i++ {
		msg, err := mr.Next()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return stats, fmt.Errorf("unable to read message %d: %w", i, err)
		}
		stats.Messages++

		res, err := p.fixer.Fix(msg.Text)
		switch {
		case err != nil && p.strict:
			return stats, &MessageError{Index: i, Err: err}
		case err != nil:
			stats.Malformed++
			p.logf("message %d copied unchanged: %v", i, err)
		case res.Changed():
			stats.Repaired++
			stats.Collapsed += res.Collapsed
			msg.Text = res.Text
		default:
			stats.Unchanged++
		}

		if _, err := w.Write(msg.Bytes()); err != nil {
			return stats, fmt.Errorf("unable to write message %d: %w", i, err)
		}
	}

	return stats, nil
}

// Writer packs standalone messages into a new mbox stream. Each message gets
// a separator line built by Envelope, body lines starting with "From " are
// escaped, line endings are converted to LF and each message is followed by a
// blank line. Close must be called to finish the stream.
type Writer struct {
	mw *mbox.Writer
}

// NewWriter returns a Writer that writes an mbox stream to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{mw: mbox.NewWriter(w)}
}

// Add appends a message.
func (w *Writer) Add(text []byte) error {
	sender, date := Envelope(text)
	dst, err := w.mw.CreateMessage(sender, date)
	if err != nil {
		return err
	}

	// the closing blank line is written when the entry is finished
	if bytes.HasSuffix(text, []byte("\r\n")) {
		text = text[:len(text)-2]
	} else {
		text = bytes.TrimSuffix(text, []byte("\n"))
	}

	_, err = dst.Write(text)
	return err
}

// Close finishes the last entry.
func (w *Writer) Close() error {
	return w.mw.Close()
}

// Envelope picks the sender and date for a new separator line. The sender
// comes from Return-Path, then From, falling back to DefaultSender. The date
// comes from the Date field. It is the zero time if there is no usable Date,
// which Writer replaces with the current time.
func Envelope(text []byte) (sender string, date time.Time) {
	sender = DefaultSender

	msg, err := mail.ReadMessage(bytes.NewReader(text))
	if err != nil {
		return
	}

	for _, name := range []string{"Return-Path", "From"} {
		if a := firstAddress(msg.Header.Get(name)); a != "" {
			sender = a
			break
		}
	}

	if d := msg.Header.Get("Date"); d != "" {
		if t, err := dateparse.ParseAny(d); err == nil {
			date = t
		}
	}

	return
}

func firstAddress(body string) string {
	if body == "" {
		return ""
	}

	al, err := addr.ParseEmailAddressList(body)
	if err != nil || len(al) == 0 {
		return ""
	}

	return al[0].Address()
}
