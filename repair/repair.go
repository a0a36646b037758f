package repair

import (
	"bytes"
	"errors"

	"github.com/zostay/headerfix/header"
	"github.com/zostay/headerfix/header/field"
)

// Result describes a repaired message.
type Result struct {
	// Text is the repaired message.
	Text []byte

	// Fields lists the header field names in the order they were found.
	Fields []string

	// Collapsed counts the blank lines removed from between header fields.
	Collapsed int

	// Folds counts the folded continuation lines in the header.
	Folds int

	// RepairedFolds counts the folds that had been split by a blank line and
	// were joined again.
	RepairedFolds int

	// Break is the dialect of the blank line that separates header and body. It
	// is header.Meh when the separator is an irregular run of newlines, which is
	// kept as-is.
	Break header.Break

	// BodyOffset is the offset in Text where the body starts.
	BodyOffset int
}

// Changed returns true if the repaired text differs from the input.
func (r *Result) Changed() bool {
	return r.Collapsed > 0 || r.RepairedFolds > 0
}

// Header returns the repaired header, including the blank line after it.
func (r *Result) Header() []byte {
	return r.Text[:r.BodyOffset]
}

// Body returns the body, which is exactly the body of the input.
func (r *Result) Body() []byte {
	return r.Text[r.BodyOffset:]
}

// Fixer repairs message headers. The zero value is not usable, use New. A Fixer
// holds no state between calls and is safe for concurrent use.
type Fixer struct {
	registry      *header.Registry
	maxLine       int
	chunkSize     int
	maxMessageLen int
}

// New returns a Fixer configured with the given options.
func New(opts ...Option) *Fixer {
	f := &Fixer{
		registry:      header.Default(),
		maxLine:       field.MaxLineLength,
		chunkSize:     DefaultChunkSize,
		maxMessageLen: DefaultMaxMessageLength,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Registry returns the header field vocabulary used by the Fixer.
func (f *Fixer) Registry() *header.Registry {
	return f.registry
}

// Fix repairs the header of the message in text. The text must start with a
// registered header field. Each field value is scanned with
// field.ConsumeValue. A doubled newline that ends a value is removed if the
// next thing in the text is another registered field. Otherwise it is the
// blank line before the body, and it is put back unchanged.
//
// The returned error is always a *MalformedHeaderError, and no Result is
// returned with it. The input is never modified.
func (f *Fixer) Fix(text []byte) (*Result, error) {
	colon, ok := f.registry.MatchAt(text, 0)
	if !ok {
		name, _, _ := header.ScanName(text, 0, field.MaxLineLength)
		return nil, &MalformedHeaderError{
			Reason: NoValidFirstHeader,
			Offset: 0,
			Name:   string(name),
		}
	}

	out := bytes.NewBuffer(make([]byte, 0, len(text)))
	out.Write(text[:colon+1])

	res := &Result{Fields: []string{string(text[:colon])}}
	cursor := colon

scan:
	for {
		v, err := field.ConsumeValue(text, cursor+1, f.maxLine)
		if err != nil {
			return nil, lineTooLong(err)
		}

		out.Write(v.Text)
		cursor = v.Next
		res.Folds += v.Folds
		res.RepairedFolds += v.RepairedFolds

		if v.Boundary.Kind == field.Terminal {
			res.Break = header.Meh
			res.BodyOffset = out.Len() + field.RunAt(text, cursor).Len()
			break scan
		}

		if next, ok := f.registry.MatchAt(text, cursor); ok {
			if v.Boundary.Kind == field.Collapsed {
				res.Collapsed++
			}

			res.Fields = append(res.Fields, string(text[cursor:next]))
			out.Write(text[cursor : next+1])
			cursor = next
			continue
		}

		switch v.Boundary.Kind {
		case field.Collapsed:
			out.Write(v.Boundary.Break.Bytes())
			res.Break = v.Boundary.Break
			res.BodyOffset = out.Len()
			break scan
		default:
			return nil, f.unexpected(text, cursor)
		}
	}

	out.Write(text[cursor:])
	res.Text = out.Bytes()
	return res, nil
}

// unexpected builds the error for a header that ended on a single newline.
func (f *Fixer) unexpected(text []byte, cursor int) error {
	if name, _, ok := header.ScanName(text, cursor, field.MaxLineLength); ok {
		return &MalformedHeaderError{
			Reason: UnrecognizedName,
			Offset: cursor,
			Name:   string(name),
		}
	}

	return &MalformedHeaderError{
		Reason: MissingBoundary,
		Offset: cursor,
	}
}

func lineTooLong(err error) error {
	var tooLong *field.LineTooLongError
	if errors.As(err, &tooLong) {
		return &MalformedHeaderError{
			Reason: LineTooLong,
			Offset: tooLong.Offset,
			Err:    err,
		}
	}
	return err
}

var defaultFixer = New()

// Fix repairs text using a Fixer configured with the given options and returns
// the repaired text.
func Fix(text []byte, opts ...Option) ([]byte, error) {
	f := defaultFixer
	if len(opts) > 0 {
		f = New(opts...)
	}

	res, err := f.Fix(text)
	if err != nil {
		return nil, err
	}
	return res.Text, nil
}

// FixString is Fix for strings.
func FixString(text string, opts ...Option) (string, error) {
	out, err := Fix([]byte(text), opts...)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
