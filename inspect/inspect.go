// Package inspect reports on a message the way a downstream consumer will see
// it. The message is handed to a full MIME parser, so inspecting a message
// before and after repair shows which header fields the parser could not see
// because of a misplaced blank line.
package inspect

import (
	"bytes"
	"fmt"
	"net/textproto"
	"sort"
	"time"

	"github.com/araddon/dateparse"
	"github.com/jhillyerd/enmime"
	"github.com/zostay/go-addr/pkg/addr"

	"github.com/zostay/headerfix/repair"
)

// Summary describes a parsed message.
type Summary struct {
	// Fields lists the header field names the parser found, canonicalized and
	// sorted.
	Fields []string

	// Subject is the decoded Subject field.
	Subject string

	// From lists the addresses in the From field.
	From []string

	// Date is the parsed Date field. It is the zero time if the field is
	// missing or unparseable.
	Date time.Time

	// ContentType is the media type of the top-level part.
	ContentType string

	// TextLength and HTMLLength are the byte lengths of the text and HTML
	// bodies found by the parser.
	TextLength int
	HTMLLength int

	// Attachments counts attachments and inline parts.
	Attachments int

	// Warnings lists the problems the parser reported while reading.
	Warnings []string
}

// Summarize parses text and summarizes it.
func Summarize(text []byte) (*Summary, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("unable to parse message: %w", err)
	}

	s := &Summary{
		TextLength:  len(env.Text),
		HTMLLength:  len(env.HTML),
		Attachments: len(env.Attachments) + len(env.Inlines),
	}

	var h textproto.MIMEHeader
	if env.Root != nil {
		h = env.Root.Header
		s.ContentType = env.Root.ContentType
	}

	for name := range h {
		s.Fields = append(s.Fields, name)
	}
	sort.Strings(s.Fields)

	s.Subject = DecodeHeader(h.Get("Subject"))

	if from := h.Get("From"); from != "" {
		if al, err := addr.ParseEmailAddressList(from); err == nil {
			for _, a := range al {
				s.From = append(s.From, a.Address())
			}
		} else {
			s.Warnings = append(s.Warnings, fmt.Sprintf("From: %v", err))
		}
	}

	if d := h.Get("Date"); d != "" {
		if t, err := dateparse.ParseAny(d); err == nil {
			s.Date = t
		} else {
			s.Warnings = append(s.Warnings, fmt.Sprintf("Date: %v", err))
		}
	}

	for _, e := range env.Errors {
		s.Warnings = append(s.Warnings, fmt.Sprintf("%s: %s", e.Name, e.Detail))
	}

	return s, nil
}

// Has returns true if the parser found the named header field.
func (s *Summary) Has(name string) bool {
	name = textproto.CanonicalMIMEHeaderKey(name)
	i := sort.SearchStrings(s.Fields, name)
	return i < len(s.Fields) && s.Fields[i] == name
}

// Verify hands the repaired message to the parser and returns the names of any
// header fields found by the repair that the parser did not see. An empty
// result means the repaired header is fully visible downstream.
func Verify(res *repair.Result) ([]string, error) {
	s, err := Summarize(res.Text)
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, name := range res.Fields {
		if !s.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing, nil
}
