package field

import (
	"fmt"

	"github.com/zostay/headerfix/header"
)

// MaxLineLength is the longest a single physical header line may be, as set by
// RFC 5322 section 2.1.1. A value longer than this without a newline means the
// text is not a header at all.
const MaxLineLength = 998

// BoundaryKind describes why ConsumeValue stopped scanning.
type BoundaryKind int

// The reasons ConsumeValue may stop.
const (
	// None means the value ended on a single newline that was not followed by
	// fold whitespace, or at the end of the text. The caller must decide whether
	// a header field or the body follows.
	None BoundaryKind = iota

	// Collapsed means the value ended on a clean doubled newline that has been
	// provisionally collapsed into a single newline. If a header field follows,
	// the collapse stands. Otherwise, the caller must put the second newline
	// back, because this was the blank line before the body.
	Collapsed

	// Terminal means the value ended at an irregular newline run (three or more
	// newlines, or mixed dialects). The run is not consumed and is always the
	// boundary between header and body.
	Terminal
)

// String returns the name of the kind.
func (k BoundaryKind) String() string {
	switch k {
	case None:
		return "none"
	case Collapsed:
		return "collapsed"
	case Terminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Boundary is the pause signal returned by ConsumeValue. Break is set only when
// Kind is Collapsed and holds the newline that was removed.
type Boundary struct {
	Kind  BoundaryKind
	Break header.Break
}

// Value is the result of scanning one header field value.
type Value struct {
	// Text is the value as it should be written out, including the newline
	// that ends it (for None and Collapsed) and any repaired folds.
	Text []byte

	// Next is the offset in the input where scanning should resume.
	Next int

	// Boundary tells the caller how the value ended.
	Boundary Boundary

	// Folds counts the fold points crossed by the value.
	Folds int

	// RepairedFolds counts the fold points that were doubled in the input and
	// were collapsed to a single newline.
	RepairedFolds int
}

// LineTooLongError is returned by ConsumeValue when a header line runs past
// the line length limit without reaching a newline.
type LineTooLongError struct {
	Start  int // offset where the value scan began
	Offset int // offset of the byte that exceeded the limit
	Limit  int // the limit that was in effect
}

// Error returns the error message.
func (err *LineTooLongError) Error() string {
	return fmt.Sprintf("header line starting near offset %d exceeds %d characters at offset %d", err.Start, err.Limit, err.Offset)
}

// ConsumeValue scans the header field value that starts at start. Scanning
// continues through folded continuation lines, a newline followed by a space or
// tab. Folds that were broken up by an extra blank line are collapsed to one
// newline of the same dialect.
//
// The scan stops at the first newline that is not a fold and reports what it
// found in the Boundary of the returned Value. A line of more than maxLine
// characters results in a *LineTooLongError. If maxLine is zero or less,
// MaxLineLength is used.
func ConsumeValue(text []byte, start, maxLine int) (Value, error) {
	if maxLine <= 0 {
		maxLine = MaxLineLength
	}

	v := Value{Text: make([]byte, 0, 80)}
	count := 0
	i := start
	for i < len(text) {
		run := RunAt(text, i)
		switch run.Kind {
		case NotNewline:
			count++
			if count > maxLine {
				return Value{}, &LineTooLongError{Start: start, Offset: i, Limit: maxLine}
			}

			v.Text = append(v.Text, text[i])
			i++
			continue

		case Other:
			v.Next = i
			v.Boundary = Boundary{Kind: Terminal}
			return v, nil
		}

		brk := run.Kind.Break()
		v.Text = append(v.Text, brk...)

		if run.End < len(text) && header.IsFoldSpace(text[run.End]) {
			v.Folds++
			if run.Kind.IsDouble() {
				v.RepairedFolds++
			}

			count = 0
			i = run.End
			continue
		}

		v.Next = run.End
		if run.Kind.IsDouble() {
			v.Boundary = Boundary{Kind: Collapsed, Break: brk}
		}
		return v, nil
	}

	v.Next = len(text)
	return v, nil
}
