package repair

import (
	"errors"
	"fmt"
)

// Errors returned by the Fixer.
var (
	// ErrMalformedHeader matches every *MalformedHeaderError with errors.Is.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrLargeMessage is returned by FixReader when the input is longer than
	// the configured WithMaxMessageLength option (or the default,
	// DefaultMaxMessageLength).
	ErrLargeMessage = errors.New("the message exceeds the maximum read length")
)

// Reason identifies why a header could not be repaired.
type Reason int

// The reasons a header may be rejected.
const (
	// NoValidFirstHeader means the text does not start with a registered field
	// name followed by a colon.
	NoValidFirstHeader Reason = iota + 1

	// MissingBoundary means the header ended on a single newline and neither a
	// header field nor a blank line followed it.
	MissingBoundary

	// LineTooLong means a header line ran past the line length limit.
	LineTooLong

	// UnrecognizedName means a field name that is not in the registry was found
	// where the next header field was expected.
	UnrecognizedName
)

// String returns a short description of the reason.
func (r Reason) String() string {
	switch r {
	case NoValidFirstHeader:
		return "no valid first header"
	case MissingBoundary:
		return "missing blank line between header and body"
	case LineTooLong:
		return "header line too long"
	case UnrecognizedName:
		return "unrecognized field name"
	default:
		return "unknown reason"
	}
}

// MalformedHeaderError is returned when the text does not look enough like a
// message header to be repaired. No partial output accompanies it.
type MalformedHeaderError struct {
	Reason Reason // what went wrong
	Offset int    // offset into the input where the problem was found
	Name   string // the offending field name, if one was seen
	Err    error  // the underlying error, if any
}

// Error returns the error message.
func (err *MalformedHeaderError) Error() string {
	if err.Name != "" {
		return fmt.Sprintf("%v: %v %q at offset %d", ErrMalformedHeader, err.Reason, err.Name, err.Offset)
	}
	return fmt.Sprintf("%v: %v at offset %d", ErrMalformedHeader, err.Reason, err.Offset)
}

// Is makes errors.Is(err, ErrMalformedHeader) true.
func (err *MalformedHeaderError) Is(target error) bool {
	return target == ErrMalformedHeader
}

// Unwrap returns the underlying error.
func (err *MalformedHeaderError) Unwrap() error {
	return err.Err
}
