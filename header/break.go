package header

// Break represents a line break flavor found in a message.
type Break string

// Constants for the line breaks this module recognizes. LF and CRLF are the
// only two dialects a header may use. They may be mixed within one message and
// each occurrence is handled on its own.
const (
	Meh  Break = ""         // No break, or a break that does not matter
	CRLF Break = "\x0d\x0a" // \r\n - Network linebreak
	LF   Break = "\x0a"     // \n - Unix/Linux/BSD linebreak
)

// String returns the break as a string.
func (b Break) String() string {
	return string(b)
}

// Bytes returns the break as a slice of bytes.
func (b Break) Bytes() []byte {
	return []byte(b)
}

// Double returns the break repeated twice, which is how the blank line between
// header and body looks in this dialect.
func (b Break) Double() Break {
	return b + b
}

// Name returns a short human readable name for the break, used in reports.
func (b Break) Name() string {
	switch b {
	case LF:
		return "LF"
	case CRLF:
		return "CRLF"
	case Meh:
		return "none"
	default:
		return "other"
	}
}

// IsFoldSpace returns true if c is one of the two characters that continue a
// folded header field on the next line.
func IsFoldSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

// IsNewline returns true for CR and LF.
func IsNewline(c byte) bool {
	return c == '\r' || c == '\n'
}
