package field

import "github.com/zostay/headerfix/header"

// RunKind classifies a run of newline characters.
type RunKind int

// The kinds of newline runs. A lone CR that is not followed by LF is not
// treated as a newline at all, so RunAt reports NotNewline for it and the CR is
// kept as part of the value.
const (
	NotNewline RunKind = iota // not a newline
	SingleLF                  // "\n"
	SingleCRLF                // "\r\n"
	DoubleLF                  // "\n\n"
	DoubleCRLF                // "\r\n\r\n"
	Other                     // anything longer or irregular, e.g. "\n\n\n" or "\n\r\n"
)

var runKindNames = map[RunKind]string{
	NotNewline: "not-newline",
	SingleLF:   "single-LF",
	SingleCRLF: "single-CRLF",
	DoubleLF:   "double-LF",
	DoubleCRLF: "double-CRLF",
	Other:      "other",
}

// String returns the name of the kind.
func (k RunKind) String() string {
	if n, ok := runKindNames[k]; ok {
		return n
	}
	return "unknown"
}

// Break returns the line break a single newline of this kind uses. Other and
// NotNewline have no break and return header.Meh.
func (k RunKind) Break() header.Break {
	switch k {
	case SingleLF, DoubleLF:
		return header.LF
	case SingleCRLF, DoubleCRLF:
		return header.CRLF
	default:
		return header.Meh
	}
}

// IsDouble returns true for the two clean doubled kinds.
func (k RunKind) IsDouble() bool {
	return k == DoubleLF || k == DoubleCRLF
}

// Run is a maximal span of CR and LF bytes in the text.
type Run struct {
	Start int     // offset of the first newline byte
	End   int     // offset just past the last newline byte
	Kind  RunKind // classification of the span
}

// Len returns the number of bytes in the run.
func (r Run) Len() int {
	return r.End - r.Start
}

// RunAt measures the newline run starting at pos and classifies it. A run is
// made of LF and CRLF line breaks only: a CR that is not followed by LF ends
// the run and is left as value content. If pos is out of range or no line break
// starts there, the run is empty and has kind NotNewline.
func RunAt(text []byte, pos int) Run {
	if pos < 0 || pos >= len(text) {
		return Run{Start: pos, End: pos, Kind: NotNewline}
	}

	end := pos
scan:
	for end < len(text) {
		switch {
		case text[end] == '\n':
			end++
		case text[end] == '\r' && end+1 < len(text) && text[end+1] == '\n':
			end += 2
		default:
			break scan
		}
	}

	r := Run{Start: pos, End: end}
	switch string(text[pos:end]) {
	case "":
		r.Kind = NotNewline
	case "\n":
		r.Kind = SingleLF
	case "\r\n":
		r.Kind = SingleCRLF
	case "\n\n":
		r.Kind = DoubleLF
	case "\r\n\r\n":
		r.Kind = DoubleCRLF
	default:
		r.Kind = Other
	}

	return r
}
