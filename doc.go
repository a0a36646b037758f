// Package headerfix repairs email messages whose header has been broken up by
// doubled newlines.
//
// Some mail software writes a blank line after every header field instead of
// a single line break. A mail parser treats the first blank line as the end of
// the header, so every field after the first one ends up in the body. The
// repair removes a blank line only when the text after it starts with a known
// header field name, which leaves the real header/body boundary and the body
// itself untouched.
//
// The work is split up as follows:
//
//   - header holds the vocabulary of recognized field names (header.Registry)
//     and the line break types (header.Break).
//   - header/field classifies runs of newlines and reads a single field value,
//     including its folded continuation lines.
//   - repair drives the whole pass over a message (repair.Fixer) and reports
//     what it changed (repair.Result) or why the message could not be repaired
//     (repair.MalformedHeaderError).
//   - mailbox applies the repair to every message of an mbox file.
//   - inspect parses a repaired message with a MIME parser, to confirm the
//     header is now visible to downstream software.
//
// The headerfix command in cmd/headerfix wraps all of these for use from the
// shell.
package headerfix
