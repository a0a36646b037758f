// Package repair removes blank lines that were wrongly injected into the header
// block of a raw email message.
//
// Some relays and export tools mangle messages so that a header looks like
// this:
//
//	From: a@example.com
//
//	To: b@example.com
//
//	Subject: hello
//
//	Body text.
//
// A strict parser sees the first blank line and decides the body starts with
// "To:". The Fixer walks the header one field at a time and removes a doubled
// newline whenever a known header field name follows it. When anything else
// follows a doubled newline, that blank line is the real boundary between
// header and body and it is left exactly as it was. Folded continuation lines
// that were split by a blank line are joined back to a single fold.
//
// Only the shape of the header is examined. Field values are copied through
// byte-for-byte, and the body is never looked at.
package repair
