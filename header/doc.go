// Package header knows just enough about the shape of an email header block
// to find where header fields start. It provides the Registry of field names
// that are recognized as legal header starts and the bounded matcher that
// tests whether one of those names begins at a given offset.
//
// Nothing in this package decodes field values. The field sub-package scans
// the values themselves, and the repair package drives both to rebuild a
// damaged header.
package header
