package repair

import (
	"github.com/zostay/headerfix/header"
	"github.com/zostay/headerfix/header/field"
)

// Constants related to Fixer options.
const (
	// DefaultChunkSize is the default size of chunks to read from the input in
	// FixReader.
	DefaultChunkSize = 16_384

	// DefaultMaxMessageLength is the default maximum byte length FixReader will
	// read before giving up with ErrLargeMessage.
	DefaultMaxMessageLength = 64 << 20
)

// Option refers to options that may be passed to New to modify how the Fixer
// works.
type Option func(f *Fixer)

// WithRegistry is an Option that replaces the header field vocabulary. The
// default is header.Default().
func WithRegistry(r *header.Registry) Option {
	return func(f *Fixer) { f.registry = r }
}

// WithMaxLineLength is an Option that sets the longest header line the Fixer
// accepts before failing with LineTooLong. The default is field.MaxLineLength.
// Values less than or equal to 0 restore the default.
func WithMaxLineLength(n int) Option {
	return func(f *Fixer) {
		if n <= 0 {
			n = field.MaxLineLength
		}
		f.maxLine = n
	}
}

// WithChunkSize is an Option that controls how many bytes FixReader reads at a
// time. The default chunk size is DefaultChunkSize.
func WithChunkSize(n int) Option {
	return func(f *Fixer) {
		if n <= 0 {
			n = DefaultChunkSize
		}
		f.chunkSize = n
	}
}

// WithMaxMessageLength is an Option that sets the maximum number of bytes
// FixReader will read. Setting this to a value less than or equal to 0 removes
// the limit. The default is DefaultMaxMessageLength.
func WithMaxMessageLength(n int) Option {
	return func(f *Fixer) { f.maxMessageLen = n }
}
