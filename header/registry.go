package header

import (
	"fmt"
	"sort"
)

// DefaultNames is the vocabulary used by Default. These are the field names
// that were seen at the start of header lines in the damaged messages this
// module was written to repair. Callers with other mail will want to extend it
// with Registry.With.
var DefaultNames = []string{
	"From",
	"To",
	"Subject",
	"Delivered-To",
	"Received",
	"X-Received",
	"Return-Path",
	"Received-SPF",
	"Authentication-Results",
	"DKIM-Signature",
	"X-MSFBL",
	"Message-ID",
	"Date",
	"Content-Type",
	"MIME-Version",
	"X-Transport",
	"guid",
	"X-Trulia-Platform",
	"X-Sent-Using",
	"X-Trulia-Campaign",
	"X-Trulia-PayloadId",
	"Reply-To",
	"Feedback-ID",
	"List-Unsubscribe",
	"List-Id",
}

// InvalidNameError is returned when a name given to NewRegistry or With could
// never appear as a header field name.
type InvalidNameError struct {
	Name string // the offending name
}

// Error returns the error message.
func (err *InvalidNameError) Error() string {
	if err.Name == "" {
		return "header field name must not be empty"
	}
	return fmt.Sprintf("header field name %q contains characters not permitted in a field name", err.Name)
}

// Registry is an immutable set of header field names. Lookups are exact and
// case-sensitive. The length of the longest name is cached because it bounds
// how far MatchAt will scan.
//
// A Registry is safe for concurrent use.
type Registry struct {
	names  map[string]struct{}
	maxLen int
}

var defaultRegistry = mustRegistry(DefaultNames...)

func mustRegistry(names ...string) *Registry {
	r, err := NewRegistry(names...)
	if err != nil {
		panic(err)
	}
	return r
}

// Default returns the registry built from DefaultNames.
func Default() *Registry {
	return defaultRegistry
}

// NewRegistry returns a registry containing exactly the given names. Duplicate
// names are ignored. It returns an *InvalidNameError if any name is empty or
// contains anything other than printable US-ASCII excluding the colon.
func NewRegistry(names ...string) (*Registry, error) {
	r := &Registry{names: make(map[string]struct{}, len(names))}
	if err := r.add(names); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) add(names []string) error {
	for _, name := range names {
		if !validName(name) {
			return &InvalidNameError{name}
		}

		r.names[name] = struct{}{}
		if len(name) > r.maxLen {
			r.maxLen = len(name)
		}
	}
	return nil
}

// With returns a new registry holding the names of r plus the given names. The
// receiver is left unchanged.
func (r *Registry) With(names ...string) (*Registry, error) {
	nr := &Registry{
		names:  make(map[string]struct{}, len(r.names)+len(names)),
		maxLen: r.maxLen,
	}
	for name := range r.names {
		nr.names[name] = struct{}{}
	}

	if err := nr.add(names); err != nil {
		return nil, err
	}
	return nr, nil
}

// Contains returns true if name is a registered field name.
func (r *Registry) Contains(name string) bool {
	_, ok := r.names[name]
	return ok
}

// MaxNameLength returns the length of the longest registered name.
func (r *Registry) MaxNameLength() int {
	return r.maxLen
}

// Len returns the number of registered names.
func (r *Registry) Len() int {
	return len(r.names)
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.names))
	for name := range r.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// validName checks the name against the ftext rule of RFC 5322.
func validName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isFieldText(name[i]) {
			return false
		}
	}
	return true
}

func isFieldText(c byte) bool {
	return c >= 33 && c <= 126 && c != ':'
}
