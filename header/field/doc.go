// Package field scans the value of a single header field as it appears in raw
// message text. The scan follows folded continuation lines, repairs folds that
// were broken by an extra blank line, and stops at the first newline that
// might end the header field. What happens next is for the caller to decide.
package field
