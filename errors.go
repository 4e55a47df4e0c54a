package huff

import "errors"

var (
	// ErrFormat indicates a container that cannot be parsed: bad magic or
	// version, truncated header, impossible code lengths, conflicting codes
	// or trailing data.
	ErrFormat = errors.New("invalid container format")
	// ErrMalformedTraversal indicates a payload bit that leads to a tree edge
	// the code table never created.
	ErrMalformedTraversal = errors.New("malformed traversal: missing tree edge")
	// ErrTooManySymbols indicates an input using all 256 byte values, which the
	// one-byte symbol count of the legacy format cannot represent.
	ErrTooManySymbols = errors.New("too many distinct symbols for legacy format")
	// ErrInputUnreadable indicates the source could not be opened or read.
	ErrInputUnreadable = errors.New("input unreadable")
	// ErrOutputUnwritable indicates the destination could not be created or written.
	ErrOutputUnwritable = errors.New("output unwritable")
)
