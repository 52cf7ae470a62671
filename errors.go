package goblz77

import "github.com/go-errors/errors"

var (
	// ErrTruncated is returned when the input ended inside the header or inside a match token
	ErrTruncated = errors.New("blz77: ran out of input before finishing")
	// ErrBadMagic is returned when the stream does not start with the blz77 signature
	ErrBadMagic = errors.New("blz77: bad magic")
	// ErrUnsupportedVersion is returned when the header carries a format version this package cannot read
	ErrUnsupportedVersion = errors.New("blz77: unsupported format version")
	// ErrReservedNotZero is returned when a reserved header byte is set
	ErrReservedNotZero = errors.New("blz77: reserved header bytes must be zero")
	// ErrMalformedToken is returned when the bytes after an escape character do not form a valid token
	ErrMalformedToken = errors.New("blz77: malformed token")
	// ErrWindowTooLarge is returned when a header asks for a history window above the configured limit
	ErrWindowTooLarge = errors.New("blz77: history window too large")
	// ErrClosed is returned when writing to a Writer after Close
	ErrClosed = errors.New("blz77: write after close")
)
