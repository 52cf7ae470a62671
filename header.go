package goblz77

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/go-errors/errors"
)

const (
	// HeaderSize is the encoded size of Header
	HeaderSize = 16
	// FormatVersion is the only format version this package reads and writes
	FormatVersion uint8 = 0
)

var magic = [6]byte{0x7f, 'B', 'L', 'Z', '7', '7'}

// Header is the fixed-size record at the start of every compressed stream.
//
//	offset  size  field
//	0       6     magic 0x7f 'B' 'L' 'Z' '7' '7'
//	6       1     version
//	7       1     reserved, zero
//	8       4     search capacity, little endian
//	12      4     reserved, zero
type Header struct {
	Version        uint8
	SearchCapacity uint32
}

// MarshalBinary encodes h. Reserved fields are always written as zero.
func (h Header) MarshalBinary() ([]byte, error) {
	b := make([]byte, HeaderSize)
	copy(b, magic[:])
	b[6] = h.Version
	binary.LittleEndian.PutUint32(b[8:12], h.SearchCapacity)
	return b, nil
}

// UnmarshalBinary decodes and validates a header.
func (h *Header) UnmarshalBinary(b []byte) error {
	if len(b) < HeaderSize {
		return errors.Errorf("%w: header is %d bytes, need %d", ErrTruncated, len(b), HeaderSize)
	}
	if !bytes.Equal(b[:6], magic[:]) {
		return errors.Errorf("%w: % x", ErrBadMagic, b[:6])
	}
	if b[6] != FormatVersion {
		return errors.Errorf("%w: %d", ErrUnsupportedVersion, b[6])
	}
	if b[7] != 0 || !bytes.Equal(b[12:16], []byte{0, 0, 0, 0}) {
		return ErrReservedNotZero
	}
	h.Version = b[6]
	h.SearchCapacity = binary.LittleEndian.Uint32(b[8:12])
	return nil
}

// WriteHeader writes a current-version header announcing searchCapacity.
func WriteHeader(w io.Writer, searchCapacity uint32) error {
	b, _ := Header{Version: FormatVersion, SearchCapacity: searchCapacity}.MarshalBinary()
	if _, err := w.Write(b); err != nil {
		return errors.WrapPrefix(err, "blz77: writing header", 0)
	}
	return nil
}

// ReadHeader reads exactly HeaderSize bytes from r and validates them.
func ReadHeader(r io.Reader) (Header, error) {
	var h Header
	b := make([]byte, HeaderSize)
	n, err := io.ReadFull(r, b)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return h, errors.Errorf("%w: header is %d bytes, need %d", ErrTruncated, n, HeaderSize)
	} else if err != nil {
		return h, errors.WrapPrefix(err, "blz77: reading header", 0)
	}
	err = h.UnmarshalBinary(b)
	return h, err
}
