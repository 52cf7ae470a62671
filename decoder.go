package goblz77

import (
	"bytes"
	"io"

	"github.com/go-errors/errors"
)

type Decoder interface {
	Decode(in []byte) ([]byte, error)
}

type decoder struct {
	options []func(*config)
}

func NewDecoder(options ...func(*config)) Decoder {
	return &decoder{options: options}
}

func (d *decoder) Decode(in []byte) ([]byte, error) {
	var out bytes.Buffer
	if err := Decompress(&out, bytes.NewReader(in), d.options...); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Decompress writes the decompressed contents of r to w. Nothing is written to w if the header
// is invalid.
func Decompress(w io.Writer, r io.Reader, options ...func(*config)) error {
	zr := NewReader(r, options...)
	if _, err := zr.Header(); err != nil {
		return err
	}
	if _, err := io.Copy(w, zr); err != nil {
		if isCodecError(err) {
			return err
		}
		return errors.WrapPrefix(err, "blz77: decompress", 0)
	}
	return nil
}

func isCodecError(err error) bool {
	for _, target := range []error{ErrTruncated, ErrMalformedToken, ErrBadMagic, ErrUnsupportedVersion, ErrReservedNotZero, ErrWindowTooLarge} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
