package goblz77

import (
	"bytes"
	"io"
	"os"

	"github.com/go-errors/errors"
)

type Encoder interface {
	Encode([]byte) ([]byte, error)
}

type encoder struct {
	options []func(*config)
}

// NewEncoder returns an Encoder for whole in-memory buffers. The input length is used as the
// size hint unless a SizeHint option says otherwise.
func NewEncoder(options ...func(*config)) Encoder {
	return &encoder{options: options}
}

func (e *encoder) Encode(in []byte) ([]byte, error) {
	var out bytes.Buffer
	options := append([]func(*config){SizeHint(uint64(len(in)))}, e.options...)
	w := NewWriter(&out, options...)
	if _, err := w.Write(in); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Compress reads r to the end and writes its compressed form to w. The size hint for levels that
// scale their window with the input comes from r when it is a regular file or an in-memory
// reader with a Len method; a SizeHint option overrides it.
func Compress(w io.Writer, r io.Reader, level int, options ...func(*config)) error {
	options = append([]func(*config){Level(level), SizeHint(sizeOf(r))}, options...)
	zw := NewWriter(w, options...)
	if _, err := io.Copy(zw, r); err != nil {
		return errors.WrapPrefix(err, "blz77: compress", 0)
	}
	return zw.Close()
}

func sizeOf(r io.Reader) uint64 {
	switch v := r.(type) {
	case interface{ Stat() (os.FileInfo, error) }:
		fi, err := v.Stat()
		if err != nil || !fi.Mode().IsRegular() || fi.Size() < 0 {
			return 0
		}
		return uint64(fi.Size())
	case interface{ Len() int }:
		return uint64(v.Len())
	}
	return 0
}
