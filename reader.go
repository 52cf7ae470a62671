package goblz77

import (
	"bufio"
	"io"
	"math"

	"github.com/go-errors/errors"
	"github.com/sirupsen/logrus"
)

type byteReader interface {
	io.Reader
	io.ByteScanner
}

// Reader decompresses a blz77 stream. The header is read and validated on the first call to
// Read, before any output is produced.
type Reader struct {
	r         byteReader
	maxWindow uint32
	state     decodeState
	err       error

	header   Header
	history  *window
	distance uint64
	length   uint64
	digits   int

	buf     []byte
	pending []byte

	log   logrus.FieldLogger
	trace bool
}

// NewReader returns a Reader that decompresses from r. If r cannot unread bytes it is wrapped
// in a bufio.Reader, which may read past the end of the compressed stream.
func NewReader(r io.Reader, options ...func(*config)) *Reader {
	c := newConfig(options)
	br, ok := r.(byteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{
		r:         br,
		maxWindow: c.maxWindow,
		state:     decodeStateHeader,
		buf:       make([]byte, 1),
		log:       c.log,
		trace:     traceEnabled(c.log),
	}
}

// Header returns the stream header, reading it first if needed.
func (r *Reader) Header() (Header, error) {
	if r.state == decodeStateHeader {
		if err := r.next(); err != nil && err != errNoOutput {
			r.fail(err)
			return r.header, err
		}
	}
	if r.state == decodeStateInvalid {
		return r.header, r.err
	}
	return r.header, nil
}

// Read fills out with decompressed bytes. A decoding error is reported on the call after the
// bytes decoded before it have been returned.
func (r *Reader) Read(out []byte) (int, error) {
	var n int
	for n < len(out) {
		if len(r.pending) == 0 {
			if r.err != nil {
				break
			}
			if err := r.next(); err != nil && err != errNoOutput {
				r.fail(err)
			}
			continue
		}
		c := copy(out[n:], r.pending)
		r.pending = r.pending[c:]
		n += c
	}
	if n > 0 {
		return n, nil
	}
	return 0, r.err
}

func (r *Reader) fail(err error) {
	if err != io.EOF {
		r.state = decodeStateInvalid
	}
	r.err = err
}

// errNoOutput is returned by next when it made progress without producing output.
var errNoOutput = errors.New("no output")

// next decodes one token into r.pending. It returns io.EOF at a clean end of stream.
func (r *Reader) next() error {
	for {
		switch r.state {
		case decodeStateHeader:
			if err := r.readHeader(); err != nil {
				return err
			}
			r.state = decodeStateLiteral
			return errNoOutput
		case decodeStateLiteral:
			b, err := r.readByte(io.EOF)
			if err == io.EOF {
				r.state = decodeStateDone
				return io.EOF
			} else if err != nil {
				return err
			}
			if b != escape {
				r.emit(b)
				return nil
			}
			r.state = decodeStateEscape
		case decodeStateEscape:
			b, err := r.readByte(ErrTruncated)
			if err != nil {
				return err
			}
			if b == escape {
				r.emit(b)
				r.state = decodeStateLiteral
				return nil
			}
			if !isDigit(b) {
				return errors.Errorf("%w: %q after escape", ErrMalformedToken, b)
			}
			r.distance = uint64(b - '0')
			r.state = decodeStateDistance
		case decodeStateDistance:
			b, err := r.readByte(ErrTruncated)
			if err != nil {
				return err
			}
			if b == separator {
				r.length = 0
				r.digits = 0
				r.state = decodeStateLength
				continue
			}
			if !isDigit(b) {
				return errors.Errorf("%w: %q in distance", ErrMalformedToken, b)
			}
			if r.distance, err = accumulate(r.distance, b); err != nil {
				return err
			}
		case decodeStateLength:
			b, err := r.r.ReadByte()
			if err != nil && err != io.EOF {
				return errors.WrapPrefix(err, "blz77: read", 0)
			}
			if err == nil && isDigit(b) {
				if r.length, err = accumulate(r.length, b); err != nil {
					return err
				}
				r.digits++
				continue
			}
			if r.digits == 0 {
				if err == io.EOF {
					return errors.Errorf("%w: match token ends after separator", ErrTruncated)
				}
				return errors.Errorf("%w: %q in length", ErrMalformedToken, b)
			}
			if err == nil {
				if err := r.r.UnreadByte(); err != nil {
					return errors.WrapPrefix(err, "blz77: unread", 0)
				}
			}
			r.state = decodeStateLiteral
			return r.copyMatch(r.distance, r.length)
		case decodeStateDone:
			return io.EOF
		case decodeStateInvalid:
			return r.err
		}
	}
}

func (r *Reader) readHeader() error {
	h, err := ReadHeader(r.r)
	if err != nil {
		return err
	}
	if h.SearchCapacity > r.maxWindow {
		return errors.Errorf("%w: %d bytes, limit %d", ErrWindowTooLarge, h.SearchCapacity, r.maxWindow)
	}
	r.header = h
	r.history = newWindow(int(h.SearchCapacity))
	return nil
}

// readByte reads one byte, turning io.EOF into eofErr.
func (r *Reader) readByte(eofErr error) (byte, error) {
	b, err := r.r.ReadByte()
	if err == io.EOF {
		return 0, eofErr
	} else if err != nil {
		return 0, errors.WrapPrefix(err, "blz77: read", 0)
	}
	return b, nil
}

func (r *Reader) emit(b byte) {
	r.history.AppendByte(b)
	r.buf[0] = b
	r.pending = r.buf[:1]
}

// copyMatch reproduces length bytes starting distance bytes back from the end of history. A
// length above distance repeats the copied run, as in classic LZ77.
func (r *Reader) copyMatch(distance, length uint64) error {
	h := r.history.Bytes()
	switch {
	case distance == 0 || length == 0:
		return errors.Errorf("%w: %%%d,%d", ErrMalformedToken, distance, length)
	case distance > uint64(len(h)):
		return errors.Errorf("%w: distance %d reaches past %d bytes of history", ErrMalformedToken, distance, len(h))
	case length > uint64(r.history.Cap()):
		return errors.Errorf("%w: length %d exceeds window of %d", ErrMalformedToken, length, r.history.Cap())
	}
	d, n := int(distance), int(length)
	if cap(r.buf) < n {
		r.buf = make([]byte, n)
	}
	out := r.buf[:n]
	copy(out, h[len(h)-d:])
	for i := d; i < n; i++ {
		out[i] = out[i-d]
	}
	r.history.Append(out)
	r.pending = out
	if r.trace {
		r.log.WithFields(logrus.Fields{
			"distance": d,
			"length":   n,
		}).Trace("match")
	}
	return nil
}

func accumulate(v uint64, digit byte) (uint64, error) {
	v = v*10 + uint64(digit-'0')
	if v > math.MaxUint32 {
		return 0, errors.Errorf("%w: number too large", ErrMalformedToken)
	}
	return v, nil
}
