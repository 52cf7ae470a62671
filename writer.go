package goblz77

import (
	"bufio"
	"io"

	"github.com/go-errors/errors"
	"github.com/sirupsen/logrus"
)

// minOpenBytes is the least number of covered match bytes the token queue may hold undecided.
const minOpenBytes = 1 << 16

type writer interface {
	io.Writer
	Flush() error
}

// Writer compresses everything written to it. Tokens are only chosen once the lookahead window
// is full (or on Close), so the output does not depend on how the input is split across Write
// calls.
type Writer struct {
	w      writer
	params Params
	state  encodeState
	err    error

	history   *window
	lookahead *window
	queue     tokenQueue
	out       []byte

	log   logrus.FieldLogger
	trace bool
}

// NewWriter returns a Writer that compresses into w. If w does not buffer, it is wrapped in a
// bufio.Writer that is flushed on Close. The underlying writer is never closed.
func NewWriter(w io.Writer, options ...func(*config)) *Writer {
	c := newConfig(options)
	bw, ok := w.(writer)
	if !ok {
		bw = bufio.NewWriter(w)
	}
	params := SelectPreset(c.level, c.sizeHint)
	return &Writer{
		w:         bw,
		params:    params,
		state:     encodeStateHeader,
		history:   newWindow(params.SearchCapacity),
		lookahead: newWindow(params.LookaheadCapacity),
		queue: tokenQueue{
			minMatch: params.MinMatchLength,
			maxBytes: max(params.SearchCapacity+params.LookaheadCapacity, minOpenBytes),
		},
		log:   c.log,
		trace: traceEnabled(c.log),
	}
}

// Params returns the window sizes this Writer compresses with.
func (w *Writer) Params() Params {
	return w.params
}

func (w *Writer) Write(p []byte) (int, error) {
	if err := w.ready(); err != nil {
		return 0, err
	}
	var done int
	for len(p) > 0 {
		n := w.lookahead.Free()
		if n > len(p) {
			n = len(p)
		}
		w.lookahead.Append(p[:n])
		done += n
		p = p[n:]
		for w.lookahead.Full() {
			if err := w.step(); err != nil {
				return done, w.fail(err)
			}
		}
	}
	return done, nil
}

// Close encodes whatever is left in the lookahead window and flushes. Calling Close again is a
// no-op.
func (w *Writer) Close() error {
	if w.state == encodeStateDone {
		return nil
	}
	if err := w.ready(); err != nil {
		return err
	}
	for w.lookahead.Len() > 0 {
		if err := w.step(); err != nil {
			return w.fail(err)
		}
	}
	if err := w.emit(len(w.queue.pending)); err != nil {
		return w.fail(err)
	}
	if err := w.w.Flush(); err != nil {
		return w.fail(errors.WrapPrefix(err, "blz77: flush", 0))
	}
	w.state = encodeStateDone
	if w.queue.splits > 0 {
		w.log.WithField("splits", w.queue.splits).Debug("matches split before literal digits")
	}
	return nil
}

// ready writes the header on first use and reports whether the Writer can still take input.
func (w *Writer) ready() error {
	switch w.state {
	case encodeStateHeader:
		if err := WriteHeader(w.w, uint32(w.params.SearchCapacity)); err != nil {
			return w.fail(err)
		}
		w.state = encodeStateFilling
	case encodeStateDone:
		return ErrClosed
	case encodeStateInvalid:
		return w.err
	}
	return nil
}

// step chooses one token for the front of the lookahead window and slides both windows by the
// number of input bytes it covers.
func (w *Writer) step() error {
	ahead := w.lookahead.Bytes()
	t := token{literal: ahead[0]}
	if m, ok := findBestMatch(w.history.Bytes(), ahead, w.params.MinMatchLength); ok {
		t = token{m: m}
		// The byte after a match is always in the lookahead. Only a digit there can force a split.
		if isDigit(ahead[m.length]) {
			t.covered = append([]byte(nil), ahead[:m.length]...)
		}
		if w.trace {
			w.log.WithFields(logrus.Fields{
				"distance": m.distance,
				"length":   m.length,
			}).Trace("match")
		}
	}
	consumed := 1
	if t.isMatch() {
		consumed = t.m.length
	}
	w.history.Append(ahead[:consumed])
	w.lookahead.Discard(consumed)
	return w.emit(w.queue.push(t))
}

// emit writes the first n queued tokens.
func (w *Writer) emit(n int) error {
	if n == 0 {
		return nil
	}
	w.out = w.out[:0]
	for _, t := range w.queue.take(n) {
		w.out = t.appendTo(w.out)
	}
	if _, err := w.w.Write(w.out); err != nil {
		return errors.WrapPrefix(err, "blz77: write", 0)
	}
	return nil
}

func (w *Writer) fail(err error) error {
	w.state = encodeStateInvalid
	w.err = err
	return err
}

func traceEnabled(log logrus.FieldLogger) bool {
	switch l := log.(type) {
	case *logrus.Logger:
		return l.IsLevelEnabled(logrus.TraceLevel)
	case *logrus.Entry:
		return l.Logger.IsLevelEnabled(logrus.TraceLevel)
	}
	return true
}
