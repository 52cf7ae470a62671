package goblz77

import "strconv"

// escape introduces a match token. A literal escape byte is written twice.
const escape byte = '%'

// separator sits between the distance and length of a match token.
const separator byte = ','

// token is one unit of output: a literal byte when m.length is 0, otherwise a match. covered
// holds the input bytes of a match that may still be split, and is nil otherwise.
type token struct {
	literal byte
	m       match
	covered []byte
}

func (t token) isMatch() bool {
	return t.m.length > 0
}

func (t token) splittable() bool {
	return t.covered != nil
}

// first is the first input byte a literal or splittable match stands for.
func (t token) first() byte {
	if t.isMatch() {
		return t.covered[0]
	}
	return t.literal
}

func (t token) appendTo(dst []byte) []byte {
	if t.isMatch() {
		return appendMatch(dst, t.m)
	}
	return appendLiteral(dst, t.literal)
}

func appendLiteral(dst []byte, b byte) []byte {
	if b == escape {
		return append(dst, escape, escape)
	}
	return append(dst, b)
}

// appendMatch appends "%<distance>,<length>" in decimal.
func appendMatch(dst []byte, m match) []byte {
	dst = append(dst, escape)
	dst = strconv.AppendUint(dst, uint64(m.distance), 10)
	dst = append(dst, separator)
	return strconv.AppendUint(dst, uint64(m.length), 10)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// maxOpenTokens bounds how many tokens a tokenQueue keeps undecided.
const maxOpenTokens = 64

// tokenQueue holds tokens until they can no longer change. The length of a match token has no
// terminator, so a raw literal digit right after it would be read as more length digits. When a
// literal digit follows a match, the match gives up its tail so that it ends before a non-digit
// byte; if it cannot do that and stay at least minMatch long it becomes plain literals, and the
// token before it gets the same treatment when those literals start with a digit.
//
// Only a match whose next input byte is a digit can be split, so only those carry their covered
// bytes. At most maxOpenTokens tokens and maxBytes covered bytes stay undecided; past that the
// oldest open match is settled as if a literal digit followed it.
//
// Splitting never changes where a match starts, so its distance stays valid, and the history
// window only depends on how many input bytes were consumed, not on how they were tokenized.
type tokenQueue struct {
	minMatch int
	maxBytes int
	pending  []token
	// pending[:settled] can no longer change
	settled int
	splits  int
}

// push adds t and returns how many leading tokens are final.
func (q *tokenQueue) push(t token) int {
	if !t.isMatch() && isDigit(t.literal) {
		q.unglue(len(q.pending) - 1)
	}
	q.pending = append(q.pending, t)
	q.settle()
	for q.open() {
		q.unglue(q.settled)
		q.settle()
	}
	return q.settled
}

// settle moves q.settled past every token that can no longer change. A token stays open while it
// is a splittable match followed only by splittable matches that start with a digit: any of those
// may still turn into literals that begin with a digit.
func (q *tokenQueue) settle() {
	last := len(q.pending) - 1
	if !q.pending[last].splittable() {
		q.settled = len(q.pending)
		return
	}
	i := last
	for i > q.settled && q.pending[i].splittable() && isDigit(q.pending[i].first()) {
		i--
	}
	if !q.pending[i].splittable() {
		i++
	}
	q.settled = i
}

// open reports whether the undecided tail has grown past its bounds.
func (q *tokenQueue) open() bool {
	tail := q.pending[q.settled:]
	if len(tail) > maxOpenTokens {
		return true
	}
	if q.maxBytes <= 0 {
		return false
	}
	var n int
	for _, t := range tail {
		n += len(t.covered)
	}
	return n > q.maxBytes
}

// unglue makes sure the token at i is not a match, or is a match that ends so the next byte can
// follow it as a non-digit literal, given that a literal digit comes next.
func (q *tokenQueue) unglue(i int) {
	if i < q.settled || !q.pending[i].splittable() {
		return
	}
	q.splits++
	t := q.pending[i]
	for k := t.m.length - 1; k >= q.minMatch && k >= 1; k-- {
		if isDigit(t.covered[k]) {
			continue
		}
		tail := literals(t.covered[k:])
		t.m.length = k
		t.covered = nil
		q.replace(i, append([]token{t}, tail...))
		return
	}
	q.replace(i, literals(t.covered))
	if isDigit(t.covered[0]) {
		q.unglue(i - 1)
	}
}

func (q *tokenQueue) replace(i int, with []token) {
	rest := append(with, q.pending[i+1:]...)
	q.pending = append(q.pending[:i], rest...)
}

// take removes and returns the first n tokens, which must be settled.
func (q *tokenQueue) take(n int) []token {
	out := q.pending[:n:n]
	q.pending = q.pending[n:]
	q.settled = max(q.settled-n, 0)
	return out
}

func literals(p []byte) []token {
	out := make([]token, len(p))
	for i, b := range p {
		out[i] = token{literal: b}
	}
	return out
}
