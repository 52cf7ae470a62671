package goblz77

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matchToken(distance int, covered string) token {
	return token{m: match{distance: distance, length: len(covered)}, covered: []byte(covered)}
}

func render(tokens []token) string {
	var out []byte
	for _, t := range tokens {
		out = t.appendTo(out)
	}
	return string(out)
}

func TestAppendTokens(t *testing.T) {
	assert.Equal(t, "%42,7", string(appendMatch(nil, match{distance: 42, length: 7})))
	assert.Equal(t, "%%", string(appendLiteral(nil, '%')))
	assert.Equal(t, "x", string(appendLiteral(nil, 'x')))
}

func TestTokenQueue(t *testing.T) {
	t.Run("literals are final at once", func(t *testing.T) {
		q := tokenQueue{minMatch: 4}
		assert.Equal(t, 1, q.push(token{literal: 'a'}))
		assert.Equal(t, 2, q.push(token{literal: '5'}))
	})

	t.Run("match waits for its successor", func(t *testing.T) {
		q := tokenQueue{minMatch: 4}
		assert.Equal(t, 0, q.push(matchToken(9, "abcde")))
		assert.Equal(t, 2, q.push(token{literal: 'z'}))
		assert.Equal(t, "%9,5z", render(q.take(2)))
	})

	t.Run("digit after match shortens it", func(t *testing.T) {
		q := tokenQueue{minMatch: 4}
		q.push(matchToken(9, "abcde12"))
		n := q.push(token{literal: '3'})
		assert.Equal(t, "%9,4e123", render(q.take(n)))
		assert.Equal(t, 1, q.splits)
	})

	t.Run("digit after short match turns it into literals", func(t *testing.T) {
		q := tokenQueue{minMatch: 4}
		q.push(matchToken(9, "ab12"))
		n := q.push(token{literal: '3'})
		assert.Equal(t, "ab123", render(q.take(n)))
	})

	t.Run("split cascades into the previous match", func(t *testing.T) {
		q := tokenQueue{minMatch: 4}
		assert.Equal(t, 0, q.push(matchToken(20, "wxyza9")))
		// starts with a digit, so the match before it stays open
		assert.Equal(t, 0, q.push(matchToken(5, "1234")))
		n := q.push(token{literal: '7'})
		assert.Equal(t, "%20,4a912347", render(q.take(n)))
		assert.Empty(t, q.pending)
	})

	t.Run("match after non-digit start settles predecessor", func(t *testing.T) {
		q := tokenQueue{minMatch: 4}
		q.push(matchToken(20, "wxyz"))
		assert.Equal(t, 1, q.push(matchToken(5, "abcd")))
	})

	t.Run("match followed by a non-digit is final", func(t *testing.T) {
		q := tokenQueue{minMatch: 4}
		assert.Equal(t, 1, q.push(token{m: match{distance: 3, length: 4}}))
	})

	t.Run("open tokens are bounded", func(t *testing.T) {
		q := tokenQueue{minMatch: 4}
		for i := 0; i < 10*maxOpenTokens; i++ {
			n := q.push(matchToken(7, "7777777"))
			require.LessOrEqual(t, len(q.pending)-n, maxOpenTokens)
			q.take(n)
		}
		n := q.push(token{literal: '7'})
		assert.Equal(t, len(q.pending), n)
		assert.LessOrEqual(t, n, 7*maxOpenTokens+1)
	})

	t.Run("open bytes are bounded", func(t *testing.T) {
		q := tokenQueue{minMatch: 4, maxBytes: 20}
		q.push(matchToken(7, "1234567"))
		q.push(matchToken(7, "1234567"))
		n := q.push(matchToken(7, "1234567"))
		// the oldest match had to give way
		assert.Equal(t, "1234567", render(q.take(n)))
		assert.Len(t, q.pending, 2)
	})
}
