package goblz77

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// slowMatch is the search as stated: lengths longest first, and for each length the start
// positions oldest first.
func slowMatch(history, lookahead []byte, minMatch int) (match, bool) {
	for n := len(lookahead) - 1; n >= minMatch && n > 0; n-- {
		for pos := 0; pos+n <= len(history); pos++ {
			if bytes.Equal(history[pos:pos+n], lookahead[:n]) {
				return match{distance: len(history) - pos, length: n}, true
			}
		}
	}
	return match{}, false
}

func TestFindBestMatch(t *testing.T) {
	t.Run("longest wins", func(t *testing.T) {
		m, ok := findBestMatch([]byte("abcdxxabcdefxx"), []byte("abcdefgh"), 4)
		assert.True(t, ok)
		assert.Equal(t, match{distance: 8, length: 6}, m)
	})

	t.Run("oldest wins ties", func(t *testing.T) {
		m, ok := findBestMatch([]byte("abcd1abcd2"), []byte("abcd3xyz"), 4)
		assert.True(t, ok)
		assert.Equal(t, match{distance: 10, length: 4}, m)
	})

	t.Run("never uses the last lookahead byte", func(t *testing.T) {
		m, ok := findBestMatch([]byte("abcdefgh"), []byte("abcde"), 4)
		assert.True(t, ok)
		assert.Equal(t, 4, m.length)
	})

	t.Run("match must fit in history", func(t *testing.T) {
		_, ok := findBestMatch([]byte("xxab"), []byte("abababab"), 4)
		assert.False(t, ok)
	})

	t.Run("below minimum", func(t *testing.T) {
		_, ok := findBestMatch([]byte("abcxyz"), []byte("abcdefg"), 4)
		assert.False(t, ok)
	})

	t.Run("empty", func(t *testing.T) {
		_, ok := findBestMatch(nil, []byte("abcdefg"), 4)
		assert.False(t, ok)
		_, ok = findBestMatch([]byte("abcdefg"), []byte("a"), 4)
		assert.False(t, ok)
	})
}

func TestFindBestMatchAgreesWithExhaustiveSearch(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		history := make([]byte, rng.Intn(40))
		lookahead := make([]byte, 1+rng.Intn(12))
		for j := range history {
			history[j] = "ab"[rng.Intn(2)]
		}
		for j := range lookahead {
			lookahead[j] = "ab"[rng.Intn(2)]
		}
		minMatch := 1 + rng.Intn(5)
		want, wantOK := slowMatch(history, lookahead, minMatch)
		got, gotOK := findBestMatch(history, lookahead, minMatch)
		if wantOK != gotOK || want != got {
			t.Fatalf("history %q lookahead %q min %d: got %v/%v want %v/%v",
				history, lookahead, minMatch, got, gotOK, want, wantOK)
		}
	}
}
