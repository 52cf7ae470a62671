package goblz77

// match is a back-reference: copy length bytes starting distance bytes before the end of history.
type match struct {
	distance int
	length   int
}

// findBestMatch returns the longest prefix of lookahead, shorter than len(lookahead) and at least
// minMatch long, that occurs entirely inside history. Among equally long candidates the oldest
// one (largest distance) wins. ok is false when no candidate reaches minMatch.
//
// This is the same answer as trying every length from len(lookahead)-1 down and, for each
// length, every start position from oldest to newest: a start position matches a length n
// exactly when its common prefix with lookahead is at least n, so a single oldest-first pass
// that keeps the first strictly longer prefix finds it.
func findBestMatch(history, lookahead []byte, minMatch int) (m match, ok bool) {
	limit := len(lookahead) - 1
	if minMatch < 1 {
		minMatch = 1
	}
	if limit < minMatch || len(history) < minMatch {
		return match{}, false
	}
	best, bestPos := 0, -1
	first := lookahead[0]
	for pos := 0; pos+minMatch <= len(history); pos++ {
		room := len(history) - pos
		if room <= best {
			break
		}
		if history[pos] != first {
			continue
		}
		max := limit
		if room < max {
			max = room
		}
		n := 1
		for n < max && history[pos+n] == lookahead[n] {
			n++
		}
		if n > best {
			best, bestPos = n, pos
			if best == limit {
				break
			}
		}
	}
	if best < minMatch {
		return match{}, false
	}
	return match{distance: len(history) - bestPos, length: best}, true
}
