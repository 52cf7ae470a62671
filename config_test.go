package goblz77

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectPreset(t *testing.T) {
	for _, tc := range []struct {
		level    int
		hint     uint64
		search   int
		ahead    int
		minMatch int
	}{
		{0, 0, 16, 8, 4},
		{1, 0, 32, 16, 4},
		{2, 0, 64, 32, 5},
		{3, 0, 256, 128, 5},
		{4, 0, 1 << 10, 1 << 9, 5},
		{5, 0, 1 << 12, 1 << 10, 5},
		{6, 0, 1 << 14, 1 << 12, 5},
		{7, 0, 1 << 16, 1 << 15, 5},
		{8, 0, 1 << 18, 1 << 17, 6},
		{9, 0, 1 << 20, 1 << 19, 6},
		// fixed levels ignore the hint
		{3, 1 << 20, 256, 128, 5},
		// derived levels divide the hint
		{6, 100000, 10000, 1 << 12, 5},
		{7, 1 << 20, 1 << 17, 1 << 15, 5},
		{8, 1000, 250, 1 << 17, 6},
		{9, 3, 1, 1 << 19, 6},
		// a derived size of zero falls back to the fixed window
		{6, 9, 1 << 14, 1 << 12, 5},
		{9, 1, 1 << 20, 1 << 19, 6},
		// derived sizes are capped
		{9, 1 << 40, int(MaxSearchCapacity), 1 << 19, 6},
		// out of range levels are clamped
		{-3, 0, 16, 8, 4},
		{42, 0, 1 << 20, 1 << 19, 6},
	} {
		got := SelectPreset(tc.level, tc.hint)
		assert.Equal(t, Params{tc.search, tc.ahead, tc.minMatch}, got, "level %d hint %d", tc.level, tc.hint)
	}
}

func TestOptions(t *testing.T) {
	c := newConfig(nil)
	assert.Equal(t, DefaultLevel, c.level)
	assert.Equal(t, MaxSearchCapacity, c.maxWindow)
	assert.NotNil(t, c.log)

	c = newConfig([]func(*config){Level(12), SizeHint(99), MaxWindow(1 << 31)})
	assert.Equal(t, MaxLevel, c.level)
	assert.Equal(t, uint64(99), c.sizeHint)
	assert.Equal(t, MaxSearchCapacity, c.maxWindow)

	// later options win
	c = newConfig([]func(*config){Level(1), Level(4)})
	assert.Equal(t, 4, c.level)
}
