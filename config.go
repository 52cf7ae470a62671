package goblz77

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Valid values for Config settings
const (
	// The fastest preset: small windows, short matches allowed
	MinLevel = 0
	// The densest preset: large windows, brute-force search over up to 1 MiB of history
	MaxLevel = 9
	// The level used when no Level option is given
	DefaultLevel = 6
	// The largest history window a compressor will choose or a decompressor will allocate by default
	MaxSearchCapacity uint32 = 1 << 30
)

// preset holds the window parameters for one compression level. When divisor is set, the history
// capacity is derived from the input size instead of searchBits.
type preset struct {
	divisor       uint64
	searchBits    uint8
	lookaheadBits uint8
	minMatch      int
}

var presets = [MaxLevel + 1]preset{
	{0, 4, 3, 4},    //   16,    8
	{0, 5, 4, 4},    //   32,   16
	{0, 6, 5, 5},    //   64,   32
	{0, 8, 7, 5},    //  256,  128
	{0, 10, 9, 5},   //   1K,  512
	{0, 12, 10, 5},  //   4K,   1K
	{10, 14, 12, 5}, //  16K,   4K
	{8, 16, 15, 5},  //  64K,  32K
	{4, 18, 17, 6},  // 256K, 128K
	{2, 20, 19, 6},  //   1M, 512K
}

// Params are the window sizes used by one compression pass.
type Params struct {
	SearchCapacity    int
	LookaheadCapacity int
	MinMatchLength    int
}

// SelectPreset maps a compression level to its window parameters. level is clamped to
// [MinLevel, MaxLevel]. sizeHint is the input size in bytes, or 0 when unknown; it only matters
// for the levels whose history window scales with the input.
func SelectPreset(level int, sizeHint uint64) Params {
	p := presets[clampLevel(level)]
	params := Params{
		SearchCapacity:    1 << p.searchBits,
		LookaheadCapacity: 1 << p.lookaheadBits,
		MinMatchLength:    p.minMatch,
	}
	if p.divisor != 0 && sizeHint != 0 {
		derived := sizeHint / p.divisor
		if derived > uint64(MaxSearchCapacity) {
			derived = uint64(MaxSearchCapacity)
		}
		if derived > 0 {
			params.SearchCapacity = int(derived)
		}
	}
	return params
}

func clampLevel(level int) int {
	if level < MinLevel {
		return MinLevel
	} else if level > MaxLevel {
		return MaxLevel
	}
	return level
}

type config struct {
	level     int
	sizeHint  uint64
	maxWindow uint32
	log       logrus.FieldLogger
}

func newConfig(options []func(*config)) *config {
	c := &config{
		level:     DefaultLevel,
		maxWindow: MaxSearchCapacity,
	}
	for _, o := range options {
		o(c)
	}
	if c.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.log = l
	}
	return c
}

// Level selects the compression preset. Values outside [MinLevel, MaxLevel] are clamped.
// Lower levels search a small history and are fast; higher levels search up to 1 MiB of
// history by brute force and get slow on large inputs.
// Recommended default: 6
func Level(level int) func(*config) {
	level = clampLevel(level)
	return func(c *config) {
		c.level = level
	}
}

// SizeHint gives the compressor the total input size, used by levels 6-9 to size the history
// window as a fraction of the input. 0 means unknown.
func SizeHint(size uint64) func(*config) {
	return func(c *config) {
		c.sizeHint = size
	}
}

// MaxWindow bounds the history window a decompressor will allocate for a stream. Streams whose
// header asks for more fail with ErrWindowTooLarge. Values above MaxSearchCapacity are clamped.
//
// The window is allocated as soon as the header is read, so with the default limit a 16 byte
// header can cost about 1 GiB of memory before any token is decoded. Callers decoding untrusted
// input should set a tighter limit; 1 MiB covers every level when no size hint is used.
func MaxWindow(size uint32) func(*config) {
	if size > MaxSearchCapacity {
		size = MaxSearchCapacity
	}
	return func(c *config) {
		c.maxWindow = size
	}
}

// Logger sets where per-token trace output goes.
func Logger(log logrus.FieldLogger) func(*config) {
	return func(c *config) {
		c.log = log
	}
}
