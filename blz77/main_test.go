package main

import (
	"testing"

	"github.com/currantlabs/goblz77"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelArgs(t *testing.T) {
	for _, tc := range []struct {
		in, want []string
	}{
		{[]string{"-9", "f"}, []string{"--level=9", "f"}},
		{[]string{"-kd3"}, []string{"-kd", "--level=3"}},
		{[]string{"-c", "--verbose", "x"}, []string{"-c", "--verbose", "x"}},
		{[]string{"-S.z9", "-1"}, []string{"-S.z9", "--level=1"}},
		{[]string{"--", "-5"}, []string{"--", "-5"}},
		{[]string{"-", "-0"}, []string{"-", "--level=0"}},
	} {
		assert.Equal(t, tc.want, levelArgs(tc.in), "%v", tc.in)
	}
}

func TestOutputName(t *testing.T) {
	*suffix = ".blz"
	*toStdout = false

	out, err := outputName(modeCompress, "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "notes.txt.blz", out)

	_, err = outputName(modeCompress, "notes.txt.blz")
	assert.Error(t, err)

	out, err = outputName(modeDecompress, "notes.txt.blz")
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", out)

	_, err = outputName(modeDecompress, "notes.txt")
	assert.Error(t, err)
	_, err = outputName(modeDecompress, ".blz")
	assert.Error(t, err)

	out, err = outputName(modeCompress, "-")
	require.NoError(t, err)
	assert.Equal(t, "-", out)
}

func TestSavings(t *testing.T) {
	assert.Equal(t, 0.0, savings(0, 10))
	assert.InDelta(t, 75.0, savings(100, 25), 1e-9)
	assert.InDelta(t, -10.0, savings(100, 110), 1e-9)
}

func TestWindowLimit(t *testing.T) {
	n, err := windowLimit("64KiB")
	require.NoError(t, err)
	assert.Equal(t, uint32(1<<16), n)

	n, err = windowLimit("1MB")
	require.NoError(t, err)
	assert.Equal(t, uint32(1000000), n)

	n, err = windowLimit("8GiB")
	require.NoError(t, err)
	assert.Equal(t, goblz77.MaxSearchCapacity, n)

	_, err = windowLimit("lots")
	assert.Error(t, err)
}
