/*
Package goblz77 implements the blz77 format: LZ77 over a fixed-size history window, with
back-references written as printable text between raw literal bytes.

A stream is a 16-byte Header followed by tokens. A token is either a literal byte, "%%" for a
literal '%', or "%<distance>,<length>" in decimal, meaning: copy length bytes starting distance
bytes before the end of the history window. There is no end marker.

The compression level (0-9) picks the history window, the lookahead window and the minimum match
length; see SelectPreset. Match search is brute force: the longest match wins, and among equally
long matches the oldest one.

	var buf bytes.Buffer
	if err := goblz77.Compress(&buf, f, 6); err != nil {
		return err
	}
	err := goblz77.Decompress(os.Stdout, &buf)
*/
package goblz77
