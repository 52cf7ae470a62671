package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/currantlabs/goblz77"
	"github.com/dustin/go-humanize"
	"github.com/go-errors/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

const version = "0.2.0"

var (
	toStdout   = kingpin.Flag("stdout", "Write on standard output, keep original files unchanged.").Short('c').Bool()
	decompress = kingpin.Flag("decompress", "Decompress.").Short('d').Bool()
	keep       = kingpin.Flag("keep", "Keep (don't delete) input files.").Short('k').Bool()
	list       = kingpin.Flag("list", "List compressed file contents.").Short('l').Bool()
	suffix     = kingpin.Flag("suffix", "Use suffix SUF on compressed files.").Short('S').Default(".blz").PlaceHolder("SUF").String()
	verbose    = kingpin.Flag("verbose", "Print sizes and compression ratio; repeat to trace every match.").Short('v').Counter()
	level      = kingpin.Flag("level", "Compression level preset (0..9), also accepted as -0 .. -9.").Default("6").Int()
	maxWindow  = kingpin.Flag("max-window", "Refuse to decompress streams whose history window exceeds SIZE.").Default("1GiB").PlaceHolder("SIZE").String()

	files = kingpin.Arg("FILE", "Files to process. With no FILE, or when FILE is '-', read standard input.").Strings()
)

type mode int

const (
	modeCompress mode = iota
	modeDecompress
	modeList
)

func main() {
	kingpin.CommandLine.HelpFlag.Short('h')
	kingpin.Version(version)
	kingpin.CommandLine.VersionFlag.Short('V')
	kingpin.MustParse(kingpin.CommandLine.Parse(levelArgs(os.Args[1:])))

	log := logrus.New()
	log.SetOutput(os.Stderr)
	switch {
	case *verbose > 1:
		log.SetLevel(logrus.TraceLevel)
	case *verbose == 1:
		log.SetLevel(logrus.DebugLevel)
	}

	limit, err := windowLimit(*maxWindow)
	if err != nil {
		kingpin.Fatalf("bad --max-window: %v", err)
	}

	m := modeCompress
	if *list {
		m = modeList
	} else if *decompress {
		m = modeDecompress
	}

	names := *files
	if len(names) == 0 {
		names = []string{"-"}
	}
	if m == modeList {
		fmt.Printf("%12s %12s %7s %10s  %s\n", "compressed", "uncompressed", "ratio", "window", "name")
	}

	failed := false
	for _, name := range names {
		var err error
		if m == modeList {
			err = listFile(name, limit)
		} else {
			err = processFile(log, m, name, limit)
		}
		if err != nil {
			log.WithError(err).WithField("file", name).Error("blz77 failed")
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// levelArgs rewrites gzip-style level flags such as -9 or -kd3 into --level=N so kingpin can
// parse them.
func levelArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}
		if len(arg) < 2 || arg[0] != '-' || arg[1] == '-' {
			out = append(out, arg)
			continue
		}
		var flags strings.Builder
		flags.WriteByte('-')
		lvl := -1
		for j := 1; j < len(arg); j++ {
			c := arg[j]
			if c == 'S' {
				flags.WriteString(arg[j:])
				break
			}
			if c >= '0' && c <= '9' {
				lvl = int(c - '0')
				continue
			}
			flags.WriteByte(c)
		}
		if flags.Len() > 1 {
			out = append(out, flags.String())
		}
		if lvl >= 0 {
			out = append(out, fmt.Sprintf("--level=%d", lvl))
		}
	}
	return out
}

func outputName(m mode, name string) (string, error) {
	if *toStdout || name == "-" {
		return "-", nil
	}
	switch m {
	case modeCompress:
		if strings.HasSuffix(name, *suffix) {
			return "", errors.Errorf("already has %s suffix -- unchanged", *suffix)
		}
		return name + *suffix, nil
	case modeDecompress:
		if !strings.HasSuffix(name, *suffix) || len(name) == len(*suffix) {
			return "", errors.Errorf("unknown suffix -- ignored")
		}
		return strings.TrimSuffix(name, *suffix), nil
	}
	return "", errors.Errorf("no output for mode %d", m)
}

// windowLimit parses a human readable size such as "64MiB" and clamps it to the largest window
// a stream can ask for.
func windowLimit(s string) (uint32, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, err
	}
	if n > uint64(goblz77.MaxSearchCapacity) {
		n = uint64(goblz77.MaxSearchCapacity)
	}
	return uint32(n), nil
}

func processFile(log *logrus.Logger, m mode, name string, limit uint32) error {
	outName, err := outputName(m, name)
	if err != nil {
		return err
	}

	in := os.Stdin
	if name != "-" {
		in, err = os.Open(name)
		if err != nil {
			return err
		}
		defer in.Close()
	}

	out := os.Stdout
	if outName != "-" {
		out, err = os.Create(outName)
		if err != nil {
			return err
		}
	}

	err = process(log, m, in, out, name, limit)
	if outName != "-" {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(outName)
			return err
		}
	}
	if err != nil {
		return err
	}
	if !*keep && !*toStdout && name != "-" {
		return os.Remove(name)
	}
	return nil
}

func process(log *logrus.Logger, m mode, in *os.File, out io.Writer, name string, limit uint32) error {
	rs := &readSnoop{Reader: in}
	ws := &writeSnoop{Writer: out}

	var err error
	switch m {
	case modeCompress:
		err = goblz77.Compress(ws, rs, *level, goblz77.SizeHint(fileSize(in)), goblz77.Logger(log))
	case modeDecompress:
		err = goblz77.Decompress(ws, rs, goblz77.MaxWindow(limit), goblz77.Logger(log))
	}
	if err != nil {
		return err
	}

	plain, packed := rs.Count(), ws.Count()
	if m == modeDecompress {
		plain, packed = ws.Count(), rs.Count()
	}
	log.WithFields(logrus.Fields{
		"file":         name,
		"uncompressed": humanize.Bytes(uint64(plain)),
		"compressed":   humanize.Bytes(uint64(packed)),
		"saved":        fmt.Sprintf("%0.2f%%", savings(plain, packed)),
	}).Debug("done")
	return nil
}

func listFile(name string, limit uint32) error {
	in := os.Stdin
	if name != "-" {
		var err error
		in, err = os.Open(name)
		if err != nil {
			return err
		}
		defer in.Close()
	}
	rs := &readSnoop{Reader: in}
	zr := goblz77.NewReader(rs, goblz77.MaxWindow(limit))
	h, err := zr.Header()
	if err != nil {
		return err
	}
	plain, err := io.Copy(io.Discard, zr)
	if err != nil {
		return err
	}
	fmt.Printf("%12s %12s %6.1f%% %10d  %s\n",
		humanize.Bytes(uint64(rs.Count())), humanize.Bytes(uint64(plain)),
		savings(plain, rs.Count()), h.SearchCapacity, name)
	return nil
}

func fileSize(f *os.File) uint64 {
	fi, err := f.Stat()
	if err != nil || !fi.Mode().IsRegular() {
		return 0
	}
	return uint64(fi.Size())
}

func savings(plain, packed int64) float64 {
	if plain == 0 {
		return 0
	}
	return 100.0 - (100.0*float64(packed))/float64(plain)
}

type snoop struct {
	count int64
}

func (s *snoop) Count() int64 {
	return s.count
}

type readSnoop struct {
	snoop
	io.Reader
}

func (s *readSnoop) Read(p []byte) (n int, err error) {
	n, err = s.Reader.Read(p)
	s.count += int64(n)
	return
}

type writeSnoop struct {
	snoop
	io.Writer
}

func (s *writeSnoop) Write(p []byte) (n int, err error) {
	n, err = s.Writer.Write(p)
	s.count += int64(n)
	return
}
