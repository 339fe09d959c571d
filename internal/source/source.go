// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package source opens the files to be compressed, optionally looking
// through a gzip, bzip2, xz or zstd wrapper.
package source

import (
	"compress/bzip2"
	"compress/gzip"
	"io"
	"io/fs"
	"math"
	"os"
	"strings"

	"github.com/elliotnunn/huffpack/internal/reader2readerat"
	"github.com/klauspost/compress/zstd"
	"github.com/therootcompany/xz"
)

// An Input can be read at any offset, any number of times.
type Input struct {
	io.ReaderAt
	Name    string // with the wrapper suffix removed
	Wrapper string // empty for a plain file
	Mode    fs.FileMode
	close   func() error
}

func (in *Input) Close() error { return in.close() }

type wrapper struct {
	name     string
	magic    string
	suffixes string
	open     func(io.Reader) (io.Reader, error)
}

var wrappers = []wrapper{
	{"gzip", "\x1f\x8b", ".gz .gzip .tgz=.tar", func(r io.Reader) (io.Reader, error) {
		return gzip.NewReader(r)
	}},
	{"bzip2", "BZh", ".bz .bz2 .bzip2 .tbz=.tar .tb2=.tar", func(r io.Reader) (io.Reader, error) {
		return bzip2.NewReader(r), nil
	}},
	{"xz", "\xfd7zXZ\x00", ".xz .txz=.tar", func(r io.Reader) (io.Reader, error) {
		return xz.NewReader(r, xz.DefaultDictMax)
	}},
	{"zstd", "\x28\xb5\x2f\xfd", ".zst .zstd .tzst=.tar", func(r io.Reader) (io.Reader, error) {
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return d.IOReadCloser(), nil
	}},
}

// Open opens name for reading. With unwrap, a recognised compression
// wrapper is decoded on the fly and its suffix dropped from Name.
func Open(name string, unwrap bool) (*Input, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	adviseSequential(f)

	plain := &Input{ReaderAt: f, Name: name, Mode: stat.Mode(), close: f.Close}
	if !unwrap {
		return plain, nil
	}

	header := make([]byte, 8)
	n, err := f.ReadAt(header, 0)
	if err != nil && err != io.EOF {
		f.Close()
		return nil, err
	}
	header = header[:n]

	for _, w := range wrappers {
		if !strings.HasPrefix(string(header), w.magic) {
			continue
		}
		ra := reader2readerat.NewFromReader(func() (io.Reader, error) {
			return w.open(io.NewSectionReader(f, 0, math.MaxInt64))
		})
		return &Input{
			ReaderAt: ra,
			Name:     changeSuffix(name, w.suffixes),
			Wrapper:  w.name,
			Mode:     stat.Mode(),
			close: func() error {
				ra.Close()
				return f.Close()
			},
		}, nil
	}
	return plain, nil
}

// changeSuffix applies the first matching rule of the form ".from" (strip)
// or ".from=.to" (replace).
func changeSuffix(s string, suffixes string) string {
	for _, rule := range strings.Split(suffixes, " ") {
		from, to, _ := strings.Cut(rule, "=")
		if strings.HasSuffix(s, from) && len(s) > len(from) {
			return s[:len(s)-len(from)] + to
		}
	}
	return s
}
