// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package source

import (
	"bytes"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, in *Input) []byte {
	t.Helper()
	got, err := io.ReadAll(io.NewSectionReader(in, 0, math.MaxInt64))
	require.NoError(t, err)
	return got
}

func TestOpenWrapped(t *testing.T) {
	want, err := os.ReadFile("testdata/hello.txt")
	require.NoError(t, err)

	for _, tc := range []struct {
		file, name, wrapper string
	}{
		{"testdata/hello.txt", "testdata/hello.txt", ""},
		{"testdata/hello.txt.xz", "testdata/hello.txt", "xz"},
		{"testdata/hello.txt.bz2", "testdata/hello.txt", "bzip2"},
		{"testdata/hello.tgz", "testdata/hello.tar", "gzip"},
	} {
		t.Run(tc.file, func(t *testing.T) {
			in, err := Open(tc.file, true)
			require.NoError(t, err)
			defer in.Close()
			require.Equal(t, tc.name, in.Name)
			require.Equal(t, tc.wrapper, in.Wrapper)
			require.Equal(t, want, readAll(t, in))
			require.Equal(t, want, readAll(t, in), "second scan")
		})
	}
}

func TestOpenZstd(t *testing.T) {
	want := bytes.Repeat([]byte("zstandard "), 1000)
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = zw.Write(want)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	name := filepath.Join(t.TempDir(), "data.zst")
	require.NoError(t, os.WriteFile(name, buf.Bytes(), 0o644))

	in, err := Open(name, true)
	require.NoError(t, err)
	defer in.Close()
	require.Equal(t, "zstd", in.Wrapper)
	require.Equal(t, name[:len(name)-4], in.Name)
	require.Equal(t, want, readAll(t, in))
}

func TestOpenWithoutUnwrap(t *testing.T) {
	raw, err := os.ReadFile("testdata/hello.txt.xz")
	require.NoError(t, err)
	in, err := Open("testdata/hello.txt.xz", false)
	require.NoError(t, err)
	defer in.Close()
	require.Empty(t, in.Wrapper)
	require.Equal(t, "testdata/hello.txt.xz", in.Name)
	require.Equal(t, raw, readAll(t, in))
}

func TestOpenEmptyAndMissing(t *testing.T) {
	name := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(name, nil, 0o644))
	in, err := Open(name, true)
	require.NoError(t, err)
	require.Empty(t, readAll(t, in))
	require.NoError(t, in.Close())

	_, err = Open(filepath.Join(t.TempDir(), "missing"), true)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestChangeSuffix(t *testing.T) {
	rules := ".gz .tgz=.tar"
	require.Equal(t, "a.txt", changeSuffix("a.txt.gz", rules))
	require.Equal(t, "a.tar", changeSuffix("a.tgz", rules))
	require.Equal(t, ".gz", changeSuffix(".gz", rules))
	require.Equal(t, "a.txt", changeSuffix("a.txt", rules))
}
