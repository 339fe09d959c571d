// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/elliotnunn/huffpack/internal/cache"
	"github.com/elliotnunn/huffpack/internal/huffman"
	"github.com/elliotnunn/huffpack/internal/source"
)

type compressor struct {
	unwrap bool
	force  bool
	cache  *cache.Cache // nil when disabled
}

func compressCmd(args []string, stdout, stderr io.Writer) error {
	fset := flag.NewFlagSet("compress", flag.ContinueOnError)
	fset.SetOutput(stderr)
	out := fset.String("o", "", "output `file` (single input only)")
	var c compressor
	fset.BoolVar(&c.unwrap, "unwrap", false, "decompress gzip, bzip2, xz and zstd inputs first")
	fset.BoolVar(&c.force, "force", false, "overwrite existing outputs")
	if err := fset.Parse(args); err != nil {
		return errUsage
	}

	names, err := expand(fset.Args())
	if err != nil {
		fmt.Fprintln(stderr, "huffpack:", err)
		return err
	}
	if len(names) == 0 || (*out != "" && len(names) > 1) {
		fmt.Fprintln(stderr, "huffpack: compress needs at least one input, and exactly one with -o")
		return errUsage
	}

	if cacheDir != "" {
		db, err := cache.Open(cacheDir)
		if err != nil {
			slog.Warn("cacheOpenError", "path", cacheDir, "err", err)
		} else {
			c.cache = db
			defer db.Close()
		}
	}

	var errs []error
	for _, name := range names {
		if err := c.compress(name, *out); err != nil {
			slog.Error("compressError", "path", name, "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func (c *compressor) compress(name, out string) error {
	src, err := source.Open(name, c.unwrap)
	if err != nil {
		return err
	}
	defer src.Close()
	if out == "" {
		out = src.Name + suffix
	}
	if src.Wrapper != "" {
		slog.Debug("compressUnwrap", "path", name, "wrapper", src.Wrapper)
	}

	var key cache.Key
	useCache := c.cache != nil
	if useCache {
		key, err = cache.KeyOf(io.NewSectionReader(src, 0, math.MaxInt64))
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		useCache = key.Size > 0 && key.Size <= cacheMax
	}
	if useCache {
		blob, ok, err := c.cache.Get(key)
		if err != nil {
			slog.Warn("cacheGetError", "key", key.String(), "err", err)
		} else if ok {
			err := writeFile(out, src.Mode, c.force, func(w io.Writer) error {
				_, err := w.Write(blob)
				return err
			})
			if err != nil {
				return err
			}
			slog.Info("compressDone", "path", out, "in", key.Size, "out", len(blob), "cached", true)
			return nil
		}
	}

	var (
		st   huffman.Stats
		blob bytes.Buffer
	)
	err = writeFile(out, src.Mode, c.force, func(w io.Writer) error {
		if useCache {
			w = io.MultiWriter(w, &blob)
		}
		st, err = huffman.Encode(w, src)
		return err
	})
	if err != nil {
		return err
	}
	if useCache {
		if err := c.cache.Put(key, blob.Bytes()); err != nil {
			slog.Warn("cachePutError", "key", key.String(), "err", err)
		}
	}
	slog.Info("compressDone", "path", out, "in", st.InputBytes, "out", st.OutputBytes,
		"ratio", fmt.Sprintf("%.3f", st.Ratio()))
	slog.Debug("compressStats", "path", out, "symbols", st.Symbols, "treeBits", st.TreeBits, "payloadBits", st.PayloadBits)
	return nil
}
