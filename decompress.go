// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/elliotnunn/huffpack/internal/huffman"
)

func decompressCmd(args []string, stdout, stderr io.Writer) error {
	fset := flag.NewFlagSet("decompress", flag.ContinueOnError)
	fset.SetOutput(stderr)
	out := fset.String("o", "", "output `file` (single input only)")
	force := fset.Bool("force", false, "overwrite existing outputs")
	if err := fset.Parse(args); err != nil {
		return errUsage
	}

	names, err := expand(fset.Args())
	if err != nil {
		fmt.Fprintln(stderr, "huffpack:", err)
		return err
	}
	if len(names) == 0 || (*out != "" && len(names) > 1) {
		fmt.Fprintln(stderr, "huffpack: decompress needs at least one input, and exactly one with -o")
		return errUsage
	}

	var errs []error
	for _, name := range names {
		if err := decompress(name, *out, *force); err != nil {
			slog.Error("decompressError", "path", name, "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func decompress(name, out string, force bool) error {
	if out == "" {
		out = strings.TrimSuffix(name, suffix)
		if out == name || filepath.Base(name) == suffix {
			return fmt.Errorf("no %s suffix, use -o", suffix)
		}
	}

	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	stat, err := f.Stat()
	if err != nil {
		return err
	}

	var n int64
	err = writeFile(out, stat.Mode(), force, func(w io.Writer) error {
		n, err = huffman.Decode(w, bufio.NewReader(f))
		return err
	})
	if err != nil {
		return err
	}
	slog.Info("decompressDone", "path", out, "out", n)
	return nil
}
