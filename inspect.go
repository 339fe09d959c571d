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

	"github.com/elliotnunn/huffpack/internal/huffman"
)

// inspectCmd prints the header of each file without decoding the payload.
func inspectCmd(args []string, stdout, stderr io.Writer) error {
	fset := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fset.SetOutput(stderr)
	if err := fset.Parse(args); err != nil {
		return errUsage
	}
	names, err := expand(fset.Args())
	if err != nil {
		fmt.Fprintln(stderr, "huffpack:", err)
		return err
	}
	if len(names) == 0 {
		fmt.Fprintln(stderr, "huffpack: inspect needs at least one input")
		return errUsage
	}

	var errs []error
	for _, name := range names {
		if err := inspect(stdout, name); err != nil {
			slog.Error("inspectError", "path", name, "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func inspect(w io.Writer, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	h, err := huffman.Inspect(bufio.NewReader(f))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: %d symbols, %d distinct, header %d bytes\n",
		name, h.Count, h.Tree.Leaves(), h.Size)
	fmt.Fprintln(w, h.Codes())
	return nil
}
