// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Command huffpack compresses files with a static Huffman code.
//
//	huffpack [-v] [-cache dir] compress [-o out] [-unwrap] [-force] pattern...
//	huffpack [-v] [-cache dir] decompress [-o out] [-force] file.huff...
//	huffpack inspect file.huff...
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
)

const suffix = ".huff"

var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type command struct {
	name string
	run  func(args []string, stdout, stderr io.Writer) error
}

var commands = []command{
	{"compress", compressCmd},
	{"decompress", decompressCmd},
	{"inspect", inspectCmd},
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: huffpack [-v] [-cache dir] compress|decompress|inspect [flags] file...")
}

// run returns the process exit status: 0 on success, 1 if any file failed,
// 2 for a bad command line.
func run(args []string, stdout, stderr io.Writer) int {
	fset := flag.NewFlagSet("huffpack", flag.ContinueOnError)
	fset.SetOutput(stderr)
	fset.Usage = func() { usage(stderr); fset.PrintDefaults() }
	verbose := fset.Bool("v", false, "log debug messages")
	fset.StringVar(&cacheDir, "cache", cacheDir, "directory of the compressed-output cache (default $HUFFPACK_CACHE)")
	if err := fset.Parse(args); err != nil {
		return 2
	}
	if *verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	if fset.NArg() == 0 {
		usage(stderr)
		return 2
	}
	for _, c := range commands {
		if c.name != fset.Arg(0) {
			continue
		}
		err := c.run(fset.Args()[1:], stdout, stderr)
		switch {
		case err == nil:
			return 0
		case errors.Is(err, errUsage):
			return 2
		default:
			return 1
		}
	}
	fmt.Fprintf(stderr, "huffpack: unknown command %q\n", fset.Arg(0))
	usage(stderr)
	return 2
}
