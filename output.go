// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package main

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// expand turns command-line patterns into file names, in order, without
// duplicates. A pattern matching nothing is an error.
func expand(patterns []string) ([]string, error) {
	var ret []string
	seen := make(map[string]bool)
	for _, p := range patterns {
		matches, err := doublestar.FilepathGlob(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%s: no such file", p)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				ret = append(ret, m)
			}
		}
	}
	return ret, nil
}

// writeFile creates name with permissions perm from the output of fill.
// The file appears only once fill has succeeded, and an existing file
// survives unless force.
func writeFile(name string, perm fs.FileMode, force bool, fill func(io.Writer) error) (err error) {
	if !force {
		if _, err := os.Lstat(name); err == nil {
			return &fs.PathError{Op: "create", Path: name, Err: fs.ErrExist}
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriterSize(tmp, 64*1024)
	if err := fill(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Chmod(perm.Perm()); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return os.Rename(tmp.Name(), name)
}
