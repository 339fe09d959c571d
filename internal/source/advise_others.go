//go:build !linux

// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package source

import "os"

func adviseSequential(f *os.File) {}
