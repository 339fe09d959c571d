// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package main

import (
	"math"
	"os"
	"strconv"
)

var (
	cacheDir = os.Getenv("HUFFPACK_CACHE")
	cacheMax = calcCacheMax()
)

// calcCacheMax is the largest input, in bytes, whose output gets cached
func calcCacheMax() int64 {
	if e := os.Getenv("HUFFPACK_CACHEMAX"); e != "" {
		f, err := strconv.ParseFloat(e, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
			panic("malformed HUFFPACK_CACHEMAX environment variable, should be a number of megabytes: " + e)
		}
		return int64(f * 1024 * 1024)
	}
	return 64 * 1024 * 1024 // fall back on 64MiB
}
