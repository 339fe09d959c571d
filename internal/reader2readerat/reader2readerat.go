// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package reader2readerat gives random access to a stream that can only be
// read forward, by reopening it whenever a read goes backward.
// Recently read blocks are kept in a cache shared by all instances.
package reader2readerat

import (
	"errors"
	"hash/maphash"
	"io"
	"sync"
	"sync/atomic"

	"github.com/dgryski/go-tinylfu"
)

type ReaderAt struct {
	open  func() (io.Reader, error)
	uniq  uint64
	l     sync.Mutex
	r     io.Reader
	seek  int64
	end   int64 // -1 until the stream has been read to EOF
	opens int
}

// If the io.Reader is an io.ReadCloser then it will be closed when I am
// closed or reopened.
func NewFromReader(f func() (io.Reader, error)) *ReaderAt {
	return &ReaderAt{
		open: f,
		uniq: monotonic.Add(1),
		end:  -1,
	}
}

var errOffset = errors.New("ReadAt: negative offset")

func (r *ReaderAt) ReadAt(p []byte, off int64) (n int, err error) {
	if off < 0 {
		return 0, errOffset
	}
	for n < len(p) {
		pos := off + int64(n)
		base := pos / blocksize * blocksize
		block, err := r.block(base)
		if err != nil {
			return n, err
		}
		skip := int(pos - base)
		if skip >= len(block) {
			return n, io.EOF
		}
		n += copy(p[n:], block[skip:])
	}
	return n, nil
}

func (r *ReaderAt) block(base int64) ([]byte, error) {
	key := blockKey{r.uniq, base}
	if b, ok := cacheGet(key); ok {
		return b, nil
	}

	r.l.Lock()
	defer r.l.Unlock()
	if r.r == nil || r.seek > base {
		r.close()
		from, err := r.open()
		if err != nil {
			return nil, err
		}
		r.r, r.seek = from, 0
		r.opens++
	}

	for {
		if r.end >= 0 && base >= r.end {
			return nil, nil
		}
		at := r.seek
		block := make([]byte, blocksize)
		bn, err := io.ReadFull(r.r, block)
		block = block[:bn]
		r.seek += int64(bn)
		switch err {
		case nil:
		case io.EOF, io.ErrUnexpectedEOF:
			r.end = r.seek
		default:
			return nil, err
		}
		cacheAdd(blockKey{r.uniq, at}, block)
		if at == base {
			return block, nil
		}
	}
}

func (r *ReaderAt) close() {
	if closer, ok := r.r.(io.Closer); ok {
		closer.Close()
	}
	r.r = nil
}

func (r *ReaderAt) Close() error {
	r.l.Lock()
	defer r.l.Unlock()
	r.close()
	return nil
}

const (
	blocksize = 4096
	maxblocks = 4096 // 16 MiB
)

type blockKey struct {
	uniq uint64
	base int64
}

var (
	monotonic atomic.Uint64
	seed      = maphash.MakeSeed()
	cacheMu   sync.Mutex
	cache     = tinylfu.New[blockKey, []byte](maxblocks, maxblocks*10,
		func(k blockKey) uint64 { return maphash.Comparable(seed, k) })
)

func cacheGet(k blockKey) ([]byte, bool) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	return cache.Get(k)
}

func cacheAdd(k blockKey, b []byte) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cache.Add(k, b)
}
