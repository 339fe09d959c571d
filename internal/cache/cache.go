// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package cache remembers compressed outputs by the digest of their input.
package cache

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/maphash"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/pebble/v2"
	"github.com/dgryski/go-tinylfu"
)

// A Key identifies an input by content.
type Key struct {
	Sum  uint64 // xxhash64
	Size int64
}

// KeyOf reads r to the end.
func KeyOf(r io.Reader) (Key, error) {
	h := xxhash.New()
	n, err := io.Copy(h, r)
	if err != nil {
		return Key{}, err
	}
	return Key{Sum: h.Sum64(), Size: n}, nil
}

func (k Key) String() string { return fmt.Sprintf("%016x-%d", k.Sum, k.Size) }

const prefix = "huff/"

func (k Key) bytes() []byte {
	b := make([]byte, 0, len(prefix)+16)
	b = append(b, prefix...)
	b = binary.BigEndian.AppendUint64(b, k.Sum)
	b = binary.BigEndian.AppendUint64(b, uint64(k.Size))
	return b
}

// A Cache is safe for concurrent use by multiple goroutines.
type Cache struct {
	db  *pebble.DB
	mu  sync.Mutex
	hot *tinylfu.T[Key, []byte]
}

const hotEntries = 64

var seed = maphash.MakeSeed()

func Open(dir string) (*Cache, error) {
	db, err := pebble.Open(dir, &pebble.Options{Logger: slogger{}})
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", dir, err)
	}
	return &Cache{
		db: db,
		hot: tinylfu.New[Key, []byte](hotEntries, hotEntries*10,
			func(k Key) uint64 { return maphash.Comparable(seed, k) }),
	}, nil
}

// Get returns a copy of the stored blob.
func (c *Cache) Get(k Key) ([]byte, bool, error) {
	c.mu.Lock()
	blob, ok := c.hot.Get(k)
	c.mu.Unlock()
	if ok {
		return blob, true, nil
	}

	val, closer, err := c.db.Get(k.bytes())
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, err
	}
	blob = append([]byte(nil), val...)
	closer.Close()

	c.mu.Lock()
	c.hot.Add(k, blob)
	c.mu.Unlock()
	return blob, true, nil
}

// Put stores blob, which must not be modified afterwards.
func (c *Cache) Put(k Key, blob []byte) error {
	if err := c.db.Set(k.bytes(), blob, pebble.Sync); err != nil {
		return err
	}
	c.mu.Lock()
	c.hot.Add(k, blob)
	c.mu.Unlock()
	return nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// slogger sends pebble's own chatter to slog.
type slogger struct{}

func (slogger) Infof(format string, args ...any) {
	slog.Debug("pebble", "msg", fmt.Sprintf(format, args...))
}

func (slogger) Errorf(format string, args ...any) {
	slog.Error("pebble", "msg", fmt.Sprintf(format, args...))
}

func (slogger) Fatalf(format string, args ...any) {
	slog.Error("pebbleFatal", "msg", fmt.Sprintf(format, args...))
	os.Exit(1)
}
