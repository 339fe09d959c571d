// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package huffman

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/elliotnunn/huffpack/internal/bitstream"
)

// Stats describes one finished encode.
type Stats struct {
	InputBytes  int64
	OutputBytes int64
	Symbols     int   // distinct byte values
	TreeBits    int64 // before padding
	PayloadBits int64 // before padding
}

// Ratio is output size over input size.
func (s Stats) Ratio() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.OutputBytes) / float64(s.InputBytes)
}

// Encode compresses src into dst. The source is read twice, once to count
// and once to emit, so it must not change in between.
// Nothing is written to dst when src is empty.
func Encode(dst io.Writer, src io.ReaderAt) (Stats, error) {
	var st Stats

	freq, err := CountFrequencies(io.NewSectionReader(src, 0, math.MaxInt64))
	if err != nil {
		return st, fmt.Errorf("read input: %w", err)
	}
	if freq.Total == 0 {
		return st, ErrEmptyInput
	}
	tree, err := BuildTree(freq)
	if err != nil {
		return st, err
	}
	codes := NewCodeTable(tree)
	st.InputBytes = freq.Total
	st.Symbols = freq.Distinct()

	w := bitstream.NewWriter(dst)
	if err := WriteTree(w, tree); err != nil {
		return st, fmt.Errorf("write tree: %w", err)
	}
	st.TreeBits = w.BitsWritten()
	if err := w.Flush(); err != nil {
		return st, fmt.Errorf("write tree: %w", err)
	}

	var hdr [len(Marker) + binary.MaxVarintLen64]byte
	n := copy(hdr[:], Marker[:])
	n += binary.PutUvarint(hdr[n:], uint64(freq.Total))
	for _, b := range hdr[:n] {
		if err := w.WriteByte(b); err != nil {
			return st, fmt.Errorf("write marker: %w", err)
		}
	}

	start := w.BitsWritten()
	r := bufio.NewReaderSize(io.NewSectionReader(src, 0, freq.Total), 64*1024)
	for range freq.Total {
		b, err := r.ReadByte()
		if err == io.EOF {
			return st, fmt.Errorf("%w: shorter than %d bytes", ErrChanged, freq.Total)
		} else if err != nil {
			return st, fmt.Errorf("read input: %w", err)
		}
		code, ok := codes.Lookup(b)
		if !ok {
			return st, fmt.Errorf("%w: byte %#02x was not counted", ErrChanged, b)
		}
		if err := w.WriteBits(code); err != nil {
			return st, fmt.Errorf("write payload: %w", err)
		}
	}
	if n, _ := src.ReadAt(make([]byte, 1), freq.Total); n > 0 {
		return st, fmt.Errorf("%w: longer than %d bytes", ErrChanged, freq.Total)
	}
	st.PayloadBits = w.BitsWritten() - start

	if err := w.Close(); err != nil {
		return st, fmt.Errorf("write payload: %w", err)
	}
	st.OutputBytes = w.BitsWritten() / 8
	return st, nil
}

// EncodeBytes compresses p in memory.
func EncodeBytes(p []byte) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := Encode(&buf, bytes.NewReader(p)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
