// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package huffman

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/elliotnunn/huffpack/internal/bitstream"
)

// A Header is everything that precedes the payload.
type Header struct {
	Tree  *Tree
	Count uint64 // symbols in the payload
	Size  int64  // bytes
}

// Codes derives the code table implied by the tree.
func (h *Header) Codes() *CodeTable { return NewCodeTable(h.Tree) }

func readHeader(r *bitstream.Reader) (*Header, error) {
	tree, err := ReadTree(r)
	if err != nil {
		return nil, err
	}
	r.Align()

	var m [len(Marker)]byte
	for i := range m {
		if m[i], err = r.ReadByte(); err != nil {
			return nil, corrupt("marker", err)
		}
	}
	if m != Marker {
		return nil, fmt.Errorf("%w: bad marker %x", ErrCorrupt, m)
	}

	count, err := binary.ReadUvarint(r)
	if err != nil {
		if errors.Is(err, bitstream.ErrEndOfStream) {
			return nil, corrupt("symbol count", err)
		}
		return nil, fmt.Errorf("%w: symbol count: %w", ErrCorrupt, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: zero symbol count", ErrCorrupt)
	}
	return &Header{Tree: tree, Count: count, Size: r.BitsRead() / 8}, nil
}

// Inspect reads only the header of a compressed stream.
func Inspect(src io.Reader) (*Header, error) {
	return readHeader(bitstream.NewReader(src))
}

// A Reader decompresses a stream produced by Encode.
type Reader struct {
	r      *bitstream.Reader
	hdr    *Header
	remain uint64
	err    error
}

func NewReader(src io.Reader) *Reader {
	return &Reader{r: bitstream.NewReader(src)}
}

// Header reads the header if that has not happened yet.
func (d *Reader) Header() (*Header, error) {
	if d.hdr == nil && d.err == nil {
		d.hdr, d.err = readHeader(d.r)
		if d.err == nil {
			d.remain = d.hdr.Count
		}
	}
	if d.hdr != nil {
		return d.hdr, nil
	}
	return nil, d.err
}

func (d *Reader) Read(p []byte) (int, error) {
	if d.err != nil {
		return 0, d.err
	}
	if _, err := d.Header(); err != nil {
		return 0, err
	}
	n := 0
	for n < len(p) && d.remain > 0 {
		b, err := d.symbol()
		if err != nil {
			d.err = err
			return n, err
		}
		p[n] = b
		n++
		d.remain--
	}
	if d.remain == 0 {
		d.err = d.finish()
		if n == 0 || d.err != io.EOF {
			return n, d.err
		}
	}
	return n, nil
}

// symbol walks from the root to a leaf, 0 going left and 1 going right.
func (d *Reader) symbol() (byte, error) {
	t := d.hdr.Tree
	i := t.root
	if t.IsLeaf(i) { // every symbol is coded "0"
		bit, err := d.r.NextBit()
		if err != nil {
			return 0, corrupt("payload", err)
		}
		if bit != 0 {
			return 0, fmt.Errorf("%w: invalid code in payload", ErrCorrupt)
		}
		return t.nodes[i].Value, nil
	}
	for !t.IsLeaf(i) {
		bit, err := d.r.NextBit()
		if err != nil {
			return 0, corrupt("payload", err)
		}
		if bit == 0 {
			i = t.nodes[i].Left
		} else {
			i = t.nodes[i].Right
		}
	}
	return t.nodes[i].Value, nil
}

// finish skips the padding after the last symbol and insists that
// nothing follows it.
func (d *Reader) finish() error {
	d.r.Align()
	switch _, err := d.r.ReadByte(); {
	case err == nil:
		return fmt.Errorf("%w: trailing data after payload", ErrCorrupt)
	case errors.Is(err, bitstream.ErrEndOfStream):
		return io.EOF
	default:
		return fmt.Errorf("read payload: %w", err)
	}
}

// Decode decompresses src into dst and returns the number of bytes written.
// On error dst may already hold part of the output.
func Decode(dst io.Writer, src io.Reader) (int64, error) {
	return io.Copy(dst, NewReader(src))
}

// DecodeBytes decompresses p in memory.
func DecodeBytes(p []byte) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := Decode(&buf, bytes.NewReader(p)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
