// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package bitstream packs and unpacks single bits, most significant bit first.
package bitstream

import (
	"errors"
	"io"

	"github.com/icza/bitio"
)

// ErrEndOfStream is returned by a Reader whose source has no more bytes.
var ErrEndOfStream = errors.New("end of bit stream")

// A Writer accumulates bits into bytes.
// Nothing reaches the underlying writer for a partial byte until Flush.
type Writer struct {
	w    *bitio.Writer
	bits int64
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bitio.NewWriter(w)}
}

// WriteBit appends the low bit of b.
func (w *Writer) WriteBit(b uint8) error {
	w.bits++
	return w.w.WriteBool(b&1 != 0)
}

// WriteBits appends each element of bits in order, each being 0 or 1.
func (w *Writer) WriteBits(bits []uint8) error {
	for _, b := range bits {
		if err := w.WriteBit(b); err != nil {
			return err
		}
	}
	return nil
}

// WriteByte appends 8 bits, high bit first.
// Called right after Flush, it emits b as a plain byte.
func (w *Writer) WriteByte(b byte) error {
	w.bits += 8
	return w.w.WriteByte(b)
}

// Flush pads the partial byte, if any, with zero bits and emits it.
func (w *Writer) Flush() error {
	skipped, err := w.w.Align()
	w.bits += int64(skipped)
	return err
}

// Close flushes and pushes any buffered bytes to the underlying writer,
// which is not itself closed.
func (w *Writer) Close() error {
	if err := w.Flush(); err != nil {
		return err
	}
	return w.w.Close()
}

// BitsWritten counts every bit emitted so far, padding included.
func (w *Writer) BitsWritten() int64 { return w.bits }

// A Reader hands out the bits of a byte stream one at a time.
type Reader struct {
	r    *bitio.Reader
	bits int64
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bitio.NewReader(r)}
}

// NextBit returns the next bit as 0 or 1.
func (r *Reader) NextBit() (uint8, error) {
	b, err := r.r.ReadBool()
	if err != nil {
		return 0, eos(err)
	}
	r.bits++
	if b {
		return 1, nil
	}
	return 0, nil
}

// ReadByte returns the next 8 bits, high bit first.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.r.ReadByte()
	if err != nil {
		return 0, eos(err)
	}
	r.bits += 8
	return b, nil
}

// Align discards the unread bits of a partially consumed byte.
func (r *Reader) Align() {
	r.bits += int64(r.r.Align())
}

// BitsRead counts every bit consumed so far, discarded ones included.
func (r *Reader) BitsRead() int64 { return r.bits }

func eos(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrEndOfStream
	}
	return err
}
