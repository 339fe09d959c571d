// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package huffman is a two-pass static Huffman coder for byte streams.
//
// A compressed stream is laid out as
//
//	tree    pre-order: 1 + 8-bit value per leaf, 0 per internal node,
//	        zero-padded to a byte boundary
//	marker  0x40 0x23 0x24 ("@#$")
//	count   number of symbols, unsigned varint
//	payload the code of every symbol, high bit first, zero-padded
package huffman

import "errors"

var (
	ErrEmptyInput = errors.New("huffman: empty input")
	ErrCorrupt    = errors.New("huffman: corrupt stream")
	ErrChanged    = errors.New("huffman: input changed between passes")
)

// Marker separates the tree from the payload.
var Marker = [3]byte{0x40, 0x23, 0x24}

// Alphabet is the number of distinct symbols.
const Alphabet = 256

// A full binary tree over the alphabet never has more nodes than this.
const maxNodes = 2*Alphabet - 1
