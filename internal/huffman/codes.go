// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package huffman

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// A Code is a bit string, each element 0 or 1, root end first.
type Code []uint8

func (c Code) String() string {
	var sb strings.Builder
	for _, b := range c {
		sb.WriteByte('0' + b)
	}
	return sb.String()
}

// A CodeTable maps each byte value to its code, nil for absent values.
type CodeTable [Alphabet]Code

// NewCodeTable walks t, appending 0 for every left turn and 1 for every
// right turn. A tree that is a single leaf gives its value the code "0".
func NewCodeTable(t *Tree) *CodeTable {
	ct := new(CodeTable)
	type frame struct {
		i    int
		code Code
	}
	stack := []frame{{t.root, Code{}}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.nodes[f.i]
		if n.IsLeaf() {
			code := f.code
			if len(code) == 0 {
				code = Code{0}
			}
			if ct[n.Value] == nil {
				ct[n.Value] = code
			}
			continue
		}
		prefix := slices.Clip(f.code)
		stack = append(stack,
			frame{n.Right, append(prefix, 1)},
			frame{n.Left, append(prefix, 0)})
	}
	return ct
}

// Lookup returns the code for b.
func (ct *CodeTable) Lookup(b byte) (Code, bool) {
	return ct[b], ct[b] != nil
}

// Len counts the byte values that have a code.
func (ct *CodeTable) Len() int {
	n := 0
	for _, c := range ct {
		if c != nil {
			n++
		}
	}
	return n
}

// EncodedBits is the payload length in bits for the counted input.
func (ct *CodeTable) EncodedBits(f *Frequencies) int64 {
	var bits int64
	for b, c := range f.Count {
		bits += c * int64(len(ct[b]))
	}
	return bits
}

// String lists the codes in byte order. Bytes above 0x7f are shown as
// escapes, never as the Unicode character of the same number.
func (ct *CodeTable) String() string {
	var sb strings.Builder
	for b, c := range ct {
		if c == nil {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		if b < utf8.RuneSelf {
			fmt.Fprintf(&sb, "(%q %s)", rune(b), c)
		} else {
			fmt.Fprintf(&sb, "('\\x%02x' %s)", b, c)
		}
	}
	return sb.String()
}
