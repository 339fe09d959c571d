// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package huffman

import "slices"

// depth finds the shallowest leaf holding b.
func (t *Tree) depth(b byte) (int, bool) {
	best, found := 0, false
	t.walk(func(i, depth int) {
		if n := t.nodes[i]; n.IsLeaf() && n.Value == b && (!found || depth < best) {
			best, found = depth, true
		}
	})
	return best, found
}

// symbols lists the byte values that occur, in ascending order.
func (f *Frequencies) symbols() []byte {
	var s []byte
	for b, c := range f.Count {
		if c > 0 {
			s = append(s, byte(b))
		}
	}
	return s
}

func (c Code) hasPrefix(p Code) bool {
	return len(p) <= len(c) && slices.Equal(c[:len(p)], p)
}
