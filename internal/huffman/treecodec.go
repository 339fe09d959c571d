// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package huffman

import (
	"errors"
	"fmt"

	"github.com/elliotnunn/huffpack/internal/bitstream"
)

// WriteTree emits t in pre-order: bit 1 and the 8-bit value for a leaf,
// bit 0 for an internal node followed by its left then right subtree.
// The caller flushes.
func WriteTree(w *bitstream.Writer, t *Tree) error {
	stack := []int{t.root}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.nodes[i]
		if n.IsLeaf() {
			if err := w.WriteBit(1); err != nil {
				return err
			}
			if err := w.WriteByte(n.Value); err != nil {
				return err
			}
			continue
		}
		if err := w.WriteBit(0); err != nil {
			return err
		}
		stack = append(stack, n.Right, n.Left)
	}
	return nil
}

// ReadTree is the inverse of WriteTree. It stops on the last bit of the
// tree, which needs no length prefix because every subtree is
// self-delimiting.
func ReadTree(r *bitstream.Reader) (*Tree, error) {
	t := &Tree{root: none}

	readNode := func() (i int, internal bool, err error) {
		if len(t.nodes) == maxNodes {
			return none, false, fmt.Errorf("%w: tree has more than %d nodes", ErrCorrupt, maxNodes)
		}
		flag, err := r.NextBit()
		if err != nil {
			return none, false, corrupt("tree", err)
		}
		n := Node{Left: none, Right: none}
		if flag == 1 {
			if n.Value, err = r.ReadByte(); err != nil {
				return none, false, corrupt("tree", err)
			}
		}
		return t.add(n), flag == 0, nil
	}

	root, internal, err := readNode()
	if err != nil {
		return nil, err
	}
	t.root = root

	var open []int // internal nodes still missing a child
	if internal {
		open = append(open, root)
	}
	for len(open) > 0 {
		i, internal, err := readNode()
		if err != nil {
			return nil, err
		}
		p := &t.nodes[open[len(open)-1]]
		if p.Left == none {
			p.Left = i
		} else {
			p.Right = i
			open = open[:len(open)-1]
		}
		if internal {
			open = append(open, i)
		}
	}
	return t, nil
}

// corrupt labels a premature end of input as stream corruption.
func corrupt(section string, err error) error {
	if errors.Is(err, bitstream.ErrEndOfStream) {
		return fmt.Errorf("%w: truncated %s: %w", ErrCorrupt, section, err)
	}
	return fmt.Errorf("read %s: %w", section, err)
}
