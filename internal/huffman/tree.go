// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package huffman

import (
	"container/heap"
	"slices"
)

// none marks an absent child.
const none = -1

// A Node is either a leaf (both children none) or an internal node with
// two children. Left is reached with bit 0, Right with bit 1.
type Node struct {
	Left, Right int
	Value       byte  // leaves only
	Weight      int64 // construction only, never serialized
}

func (n Node) IsLeaf() bool { return n.Left == none && n.Right == none }

// A Tree is an arena of nodes addressed by index.
type Tree struct {
	nodes []Node
	root  int
}

func (t *Tree) Root() int         { return t.root }
func (t *Tree) Len() int          { return len(t.nodes) }
func (t *Tree) Node(i int) Node   { return t.nodes[i] }
func (t *Tree) IsLeaf(i int) bool { return t.nodes[i].IsLeaf() }

func (t *Tree) add(n Node) int {
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

// walk visits every node in pre-order without recursion.
func (t *Tree) walk(visit func(i, depth int)) {
	type frame struct{ i, depth int }
	stack := []frame{{t.root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(f.i, f.depth)
		if n := t.nodes[f.i]; !n.IsLeaf() {
			stack = append(stack, frame{n.Right, f.depth + 1}, frame{n.Left, f.depth + 1})
		}
	}
}

// Leaves counts the leaf nodes.
func (t *Tree) Leaves() int {
	n := 0
	t.walk(func(i, _ int) {
		if t.IsLeaf(i) {
			n++
		}
	})
	return n
}

// Equal reports whether both trees have the same shape and leaf values.
// Weights and arena order are not compared.
func (t *Tree) Equal(u *Tree) bool {
	type step struct {
		leaf  bool
		value byte
	}
	shape := func(t *Tree) []step {
		var s []step
		t.walk(func(i, _ int) {
			st := step{leaf: t.IsLeaf(i)}
			if st.leaf {
				st.value = t.nodes[i].Value
			}
			s = append(s, st)
		})
		return s
	}
	return slices.Equal(shape(t), shape(u))
}

// BuildTree merges the two lightest nodes until one remains.
// Ties go to whichever node entered the queue first: leaves enter in
// ascending byte order, merged nodes as they are made. The first node out
// becomes the left child.
func BuildTree(f *Frequencies) (*Tree, error) {
	t := &Tree{root: none}
	q := make(queue, 0, Alphabet)
	for b, c := range f.Count {
		if c > 0 {
			i := t.add(Node{Left: none, Right: none, Value: byte(b), Weight: c})
			q = append(q, item{weight: c, seq: len(q), node: i})
		}
	}
	if len(q) == 0 {
		return nil, ErrEmptyInput
	}
	heap.Init(&q)
	seq := len(q)
	for q.Len() > 1 {
		a := heap.Pop(&q).(item)
		b := heap.Pop(&q).(item)
		i := t.add(Node{Left: a.node, Right: b.node, Weight: a.weight + b.weight})
		heap.Push(&q, item{weight: a.weight + b.weight, seq: seq, node: i})
		seq++
	}
	t.root = q[0].node
	return t, nil
}

// Priority queue used during construction.

type item struct {
	weight int64
	seq    int
	node   int
}

type queue []item

func (q queue) Len() int { return len(q) }
func (q queue) Less(i, j int) bool {
	if q[i].weight != q[j].weight {
		return q[i].weight < q[j].weight
	}
	return q[i].seq < q[j].seq
}
func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *queue) Push(x any) {
	*q = append(*q, x.(item))
}

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[0 : n-1]
	return x
}
