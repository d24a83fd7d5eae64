/*
Copyright (c) 2017 Simon Schmidt

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package hufftree

import "io"
import "github.com/maxymania/huffman/bitstream"
import "github.com/pkg/errors"

// Serialize writes t in pre-order, see the package documentation.
func (t *Tree) Serialize(w *bitstream.Writer) error {
	var put func(i int16) error
	put = func(i int16) error {
		n := &t.Nodes[i]
		if n.IsLeaf() {
			if e := w.WriteBit(true); e != nil {
				return e
			}
			return w.WriteByte(n.Symbol)
		}
		if e := w.WriteBit(false); e != nil {
			return e
		}
		if e := put(n.Left); e != nil {
			return e
		}
		return put(n.Right)
	}
	return put(t.Root)
}

// Bits returns the size of the serialized tree.
func (t *Tree) Bits() int64 {
	l := int64(t.Leaves())
	return l*9 + (int64(len(t.Nodes)) - l)
}

// ReadTree parses a serialized tree of at least two leaves. Nodes are taken
// from a pool of MaxNodes entries in the order they are read, so the root is
// node 0. Every bit goes through r, which refills at any position.
func ReadTree(r *bitstream.Reader) (*Tree, error) {
	t := &Tree{Nodes: make([]Node, 0, MaxNodes)}
	var seen [256]bool

	var get func() (int16, error)
	get = func() (int16, error) {
		if len(t.Nodes) == MaxNodes {
			return 0, errors.Wrapf(ErrMalformedTree, "more than %d nodes", MaxNodes)
		}
		i := int16(len(t.Nodes))
		t.Nodes = append(t.Nodes, Node{Left: -1, Right: -1})
		leaf, e := r.ReadBit()
		if e != nil {
			return 0, truncated(e)
		}
		if leaf {
			s, e := r.ReadByte()
			if e != nil {
				return 0, truncated(e)
			}
			if seen[s] {
				return 0, errors.Wrapf(ErrMalformedTree, "symbol %#02x appears twice", s)
			}
			seen[s] = true
			t.Nodes[i].Symbol = s
			return i, nil
		}
		left, e := get()
		if e != nil {
			return 0, e
		}
		right, e := get()
		if e != nil {
			return 0, e
		}
		t.Nodes[i].Left, t.Nodes[i].Right = left, right
		return i, nil
	}

	root, e := get()
	if e != nil {
		return nil, e
	}
	if t.Nodes[root].IsLeaf() {
		return nil, errors.Wrap(ErrMalformedTree, "root is a leaf")
	}
	t.Root = root
	return t, nil
}

func truncated(e error) error {
	if errors.Is(e, io.EOF) || errors.Is(e, io.ErrUnexpectedEOF) {
		return errors.Wrap(ErrMalformedTree, "unexpected end of input")
	}
	return e
}
