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

// Huffman trees over the byte alphabet.
//
// A Tree is an arena of nodes addressed by index. Build creates one from a
// frequency table, ReadTree parses one from a bit stream, and Serialize writes
// it back in the same self-delimiting pre-order form:
//
//	leaf:     1 followed by the 8 bits of the symbol
//	internal: 0 followed by the left subtree, then the right subtree
package hufftree

import "github.com/pkg/errors"

const (
	// MaxNodes is the node count of a tree holding all 256 symbols.
	MaxNodes = 2*256 - 1

	// MaxDepth is the depth of the most skewed 256 leaf tree.
	MaxDepth = 255
)

var (
	ErrNoSymbols     = errors.New("hufftree: no symbol with non-zero frequency")
	ErrMalformedTree = errors.New("hufftree: malformed tree")
)

// FreqTable counts the occurrences of every byte value.
type FreqTable [256]uint64

func (ft *FreqTable) Add(p []byte) {
	for _, b := range p {
		ft[b]++
	}
}

// Leaves returns the number of distinct symbols seen.
func (ft *FreqTable) Leaves() (n int) {
	for _, f := range ft {
		if f != 0 {
			n++
		}
	}
	return
}

// Node is a leaf when Left and Right are -1, otherwise both are valid indices.
// Freq is only set on trees made by Build.
type Node struct {
	Left, Right int16
	Symbol      byte
	Freq        uint64
}

func (n *Node) IsLeaf() bool { return n.Left < 0 }

type Tree struct {
	Nodes []Node
	Root  int16
}

func (t *Tree) Leaves() (n int) {
	for i := range t.Nodes {
		if t.Nodes[i].IsLeaf() {
			n++
		}
	}
	return
}

// Depth returns the length of the longest code.
func (t *Tree) Depth() int {
	var walk func(i int16) int
	walk = func(i int16) int {
		n := &t.Nodes[i]
		if n.IsLeaf() {
			return 0
		}
		return 1 + max(walk(n.Left), walk(n.Right))
	}
	return walk(t.Root)
}
