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

import "github.com/icza/huffman"

// Export converts t into a github.com/icza/huffman tree. Parent links are
// set, so Node.Code works on the leaves. Count carries Freq, which is zero
// for trees read from a stream.
func (t *Tree) Export() *huffman.Node {
	var conv func(i int16, parent *huffman.Node) *huffman.Node
	conv = func(i int16, parent *huffman.Node) *huffman.Node {
		n := &t.Nodes[i]
		h := &huffman.Node{Parent: parent, Count: int(n.Freq), Value: huffman.ValueType(n.Symbol)}
		if !n.IsLeaf() {
			h.Left = conv(n.Left, h)
			h.Right = conv(n.Right, h)
		}
		return h
	}
	return conv(t.Root, nil)
}

// Print writes every symbol with its code to standard output.
func (t *Tree) Print() {
	huffman.Print(t.Export())
}
