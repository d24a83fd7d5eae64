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

import "github.com/maxymania/huffman/bitstream"

// Code is a path from the root to a leaf, 0 for left and 1 for right.
// The bits are left-justified across Words: bit i of the path is bit 63-i%64
// of Words[i/64]. Codes up to MaxDepth bits are representable.
type Code struct {
	Words [(MaxDepth + 63) / 64]uint64
	Len   int
}

func (c Code) push(bit bool) Code {
	if bit {
		c.Words[c.Len/64] |= 1 << (63 - uint(c.Len%64))
	}
	c.Len++
	return c
}

// Bit reports bit i of the path.
func (c *Code) Bit(i int) bool {
	return c.Words[i/64]&(1<<(63-uint(i%64))) != 0
}

// Emit writes the code MSB first, at most 64 bits per WriteBits call.
func (c *Code) Emit(w *bitstream.Writer) error {
	for i, n := 0, c.Len; n > 0; i++ {
		k := min(n, 64)
		if e := w.WriteBits(c.Words[i], uint8(k)); e != nil {
			return e
		}
		n -= k
	}
	return nil
}

// CodeTable maps every symbol to its code; absent symbols have Len 0.
type CodeTable [256]Code

// Codes derives the code of every leaf with a depth first walk.
func (t *Tree) Codes() *CodeTable {
	tab := new(CodeTable)
	var walk func(i int16, c Code)
	walk = func(i int16, c Code) {
		n := &t.Nodes[i]
		if n.IsLeaf() {
			tab[n.Symbol] = c
			return
		}
		walk(n.Left, c.push(false))
		walk(n.Right, c.push(true))
	}
	walk(t.Root, Code{})
	return tab
}

// PayloadBits is the number of bits needed to encode the input counted in ft.
func (tab *CodeTable) PayloadBits(ft *FreqTable) (n uint64) {
	for s, f := range ft {
		n += f * uint64(tab[s].Len)
	}
	return
}
