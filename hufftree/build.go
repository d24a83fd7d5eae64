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

import "container/heap"

// The queue pops the entry with the lowest frequency. Equal frequencies are
// ordered by tie: leaves come first, higher symbols before lower ones, then
// merged nodes oldest first. This is the order in which a list kept sorted by
// descending frequency (leaves by ascending symbol, a merged node inserted in
// front of every entry of equal or lower frequency) hands out its tail.
type item struct {
	freq uint64
	tie  int
	node int16
}

type queue []item

func (q queue) Len() int { return len(q) }
func (q queue) Less(i, j int) bool {
	if q[i].freq != q[j].freq {
		return q[i].freq < q[j].freq
	}
	return q[i].tie < q[j].tie
}
func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *queue) Push(x any) { *q = append(*q, x.(item)) }

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[:n-1]
	return x
}

// Build creates the Huffman tree for ft by repeatedly merging the two
// lightest trees; the first one popped becomes the left child.
//
// A table with a single symbol yields a tree that is just one leaf.
func Build(ft *FreqTable) (*Tree, error) {
	leaves := ft.Leaves()
	if leaves == 0 {
		return nil, ErrNoSymbols
	}
	t := &Tree{Nodes: make([]Node, 0, 2*leaves-1)}
	q := make(queue, 0, leaves)
	for s, f := range ft {
		if f == 0 {
			continue
		}
		i := int16(len(t.Nodes))
		t.Nodes = append(t.Nodes, Node{Left: -1, Right: -1, Symbol: byte(s), Freq: f})
		q = append(q, item{freq: f, tie: leaves - 1 - int(i), node: i})
	}
	heap.Init(&q)
	for k := 0; q.Len() > 1; k++ {
		a := heap.Pop(&q).(item)
		b := heap.Pop(&q).(item)
		i := int16(len(t.Nodes))
		t.Nodes = append(t.Nodes, Node{Left: a.node, Right: b.node, Freq: a.freq + b.freq})
		heap.Push(&q, item{freq: a.freq + b.freq, tie: leaves + k, node: i})
	}
	t.Root = heap.Pop(&q).(item).node
	return t, nil
}
