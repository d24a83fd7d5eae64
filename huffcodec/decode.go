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

package huffcodec

import "bufio"
import "encoding/binary"
import "io"
import "github.com/maxymania/huffman/bitstream"
import "github.com/maxymania/huffman/hufftree"
import "github.com/pkg/errors"

// Decode reverses Encode, writing the original bytes of the frame in to out.
//
// Empty input fails with ErrEmptyInput. Frames Encode can not have produced
// fail with an error wrapping ErrInvalidFormat; out may already hold a prefix
// of the decoded data in that case.
func Decode(in io.ReadSeeker, out io.Writer, opts ...Option) error {
	c, e := newConfig(opts)
	if e != nil {
		return e
	}
	size, e := in.Seek(0, io.SeekEnd)
	if e != nil {
		return errors.WithStack(e)
	}
	if size == 0 {
		return ErrEmptyInput
	}
	first, e := byteAt(in, 0)
	if e != nil {
		return e
	}
	if first&singleMarker != 0 {
		return decodeSingle(in, out, size, c)
	}

	last, e := byteAt(in, size-1)
	if e != nil {
		return e
	}
	total, e := significantBits(size, last)
	if e != nil {
		return e
	}

	if _, e = in.Seek(0, io.SeekStart); e != nil {
		return errors.WithStack(e)
	}
	r, e := bitstream.NewReader(in, c.bufSize)
	if e != nil {
		return e
	}
	t, e := hufftree.ReadTree(r)
	if e != nil {
		return errors.Wrapf(ErrInvalidFormat, "%v", e)
	}
	if c.hook != nil {
		c.hook(t)
	}
	payload := total - r.Bits()
	if payload < 0 {
		return errors.Wrapf(ErrInvalidFormat, "tree runs %d bits into the trailer", -payload)
	}

	bw := bufio.NewWriterSize(out, c.bufSize)
	var written int64
	cur := t.Root
	for ; payload > 0; payload-- {
		bit, e := r.ReadBit()
		if e != nil {
			return errors.Wrapf(ErrInvalidFormat, "payload: %v", e)
		}
		n := &t.Nodes[cur]
		if bit {
			cur = n.Right
		} else {
			cur = n.Left
		}
		if n = &t.Nodes[cur]; n.IsLeaf() {
			if e = bw.WriteByte(n.Symbol); e != nil {
				return errors.WithStack(e)
			}
			written++
			cur = t.Root
		}
	}
	if cur != t.Root {
		return errors.Wrap(ErrInvalidFormat, "payload ends inside a code")
	}
	if e = bw.Flush(); e != nil {
		return errors.WithStack(e)
	}
	c.log.Infof("decode: %d leaves, depth %d, %d bytes in, %d bytes out", t.Leaves(), t.Depth(), size, written)
	return nil
}

// significantBits returns the number of bits in a general frame of size bytes
// that precede the trailer, given the frame's last byte.
func significantBits(size int64, last byte) (int64, error) {
	used := int64(last & 7)
	if used <= maxPackedTrailer {
		return 8*(size-1) + used, nil
	}
	if last>>3 != 0 {
		return 0, errors.Wrapf(ErrInvalidFormat, "trailer byte %#02x", last)
	}
	if size < 2 {
		return 0, errors.Wrap(ErrInvalidFormat, "trailer without payload")
	}
	return 8*(size-2) + used, nil
}

func decodeSingle(in io.ReadSeeker, out io.Writer, size int64, c *config) error {
	if size != singleFrameSize {
		return errors.Wrapf(ErrInvalidFormat, "single symbol frame of %d bytes", size)
	}
	if _, e := in.Seek(0, io.SeekStart); e != nil {
		return errors.WithStack(e)
	}
	var frame [singleFrameSize]byte
	if _, e := io.ReadFull(in, frame[:]); e != nil {
		return errors.WithStack(e)
	}
	sym, count := frame[1], binary.LittleEndian.Uint64(frame[2:])
	if count == 0 {
		return errors.Wrap(ErrInvalidFormat, "single symbol frame with zero count")
	}

	block := make([]byte, min(uint64(c.bufSize), count))
	for i := range block {
		block[i] = sym
	}
	for n := count; n > 0; {
		k := min(n, uint64(len(block)))
		if _, e := out.Write(block[:k]); e != nil {
			return errors.WithStack(e)
		}
		n -= k
	}
	c.log.Infof("decode: single symbol %#02x, count %d", sym, count)
	return nil
}

func byteAt(in io.ReadSeeker, off int64) (byte, error) {
	if _, e := in.Seek(off, io.SeekStart); e != nil {
		return 0, errors.WithStack(e)
	}
	var b [1]byte
	if _, e := io.ReadFull(in, b[:]); e != nil {
		return 0, errors.WithStack(e)
	}
	return b[0], nil
}
