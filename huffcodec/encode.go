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

import "encoding/binary"
import "io"
import "github.com/maxymania/huffman/bitstream"
import "github.com/maxymania/huffman/hufftree"
import "github.com/pkg/errors"

// Encode compresses the whole of in, from its start, into out.
//
// Empty input fails with ErrEmptyInput before anything is written. On any
// other error out may hold a partial frame and has to be discarded.
func Encode(in io.ReadSeeker, out io.Writer, opts ...Option) error {
	c, e := newConfig(opts)
	if e != nil {
		return e
	}
	buf := make([]byte, c.bufSize)

	ft := new(hufftree.FreqTable)
	e = pass(in, buf, func(p []byte) error {
		ft.Add(p)
		return nil
	})
	if e != nil {
		return e
	}

	switch ft.Leaves() {
	case 0:
		return ErrEmptyInput
	case 1:
		return encodeSingle(out, ft, c)
	}

	t, e := hufftree.Build(ft)
	if e != nil {
		return e
	}
	if c.hook != nil {
		c.hook(t)
	}
	codes := t.Codes()

	w, e := bitstream.NewWriter(out, c.bufSize)
	if e != nil {
		return e
	}
	if e = t.Serialize(w); e != nil {
		return e
	}
	e = pass(in, buf, func(p []byte) error {
		for _, b := range p {
			if codes[b].Len == 0 {
				return errors.Errorf("huffcodec: symbol %#02x was not seen while counting, input changed", b)
			}
			if e := codes[b].Emit(w); e != nil {
				return e
			}
		}
		return nil
	})
	if e != nil {
		return e
	}
	if e = writeTrailer(w); e != nil {
		return e
	}
	if e = w.Flush(); e != nil {
		return e
	}
	c.log.Infof("encode: %d leaves, depth %d, tree %d bits, payload %d bits, %d bytes out",
		t.Leaves(), t.Depth(), t.Bits(), codes.PayloadBits(ft), w.Bits()/8)
	return nil
}

// pass rewinds in and hands every chunk of it to f.
func pass(in io.ReadSeeker, buf []byte, f func(p []byte) error) error {
	if _, e := in.Seek(0, io.SeekStart); e != nil {
		return errors.WithStack(e)
	}
	for {
		n, e := in.Read(buf)
		if n > 0 {
			if e2 := f(buf[:n]); e2 != nil {
				return e2
			}
		}
		if e == io.EOF {
			return nil
		}
		if e != nil {
			return errors.WithStack(e)
		}
	}
}

func encodeSingle(out io.Writer, ft *hufftree.FreqTable, c *config) error {
	var frame [singleFrameSize]byte
	frame[0] = singleMarker
	for s, f := range ft {
		if f != 0 {
			frame[1] = byte(s)
			binary.LittleEndian.PutUint64(frame[2:], f)
		}
	}
	if _, e := out.Write(frame[:]); e != nil {
		return errors.WithStack(e)
	}
	c.log.Infof("encode: single symbol %#02x, count %d", frame[1], ft[frame[1]])
	return nil
}

// writeTrailer records how many bits of the final payload byte are significant.
func writeTrailer(w *bitstream.Writer) error {
	used := w.Pending()
	if used <= maxPackedTrailer {
		if e := w.WriteBits(0, maxPackedTrailer-used); e != nil {
			return e
		}
		return w.WriteBits(uint64(used)<<61, 3)
	}
	if e := w.WriteBits(0, 8-used); e != nil {
		return e
	}
	return w.WriteByte(used)
}
