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

package bitstream

import "bufio"
import "io"
import "github.com/icza/bitio"
import "github.com/pkg/errors"

// Writer writes bits to an io.Writer.
//
// A write session ends with exactly one call to Flush, which writes the
// partially filled trailing byte (zero padded) and everything still buffered.
type Writer struct {
	buf     *bufio.Writer
	bw      *bitio.CountWriter
	flushed bool
}

func NewWriter(w io.Writer, size int) (*Writer, error) {
	if e := CheckSize(size); e != nil {
		return nil, e
	}
	buf := bufio.NewWriterSize(w, size)
	return &Writer{buf: buf, bw: bitio.NewCountWriter(buf)}, nil
}

// WriteBit writes one bit, 1 if bit is true.
func (w *Writer) WriteBit(bit bool) error {
	if w.flushed {
		return ErrFlushed
	}
	return errors.WithStack(w.bw.WriteBool(bit))
}

// WriteBits writes the n most significant bits of v, MSB first.
//
// The bits are left-justified: WriteBits(0xA000000000000000, 3) writes 101.
func (w *Writer) WriteBits(v uint64, n uint8) error {
	if w.flushed {
		return ErrFlushed
	}
	if e := checkWidth(n); e != nil {
		return e
	}
	if n == 0 {
		return nil
	}
	return errors.WithStack(w.bw.WriteBits(v>>(64-n), n))
}

// WriteByte writes the 8 bits of b at the current bit position.
func (w *Writer) WriteByte(b byte) error {
	if w.flushed {
		return ErrFlushed
	}
	return errors.WithStack(w.bw.WriteByte(b))
}

// Pending returns the number of bits used in the current partial byte (0-7).
func (w *Writer) Pending() uint8 { return uint8(w.bw.BitsCount & 7) }

// Bits returns the number of bits written so far, padding included after Flush.
func (w *Writer) Bits() int64 { return w.bw.BitsCount }

// Flush pads the partial byte with zero bits and writes all buffered bytes to
// the underlying writer. The Writer can not be used afterwards.
func (w *Writer) Flush() error {
	if w.flushed {
		return ErrFlushed
	}
	w.flushed = true
	if e := w.bw.Close(); e != nil {
		return errors.WithStack(e)
	}
	return errors.WithStack(w.buf.Flush())
}
