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

// Reader reads bits from an io.Reader, refilling its buffer from the source
// whenever it runs dry. The end of the source is reported as io.EOF.
type Reader struct {
	br *bitio.CountReader
}

func NewReader(r io.Reader, size int) (*Reader, error) {
	if e := CheckSize(size); e != nil {
		return nil, e
	}
	return &Reader{br: bitio.NewCountReader(bufio.NewReaderSize(r, size))}, nil
}

// ReadBit tests the bit under the cursor and advances past it.
func (r *Reader) ReadBit() (bool, error) {
	b, e := r.br.ReadBool()
	if e != nil {
		return false, errors.WithStack(e)
	}
	return b, nil
}

// ReadBits reads n bits and returns them left-justified, the mirror of Writer.WriteBits.
func (r *Reader) ReadBits(n uint8) (uint64, error) {
	if e := checkWidth(n); e != nil {
		return 0, e
	}
	if n == 0 {
		return 0, nil
	}
	u, e := r.br.ReadBits(n)
	if e != nil {
		return 0, errors.WithStack(e)
	}
	return u << (64 - n), nil
}

// ReadByte reads the next 8 bits.
func (r *Reader) ReadByte() (byte, error) {
	b, e := r.br.ReadByte()
	if e != nil {
		return 0, errors.WithStack(e)
	}
	return b, nil
}

// Bits returns the number of bits consumed so far.
func (r *Reader) Bits() int64 { return r.br.BitsCount }
