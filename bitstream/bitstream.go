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

// Buffered bit-level access to byte oriented streams.
//
// A Writer packs single bits and bit groups MSB first into a fixed size buffer
// that is flushed to the sink whenever it fills up; a Reader refills its buffer
// from the source and hands out bits one at a time. Bit packing is done by
// github.com/icza/bitio, the buffers are plain bufio buffers of a caller chosen size.
package bitstream

import "github.com/pkg/errors"

const (
	DefaultBufferSize = 8192
	MinBufferSize     = 16
	MaxBufferSize     = 1 << 30
)

var (
	// ErrAllocation is returned when the internal buffer can not be set up.
	ErrAllocation = errors.New("bitstream: cannot allocate buffer")

	// ErrFlushed is returned on any use of a Writer after Flush.
	ErrFlushed = errors.New("bitstream: writer already flushed")
)

// CheckSize reports ErrAllocation for buffer sizes the package refuses to allocate.
func CheckSize(size int) error {
	if size < MinBufferSize || size > MaxBufferSize {
		return errors.Wrapf(ErrAllocation, "buffer size %d out of range [%d,%d]", size, MinBufferSize, MaxBufferSize)
	}
	return nil
}

func checkWidth(n uint8) error {
	if n > 64 {
		return errors.Errorf("bitstream: %d bits do not fit into 64", n)
	}
	return nil
}
