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

// Whole-stream Huffman compression.
//
// Encode reads its input twice (once to count, once to code), so both Encode
// and Decode take an io.ReadSeeker. Two frame layouts exist:
//
// Single symbol: 0x80, the symbol, the count as 64 bit little endian. 10 bytes.
//
// General: the serialized tree (its leading 0 bit keeps the top bit of the
// first byte clear), the code of every input byte, and a trailer. The low 3
// bits of the last byte give the number of significant bits: 0 to 5 count the
// leading bits of the last byte itself; 6 and 7 mark a trailer byte of its own
// and count the leading bits of the byte before it.
package huffcodec

import "github.com/maxymania/huffman/bitstream"
import "github.com/maxymania/huffman/hufftree"
import "github.com/maxymania/huffman/logger"
import "github.com/pkg/errors"

var (
	ErrEmptyInput    = errors.New("huffcodec: empty input")
	ErrInvalidFormat = errors.New("huffcodec: invalid format")
	ErrAllocation    = bitstream.ErrAllocation
)

const (
	singleMarker    = 0x80
	singleFrameSize = 10

	// the most significant-bit count a trailer can share a byte with
	maxPackedTrailer = 5
)

type config struct {
	bufSize int
	log     logger.Logger
	hook    func(*hufftree.Tree)
}

type Option func(*config)

// WithBufferSize sets the size of the bit stream and input buffers.
func WithBufferSize(n int) Option { return func(c *config) { c.bufSize = n } }

func WithLogger(l logger.Logger) Option { return func(c *config) { c.log = l } }

// WithTreeHook registers f to be called with the tree once it is built (Encode)
// or parsed (Decode). It is not called for single symbol frames.
func WithTreeHook(f func(*hufftree.Tree)) Option { return func(c *config) { c.hook = f } }

func newConfig(opts []Option) (*config, error) {
	c := &config{bufSize: bitstream.DefaultBufferSize, log: logger.Discard}
	for _, o := range opts {
		o(c)
	}
	if c.log == nil {
		c.log = logger.Discard
	}
	if e := bitstream.CheckSize(c.bufSize); e != nil {
		return nil, e
	}
	return c, nil
}
