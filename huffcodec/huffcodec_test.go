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

import (
	"bytes"
	"encoding/binary"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/icza/mighty"
	"github.com/maxymania/huffman/bitstream"
	"github.com/maxymania/huffman/hufftree"
	"github.com/maxymania/huffman/logger"
	"github.com/pkg/errors"
)

func encode(t *testing.T, in []byte, opts ...Option) []byte {
	t.Helper()
	out := &bytes.Buffer{}
	if e := Encode(bytes.NewReader(in), out, opts...); e != nil {
		t.Fatalf("encode %q: %+v", in, e)
	}
	return out.Bytes()
}

func decode(in []byte, opts ...Option) ([]byte, error) {
	out := &bytes.Buffer{}
	e := Decode(bytes.NewReader(in), out, opts...)
	return out.Bytes(), e
}

func roundTrip(t *testing.T, in []byte, opts ...Option) {
	t.Helper()
	got, e := decode(encode(t, in, opts...), opts...)
	if e != nil {
		t.Fatalf("decode: %+v", e)
	}
	if !bytes.Equal(in, got) {
		t.Fatalf("round trip of %d bytes returned %d different bytes", len(in), len(got))
	}
}

func TestRoundTrip(t *testing.T) {
	for _, s := range []string{
		"ab",
		"aab",
		"aabbb",
		"hello, world",
		"abracadabra",
		strings.Repeat("the quick brown fox jumps over the lazy dog\n", 200),
	} {
		roundTrip(t, []byte(s))
	}
}

func TestRoundTripRandom(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		in := make([]byte, 1+rnd.Intn(5000))
		alpha := 2 + rnd.Intn(255)
		for j := range in {
			// skewed so code lengths differ
			in[j] = byte(rnd.Intn(1 + rnd.Intn(alpha)))
		}
		in[0], in[len(in)-1] = 0, 1
		roundTrip(t, in, WithBufferSize(bitstream.MinBufferSize))
		roundTrip(t, in)
	}
}

func TestFullAlphabet(t *testing.T) {
	in := make([]byte, 256*3)
	for i := range in {
		in[i] = byte(i)
	}
	var depth int
	out := encode(t, in, WithTreeHook(func(tr *hufftree.Tree) { depth = tr.Depth() }))
	mighty.Eq(t)(8, depth)
	roundTrip(t, in)
	// 256*9+255 tree bits and 768*8 payload bits leave 7 bits pending: one
	// padded byte plus a standalone trailer byte
	mighty.Eq(t)(1089, len(out))
	mighty.Eq(t)(byte(7), out[len(out)-1])
}

func TestExactFrames(t *testing.T) {
	eq := mighty.Eq(t)
	eq(true, bytes.Equal([]byte{0x58, 0xAC, 0x35}, encode(t, []byte("ab"))))
	eq(true, bytes.Equal([]byte{0x58, 0xAC, 0x38, 0x06}, encode(t, []byte("aab"))))
	eq(true, bytes.Equal([]byte{0x58, 0x6C, 0x47, 0x00}, encode(t, []byte("aabbb"))))
}

func TestSingleSymbol(t *testing.T) {
	eq := mighty.Eq(t)

	out := encode(t, []byte("z"))
	eq(singleFrameSize, len(out))
	eq(true, bytes.Equal([]byte{0x80, 'z', 1, 0, 0, 0, 0, 0, 0, 0}, out))
	roundTrip(t, []byte("z"))

	in := bytes.Repeat([]byte{0}, 100000)
	out = encode(t, in, WithBufferSize(bitstream.MinBufferSize))
	eq(singleFrameSize, len(out))
	eq(uint64(100000), binary.LittleEndian.Uint64(out[2:]))
	roundTrip(t, in, WithBufferSize(bitstream.MinBufferSize))
}

type counter struct {
	n   int64
	bad bool
}

func (c *counter) Write(p []byte) (int, error) {
	for _, b := range p {
		c.bad = c.bad || b != 'q'
	}
	c.n += int64(len(p))
	return len(p), nil
}

func TestSingleSymbolLargeCount(t *testing.T) {
	eq := mighty.Eq(t)
	frame := []byte{0x80, 'q', 0, 0, 0, 0, 0, 0, 0, 0}
	binary.LittleEndian.PutUint64(frame[2:], 3<<20+5)
	c := &counter{}
	eq(nil, Decode(bytes.NewReader(frame), c))
	eq(int64(3<<20+5), c.n)
	eq(false, c.bad)
}

func TestEmptyInput(t *testing.T) {
	eq := mighty.Eq(t)
	out := &bytes.Buffer{}
	eq(true, errors.Is(Encode(bytes.NewReader(nil), out), ErrEmptyInput))
	eq(0, out.Len())
	eq(true, errors.Is(Decode(bytes.NewReader(nil), out), ErrEmptyInput))
	eq(0, out.Len())
}

func TestInvalidSingleFrames(t *testing.T) {
	eq := mighty.Eq(t)
	good := encode(t, []byte("yyy"))
	for _, in := range [][]byte{
		good[:9],
		append(append([]byte{}, good...), 0),
		{0x80, 'y', 0, 0, 0, 0, 0, 0, 0, 0},
		{0xFF},
	} {
		_, e := decode(in)
		eq(true, errors.Is(e, ErrInvalidFormat))
	}
}

func TestInvalidGeneralFrames(t *testing.T) {
	eq := mighty.Eq(t)
	ab := encode(t, []byte("ab"))
	aab := encode(t, []byte("aab"))
	for _, in := range [][]byte{
		// tree cut short
		ab[:2],
		{0x00},
		// trailer byte with high bits set
		{0x58, 0xAC, 0x38, 0x0E},
		// standalone trailer with nothing in front of it
		{0x07},
		// trailer claims fewer bits than the tree needs
		{0x58, 0xAC, 0x20},
	} {
		_, e := decode(in)
		eq(true, errors.Is(e, ErrInvalidFormat))
	}
	_, e := decode(aab)
	eq(nil, e)
}

func TestPayloadEndsInsideCode(t *testing.T) {
	eq := mighty.Eq(t)
	ft := new(hufftree.FreqTable)
	ft.Add([]byte("abcc"))
	tr, e := hufftree.Build(ft)
	eq(nil, e)
	eq(2, tr.Depth())

	buf := &bytes.Buffer{}
	w, _ := bitstream.NewWriter(buf, bitstream.MinBufferSize)
	eq(nil, tr.Serialize(w))
	codes := tr.Codes()
	eq(nil, codes['a'].Emit(w))
	// first bit of a two bit code
	eq(nil, w.WriteBit(codes['b'].Bit(0)))
	eq(nil, writeTrailer(w))
	eq(nil, w.Flush())

	out, e := decode(buf.Bytes())
	eq(true, errors.Is(e, ErrInvalidFormat))
	eq(true, bytes.HasPrefix([]byte("a"), out))
}

func TestTrailerAllPendingCounts(t *testing.T) {
	eq := mighty.Eq(t)
	for used := uint8(0); used < 8; used++ {
		buf := &bytes.Buffer{}
		w, _ := bitstream.NewWriter(buf, bitstream.MinBufferSize)
		eq(nil, w.WriteBits(0xFFFFFFFFFFFFFFFF, 16+used))
		eq(nil, writeTrailer(w))
		eq(nil, w.Flush())
		b := buf.Bytes()
		got, e := significantBits(int64(len(b)), b[len(b)-1])
		eq(nil, e)
		eq(int64(16+used), got)
	}
}

func TestBufferSizeOption(t *testing.T) {
	eq := mighty.Eq(t)
	out := &bytes.Buffer{}
	eq(true, errors.Is(Encode(strings.NewReader("ab"), out, WithBufferSize(1)), ErrAllocation))
	eq(true, errors.Is(Decode(strings.NewReader("ab"), out, WithBufferSize(-5)), ErrAllocation))
	eq(0, out.Len())
}

func TestTreeHook(t *testing.T) {
	eq := mighty.Eq(t)
	var enc, dec *hufftree.Tree
	out := encode(t, []byte("mississippi"), WithTreeHook(func(tr *hufftree.Tree) { enc = tr }))
	_, e := decode(out, WithTreeHook(func(tr *hufftree.Tree) { dec = tr }))
	eq(nil, e)
	eq(false, enc == nil || dec == nil)
	eq(enc.Leaves(), dec.Leaves())
	eq(4, dec.Leaves())
	eq(enc.Depth(), dec.Depth())

	called := false
	encode(t, []byte("sss"), WithTreeHook(func(*hufftree.Tree) { called = true }))
	eq(false, called)
}

func TestLogger(t *testing.T) {
	eq := mighty.Eq(t)
	log := &bytes.Buffer{}
	out := encode(t, []byte("logged"), WithLogger(logger.NewTo(log)))
	_, e := decode(out, WithLogger(logger.NewTo(log)))
	eq(nil, e)
	eq(true, strings.Contains(log.String(), "[INFO] encode: 5 leaves"))
	eq(true, strings.Contains(log.String(), "[INFO] decode: 5 leaves"))
}

// changing returns different content on every pass.
type changing struct {
	passes int
	r      *bytes.Reader
}

func (c *changing) Read(p []byte) (int, error) { return c.r.Read(p) }

func (c *changing) Seek(off int64, whence int) (int64, error) {
	c.passes++
	if c.passes > 1 {
		c.r = bytes.NewReader([]byte("abz"))
	}
	return c.r.Seek(off, whence)
}

func TestInputChangedBetweenPasses(t *testing.T) {
	neq := mighty.Neq(t)
	in := &changing{r: bytes.NewReader([]byte("abb"))}
	neq(nil, Encode(in, io.Discard))
}
