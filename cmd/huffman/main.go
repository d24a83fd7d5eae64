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

// Command huffman compresses and decompresses files with the huffcodec format.
//
//	huffman encode|decode [-p] [-v] [-b size] [INFILE [OUTFILE]]
//	huffman help
//
// A missing file name or "-" selects stdin or stdout.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/maxymania/huffman/bitstream"
	"github.com/maxymania/huffman/huffcodec"
	"github.com/maxymania/huffman/hufftree"
	"github.com/maxymania/huffman/logger"
	"github.com/pkg/errors"
)

const usage = `
Encodes and decodes data using huffman algorithm.

Usage:
 huffman encode|decode [flags] [INFILE [OUTFILE]]
 huffman help

Flags:
 -p       print the code tree (OUTFILE must not be stdout)
 -v       log statistics to stderr
 -b size  buffer size in bytes

Note:
 - may be used for stdin / stdout
 When omitting INFILE/OUTFILE, stdin/stdout is used
`

type codecFunc func(io.ReadSeeker, io.Writer, ...huffcodec.Option) error

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, "\nNot enough arguments\n", usage)
		return 1
	}
	var op codecFunc
	switch args[0] {
	case "help":
		fmt.Fprint(stdout, usage)
		return 0
	case "encode":
		op = huffcodec.Encode
	case "decode":
		op = huffcodec.Decode
	default:
		fmt.Fprint(stderr, usage)
		return 1
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(stderr)
	printTree := fs.Bool("p", false, "print the code tree")
	verbose := fs.Bool("v", false, "log statistics")
	bufSize := fs.Int("b", bitstream.DefaultBufferSize, "buffer size in bytes")
	if e := fs.Parse(args[1:]); e != nil {
		return 1
	}
	if fs.NArg() > 2 {
		fmt.Fprint(stderr, usage)
		return 1
	}
	inPath, outPath := "-", "-"
	if fs.NArg() > 0 {
		inPath = fs.Arg(0)
	}
	if fs.NArg() > 1 {
		outPath = fs.Arg(1)
	}

	log := logger.Discard
	if *verbose {
		log = logger.NewTo(stderr)
	}
	if *printTree && outPath == "-" {
		logger.NewTo(stderr).Errorf("-p needs an OUTFILE")
		return 1
	}

	opts := []huffcodec.Option{huffcodec.WithBufferSize(*bufSize), huffcodec.WithLogger(log)}
	if *printTree {
		opts = append(opts, huffcodec.WithTreeHook(func(t *hufftree.Tree) { t.Print() }))
	}

	if e := runFiles(op, inPath, outPath, stdin, stdout, opts); e != nil {
		logger.NewTo(stderr).Errorf("%s: %v", args[0], e)
		return 1
	}
	return 0
}

func runFiles(op codecFunc, inPath, outPath string, stdin io.Reader, stdout io.Writer, opts []huffcodec.Option) error {
	in, cleanup, e := openInput(inPath, stdin)
	if e != nil {
		return e
	}
	defer cleanup()

	if outPath == "-" {
		return op(in, stdout, opts...)
	}
	out, e := os.Create(outPath)
	if e != nil {
		return errors.Wrap(e, "can't open OUTFILE")
	}
	e = op(in, out, opts...)
	if e2 := out.Close(); e == nil {
		e = errors.WithStack(e2)
	}
	if e != nil {
		os.Remove(outPath)
	}
	return e
}

// openInput opens path for reading. Stdin can not seek, so it is spooled to a
// temporary file first.
func openInput(path string, stdin io.Reader) (io.ReadSeeker, func(), error) {
	if path != "-" {
		f, e := os.Open(path)
		if e != nil {
			return nil, nil, errors.Wrap(e, "can't open INFILE")
		}
		return f, func() { f.Close() }, nil
	}
	f, e := os.CreateTemp("", "huffman-stdin-*")
	if e != nil {
		return nil, nil, errors.WithStack(e)
	}
	cleanup := func() {
		f.Close()
		os.Remove(f.Name())
	}
	if _, e = io.Copy(f, stdin); e == nil {
		_, e = f.Seek(0, io.SeekStart)
	}
	if e != nil {
		cleanup()
		return nil, nil, errors.WithStack(e)
	}
	return f, cleanup, nil
}
