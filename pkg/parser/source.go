package parser

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// maxLineSize bounds a single log line. Longer lines are skipped as
// unparseable.
const maxLineSize = 1024 * 1024

// Open opens a log file for reading. Gzip and zstd compressed files are
// detected by their magic bytes and decompressed transparently.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	br := bufio.NewReader(f)
	// Short files return fewer bytes with io.EOF, which is fine here.
	head, _ := br.Peek(len(zstdMagic))

	switch {
	case bytes.HasPrefix(head, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("reading gzip header of %s: %w", path, err)
		}
		return &source{Reader: zr, closers: []func() error{zr.Close, f.Close}}, nil

	case bytes.HasPrefix(head, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("reading zstd frame of %s: %w", path, err)
		}
		return &source{Reader: zr, closers: []func() error{closeNoErr(zr.Close), f.Close}}, nil

	default:
		return &source{Reader: br, closers: []func() error{f.Close}}, nil
	}
}

// source couples a (possibly decompressing) reader with the resources
// that must be released behind it.
type source struct {
	io.Reader
	closers []func() error
}

func (s *source) Close() error {
	var firstErr error
	for _, c := range s.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func closeNoErr(fn func()) func() error {
	return func() error {
		fn()
		return nil
	}
}

// lineReader yields lines without their terminator ("\n" or "\r\n").
// Lines longer than maxLineSize are still yielded, flagged TooLong and
// with their content dropped, so one huge line never fails a read.
type lineReader struct {
	br      *bufio.Reader
	line    []byte
	tooLong bool
	err     error
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{br: bufio.NewReaderSize(r, 64*1024)}
}

// Next advances to the next line and reports whether there is one.
func (lr *lineReader) Next() bool {
	lr.line = lr.line[:0]
	lr.tooLong = false

	sawData := false
	for {
		chunk, err := lr.br.ReadSlice('\n')
		if len(chunk) > 0 {
			sawData = true
			if !lr.tooLong {
				// +2 leaves room for a "\r\n" terminator.
				if len(lr.line)+len(chunk) > maxLineSize+2 {
					lr.tooLong = true
					lr.line = lr.line[:0]
				} else {
					lr.line = append(lr.line, chunk...)
				}
			}
		}

		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if errors.Is(err, io.EOF) {
			if !sawData {
				return false
			}
			break
		}
		if err != nil {
			lr.err = err
			return false
		}
		break
	}

	if !lr.tooLong {
		lr.line = bytes.TrimSuffix(lr.line, []byte("\n"))
		lr.line = bytes.TrimSuffix(lr.line, []byte("\r"))
		if len(lr.line) > maxLineSize {
			lr.tooLong = true
			lr.line = lr.line[:0]
		}
	}
	return true
}

// Text returns the current line. It is empty for oversized lines.
func (lr *lineReader) Text() string {
	return string(lr.line)
}

// TooLong reports whether the current line exceeded maxLineSize.
func (lr *lineReader) TooLong() bool {
	return lr.tooLong
}

// Err returns the first non-EOF read error.
func (lr *lineReader) Err() error {
	return lr.err
}
