// Package zwrap gets the contents of a structure file into memory so it
// can be read more than once. Plain files are mapped with mmap. Gzipped
// files are mapped and then decompressed into a buffer. Upon calling
// Close, the mapping and then the underlying file are released.
package zwrap

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

var gzMagic = []byte{0x1f, 0x8b}

// Src is the contents of one file. Do not keep Bytes() after Close.
type Src struct {
	fp   *os.File
	mm   mmap.MMap
	data []byte
}

// IsGzip looks at the first two bytes.
func IsGzip(b []byte) bool { return bytes.HasPrefix(b, gzMagic) }

// Open opens fname and gets its contents. If the file cannot be mapped
// (pipes, /proc files) we fall back to reading it. The os.Open error is
// returned unchanged, so callers can check for fs.ErrNotExist or
// fs.ErrPermission.
func Open(fname string) (*Src, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	src := &Src{fp: fp}
	if err := src.fill(); err != nil {
		fp.Close()
		return nil, err
	}
	return src, nil
}

// fill maps or reads the file, then decompresses if necessary.
func (src *Src) fill() error {
	fi, err := src.fp.Stat()
	if err != nil {
		return err
	}
	if fi.IsDir() {
		return fmt.Errorf("%s is a directory", src.fp.Name())
	}
	if fi.Mode().IsRegular() && fi.Size() > 0 {
		if src.mm, err = mmap.Map(src.fp, mmap.RDONLY, 0); err == nil {
			src.data = src.mm
		}
	}
	if src.mm == nil { // Zero length, or mapping did not work
		if src.data, err = io.ReadAll(src.fp); err != nil {
			return err
		}
	}
	if IsGzip(src.data) {
		zrdr, err := gzip.NewReader(bytes.NewReader(src.data))
		if err != nil {
			return fmt.Errorf("gzip header in %s: %w", src.fp.Name(), err)
		}
		defer zrdr.Close()
		if src.data, err = io.ReadAll(zrdr); err != nil {
			return fmt.Errorf("decompressing %s: %w", src.fp.Name(), err)
		}
	}
	return nil
}

// Bytes returns the (decompressed) contents.
func (src *Src) Bytes() []byte { return src.data }

// Close unmaps, then closes the file. Both are tried even if the first
// fails.
func (src *Src) Close() error {
	var e1, e2 error
	if src.mm != nil {
		e1 = src.mm.Unmap()
		src.mm = nil
	}
	src.data = nil
	if src.fp != nil {
		e2 = src.fp.Close()
		src.fp = nil
	}
	return errors.Join(e1, e2)
}

// ReadAllMaybe reads everything from a stream that might be gzipped.
// It is for stdin, where we cannot map anything.
func ReadAllMaybe(r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !IsGzip(b) {
		return b, nil
	}
	zrdr, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer zrdr.Close()
	return io.ReadAll(zrdr)
}
