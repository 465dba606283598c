// SPDX-License-Identifier: MIT
// Package mapped: matrices whose buffer is a memory-mapped file.
//
// Purpose:
//   - Persist a matrix in its packed storage with no serialization step:
//     the file is a 64-byte header followed by the element buffer exactly
//     as the packer lays it out.
//   - Reopen it later (or from another process) and get a *matrix.Matrix
//     over the mapping, without copying.
//
// File layout:
//
//	[0, 64)        header: magic, element size and kind, packer scheme,
//	               ordering, symmetry, shape scheme, rows, cols, bandwidth
//	[64, 64+n*sz)  the StoredSize() elements of T, native byte order
//
// Concurrency:
//   - A File is not safe for concurrent use; the matrix it exposes follows
//     the rules of package matrix.

package mapped

import (
	"errors"
	"fmt"
	"os"
	"unsafe"

	"github.com/edsrzf/mmap-go"

	"github.com/katalvlaran/lvmat/matrix"
)

var (
	// ErrBadMagic indicates a file that is not a matrix file (or of another version).
	ErrBadMagic = errors.New("mapped: not a matrix file")

	// ErrElemMismatch indicates a file written with another element type.
	ErrElemMismatch = errors.New("mapped: element type mismatch")

	// ErrLayoutMismatch indicates a file written with another layout family.
	ErrLayoutMismatch = errors.New("mapped: layout mismatch")

	// ErrFileSize indicates a truncated or padded file.
	ErrFileSize = errors.New("mapped: file size does not match header")

	// ErrClosed indicates use of a File after Close.
	ErrClosed = errors.New("mapped: file is closed")
)

// File is a matrix backed by a memory-mapped file.
type File[T matrix.Scalar] struct {
	path     string
	file     *os.File
	data     mmap.MMap
	m        *matrix.Matrix[T]
	readOnly bool
}

// Create makes a new file at path holding a rows×cols matrix of kind,
// maps it read-write and applies opts as matrix.New would.
//
// Implementation:
//   - Stage 1: validate the layout (matrix.New with opts, which also yields
//     the initial values).
//   - Stage 2: create the file (it must not exist) and size it to
//     header + StoredSize elements.
//   - Stage 3: map it, write the header, copy the initial values, flush.
//
// Errors:
//   - matrix layout errors, os errors (os.ErrExist when path exists),
//     mmap errors.
func Create[T matrix.Scalar](path string, kind matrix.Kind, rows, cols int, opts ...matrix.Option) (*File[T], error) {
	src, err := matrix.New[T](kind, rows, cols, opts...)
	if err != nil {
		return nil, err
	}
	h := newHeader[T](src.Layout())
	n := len(src.Data())

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}
	if err = f.Truncate(h.fileSize(n)); err != nil {
		return nil, errors.Join(err, f.Close(), os.Remove(path))
	}
	data, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		return nil, errors.Join(err, f.Close(), os.Remove(path))
	}
	copy(data[:headerSize], h.bytes())

	mf := &File[T]{path: path, file: f, data: data}
	elems := mf.elements(n)
	copy(elems, src.Data())
	if mf.m, err = matrix.Wrap(kind, rows, cols, elems); err != nil {
		return nil, errors.Join(err, mf.Close())
	}
	if err = mf.Flush(); err != nil {
		return nil, errors.Join(err, mf.Close())
	}

	return mf, nil
}

// Open maps an existing matrix file read-write. The header must describe
// element type T and the layout family kind.
//
// Errors:
//   - ErrFileSize, ErrBadMagic, ErrElemMismatch, ErrLayoutMismatch (wrapped
//     with the path), os and mmap errors.
func Open[T matrix.Scalar](path string, kind matrix.Kind) (*File[T], error) {
	return open[T](path, kind, false)
}

// OpenReadOnly maps an existing matrix file copy-on-write: the matrix may be
// modified, but changes stay private to the process and never reach the file.
func OpenReadOnly[T matrix.Scalar](path string, kind matrix.Kind) (*File[T], error) {
	return open[T](path, kind, true)
}

func open[T matrix.Scalar](path string, kind matrix.Kind, readOnly bool) (*File[T], error) {
	flag, prot := os.O_RDWR, mmap.RDWR
	if readOnly {
		flag, prot = os.O_RDONLY, mmap.COPY
	}
	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		return nil, errors.Join(err, f.Close())
	}
	if info.Size() < headerSize {
		return nil, errors.Join(fmt.Errorf("mapped.Open(%s): %w", path, ErrFileSize), f.Close())
	}
	data, err := mmap.Map(f, prot, 0)
	if err != nil {
		return nil, errors.Join(err, f.Close())
	}

	mf := &File[T]{path: path, file: f, data: data, readOnly: readOnly}
	h := readHeader(data)
	n, err := validate[T](h, kind, info.Size())
	if err != nil {
		return nil, errors.Join(fmt.Errorf("mapped.Open(%s): %w", path, err), mf.Close())
	}
	if mf.m, err = matrix.Wrap(kind, int(h.rows), int(h.cols), mf.elements(n)); err != nil {
		return nil, errors.Join(err, mf.Close())
	}

	return mf, nil
}

// validate checks a header against T, kind and the file size, and returns
// the element count.
func validate[T matrix.Scalar](h header, kind matrix.Kind, size int64) (int, error) {
	if h.magic != magic {
		return 0, ErrBadMagic
	}
	if sz, k := elemInfo[T](); h.elemSize != sz || h.elemKind != k {
		return 0, ErrElemMismatch
	}
	if h.rows < 0 || h.cols < 0 {
		return 0, matrix.ErrInvalidDimensions
	}
	l := kind(int(h.rows), int(h.cols))
	if !h.sameLayout(newHeader[T](l)) {
		return 0, ErrLayoutMismatch
	}
	n := l.Packer.StoredSize()
	if h.fileSize(n) != size {
		return 0, ErrFileSize
	}

	return n, nil
}

// elements views the mapping after the header as n values of T.
func (f *File[T]) elements(n int) []T {
	if n == 0 {
		return []T{}
	}

	return unsafe.Slice((*T)(unsafe.Pointer(&f.data[headerSize])), n)
}

// Path returns the file path.
func (f *File[T]) Path() string { return f.path }

// ReadOnly reports whether changes stay private to the process.
func (f *File[T]) ReadOnly() bool { return f.readOnly }

// Matrix returns the matrix over the mapping (nil after Close).
func (f *File[T]) Matrix() *matrix.Matrix[T] { return f.m }

// Flush writes dirty pages back to the file. A no-op on read-only files.
func (f *File[T]) Flush() error {
	if f.data == nil {
		return ErrClosed
	}
	if f.readOnly {
		return nil
	}

	return f.data.Flush()
}

// Close flushes, unmaps and closes the file. The matrix must not be used
// afterwards. Closing twice returns ErrClosed.
func (f *File[T]) Close() error {
	if f.data == nil {
		return ErrClosed
	}
	flushErr := f.Flush()
	unmapErr := f.data.Unmap()
	f.data, f.m = nil, nil

	return errors.Join(flushErr, unmapErr, f.file.Close())
}
