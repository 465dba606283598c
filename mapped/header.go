// SPDX-License-Identifier: MIT

package mapped

import (
	"reflect"
	"unsafe"

	"github.com/katalvlaran/lvmat/matrix"
)

// headerSize is the fixed prefix before the element buffer.
const headerSize = 64

// magic identifies a matrix file; the last byte is the format version.
var magic = [8]byte{'L', 'V', 'M', 'A', 'T', 0, 0, 1}

// header is written and read in native byte order through unsafe, so a file
// is only portable between machines of the same endianness.
type header struct {
	magic       [8]byte
	elemSize    uint32
	elemKind    uint8 // reflect.Kind of T
	packScheme  uint8
	order       uint8
	symmetry    uint8
	shapeScheme uint8
	_           [7]byte
	rows        int64
	cols        int64
	bandwidth   int64
	_           [16]byte
}

// compile-time size check
var _ [headerSize - unsafe.Sizeof(header{})]struct{}
var _ [unsafe.Sizeof(header{}) - headerSize]struct{}

func elemInfo[T matrix.Scalar]() (size uint32, kind uint8) {
	var zero T
	return uint32(unsafe.Sizeof(zero)), uint8(reflect.TypeFor[T]().Kind())
}

func newHeader[T matrix.Scalar](l matrix.Layout) header {
	size, kind := elemInfo[T]()

	return header{
		magic:       magic,
		elemSize:    size,
		elemKind:    kind,
		packScheme:  uint8(l.Packer.Scheme()),
		order:       uint8(l.Packer.Order()),
		symmetry:    uint8(l.Symmetry),
		shapeScheme: uint8(l.Shaper.Scheme()),
		rows:        int64(l.Rows()),
		cols:        int64(l.Cols()),
		bandwidth:   int64(l.Shaper.Bandwidth()),
	}
}

// fileSize is the exact size of a file holding n elements.
func (h header) fileSize(n int) int64 {
	return headerSize + int64(h.elemSize)*int64(n)
}

func (h *header) bytes() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(h)), headerSize)
}

func readHeader(b []byte) header {
	return *(*header)(unsafe.Pointer(&b[0]))
}

// sameLayout reports whether the recorded layout is the one kind yields.
func (h header) sameLayout(o header) bool {
	return h.packScheme == o.packScheme &&
		h.order == o.order &&
		h.symmetry == o.symmetry &&
		h.shapeScheme == o.shapeScheme &&
		h.bandwidth == o.bandwidth
}
