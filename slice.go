package gorocks

// slice.go implements Slice, the owned value buffer returned by point
// reads, and Range, the half-open key range used for size approximation
// and file-range deletion.
//
// Reference: RocksDB include/rocksdb/c.h (rocksdb_get returns a malloc'd
// buffer the caller must free with rocksdb_free).

// #include <stdlib.h>
// #include "rocksdb/c.h"
import "C"

import (
	"bytes"
	"unicode/utf8"
	"unsafe"
)

// Slice owns a value buffer allocated by the engine. Data views the
// buffer without copying; Free releases it. A Slice must be freed
// exactly once and not used afterwards.
type Slice struct {
	data *C.char
	size C.size_t
}

// newSlice wraps a native (pointer, length) pair. The pointer must be
// non-nil; callers report a nil pointer as an absent value instead.
func newSlice(data *C.char, size C.size_t) *Slice {
	return &Slice{data: data, size: size}
}

// Data returns the value bytes without copying. The view is valid until
// Free is called.
func (s *Slice) Data() []byte {
	return borrowedBytes(s.data, s.size)
}

// Size returns the value length in bytes.
func (s *Slice) Size() int {
	return int(s.size)
}

// Copy returns an owned copy of the value bytes, valid after Free.
func (s *Slice) Copy() []byte {
	return charToByte(s.data, s.size)
}

// UTF8 decodes the value as UTF-8 text. ok is false when the bytes are
// not valid UTF-8; the value is still available through Data.
func (s *Slice) UTF8() (text string, ok bool) {
	b := s.Data()
	if !utf8.Valid(b) {
		return "", false
	}
	return string(b), true
}

// Free releases the native buffer. Safe to call on a nil receiver and
// idempotent, so it can sit in a defer next to error returns.
func (s *Slice) Free() {
	if s == nil || s.data == nil {
		return
	}
	C.rocksdb_free(unsafe.Pointer(s.data))
	s.data = nil
	s.size = 0
}

// Range is a half-open key range [Start, Limit): Start is included,
// Limit is not. Both keys are borrowed from the caller.
type Range struct {
	Start []byte
	Limit []byte
}

// NewRange builds a range and panics when start sorts after limit.
// A reversed range is a programmer error, matching the engine contract.
func NewRange(start, limit []byte) Range {
	if bytes.Compare(start, limit) > 0 {
		panic("gorocks: range start must not sort after limit")
	}
	return Range{Start: start, Limit: limit}
}
