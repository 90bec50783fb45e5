package gorocks

// util.go implements byte and pointer marshaling helpers shared by the
// bindings. Keys and values cross the C boundary as (char*, size_t)
// pairs; the helpers here keep the casts in one place.

// #include <stdlib.h>
// #include "rocksdb/c.h"
import "C"

import (
	"strings"
	"unsafe"
)

// byteToChar returns a pointer to the first byte of b, or nil for an
// empty slice. The C API accepts a null pointer with a zero length.
func byteToChar(b []byte) *C.char {
	if len(b) == 0 {
		return nil
	}
	return (*C.char)(unsafe.Pointer(&b[0]))
}

// charToByte copies n bytes of C memory into a fresh Go slice.
func charToByte(data *C.char, n C.size_t) []byte {
	if data == nil {
		return nil
	}
	return C.GoBytes(unsafe.Pointer(data), C.int(n))
}

// borrowedBytes views n bytes of C memory as a Go slice without copying.
// The returned slice is only valid while the native allocation is; the
// caller owns that contract.
func borrowedBytes(data *C.char, n C.size_t) []byte {
	if data == nil {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(data)), int(n))
}

// boolToUchar converts a Go bool to the unsigned char the C API uses for
// boolean options.
func boolToUchar(b bool) C.uchar {
	if b {
		return C.uchar(1)
	}
	return C.uchar(0)
}

// cPath converts a filesystem path to a C string. Paths containing NUL
// cannot be represented; the engine would silently truncate them.
// The caller must free the returned pointer.
func cPath(path string) (*C.char, error) {
	if strings.IndexByte(path, 0) >= 0 {
		return nil, ErrPathEncoding
	}
	return C.CString(path), nil
}
