package gorocks

// errors.go implements the error bridge between the C API and Go.
//
// Every fallible C entry point takes a trailing char** that receives a
// malloc'd, null-terminated error message on failure. The bridge copies
// the message into a Go error and frees the native buffer. The error
// pointer is always inspected before any other output of the call.
//
// Reference: RocksDB include/rocksdb/c.h (errptr convention)

// #include <stdlib.h>
// #include "rocksdb/c.h"
import "C"

import (
	"errors"
	"unsafe"
)

var (
	// ErrPathEncoding is returned when a database path cannot be
	// converted to a C string because it contains a NUL byte.
	ErrPathEncoding = errors.New("gorocks: path contains a NUL byte")

	// ErrColumnFamilyNotFound is returned when an operation references a
	// column family name the database does not know.
	ErrColumnFamilyNotFound = errors.New("gorocks: column family not found")

	// ErrColumnFamilyMismatch is returned by OpenColumnFamilies when the
	// column family name and option lists have different lengths.
	ErrColumnFamilyMismatch = errors.New("gorocks: column family names and options count mismatch")

	// ErrNilHandle is returned when the engine produces a null database
	// or column family handle without reporting an error.
	ErrNilHandle = errors.New("gorocks: engine returned a nil handle")

	// ErrDatabaseClosed is returned when an operation is attempted on a
	// closed database.
	ErrDatabaseClosed = errors.New("gorocks: database is closed")
)

// convertErr turns a C error string into a Go error and releases the
// native buffer. A nil pointer means success and yields a nil error.
// The engine message is propagated verbatim.
func convertErr(cErr *C.char) error {
	if cErr == nil {
		return nil
	}
	err := errors.New(C.GoString(cErr))
	C.rocksdb_free(unsafe.Pointer(cErr))
	return err
}
