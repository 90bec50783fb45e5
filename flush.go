package gorocks

// flush.go implements the flush operation that persists the in-memory
// write buffer to SST files.
//
// Reference: RocksDB include/rocksdb/c.h
//   - rocksdb_flush
//   - rocksdb_flushoptions_*

// #include <stdlib.h>
// #include "rocksdb/c.h"
import "C"

// Flush writes the memtable to stable storage. With sync true the call
// blocks until the flush completes. The transient flush-options handle
// is destroyed on every exit path.
//
// The C API flushes the default column family only.
func (db *DB) Flush(sync bool) error {
	fo := C.rocksdb_flushoptions_create()
	defer C.rocksdb_flushoptions_destroy(fo)
	C.rocksdb_flushoptions_set_wait(fo, boolToUchar(sync))

	var cErr *C.char
	C.rocksdb_flush(db.c, fo, &cErr)
	return convertErr(cErr)
}
