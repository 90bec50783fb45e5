package gorocks

// write_batch.go implements the WriteBatch API for atomic writes.
//
// Reference: RocksDB include/rocksdb/c.h (rocksdb_writebatch_*)

// #include <stdlib.h>
// #include "rocksdb/c.h"
import "C"

// WriteBatch accumulates an ordered sequence of put, merge, and delete
// operations to be committed atomically through DB.Write. Appending to a
// batch is local buffering and never fails; the operations return an
// error only to share the Writable surface with DB.
//
// A batch is single-use: DB.Write consumes it and releases the native
// resource. A batch that is never committed must be released with
// Destroy.
//
// Example:
//
//	wb := gorocks.NewWriteBatch()
//	wb.Put([]byte("key1"), []byte("value1"))
//	wb.Delete([]byte("key2"))
//	err := db.Write(wb) // wb is consumed
type WriteBatch struct {
	c *C.rocksdb_writebatch_t
}

// NewWriteBatch creates a new empty WriteBatch.
func NewWriteBatch() *WriteBatch {
	return &WriteBatch{c: C.rocksdb_writebatch_create()}
}

// Put queues a key-value pair.
func (wb *WriteBatch) Put(key, value []byte) error {
	C.rocksdb_writebatch_put(wb.c,
		byteToChar(key), C.size_t(len(key)),
		byteToChar(value), C.size_t(len(value)))
	return nil
}

// PutCF queues a key-value pair for a column family.
func (wb *WriteBatch) PutCF(cf *ColumnFamilyHandle, key, value []byte) error {
	C.rocksdb_writebatch_put_cf(wb.c, cf.c,
		byteToChar(key), C.size_t(len(key)),
		byteToChar(value), C.size_t(len(value)))
	return nil
}

// Merge queues a merge operand for a key.
func (wb *WriteBatch) Merge(key, value []byte) error {
	C.rocksdb_writebatch_merge(wb.c,
		byteToChar(key), C.size_t(len(key)),
		byteToChar(value), C.size_t(len(value)))
	return nil
}

// MergeCF queues a merge operand for a column family.
func (wb *WriteBatch) MergeCF(cf *ColumnFamilyHandle, key, value []byte) error {
	C.rocksdb_writebatch_merge_cf(wb.c, cf.c,
		byteToChar(key), C.size_t(len(key)),
		byteToChar(value), C.size_t(len(value)))
	return nil
}

// Delete queues a deletion for a key.
func (wb *WriteBatch) Delete(key []byte) error {
	C.rocksdb_writebatch_delete(wb.c,
		byteToChar(key), C.size_t(len(key)))
	return nil
}

// DeleteCF queues a deletion for a column family.
func (wb *WriteBatch) DeleteCF(cf *ColumnFamilyHandle, key []byte) error {
	C.rocksdb_writebatch_delete_cf(wb.c, cf.c,
		byteToChar(key), C.size_t(len(key)))
	return nil
}

// Count returns the number of queued operations.
func (wb *WriteBatch) Count() int {
	return int(C.rocksdb_writebatch_count(wb.c))
}

// IsEmpty reports whether no operations are queued.
func (wb *WriteBatch) IsEmpty() bool {
	return wb.Count() == 0
}

// Destroy releases the native batch. DB.Write calls it on every commit
// path; it is idempotent so an extra deferred Destroy is harmless.
func (wb *WriteBatch) Destroy() {
	if wb.c != nil {
		C.rocksdb_writebatch_destroy(wb.c)
		wb.c = nil
	}
}
