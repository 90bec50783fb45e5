package gorocks

// iterator.go implements ordered traversal over a database or column
// family.
//
// An iterator starts unpositioned; any seek moves it to a key (valid)
// or off the range (invalid). Key and Value return memory owned by the
// native iterator, valid only until the next movement; KV and Pairs
// return owned copies.
//
// Reference: RocksDB include/rocksdb/c.h (rocksdb_iter_*)

// #include <stdlib.h>
// #include "rocksdb/c.h"
import "C"

import "iter"

// Iterator walks the keys of one column family in order under a
// read-options view. It is not safe for concurrent use. Close must be
// called before the owning DB is closed.
type Iterator struct {
	c  *C.rocksdb_iterator_t
	db *DB
}

// Iter returns an iterator over the default column family with default
// read options. The iterator is unpositioned; seek before reading.
func (db *DB) Iter() *Iterator {
	ro := NewReadOptions()
	defer ro.Destroy()
	return db.IterOpt(ro)
}

// IterOpt returns an iterator over the default column family with the
// given read options. The engine copies the options at creation, so the
// caller may destroy them afterwards; a bound snapshot must still
// outlive the iterator.
func (db *DB) IterOpt(ro *ReadOptions) *Iterator {
	return &Iterator{c: C.rocksdb_create_iterator(db.c, ro.c), db: db}
}

// IterCF returns an iterator scoped to a column family with default
// read options.
func (db *DB) IterCF(cf *ColumnFamilyHandle) *Iterator {
	ro := NewReadOptions()
	defer ro.Destroy()
	return db.IterCFOpt(cf, ro)
}

// IterCFOpt returns an iterator scoped to a column family with the
// given read options.
func (db *DB) IterCFOpt(cf *ColumnFamilyHandle, ro *ReadOptions) *Iterator {
	return &Iterator{c: C.rocksdb_create_iterator_cf(db.c, ro.c, cf.c), db: db}
}

// Valid reports whether the iterator is positioned on a key.
func (it *Iterator) Valid() bool {
	return C.rocksdb_iter_valid(it.c) != 0
}

// SeekToFirst positions at the first key and returns the new validity.
func (it *Iterator) SeekToFirst() bool {
	C.rocksdb_iter_seek_to_first(it.c)
	return it.Valid()
}

// SeekToLast positions at the last key and returns the new validity.
func (it *Iterator) SeekToLast() bool {
	C.rocksdb_iter_seek_to_last(it.c)
	return it.Valid()
}

// Seek positions at the smallest key >= key and returns the new
// validity.
func (it *Iterator) Seek(key []byte) bool {
	C.rocksdb_iter_seek(it.c, byteToChar(key), C.size_t(len(key)))
	return it.Valid()
}

// Next moves one key forward and returns the new validity.
func (it *Iterator) Next() bool {
	C.rocksdb_iter_next(it.c)
	return it.Valid()
}

// Prev moves one key backward and returns the new validity.
func (it *Iterator) Prev() bool {
	C.rocksdb_iter_prev(it.c)
	return it.Valid()
}

// Key returns the current key without copying. The slice is valid only
// until the next movement of the iterator. Calling Key on an invalid
// iterator is a programmer error and panics.
func (it *Iterator) Key() []byte {
	if !it.Valid() {
		panic("gorocks: Key called on invalid iterator")
	}
	var n C.size_t
	ptr := C.rocksdb_iter_key(it.c, &n)
	return borrowedBytes(ptr, n)
}

// Value returns the current value without copying, under the same
// contract as Key.
func (it *Iterator) Value() []byte {
	if !it.Valid() {
		panic("gorocks: Value called on invalid iterator")
	}
	var n C.size_t
	ptr := C.rocksdb_iter_value(it.c, &n)
	return borrowedBytes(ptr, n)
}

// KV returns owned copies of the current key and value, or ok=false
// when the iterator is invalid.
func (it *Iterator) KV() (key, value []byte, ok bool) {
	if !it.Valid() {
		return nil, nil, false
	}
	var kn, vn C.size_t
	k := C.rocksdb_iter_key(it.c, &kn)
	v := C.rocksdb_iter_value(it.c, &vn)
	return charToByte(k, kn), charToByte(v, vn), true
}

// Pairs yields owned (key, value) copies from the current position
// forward, advancing the iterator after each pair and stopping when it
// falls off the range. Seek before ranging:
//
//	it.SeekToFirst()
//	for k, v := range it.Pairs() {
//		...
//	}
func (it *Iterator) Pairs() iter.Seq2[[]byte, []byte] {
	return func(yield func([]byte, []byte) bool) {
		for {
			k, v, ok := it.KV()
			if !ok {
				return
			}
			if !yield(k, v) {
				return
			}
			it.Next()
		}
	}
}

// Close releases the native iterator. Borrowed Key/Value slices die
// with it. Idempotent.
func (it *Iterator) Close() {
	if it.c != nil {
		C.rocksdb_iter_destroy(it.c)
		it.c = nil
	}
}
