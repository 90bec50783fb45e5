package gorocks

// db.go implements the DB facade: open/close lifecycle, point
// operations, and atomic batch commits.
//
// The DB exclusively owns the engine handle and the column family map.
// Close releases every column family handle before closing the engine
// handle; every iterator, snapshot, batch, and slice created from the
// DB must be released before Close.
//
// Reference: RocksDB include/rocksdb/c.h
//   - rocksdb_open_column_families, rocksdb_close
//   - rocksdb_put/get/merge/delete (+ _cf variants)
//   - rocksdb_write

// #include <stdlib.h>
// #include "rocksdb/c.h"
import "C"

import (
	"fmt"
	"os"
	"slices"
	"sync"
	"unsafe"
)

// DefaultColumnFamilyName is the name of the default column family.
// It is always present after a successful open.
const DefaultColumnFamilyName = "default"

// DB is a handle to an open database. It is safe for concurrent use by
// multiple goroutines for all read and write operations.
type DB struct {
	c    *C.rocksdb_t
	path string

	mu     sync.RWMutex
	cfs    map[string]*ColumnFamilyHandle
	closed bool
}

// OpenDefault opens the database at path with create-if-missing set,
// matching the engine's simplest open path.
func OpenDefault(path string) (*DB, error) {
	opts := NewOptions()
	defer opts.Destroy()
	opts.SetCreateIfMissing(true)
	return Open(opts, path)
}

// Open opens the database at path with the given options and only the
// default column family.
func Open(opts *Options, path string) (*DB, error) {
	return OpenColumnFamilies(opts, path, nil, nil)
}

// OpenColumnFamilies opens the database at path with the named column
// families. cfNames and cfOpts must have equal length; every column
// family that exists in the database must be listed. The default column
// family is appended with the database options when absent from the
// list. The directory is created if it does not exist.
func OpenColumnFamilies(opts *Options, path string, cfNames []string, cfOpts []*Options) (*DB, error) {
	cpath, err := cPath(path)
	if err != nil {
		return nil, err
	}
	defer C.free(unsafe.Pointer(cpath))

	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("gorocks: failed to create database directory: %w", err)
	}

	if len(cfNames) != len(cfOpts) {
		return nil, ErrColumnFamilyMismatch
	}

	names := slices.Clone(cfNames)
	optsList := slices.Clone(cfOpts)
	// The default column family is always opened.
	if !slices.Contains(names, DefaultColumnFamilyName) {
		names = append(names, DefaultColumnFamilyName)
		optsList = append(optsList, opts)
	}

	num := len(names)
	cNames := make([]*C.char, num)
	for i, name := range names {
		cNames[i] = C.CString(name)
	}
	defer func() {
		for _, cName := range cNames {
			C.free(unsafe.Pointer(cName))
		}
	}()

	cCFOpts := make([]*C.rocksdb_options_t, num)
	for i, o := range optsList {
		cCFOpts[i] = o.c
	}
	cHandles := make([]*C.rocksdb_column_family_handle_t, num)

	var cErr *C.char
	cdb := C.rocksdb_open_column_families(
		opts.c, cpath, C.int(num),
		&cNames[0], &cCFOpts[0], &cHandles[0], &cErr)
	if err := convertErr(cErr); err != nil {
		return nil, err
	}

	// The engine reported success; a nil handle here means the open is
	// unusable. Release whatever was produced before failing.
	for _, h := range cHandles {
		if h == nil {
			for _, other := range cHandles {
				if other != nil {
					C.rocksdb_column_family_handle_destroy(other)
				}
			}
			if cdb != nil {
				C.rocksdb_close(cdb)
			}
			return nil, fmt.Errorf("gorocks: received nil column family handle from engine: %w", ErrNilHandle)
		}
	}
	if cdb == nil {
		for _, h := range cHandles {
			C.rocksdb_column_family_handle_destroy(h)
		}
		return nil, fmt.Errorf("gorocks: could not initialize database: %w", ErrNilHandle)
	}

	cfs := make(map[string]*ColumnFamilyHandle, num)
	for i, name := range names {
		cfs[name] = &ColumnFamilyHandle{c: cHandles[i], name: name}
	}

	return &DB{c: cdb, path: path, cfs: cfs}, nil
}

// DestroyDatabase removes the database at path entirely. It fails when
// another handle still holds the database lock.
func DestroyDatabase(opts *Options, path string) error {
	cpath, err := cPath(path)
	if err != nil {
		return err
	}
	defer C.free(unsafe.Pointer(cpath))

	var cErr *C.char
	C.rocksdb_destroy_db(opts.c, cpath, &cErr)
	return convertErr(cErr)
}

// RepairDatabase attempts to recover as much data as possible from a
// database that cannot be opened.
func RepairDatabase(opts *Options, path string) error {
	cpath, err := cPath(path)
	if err != nil {
		return err
	}
	defer C.free(unsafe.Pointer(cpath))

	var cErr *C.char
	C.rocksdb_repair_db(opts.c, cpath, &cErr)
	return convertErr(cErr)
}

// Path returns the filesystem path the database was opened at.
func (db *DB) Path() string {
	return db.path
}

// Close releases every column family handle and then the engine handle.
// The ordering is required by the engine. Close must not run while any
// operation, iterator, snapshot, or batch created from this DB is still
// live. Close is idempotent.
func (db *DB) Close() {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.closed {
		return
	}
	db.closed = true
	for _, cf := range db.cfs {
		C.rocksdb_column_family_handle_destroy(cf.c)
		cf.c = nil
	}
	db.cfs = nil
	C.rocksdb_close(db.c)
	db.c = nil
}

// PutOpt stores a key-value pair with the given write options.
func (db *DB) PutOpt(key, value []byte, wo *WriteOptions) error {
	var cErr *C.char
	C.rocksdb_put(db.c, wo.c,
		byteToChar(key), C.size_t(len(key)),
		byteToChar(value), C.size_t(len(value)), &cErr)
	return convertErr(cErr)
}

// PutCFOpt stores a key-value pair in a column family with the given
// write options.
func (db *DB) PutCFOpt(cf *ColumnFamilyHandle, key, value []byte, wo *WriteOptions) error {
	var cErr *C.char
	C.rocksdb_put_cf(db.c, wo.c, cf.c,
		byteToChar(key), C.size_t(len(key)),
		byteToChar(value), C.size_t(len(value)), &cErr)
	return convertErr(cErr)
}

// MergeOpt queues a merge operand for a key with the given write
// options. The engine resolves operands lazily at read time against the
// configured merge operator.
func (db *DB) MergeOpt(key, value []byte, wo *WriteOptions) error {
	var cErr *C.char
	C.rocksdb_merge(db.c, wo.c,
		byteToChar(key), C.size_t(len(key)),
		byteToChar(value), C.size_t(len(value)), &cErr)
	return convertErr(cErr)
}

// MergeCFOpt queues a merge operand in a column family.
func (db *DB) MergeCFOpt(cf *ColumnFamilyHandle, key, value []byte, wo *WriteOptions) error {
	var cErr *C.char
	C.rocksdb_merge_cf(db.c, wo.c, cf.c,
		byteToChar(key), C.size_t(len(key)),
		byteToChar(value), C.size_t(len(value)), &cErr)
	return convertErr(cErr)
}

// DeleteOpt removes a key with the given write options.
func (db *DB) DeleteOpt(key []byte, wo *WriteOptions) error {
	var cErr *C.char
	C.rocksdb_delete(db.c, wo.c,
		byteToChar(key), C.size_t(len(key)), &cErr)
	return convertErr(cErr)
}

// DeleteCFOpt removes a key from a column family.
func (db *DB) DeleteCFOpt(cf *ColumnFamilyHandle, key []byte, wo *WriteOptions) error {
	var cErr *C.char
	C.rocksdb_delete_cf(db.c, wo.c, cf.c,
		byteToChar(key), C.size_t(len(key)), &cErr)
	return convertErr(cErr)
}

// GetOpt reads a key with the given read options. The returned Slice is
// nil when the key is absent; a non-nil Slice must be freed by the
// caller.
func (db *DB) GetOpt(key []byte, ro *ReadOptions) (*Slice, error) {
	var cErr *C.char
	var vLen C.size_t
	v := C.rocksdb_get(db.c, ro.c,
		byteToChar(key), C.size_t(len(key)), &vLen, &cErr)
	if err := convertErr(cErr); err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return newSlice(v, vLen), nil
}

// Get reads a key with default read options.
func (db *DB) Get(key []byte) (*Slice, error) {
	ro := NewReadOptions()
	defer ro.Destroy()
	return db.GetOpt(key, ro)
}

// GetCFOpt reads a key from a column family with the given read options.
func (db *DB) GetCFOpt(cf *ColumnFamilyHandle, key []byte, ro *ReadOptions) (*Slice, error) {
	var cErr *C.char
	var vLen C.size_t
	v := C.rocksdb_get_cf(db.c, ro.c, cf.c,
		byteToChar(key), C.size_t(len(key)), &vLen, &cErr)
	if err := convertErr(cErr); err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return newSlice(v, vLen), nil
}

// GetCF reads a key from a column family with default read options.
func (db *DB) GetCF(cf *ColumnFamilyHandle, key []byte) (*Slice, error) {
	ro := NewReadOptions()
	defer ro.Destroy()
	return db.GetCFOpt(cf, key, ro)
}

// WriteOpt commits a batch atomically with the given write options. The
// batch is consumed: its native resource is released on every return
// path and the batch must not be used afterwards.
func (db *DB) WriteOpt(batch *WriteBatch, wo *WriteOptions) error {
	defer batch.Destroy()
	var cErr *C.char
	C.rocksdb_write(db.c, wo.c, batch.c, &cErr)
	return convertErr(cErr)
}

// Write commits a batch atomically with default write options,
// consuming the batch.
func (db *DB) Write(batch *WriteBatch) error {
	wo := NewWriteOptions()
	defer wo.Destroy()
	return db.WriteOpt(batch, wo)
}

// WriteWithoutWAL commits a batch atomically with the write-ahead log
// disabled, consuming the batch. The commit is not durable until the
// memtable is flushed.
func (db *DB) WriteWithoutWAL(batch *WriteBatch) error {
	wo := NewWriteOptions()
	defer wo.Destroy()
	wo.DisableWAL(true)
	return db.WriteOpt(batch, wo)
}
