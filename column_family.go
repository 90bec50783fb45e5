package gorocks

// column_family.go implements column family management.
//
// Column families allow logically partitioning data within a single
// database. The DB owns the canonical handle for every column family in
// its map; a handle returned to a caller is a borrow that must not be
// used after the DB is closed.
//
// Reference: RocksDB include/rocksdb/c.h
//   - rocksdb_create_column_family
//   - rocksdb_drop_column_family
//   - rocksdb_column_family_handle_destroy

// #include <stdlib.h>
// #include "rocksdb/c.h"
import "C"

import (
	"fmt"
	"sort"
	"strings"
	"unsafe"
)

// ColumnFamilyHandle is an opaque reference to a column family within a
// database. The DB owns the native handle; callers must not use one
// after the DB is closed.
type ColumnFamilyHandle struct {
	c    *C.rocksdb_column_family_handle_t
	name string
}

// Name returns the column family name.
func (cf *ColumnFamilyHandle) Name() string {
	return cf.name
}

// CreateColumnFamily creates a new column family and adds it to the
// database's map. The engine error pointer is checked before the handle
// is recorded, so a failed create never leaves a stale map entry.
func (db *DB) CreateColumnFamily(opts *Options, name string) (*ColumnFamilyHandle, error) {
	if strings.IndexByte(name, 0) >= 0 {
		return nil, fmt.Errorf("gorocks: invalid column family name %q: %w", name, ErrPathEncoding)
	}
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	db.mu.Lock()
	defer db.mu.Unlock()
	if db.closed {
		return nil, ErrDatabaseClosed
	}

	var cErr *C.char
	h := C.rocksdb_create_column_family(db.c, opts.c, cName, &cErr)
	if err := convertErr(cErr); err != nil {
		return nil, err
	}
	if h == nil {
		return nil, fmt.Errorf("gorocks: received nil column family handle from engine: %w", ErrNilHandle)
	}

	cf := &ColumnFamilyHandle{c: h, name: name}
	db.cfs[name] = cf
	return cf, nil
}

// DropColumnFamily drops the named column family. The handle stays
// valid for reading data that existed before the drop and is released
// when the DB closes, per the engine contract.
func (db *DB) DropColumnFamily(name string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.closed {
		return ErrDatabaseClosed
	}
	cf, ok := db.cfs[name]
	if !ok {
		return fmt.Errorf("gorocks: invalid column family %q: %w", name, ErrColumnFamilyNotFound)
	}

	var cErr *C.char
	C.rocksdb_drop_column_family(db.c, cf.c, &cErr)
	return convertErr(cErr)
}

// ColumnFamily returns the handle for the named column family, or false
// when the database does not know the name. The handle is borrowed: it
// belongs to the DB and dies with it.
func (db *DB) ColumnFamily(name string) (*ColumnFamilyHandle, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	cf, ok := db.cfs[name]
	return cf, ok
}

// ListColumnFamilies returns the names of all column families, including
// "default", sorted ascending by byte value.
func (db *DB) ListColumnFamilies() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	names := make([]string, 0, len(db.cfs))
	for name := range db.cfs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListColumnFamilyNames reads the column family names recorded in the
// database at path without opening it. OpenColumnFamilies requires
// every existing column family to be listed; this is how a caller
// discovers them.
func ListColumnFamilyNames(opts *Options, path string) ([]string, error) {
	cpath, err := cPath(path)
	if err != nil {
		return nil, err
	}
	defer C.free(unsafe.Pointer(cpath))

	var n C.size_t
	var cErr *C.char
	cNames := C.rocksdb_list_column_families(opts.c, cpath, &n, &cErr)
	if err := convertErr(cErr); err != nil {
		return nil, err
	}
	defer C.rocksdb_list_column_families_destroy(cNames, n)

	names := make([]string, int(n))
	for i, cName := range unsafe.Slice(cNames, int(n)) {
		names[i] = C.GoString(cName)
	}
	return names, nil
}
