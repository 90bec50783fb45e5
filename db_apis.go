package gorocks

// db_apis.go implements extended DB APIs: approximate size queries,
// whole-file range deletion, and engine property lookup.
//
// Reference: RocksDB include/rocksdb/c.h
//   - rocksdb_approximate_sizes[_cf]
//   - rocksdb_delete_file_in_range[_cf]
//   - rocksdb_property_value[_cf]

// #include <stdlib.h>
// #include "rocksdb/c.h"
import "C"

import (
	"strconv"
	"unsafe"
)

// ApproximateSizes returns the estimated on-disk byte footprint of each
// half-open range. Only data already flushed to SST files is counted;
// the in-memory write buffer is ignored. Sizes measure file system
// usage, so compression shrinks them relative to user data.
func (db *DB) ApproximateSizes(ranges []Range) []uint64 {
	return db.approximateSizes(nil, ranges)
}

// ApproximateSizesCF is ApproximateSizes scoped to a column family.
func (db *DB) ApproximateSizesCF(cf *ColumnFamilyHandle, ranges []Range) []uint64 {
	return db.approximateSizes(cf, ranges)
}

// approximateSizes marshals the range endpoints into parallel C arrays.
// The keys are copied into C memory so no Go pointers cross the
// boundary inside the pointer arrays.
func (db *DB) approximateSizes(cf *ColumnFamilyHandle, ranges []Range) []uint64 {
	sizes := make([]uint64, len(ranges))
	if len(ranges) == 0 {
		return sizes
	}

	n := len(ranges)
	starts := make([]*C.char, n)
	startLens := make([]C.size_t, n)
	limits := make([]*C.char, n)
	limitLens := make([]C.size_t, n)
	for i, r := range ranges {
		starts[i] = (*C.char)(C.CBytes(r.Start))
		startLens[i] = C.size_t(len(r.Start))
		limits[i] = (*C.char)(C.CBytes(r.Limit))
		limitLens[i] = C.size_t(len(r.Limit))
	}
	defer func() {
		for i := range ranges {
			C.free(unsafe.Pointer(starts[i]))
			C.free(unsafe.Pointer(limits[i]))
		}
	}()

	cSizes := make([]C.uint64_t, n)
	var cErr *C.char
	if cf == nil {
		C.rocksdb_approximate_sizes(db.c, C.int(n),
			&starts[0], &startLens[0],
			&limits[0], &limitLens[0], &cSizes[0], &cErr)
	} else {
		C.rocksdb_approximate_sizes_cf(db.c, cf.c, C.int(n),
			&starts[0], &startLens[0],
			&limits[0], &limitLens[0], &cSizes[0], &cErr)
	}
	if cErr != nil {
		C.rocksdb_free(unsafe.Pointer(cErr))
	}
	for i, s := range cSizes {
		sizes[i] = uint64(s)
	}
	return sizes
}

// DeleteFileInRange asks the engine to drop whole SST files whose key
// spans fall entirely inside [start, limit). This is not a point
// delete: keys living in files that straddle the range boundaries
// survive.
func (db *DB) DeleteFileInRange(start, limit []byte) error {
	var cErr *C.char
	C.rocksdb_delete_file_in_range(db.c,
		byteToChar(start), C.size_t(len(start)),
		byteToChar(limit), C.size_t(len(limit)), &cErr)
	return convertErr(cErr)
}

// DeleteFileInRangeCF is DeleteFileInRange scoped to a column family.
func (db *DB) DeleteFileInRangeCF(cf *ColumnFamilyHandle, start, limit []byte) error {
	var cErr *C.char
	C.rocksdb_delete_file_in_range_cf(db.c, cf.c,
		byteToChar(start), C.size_t(len(start)),
		byteToChar(limit), C.size_t(len(limit)), &cErr)
	return convertErr(cErr)
}

// PropertyValue returns the string form of an engine property such as
// "rocksdb.stats". ok is false when the property does not exist.
func (db *DB) PropertyValue(name string) (value string, ok bool) {
	return db.propertyValue(nil, name)
}

// PropertyValueCF is PropertyValue scoped to a column family.
func (db *DB) PropertyValueCF(cf *ColumnFamilyHandle, name string) (value string, ok bool) {
	return db.propertyValue(cf, name)
}

// PropertyInt returns an integer engine property such as
// "rocksdb.total-sst-files-size". ok is false when the property does
// not exist or its string form is not a decimal unsigned integer.
func (db *DB) PropertyInt(name string) (value uint64, ok bool) {
	return db.propertyInt(nil, name)
}

// PropertyIntCF is PropertyInt scoped to a column family.
func (db *DB) PropertyIntCF(cf *ColumnFamilyHandle, name string) (value uint64, ok bool) {
	return db.propertyInt(cf, name)
}

func (db *DB) propertyValue(cf *ColumnFamilyHandle, name string) (string, bool) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	var v *C.char
	if cf == nil {
		v = C.rocksdb_property_value(db.c, cName)
	} else {
		v = C.rocksdb_property_value_cf(db.c, cf.c, cName)
	}
	if v == nil {
		return "", false
	}
	s := C.GoString(v)
	C.rocksdb_free(unsafe.Pointer(v))
	return s, true
}

func (db *DB) propertyInt(cf *ColumnFamilyHandle, name string) (uint64, bool) {
	s, ok := db.propertyValue(cf, name)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
