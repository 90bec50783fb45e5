package gorocks

// options.go implements the option handle wrappers.
//
// Options, ReadOptions, and WriteOptions are opaque native handles. Only
// the setters the core operations themselves need are exposed; the full
// engine tuning surface is out of scope for the binding.
//
// Reference: RocksDB include/rocksdb/c.h
//   - rocksdb_options_*
//   - rocksdb_readoptions_*
//   - rocksdb_writeoptions_*

// #include <stdlib.h>
// #include "rocksdb/c.h"
import "C"

// Options holds database and column family options.
// Options are not safe for concurrent mutation.
type Options struct {
	c *C.rocksdb_options_t
}

// NewOptions creates a new option handle with engine defaults.
func NewOptions() *Options {
	return &Options{c: C.rocksdb_options_create()}
}

// SetCreateIfMissing controls whether opening a missing database creates it.
func (o *Options) SetCreateIfMissing(value bool) {
	C.rocksdb_options_set_create_if_missing(o.c, boolToUchar(value))
}

// SetErrorIfExists makes Open fail when the database already exists.
func (o *Options) SetErrorIfExists(value bool) {
	C.rocksdb_options_set_error_if_exists(o.c, boolToUchar(value))
}

// Destroy releases the native option handle.
// The handle must not be used afterwards.
func (o *Options) Destroy() {
	if o.c != nil {
		C.rocksdb_options_destroy(o.c)
		o.c = nil
	}
}

// ReadOptions configures a single read or iteration.
type ReadOptions struct {
	c *C.rocksdb_readoptions_t
}

// NewReadOptions creates read options with engine defaults.
func NewReadOptions() *ReadOptions {
	return &ReadOptions{c: C.rocksdb_readoptions_create()}
}

// SetFillCache controls whether blocks read for this request are loaded
// into the block cache. Bulk scans typically disable it.
func (ro *ReadOptions) SetFillCache(value bool) {
	C.rocksdb_readoptions_set_fill_cache(ro.c, boolToUchar(value))
}

// SetSnapshot binds reads through these options to a snapshot version.
// The snapshot must stay unreleased for as long as any read uses these
// options; the binding cannot check that.
func (ro *ReadOptions) SetSnapshot(snap *Snapshot) {
	C.rocksdb_readoptions_set_snapshot(ro.c, snap.c)
}

// Destroy releases the native read option handle.
func (ro *ReadOptions) Destroy() {
	if ro.c != nil {
		C.rocksdb_readoptions_destroy(ro.c)
		ro.c = nil
	}
}

// WriteOptions configures a single write or batch commit.
type WriteOptions struct {
	c *C.rocksdb_writeoptions_t
}

// NewWriteOptions creates write options with engine defaults. Whether
// the default syncs the WAL is engine-defined and not overridden here.
func NewWriteOptions() *WriteOptions {
	return &WriteOptions{c: C.rocksdb_writeoptions_create()}
}

// SetSync forces an fsync of the WAL before the write is acknowledged.
func (wo *WriteOptions) SetSync(value bool) {
	C.rocksdb_writeoptions_set_sync(wo.c, boolToUchar(value))
}

// DisableWAL skips the write-ahead log for writes through these options.
// Unflushed data is lost on crash.
func (wo *WriteOptions) DisableWAL(disable bool) {
	C.rocksdb_writeoptions_disable_WAL(wo.c, C.int(boolToUchar(disable)))
}

// Destroy releases the native write option handle.
func (wo *WriteOptions) Destroy() {
	if wo.c != nil {
		C.rocksdb_writeoptions_destroy(wo.c)
		wo.c = nil
	}
}
