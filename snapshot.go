package gorocks

// snapshot.go implements snapshot management.
//
// Snapshots provide consistent point-in-time views of the database.
// All reads through a snapshot see the database state at creation time.
// A snapshot is released against the DB that created it and must never
// outlive that DB.
//
// Reference: RocksDB include/rocksdb/c.h
//   - rocksdb_create_snapshot, rocksdb_release_snapshot
//   - rocksdb_readoptions_set_snapshot

// #include <stdlib.h>
// #include "rocksdb/c.h"
import "C"

// Snapshot is a point-in-time read view. It holds a non-owning
// reference to its DB and must be released before the DB is closed.
type Snapshot struct {
	db *DB
	c  *C.rocksdb_snapshot_t
}

// Snapshot captures the current version of the database.
func (db *DB) Snapshot() *Snapshot {
	return &Snapshot{db: db, c: C.rocksdb_create_snapshot(db.c)}
}

// Iter returns an iterator over the default column family pinned to the
// snapshot version.
func (s *Snapshot) Iter() *Iterator {
	ro := NewReadOptions()
	defer ro.Destroy()
	return s.IterOpt(ro)
}

// IterOpt binds the snapshot into the given read options and returns an
// iterator using them. The snapshot must outlive the iterator.
func (s *Snapshot) IterOpt(ro *ReadOptions) *Iterator {
	ro.SetSnapshot(s)
	return s.db.IterOpt(ro)
}

// Get reads a key at the snapshot version. The returned Slice is nil
// when the key was absent at the snapshot; a non-nil Slice must be
// freed by the caller.
func (s *Snapshot) Get(key []byte) (*Slice, error) {
	ro := NewReadOptions()
	defer ro.Destroy()
	ro.SetSnapshot(s)
	return s.db.GetOpt(key, ro)
}

// GetCF reads a key from a column family at the snapshot version.
func (s *Snapshot) GetCF(cf *ColumnFamilyHandle, key []byte) (*Slice, error) {
	ro := NewReadOptions()
	defer ro.Destroy()
	ro.SetSnapshot(s)
	return s.db.GetCFOpt(cf, key, ro)
}

// Release returns the snapshot to the owning DB. After Release the
// snapshot must not be used, including through read options it was
// bound to. Idempotent.
func (s *Snapshot) Release() {
	if s.c != nil {
		C.rocksdb_release_snapshot(s.db.c, s.c)
		s.c = nil
	}
}
