/*
Package gorocks provides Go bindings to the RocksDB C API.

The bindings wrap the stable C ABI exposed by librocksdb (rocksdb/c.h)
with typed, resource-safe Go objects: a DB facade, column family handles,
write batches, iterators, snapshots, and option builders. The storage
engine itself is an external collaborator; all persistence, compaction,
and recovery behavior is the engine's.

# Usage

For runnable examples, see the repository's examples directory. The examples
are written against the public API and are kept up-to-date as the API evolves.

# Concurrency

A DB instance is safe for concurrent use by multiple goroutines for all
read and write operations. Individual Iterator, Snapshot, and WriteBatch
instances are not safe for concurrent use; each goroutine should use its
own, though any of them may be handed off between goroutines.

# Resource management

Every object that wraps a native handle owns exactly one release routine:
Slice.Free, WriteBatch.Destroy, Iterator.Close, Snapshot.Release,
Options.Destroy, ReadOptions.Destroy, WriteOptions.Destroy, and DB.Close.
Iterators, snapshots, batches, and slices must all be released before the
DB they were created from is closed. DB.Close releases every column family
handle before closing the engine handle; this ordering is required by the
engine.

Reference: RocksDB include/rocksdb/c.h
*/
package gorocks
