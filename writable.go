package gorocks

// writable.go defines the write vocabulary shared by the DB facade and
// WriteBatch. Callers that only append writes can code to the
// capability instead of the concrete type, and the same routine can
// target direct writes or a batch.

// Writable is the set of write operations common to *DB and
// *WriteBatch. DB applies each operation immediately with default write
// options; WriteBatch buffers them until the batch is committed.
type Writable interface {
	Put(key, value []byte) error
	PutCF(cf *ColumnFamilyHandle, key, value []byte) error
	Merge(key, value []byte) error
	MergeCF(cf *ColumnFamilyHandle, key, value []byte) error
	Delete(key []byte) error
	DeleteCF(cf *ColumnFamilyHandle, key []byte) error
}

var (
	_ Writable = (*DB)(nil)
	_ Writable = (*WriteBatch)(nil)
)

// Put stores a key-value pair with default write options.
func (db *DB) Put(key, value []byte) error {
	wo := NewWriteOptions()
	defer wo.Destroy()
	return db.PutOpt(key, value, wo)
}

// PutCF stores a key-value pair in a column family with default write
// options.
func (db *DB) PutCF(cf *ColumnFamilyHandle, key, value []byte) error {
	wo := NewWriteOptions()
	defer wo.Destroy()
	return db.PutCFOpt(cf, key, value, wo)
}

// Merge queues a merge operand with default write options.
func (db *DB) Merge(key, value []byte) error {
	wo := NewWriteOptions()
	defer wo.Destroy()
	return db.MergeOpt(key, value, wo)
}

// MergeCF queues a merge operand in a column family with default write
// options.
func (db *DB) MergeCF(cf *ColumnFamilyHandle, key, value []byte) error {
	wo := NewWriteOptions()
	defer wo.Destroy()
	return db.MergeCFOpt(cf, key, value, wo)
}

// Delete removes a key with default write options.
func (db *DB) Delete(key []byte) error {
	wo := NewWriteOptions()
	defer wo.Destroy()
	return db.DeleteOpt(key, wo)
}

// DeleteCF removes a key from a column family with default write
// options.
func (db *DB) DeleteCF(cf *ColumnFamilyHandle, key []byte) error {
	wo := NewWriteOptions()
	defer wo.Destroy()
	return db.DeleteCFOpt(cf, key, wo)
}
