// db_apis_test.go implements tests for size approximation and
// whole-file range deletion.
package gorocks

import (
	"fmt"
	"testing"
)

// fillSequential writes the 4-digit zero-padded decimals of 1..n as both
// key and value.
func fillSequential(t *testing.T, db *DB, n int) {
	t.Helper()
	for i := 1; i < n; i++ {
		kv := fmt.Appendf(nil, "%04d", i)
		if err := db.Put(kv, kv); err != nil {
			t.Fatalf("Failed to put %s: %v", kv, err)
		}
	}
}

func TestApproximateSizes(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	fillSequential(t, db, 8000)
	if err := db.Flush(true); err != nil {
		t.Fatalf("Failed to flush: %v", err)
	}
	val, err := db.Get([]byte("0001"))
	if err != nil || val == nil {
		t.Fatalf("Expected 0001 to be present after flush, err=%v", err)
	}
	val.Free()
	if err := db.Flush(true); err != nil {
		t.Fatalf("Failed to flush: %v", err)
	}

	sizes := db.ApproximateSizes([]Range{
		NewRange([]byte("0000"), []byte("2000")),
		NewRange([]byte("2000"), []byte("4000")),
		NewRange([]byte("4000"), []byte("6000")),
		NewRange([]byte("6000"), []byte("8000")),
		NewRange([]byte("8000"), []byte("9999")),
	})
	if len(sizes) != 5 {
		t.Fatalf("Expected 5 sizes, got %d", len(sizes))
	}
	for i, s := range sizes[:4] {
		if s == 0 {
			t.Fatalf("Expected range %d to have a positive size", i)
		}
	}
	// Only flushed data counts, and nothing lives at or above 8000.
	if sizes[4] != 0 {
		t.Fatalf("Expected empty range to have size 0, got %d", sizes[4])
	}
}

func TestApproximateSizesEmpty(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	if sizes := db.ApproximateSizes(nil); len(sizes) != 0 {
		t.Fatalf("Expected no sizes for no ranges, got %v", sizes)
	}
}

func TestApproximateSizesCF(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	cfOpts := NewOptions()
	defer cfOpts.Destroy()
	cf, err := db.CreateColumnFamily(cfOpts, "sized")
	if err != nil {
		t.Fatalf("Failed to create column family: %v", err)
	}
	for i := range 100 {
		kv := fmt.Appendf(nil, "%04d", i)
		if err := db.PutCF(cf, kv, kv); err != nil {
			t.Fatalf("Failed to put: %v", err)
		}
	}

	// Nothing has been flushed in this column family, so the estimate
	// counts no on-disk data.
	sizes := db.ApproximateSizesCF(cf, []Range{NewRange([]byte("0000"), []byte("9999"))})
	if len(sizes) != 1 {
		t.Fatalf("Expected 1 size, got %d", len(sizes))
	}
}

func TestDeleteFileInRange(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	fillSequential(t, db, 2000)
	if err := db.Flush(true); err != nil {
		t.Fatalf("Failed to flush: %v", err)
	}

	if err := db.DeleteFileInRange([]byte("0000"), []byte("9999")); err != nil {
		t.Fatalf("Failed to delete files in range: %v", err)
	}

	// Dropping whole files is not a point delete; the operation only
	// guarantees that files entirely inside the range are gone.
	cf, _ := db.ColumnFamily(DefaultColumnFamilyName)
	if err := db.DeleteFileInRangeCF(cf, []byte("0000"), []byte("9999")); err != nil {
		t.Fatalf("Failed to delete files in range (cf): %v", err)
	}
}

func TestRangeOrderAsserted(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Expected reversed range to panic")
		}
	}()
	NewRange([]byte("b"), []byte("a"))
}

func TestRangeEqualEndpoints(t *testing.T) {
	r := NewRange([]byte("a"), []byte("a"))
	if string(r.Start) != "a" || string(r.Limit) != "a" {
		t.Fatal("Equal endpoints form a valid empty range")
	}
}
