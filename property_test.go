// property_test.go implements tests for engine property lookup.
package gorocks

import (
	"strconv"
	"testing"
)

func TestPropertyInt(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	if err := db.Put([]byte("a1"), []byte("v1")); err != nil {
		t.Fatalf("Failed to put: %v", err)
	}
	if err := db.Flush(true); err != nil {
		t.Fatalf("Failed to flush: %v", err)
	}

	const prop = "rocksdb.total-sst-files-size"
	st1, ok := db.PropertyInt(prop)
	if !ok {
		t.Fatalf("Expected property %s to exist", prop)
	}
	if st1 == 0 {
		t.Fatal("Expected positive SST size after flush")
	}

	if err := db.Put([]byte("a2"), []byte("v2")); err != nil {
		t.Fatalf("Failed to put: %v", err)
	}
	if err := db.Flush(true); err != nil {
		t.Fatalf("Failed to flush: %v", err)
	}
	st2, ok := db.PropertyInt(prop)
	if !ok {
		t.Fatalf("Expected property %s to exist", prop)
	}
	if st2 <= st1 {
		t.Fatalf("Expected SST size to grow, got %d then %d", st1, st2)
	}
}

func TestPropertyIntAgreesWithValue(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	if err := db.Put([]byte("k"), []byte("v")); err != nil {
		t.Fatalf("Failed to put: %v", err)
	}
	if err := db.Flush(true); err != nil {
		t.Fatalf("Failed to flush: %v", err)
	}

	const prop = "rocksdb.total-sst-files-size"
	s, ok := db.PropertyValue(prop)
	if !ok {
		t.Fatalf("Expected property %s to exist", prop)
	}
	parsed, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		t.Fatalf("Property string %q should parse as uint64: %v", s, err)
	}
	n, ok := db.PropertyInt(prop)
	if !ok {
		t.Fatalf("Expected integer property %s to exist", prop)
	}
	if n != parsed {
		t.Fatalf("PropertyInt %d disagrees with parsed PropertyValue %d", n, parsed)
	}
}

func TestPropertyMissing(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	if _, ok := db.PropertyValue("rocksdb.no-such-property"); ok {
		t.Fatal("Unknown property should report not ok")
	}
	if _, ok := db.PropertyInt("rocksdb.no-such-property"); ok {
		t.Fatal("Unknown integer property should report not ok")
	}

	// "rocksdb.stats" exists but is prose, not an integer.
	if _, ok := db.PropertyValue("rocksdb.stats"); !ok {
		t.Fatal("Expected rocksdb.stats to exist")
	}
	if _, ok := db.PropertyInt("rocksdb.stats"); ok {
		t.Fatal("Non-numeric property should not parse as integer")
	}
}

func TestPropertyCF(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	cfOpts := NewOptions()
	defer cfOpts.Destroy()
	cf, err := db.CreateColumnFamily(cfOpts, "props")
	if err != nil {
		t.Fatalf("Failed to create column family: %v", err)
	}

	if _, ok := db.PropertyValueCF(cf, "rocksdb.estimate-num-keys"); !ok {
		t.Fatal("Expected estimate-num-keys for column family")
	}
	if _, ok := db.PropertyIntCF(cf, "rocksdb.estimate-num-keys"); !ok {
		t.Fatal("Expected integer estimate-num-keys for column family")
	}
}
