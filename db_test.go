// db_test.go implements tests for the DB facade.
package gorocks

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

// openTestDB opens a fresh database under a test temp dir.
func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDefault(filepath.Join(t.TempDir(), "testdb"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	return db
}

func TestExternalRoundTrip(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	if err := db.Put([]byte("k1"), []byte("v1111")); err != nil {
		t.Fatalf("Failed to put: %v", err)
	}

	val, err := db.Get([]byte("k1"))
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if val == nil {
		t.Fatal("Expected value, got absent")
	}
	if s, ok := val.UTF8(); !ok || s != "v1111" {
		t.Fatalf("Expected 'v1111', got %q (ok=%v)", s, ok)
	}
	val.Free()

	if err := db.Delete([]byte("k1")); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	val, err = db.Get([]byte("k1"))
	if err != nil {
		t.Fatalf("Failed to get after delete: %v", err)
	}
	if val != nil {
		val.Free()
		t.Fatal("Expected absent value after delete")
	}
}

func TestDestroyLockedDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lockeddb")
	db, err := OpenDefault(path)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	opts := NewOptions()
	defer opts.Destroy()

	// The DB is still open, so destroy must fail on the database lock.
	err = DestroyDatabase(opts, path)
	if err == nil {
		t.Fatal("Expected destroy of an open database to fail")
	}
	if !strings.Contains(err.Error(), "LOCK") {
		t.Fatalf("Expected a lock error, got: %v", err)
	}
}

func TestDestroyClosedDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "destroydb")
	db, err := OpenDefault(path)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	if err := db.Put([]byte("k1"), []byte("v1")); err != nil {
		t.Fatalf("Failed to put: %v", err)
	}
	db.Close()

	opts := NewOptions()
	defer opts.Destroy()
	if err := DestroyDatabase(opts, path); err != nil {
		t.Fatalf("Failed to destroy closed database: %v", err)
	}
}

func TestOpenPathWithNulByte(t *testing.T) {
	_, err := OpenDefault("bad\x00path")
	if !errors.Is(err, ErrPathEncoding) {
		t.Fatalf("Expected ErrPathEncoding, got: %v", err)
	}
}

func TestOpenColumnFamiliesMismatch(t *testing.T) {
	opts := NewOptions()
	defer opts.Destroy()
	opts.SetCreateIfMissing(true)

	_, err := OpenColumnFamilies(opts, filepath.Join(t.TempDir(), "db"),
		[]string{"cf1"}, nil)
	if !errors.Is(err, ErrColumnFamilyMismatch) {
		t.Fatalf("Expected ErrColumnFamilyMismatch, got: %v", err)
	}
}

func TestDBPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pathdb")
	db, err := OpenDefault(path)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if db.Path() != path {
		t.Fatalf("Expected path %q, got %q", path, db.Path())
	}
}

func TestWriteWithoutWAL(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	wb := NewWriteBatch()
	wb.Put([]byte("k1"), []byte("v1"))
	if err := db.WriteWithoutWAL(wb); err != nil {
		t.Fatalf("Failed to write without WAL: %v", err)
	}

	val, err := db.Get([]byte("k1"))
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if val == nil {
		t.Fatal("Expected value written without WAL to be readable")
	}
	val.Free()
}

func TestSliceNonUTF8Value(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	raw := []byte{0xff, 0xfe, 0x00, 0x41}
	if err := db.Put([]byte("bin"), raw); err != nil {
		t.Fatalf("Failed to put: %v", err)
	}

	val, err := db.Get([]byte("bin"))
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	defer val.Free()

	if _, ok := val.UTF8(); ok {
		t.Fatal("Expected UTF8 decode of binary value to fail")
	}
	if got := val.Data(); len(got) != len(raw) {
		t.Fatalf("Expected %d bytes, got %d", len(raw), len(got))
	}
	if val.Size() != len(raw) {
		t.Fatalf("Expected size %d, got %d", len(raw), val.Size())
	}
	clone := val.Copy()
	val.Free() // idempotent with the deferred Free
	if string(clone) != string(raw) {
		t.Fatal("Copy must stay valid after Free")
	}
}

func TestConcurrentReadsAndWrites(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	done := make(chan error, 8)
	for g := range 4 {
		go func() {
			for i := range 100 {
				key := []byte{byte('a' + g), byte(i)}
				if err := db.Put(key, []byte("v")); err != nil {
					done <- err
					return
				}
			}
			done <- nil
		}()
		go func() {
			for i := range 100 {
				key := []byte{byte('a' + g), byte(i)}
				val, err := db.Get(key)
				if err != nil {
					done <- err
					return
				}
				val.Free()
			}
			done <- nil
		}()
	}
	for range 8 {
		if err := <-done; err != nil {
			t.Fatalf("Concurrent operation failed: %v", err)
		}
	}
}
