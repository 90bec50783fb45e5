package gorocks

// archive.go implements portable dump and restore of a column family.
//
// An archive is a framed stream of key-value records taken from a
// consistent snapshot:
//
//	magic (8 bytes) | codec (1 byte)
//	-- compressed from here on --
//	{ 0x01 | uvarint klen | key | uvarint vlen | value }*
//	0x00 | xxh3-64 of everything between the header and the end marker
//
// Archives are meant for moving data between databases, not for
// in-place backup; restoring replays the records through write batches
// against a live database.

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/zeebo/xxh3"
)

// Codec selects the compression applied to an archive stream.
type Codec uint8

const (
	// CodecNone stores records uncompressed.
	CodecNone Codec = iota
	// CodecSnappy uses Google Snappy framing.
	CodecSnappy
	// CodecLZ4 uses the LZ4 frame format.
	CodecLZ4
	// CodecZstd uses Zstandard.
	CodecZstd
)

// String returns the codec name as accepted by ParseCodec.
func (c Codec) String() string {
	switch c {
	case CodecNone:
		return "none"
	case CodecSnappy:
		return "snappy"
	case CodecLZ4:
		return "lz4"
	case CodecZstd:
		return "zstd"
	default:
		return fmt.Sprintf("Codec(%d)", uint8(c))
	}
}

// ParseCodec converts a codec name to a Codec.
func ParseCodec(s string) (Codec, error) {
	switch s {
	case "none", "":
		return CodecNone, nil
	case "snappy":
		return CodecSnappy, nil
	case "lz4":
		return CodecLZ4, nil
	case "zstd":
		return CodecZstd, nil
	default:
		return CodecNone, fmt.Errorf("gorocks: unknown archive codec %q", s)
	}
}

// ErrCorruptArchive is returned when an archive stream fails structural
// or checksum validation.
var ErrCorruptArchive = errors.New("gorocks: corrupt archive")

var archiveMagic = [8]byte{'G', 'R', 'K', 'A', 'R', 'C', 'H', '1'}

const (
	archiveTagPair = 0x01
	archiveTagEnd  = 0x00

	// maxArchiveRecordLen bounds a single key or value so a corrupt
	// length prefix cannot trigger a huge allocation.
	maxArchiveRecordLen = 1 << 30

	defaultRestoreBatchSize = 1000
)

// DumpOptions configures DumpArchive.
type DumpOptions struct {
	// Codec is the stream compression. Zero value is CodecNone.
	Codec Codec
	// CF selects the column family to dump; nil means default.
	CF *ColumnFamilyHandle
}

// RestoreOptions configures RestoreArchive.
type RestoreOptions struct {
	// CF selects the column family to restore into; nil means default.
	CF *ColumnFamilyHandle
	// BatchSize is the number of records committed per write batch.
	// Zero means 1000.
	BatchSize int
}

// DumpArchive streams every key-value pair of one column family to w,
// read from a snapshot taken at call time. It returns the number of
// records written.
func (db *DB) DumpArchive(w io.Writer, opts DumpOptions) (int, error) {
	snap := db.Snapshot()
	defer snap.Release()

	ro := NewReadOptions()
	ro.SetFillCache(false)
	ro.SetSnapshot(snap)
	var it *Iterator
	if opts.CF != nil {
		it = db.IterCFOpt(opts.CF, ro)
	} else {
		it = db.IterOpt(ro)
	}
	// The engine copied the options into the iterator.
	ro.Destroy()
	defer it.Close()

	var header [9]byte
	copy(header[:], archiveMagic[:])
	header[8] = byte(opts.Codec)
	if _, err := w.Write(header[:]); err != nil {
		return 0, fmt.Errorf("gorocks: archive write failed: %w", err)
	}

	cw, err := newCodecWriter(w, opts.Codec)
	if err != nil {
		return 0, err
	}

	hash := xxh3.New()
	emit := func(b []byte) error {
		hash.Write(b)
		if _, err := cw.Write(b); err != nil {
			return fmt.Errorf("gorocks: archive write failed: %w", err)
		}
		return nil
	}

	var scratch [binary.MaxVarintLen64]byte
	count := 0
	for ok := it.SeekToFirst(); ok; ok = it.Next() {
		if err := emit([]byte{archiveTagPair}); err != nil {
			return count, err
		}
		key, value := it.Key(), it.Value()
		n := binary.PutUvarint(scratch[:], uint64(len(key)))
		if err := emit(scratch[:n]); err != nil {
			return count, err
		}
		if err := emit(key); err != nil {
			return count, err
		}
		n = binary.PutUvarint(scratch[:], uint64(len(value)))
		if err := emit(scratch[:n]); err != nil {
			return count, err
		}
		if err := emit(value); err != nil {
			return count, err
		}
		count++
	}

	var footer [9]byte
	footer[0] = archiveTagEnd
	binary.LittleEndian.PutUint64(footer[1:], hash.Sum64())
	if _, err := cw.Write(footer[:]); err != nil {
		return count, fmt.Errorf("gorocks: archive write failed: %w", err)
	}
	if err := cw.Close(); err != nil {
		return count, fmt.Errorf("gorocks: archive write failed: %w", err)
	}
	return count, nil
}

// RestoreArchive replays an archive stream into one column family via
// chunked write batches. It returns the number of records applied.
// Partially applied batches are not rolled back when the stream turns
// out to be corrupt.
func (db *DB) RestoreArchive(r io.Reader, opts RestoreOptions) (int, error) {
	var header [9]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return 0, fmt.Errorf("gorocks: archive header: %w", err)
	}
	if [8]byte(header[:8]) != archiveMagic {
		return 0, fmt.Errorf("%w: bad magic", ErrCorruptArchive)
	}
	codec := Codec(header[8])
	cr, closeReader, err := newCodecReader(r, codec)
	if err != nil {
		return 0, err
	}
	defer closeReader()
	br := bufio.NewReader(cr)

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = defaultRestoreBatchSize
	}

	hash := xxh3.New()
	var scratch [binary.MaxVarintLen64]byte
	readChunk := func(n uint64, what string) ([]byte, error) {
		if n > maxArchiveRecordLen {
			return nil, fmt.Errorf("%w: %s length %d out of range", ErrCorruptArchive, what, n)
		}
		b := make([]byte, n)
		if _, err := io.ReadFull(br, b); err != nil {
			return nil, fmt.Errorf("%w: truncated %s", ErrCorruptArchive, what)
		}
		hash.Write(b)
		return b, nil
	}
	readLen := func(what string) (uint64, error) {
		n, err := binary.ReadUvarint(br)
		if err != nil {
			return 0, fmt.Errorf("%w: truncated %s length", ErrCorruptArchive, what)
		}
		// Re-encode for the checksum; PutUvarint is canonical.
		w := binary.PutUvarint(scratch[:], n)
		hash.Write(scratch[:w])
		return n, nil
	}

	batch := NewWriteBatch()
	// Late-bound so the defer releases whichever batch is current.
	defer func() { batch.Destroy() }()
	count := 0
	pending := 0
	for {
		tag, err := br.ReadByte()
		if err != nil {
			return count, fmt.Errorf("%w: truncated record", ErrCorruptArchive)
		}
		if tag == archiveTagEnd {
			var sum [8]byte
			if _, err := io.ReadFull(br, sum[:]); err != nil {
				return count, fmt.Errorf("%w: truncated checksum", ErrCorruptArchive)
			}
			if binary.LittleEndian.Uint64(sum[:]) != hash.Sum64() {
				return count, fmt.Errorf("%w: checksum mismatch", ErrCorruptArchive)
			}
			break
		}
		if tag != archiveTagPair {
			return count, fmt.Errorf("%w: unknown record tag 0x%02x", ErrCorruptArchive, tag)
		}
		hash.Write([]byte{tag})

		klen, err := readLen("key")
		if err != nil {
			return count, err
		}
		key, err := readChunk(klen, "key")
		if err != nil {
			return count, err
		}
		vlen, err := readLen("value")
		if err != nil {
			return count, err
		}
		value, err := readChunk(vlen, "value")
		if err != nil {
			return count, err
		}

		if opts.CF != nil {
			batch.PutCF(opts.CF, key, value)
		} else {
			batch.Put(key, value)
		}
		count++
		pending++
		if pending >= batchSize {
			if err := db.Write(batch); err != nil {
				return count, err
			}
			batch = NewWriteBatch()
			pending = 0
		}
	}

	if pending > 0 {
		return count, db.Write(batch)
	}
	return count, nil
}

// nopWriteCloser adapts a plain writer for the uncompressed codec.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func newCodecWriter(w io.Writer, codec Codec) (io.WriteCloser, error) {
	switch codec {
	case CodecNone:
		return nopWriteCloser{w}, nil
	case CodecSnappy:
		return snappy.NewBufferedWriter(w), nil
	case CodecLZ4:
		return lz4.NewWriter(w), nil
	case CodecZstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("gorocks: zstd writer: %w", err)
		}
		return zw, nil
	default:
		return nil, fmt.Errorf("gorocks: unknown archive codec %q", codec)
	}
}

func newCodecReader(r io.Reader, codec Codec) (io.Reader, func(), error) {
	switch codec {
	case CodecNone:
		return r, func() {}, nil
	case CodecSnappy:
		return snappy.NewReader(r), func() {}, nil
	case CodecLZ4:
		return lz4.NewReader(r), func() {}, nil
	case CodecZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("gorocks: zstd reader: %w", err)
		}
		return zr, zr.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown codec byte 0x%02x", ErrCorruptArchive, uint8(codec))
	}
}
