// Package main provides the ldb CLI tool for inspecting RocksDB
// databases through the gorocks bindings.
//
// Usage:
//
//	ldb --db=<path> <command> [options]
//
// Commands:
//
//	scan             Scan key-value pairs in order
//	get <key>        Get value for a key
//	put <key> <val>  Put a key-value pair
//	delete <key>     Delete a key
//	dump <file>      Dump a column family to an archive file
//	restore <file>   Restore an archive file into a column family
//	info             Print engine properties
//	cfs              List column families
//	destroy          Destroy the database
//	repair           Attempt to repair a corrupted database
//
// Reference: RocksDB tools/ldb_tool.cc
package main

import (
	"bytes"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/aalhour/gorocks"
)

var (
	dbPath          = flag.String("db", "", "Path to the database (required)")
	cfName          = flag.String("cf", "default", "Column family to operate on")
	hexOutput       = flag.Bool("hex", false, "Output keys and values in hex format")
	limit           = flag.Int("limit", 0, "Limit number of entries (0 = unlimited)")
	fromKey         = flag.String("from", "", "Start key for scan")
	toKey           = flag.String("to", "", "End key for scan (exclusive)")
	codecName       = flag.String("codec", "zstd", "Archive compression for dump: none, snappy, lz4, zstd")
	createIfMissing = flag.Bool("create_if_missing", false, "Create database if it doesn't exist")
	help            = flag.Bool("help", false, "Print help")
)

func main() {
	flag.Parse()

	if *help || len(flag.Args()) == 0 {
		printUsage()
		return
	}

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "Error: --db flag is required")
		os.Exit(1)
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	var err error
	switch command {
	case "scan":
		err = cmdScan()
	case "get":
		err = cmdGet(args)
	case "put":
		err = cmdPut(args)
	case "delete":
		err = cmdDelete(args)
	case "dump":
		err = cmdDump(args)
	case "restore":
		err = cmdRestore(args)
	case "info":
		err = cmdInfo()
	case "cfs":
		err = cmdCFs()
	case "destroy":
		err = cmdDestroy()
	case "repair":
		err = cmdRepair()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("ldb - RocksDB database inspection tool (gorocks)")
	fmt.Println()
	fmt.Println("Usage: ldb --db=<path> <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  scan              Scan key-value pairs in order")
	fmt.Println("  get <key>         Get value for a key")
	fmt.Println("  put <key> <val>   Put a key-value pair")
	fmt.Println("  delete <key>      Delete a key")
	fmt.Println("  dump <file>       Dump a column family to an archive file")
	fmt.Println("  restore <file>    Restore an archive file into a column family")
	fmt.Println("  info              Print engine properties")
	fmt.Println("  cfs               List column families")
	fmt.Println("  destroy           Destroy the database")
	fmt.Println("  repair            Attempt to repair a corrupted database")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
}

// openDB opens the database with every column family it contains, so
// databases created with extra column families remain inspectable.
func openDB() (*gorocks.DB, *gorocks.ColumnFamilyHandle, error) {
	opts := gorocks.NewOptions()
	defer opts.Destroy()
	opts.SetCreateIfMissing(*createIfMissing)

	names, err := gorocks.ListColumnFamilyNames(opts, *dbPath)
	if err != nil {
		// A database that does not exist yet has no name record.
		names = []string{gorocks.DefaultColumnFamilyName}
	}
	cfOpts := make([]*gorocks.Options, len(names))
	for i := range names {
		cfOpts[i] = opts
	}

	db, err := gorocks.OpenColumnFamilies(opts, *dbPath, names, cfOpts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	cf, ok := db.ColumnFamily(*cfName)
	if !ok {
		db.Close()
		return nil, nil, fmt.Errorf("unknown column family %q", *cfName)
	}
	return db, cf, nil
}

func formatOutput(data []byte) string {
	if *hexOutput {
		return hex.EncodeToString(data)
	}
	// Print as string if printable, else hex
	for _, b := range data {
		if b < 32 || b > 126 {
			return hex.EncodeToString(data)
		}
	}
	return string(data)
}

func parseInput(s string) []byte {
	// Try hex decode first (if prefixed with 0x)
	if strings.HasPrefix(s, "0x") {
		decoded, err := hex.DecodeString(s[2:])
		if err == nil {
			return decoded
		}
	}
	return []byte(s)
}

func cmdScan() error {
	db, cf, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	iter := db.IterCF(cf)
	defer iter.Close()

	if *fromKey != "" {
		iter.Seek(parseInput(*fromKey))
	} else {
		iter.SeekToFirst()
	}

	toKeyBytes := parseInput(*toKey)
	count := 0
	for iter.Valid() {
		key := iter.Key()
		if *toKey != "" && bytes.Compare(key, toKeyBytes) >= 0 {
			break
		}

		fmt.Printf("%s => %s\n", formatOutput(key), formatOutput(iter.Value()))

		count++
		if *limit > 0 && count >= *limit {
			break
		}
		iter.Next()
	}

	fmt.Printf("\n(%d entries scanned)\n", count)
	return nil
}

func cmdGet(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: ldb --db=<path> get <key>")
	}

	db, cf, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	value, err := db.GetCF(cf, parseInput(args[0]))
	if err != nil {
		return fmt.Errorf("get failed: %w", err)
	}
	if value == nil {
		return fmt.Errorf("key not found")
	}
	defer value.Free()

	fmt.Printf("%s\n", formatOutput(value.Data()))
	return nil
}

func cmdPut(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: ldb --db=<path> put <key> <value>")
	}

	db, cf, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.PutCF(cf, parseInput(args[0]), parseInput(args[1])); err != nil {
		return fmt.Errorf("put failed: %w", err)
	}

	fmt.Println("OK")
	return nil
}

func cmdDelete(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: ldb --db=<path> delete <key>")
	}

	db, cf, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.DeleteCF(cf, parseInput(args[0])); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}

	fmt.Println("OK")
	return nil
}

func cmdDump(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: ldb --db=<path> dump <file>")
	}
	codec, err := gorocks.ParseCodec(*codecName)
	if err != nil {
		return err
	}

	db, cf, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("failed to create archive file: %w", err)
	}
	defer f.Close()

	n, err := db.DumpArchive(f, gorocks.DumpOptions{Codec: codec, CF: cf})
	if err != nil {
		return fmt.Errorf("dump failed: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to sync archive file: %w", err)
	}

	fmt.Printf("Dumped %d entries to %s (%s)\n", n, args[0], codec)
	return nil
}

func cmdRestore(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: ldb --db=<path> restore <file>")
	}

	db, cf, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open archive file: %w", err)
	}
	defer f.Close()

	n, err := db.RestoreArchive(f, gorocks.RestoreOptions{CF: cf})
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	fmt.Printf("Restored %d entries from %s\n", n, args[0])
	return nil
}

// infoProperties are the engine properties the info command prints.
var infoProperties = []string{
	"rocksdb.estimate-num-keys",
	"rocksdb.num-entries-active-mem-table",
	"rocksdb.total-sst-files-size",
	"rocksdb.num-live-versions",
	"rocksdb.estimate-live-data-size",
}

func cmdInfo() error {
	db, cf, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Printf("Path: %s\n", db.Path())
	fmt.Printf("Column family: %s\n", cf.Name())
	for _, prop := range infoProperties {
		if v, ok := db.PropertyValueCF(cf, prop); ok {
			fmt.Printf("%s: %s\n", prop, v)
		}
	}
	return nil
}

func cmdCFs() error {
	db, _, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	for _, name := range db.ListColumnFamilies() {
		fmt.Println(name)
	}
	return nil
}

func cmdDestroy() error {
	opts := gorocks.NewOptions()
	defer opts.Destroy()

	if err := gorocks.DestroyDatabase(opts, *dbPath); err != nil {
		return fmt.Errorf("destroy failed: %w", err)
	}
	fmt.Println("OK")
	return nil
}

func cmdRepair() error {
	opts := gorocks.NewOptions()
	defer opts.Destroy()

	if err := gorocks.RepairDatabase(opts, *dbPath); err != nil {
		return fmt.Errorf("repair failed: %w", err)
	}
	fmt.Println("OK")
	return nil
}
