package gorocks

// cgo.go carries the link line for the whole package.
//
// librocksdb is linked dynamically by default. Static linking of the
// engine and its compression dependencies is a build-orchestration
// concern (CGO_LDFLAGS / pkg-config) and is intentionally not encoded
// here.

// #cgo LDFLAGS: -lrocksdb -lstdc++ -lm -lz -lbz2 -lsnappy -llz4 -lzstd
import "C"
