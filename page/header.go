package page

import (
	"sync/atomic"
	"unsafe"
)

// Header is the process-shared prefix of a Page, mapped directly onto
// the start of the backing file. Every field is a machine-word atomic
// so that producers and consumers in distinct processes synchronize
// purely through ordinary atomic loads/stores on shared memory, with
// no mutex and no per-message lock.
//
// Layout must not change: it is the wire format shared across
// processes, and it is not portable across architectures or
// endianness.
type Header struct {
	// IsReady is reserved for an initialization handshake. The core
	// protocol never reads or writes it; it exists so an embedding
	// service can implement its own "page is ready" signal without a
	// layout change.
	IsReady atomic.Uint64
	// WriteIdxLock is the composite word: the low WordBits-8 bits hold
	// the next free byte offset, the high 8 bits hold the number of
	// writers currently between reservation and release.
	WriteIdxLock atomic.Uint64
	// LastSafeWriteIdx memoizes a byte offset known to be fully
	// written. It is an advisory cache for readers, never a source of
	// truth: it may lag the true committed offset and a concurrent
	// reader may overwrite it with a lower value.
	LastSafeWriteIdx atomic.Uint64
}

// HeaderSize is the number of bytes the header occupies at the front
// of the backing file, before the byte buffer starts: three 8-byte
// atomics on every 64-bit target this package supports.
var HeaderSize = int(unsafe.Sizeof(Header{}))
