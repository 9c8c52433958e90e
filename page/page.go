//go:build unix

// Package page implements the Page Lifecycle component: it owns the
// backing file and the shared memory mapping, and nothing else. It
// has no notion of messages, framing, or cursors — those live in
// sibling packages that depend on it.
package page

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/c2h5oh/datasize"
	"golang.org/x/sys/unix"
)

// Config controls how a Page's backing file is sized.
type Config struct {
	// Capacity is the size of the message buffer, excluding the
	// header. Typical pages are tens of megabytes.
	Capacity datasize.ByteSize
}

// Page is a file-backed shared memory region: a fixed Header followed
// by a Capacity-sized byte buffer, mapped MAP_SHARED so every process
// that opens the same path observes the same header atomics and
// buffer bytes.
type Page struct {
	path     string
	mapped   []byte
	hdr      *Header
	buf      []byte
	capacity int
}

// Open opens or creates the file at path, sizes it to exactly
// HeaderSize+cfg.Capacity bytes, and maps it shared read/write.
//
// A freshly created file is zero-filled by the operating system, and
// zero is the correct initial value for every Header atomic, so Open
// performs no separate initialization handshake.
func Open(path string, cfg Config) (*Page, error) {
	capacity := int(cfg.Capacity)
	if capacity <= 0 {
		return nil, fmt.Errorf("page: capacity must be positive, got %s", cfg.Capacity)
	}

	size := int64(HeaderSize) + int64(capacity)

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("page: failed to open %q: %w", path, err)
	}
	// The descriptor is only needed to establish the mapping; once
	// mmap succeeds the mapping keeps the pages resident independent
	// of the fd (spec §5: "the file descriptor is closed immediately
	// after mapping").
	defer f.Close()

	if err := f.Truncate(size); err != nil {
		return nil, fmt.Errorf("page: failed to size %q to %d bytes: %w", path, size, err)
	}

	mapped, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("page: failed to map %q: %w", path, err)
	}

	return &Page{
		path:     path,
		mapped:   mapped,
		hdr:      (*Header)(unsafe.Pointer(&mapped[0])),
		buf:      mapped[HeaderSize:],
		capacity: capacity,
	}, nil
}

// OpenBytes is Open for callers whose string representation of path
// is not a Go string with a guaranteed NUL-free byte sequence (e.g.
// a path handed across a non-Go FFI boundary as length-prefixed
// bytes). It exists purely for API parity with the original C entry
// points' `_rs` variant; Go strings never need it internally.
func OpenBytes(path []byte, cfg Config) (*Page, error) {
	return Open(string(path), cfg)
}

// Close unmaps the region. It does not delete the backing file.
// Outstanding slices obtained from Buf (directly, or via a queue.Pop
// result) become invalid; callers must have drained the page first.
func (p *Page) Close() error {
	if p.mapped == nil {
		return nil
	}
	if err := unix.Munmap(p.mapped); err != nil {
		return fmt.Errorf("page: failed to unmap %q: %w", p.path, err)
	}
	p.mapped = nil
	p.hdr = nil
	p.buf = nil
	return nil
}

// Header returns the page's shared atomic header.
func (p *Page) Header() *Header {
	return p.hdr
}

// Buf returns the page's message buffer. Mutating it outside of the
// Write Protocol's reservation discipline corrupts the page for every
// process sharing it.
func (p *Page) Buf() []byte {
	return p.buf
}

// Capacity returns C, the size of Buf in bytes.
func (p *Page) Capacity() int {
	return p.capacity
}

// Path returns the backing file path the Page was opened from.
func (p *Page) Path() string {
	return p.path
}
