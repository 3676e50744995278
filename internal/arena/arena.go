// Package arena provides a frame-scoped bump allocator for marshalling data
// across the FFI boundary: C strings, float vectors and small out-parameter
// structs that must stay at a stable address for the duration of one toolkit
// call sequence. Everything handed out is valid only until Reset, which the
// render pass calls once at the end of each frame.
package arena

import (
	"log"
	"unsafe"
)

const (
	// DefaultBlockSize is the size of each backing block.
	DefaultBlockSize = 64 * 1024

	// maxTotal caps total arena growth within a single frame. Blowing past
	// it means a render handler is leaking scratch allocations; there is no
	// safe degraded path once frame marshalling fails, so this is fatal.
	maxTotal = 64 * 1024 * 1024
)

// Arena is a bump allocator over a chain of byte blocks. It is not safe for
// concurrent use; the render pass owns it and runs on a single thread.
type Arena struct {
	blocks    [][]byte
	cur       []byte
	off       int
	blockSize int
	total     int
}

// New creates an arena with the given block size (DefaultBlockSize if <= 0).
func New(blockSize int) *Arena {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	a := &Arena{blockSize: blockSize}
	a.grow(blockSize)
	return a
}

// Alloc returns an 8-byte-aligned scratch slice of length n. The memory is
// zeroed and owned by the arena; it must not be retained across frames.
func (a *Arena) Alloc(n int) []byte {
	if n < 0 {
		n = 0
	}
	// Keep every allocation 8-byte aligned for struct out-params.
	a.off = (a.off + 7) &^ 7
	if a.off+n > len(a.cur) {
		size := a.blockSize
		if n > size {
			size = n
		}
		a.grow(size)
	}
	buf := a.cur[a.off : a.off+n : a.off+n]
	a.off += n
	for i := range buf {
		buf[i] = 0
	}
	return buf
}

// CString copies s into the arena with a trailing NUL and returns the
// address of the first byte, suitable for passing to a C `const char *`
// parameter. The arena keeps the backing block alive until Reset.
func (a *Arena) CString(s string) uintptr {
	buf := a.Alloc(len(s) + 1)
	copy(buf, s)
	buf[len(s)] = 0
	return uintptr(unsafe.Pointer(&buf[0]))
}

// Floats returns a scratch float32 slice of length n.
func (a *Arena) Floats(n int) []float32 {
	if n <= 0 {
		return nil
	}
	buf := a.Alloc(n * 4)
	return unsafe.Slice((*float32)(unsafe.Pointer(&buf[0])), n)
}

// Reset frees everything allocated this frame in bulk. The first block is
// kept so steady-state frames allocate nothing.
func (a *Arena) Reset() {
	if len(a.blocks) > 1 {
		a.blocks = a.blocks[:1]
	}
	a.cur = a.blocks[0]
	a.off = 0
	a.total = len(a.cur)
}

// Used returns the number of bytes bumped since the last Reset.
func (a *Arena) Used() int {
	used := a.off
	for _, b := range a.blocks[:len(a.blocks)-1] {
		used += len(b)
	}
	return used
}

func (a *Arena) grow(size int) {
	if a.total+size > maxTotal {
		// Scratch exhaustion is the one unrecoverable condition: frame
		// marshalling can no longer be trusted, so abort.
		log.Fatalf("arena: frame scratch exceeded %d bytes", maxTotal)
	}
	block := make([]byte, size)
	a.blocks = append(a.blocks, block)
	a.cur = block
	a.off = 0
	a.total += size
}
