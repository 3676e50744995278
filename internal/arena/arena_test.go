package arena

import (
	"testing"
	"unsafe"
)

func TestAllocAlignedAndZeroed(t *testing.T) {
	a := New(1024)

	first := a.Alloc(3)
	second := a.Alloc(8)

	if uintptr(unsafe.Pointer(&second[0]))%8 != 0 {
		t.Error("allocation not 8-byte aligned")
	}
	for i, b := range first {
		if b != 0 {
			t.Errorf("byte %d not zeroed", i)
		}
	}
}

func TestCStringNulTerminated(t *testing.T) {
	a := New(1024)

	ptr := a.CString("hello")
	bytes := unsafe.Slice((*byte)(unsafe.Pointer(ptr)), 6)
	if string(bytes[:5]) != "hello" {
		t.Errorf("content = %q", bytes[:5])
	}
	if bytes[5] != 0 {
		t.Error("missing NUL terminator")
	}
}

func TestCStringEmpty(t *testing.T) {
	a := New(1024)
	ptr := a.CString("")
	if b := *(*byte)(unsafe.Pointer(ptr)); b != 0 {
		t.Errorf("empty string first byte = %d, want NUL", b)
	}
}

func TestResetReusesFirstBlock(t *testing.T) {
	a := New(64)

	// Force growth past the first block.
	for i := 0; i < 10; i++ {
		a.Alloc(48)
	}
	if len(a.blocks) < 2 {
		t.Fatal("expected arena to grow")
	}

	a.Reset()
	if len(a.blocks) != 1 {
		t.Errorf("Reset kept %d blocks, want 1", len(a.blocks))
	}
	if a.Used() != 0 {
		t.Errorf("Used = %d after Reset, want 0", a.Used())
	}

	// Steady state: a frame that fits the first block does not grow.
	a.Alloc(32)
	if len(a.blocks) != 1 {
		t.Error("small allocation grew a fresh arena")
	}
}

func TestOversizedAllocation(t *testing.T) {
	a := New(64)
	buf := a.Alloc(1000)
	if len(buf) != 1000 {
		t.Errorf("len = %d, want 1000", len(buf))
	}
}

func TestFloats(t *testing.T) {
	a := New(1024)
	f := a.Floats(4)
	if len(f) != 4 {
		t.Fatalf("len = %d, want 4", len(f))
	}
	f[0], f[3] = 1.5, -2.5
	if f[0] != 1.5 || f[3] != -2.5 {
		t.Error("float slice not writable")
	}
	if a.Floats(0) != nil {
		t.Error("zero-length request should return nil")
	}
}
