package store

import (
	"context"
	"path/filepath"
	"testing"
)

// openTestHandle opens a handle on a fresh store directory.
func openTestHandle(t *testing.T, mode Mode) (*Handle, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "store")
	h, err := Open(context.Background(), dir, mode)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { h.Close() })
	return h, dir
}

// seed writes aliases into dir and commits them.
func seed(t *testing.T, dir string, pairs ...string) {
	t.Helper()
	if len(pairs)%2 != 0 {
		t.Fatalf("seed: odd number of arguments")
	}
	h, err := Open(context.Background(), dir, ReadWrite)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	for i := 0; i < len(pairs); i += 2 {
		if err := h.Put(context.Background(), pairs[i], pairs[i+1]); err != nil {
			t.Fatalf("Put(%q) failed: %v", pairs[i], err)
		}
	}
	if err := h.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
}
