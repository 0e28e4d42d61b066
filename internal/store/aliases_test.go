package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
)

func TestAliases_Cycle(t *testing.T) {
	a := Aliases{Dir: filepath.Join(t.TempDir(), "nested", "store")}
	ctx := context.Background()

	if err := a.Add(ctx, "proj", "/tmp/myproject"); err != nil {
		t.Fatalf("Add() failed: %v", err)
	}

	path, found, err := a.Lookup(ctx, "proj")
	if err != nil {
		t.Fatalf("Lookup() failed: %v", err)
	}
	if !found || path != "/tmp/myproject" {
		t.Errorf("Lookup() = %q, %v; want /tmp/myproject, true", path, found)
	}

	if err := a.Remove(ctx, "proj"); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}
	if err := a.Remove(ctx, "proj"); err != nil {
		t.Fatalf("Remove() of missing alias failed: %v", err)
	}

	_, found, err = a.Lookup(ctx, "proj")
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Error("alias still present after Remove()")
	}
}

func TestAliases_LookupOnFreshStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "fresh")
	a := Aliases{Dir: dir}

	_, found, err := a.Lookup(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Lookup() on fresh store failed: %v", err)
	}
	if found {
		t.Error("Lookup() on fresh store reported found")
	}
}

func TestAliases_All(t *testing.T) {
	a := Aliases{Dir: t.TempDir()}
	ctx := context.Background()

	want := map[string]string{"b": "/b", "a": "/a", "c": "/c"}
	for n, p := range want {
		if err := a.Add(ctx, n, p); err != nil {
			t.Fatal(err)
		}
	}

	all, err := a.All(ctx)
	if err != nil {
		t.Fatalf("All() failed: %v", err)
	}
	if len(all) != len(want) {
		t.Fatalf("All() returned %d aliases, want %d", len(all), len(want))
	}
	for _, al := range all {
		if want[al.Name] != al.Path {
			t.Errorf("All() %q = %q, want %q", al.Name, al.Path, want[al.Name])
		}
	}
}

func TestAliases_InvalidNameStillClosesStore(t *testing.T) {
	a := Aliases{Dir: t.TempDir()}
	ctx := context.Background()

	if err := a.Add(ctx, "", "/p"); !IsInvalidAlias(err) {
		t.Fatalf("Add() with empty name: expected INVALID_ALIAS, got %v", err)
	}

	// The failed cycle must have released the write lock.
	if err := a.Add(ctx, "ok", "/ok"); err != nil {
		t.Fatalf("Add() after failed cycle: %v", err)
	}
}

func TestAliases_OpenFailure(t *testing.T) {
	a := Aliases{Dir: "/dev/null/store"}

	_, _, err := a.Lookup(context.Background(), "x")
	if !IsOpenError(err) {
		t.Errorf("expected STORE_OPEN error, got %v", err)
	}
}

func TestAliases_ConcurrentWriters(t *testing.T) {
	a := Aliases{Dir: t.TempDir()}
	ctx := context.Background()

	// Create the store up front so every writer finds WAL mode set.
	if err := a.Add(ctx, "seed", "/seed"); err != nil {
		t.Fatal(err)
	}

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- a.Add(ctx, fmt.Sprintf("w%d", i), fmt.Sprintf("/w/%d", i))
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("concurrent Add() failed: %v", err)
		}
	}

	all, err := a.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != writers+1 {
		t.Errorf("All() returned %d aliases, want %d", len(all), writers+1)
	}
}
