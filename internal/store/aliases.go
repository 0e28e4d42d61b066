package store

import (
	"context"
	"errors"
)

// Aliases performs alias operations against the store in Dir.
// Each method opens the store, runs one transaction and closes it again,
// so no handle survives between calls.
type Aliases struct {
	Dir string
}

// Lookup returns the path stored for name in a read-only transaction.
func (a Aliases) Lookup(ctx context.Context, name string) (path string, found bool, err error) {
	err = a.with(ctx, ReadOnly, func(h *Handle) error {
		var getErr error
		path, found, getErr = h.Get(ctx, name)
		return getErr
	})
	return path, found, err
}

// Add stores name → path in a read-write transaction.
func (a Aliases) Add(ctx context.Context, name, path string) error {
	return a.with(ctx, ReadWrite, func(h *Handle) error {
		return h.Put(ctx, name, path)
	})
}

// Remove deletes name in a read-write transaction. Missing names are ignored.
func (a Aliases) Remove(ctx context.Context, name string) error {
	return a.with(ctx, ReadWrite, func(h *Handle) error {
		return h.Delete(ctx, name)
	})
}

// All lists every alias in a read-only transaction.
func (a Aliases) All(ctx context.Context) ([]Alias, error) {
	var aliases []Alias
	err := a.with(ctx, ReadOnly, func(h *Handle) error {
		var listErr error
		aliases, listErr = h.List(ctx)
		return listErr
	})
	return aliases, err
}

// with runs fn on a fresh handle. The handle is always closed, which
// commits whatever the transaction did before fn returned.
func (a Aliases) with(ctx context.Context, mode Mode, fn func(*Handle) error) error {
	h, err := Open(ctx, a.Dir, mode)
	if err != nil {
		return err
	}
	opErr := fn(h)
	closeErr := h.Close()
	return errors.Join(opErr, closeErr)
}
