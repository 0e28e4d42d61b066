package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Alias is a stored name → path pair.
type Alias struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Get returns the path stored for name.
// A missing alias reports found=false with a nil error.
func (h *Handle) Get(ctx context.Context, name string) (path string, found bool, err error) {
	name, err = normalizeName(name)
	if err != nil {
		return "", false, err
	}

	err = h.tx.QueryRowContext(ctx, `
		SELECT path FROM aliases WHERE name = ?
	`, name).Scan(&path)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, ioError("get", name, err)
	}
	return path, true, nil
}

// Put stores path under name, replacing any existing value.
// The path is not checked against the filesystem.
func (h *Handle) Put(ctx context.Context, name, path string) error {
	if h.mode != ReadWrite {
		return &Error{Code: ErrCodeReadOnly, Op: "put", Name: name}
	}
	name, err := normalizeName(name)
	if err != nil {
		return err
	}
	if strings.IndexByte(path, 0) >= 0 {
		return &Error{Code: ErrCodeInvalidAlias, Op: "put", Name: name, Err: errors.New("path contains a NUL byte")}
	}

	_, err = h.tx.ExecContext(ctx, `
		INSERT INTO aliases (name, path) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET path = excluded.path
	`, name, path)
	if err != nil {
		return ioError("put", name, err)
	}
	return nil
}

// Delete removes name. Deleting a missing alias is not an error.
func (h *Handle) Delete(ctx context.Context, name string) error {
	if h.mode != ReadWrite {
		return &Error{Code: ErrCodeReadOnly, Op: "delete", Name: name}
	}
	name, err := normalizeName(name)
	if err != nil {
		return err
	}

	if _, err := h.tx.ExecContext(ctx, `DELETE FROM aliases WHERE name = ?`, name); err != nil {
		return ioError("delete", name, err)
	}
	return nil
}

// List returns every stored alias exactly once, ordered by name.
func (h *Handle) List(ctx context.Context) ([]Alias, error) {
	rows, err := h.tx.QueryContext(ctx, `
		SELECT name, path FROM aliases ORDER BY name ASC
	`)
	if err != nil {
		return nil, ioError("list", "", err)
	}
	defer rows.Close()

	var aliases []Alias
	for rows.Next() {
		var a Alias
		if err := rows.Scan(&a.Name, &a.Path); err != nil {
			return nil, ioError("list", "", err)
		}
		aliases = append(aliases, a)
	}
	if err := rows.Err(); err != nil {
		return nil, ioError("list", "", err)
	}
	return aliases, nil
}

// normalizeName validates an alias name and returns its NFC form.
func normalizeName(name string) (string, error) {
	if name == "" {
		return "", &Error{Code: ErrCodeInvalidAlias, Op: "validate", Err: errors.New("alias name is empty")}
	}
	if strings.IndexByte(name, 0) >= 0 {
		return "", &Error{Code: ErrCodeInvalidAlias, Op: "validate", Err: errors.New("alias name contains a NUL byte")}
	}
	return norm.NFC.String(name), nil
}
