package store

import (
	"errors"
	"os"
	"os/user"
	"path/filepath"
)

// DefaultDirName is the store directory created in the user's home.
const DefaultDirName = ".execdir.db"

// HomeDir returns $HOME, falling back to the passwd entry of the current user.
func HomeDir() (string, error) {
	if home := os.Getenv("HOME"); home != "" {
		return home, nil
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	if u.HomeDir == "" {
		return "", errors.New("cannot get the home directory")
	}
	return u.HomeDir, nil
}

// DefaultDir returns the store directory under the user's home,
// e.g. /home/me/.execdir.db
func DefaultDir() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultDirName), nil
}
