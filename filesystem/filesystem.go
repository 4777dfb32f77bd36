// Package filesystem virtualizes file access through afero so tests can run against memory.
package filesystem

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active afero.Afero instance for filesystem interaction.
func API() afero.Afero {
	return backend
}

// SetOsFs restores the filesystem backend to the native operating system implementation.
func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs switches to a volatile in-memory backend for tests.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}

// CreateAll creates (or truncates) the file at path, creating missing parent directories first.
func CreateAll(path string) (afero.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := backend.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, err
		}
	}
	return backend.Create(path)
}
