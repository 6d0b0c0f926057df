// Package storage defines the vault file-system abstraction.
package storage

import "github.com/starford/ansuz/internal/models"

// Provider is the interface for vault file operations. All paths are
// relative to the vault root and use forward slashes.
type Provider interface {
	// Exists reports whether a file or directory exists at path.
	Exists(path string) (bool, error)
	// IsDir reports whether path exists and is a directory. The empty
	// path refers to the vault root.
	IsDir(path string) (bool, error)
	// EnsureDir creates the directory at path, including parents.
	EnsureDir(path string) error
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write replaces the file at path with content.
	Write(path string, content []byte) error
	// Stat returns modification time and size for the file at path.
	Stat(path string) (models.NoteStat, error)
	// List walks dir recursively and returns every file whose name ends
	// with ext (".md" when ext is empty), in walk order.
	List(dir, ext string) ([]string, error)
}
