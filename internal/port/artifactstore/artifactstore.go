// Package artifactstore defines the port interface for persisting generated artifacts.
package artifactstore

// Store writes rendered artifacts below an output directory.
type Store interface {
	// EnsureDir creates dir and any missing parents.
	EnsureDir(dir string) error
	// Write stores data at path and returns the path actually written,
	// which differs from path when the store avoids a collision.
	Write(path string, data []byte) (string, error)
}
