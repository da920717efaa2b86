package fsops

import "os"

// Deleter abstracts the single-file unlink call.
// Enables fault injection in tests without touching the real filesystem.
type Deleter interface {
	Remove(path string) error
}

// OSDeleter implements Deleter using real os package calls
type OSDeleter struct{}

func (OSDeleter) Remove(path string) error {
	return os.Remove(path)
}
