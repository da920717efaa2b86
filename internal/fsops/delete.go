package fsops

import (
	"fmt"
	"os"
	"path/filepath"
)

// DeleteConfirmed removes a single path that the caller asserts exists.
// A missing target is a PreconditionError; a rejected removal (permission
// denied, directory not empty, file in use) is returned as an I/O error
// carrying the absolute path.
func DeleteConfirmed(path string) error {
	return defaultTree.deleteConfirmed(path)
}

// DeleteTree removes path and everything beneath it, children before
// parents. If path is not a directory it is removed as a single file.
func DeleteTree(path string) error {
	return defaultTree.DeleteTree(path)
}

var defaultTree = NewTreeDeleter(OSDeleter{})

// TreeDeleter removes directory trees by post-order traversal over a
// single-file delete primitive.
type TreeDeleter struct {
	del Deleter
}

func NewTreeDeleter(del Deleter) *TreeDeleter {
	if del == nil {
		del = OSDeleter{}
	}
	return &TreeDeleter{del: del}
}

// DeleteTree lists the immediate children of path, deletes each child
// recursively, then deletes the now-empty directory itself. It fails fast:
// the first child that cannot be removed aborts the walk, leaving whatever
// was already deleted gone and the parent in place. There is no rollback.
func (t *TreeDeleter) DeleteTree(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &PreconditionError{Path: abs(path)}
		}
		return fmt.Errorf("stat %s: %w", abs(path), err)
	}

	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return fmt.Errorf("list %s: %w", abs(path), err)
		}
		for _, entry := range entries {
			if err := t.DeleteTree(filepath.Join(path, entry.Name())); err != nil {
				return err
			}
		}
	}

	return t.deleteConfirmed(path)
}

func (t *TreeDeleter) deleteConfirmed(path string) error {
	if _, err := os.Lstat(path); err != nil {
		if os.IsNotExist(err) {
			return &PreconditionError{Path: abs(path)}
		}
		return fmt.Errorf("stat %s: %w", abs(path), err)
	}
	if err := t.del.Remove(path); err != nil {
		return fmt.Errorf("failed to delete %s: %w", abs(path), err)
	}
	return nil
}

func abs(path string) string {
	if a, err := filepath.Abs(path); err == nil {
		return a
	}
	return path
}
