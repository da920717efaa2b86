package fsops

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func mustWriteFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.WriteFile(path, make([]byte, size), 0644); err != nil {
		t.Fatalf("failed to create test file %s: %v", path, err)
	}
}

func TestDeleteConfirmedRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "victim.db")
	mustWriteFile(t, path, 16)

	if err := DeleteConfirmed(path); err != nil {
		t.Fatalf("DeleteConfirmed failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file still exists after DeleteConfirmed")
	}
}

func TestDeleteConfirmedMissingPathIsPreconditionError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "never-created")

	err := DeleteConfirmed(path)
	if !errors.Is(err, ErrPrecondition) {
		t.Fatalf("expected ErrPrecondition, got %v", err)
	}

	var pe *PreconditionError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PreconditionError, got %T", err)
	}
	if pe.Path != path {
		t.Errorf("PreconditionError path = %s, want %s", pe.Path, path)
	}
}

func TestDeleteTreeRemovesEverything(t *testing.T) {
	root := filepath.Join(t.TempDir(), "tree")
	if err := os.MkdirAll(filepath.Join(root, "a", "b"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	mustWriteFile(t, filepath.Join(root, "top.dat"), 10)
	mustWriteFile(t, filepath.Join(root, "a", "mid.dat"), 20)
	mustWriteFile(t, filepath.Join(root, "a", "b", "leaf.dat"), 30)

	if err := DeleteTree(root); err != nil {
		t.Fatalf("DeleteTree failed: %v", err)
	}
	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Errorf("root still exists after DeleteTree")
	}
}

func TestDeleteTreeSingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "single.dat")
	mustWriteFile(t, path, 8)

	if err := DeleteTree(path); err != nil {
		t.Fatalf("DeleteTree on a file failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file still exists after DeleteTree")
	}
}

func TestDeleteTreeMissingRoot(t *testing.T) {
	err := DeleteTree(filepath.Join(t.TempDir(), "ghost"))
	if !errors.Is(err, ErrPrecondition) {
		t.Fatalf("expected ErrPrecondition for missing root, got %v", err)
	}
}

// failingDeleter removes for real except for one poisoned path.
type failingDeleter struct {
	failOn string
}

func (d failingDeleter) Remove(path string) error {
	if path == d.failOn {
		return os.ErrPermission
	}
	return os.Remove(path)
}

// TestDeleteTreeFailFast proves the partial-cleanup contract: the first
// child that cannot be deleted aborts the walk with an error naming that
// child, siblings already processed are gone, and the root remains.
func TestDeleteTreeFailFast(t *testing.T) {
	root := filepath.Join(t.TempDir(), "tree")
	if err := os.Mkdir(root, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	// ReadDir returns lexical order, so a < poison < z.
	aPath := filepath.Join(root, "a.dat")
	poison := filepath.Join(root, "poison.dat")
	zPath := filepath.Join(root, "z.dat")
	mustWriteFile(t, aPath, 1)
	mustWriteFile(t, poison, 1)
	mustWriteFile(t, zPath, 1)

	td := NewTreeDeleter(failingDeleter{failOn: poison})
	err := td.DeleteTree(root)
	if err == nil {
		t.Fatal("expected DeleteTree to fail")
	}
	if !strings.Contains(err.Error(), poison) {
		t.Errorf("error %q does not identify failing child %s", err, poison)
	}

	if _, statErr := os.Stat(aPath); !os.IsNotExist(statErr) {
		t.Errorf("sibling processed before the failure should be gone")
	}
	if _, statErr := os.Stat(zPath); statErr != nil {
		t.Errorf("sibling after the failure should be untouched: %v", statErr)
	}
	if _, statErr := os.Stat(root); statErr != nil {
		t.Errorf("root should remain after a child failure: %v", statErr)
	}
}
