package fsops

import "sync"

// FakeDeleter implements Deleter for testing.
// Records every delete call and fails on demand per path.
type FakeDeleter struct {
	mu     sync.Mutex
	Calls  []string
	FailOn map[string]error
}

func (f *FakeDeleter) Remove(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, path)
	if err, ok := f.FailOn[path]; ok {
		return err
	}
	return nil
}

// CallCount returns the number of Remove calls seen so far.
func (f *FakeDeleter) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}
