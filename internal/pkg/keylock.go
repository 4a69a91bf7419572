package pkg

import "sync"

// KeyLock serializes work per key. Keys with no holders or waiters are
// forgotten, so the set of tracked keys does not grow with the number of sessions.
type KeyLock struct {
	mu    sync.Mutex
	locks map[string]*keyEntry
}

type keyEntry struct {
	mu   sync.Mutex
	refs int
}

func NewKeyLock() *KeyLock {
	return &KeyLock{
		locks: make(map[string]*keyEntry),
	}
}

// Lock blocks until key is free and returns the function that releases it.
func (that *KeyLock) Lock(key string) (unlock func()) {
	that.mu.Lock()
	entry, ok := that.locks[key]
	if !ok {
		entry = &keyEntry{}
		that.locks[key] = entry
	}
	entry.refs++
	that.mu.Unlock()

	entry.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			entry.mu.Unlock()

			that.mu.Lock()
			entry.refs--
			if entry.refs == 0 {
				delete(that.locks, key)
			}
			that.mu.Unlock()
		})
	}
}

// Len returns the number of keys currently held or awaited.
func (that *KeyLock) Len() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.locks)
}
