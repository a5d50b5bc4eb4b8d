package pkg

import (
	"context"
	"sync"
)

type keyedEntry struct {
	sem  chan struct{}
	refs int
}

// KeyedMutex serializes work per key. Entries are dropped once nobody holds
// or waits for them.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*keyedEntry
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{entries: make(map[string]*keyedEntry)}
}

// Lock - blocks until the key is free or ctx is done. The returned func releases the key.
func (that *KeyedMutex) Lock(ctx context.Context, key string) (func(), error) {
	that.mu.Lock()
	entry, ok := that.entries[key]
	if !ok {
		entry = &keyedEntry{sem: make(chan struct{}, 1)}
		that.entries[key] = entry
	}
	entry.refs++
	that.mu.Unlock()

	select {
	case entry.sem <- struct{}{}:
	case <-ctx.Done():
		that.release(key, entry)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-entry.sem
			that.release(key, entry)
		})
	}, nil
}

func (that *KeyedMutex) release(key string, entry *keyedEntry) {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry.refs--
	if entry.refs == 0 {
		delete(that.entries, key)
	}
}

func (that *KeyedMutex) size() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.entries)
}
