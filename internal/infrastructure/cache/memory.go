package cache

import (
	"sync"
	"time"
)

// MemoryStore is a simple in-memory key-value store with expiration,
// used for holiday and business-day lookups so repeated calendar checks
// within one job run stay off the network. Bounded: once maxEntries is
// reached new keys evict an arbitrary expired entry first, then refuse
// growth by dropping the oldest insert.
type MemoryStore struct {
	mu         sync.RWMutex
	items      map[string]*memoryItem
	order      []string
	maxEntries int
}

type memoryItem struct {
	value      string
	expireTime time.Time
}

// NewMemoryStore creates a new in-memory store holding at most maxEntries keys
func NewMemoryStore(maxEntries int) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = 512
	}
	store := &MemoryStore{
		items:      make(map[string]*memoryItem),
		maxEntries: maxEntries,
	}

	// Start cleanup goroutine to remove expired items
	go store.cleanupExpired()

	return store
}

// Set stores a key-value pair with expiration
func (ms *MemoryStore) Set(key string, value string, expiration time.Duration) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, exists := ms.items[key]; !exists {
		if len(ms.items) >= ms.maxEntries {
			ms.evictOneLocked()
		}
		ms.order = append(ms.order, key)
	}
	ms.items[key] = &memoryItem{
		value:      value,
		expireTime: time.Now().Add(expiration),
	}
}

// Get retrieves a value by key (returns empty string if not found or expired)
func (ms *MemoryStore) Get(key string) (string, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	item, exists := ms.items[key]
	if !exists {
		return "", false
	}

	// Check if expired
	if time.Now().After(item.expireTime) {
		return "", false
	}

	return item.value, true
}

// Delete removes a key
func (ms *MemoryStore) Delete(key string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.items, key)
}

func (ms *MemoryStore) evictOneLocked() {
	now := time.Now()
	for key, item := range ms.items {
		if now.After(item.expireTime) {
			delete(ms.items, key)
			return
		}
	}
	// No expired entry; drop the oldest insert still present.
	for len(ms.order) > 0 {
		oldest := ms.order[0]
		ms.order = ms.order[1:]
		if _, ok := ms.items[oldest]; ok {
			delete(ms.items, oldest)
			return
		}
	}
}

// cleanupExpired periodically removes expired items
func (ms *MemoryStore) cleanupExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		ms.mu.Lock()
		now := time.Now()
		for key, item := range ms.items {
			if now.After(item.expireTime) {
				delete(ms.items, key)
			}
		}
		ms.mu.Unlock()
	}
}
