package scheduleresolver

import "sync"

// responseCache memoizes marshaled responses between snapshot refreshes.
// The engine itself never caches; this sits strictly on the HTTP surface and
// is dropped wholesale whenever the override snapshot changes.
type responseCache struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func newResponseCache() *responseCache {
	return &responseCache{entries: map[string][]byte{}}
}

func (c *responseCache) get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	buf, ok := c.entries[key]
	return buf, ok
}

func (c *responseCache) set(key string, buf []byte) {
	c.mu.Lock()
	c.entries[key] = buf
	c.mu.Unlock()
}

func (c *responseCache) invalidate() {
	c.mu.Lock()
	c.entries = map[string][]byte{}
	c.mu.Unlock()
}
