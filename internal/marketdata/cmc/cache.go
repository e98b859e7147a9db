package cmc

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"
)

// responseCache stores provider payloads briefly so repeated questions in a
// conversation don't burn through the API quota.
type responseCache struct {
	mu   sync.RWMutex
	data map[string]cacheEntry
	ttl  time.Duration
}

type cacheEntry struct {
	body json.RawMessage
	at   time.Time
}

func newResponseCache(ttl time.Duration) *responseCache {
	return &responseCache{
		data: make(map[string]cacheEntry),
		ttl:  ttl,
	}
}

func (c *responseCache) get(key string) (json.RawMessage, bool) {
	c.mu.RLock()
	entry, ok := c.data[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Since(entry.at) > c.ttl {
		c.mu.Lock()
		delete(c.data, key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.body, true
}

func (c *responseCache) set(key string, body json.RawMessage) {
	c.mu.Lock()
	c.data[key] = cacheEntry{body: body, at: time.Now()}
	c.mu.Unlock()
}

// cacheKey builds a deterministic key from endpoint and sorted parameters
func cacheKey(endpoint string, params map[string]string) string {
	if len(params) == 0 {
		return endpoint
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(endpoint)
	for _, k := range keys {
		b.WriteByte('|')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
	}
	return b.String()
}
