package main

import (
	"sync"
	"time"
)

// ResponseCache manages cached responses with TTLs.
type ResponseCache struct {
	data map[string]CachedResponse
	mu   sync.RWMutex
}

// CachedResponse stores a cached response and its expiration.
type CachedResponse struct {
	Value      []byte
	Expiration time.Time
}

// NewResponseCache initializes the response cache.
func NewResponseCache(size int) *ResponseCache {
	return &ResponseCache{data: make(map[string]CachedResponse, size)}
}

// GetCachedResponse retrieves a cached response if available and valid.
func (rc *ResponseCache) GetCachedResponse(key string) ([]byte, bool) {
	rc.mu.RLock()
	defer rc.mu.RUnlock()

	if res, found := rc.data[key]; found && time.Now().Before(res.Expiration) {
		return res.Value, true
	}
	return nil, false
}

// SetCachedResponse saves a response in the cache with a specified TTL
// in seconds.
func (rc *ResponseCache) SetCachedResponse(key string, value []byte, ttl int) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	rc.data[key] = CachedResponse{
		Value:      value,
		Expiration: time.Now().Add(time.Duration(ttl) * time.Second),
	}
}
