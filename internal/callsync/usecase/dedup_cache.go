package usecase

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DedupCache remembers calls processed during this process lifetime so
// a pass does not re-spend summarizer/classifier calls on them. It is
// bounded (size + TTL) and strictly an upstream-call saver: losing an
// entry is harmless because the store's identity constraint is the
// real dedup boundary.
type DedupCache struct {
	lru *expirable.LRU[string, struct{}]
}

// NewDedupCache creates a cache holding at most size keys for at most ttl
func NewDedupCache(size int, ttl time.Duration) *DedupCache {
	if size <= 0 {
		size = 2048
	}
	return &DedupCache{
		lru: expirable.NewLRU[string, struct{}](size, nil, ttl),
	}
}

func cacheKey(tenantID, callID string) string {
	return tenantID + "/" + callID
}

// Seen reports whether the call was already processed in this process
func (c *DedupCache) Seen(tenantID, callID string) bool {
	_, ok := c.lru.Get(cacheKey(tenantID, callID))
	return ok
}

// Mark records the call as processed
func (c *DedupCache) Mark(tenantID, callID string) {
	c.lru.Add(cacheKey(tenantID, callID), struct{}{})
}
