package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheSize = 500

// CacheItem 包装缓存数据和写入时间
type CacheItem struct {
	Data     interface{}
	StoredAt time.Time
}

// Cache is a bounded in-process cache. Staleness is decided by the reader:
// each Get passes the TTL it is willing to accept.
type Cache struct {
	lruCache *lru.Cache[string, CacheItem]
	now      func() time.Time
}

// NewCache 创建缓存，size <= 0 时使用默认容量
func NewCache(size int) *Cache {
	if size <= 0 {
		size = defaultCacheSize
	}
	l, err := lru.New[string, CacheItem](size)
	if err != nil {
		// lru.New only fails for a non-positive size.
		panic(err)
	}
	return &Cache{
		lruCache: l,
		now:      time.Now,
	}
}

// Set 写入缓存并记录当前时间
func (c *Cache) Set(key string, data interface{}) {
	c.lruCache.Add(key, CacheItem{
		Data:     data,
		StoredAt: c.now(),
	})
}

// Get returns the entry if it is younger than ttl. Stale entries are evicted.
func (c *Cache) Get(key string, ttl time.Duration) (interface{}, bool) {
	val, ok := c.lruCache.Get(key)
	if !ok {
		return nil, false
	}

	if c.now().Sub(val.StoredAt) >= ttl {
		c.lruCache.Remove(key)
		return nil, false
	}

	return val.Data, true
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.lruCache.Purge()
}
