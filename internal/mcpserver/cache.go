package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/erraggy/recordcheck/schema"
)

// cacheEntry holds a loaded schema with its expiry. For file schemas deps
// maps every document the schema was loaded from to its modification time.
type cacheEntry struct {
	schema    *schema.Schema
	deps      map[string]int64
	expiresAt time.Time
}

// stale reports whether a document the entry was loaded from has changed
// or disappeared.
func (e *cacheEntry) stale() bool {
	for path, modTime := range e.deps {
		info, err := os.Stat(path)
		if err != nil || info.ModTime().UnixNano() != modTime {
			return true
		}
	}
	return false
}

// schemaCacheStore provides a session-scoped LRU cache for loaded schemas.
// File inputs are keyed by (absolutePath, modTime) and revalidated against
// the modification times of their $ref'd documents; content inputs are
// keyed by a SHA-256 hash. Entries expire after a TTL and a background
// sweeper removes expired entries.
type schemaCacheStore struct {
	mu             sync.Mutex
	lru            *lru.Cache
	maxSize        int
	sweeperStarted atomic.Bool
}

var schemaCache = newSchemaCacheStore(cfg.CacheMaxSize)

func newSchemaCacheStore(size int) *schemaCacheStore {
	c := &schemaCacheStore{maxSize: size}
	c.reset()
	return c
}

// get returns a cached schema or nil. Expired and stale entries are lazily
// removed.
func (c *schemaCacheStore) get(key string) *schema.Schema {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.lru.Get(key)
	if !ok {
		return nil
	}
	e := v.(*cacheEntry)
	if time.Now().After(e.expiresAt) || e.stale() {
		c.lru.Remove(key)
		return nil
	}
	return e.schema
}

// put stores a schema for ttl, evicting the least recently used entry if
// at capacity. deps may be nil.
func (c *schemaCacheStore) put(key string, s *schema.Schema, deps map[string]int64, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, &cacheEntry{schema: s, deps: deps, expiresAt: time.Now().Add(ttl)})
}

// sweep removes all expired entries from the cache.
func (c *schemaCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for _, k := range c.lru.Keys() {
		if v, ok := c.lru.Peek(k); ok && now.After(v.(*cacheEntry).expiresAt) {
			c.lru.Remove(k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes expired entries.
// It is safe to call multiple times; only the first call spawns a sweeper.
// It stops when ctx is cancelled.
func (c *schemaCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries.
func (c *schemaCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	size := c.maxSize
	if size <= 0 {
		size = 1
	}
	cache, err := lru.New(size)
	if err != nil {
		// lru.New only fails for a non-positive size
		panic(fmt.Sprintf("mcpserver: creating schema cache: %v", err))
	}
	c.lru = cache
}

// size returns the number of cached entries.
func (c *schemaCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// makeCacheKey creates a cache key for a schema input. Named built-in
// schemas are cached by the schema package and are not keyed here.
func makeCacheKey(s schemaInput) string {
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return "" // Can't stat, don't cache.
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		return "content:" + hex.EncodeToString(h[:])
	default:
		return ""
	}
}

// fileDeps stats every document s was loaded from. Document names are
// relative to the directory of the root file at path.
func fileDeps(path string, s *schema.Schema) (map[string]int64, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(absPath)
	docs := s.Documents()
	deps := make(map[string]int64, len(docs))
	for _, doc := range docs {
		p := filepath.Join(dir, filepath.FromSlash(doc))
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		deps[p] = info.ModTime().UnixNano()
	}
	return deps, nil
}
