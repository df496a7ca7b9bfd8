package llmgw

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// responseCache is an in-memory LRU cache of prior Generate responses,
// wrapped with a TTL so stale entries are never served even though the
// LRU backing store has no notion of expiry on its own.
type responseCache struct {
	mu    sync.Mutex
	lru   *lru.Cache[string, cacheEntry]
	ttl   time.Duration
}

type cacheEntry struct {
	content   string
	model     string
	expiresAt time.Time
}

func newResponseCache(size int, ttl time.Duration) *responseCache {
	l, err := lru.New[string, cacheEntry](size)
	if err != nil {
		// size <= 0 is a programmer error; fall back to a minimal cache
		// rather than panic in a hot path.
		l, _ = lru.New[string, cacheEntry](1)
	}
	return &responseCache{lru: l, ttl: ttl}
}

func (c *responseCache) get(key string) (content, model string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, found := c.lru.Get(key)
	if !found {
		return "", "", false
	}
	if time.Now().After(entry.expiresAt) {
		c.lru.Remove(key)
		return "", "", false
	}
	return entry.content, entry.model, true
}

func (c *responseCache) set(key, content, model string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lru.Add(key, cacheEntry{
		content:   content,
		model:     model,
		expiresAt: time.Now().Add(c.ttl),
	})
}

// cacheKey builds the SHA-256-derived cache key spec.md §4.C1 specifies:
// SHA-256(prefix || canonical_json({system, user, model}))[:16].
func cacheKey(prefix, system, user, model string) string {
	payload, _ := json.Marshal(struct {
		System string `json:"system"`
		User   string `json:"user"`
		Model  string `json:"model"`
	}{system, user, model})

	h := sha256.New()
	h.Write([]byte(prefix))
	h.Write(payload)
	sum := h.Sum(nil)
	return hex.EncodeToString(sum)[:16]
}
