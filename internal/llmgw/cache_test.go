package llmgw

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResponseCacheExpiry(t *testing.T) {
	c := newResponseCache(4, 10*time.Millisecond)
	c.set("k", "hello", "model-a")

	content, model, ok := c.get("k")
	assert.True(t, ok)
	assert.Equal(t, "hello", content)
	assert.Equal(t, "model-a", model)

	time.Sleep(20 * time.Millisecond)

	_, _, ok = c.get("k")
	assert.False(t, ok, "expired entry must not be served")
}

func TestCacheKeyStableForIdenticalInputs(t *testing.T) {
	a := cacheKey("psychology", "sys", "user", "model-a")
	b := cacheKey("psychology", "sys", "user", "model-a")
	assert.Equal(t, a, b)

	c := cacheKey("psychology", "sys", "other-user", "model-a")
	assert.NotEqual(t, a, c)
}

func TestCacheKeyLength(t *testing.T) {
	k := cacheKey("strategy", "sys", "user", "model-a")
	assert.Len(t, k, 16)
}
