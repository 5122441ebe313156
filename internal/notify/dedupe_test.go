package notify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheAddContains(t *testing.T) {
	cache := NewCache(10)

	assert.False(t, cache.Contains("client-1"))

	cache.Add("client-1")
	assert.True(t, cache.Contains("client-1"))
	assert.Equal(t, 1, cache.Len())

	// Re-adding is a no-op.
	cache.Add("client-1")
	assert.Equal(t, 1, cache.Len())
}

func TestCacheEvictsOldestBeyondCapacity(t *testing.T) {
	cache := NewCache(5)

	for i := 0; i < 8; i++ {
		cache.Add(fmt.Sprintf("client-%d", i))
	}

	assert.Equal(t, 5, cache.Len())

	// The three oldest keys are gone and may notify again.
	for i := 0; i < 3; i++ {
		assert.False(t, cache.Contains(fmt.Sprintf("client-%d", i)))
	}
	for i := 3; i < 8; i++ {
		assert.True(t, cache.Contains(fmt.Sprintf("client-%d", i)))
	}
}

func TestCacheRemove(t *testing.T) {
	cache := NewCache(10)

	cache.Add("seller-7")
	cache.Add("client-7")

	cache.Remove("seller-7")
	assert.False(t, cache.Contains("seller-7"))
	assert.True(t, cache.Contains("client-7"))
	assert.Equal(t, 1, cache.Len())

	// Removing an absent key is harmless.
	cache.Remove("seller-7")
	assert.Equal(t, 1, cache.Len())
}
