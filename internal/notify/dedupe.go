package notify

import "sync"

// Cache is a bounded set of already-notified conversation keys. Insertion
// order defines recency: once the capacity is exceeded, only the most
// recently added keys are retained. Access never refreshes a key.
type Cache struct {
	capacity int
	keys     []string
	index    map[string]struct{}
	mutex    sync.Mutex
}

func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = 500
	}
	return &Cache{
		capacity: capacity,
		index:    make(map[string]struct{}),
	}
}

func (c *Cache) Contains(key string) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	_, ok := c.index[key]
	return ok
}

// Add registers a key. Re-adding an existing key does not refresh its
// position. When the cache grows past capacity, the oldest entries are
// evicted and become eligible to trigger notifications again.
func (c *Cache) Add(key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, ok := c.index[key]; ok {
		return
	}

	c.keys = append(c.keys, key)
	c.index[key] = struct{}{}

	if len(c.keys) > c.capacity {
		evicted := c.keys[:len(c.keys)-c.capacity]
		for _, old := range evicted {
			delete(c.index, old)
		}
		c.keys = append([]string(nil), c.keys[len(c.keys)-c.capacity:]...)
	}
}

// Remove drops a key so the conversation may notify again. Called when a
// conversation's messages are marked read.
func (c *Cache) Remove(key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, ok := c.index[key]; !ok {
		return
	}

	delete(c.index, key)
	for i, k := range c.keys {
		if k == key {
			c.keys = append(c.keys[:i], c.keys[i+1:]...)
			break
		}
	}
}

func (c *Cache) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return len(c.keys)
}
