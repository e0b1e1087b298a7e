package image

import (
	"container/list"
	"sync"
)

// renderKey identifies one rendered output: same image content, protocol,
// and cell footprint always produce the same escape string.
type renderKey struct {
	protocol string
	cols     int
	rows     int
	sum      [32]byte
}

type renderEntry struct {
	key  renderKey
	out  string
	size int64
}

// renderCache is an LRU cache of rendered escape strings, bounded by total
// byte size. Rendering a weather glyph or logo every tick would dominate
// the refresh cost; the cache makes repeat frames free.
type renderCache struct {
	mu    sync.Mutex
	items map[renderKey]*list.Element
	order *list.List // front = most recently used
	max   int64
	used  int64
}

func newRenderCache(maxBytes int64) *renderCache {
	if maxBytes <= 0 {
		maxBytes = 8 << 20
	}
	return &renderCache{
		items: make(map[renderKey]*list.Element),
		order: list.New(),
		max:   maxBytes,
	}
}

func (c *renderCache) get(key renderKey) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return "", false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*renderEntry).out, true
}

func (c *renderCache) put(key renderKey, out string) {
	size := int64(len(out))

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		old := elem.Value.(*renderEntry)
		c.used += size - old.size
		old.out = out
		old.size = size
		c.order.MoveToFront(elem)
	} else {
		elem := c.order.PushFront(&renderEntry{key: key, out: out, size: size})
		c.items[key] = elem
		c.used += size
	}

	for c.used > c.max && c.order.Len() > 1 {
		back := c.order.Back()
		entry := back.Value.(*renderEntry)
		c.order.Remove(back)
		delete(c.items, entry.key)
		c.used -= entry.size
	}
}

func (c *renderCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
