// Package cache implements the slot-addressable content cache that
// sits at the center of the emulation: a fixed-size array of content
// ids with O(1) membership/position lookup and in-place replacement
// under a no-duplicate invariant.
package cache

import (
	"fmt"

	"github.com/hopexn/cacheemu-go/trace"
)

const none = trace.NoneContent

// Cache is a fixed-size ordered array of content ids, a position map
// from content to slot index, and a hit-frequency map cleared
// explicitly between steps. The position and frequency maps are sparse,
// keyed by content id, rather than dense arrays sized to some maximum
// content id, so memory stays proportional to what is actually cached.
type Cache struct {
	contents []int32
	pos      map[int32]int
	freq     map[int32]int64
}

// New returns an empty Cache with the given capacity. capacity must be
// positive.
func New(capacity int) *Cache {
	if capacity <= 0 {
		panic(fmt.Sprintf("cache.New: capacity must be positive, got %d", capacity))
	}
	c := &Cache{
		contents: make([]int32, capacity),
		pos:      make(map[int32]int, capacity),
		freq:     make(map[int32]int64),
	}
	for i := range c.contents {
		c.contents[i] = none
	}
	return c
}

// Size returns the number of occupied slots.
func (c *Cache) Size() int {
	return len(c.pos)
}

// Capacity returns the total number of slots.
func (c *Cache) Capacity() int {
	return len(c.contents)
}

// Full reports whether every slot is occupied.
func (c *Cache) Full() bool {
	return c.Size() >= c.Capacity()
}

// checkIdx panics with a precondition-violation diagnostic if idx is
// not a valid slot index.
func (c *Cache) checkIdx(idx int) {
	if idx < 0 || idx >= c.Capacity() {
		panic(fmt.Sprintf("cache: slot index %d out of range [0, %d)", idx, c.Capacity()))
	}
}

// Get returns the content occupying slot idx, or the sentinel
// trace.NoneContent if the slot is empty.
func (c *Cache) Get(idx int) int32 {
	c.checkIdx(idx)
	return c.contents[idx]
}

// Contents returns the full slot array. The returned slice aliases the
// Cache's internal storage and must be treated as read-only; it is
// invalidated by the next mutating call.
func (c *Cache) Contents() []int32 {
	return c.contents
}

// Find returns the slot index holding content c, or -1 if c is not
// present.
func (c *Cache) Find(content int32) int {
	if idx, ok := c.pos[content]; ok {
		return idx
	}
	return -1
}

// Set writes content into slot idx. It is a precondition violation
// (and panics) for content to already be present anywhere in the
// cache. If slot idx previously held a different, non-sentinel
// content, that content is dropped from the position map first.
func (c *Cache) Set(idx int, content int32) {
	if content != none {
		if _, ok := c.pos[content]; ok {
			panic(fmt.Sprintf("cache.Set: content %d is already in the cache", content))
		}
	}
	c.checkIdx(idx)

	old := c.contents[idx]
	if old != none {
		delete(c.pos, old)
	}

	c.contents[idx] = content
	if content != none {
		c.pos[content] = idx
	}
}

// Replace writes newContent into the slot currently occupied by
// oldContent. If oldContent is the sentinel, the write targets the
// next unused slot (slot index Size()) — the caller is responsible for
// only doing this while the cache is not yet full. Otherwise oldContent
// must already occupy a slot; Replace panics if it does not.
func (c *Cache) Replace(newContent, oldContent int32) {
	var idx int
	if oldContent == none {
		idx = c.Size()
	} else {
		idx = c.Find(oldContent)
		if idx == -1 {
			panic(fmt.Sprintf("cache.Replace: content %d to replace is not in the cache", oldContent))
		}
	}
	c.Set(idx, newContent)
}

// HitTest increments content's hit frequency unconditionally and
// reports whether it is currently present in the cache.
func (c *Cache) HitTest(content int32) bool {
	c.freq[content]++
	return c.Find(content) != -1
}

// GetFrequency returns the accumulated hit count for content since the
// last ClearFrequencies, or 0 if content has not been hit-tested.
func (c *Cache) GetFrequency(content int32) int64 {
	return c.freq[content]
}

// GetFrequencies returns, for each content in contents (in order), the
// accumulated hit count recorded by HitTest since the last
// ClearFrequencies.
func (c *Cache) GetFrequencies(contents []int32) []int64 {
	out := make([]int64, len(contents))
	for i, content := range contents {
		out[i] = c.GetFrequency(content)
	}
	return out
}

// ClearFrequencies empties the hit-frequency map.
func (c *Cache) ClearFrequencies() {
	c.freq = make(map[int32]int64)
}

// Reset sets every slot to the sentinel and empties both the position
// and frequency maps.
func (c *Cache) Reset() {
	for i := range c.contents {
		c.contents[i] = none
	}
	c.pos = make(map[int32]int, c.Capacity())
	c.freq = make(map[int32]int64)
}
