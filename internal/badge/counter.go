// Package badge publishes the derived count of incomplete tasks. The value
// is never a source of truth: it is recomputed from the store after every
// mutation and pushed to subscribers.
package badge

import "sync"

type Counter struct {
	mu    sync.Mutex
	value int
	subs  []func(int)
}

func NewCounter() *Counter {
	return &Counter{}
}

func (c *Counter) Get() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set publishes the recomputed value to subscribers when it changed.
func (c *Counter) Set(value int) {
	c.mu.Lock()
	if value == c.value {
		c.mu.Unlock()
		return
	}
	c.value = value
	subs := make([]func(int), len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(value)
	}
}

// Subscribe registers fn for future changes and calls it with the current
// value so new observers start consistent.
func (c *Counter) Subscribe(fn func(int)) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.subs = append(c.subs, fn)
	value := c.value
	c.mu.Unlock()
	fn(value)
}
