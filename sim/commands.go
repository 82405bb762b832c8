package sim

// Commands buffers work that must run after every system of a tick has
// executed, so that deferred callbacks observe the final state of the tick.
type Commands struct {
	defers []func()
}

// NewCommands returns an empty command buffer.
func NewCommands() *Commands {
	return &Commands{}
}

// Defer queues a function to run on the next Flush.
func (c *Commands) Defer(fn func()) {
	if fn == nil {
		return
	}
	c.defers = append(c.defers, fn)
}

// Len reports the number of queued functions.
func (c *Commands) Len() int {
	return len(c.defers)
}

// Flush runs all queued functions in the order they were deferred and resets
// the buffer. Functions deferred while flushing run in the same flush.
func (c *Commands) Flush() {
	for i := 0; i < len(c.defers); i++ {
		c.defers[i]()
	}

	clear(c.defers)
	c.defers = c.defers[:0]
}
