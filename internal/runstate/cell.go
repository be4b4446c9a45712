package runstate

import "sync"

// Signal is the run-state facility used by the reconciler.
type Signal interface {
	// Current returns the run state as of now.
	Current() RunState
	// Broadcast publishes a new run state. It never fails, including
	// when there are no subscribers.
	Broadcast(RunState)
}

// Cell is the process-wide Signal.
type Cell struct {
	mu      sync.Mutex
	current RunState
	subs    map[int]chan RunState
	nextID  int
}

// NewCell creates a cell holding initial.
func NewCell(initial RunState) *Cell {
	return &Cell{
		current: initial,
		subs:    make(map[int]chan RunState),
	}
}

// Current returns the run state as of now.
func (c *Cell) Current() RunState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Broadcast sets the current state and notifies every subscriber without
// blocking. A subscriber that has not drained its previous value gets the
// new one in its place.
func (c *Cell) Broadcast(s RunState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = s
	for _, ch := range c.subs {
		select {
		case ch <- s:
		default:
			// Drop the stale value, then deliver
			select {
			case <-ch:
			default:
			}
			ch <- s
		}
	}
}

// Subscribe returns a channel receiving every subsequent state, and a
// cancel func that closes it. Each channel buffers the latest value only.
func (c *Cell) Subscribe() (<-chan RunState, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	ch := make(chan RunState, 1)
	c.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Subscribers returns the number of active subscriptions.
func (c *Cell) Subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}
