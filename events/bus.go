package events

import "sync"

type EventType string

const (
	PostCreated EventType = "post_created"
	PostUpdated EventType = "post_updated"
	PostDeleted EventType = "post_deleted"
)

// Event tells clients something changed; they re-fetch the list rather than
// patching local state, so the payload carries no post body.
type Event struct {
	Type   EventType `json:"type"`
	PostID string    `json:"post_id"`
}

// Bus fans post mutations out to subscribers. Callbacks run on the
// publishing goroutine and must not block.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(Event)
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]func(Event))}
}

// Subscribe registers cb and returns a handle that removes it. Unsubscribing
// twice is a no-op.
func (b *Bus) Subscribe(cb func(Event)) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = cb
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	cbs := make([]func(Event), 0, len(b.subs))
	for _, cb := range b.subs {
		cbs = append(cbs, cb)
	}
	b.mu.RUnlock()

	for _, cb := range cbs {
		cb(e)
	}
}
