// Package events provides an in-memory pub/sub bus for position lifecycle
// events, with a bounded replay buffer for late subscribers and gRPC streaming.
package events

import (
	"sync"
	"sync/atomic"

	"quantra/internal/domain"
)

// defaultKeep bounds the replay buffer handed to new subscribers.
const defaultKeep = 256

// Bus fans lifecycle events out to subscribers. Publishing never blocks:
// a slow subscriber has events dropped and the drop counted.
type Bus struct {
	mu        sync.Mutex
	nextSubID int
	subs      map[int]chan domain.Event

	recent []domain.Event // ring of the last defaultKeep events
	seq    uint64         // total events published
	dropped atomic.Uint64
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan domain.Event)}
}

// Publish records the event and notifies subscribers (non-blocking send).
func (b *Bus) Publish(ev domain.Event) {
	b.mu.Lock()
	if len(b.recent) < defaultKeep {
		b.recent = append(b.recent, ev)
	} else {
		b.recent[b.seq%defaultKeep] = ev
	}
	b.seq++
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			b.dropped.Add(1)
		}
	}
	b.mu.Unlock()
}

// Subscribe creates a new subscription channel for lifecycle events.
func (b *Bus) Subscribe(bufSize int) (id int, ch <-chan domain.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id = b.nextSubID
	b.nextSubID++
	c := make(chan domain.Event, bufSize)
	b.subs[id] = c
	return id, c
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Bus) Unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

// Recent returns a copy of the retained events, oldest first.
func (b *Bus) Recent() []domain.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]domain.Event, 0, len(b.recent))
	if b.seq > defaultKeep {
		head := int(b.seq % defaultKeep)
		out = append(out, b.recent[head:]...)
		out = append(out, b.recent[:head]...)
	} else {
		out = append(out, b.recent...)
	}
	return out
}

// Dropped reports how many events were lost to slow subscribers.
func (b *Bus) Dropped() uint64 {
	return b.dropped.Load()
}

// Published reports the total number of events published.
func (b *Bus) Published() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.seq
}
