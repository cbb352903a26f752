package session

import "sync"

type EventType string

const (
	EventLoggedIn  EventType = "LOGGED_IN"
	EventLoggedOut EventType = "LOGGED_OUT"
)

// Event is a typed auth-state change notification.
type Event struct {
	Type      EventType
	SessionID string
	Username  string
}

// Broker fans auth-state changes out to in-process subscribers, replacing
// the untyped storage event the browser app relied on.
type Broker struct {
	mu   sync.Mutex
	next int
	subs map[int]chan Event
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[int]chan Event)}
}

// Subscribe returns a receive channel and a cancel func. The channel is
// closed on cancel.
func (b *Broker) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan Event, 8)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish never blocks; a subscriber with a full buffer misses the event.
func (b *Broker) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
