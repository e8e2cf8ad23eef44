package bus

import (
	"sync"
	"time"
)

type Topic string

const (
	// TopicRefresh asks every data surface to re-fetch events.
	TopicRefresh Topic = "refreshEvents"
)

type Event struct {
	Topic  Topic
	Source string
	At     time.Time
}

// Bus is an in-process publish/subscribe channel. Each subscriber gets a
// buffered channel; a publish to a full channel is dropped for that
// subscriber, since one pending refresh already covers it.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]subscriber
	closed bool
}

type subscriber struct {
	topic Topic
	ch    chan Event
}

const bufferSize = 8

func New() *Bus {
	return &Bus{subs: make(map[int]subscriber)}
}

// Subscribe registers for topic. The returned function unsubscribes and
// closes the channel; calling it more than once is safe.
func (b *Bus) Subscribe(topic Topic) (<-chan Event, func()) {
	ch := make(chan Event, bufferSize)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = subscriber{topic: topic, ch: ch}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			if s, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(s.ch)
			}
			b.mu.Unlock()
		})
	}
}

// Publish delivers to every subscriber of topic and reports how many
// received it.
func (b *Bus) Publish(topic Topic, source string) int {
	ev := Event{Topic: topic, Source: source, At: time.Now()}

	b.mu.RLock()
	defer b.mu.RUnlock()

	delivered := 0
	for _, s := range b.subs {
		if s.topic != topic {
			continue
		}
		select {
		case s.ch <- ev:
			delivered++
		default:
		}
	}
	return delivered
}

// Refresh is shorthand for publishing TopicRefresh.
func (b *Bus) Refresh(source string) int {
	return b.Publish(TopicRefresh, source)
}

func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close closes every subscriber channel. Later subscriptions get a closed
// channel.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, s := range b.subs {
		close(s.ch)
		delete(b.subs, id)
	}
}
