package sound

import "sync"

// Broadcaster is an Output that fans events out to subscribers, typically
// the browser's event stream. A subscriber whose buffer is full misses the
// event; Play never blocks.
type Broadcaster struct {
	mu     sync.Mutex
	subs   map[int]chan Event
	next   int
	buf    int
	closed bool
}

// NewBroadcaster returns a Broadcaster whose subscriber channels hold buf events.
func NewBroadcaster(buf int) *Broadcaster {
	if buf <= 0 {
		buf = 16
	}
	return &Broadcaster{subs: make(map[int]chan Event), buf: buf}
}

// Play delivers ev to every subscriber that has room for it.
func (b *Broadcaster) Play(ev Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	return nil
}

// Subscribe registers a listener. The returned cancel func removes it and
// closes the channel. After Close, Subscribe returns an already-closed channel.
func (b *Broadcaster) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, b.buf)
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	id := b.next
	b.next++
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if c, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(c)
			}
		})
	}
}

// Subscribers is the number of live subscriptions.
func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close ends every subscription. Idempotent.
func (b *Broadcaster) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	for id, ch := range b.subs {
		close(ch)
		delete(b.subs, id)
	}
	return nil
}
