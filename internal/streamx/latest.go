// Package streamx provides a hot, latest-value observable cell: one writer,
// any number of subscribers, each delivered the current value immediately on
// subscribe and every subsequent update. Late subscribers see only the most
// recent value, not history.
package streamx

import "sync"

// Latest holds a current value and broadcasts updates to subscribers.
// The zero value is not usable; construct with NewLatest.
type Latest[T any] struct {
	mu     sync.Mutex
	value  T
	subs   map[int]chan T
	nextID int
	closed bool
}

// NewLatest returns a Latest seeded with the given initial value.
func NewLatest[T any](initial T) *Latest[T] {
	return &Latest[T]{
		value: initial,
		subs:  map[int]chan T{},
	}
}

// Get returns the current value.
func (l *Latest[T]) Get() T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value
}

// Publish stores v as the current value and delivers it to every subscriber.
// A subscriber that has not drained its channel is skipped for intermediate
// values after its pending one is replaced, keeping publishers non-blocking
// while guaranteeing each subscriber eventually observes the newest value.
func (l *Latest[T]) Publish(v T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.value = v
	for _, ch := range l.subs {
		// drop the stale pending value, keep only the newest
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- v:
		default:
		}
	}
}

// Subscribe registers a new subscriber. The returned channel carries the
// current value immediately, then every later Publish. Call cancel to
// unregister and close the channel.
func (l *Latest[T]) Subscribe() (<-chan T, func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch := make(chan T, 1)
	id := l.nextID
	l.nextID++

	if l.closed {
		close(ch)
		return ch, func() {}
	}

	l.subs[id] = ch
	ch <- l.value

	cancel := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if c, ok := l.subs[id]; ok {
			delete(l.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// Close unregisters all subscribers and closes their channels. Publish
// becomes a no-op afterwards.
func (l *Latest[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	for id, ch := range l.subs {
		delete(l.subs, id)
		close(ch)
	}
}
