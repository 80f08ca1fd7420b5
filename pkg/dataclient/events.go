package dataclient

import (
	"sync"
	"time"
)

// coalesceWindow is how long the dispatcher waits after the first queued
// notification before delivering, so a burst of same-named notifications
// (e.g. a bulk delete) collapses into one delivery.
const coalesceWindow = 2 * time.Millisecond

type subscriber struct {
	id int
	fn func()
}

// Bus is a batched notification dispatcher. Producers call Notify with a
// topic name, consumers Subscribe callbacks to a topic. Notifications for
// the same topic queued within the coalescing window are delivered exactly
// once. Callbacks for one topic run in subscription order; no ordering is
// guaranteed between different topics beyond first-notified, first-served.
type Bus struct {
	mu          sync.Mutex
	subs        map[string][]subscriber
	pending     map[string]bool
	order       []string
	waiters     []chan struct{}
	dispatching bool
	nextID      int
	closed      bool

	wake chan struct{}
	quit chan struct{}
}

func NewBus() *Bus {
	b := &Bus{
		subs:    make(map[string][]subscriber),
		pending: make(map[string]bool),
		wake:    make(chan struct{}, 1),
		quit:    make(chan struct{}),
	}
	go b.run()
	return b
}

// Subscribe registers a callback for topic and returns its unsubscribe
// function. Callbacks run on the dispatcher goroutine and must not block.
func (b *Bus) Subscribe(topic string, fn func()) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscriber{id: id, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		list := b.subs[topic]
		for i, s := range list {
			if s.id == id {
				b.subs[topic] = append(list[:i:i], list[i+1:]...)
				break
			}
		}
	}
}

// Notify queues one delivery for topic. Repeated calls before the dispatcher
// runs collapse into a single delivery.
func (b *Bus) Notify(topic string) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	if !b.pending[topic] {
		b.pending[topic] = true
		b.order = append(b.order, topic)
	}
	b.mu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// Flush blocks until all queued notifications have been delivered. Intended
// for shutdown paths and tests that need deterministic delivery.
func (b *Bus) Flush() {
	b.mu.Lock()
	if len(b.order) == 0 && !b.dispatching {
		b.mu.Unlock()
		return
	}
	ch := make(chan struct{})
	b.waiters = append(b.waiters, ch)
	b.mu.Unlock()
	<-ch
}

// Close stops the dispatcher. Pending notifications are dropped.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	waiters := b.waiters
	b.waiters = nil
	b.order = nil
	b.pending = make(map[string]bool)
	b.mu.Unlock()

	close(b.quit)
	for _, ch := range waiters {
		close(ch)
	}
}

func (b *Bus) run() {
	for {
		select {
		case <-b.wake:
			time.Sleep(coalesceWindow)
			b.settle()
		case <-b.quit:
			return
		}
	}
}

// settle drains the pending queue, re-checking after each round because a
// callback may queue further notifications. Waiters are released only once
// the queue is empty.
func (b *Bus) settle() {
	for {
		b.mu.Lock()
		if len(b.order) == 0 {
			b.dispatching = false
			waiters := b.waiters
			b.waiters = nil
			b.mu.Unlock()
			for _, ch := range waiters {
				close(ch)
			}
			return
		}
		b.dispatching = true
		topics := b.order
		b.order = nil
		b.pending = make(map[string]bool)
		batches := make([][]subscriber, len(topics))
		for i, topic := range topics {
			batches[i] = append([]subscriber(nil), b.subs[topic]...)
		}
		b.mu.Unlock()

		for _, batch := range batches {
			for _, s := range batch {
				s.fn()
			}
		}
	}
}
