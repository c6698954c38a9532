package notify

import (
	"errors"
	"fmt"
	"sync"
)

// Option configures a Broadcaster.
type Option func(*options)

type options struct {
	onError func(error)
}

// WithErrorHandler sets a function called once per failed observer delivery.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.onError = fn
	}
}

type subscriber[T any] struct {
	id       uint64
	observer Observer[T]
}

// Broadcaster fans values out to observers in subscription order.
//
// The subscriber list is copy-on-write; Notify works on the list as it was
// when the call started, so subscribing or unsubscribing during a delivery
// takes effect on the next one.
type Broadcaster[T any] struct {
	mu      sync.RWMutex
	subs    []subscriber[T]
	nextID  uint64
	onError func(error)
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster[T any](opts ...Option) *Broadcaster[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Broadcaster[T]{onError: o.onError}
}

// Subscribe registers an observer. The returned Subscription removes it.
// Subscribing a nil observer returns an already released Subscription.
func (b *Broadcaster[T]) Subscribe(o Observer[T]) *Subscription {
	if o == nil {
		return released()
	}

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	subs := make([]subscriber[T], len(b.subs), len(b.subs)+1)
	copy(subs, b.subs)
	b.subs = append(subs, subscriber[T]{id: id, observer: o})
	b.mu.Unlock()

	return newSubscription(func() { b.remove(id) })
}

func (b *Broadcaster[T]) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.id != id {
			continue
		}
		subs := make([]subscriber[T], 0, len(b.subs)-1)
		subs = append(subs, b.subs[:i]...)
		b.subs = append(subs, b.subs[i+1:]...)
		return
	}
}

// Len returns the number of active observers.
func (b *Broadcaster[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Notify delivers value to every observer in subscription order and returns
// the joined delivery errors, or nil when every observer succeeded.
func (b *Broadcaster[T]) Notify(value T) error {
	b.mu.RLock()
	subs := b.subs
	b.mu.RUnlock()

	var errs []error
	for _, s := range subs {
		if err := deliver(s.observer, value); err != nil {
			if b.onError != nil {
				b.onError(err)
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func deliver[T any](o Observer[T], value T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrObserverPanic, r)
		}
	}()
	return o.OnNext(value)
}
