package controller

import (
	"sort"
	"sync"
)

// Observable holds the latest value of a piece of screen state and pushes
// every new value to its subscribers.
type Observable[T any] struct {
	mu    sync.Mutex
	value T
	subs  map[int]func(T)
	next  int
}

func newObservable[T any](initial T) *Observable[T] {
	return &Observable[T]{value: initial, subs: map[int]func(T){}}
}

func (o *Observable[T]) Get() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

// Subscribe calls fn with the current value and then with every update.
// The returned func removes the subscription.
func (o *Observable[T]) Subscribe(fn func(T)) func() {
	o.mu.Lock()
	id := o.next
	o.next++
	o.subs[id] = fn
	current := o.value
	o.mu.Unlock()

	fn(current)
	return func() {
		o.mu.Lock()
		delete(o.subs, id)
		o.mu.Unlock()
	}
}

func (o *Observable[T]) set(v T) {
	o.mu.Lock()
	o.value = v
	ids := make([]int, 0, len(o.subs))
	for id := range o.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	subs := make([]func(T), 0, len(ids))
	for _, id := range ids {
		subs = append(subs, o.subs[id])
	}
	o.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}
