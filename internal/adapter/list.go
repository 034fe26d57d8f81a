package adapter

import "sync"

// Keyed is anything with a stable identity; domain entities key by id.
type Keyed interface {
	Key() int
}

// List keeps the rows of a flat list screen.
type List[T Keyed] struct {
	mu   sync.Mutex
	rows []T
}

func NewList[T Keyed]() *List[T] {
	return &List[T]{}
}

// Submit replaces the rows and returns what changed.
func (l *List[T]) Submit(items []T) []Op[T] {
	l.mu.Lock()
	defer l.mu.Unlock()

	ops := Diff(l.rows, items, func(v T) int { return v.Key() })
	l.rows = append([]T(nil), items...)
	return ops
}

func (l *List[T]) Rows() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]T(nil), l.rows...)
}

func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.rows)
}
