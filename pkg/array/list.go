package array

import "iter"

const (
	growThreshold   = 0.90
	growFactor      = 1.75
	shrinkThreshold = 0.25
	shrinkFactor    = 0.50
)

// List is a growable sequence with explicit capacity management. It grows by
// growFactor once more than 90% of its capacity is used and shrinks by half
// when popping leaves it under a quarter full.
type List[T any] struct {
	items []T
}

func NewList[T any](capacity int) *List[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &List[T]{items: make([]T, 0, capacity)}
}

func (l *List[T]) Len() int {
	return len(l.items)
}

func (l *List[T]) Cap() int {
	return cap(l.items)
}

func (l *List[T]) Push(value T) {
	l.tryGrow()
	l.items = append(l.items, value)
}

func (l *List[T]) Pop() (T, bool) {
	var zero T
	if len(l.items) == 0 {
		return zero, false
	}

	last := len(l.items) - 1
	value := l.items[last]
	l.items[last] = zero
	l.items = l.items[:last]
	l.tryShrink()

	return value, true
}

func (l *List[T]) At(index int) (T, bool) {
	var zero T
	if index < 0 || index >= len(l.items) {
		return zero, false
	}
	return l.items[index], true
}

func (l *List[T]) Set(index int, value T) bool {
	if index < 0 || index >= len(l.items) {
		return false
	}
	l.items[index] = value
	return true
}

// Items returns the backing slice. Callers must not append to it.
func (l *List[T]) Items() []T {
	return l.items
}

// Clear drops every element but keeps the allocated capacity.
func (l *List[T]) Clear() {
	clear(l.items)
	l.items = l.items[:0]
}

func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, item := range l.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

func (l *List[T]) tryGrow() {
	capacity := cap(l.items)
	if float64(len(l.items)) <= float64(capacity)*growThreshold {
		return
	}

	next := int(float64(capacity) * growFactor)
	if next <= capacity {
		next = capacity + 1
	}
	l.setCapacity(next)
}

func (l *List[T]) tryShrink() {
	capacity := cap(l.items)
	if float64(len(l.items)) >= float64(capacity)*shrinkThreshold {
		return
	}
	l.setCapacity(int(float64(capacity) * shrinkFactor))
}

func (l *List[T]) setCapacity(capacity int) {
	if capacity < len(l.items) {
		capacity = len(l.items)
	}
	items := make([]T, len(l.items), capacity)
	copy(items, l.items)
	l.items = items
}
