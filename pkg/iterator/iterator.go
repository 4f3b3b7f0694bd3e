package iterator

import "iter"

func Collect[T any](it iter.Seq[T]) []T {
	p := []T{}
	for value := range it {
		p = append(p, value)
	}
	return p
}

// Filter yields only the values that are true on the condition.
func Filter[T any](it iter.Seq[T], cond func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for value := range it {
			if cond(value) && !yield(value) {
				return
			}
		}
	}
}

// Values drops the keys of a two-valued sequence.
func Values[K, V any](it iter.Seq2[K, V]) iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, value := range it {
			if !yield(value) {
				return
			}
		}
	}
}
