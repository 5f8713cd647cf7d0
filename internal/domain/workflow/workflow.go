// Package workflow holds the state transitions of the coordination domain.
// Every function takes the current collection and returns the next one
// without touching its input; identifiers and timestamps come in through
// Stamp so results are deterministic. Persisting the result is the caller's job.
package workflow

import "time"

// Stamp carries the identity and creation instant assigned to a new record.
type Stamp struct {
	ID string
	At time.Time
}

// update copies items and applies fn to the first element matching pred.
// When nothing matches the original slice is returned with found=false.
func update[T any](items []T, pred func(T) bool, fn func(*T)) ([]T, bool) {
	for i := range items {
		if pred(items[i]) {
			out := make([]T, len(items))
			copy(out, items)
			fn(&out[i])
			return out, true
		}
	}
	return items, false
}

func appendCopy[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	return append(out, item)
}

func prependCopy[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}

func filter[T any](items []T, pred func(T) bool) []T {
	out := []T{}
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}
