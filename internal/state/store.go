// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package state

// ListStore is the observable state behind one list screen: the records,
// whether a request is in flight, and the last error message.
type ListStore[T any] struct {
	Items   *Signal[[]T]
	Loading *Signal[bool]
	Error   *Signal[string]
}

// NewListStore returns an empty, idle store.
func NewListStore[T any]() *ListStore[T] {
	return &ListStore[T]{
		Items:   NewSignal[[]T](nil),
		Loading: NewSignal(false),
		Error:   NewSignal(""),
	}
}

// Begin marks a request as started and clears the previous error.
func (s *ListStore[T]) Begin() {
	s.Loading.Set(true)
	s.Error.Set("")
}

// Finish stores the outcome of a load. On error the items are left as
// they were.
func (s *ListStore[T]) Finish(items []T, err error) {
	if err != nil {
		s.Error.Set(err.Error())
	} else {
		s.Items.Set(items)
	}
	s.Loading.Set(false)
}

// Fail records err without touching the items.
func (s *ListStore[T]) Fail(err error) {
	if err != nil {
		s.Error.Set(err.Error())
	}
	s.Loading.Set(false)
}

// Snapshot returns a copy of the current items.
func (s *ListStore[T]) Snapshot() []T {
	items := s.Items.Get()
	return append([]T(nil), items...)
}

// Append adds v at the end of the list.
func (s *ListStore[T]) Append(v T) {
	s.Items.Update(func(items []T) []T {
		out := make([]T, 0, len(items)+1)
		out = append(out, items...)
		return append(out, v)
	})
}

// Replace swaps the first item matching pred with v. It reports whether an
// item was found.
func (s *ListStore[T]) Replace(pred func(T) bool, v T) bool {
	found := false
	s.Items.Update(func(items []T) []T {
		out := append([]T(nil), items...)
		for i := range out {
			if pred(out[i]) {
				out[i] = v
				found = true
				break
			}
		}
		return out
	})
	return found
}

// Modify applies fn to every item matching pred and keeps positions intact.
func (s *ListStore[T]) Modify(pred func(T) bool, fn func(T) T) int {
	n := 0
	s.Items.Update(func(items []T) []T {
		out := append([]T(nil), items...)
		for i := range out {
			if pred(out[i]) {
				out[i] = fn(out[i])
				n++
			}
		}
		return out
	})
	return n
}

// Remove drops every item matching pred.
func (s *ListStore[T]) Remove(pred func(T) bool) {
	s.Items.Update(func(items []T) []T {
		out := make([]T, 0, len(items))
		for _, it := range items {
			if !pred(it) {
				out = append(out, it)
			}
		}
		return out
	})
}

// Count returns the number of items matching pred, or all items if pred is nil.
func (s *ListStore[T]) Count(pred func(T) bool) int {
	items := s.Items.Get()
	if pred == nil {
		return len(items)
	}
	n := 0
	for _, it := range items {
		if pred(it) {
			n++
		}
	}
	return n
}
