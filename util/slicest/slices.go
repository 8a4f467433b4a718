// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package slicest holds small generic slice helpers used by the filters and
// the table renderers.
package slicest

// Filter

// Filter returns the elements of s for which keep is true, in order. The
// input is never modified.
func Filter[T any, S ~[]T](s S, keep func(T) bool) S {
	out := make(S, 0, len(s))
	for _, t := range s {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// Count returns how many elements satisfy fn.
func Count[T any, S ~[]T](s S, fn func(T) bool) int {
	return ReduceD(s, 0, func(t T, n int) int {
		if fn(t) {
			n++
		}
		return n
	})
}

// Conversion

// ToMap builds a map from s; later elements win on duplicate keys.
func ToMap[T any, K comparable, V any, S ~[]T](s S, fn func(T) (K, V)) map[K]V {
	result := make(map[K]V, len(s))
	for _, t := range s {
		k, v := fn(t)
		result[k] = v
	}
	return result
}

// Reduce

// ReduceD reduces s to type U starting from init.
func ReduceD[T any, S ~[]T, U any](s S, init U, fn func(T, U) U) U {
	result, _ := ReduceXD(s, init, func(t T, u U) (U, error) {
		return fn(t, u), nil
	})
	return result
}

// ReduceXD is ReduceD with error propagation; it stops at the first error.
func ReduceXD[T any, S ~[]T, U any](s S, init U, fn func(T, U) (U, error)) (U, error) {
	var zero U
	for _, t := range s {
		var err error
		init, err = fn(t, init)
		if err != nil {
			return zero, err
		}
	}
	return init, nil
}

// Map

// MapX maps s through fn and stops at the first error.
func MapX[T, U any, S ~[]T](s S, fn func(T) (U, error)) ([]U, error) {
	result := make([]U, len(s))
	for i, v := range s {
		out, err := fn(v)
		if err != nil {
			return nil, err
		}
		result[i] = out
	}
	return result, nil
}

// Map maps s through fn.
func Map[T, U any, S ~[]T](s S, fn func(T) U) []U {
	result, _ := MapX(s, func(t T) (U, error) {
		return fn(t), nil
	})
	return result
}
