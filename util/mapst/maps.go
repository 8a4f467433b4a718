// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package mapst holds small generic map helpers.
package mapst

import (
	"cmp"
	"slices"
)

// Keys returns the keys of m in unspecified order.
func Keys[K comparable, V any, M ~map[K]V](m M) []K {
	result := make([]K, 0, len(m))
	for k := range m {
		result = append(result, k)
	}
	return result
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[K cmp.Ordered, V any, M ~map[K]V](m M) []K {
	keys := Keys(m)
	slices.Sort(keys)
	return keys
}

// Filter returns the entries of m for which keep is true.
func Filter[K comparable, V any, M ~map[K]V](m M, keep func(K, V) bool) M {
	result := make(M, len(m))
	for k, v := range m {
		if keep(k, v) {
			result[k] = v
		}
	}
	return result
}
