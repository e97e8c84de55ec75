// Package algo contains algorithms used for traversing and editing a b+ tree.
package algo

import "sort"

const searchThreshold = 32

// Compare orders two keys. It returns a negative number when a < b, zero when
// a == b and a positive number when a > b.
type Compare[K any] func(a, b K) int

// FindChildIndex returns the index of child pointer to follow for key, which
// is the number of keys not greater than key.
func FindChildIndex[K any](keys []K, key K, cmp Compare[K]) int {
	if len(keys) < searchThreshold {
		i := 0
		for i < len(keys) && cmp(key, keys[i]) >= 0 {
			i++
		}
		return i
	}

	return sort.Search(len(keys), func(i int) bool {
		return cmp(key, keys[i]) < 0
	})
}

// FindKeyInLeaf returns index of the first key equal to key, or -1 if not found
func FindKeyInLeaf[K any](keys []K, key K, cmp Compare[K]) int {
	if len(keys) < searchThreshold {
		for i := range keys {
			if cmp(key, keys[i]) == 0 {
				return i
			}
		}
		return -1
	}

	idx := sort.Search(len(keys), func(i int) bool {
		return cmp(keys[i], key) >= 0
	})
	if idx < len(keys) && cmp(keys[idx], key) == 0 {
		return idx
	}
	return -1
}

// FindInsertPosition returns position to insert key in leaf. Equal keys keep
// their insertion order: the new key goes after them.
func FindInsertPosition[K any](keys []K, key K, cmp Compare[K]) int {
	return FindChildIndex(keys, key, cmp)
}

// InsertAt inserts value at index in slice
func InsertAt[T any](slice []T, index int, value T) []T {
	var zero T
	slice = append(slice, zero)
	copy(slice[index+1:], slice[index:])
	slice[index] = value
	return slice
}

// RemoveAt removes element at index from slice. The vacated tail slot is
// zeroed so the backing array does not pin the removed element.
func RemoveAt[T any](slice []T, index int) []T {
	copy(slice[index:], slice[index+1:])
	var zero T
	slice[len(slice)-1] = zero
	return slice[:len(slice)-1]
}

// Truncate drops every element from index on, zeroing the dropped slots.
func Truncate[T any](slice []T, index int) []T {
	clear(slice[index:])
	return slice[:index]
}
