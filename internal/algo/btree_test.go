package algo

import (
	"cmp"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func intKeys(n int) []int {
	keys := make([]int, n)
	for i := range keys {
		keys[i] = i * 2
	}
	return keys
}

func TestFindChildIndex(t *testing.T) {
	tests := []struct {
		name string
		keys []int
		key  int
		want int
	}{
		{
			name: "empty_node",
			keys: nil,
			key:  5,
			want: 0,
		},
		{
			name: "key_less_than_first",
			keys: []int{20, 40},
			key:  10,
			want: 0,
		},
		{
			name: "key_equal_first",
			keys: []int{20, 40},
			key:  20,
			want: 1,
		},
		{
			name: "key_between_keys",
			keys: []int{20, 40},
			key:  30,
			want: 1,
		},
		{
			name: "key_equal_last",
			keys: []int{20, 40},
			key:  40,
			want: 2,
		},
		{
			name: "key_greater_than_all",
			keys: []int{20, 40},
			key:  99,
			want: 2,
		},
		{
			name: "duplicates_skipped",
			keys: []int{10, 20, 20, 20, 30},
			key:  20,
			want: 4,
		},
		{
			name: "binary_search_path",
			keys: intKeys(100),
			key:  51,
			want: 26,
		},
		{
			name: "binary_search_exact",
			keys: intKeys(100),
			key:  50,
			want: 26,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindChildIndex(tt.keys, tt.key, cmp.Compare[int])
			assert.Equal(t, tt.want, got, "FindChildIndex should return correct child index")
		})
	}
}

func TestFindKeyInLeaf(t *testing.T) {
	tests := []struct {
		name string
		keys []int
		key  int
		want int
	}{
		{
			name: "empty_leaf",
			keys: nil,
			key:  1,
			want: -1,
		},
		{
			name: "found_first",
			keys: []int{1, 2, 3},
			key:  1,
			want: 0,
		},
		{
			name: "found_last",
			keys: []int{1, 2, 3},
			key:  3,
			want: 2,
		},
		{
			name: "missing",
			keys: []int{1, 3, 5},
			key:  4,
			want: -1,
		},
		{
			name: "first_of_duplicates",
			keys: []int{1, 4, 4, 4, 9},
			key:  4,
			want: 1,
		},
		{
			name: "binary_search_found",
			keys: intKeys(64),
			key:  62,
			want: 31,
		},
		{
			name: "binary_search_missing",
			keys: intKeys(64),
			key:  63,
			want: -1,
		},
		{
			name: "binary_search_past_end",
			keys: intKeys(64),
			key:  1000,
			want: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindKeyInLeaf(tt.keys, tt.key, cmp.Compare[int])
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindInsertPosition(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		key  string
		want int
	}{
		{name: "insert_into_empty", keys: nil, key: "m", want: 0},
		{name: "insert_at_beginning", keys: []string{"b", "c"}, key: "a", want: 0},
		{name: "insert_in_middle", keys: []string{"a", "c"}, key: "b", want: 1},
		{name: "insert_at_end", keys: []string{"a", "b"}, key: "c", want: 2},
		{name: "after_equal_key", keys: []string{"a", "b", "c"}, key: "b", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindInsertPosition(tt.keys, tt.key, strings.Compare)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInsertAt(t *testing.T) {
	tests := []struct {
		name  string
		slice []string
		index int
		value string
		want  []string
	}{
		{
			name:  "insert_at_beginning",
			slice: []string{"b", "c"},
			index: 0,
			value: "a",
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "insert_in_middle",
			slice: []string{"a", "c"},
			index: 1,
			value: "b",
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "insert_at_end",
			slice: []string{"a", "b"},
			index: 2,
			value: "c",
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "insert_into_empty",
			slice: []string{},
			index: 0,
			value: "a",
			want:  []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InsertAt(tt.slice, tt.index, tt.value)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInsertAtWithinCapacity(t *testing.T) {
	backing := make([]int, 0, 4)
	backing = append(backing, 1, 3)

	got := InsertAt(backing, 1, 2)
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.Equal(t, 4, cap(got), "InsertAt should reuse spare capacity")
}

func TestRemoveAt(t *testing.T) {
	tests := []struct {
		name  string
		slice []string
		index int
		want  []string
	}{
		{
			name:  "remove_first",
			slice: []string{"a", "b", "c"},
			index: 0,
			want:  []string{"b", "c"},
		},
		{
			name:  "remove_middle",
			slice: []string{"a", "b", "c"},
			index: 1,
			want:  []string{"a", "c"},
		},
		{
			name:  "remove_last",
			slice: []string{"a", "b", "c"},
			index: 2,
			want:  []string{"a", "b"},
		},
		{
			name:  "remove_only_element",
			slice: []string{"a"},
			index: 0,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemoveAt(tt.slice, tt.index)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRemoveAtZeroesTail(t *testing.T) {
	a, b, c := new(int), new(int), new(int)
	slice := []*int{a, b, c}

	got := RemoveAt(slice, 0)
	assert.Equal(t, []*int{b, c}, got)
	assert.Nil(t, slice[2], "vacated slot should be zeroed")
}

func TestTruncate(t *testing.T) {
	for _, n := range []int{0, 1, 3, 5} {
		t.Run(fmt.Sprintf("keep_%d", n), func(t *testing.T) {
			slice := []int{1, 2, 3, 4, 5}
			got := Truncate(slice, n)
			assert.Equal(t, []int{1, 2, 3, 4, 5}[:n], got)
			for i := n; i < len(slice); i++ {
				assert.Zero(t, slice[i], "dropped slot %d should be zeroed", i)
			}
		})
	}
}

// Test that read-only functions don't mutate input
func TestReadOnlyBehavior(t *testing.T) {
	t.Run("FindChildIndex_no_mutation", func(t *testing.T) {
		keys := []int{2, 4, 6}
		_ = FindChildIndex(keys, 5, cmp.Compare[int])
		assert.Equal(t, []int{2, 4, 6}, keys)
	})

	t.Run("FindKeyInLeaf_no_mutation", func(t *testing.T) {
		keys := []int{2, 4, 6}
		_ = FindKeyInLeaf(keys, 4, cmp.Compare[int])
		assert.Equal(t, []int{2, 4, 6}, keys)
	})
}
