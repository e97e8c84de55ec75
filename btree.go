// Package bptree implements an in-memory, ordered, duplicate-tolerant key
// container backed by a B+ tree.
//
// Index nodes route searches; every key lives in a leaf and the leaves form
// a singly linked chain in ascending key order. Find, Insert and Remove visit
// O(log N) nodes. Inserting a key equal to a stored one adds another copy;
// Remove drops one copy at a time.
//
// A Tree is not safe for concurrent use. Callers that share a tree across
// goroutines must serialize every call, e.g. with one mutex per tree.
package bptree

import (
	"cmp"
	"fmt"

	"github.com/alexhholmes/bptree/internal/algo"
)

// Tree is the main structure
type Tree[K any] struct {
	degree  int
	minLen  int
	compare algo.Compare[K]

	root *node[K] // index root, nil while the tree has at most one leaf
	head *node[K] // leftmost leaf, nil when the tree is empty

	count  int
	stats  Stats
	logger Logger
}

// New creates an empty tree whose nodes hold at most degree-1 keys between
// operations. compare must define a total order on K.
func New[K any](degree int, compare func(a, b K) int, opts ...Option) (*Tree[K], error) {
	if degree < MinDegree {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDegree, degree)
	}
	if compare == nil {
		return nil, ErrNilCompare
	}

	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	return &Tree[K]{
		degree:  degree,
		minLen:  minNodeLen(degree),
		compare: compare,
		logger:  options.logger,
	}, nil
}

// NewOrdered creates an empty tree ordered by cmp.Compare.
func NewOrdered[K cmp.Ordered](degree int, opts ...Option) (*Tree[K], error) {
	return New(degree, cmp.Compare[K], opts...)
}

// MustNew is like New but panics on an invalid degree or nil compare.
func MustNew[K any](degree int, compare func(a, b K) int, opts ...Option) *Tree[K] {
	t, err := New(degree, compare, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// MustNewOrdered is like NewOrdered but panics on an invalid degree.
func MustNewOrdered[K cmp.Ordered](degree int, opts ...Option) *Tree[K] {
	return MustNew(degree, cmp.Compare[K], opts...)
}

// Degree returns the maximum key capacity of a node.
func (t *Tree[K]) Degree() int {
	return t.degree
}

// MinLen returns the fewest keys a non-root node holds between operations.
func (t *Tree[K]) MinLen() int {
	return t.minLen
}

// Len returns the number of stored keys, counting duplicates.
func (t *Tree[K]) Len() int {
	return t.count
}

// Height returns the number of levels: 0 for an empty tree, 1 for a tree
// made of a single leaf.
func (t *Tree[K]) Height() int {
	if t.head == nil {
		return 0
	}
	height := 1
	for n := t.root; n != nil; n = n.children[0] {
		height++
		if n.childKind == leafKind {
			break
		}
	}
	return height
}

// Stats returns a snapshot of the tree's operation counters.
func (t *Tree[K]) Stats() Stats {
	return t.stats
}

// Find reports whether key is stored in the tree.
func (t *Tree[K]) Find(key K) bool {
	if t.head == nil {
		return false
	}
	if t.root == nil {
		return algo.FindKeyInLeaf(t.head.keys, key, t.compare) >= 0
	}

	n := t.root
	for {
		p := algo.FindChildIndex(n.keys, key, t.compare)
		// A separator is a copy of a stored leaf minimum, so a match here
		// proves key is present.
		if p > 0 && t.compare(n.keys[p-1], key) == 0 {
			return true
		}
		child := n.children[p]
		if n.childKind == leafKind {
			return algo.FindKeyInLeaf(child.keys, key, t.compare) >= 0
		}
		n = child
	}
}

// Ascend calls fn for every stored key in ascending order, following the
// leaf chain, until fn returns false.
func (t *Tree[K]) Ascend(fn func(key K) bool) {
	for leaf := t.head; leaf != nil; leaf = leaf.next {
		for _, key := range leaf.keys {
			if !fn(key) {
				return
			}
		}
	}
}

// Clear releases every node. The tree is empty afterwards; counters in Stats
// are kept.
func (t *Tree[K]) Clear() {
	if t.head == nil {
		return
	}

	t.logger.Info("clearing tree", "keys", t.count, "height", t.Height())

	// Nothing outside the tree references a node, so dropping root and head
	// releases the whole structure.
	t.root = nil
	t.head = nil
	t.count = 0
}

// descend walks from the root to the leaf that holds or would hold key. It
// returns the leaf's parent and the leaf's position among its children. The
// tree must have an index level.
func (t *Tree[K]) descend(key K) (*node[K], int, *node[K]) {
	n := t.root
	for {
		idx := algo.FindChildIndex(n.keys, key, t.compare)
		child := n.children[idx]
		if n.childKind == leafKind {
			return n, idx, child
		}
		n = child
	}
}

// refreshSeparator records key as the new minimum of the subtree at
// parent.children[idx]. The separator naming that minimum lives in the
// nearest ancestor where the path does not take the leftmost child. When the
// path is leftmost up to the root the subtree holds the tree minimum and no
// separator names it.
func (t *Tree[K]) refreshSeparator(parent *node[K], idx int, key K) {
	for idx == 0 {
		child := parent
		parent = parent.parent
		if parent == nil {
			return
		}
		idx = parent.childIndex(child)
	}
	parent.keys[idx-1] = key
}
