package bptree

import "slices"

// MinDegree is the smallest degree a tree can be built with.
const MinDegree = 3

// nodeKind tags which payload of a node is in use.
type nodeKind uint8

const (
	leafKind nodeKind = iota
	indexKind
)

func (k nodeKind) String() string {
	if k == indexKind {
		return "index"
	}
	return "leaf"
}

// node is either an index node or a leaf node. Both kinds hold an ordered
// key sequence; the remaining fields belong to one payload or the other and
// are only read after checking kind (or the parent's childKind).
type node[K any] struct {
	kind nodeKind
	keys []K // capacity degree; len(keys) == degree only right before a split

	// Index payload
	children  []*node[K] // capacity degree+1; len(children) == len(keys)+1
	childKind nodeKind   // kind of every child, children are homogeneous
	parent    *node[K]   // non-owning back-reference, nil for the root

	// Leaf payload
	next *node[K] // following leaf in key order, nil for the last leaf
}

func newLeaf[K any](degree int) *node[K] {
	return &node[K]{
		kind: leafKind,
		keys: make([]K, 0, degree),
	}
}

func newIndex[K any](degree int, childKind nodeKind) *node[K] {
	return &node[K]{
		kind:      indexKind,
		keys:      make([]K, 0, degree),
		children:  make([]*node[K], 0, degree+1),
		childKind: childKind,
	}
}

func (n *node[K]) isLeaf() bool {
	return n.kind == leafKind
}

// isFull checks if a node has reached degree keys and must split
func (n *node[K]) isFull(degree int) bool {
	return len(n.keys) >= degree
}

// childIndex returns the position of child among n's children, or -1.
func (n *node[K]) childIndex(child *node[K]) int {
	return slices.Index(n.children, child)
}

// adopt points the parent back-reference of each index child at n. Leaves
// carry no back-reference.
func (n *node[K]) adopt(children ...*node[K]) {
	if n.childKind != indexKind {
		return
	}
	for _, child := range children {
		child.parent = n
	}
}

// minNodeLen is the fewest keys a non-root node may hold for degree.
func minNodeLen(degree int) int {
	if degree&1 == 1 {
		return degree / 2
	}
	return degree/2 - 1
}
