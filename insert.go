package bptree

import "github.com/alexhholmes/bptree/internal/algo"

// Insert adds key to the tree. A key equal to a stored one is added again.
func (t *Tree[K]) Insert(key K) {
	t.count++
	t.stats.Inserts++

	// The tree is empty, so start with a single leaf.
	if t.head == nil {
		leaf := newLeaf[K](t.degree)
		leaf.keys = append(leaf.keys, key)
		t.head = leaf
		return
	}

	// No index level yet: the head leaf is the whole tree.
	if t.root == nil {
		t.insertIntoLeaf(t.head, key)
		if t.head.isFull(t.degree) {
			right := t.splitLeaf(t.head)

			root := newIndex[K](t.degree, leafKind)
			root.keys = append(root.keys, right.keys[0])
			root.children = append(root.children, t.head, right)
			t.growRoot(root)
		}
		return
	}

	parent, idx, leaf := t.descend(key)
	if pos := t.insertIntoLeaf(leaf, key); pos == 0 {
		t.refreshSeparator(parent, idx, key)
	}
	if !leaf.isFull(t.degree) {
		return
	}

	// The right half's first key becomes the separator in front of it.
	right := t.splitLeaf(leaf)
	parent.keys = algo.InsertAt(parent.keys, idx, right.keys[0])
	parent.children = algo.InsertAt(parent.children, idx+1, right)

	t.splitUpward(parent)
}

// insertIntoLeaf inserts key at its sorted position and returns it.
func (t *Tree[K]) insertIntoLeaf(leaf *node[K], key K) int {
	pos := algo.FindInsertPosition(leaf.keys, key, t.compare)
	leaf.keys = algo.InsertAt(leaf.keys, pos, key)
	return pos
}

// splitLeaf moves the upper half of a full leaf into a new leaf linked right
// after it, and returns the new leaf.
func (t *Tree[K]) splitLeaf(leaf *node[K]) *node[K] {
	mid := t.degree / 2

	right := newLeaf[K](t.degree)
	right.keys = append(right.keys, leaf.keys[mid:]...)
	leaf.keys = algo.Truncate(leaf.keys, mid)

	right.next = leaf.next
	leaf.next = right

	t.stats.LeafSplits++
	return right
}

// splitUpward splits n while it holds degree keys, promoting the middle key
// into the parent each time and climbing one level per step. When the root
// itself splits a new root is created above it.
func (t *Tree[K]) splitUpward(n *node[K]) {
	for n.isFull(t.degree) {
		mid := t.degree / 2
		promoted := n.keys[mid]

		// Left keeps keys [0, mid) and children [0, mid]; the middle key
		// moves up and the rest goes right.
		right := newIndex[K](t.degree, n.childKind)
		right.keys = append(right.keys, n.keys[mid+1:]...)
		right.children = append(right.children, n.children[mid+1:]...)
		right.adopt(right.children...)

		n.keys = algo.Truncate(n.keys, mid)
		n.children = algo.Truncate(n.children, mid+1)
		t.stats.IndexSplits++

		parent := n.parent
		if parent == nil {
			root := newIndex[K](t.degree, indexKind)
			root.keys = append(root.keys, promoted)
			root.children = append(root.children, n, right)
			root.adopt(n, right)
			t.growRoot(root)
			return
		}

		idx := parent.childIndex(n)
		parent.keys = algo.InsertAt(parent.keys, idx, promoted)
		parent.children = algo.InsertAt(parent.children, idx+1, right)
		right.parent = parent

		n = parent
	}
}

// growRoot installs root, created by splitting the previous top level.
func (t *Tree[K]) growRoot(root *node[K]) {
	t.root = root
	t.stats.RootGrows++
	t.logger.Info("tree height increased", "height", t.Height(), "keys", t.count)
}
