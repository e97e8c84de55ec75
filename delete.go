package bptree

import "github.com/alexhholmes/bptree/internal/algo"

// Remove deletes one copy of key from the tree. It returns false, leaving the
// tree untouched, when key is not stored.
func (t *Tree[K]) Remove(key K) bool {
	if t.head == nil {
		return false
	}

	// No index level: remove straight from the only leaf.
	if t.root == nil {
		pos := algo.FindKeyInLeaf(t.head.keys, key, t.compare)
		if pos < 0 {
			return false
		}
		t.head.keys = algo.RemoveAt(t.head.keys, pos)
		t.removed()
		if len(t.head.keys) == 0 {
			t.head = nil
		}
		return true
	}

	parent, idx, leaf := t.descend(key)
	pos := algo.FindKeyInLeaf(leaf.keys, key, t.compare)
	if pos < 0 {
		return false
	}
	leaf.keys = algo.RemoveAt(leaf.keys, pos)
	t.removed()

	if len(leaf.keys) >= t.minLen {
		// Still occupied enough; only the minimum may have moved.
		if pos == 0 {
			t.refreshSeparator(parent, idx, leaf.keys[0])
		}
		return true
	}

	if t.fixLeafUnderflow(parent, idx, leaf) {
		t.fixIndexUnderflow(parent)
	}
	return true
}

func (t *Tree[K]) removed() {
	t.count--
	t.stats.Removes++
}

// pickSibling chooses the sibling used to fix an underfull child at idx. The
// left sibling is preferred; the right one is used when idx is the first
// child, or when the left one has no key to spare but the right one does.
// The boolean is true when the left sibling was chosen.
func (t *Tree[K]) pickSibling(parent *node[K], idx int) (*node[K], bool) {
	if idx == 0 {
		return parent.children[1], false
	}

	left := parent.children[idx-1]
	if len(left.keys) == t.minLen && idx+1 < len(parent.children) {
		if right := parent.children[idx+1]; len(right.keys) > t.minLen {
			return right, false
		}
	}
	return left, true
}

// fixLeafUnderflow restores the occupancy of the leaf at parent.children[idx]
// by borrowing from or merging with a sibling leaf. It reports whether parent
// lost a child and may underflow in turn.
func (t *Tree[K]) fixLeafUnderflow(parent *node[K], idx int, leaf *node[K]) bool {
	sibling, isLeft := t.pickSibling(parent, idx)

	if len(sibling.keys) > t.minLen {
		if isLeft {
			t.borrowLeafFromLeft(parent, idx, leaf, sibling)
		} else {
			t.borrowLeafFromRight(parent, idx, leaf, sibling)
		}
		return false
	}

	if isLeft {
		t.mergeLeaves(parent, idx-1, sibling, leaf)
	} else {
		t.mergeLeaves(parent, idx, leaf, sibling)
	}
	return true
}

// borrowLeafFromLeft moves the last key of the left sibling to the front of
// leaf and makes it the separator between them.
func (t *Tree[K]) borrowLeafFromLeft(parent *node[K], idx int, leaf, left *node[K]) {
	last := len(left.keys) - 1
	leaf.keys = algo.InsertAt(leaf.keys, 0, left.keys[last])
	left.keys = algo.Truncate(left.keys, last)

	parent.keys[idx-1] = leaf.keys[0]
	t.stats.LeafBorrows++
}

// borrowLeafFromRight moves the first key of the right sibling to the end of
// leaf. The right sibling gets a new minimum, and so does leaf if it was left
// empty or lost its first key.
func (t *Tree[K]) borrowLeafFromRight(parent *node[K], idx int, leaf, right *node[K]) {
	leaf.keys = append(leaf.keys, right.keys[0])
	right.keys = algo.RemoveAt(right.keys, 0)

	parent.keys[idx] = right.keys[0]
	t.refreshSeparator(parent, idx, leaf.keys[0])
	t.stats.LeafBorrows++
}

// mergeLeaves folds right, the leaf at parent.children[leftIdx+1], into left
// and drops the separator and child slot that pointed at right.
func (t *Tree[K]) mergeLeaves(parent *node[K], leftIdx int, left, right *node[K]) {
	left.keys = append(left.keys, right.keys...)
	left.next = right.next

	parent.keys = algo.RemoveAt(parent.keys, leftIdx)
	parent.children = algo.RemoveAt(parent.children, leftIdx+1)

	if right == t.head {
		t.head = left
	}
	right.keys = nil
	right.next = nil
	t.stats.LeafMerges++

	// left may be the underfull leaf, emptied or stripped of its first key.
	t.refreshSeparator(parent, leftIdx, left.keys[0])
}

// fixIndexUnderflow climbs from n towards the root, one level per step,
// restoring occupancy of each underfull index node. It stops at the first
// level that is not underfull or that is fixed by borrowing. A root left
// without keys is collapsed.
func (t *Tree[K]) fixIndexUnderflow(n *node[K]) {
	for {
		if n.parent == nil {
			if len(n.keys) == 0 {
				t.collapseRoot()
			}
			return
		}
		if len(n.keys) >= t.minLen {
			return
		}

		parent := n.parent
		idx := parent.childIndex(n)
		sibling, isLeft := t.pickSibling(parent, idx)

		if len(sibling.keys) > t.minLen {
			if isLeft {
				t.borrowIndexFromLeft(parent, idx, n, sibling)
			} else {
				t.borrowIndexFromRight(parent, idx, n, sibling)
			}
			return
		}

		if isLeft {
			t.mergeIndexes(parent, idx-1, sibling, n)
		} else {
			t.mergeIndexes(parent, idx, n, sibling)
		}
		n = parent
	}
}

// borrowIndexFromLeft rotates the last child of the left sibling into n
// through the parent: the parent's separator comes down in front of n's keys
// and the left sibling's last key goes up to replace it.
func (t *Tree[K]) borrowIndexFromLeft(parent *node[K], idx int, n, left *node[K]) {
	last := len(left.keys) - 1
	moved := left.children[last+1]

	n.keys = algo.InsertAt(n.keys, 0, parent.keys[idx-1])
	n.children = algo.InsertAt(n.children, 0, moved)
	n.adopt(moved)

	parent.keys[idx-1] = left.keys[last]
	left.keys = algo.Truncate(left.keys, last)
	left.children = algo.Truncate(left.children, last+1)

	t.stats.IndexBorrows++
}

// borrowIndexFromRight rotates the first child of the right sibling into n
// through the parent.
func (t *Tree[K]) borrowIndexFromRight(parent *node[K], idx int, n, right *node[K]) {
	moved := right.children[0]

	n.keys = append(n.keys, parent.keys[idx])
	n.children = append(n.children, moved)
	n.adopt(moved)

	parent.keys[idx] = right.keys[0]
	right.keys = algo.RemoveAt(right.keys, 0)
	right.children = algo.RemoveAt(right.children, 0)

	t.stats.IndexBorrows++
}

// mergeIndexes folds right, the node at parent.children[leftIdx+1], into
// left. The separator between them comes down from the parent.
func (t *Tree[K]) mergeIndexes(parent *node[K], leftIdx int, left, right *node[K]) {
	left.keys = append(left.keys, parent.keys[leftIdx])
	left.keys = append(left.keys, right.keys...)
	left.children = append(left.children, right.children...)
	left.adopt(right.children...)

	parent.keys = algo.RemoveAt(parent.keys, leftIdx)
	parent.children = algo.RemoveAt(parent.children, leftIdx+1)

	right.keys = nil
	right.children = nil
	right.parent = nil
	t.stats.IndexMerges++
}

// collapseRoot replaces a root without keys by its only child. A leaf child
// leaves the tree without an index level.
func (t *Tree[K]) collapseRoot() {
	child := t.root.children[0]
	t.root.children = nil

	if t.root.childKind == leafKind {
		t.root = nil
		t.head = child
	} else {
		child.parent = nil
		t.root = child
	}

	t.stats.RootCollapses++
	t.logger.Info("tree height decreased", "height", t.Height(), "keys", t.count)
}
