package bptree

import "github.com/cockroachdb/errors"

// Verify walks the whole tree and checks every structural invariant. It
// returns nil for a healthy tree and otherwise an assertion failure
// (errors.IsAssertionFailure holds) describing the first violation found.
// It visits every node, so it is meant for tests and debugging.
func (t *Tree[K]) Verify() error {
	if t.head == nil {
		if t.root != nil {
			return errors.AssertionFailedf("tree has an index root but no head leaf")
		}
		if t.count != 0 {
			return errors.AssertionFailedf("empty tree reports %d keys", t.count)
		}
		return nil
	}

	v := verifier[K]{tree: t, leafDepth: -1}
	if t.root == nil {
		if _, err := v.checkSubtree(t.head, 0, true); err != nil {
			return err
		}
	} else {
		if t.root.kind != indexKind {
			return errors.AssertionFailedf("root is a %s node", t.root.kind)
		}
		if t.root.parent != nil {
			return errors.AssertionFailedf("root has a parent reference")
		}
		if _, err := v.checkSubtree(t.root, 0, true); err != nil {
			return err
		}
	}

	return v.verifyChain()
}

type verifier[K any] struct {
	tree      *Tree[K]
	leaves    []*node[K] // leaves in tree order, left to right
	leafDepth int
}

// checkSubtree checks n and everything below it and returns the smallest key
// stored under n.
func (v *verifier[K]) checkSubtree(n *node[K], depth int, isRoot bool) (lowest K, err error) {
	t := v.tree

	for i := 1; i < len(n.keys); i++ {
		if t.compare(n.keys[i-1], n.keys[i]) > 0 {
			return lowest, errors.AssertionFailedf(
				"%s node at depth %d has keys out of order at %d: %v > %v",
				n.kind, depth, i, n.keys[i-1], n.keys[i])
		}
	}

	if len(n.keys) >= t.degree {
		return lowest, errors.AssertionFailedf(
			"%s node at depth %d holds %d keys, degree is %d", n.kind, depth, len(n.keys), t.degree)
	}
	switch {
	case isRoot && len(n.keys) == 0:
		return lowest, errors.AssertionFailedf("root %s node holds no keys", n.kind)
	case !isRoot && len(n.keys) < t.minLen:
		return lowest, errors.AssertionFailedf(
			"%s node at depth %d holds %d keys, minimum is %d", n.kind, depth, len(n.keys), t.minLen)
	}

	if n.isLeaf() {
		if v.leafDepth == -1 {
			v.leafDepth = depth
		} else if depth != v.leafDepth {
			return lowest, errors.AssertionFailedf("leaf at depth %d, other leaves at depth %d", depth, v.leafDepth)
		}
		v.leaves = append(v.leaves, n)
		return n.keys[0], nil
	}

	if len(n.children) != len(n.keys)+1 {
		return lowest, errors.AssertionFailedf(
			"index node at depth %d has %d keys and %d children", depth, len(n.keys), len(n.children))
	}

	for i, child := range n.children {
		if child == nil {
			return lowest, errors.AssertionFailedf("index node at depth %d has nil child %d", depth, i)
		}
		if child.kind != n.childKind {
			return lowest, errors.AssertionFailedf(
				"index node at depth %d expects %s children, child %d is %s", depth, n.childKind, i, child.kind)
		}
		if child.kind == indexKind && child.parent != n {
			return lowest, errors.AssertionFailedf(
				"child %d of index node at depth %d does not point back at it", i, depth)
		}

		childMin, err := v.checkSubtree(child, depth+1, false)
		if err != nil {
			return lowest, err
		}
		if i == 0 {
			lowest = childMin
		} else if t.compare(n.keys[i-1], childMin) != 0 {
			return lowest, errors.AssertionFailedf(
				"separator %d of index node at depth %d is %v, subtree minimum is %v",
				i-1, depth, n.keys[i-1], childMin)
		}
	}
	return lowest, nil
}

// verifyChain checks that the leaf chain from head visits exactly the leaves
// found by the tree walk, in the same order, with non-decreasing keys.
func (v *verifier[K]) verifyChain() error {
	t := v.tree

	var (
		i     int
		total int
		prev  *node[K]
	)
	for leaf := t.head; leaf != nil; leaf = leaf.next {
		if i >= len(v.leaves) {
			return errors.AssertionFailedf("leaf chain continues past the %d leaves of the tree", len(v.leaves))
		}
		if leaf != v.leaves[i] {
			return errors.AssertionFailedf("leaf chain diverges from tree order at leaf %d", i)
		}
		if prev != nil && t.compare(prev.keys[len(prev.keys)-1], leaf.keys[0]) > 0 {
			return errors.AssertionFailedf(
				"leaf %d starts with %v, below the previous leaf's last key %v",
				i, leaf.keys[0], prev.keys[len(prev.keys)-1])
		}
		total += len(leaf.keys)
		prev = leaf
		i++
	}

	if i != len(v.leaves) {
		return errors.AssertionFailedf("leaf chain ends after %d of %d leaves", i, len(v.leaves))
	}
	if total != t.count {
		return errors.AssertionFailedf("leaf chain holds %d keys, tree reports %d", total, t.count)
	}
	return nil
}
