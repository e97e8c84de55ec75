package bptree

// Clone returns a deep copy of the tree. The copy shares no node with t, so
// later changes to either tree never show in the other. Stats of the copy
// start at zero.
func (t *Tree[K]) Clone() *Tree[K] {
	c := &Tree[K]{
		degree:  t.degree,
		minLen:  t.minLen,
		compare: t.compare,
		count:   t.count,
		logger:  t.logger,
	}
	if t.head == nil {
		return c
	}

	// Leaves are copied in key order and chained as they are created.
	var last *node[K]
	copyLeaf := func(leaf *node[K]) *node[K] {
		cp := newLeaf[K](t.degree)
		cp.keys = append(cp.keys, leaf.keys...)
		if last == nil {
			c.head = cp
		} else {
			last.next = cp
		}
		last = cp
		return cp
	}

	if t.root == nil {
		copyLeaf(t.head)
		return c
	}
	c.root = t.cloneIndex(t.root, nil, copyLeaf)
	return c
}

func (t *Tree[K]) cloneIndex(n, parent *node[K], copyLeaf func(*node[K]) *node[K]) *node[K] {
	cp := newIndex[K](t.degree, n.childKind)
	cp.parent = parent
	cp.keys = append(cp.keys, n.keys...)

	for _, child := range n.children {
		if n.childKind == leafKind {
			cp.children = append(cp.children, copyLeaf(child))
		} else {
			cp.children = append(cp.children, t.cloneIndex(child, cp, copyLeaf))
		}
	}
	return cp
}
