package bptree

import (
	"fmt"
	"io"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// String renders the tree for debugging: one line per index level from the
// root down, each node as its bracketed keys, then the leaf chain joined by
// "->". For example a degree 3 tree holding 3 12 17 20 36 66 renders as
//
//	[17 36]
//	[3 12]->[17 20]->[36 66]
//
// An empty tree renders as the empty string.
func (t *Tree[K]) String() string {
	var sb strings.Builder
	t.render(&sb)
	return sb.String()
}

// WriteTo writes the String rendering of the tree to w.
func (t *Tree[K]) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, t.String())
	return int64(n), err
}

// Fingerprint returns the xxhash64 of the String rendering, so trees with
// the same node layout and keys share a fingerprint.
func (t *Tree[K]) Fingerprint() uint64 {
	d := xxhash.New()
	t.render(d)
	return d.Sum64()
}

func (t *Tree[K]) render(w io.Writer) {
	if t.root != nil {
		level := []*node[K]{t.root}
		for len(level) > 0 {
			var below []*node[K]
			for i, n := range level {
				if i > 0 {
					io.WriteString(w, " ")
				}
				writeKeys(w, n.keys)
				if n.childKind == indexKind {
					below = append(below, n.children...)
				}
			}
			io.WriteString(w, "\n")
			level = below
		}
	}

	for leaf := t.head; leaf != nil; leaf = leaf.next {
		if leaf != t.head {
			io.WriteString(w, "->")
		}
		writeKeys(w, leaf.keys)
	}
}

func writeKeys[K any](w io.Writer, keys []K) {
	io.WriteString(w, "[")
	for i, key := range keys {
		if i > 0 {
			io.WriteString(w, " ")
		}
		fmt.Fprint(w, key)
	}
	io.WriteString(w, "]")
}
