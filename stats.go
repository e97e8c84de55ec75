package bptree

// Stats counts tree operations and the rebalancing work they caused since
// the tree was created. Clear does not reset it.
type Stats struct {
	Inserts uint64 // Keys inserted
	Removes uint64 // Keys removed; removals of absent keys are not counted

	LeafSplits  uint64
	IndexSplits uint64
	RootGrows   uint64 // New roots created by a split, each adds one level

	LeafBorrows   uint64
	IndexBorrows  uint64
	LeafMerges    uint64
	IndexMerges   uint64
	RootCollapses uint64 // Empty roots replaced by their only child
}

// Splits returns leaf and index splits combined.
func (s Stats) Splits() uint64 {
	return s.LeafSplits + s.IndexSplits
}

// Borrows returns leaf and index borrows combined.
func (s Stats) Borrows() uint64 {
	return s.LeafBorrows + s.IndexBorrows
}

// Merges returns leaf and index merges combined.
func (s Stats) Merges() uint64 {
	return s.LeafMerges + s.IndexMerges
}
