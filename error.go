package bptree

import "errors"

var (
	ErrInvalidDegree = errors.New("degree must be at least 3")
	ErrNilCompare    = errors.New("compare function cannot be nil")
)
