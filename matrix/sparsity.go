// Package matrix - Sparsity, the fixed set of positions a sparse
// matrix may hold.
package matrix

import (
	"fmt"
	"sort"
)

// Position is a (row, col) coordinate into a matrix.
type Position struct {
	Row, Col int
}

// Sparsity is an immutable set of positions declared nonzero. The
// positions are kept sorted column-major (by column, then row), which
// is also the storage order of the Sparse backend.
type Sparsity struct {
	rows, cols int
	positions  []Position
	ordinal    map[Position]int // position -> index in positions
}

// NewSparsity validates and builds a pattern from the given positions.
// Positions outside rows x cols yield ErrIndexOutOfBounds; duplicates
// yield ErrDuplicateEntry.
func NewSparsity(rows, cols int, positions []Position) (*Sparsity, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("NewSparsity(%d,%d): %w", rows, cols, ErrBadShape)
	}
	sorted := make([]Position, len(positions))
	copy(sorted, positions)
	sort.Slice(sorted, func(a, b int) bool {
		if sorted[a].Col != sorted[b].Col {
			return sorted[a].Col < sorted[b].Col
		}

		return sorted[a].Row < sorted[b].Row
	})
	ordinal := make(map[Position]int, len(sorted))
	for k, p := range sorted {
		if p.Row < 0 || p.Row >= rows || p.Col < 0 || p.Col >= cols {
			return nil, fmt.Errorf("NewSparsity: position (%d,%d): %w", p.Row, p.Col, ErrIndexOutOfBounds)
		}
		if k > 0 && sorted[k-1] == p {
			return nil, fmt.Errorf("NewSparsity: position (%d,%d): %w", p.Row, p.Col, ErrDuplicateEntry)
		}
		ordinal[p] = k
	}

	return &Sparsity{rows: rows, cols: cols, positions: sorted, ordinal: ordinal}, nil
}

// Rows returns the number of rows the pattern spans.
func (s *Sparsity) Rows() int { return s.rows }

// Cols returns the number of columns the pattern spans.
func (s *Sparsity) Cols() int { return s.cols }

// Len returns the number of declared positions.
func (s *Sparsity) Len() int { return len(s.positions) }

// Contains reports whether (i, j) is part of the pattern.
func (s *Sparsity) Contains(i, j int) bool {
	_, ok := s.ordinal[Position{Row: i, Col: j}]

	return ok
}

// Ordinal returns the storage ordinal of (i, j) in column-major order
// and whether the position belongs to the pattern.
func (s *Sparsity) Ordinal(i, j int) (int, bool) {
	k, ok := s.ordinal[Position{Row: i, Col: j}]

	return k, ok
}

// Positions returns the declared positions in column-major order. The
// returned slice is a copy and may be retained by the caller.
func (s *Sparsity) Positions() []Position {
	cp := make([]Position, len(s.positions))
	copy(cp, s.positions)

	return cp
}
