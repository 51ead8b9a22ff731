// Package jacobian - graph-coloring compression of Jacobian
// materialization.
// The column intersection graph is never built explicitly: the greedy
// assignment keeps one row-support set per group, in the same spirit
// as an adjacency-set membership check.
package jacobian

import (
	"fmt"

	"github.com/nabla-rs/diffsol/matrix"
	"github.com/nabla-rs/diffsol/vector"
)

// Coloring is a precomputed compression plan for one sparsity pattern:
// the column groups, and per group the (position, source-row) scatter
// tables replayed by JacobianInplace.
type Coloring struct {
	rows, cols int
	groups     [][]int             // columns per color, ascending
	dst        [][]matrix.Position // matrix positions written per color
	src        []vector.Index      // probe-result rows read per color
}

// NewColoring partitions the columns of an rows x cols pattern given
// its nonzero positions. Columns are visited in ascending order and
// greedily assigned the lowest color whose members' row supports are
// disjoint from theirs, so the result is deterministic for a fixed
// pattern.
func NewColoring(rows, cols int, nonZeros []matrix.Position) (*Coloring, error) {
	rowsOf := make([][]int, cols)
	for _, p := range nonZeros {
		if p.Row < 0 || p.Row >= rows || p.Col < 0 || p.Col >= cols {
			return nil, fmt.Errorf("NewColoring: position (%d,%d) for %dx%d: %w",
				p.Row, p.Col, rows, cols, matrix.ErrIndexOutOfBounds)
		}
		rowsOf[p.Col] = append(rowsOf[p.Col], p.Row)
	}

	var groups [][]int
	var support []map[int]bool // rows already claimed per color
	for j := 0; j < cols; j++ {
		assigned := -1
		for c := range groups {
			if !intersects(support[c], rowsOf[j]) {
				assigned = c

				break
			}
		}
		if assigned < 0 {
			groups = append(groups, nil)
			support = append(support, make(map[int]bool))
			assigned = len(groups) - 1
		}
		groups[assigned] = append(groups[assigned], j)
		for _, i := range rowsOf[j] {
			support[assigned][i] = true
		}
	}

	// Precompute the scatter tables: within a color the row supports
	// are disjoint, so each probe-result row i belongs to exactly one
	// column j of the color.
	col := &Coloring{rows: rows, cols: cols, groups: groups}
	col.dst = make([][]matrix.Position, len(groups))
	col.src = make([]vector.Index, len(groups))
	for c, columns := range groups {
		for _, j := range columns {
			for _, i := range rowsOf[j] {
				col.dst[c] = append(col.dst[c], matrix.Position{Row: i, Col: j})
				col.src[c] = append(col.src[c], i)
			}
		}
	}

	return col, nil
}

// NumColors returns the number of column groups.
func (c *Coloring) NumColors() int { return len(c.groups) }

// Groups returns the column partition, ascending within each group.
// The returned slices are copies.
func (c *Coloring) Groups() [][]int {
	out := make([][]int, len(c.groups))
	for k, g := range c.groups {
		out[k] = append([]int(nil), g...)
	}

	return out
}

// JacobianInplace materializes the Jacobian of op at (x, t) into m
// using one Jacobian action per color: the basis vectors of a color's
// columns are summed into a single probe, and the response components
// are distributed back to the owning columns through the precomputed
// tables.
func (c *Coloring) JacobianInplace(op Operator, x vector.Vector, t float64, m matrix.Matrix) error {
	if m.Rows() != c.rows || m.Cols() != c.cols {
		return fmt.Errorf("Coloring.JacobianInplace: matrix %dx%d for plan %dx%d: %w",
			m.Rows(), m.Cols(), c.rows, c.cols, matrix.ErrDimensionMismatch)
	}
	probe := vector.NewDense(op.NStates())
	out := vector.NewDense(op.NOut())
	for color, columns := range c.groups {
		probe.Fill(0)
		for _, j := range columns {
			_ = probe.Set(j, 1)
		}
		if err := op.JacMulInplace(x, t, probe, out); err != nil {
			return fmt.Errorf("Coloring.JacobianInplace: color %d: %w", color, err)
		}
		if err := m.SetDataWithIndices(c.dst[color], c.src[color], out); err != nil {
			return fmt.Errorf("Coloring.JacobianInplace: color %d: %w", color, err)
		}
	}

	return nil
}

// intersects reports whether any of rows is already in set.
func intersects(set map[int]bool, rows []int) bool {
	for _, i := range rows {
		if set[i] {
			return true
		}
	}

	return false
}
