// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Offer the row/column primitives the latent-variable code needs (SelectRows,
//     Col/ScaleCol, SubOuter) without exposing the backing slice.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c); SelectRows: O(k*c).

package matrix

import (
	"fmt"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt         = "At"
	ctxSet        = "Set"
	ctxCol        = "Col"
	ctxScaleCol   = "ScaleCol"
	ctxRow        = "Row"
	ctxSubOuter   = "SubOuter"
	ctxInduce     = "Induced"
	ctxSelectRows = "SelectRows"
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// The resulting message reads "Dense.<method>(row,col): <sentinel>" and still
// matches the sentinel via errors.Is.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense struct {
	r, c int       // row and column counts (>=0; zero allowed only for internal zero-OK constructors)
	data []float64 // contiguous row-major storage (len == r*c)
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
// MAIN DESCRIPTION:
//   - Public constructor for Dense with strict shape validation.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// newDenseZeroOK is an internal constructor that allows rows==0 or cols==0.
// Used where an empty selection is a legal intermediate (e.g. an empty fold).
func newDenseZeroOK(rows, cols int) (*Dense, error) {
	if rows < 0 || cols < 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewDenseData creates an r×c matrix backed by a COPY of data (row-major).
// MAIN DESCRIPTION:
//   - Convenience constructor for literals and fixtures.
//
// Errors:
//   - ErrInvalidDimensions when rows<=0 or cols<=0.
//   - ErrDimensionMismatch when len(data) != rows*cols.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDenseData(rows, cols int, data []float64) (*Dense, error) {
	d, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("NewDenseData: len(data)=%d, want %d: %w", len(data), rows*cols, ErrDimensionMismatch)
	}
	copy(d.data, data)

	return d, nil
}

// NewDenseFromRows builds a matrix from a slice of equally long rows.
// The input is copied; later edits of rows do not leak into the matrix.
//
// Errors:
//   - ErrInvalidDimensions on an empty outer slice or empty first row.
//   - ErrRaggedRows when row lengths differ.
func NewDenseFromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	c := len(rows[0])
	d, err := NewDense(len(rows), c)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("NewDenseFromRows: row %d has %d values, want %d: %w", i, len(row), c, ErrRaggedRows)
		}
		copy(d.data[i*c:(i+1)*c], row)
	}

	return d, nil
}

// AsDense returns m itself when it already is a *Dense, otherwise a Dense copy
// materialized through At. Callers that intend to mutate must Clone first.
//
// Errors:
//   - ErrNilMatrix for a nil input; propagated At errors for the fallback path.
func AsDense(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	rows, cols := m.Rows(), m.Cols()
	d, err := newDenseZeroOK(rows, cols)
	if err != nil {
		return nil, err
	}
	var (
		i, j int
		v    float64
	)
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, fmt.Errorf("AsDense: %w", err)
			}
			d.data[i*cols+j] = v
		}
	}

	return d, nil
}

// Rows returns the row count. Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf bounds-checks (row, col) and computes the flat row-major offset.
// Returns a bare ErrOutOfRange; public methods wrap it with coordinates.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At returns the value at (row, col) or a wrapped ErrOutOfRange.
// Complexity: O(1), no allocations.
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set assigns v at (row, col) or returns a wrapped ErrOutOfRange.
// Complexity: O(1), no allocations.
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	m.data[off] = v

	return nil
}

// Clone returns a deep copy as the Matrix interface.
func (m *Dense) Clone() Matrix { return m.Copy() }

// Copy returns a deep copy with the concrete type preserved.
// Complexity: O(r*c).
func (m *Dense) Copy() *Dense {
	buf := make([]float64, len(m.data))
	copy(buf, m.data)

	return &Dense{r: m.r, c: m.c, data: buf}
}

// RawRow returns the backing slice of row i (aliasing, no copy).
// Writes through the returned slice mutate the matrix.
// Returns nil for an out-of-range row; callers iterate within Rows().
func (m *Dense) RawRow(i int) []float64 {
	if i < 0 || i >= m.r {
		return nil
	}

	return m.data[i*m.c : (i+1)*m.c : (i+1)*m.c]
}

// Row returns a copy of row i.
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	out := make([]float64, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return out, nil
}

// Col returns a copy of column j.
// Complexity: O(r) with a stride of c.
func (m *Dense) Col(j int) ([]float64, error) {
	if j < 0 || j >= m.c {
		return nil, denseErrorf(ctxCol, 0, j, ErrOutOfRange)
	}
	out := make([]float64, m.r)
	for i := 0; i < m.r; i++ {
		out[i] = m.data[i*m.c+j]
	}

	return out, nil
}

// ScaleCol multiplies column j in place by alpha.
func (m *Dense) ScaleCol(j int, alpha float64) error {
	if j < 0 || j >= m.c {
		return denseErrorf(ctxScaleCol, 0, j, ErrOutOfRange)
	}
	for i := 0; i < m.r; i++ {
		m.data[i*m.c+j] *= alpha
	}

	return nil
}

// SubOuter performs the rank-one update m ← m − t·pᵀ in place.
// MAIN DESCRIPTION:
//   - Deflation primitive: removes the contribution of one latent component.
//
// Inputs:
//   - t: length Rows() (scores).
//   - p: length Cols() (loadings).
//
// Errors:
//   - ErrDimensionMismatch when vector lengths disagree with the shape.
//
// Determinism:
//   - Fixed i→j order.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func (m *Dense) SubOuter(t, p []float64) error {
	if len(t) != m.r || len(p) != m.c {
		return denseErrorf(ctxSubOuter, len(t), len(p), ErrDimensionMismatch)
	}
	var (
		i, j, base int
		ti         float64
	)
	for i = 0; i < m.r; i++ {
		ti = t[i]
		if ti == 0 {
			continue
		}
		base = i * m.c
		for j = 0; j < m.c; j++ {
			m.data[base+j] -= ti * p[j]
		}
	}

	return nil
}

// Induced returns a copy of the submatrix restricted to the given row and
// column indices, in the order supplied. Repeated indices are allowed.
//
// Errors:
//   - ErrOutOfRange (wrapped with the offending coordinates).
//
// Complexity:
//   - Time O(len(rows)*len(cols)), Space likewise.
func (m *Dense) Induced(rows, cols []int) (*Dense, error) {
	out, err := newDenseZeroOK(len(rows), len(cols))
	if err != nil {
		return nil, err
	}
	var (
		a, b, ri, cj int
		nc           = len(cols)
	)
	for a, ri = range rows {
		if ri < 0 || ri >= m.r {
			return nil, denseErrorf(ctxInduce, ri, 0, ErrOutOfRange)
		}
		for b, cj = range cols {
			if cj < 0 || cj >= m.c {
				return nil, denseErrorf(ctxInduce, ri, cj, ErrOutOfRange)
			}
			out.data[a*nc+b] = m.data[ri*m.c+cj]
		}
	}

	return out, nil
}

// SelectRows copies the listed rows (all columns) into a new matrix.
// It is the workhorse of resampling: fold splits and row permutations.
// An empty index list yields a legal 0×c matrix.
func (m *Dense) SelectRows(idx []int) (*Dense, error) {
	out, err := newDenseZeroOK(len(idx), m.c)
	if err != nil {
		return nil, err
	}
	for a, ri := range idx {
		if ri < 0 || ri >= m.r {
			return nil, denseErrorf(ctxSelectRows, ri, 0, ErrOutOfRange)
		}
		copy(out.data[a*m.c:(a+1)*m.c], m.data[ri*m.c:(ri+1)*m.c])
	}

	return out, nil
}

// String renders the matrix one bracketed row per line.
func (m *Dense) String() string {
	var sb strings.Builder
	var i, j int
	for i = 0; i < m.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j = 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(_fmtSep)
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}
