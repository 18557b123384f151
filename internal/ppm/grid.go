package ppm

import "fmt"

// MaxValue is the only channel maximum the format supports.
const MaxValue = 255

// Grid is an in-memory raster of rows × (cols*3) channel values.
//
// Each row stores its pixels as consecutive red, green, blue triples. A valid
// grid has at least one row, every row has the same length, and that length
// is a multiple of 3. Channel values produced by Read are always in [0, 255].
type Grid [][]int

// NewGrid allocates a zeroed grid of the given pixel dimensions.
func NewGrid(cols, rows int) Grid {
	g := make(Grid, rows)
	for y := range g {
		g[y] = make([]int, cols*3)
	}
	return g
}

// Validate checks that g is non-nil, non-empty, channel-aligned, and
// rectangular. It has no side effects.
//
// The returned error wraps ErrNullGrid, ErrEmptyGrid, ErrInvalidShape, or
// ErrJaggedShape.
func Validate(g Grid) error {
	if g == nil {
		return ErrNullGrid
	}
	if len(g) == 0 {
		return ErrEmptyGrid
	}

	width := len(g[0])
	if width%3 != 0 {
		return fmt.Errorf("%w: row length %d is not a multiple of 3", ErrInvalidShape, width)
	}
	for y, row := range g {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has length %d, want %d", ErrJaggedShape, y, len(row), width)
		}
	}
	return nil
}

// Cols returns the width of the grid in pixels. It assumes g is valid.
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0]) / 3
}

// Rows returns the height of the grid in pixels.
func (g Grid) Rows() int {
	return len(g)
}

// Pixel returns the red, green, and blue channels of the pixel at (x, y).
func (g Grid) Pixel(x, y int) (r, gr, b int) {
	row := g[y]
	return row[x*3], row[x*3+1], row[x*3+2]
}

// SetPixel stores the red, green, and blue channels of the pixel at (x, y).
func (g Grid) SetPixel(x, y, r, gr, b int) {
	row := g[y]
	row[x*3], row[x*3+1], row[x*3+2] = r, gr, b
}

// Clone returns a deep copy of g.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for y, row := range g {
		out[y] = append([]int(nil), row...)
	}
	return out
}

// Equal reports whether g and other have the same shape and values.
func (g Grid) Equal(other Grid) bool {
	if len(g) != len(other) {
		return false
	}
	for y := range g {
		if len(g[y]) != len(other[y]) {
			return false
		}
		for i := range g[y] {
			if g[y][i] != other[y][i] {
				return false
			}
		}
	}
	return true
}
