// Package canvas provides a character grid for plotting routed wires.
package canvas

import (
	"strings"

	"github.com/pkg/errors"
)

// Line and marker characters.
const (
	LineHorizontal    = '─'
	LineVertical      = '│'
	LineRising        = '╱'
	LineFalling       = '╲'
	LineCross         = '┼'
	LineDiagonalCross = '╳'

	MarkEndpoint = 'o'
	MarkDetour   = '+'
)

// Common errors
var (
	ErrOutOfBounds = errors.New("position out of bounds")
	ErrInvalidSize = errors.New("invalid canvas size")
)

// Cell is a character position. Origin (0,0) is top-left, Y grows downward.
type Cell struct {
	X, Y int
}

// MatrixCanvas implements a rune matrix-based canvas.
//
// MatrixCanvas is NOT thread-safe for writes.
type MatrixCanvas struct {
	matrix [][]rune
	width  int
	height int
	merger *CharacterMerger
}

// NewMatrixCanvas creates a new canvas with the specified dimensions.
func NewMatrixCanvas(width, height int) (*MatrixCanvas, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}

	matrix := make([][]rune, height)
	for y := 0; y < height; y++ {
		matrix[y] = make([]rune, width)
		for x := 0; x < width; x++ {
			matrix[y][x] = ' '
		}
	}

	return &MatrixCanvas{
		matrix: matrix,
		width:  width,
		height: height,
		merger: NewCharacterMerger(),
	}, nil
}

// Size returns the width and height of the canvas.
func (c *MatrixCanvas) Size() (width, height int) {
	return c.width, c.height
}

func (c *MatrixCanvas) inBounds(p Cell) bool {
	return p.X >= 0 && p.X < c.width && p.Y >= 0 && p.Y < c.height
}

// Get returns the character at the given position.
// Returns ' ' (space) if position is out of bounds.
func (c *MatrixCanvas) Get(p Cell) rune {
	if !c.inBounds(p) {
		return ' '
	}
	return c.matrix[p.Y][p.X]
}

// Set merges a character into the given position.
func (c *MatrixCanvas) Set(p Cell, char rune) error {
	if !c.inBounds(p) {
		return ErrOutOfBounds
	}
	c.matrix[p.Y][p.X] = c.merger.Merge(c.matrix[p.Y][p.X], char)
	return nil
}

// Mark places a character without merging.
func (c *MatrixCanvas) Mark(p Cell, char rune) error {
	if !c.inBounds(p) {
		return ErrOutOfBounds
	}
	c.matrix[p.Y][p.X] = char
	return nil
}

// String returns the canvas as a string with newlines.
func (c *MatrixCanvas) String() string {
	var sb strings.Builder
	sb.Grow(c.height * (c.width + 1))

	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			sb.WriteRune(c.matrix[y][x])
		}
		if y < c.height-1 {
			sb.WriteRune('\n')
		}
	}

	return sb.String()
}

// LineChar picks the character used to draw a line from p1 to p2.
// Lines within a factor of two of an axis use that axis' character.
func LineChar(p1, p2 Cell) rune {
	dx := abs(p2.X - p1.X)
	dy := abs(p2.Y - p1.Y)
	switch {
	case dy == 0 || dx >= 2*dy:
		return LineHorizontal
	case dx == 0 || dy >= 2*dx:
		return LineVertical
	case (p2.X > p1.X) == (p2.Y < p1.Y):
		return LineRising
	default:
		return LineFalling
	}
}

// DrawLine draws a line between two cells using Bresenham's algorithm.
// Cells outside the canvas are clipped.
func (c *MatrixCanvas) DrawLine(p1, p2 Cell) {
	char := LineChar(p1, p2)

	dx := abs(p2.X - p1.X)
	dy := abs(p2.Y - p1.Y)

	x, y := p1.X, p1.Y

	xInc := 1
	if p1.X > p2.X {
		xInc = -1
	}

	yInc := 1
	if p1.Y > p2.Y {
		yInc = -1
	}

	if dx > dy {
		err := dx / 2
		for x != p2.X {
			c.Set(Cell{x, y}, char)
			err -= dy
			if err < 0 {
				y += yInc
				err += dx
			}
			x += xInc
		}
	} else {
		err := dy / 2
		for y != p2.Y {
			c.Set(Cell{x, y}, char)
			err -= dx
			if err < 0 {
				x += xInc
				err += dy
			}
			y += yInc
		}
	}

	c.Set(p2, char)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
