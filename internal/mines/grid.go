package mines

import (
	"strings"
)

// MineChar marks a mine in a text layout and in serialized grids.
const MineChar = 'x'

// Grid is a fixed rectangular arrangement of cells. Methods that take a
// position expect it to be within bounds; [Game] checks this before calling
// them.
type Grid struct {
	rows, cols int
	cells      [][]Cell
	rec        *recorder
}

func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	g := &Grid{rows: rows, cols: cols, cells: make([][]Cell, rows)}
	for row := range rows {
		g.cells[row] = make([]Cell, cols)
		for col := range cols {
			g.cells[row][col] = newCell(row, col)
		}
	}
	return g, nil
}

// ParseLayout builds a grid from one string per row. A [MineChar] makes the
// cell a mine, any other character leaves it empty. Counts are not computed.
func ParseLayout(lines []string) (*Grid, error) {
	if len(lines) == 0 || len(lines[0]) == 0 {
		return nil, ErrEmptyLayout
	}
	width := len([]rune(lines[0]))
	g, err := NewGrid(len(lines), width)
	if err != nil {
		return nil, err
	}
	for row, line := range lines {
		chars := []rune(line)
		if len(chars) != width {
			return nil, ErrRaggedLayout
		}
		for col, ch := range chars {
			g.cells[row][col].mine = ch == MineChar
		}
	}
	return g, nil
}

func (g *Grid) Rows() int { return g.rows }

func (g *Grid) Cols() int { return g.cols }

func (g *Grid) InBounds(row, col int) bool {
	return 0 <= row && row < g.rows && 0 <= col && col < g.cols
}

// Cell returns a copy of the cell at row:col.
func (g *Grid) Cell(row, col int) (Cell, error) {
	if !g.InBounds(row, col) {
		return Cell{}, outOfBounds(row, col, g.rows, g.cols)
	}
	return g.cells[row][col], nil
}

func (g *Grid) at(p Position) *Cell {
	return &g.cells[p.Row][p.Col]
}

func (g *Grid) setStatus(c *Cell, s Status) {
	if c.status == s {
		return
	}
	changed := c.Hidden() != (s != Revealed)
	c.status = s
	if changed {
		g.rec.record(c, StatusChanged)
	}
}

func (g *Grid) setMark(c *Cell, m Mark) {
	if c.mark == m {
		return
	}
	c.mark = m
	g.rec.record(c, MarkChanged)
}

// neighborRange clips the 3x3 block around row:col to the grid.
func (g *Grid) neighborRange(row, col int) (upper, lower, left, right int) {
	upper, lower = max(0, row-1), min(g.rows-1, row+1)
	left, right = max(0, col-1), min(g.cols-1, col+1)
	return
}

// neighbors visits the up to eight cells around row:col, top row left to
// right, then the middle row, then the bottom row. Returning false stops the
// walk.
func (g *Grid) neighbors(row, col int, visit func(c *Cell) bool) {
	upper, lower, left, right := g.neighborRange(row, col)
	for r := upper; r <= lower; r++ {
		for c := left; c <= right; c++ {
			if r == row && c == col {
				continue
			}
			if !visit(&g.cells[r][c]) {
				return
			}
		}
	}
}

func (g *Grid) each(visit func(c *Cell)) {
	for row := range g.cells {
		for col := range g.cells[row] {
			visit(&g.cells[row][col])
		}
	}
}

// ComputeCounts sets every mine's count to -1 and every other cell's count to
// the number of its neighbours that are mines. It must be rerun after any
// change to the mine layout.
func (g *Grid) ComputeCounts() {
	g.each(func(c *Cell) {
		if c.mine {
			c.count = -1
		} else {
			c.count = g.CountNeighboringMines(c.row, c.col)
		}
	})
}

func (g *Grid) CountNeighboringMines(row, col int) (n int) {
	g.neighbors(row, col, func(c *Cell) bool {
		if c.mine {
			n++
		}
		return true
	})
	return
}

// AllNonMinesRevealed reports whether every non-mine cell is revealed.
func (g *Grid) AllNonMinesRevealed() bool {
	for row := range g.cells {
		for _, c := range g.cells[row] {
			if !c.mine && c.status != Revealed {
				return false
			}
		}
	}
	return true
}

func (g *Grid) RevealAllMines() {
	g.each(func(c *Cell) {
		if c.mine {
			g.setStatus(c, Revealed)
		}
	})
}

func (g *Grid) FlagAllMines() {
	g.each(func(c *Cell) {
		if c.mine {
			g.setMark(c, Flag)
		}
	})
}

func (g *Grid) CountMines() (n int) {
	g.each(func(c *Cell) {
		if c.mine {
			n++
		}
	})
	return
}

func (g *Grid) CountFlagged() (n int) {
	g.each(func(c *Cell) {
		if c.mark == Flag {
			n++
		}
	})
	return
}

// FindHiddenPositiveNeighbor returns the first neighbour of row:col that is
// hidden, not a mine and has a positive count.
func (g *Grid) FindHiddenPositiveNeighbor(row, col int) (found Cell, ok bool) {
	g.neighbors(row, col, func(c *Cell) bool {
		if !c.mine && c.status == Hidden && c.count > 0 {
			found, ok = *c, true
			return false
		}
		return true
	})
	return
}

// RevealZeroNeighbors reveals every neighbour of row:col with a positive
// count, appending each one to h. Neighbours that are already revealed are
// appended again.
func (g *Grid) RevealZeroNeighbors(row, col int, h *History) {
	g.neighbors(row, col, func(c *Cell) bool {
		if c.count > 0 {
			g.setStatus(c, Revealed)
			h.add(c.Position())
		}
		return true
	})
}

// up, left, down, right
var orthogonal = [...][2]int{{-1, 0}, {0, -1}, {1, 0}, {0, 1}}

type fillFrame struct {
	row, col, dir int
}

// FloodFillZeroRegion reveals the orthogonally connected region of zero-count
// cells containing row:col together with every positive-count cell touching
// it. Cells enter h in the order they are revealed: a zero cell's boundary is
// revealed only after everything reachable through it has been. Nothing
// happens unless row:col has count 0.
func (g *Grid) FloodFillZeroRegion(row, col int, h *History) {
	start := &g.cells[row][col]
	if start.count != 0 {
		return
	}
	if start.status == Hidden {
		g.setStatus(start, exploring)
	}

	stack := []fillFrame{{row: row, col: col}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.dir < len(orthogonal) {
			d := orthogonal[top.dir]
			top.dir++
			// clamped, so a step off the edge lands on the cell itself
			r := min(max(top.row+d[0], 0), g.rows-1)
			c := min(max(top.col+d[1], 0), g.cols-1)
			next := &g.cells[r][c]
			if next.status == Hidden && next.count == 0 {
				g.setStatus(next, exploring)
				stack = append(stack, fillFrame{row: r, col: c})
			}
			continue
		}

		f := *top
		stack = stack[:len(stack)-1]
		g.setStatus(&g.cells[f.row][f.col], Revealed)
		g.RevealZeroNeighbors(f.row, f.col, h)
	}
}

// Lines serializes the grid, one string per row. Hidden cells show their mark
// ('-', 'f' or '?') unless revealAll is set; everything else shows
// [MineChar] for mines and the count digit otherwise.
func (g *Grid) Lines(revealAll bool) []string {
	lines := make([]string, g.rows)
	buf := make([]byte, g.cols)
	for row := range g.cells {
		for col, c := range g.cells[row] {
			buf[col] = c.Glyph(revealAll)
		}
		lines[row] = string(buf)
	}
	return lines
}

// Grid implements [fmt.Stringer]
func (g *Grid) String() string {
	return strings.Join(g.Lines(false), "\n")
}
