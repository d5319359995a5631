package mines

import "strconv"

type Status int8

const (
	Hidden Status = iota
	Revealed

	// internal to flood fill, never observable once it returns
	exploring
)

func (s Status) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Revealed:
		return "revealed"
	case exploring:
		return "exploring"
	default:
		return "status(" + strconv.Itoa(int(s)) + ")"
	}
}

type Mark int8

const (
	NoMark Mark = iota
	Flag
	QuestionMark
)

// Next returns the mark that follows m in the None -> Flag -> Question cycle.
func (m Mark) Next() Mark {
	switch m {
	case NoMark:
		return Flag
	case Flag:
		return QuestionMark
	default:
		return NoMark
	}
}

func (m Mark) String() string {
	switch m {
	case NoMark:
		return "none"
	case Flag:
		return "flag"
	case QuestionMark:
		return "question"
	default:
		return "mark(" + strconv.Itoa(int(m)) + ")"
	}
}

// Glyph is the character a hidden cell with this mark serializes to.
func (m Mark) Glyph() byte {
	switch m {
	case Flag:
		return 'f'
	case QuestionMark:
		return '?'
	default:
		return '-'
	}
}

// Cell is a single grid position. Values handed out by [Grid] and [Game] are
// copies; mutating them has no effect on the game.
type Cell struct {
	row, col int
	mine     bool
	count    int
	status   Status
	mark     Mark
}

func newCell(row, col int) Cell {
	return Cell{row: row, col: col}
}

func (c Cell) Row() int { return c.row }

func (c Cell) Col() int { return c.col }

func (c Cell) Position() Position { return Position{Row: c.row, Col: c.col} }

func (c Cell) IsMine() bool { return c.mine }

// Count is the number of neighbouring mines, or -1 for a mine.
func (c Cell) Count() int { return c.count }

func (c Cell) Status() Status { return c.status }

func (c Cell) Mark() Mark { return c.mark }

func (c Cell) Hidden() bool { return c.status != Revealed }

// Glyph is the serialized form of the cell, see [Grid.Lines].
func (c Cell) Glyph(revealAll bool) byte {
	if c.status != Revealed && !revealAll {
		return c.mark.Glyph()
	}
	if c.mine {
		return MineChar
	}
	return byte('0' + c.count)
}

// Position is a (row, column) pair on the grid.
type Position struct {
	Row, Col int
}
