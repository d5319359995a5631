package mines

import (
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// Rand is the source used to place mines. *rand.Rand from math/rand/v2
// satisfies it.
type Rand interface {
	IntN(n int) int
}

type Params struct {
	Rows, Cols, Mines int
}

func (p Params) Validate() error {
	if p.Rows <= 0 || p.Cols <= 0 || p.Rows > math.MaxInt/p.Cols {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, p.Rows, p.Cols)
	}
	if p.Mines < 0 || p.Mines >= p.Rows*p.Cols {
		return fmt.Errorf("%w: got %d mines for %d cells",
			ErrTooManyMines, p.Mines, p.Rows*p.Cols)
	}
	return nil
}

type State int8

const (
	Playing State = iota
	Won
	Lost
)

func (s State) String() string {
	switch s {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "playing"
	}
}

type Game struct {
	grid     *Grid
	rec      recorder
	mines    int
	clicks   int
	over     bool
	lost     bool
	history  History
	observer Observer
}

func newGame(grid *Grid, mines int) *Game {
	g := &Game{grid: grid, mines: mines}
	grid.rec = &g.rec
	return g
}

// NewFromLayout starts a game on the mines described by lines, see
// [ParseLayout].
func NewFromLayout(lines []string) (*Game, error) {
	grid, err := ParseLayout(lines)
	if err != nil {
		return nil, err
	}
	grid.ComputeCounts()
	g := newGame(grid, grid.CountMines())
	Log.WithFields(logrus.Fields{
		"rows":  grid.rows,
		"cols":  grid.cols,
		"mines": g.mines,
	}).Debug("game created from layout")
	return g, nil
}

// New starts a game with p.Mines mines placed uniformly at random using r.
func New(p Params, r Rand) (*Game, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNilRand
	}
	grid, err := NewGrid(p.Rows, p.Cols)
	if err != nil {
		return nil, err
	}
	for placed := 0; placed < p.Mines; {
		row, col := r.IntN(p.Rows), r.IntN(p.Cols)
		if c := &grid.cells[row][col]; !c.mine {
			c.mine = true
			placed++
		}
	}
	grid.ComputeCounts()
	g := newGame(grid, p.Mines)
	Log.WithFields(logrus.Fields{
		"rows":  p.Rows,
		"cols":  p.Cols,
		"mines": p.Mines,
	}).Debug("game created")
	return g, nil
}

func (g *Game) check(row, col int) error {
	if !g.grid.InBounds(row, col) {
		return outOfBounds(row, col, g.grid.rows, g.grid.cols)
	}
	return nil
}

// SetObserver registers o to be called for every event. A nil o removes the
// current observer.
func (g *Game) SetObserver(o Observer) {
	g.observer = o
}

func (g *Game) emit() []Event {
	events := g.rec.flush(g.grid)
	if g.observer != nil {
		for _, e := range events {
			g.observer.CellChanged(e)
		}
	}
	return events
}

// Reveal processes a click on row:col. The cell is revealed and, if its count
// is zero, its region is flood filled. A mine on the very first click is
// turned into an empty cell; any later mine ends the game. Revealing the last
// hidden non-mine wins it. Nothing happens once the game is over.
func (g *Game) Reveal(row, col int) ([]Event, error) {
	if err := g.check(row, col); err != nil {
		return nil, err
	}
	if g.over {
		return nil, nil
	}

	p := Position{Row: row, Col: col}
	c := g.grid.at(p)
	g.grid.setStatus(c, Revealed)
	if c.count == 0 {
		g.grid.FloodFillZeroRegion(row, col, &g.history)
	}

	if c.mine && g.clicks == 0 {
		c.mine = false
		g.grid.ComputeCounts()
		Log.WithField("pos", p).Debug("first click on a mine, mine removed")
	} else if c.mine {
		g.grid.RevealAllMines()
		g.over = true
		g.lost = true
		Log.WithField("pos", p).Debug("mine revealed, game lost")
	}
	if g.grid.AllNonMinesRevealed() {
		g.grid.FlagAllMines()
		g.over = true
		Log.WithField("clicks", g.clicks+1).Debug("all cells cleared, game won")
	}

	g.history.add(p)
	g.clicks++
	return g.emit(), nil
}

// ToggleMark advances the mark on row:col through none, flag and question
// mark. It works whether or not the game is over.
func (g *Game) ToggleMark(row, col int) ([]Event, error) {
	if err := g.check(row, col); err != nil {
		return nil, err
	}
	c := g.grid.at(Position{Row: row, Col: col})
	g.grid.setMark(c, c.mark.Next())
	return g.emit(), nil
}

// Hint walks the history from the newest entry back and reveals the first
// hidden non-mine neighbour with a positive count it finds. It does nothing if
// there is no such cell or the game is over.
func (g *Game) Hint() []Event {
	if g.over {
		return nil
	}
	for i := len(g.history) - 1; i >= 0; i-- {
		from := g.history[i]
		c, ok := g.grid.FindHiddenPositiveNeighbor(from.Row, from.Col)
		if !ok {
			continue
		}
		p := c.Position()
		g.grid.setStatus(g.grid.at(p), Revealed)
		g.history.add(p)
		Log.WithFields(logrus.Fields{"from": from, "pos": p}).Debug("hint")
		return g.emit()
	}
	Log.Debug("hint: nothing to reveal")
	return nil
}

// IsWon reports whether every non-mine cell has been revealed.
func (g *Game) IsWon() bool {
	return g.grid.AllNonMinesRevealed()
}

// IsOver reports whether a click has ended the game, by hitting a mine or by
// clearing the grid.
func (g *Game) IsOver() bool {
	return g.over
}

// State is Lost once a mine was clicked, even if a hint had already cleared
// every safe cell.
func (g *Game) State() State {
	switch {
	case g.lost:
		return Lost
	case g.over:
		return Won
	default:
		return Playing
	}
}

func (g *Game) Clicks() int { return g.clicks }

// NumMines is the mine count the game was created with.
func (g *Game) NumMines() int { return g.mines }

func (g *Game) NumFlags() int { return g.grid.CountFlagged() }

func (g *Game) Rows() int { return g.grid.rows }

func (g *Game) Cols() int { return g.grid.cols }

func (g *Game) Cell(row, col int) (Cell, error) {
	return g.grid.Cell(row, col)
}

// History returns the revealed cells in the order they were revealed, as they
// are now.
func (g *Game) History() []Cell {
	cells := make([]Cell, len(g.history))
	for i, p := range g.history {
		cells[i] = *g.grid.at(p)
	}
	return cells
}

func (g *Game) Lines(revealAll bool) []string {
	return g.grid.Lines(revealAll)
}

// Game implements [fmt.Stringer]
func (g *Game) String() string {
	return strings.Join(g.Lines(false), "\n")
}
