package mines

import (
	"math/rand/v2"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Log.SetLevel(logrus.DebugLevel)
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	os.Exit(m.Run())
}

func mustGrid(t *testing.T, lines ...string) *Grid {
	t.Helper()
	g, err := ParseLayout(lines)
	require.NoError(t, err)
	g.ComputeCounts()
	return g
}

func naiveCount(g *Grid, row, col int) (n int) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			r, c := row+dr, col+dc
			if (dr != 0 || dc != 0) && g.InBounds(r, c) && g.cells[r][c].mine {
				n++
			}
		}
	}
	return
}

func TestParseLayout(t *testing.T) {
	g, err := ParseLayout([]string{"x--", "-x-"})
	require.NoError(t, err)
	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, 3, g.Cols())
	assert.Equal(t, 2, g.CountMines())

	c, err := g.Cell(1, 1)
	require.NoError(t, err)
	assert.True(t, c.IsMine())
	assert.Equal(t, Hidden, c.Status())
	assert.Equal(t, NoMark, c.Mark())
	assert.Equal(t, 0, c.Count(), "counts are computed separately")
}

func TestParseLayoutInvalid(t *testing.T) {
	_, err := ParseLayout(nil)
	assert.ErrorIs(t, err, ErrEmptyLayout)
	_, err = ParseLayout([]string{""})
	assert.ErrorIs(t, err, ErrEmptyLayout)
	_, err = ParseLayout([]string{"x--", "--"})
	assert.ErrorIs(t, err, ErrRaggedLayout)
}

func TestComputeCounts(t *testing.T) {
	g := mustGrid(t,
		"x---x",
		"-x---",
		"---xx",
		"x----",
	)
	assert.Equal(t, []string{
		"x211x",
		"2x233",
		"222xx",
		"x1122",
	}, g.Lines(true))
}

func TestComputeCountsMatchesBruteForce(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for range 50 {
		rows, cols := 1+r.IntN(12), 1+r.IntN(12)
		g, err := NewGrid(rows, cols)
		require.NoError(t, err)
		g.each(func(c *Cell) { c.mine = r.IntN(4) == 0 })
		g.ComputeCounts()
		g.each(func(c *Cell) {
			if c.mine {
				assert.Equal(t, -1, c.count)
			} else {
				assert.Equal(t, naiveCount(g, c.row, c.col), c.count)
			}
		})
	}
}

func TestCountNeighboringMinesCorners(t *testing.T) {
	g := mustGrid(t,
		"xxx",
		"xxx",
		"xxx",
	)
	assert.Equal(t, 3, g.CountNeighboringMines(0, 0))
	assert.Equal(t, 5, g.CountNeighboringMines(0, 1))
	assert.Equal(t, 8, g.CountNeighboringMines(1, 1))
	assert.Equal(t, 3, g.CountNeighboringMines(2, 2))
}

func TestAllNonMinesRevealed(t *testing.T) {
	g := mustGrid(t, "x-")
	assert.False(t, g.AllNonMinesRevealed())
	g.setStatus(&g.cells[0][1], Revealed)
	assert.True(t, g.AllNonMinesRevealed())
}

func TestRevealAndFlagAllMines(t *testing.T) {
	g := mustGrid(t, "x-x", "---")
	g.RevealAllMines()
	assert.Equal(t, []string{"x-x", "---"}, g.Lines(false))

	g.FlagAllMines()
	assert.Equal(t, 2, g.CountFlagged())
	assert.Equal(t, Hidden, g.cells[0][1].status)
	assert.Equal(t, NoMark, g.cells[0][1].mark)
}

func TestCountFlagged(t *testing.T) {
	g := mustGrid(t, "---")
	g.setMark(&g.cells[0][0], Flag)
	g.setMark(&g.cells[0][1], QuestionMark)
	assert.Equal(t, 1, g.CountFlagged())
}

func TestFindHiddenPositiveNeighbor(t *testing.T) {
	g := mustGrid(t,
		"x--",
		"---",
		"--x",
	)
	// the scan starts at the top row, skipping the mine in the corner
	c, ok := g.FindHiddenPositiveNeighbor(1, 1)
	require.True(t, ok)
	assert.Equal(t, Position{0, 1}, c.Position())

	g.setStatus(&g.cells[0][1], Revealed)
	g.setStatus(&g.cells[0][2], Revealed)
	c, ok = g.FindHiddenPositiveNeighbor(1, 1)
	require.True(t, ok)
	assert.Equal(t, Position{1, 0}, c.Position())

	g2 := mustGrid(t, "---", "---")
	_, ok = g2.FindHiddenPositiveNeighbor(0, 0)
	assert.False(t, ok)
}

func TestRevealZeroNeighbors(t *testing.T) {
	g := mustGrid(t,
		"x---",
		"----",
		"----",
	)
	var h History
	g.RevealZeroNeighbors(1, 1, &h)
	assert.Equal(t, History{{0, 1}, {1, 0}}, h)
	assert.Equal(t, []string{
		"-1--",
		"1---",
		"----",
	}, g.Lines(false))

	// revealed neighbours are appended again
	g.RevealZeroNeighbors(1, 1, &h)
	assert.Len(t, h, 4)

	// nil history is allowed
	g.RevealZeroNeighbors(1, 1, nil)
}

func TestFloodFillZeroRegion(t *testing.T) {
	g := mustGrid(t,
		"----x",
		"---x-",
		"xx---",
		"-----",
	)
	var h History
	g.FloodFillZeroRegion(0, 0, &h)
	assert.Equal(t, []string{
		"001--",
		"222--",
		"-----",
		"-----",
	}, g.Lines(false))
	for _, p := range h {
		assert.Greater(t, g.at(p).count, 0, "only the boundary goes to history")
	}
	g.each(func(c *Cell) {
		assert.NotEqual(t, exploring, c.status)
	})
}

func TestFloodFillStopsAtBoundary(t *testing.T) {
	// 3:4 and 4:3 only border the revealed ring, so they stay hidden
	g := mustGrid(t,
		"-----",
		"-----",
		"-----",
		"---x-",
		"----x",
	)
	g.FloodFillZeroRegion(0, 0, nil)
	assert.Equal(t, []string{
		"00000",
		"00000",
		"00111",
		"001--",
		"001--",
	}, g.Lines(false))
}

func TestFloodFillIgnoresPositiveStart(t *testing.T) {
	g := mustGrid(t, "x-", "--")
	var h History
	g.FloodFillZeroRegion(0, 1, &h)
	assert.Empty(t, h)
	assert.Equal(t, []string{"--", "--"}, g.Lines(false))
}

func TestFloodFillNeverRevealsMines(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for range 50 {
		rows, cols := 2+r.IntN(15), 2+r.IntN(15)
		g, err := NewGrid(rows, cols)
		require.NoError(t, err)
		g.each(func(c *Cell) { c.mine = r.IntN(6) == 0 })
		g.ComputeCounts()

		var start *Cell
		g.each(func(c *Cell) {
			if start == nil && c.count == 0 {
				start = c
			}
		})
		if start == nil {
			continue
		}
		g.FloodFillZeroRegion(start.row, start.col, nil)

		region := orthogonalZeroRegion(g, start.row, start.col)
		g.each(func(c *Cell) {
			p := c.Position()
			switch {
			case c.mine:
				assert.Equal(t, Hidden, c.status, "mine %v revealed", p)
			case region[p]:
				assert.Equal(t, Revealed, c.status, "zero cell %v", p)
			case touches(g, region, p):
				assert.Equal(t, Revealed, c.status, "boundary cell %v", p)
			default:
				assert.Equal(t, Hidden, c.status, "unrelated cell %v", p)
			}
		})
	}
}

func orthogonalZeroRegion(g *Grid, row, col int) map[Position]bool {
	seen := map[Position]bool{{row, col}: true}
	queue := []Position{{row, col}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range orthogonal {
			n := Position{p.Row + d[0], p.Col + d[1]}
			if g.InBounds(n.Row, n.Col) && !seen[n] && g.at(n).count == 0 {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return seen
}

func touches(g *Grid, region map[Position]bool, p Position) bool {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			n := Position{p.Row + dr, p.Col + dc}
			if n != p && region[n] {
				return true
			}
		}
	}
	return false
}

func TestLines(t *testing.T) {
	g := mustGrid(t, "x-", "--")
	g.setMark(&g.cells[0][0], Flag)
	g.setMark(&g.cells[0][1], QuestionMark)
	g.setStatus(&g.cells[1][1], Revealed)

	assert.Equal(t, []string{"f?", "-1"}, g.Lines(false))
	assert.Equal(t, []string{"x1", "11"}, g.Lines(true))
	assert.Equal(t, "f?\n-1", g.String())
}

func TestCellOutOfBounds(t *testing.T) {
	g := mustGrid(t, "--")
	_, err := g.Cell(1, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = g.Cell(0, -1)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}
