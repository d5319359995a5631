package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/schema"
	"github.com/sirupsen/logrus"
	"github.com/vancomm/minesweeper/internal/mines"
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"o": 2, // reveal
	"f": 2, // toggle mark
	"h": 0, // hint
	"p": 0, // print
	"r": 0, // print with everything revealed
	"n": 1, // new game
	"?": 0, // help
	"q": 0, // quit
}

const commandHelp = `commands:
  o ROW COL    reveal a cell
  f ROW COL    cycle the mark on a cell (flag, question mark, none)
  h            reveal a cell next to one already revealed
  p            print the grid
  r            print the grid with every cell revealed
  n PARAMS     new game, e.g. n rows=9&cols=9&mines=10&seed=7
  q            quit`

var errQuit = errors.New("quit")

type newGameParams struct {
	Rows  int    `schema:"rows,required"`
	Cols  int    `schema:"cols,required"`
	Mines int    `schema:"mines,required"`
	Seed  uint64 `schema:"seed"`
}

func decodeNewGameParams(query string) (newGameParams, error) {
	var p newGameParams
	src, err := url.ParseQuery(query)
	if err != nil {
		return p, err
	}
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err = dec.Decode(&p, src)
	return p, err
}

func parseRowCol(twoStrings []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("row must be an int")
		return
	}
	if col, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("column must be an int")
		return
	}
	return
}

func (s *session) executeCommand(c string) error {
	parts := strings.Fields(c)
	if len(parts) == 0 {
		return nil
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return errors.New("unknown command, ? for help")
	}
	if nargs != len(parts)-1 {
		return errors.New("invalid number of arguments")
	}
	switch parts[0] {
	case "o":
		row, col, err := parseRowCol(parts[1:])
		if err != nil {
			return err
		}
		if _, err := s.game.Reveal(row, col); err != nil {
			return err
		}
		s.print(false)
		switch s.game.State() {
		case mines.Won:
			fmt.Fprintln(s.out, "all clear, you won")
		case mines.Lost:
			fmt.Fprintln(s.out, "boom, game over")
		}
	case "f":
		row, col, err := parseRowCol(parts[1:])
		if err != nil {
			return err
		}
		if _, err := s.game.ToggleMark(row, col); err != nil {
			return err
		}
		s.print(false)
	case "h":
		events := s.game.Hint()
		if len(events) == 0 {
			fmt.Fprintln(s.out, "no hint available")
			return nil
		}
		cell := events[0].Cell
		fmt.Fprintf(s.out, "hint: revealed %d %d\n", cell.Row(), cell.Col())
		s.print(false)
	case "p":
		s.print(false)
	case "r":
		s.print(true)
	case "n":
		p, err := decodeNewGameParams(parts[1])
		if err != nil {
			return fmt.Errorf("bad game parameters: %w", err)
		}
		r := s.rand
		if p.Seed != 0 {
			r = newRand(p.Seed)
		}
		g, err := mines.New(mines.Params{Rows: p.Rows, Cols: p.Cols, Mines: p.Mines}, r)
		if err != nil {
			return err
		}
		s.setGame(g)
		log.WithFields(logrus.Fields{
			"rows":  p.Rows,
			"cols":  p.Cols,
			"mines": p.Mines,
			"seed":  p.Seed,
		}).Info("new game")
		s.print(false)
	case "?":
		fmt.Fprintln(s.out, commandHelp)
	case "q":
		return errQuit
	}
	return nil
}
