package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/mines"
	"golang.org/x/sync/errgroup"
)

type session struct {
	game *mines.Game
	rand *rand.Rand
	out  io.Writer
}

func newSession(cfg config.Config, out io.Writer) (*session, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	s := &session{rand: newRand(seed), out: out}

	var (
		g   *mines.Game
		err error
	)
	if cfg.Layout != "" {
		lines, lerr := config.ReadLayout(cfg.Layout)
		if lerr != nil {
			return nil, lerr
		}
		g, err = mines.NewFromLayout(lines)
	} else {
		g, err = mines.New(cfg.Params(), s.rand)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to start game: %w", err)
	}
	s.setGame(g)

	log.WithFields(logrus.Fields{
		"rows":   g.Rows(),
		"cols":   g.Cols(),
		"mines":  g.NumMines(),
		"seed":   seed,
		"layout": cfg.Layout,
	}).Info("new game")
	return s, nil
}

func (s *session) setGame(g *mines.Game) {
	g.SetObserver(mines.ObserverFunc(cellChanged))
	s.game = g
}

func cellChanged(e mines.Event) {
	log.WithFields(logrus.Fields{
		"row":    e.Cell.Row(),
		"col":    e.Cell.Col(),
		"kind":   e.Kind,
		"status": e.Cell.Status(),
		"mark":   e.Cell.Mark(),
	}).Debug("cell changed")
}

func (s *session) print(revealAll bool) {
	for _, line := range s.game.Lines(revealAll) {
		fmt.Fprintln(s.out, line)
	}
	fmt.Fprintf(s.out, "mines: %d  flags: %d  clicks: %d  %s\n",
		s.game.NumMines(), s.game.NumFlags(), s.game.Clicks(), s.game.State())
}

func (s *session) prompt() {
	fmt.Fprint(s.out, "> ")
}

// run executes commands read from in until it is exhausted, a quit command
// arrives or ctx is cancelled.
func (s *session) run(ctx context.Context, in io.Reader) error {
	g, gCtx := errgroup.WithContext(ctx)
	lines := make(chan string)
	readErr := make(chan error, 1)

	// not part of the group: a blocked read cannot be interrupted
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-gCtx.Done():
				return
			}
		}
		readErr <- sc.Err()
	}()

	g.Go(func() error {
		s.print(false)
		s.prompt()
		for {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			case line, ok := <-lines:
				if !ok {
					select {
					case err := <-readErr:
						if err != nil {
							return err
						}
					default:
					}
					return errQuit
				}
				err := s.executeCommand(line)
				if errors.Is(err, errQuit) {
					return err
				}
				if err != nil {
					fmt.Fprintln(s.out, "error:", err)
				}
				s.prompt()
			}
		}
	})
	g.Go(func() error {
		<-gCtx.Done()
		if ctx.Err() != nil {
			log.Info("interrupted")
		}
		return nil
	})

	err := g.Wait()
	if errors.Is(err, errQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
