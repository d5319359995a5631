package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/logging"
	"github.com/vancomm/minesweeper/internal/mines"
)

var log = logrus.New()

type gameFlags struct {
	rows, cols, mines int
	seed              uint64
	layout            string
}

// loadConfig reads the config file, then the environment, then whatever
// flags were given explicitly.
func loadConfig(cmd *cobra.Command, f *gameFlags) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("rows") {
		cfg.Rows = f.rows
	}
	if flags.Changed("cols") {
		cfg.Cols = f.cols
	}
	if flags.Changed("mines") {
		cfg.Mines = f.mines
	}
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	if flags.Changed("layout") {
		cfg.Layout = f.layout
	}
	return cfg, cfg.Validate()
}

func newPlayCommand() *cobra.Command {
	var f gameFlags
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game, reading commands from standard input",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, &f)
			if err != nil {
				return err
			}
			if err := logging.Setup(cfg, log, mines.Log); err != nil {
				return err
			}
			log.Info("starting up, mode = ", cfg.Mode)
			log.WithFields(cfg.Fields()).Debug("config")

			s, err := newSession(cfg, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return s.run(cmd.Context(), cmd.InOrStdin())
		},
	}
	cmd.Flags().IntVar(&f.rows, "rows", 0, "number of rows")
	cmd.Flags().IntVar(&f.cols, "cols", 0, "number of columns")
	cmd.Flags().IntVar(&f.mines, "mines", 0, "number of mines")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "seed for mine placement, 0 for a random one")
	cmd.Flags().StringVar(&f.layout, "layout", "", "layout file, one row per line, 'x' for a mine")
	return cmd
}

func newRenderCommand() *cobra.Command {
	var reveal bool
	cmd := &cobra.Command{
		Use:   "render LAYOUT",
		Short: "Print the grid described by a layout file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := config.ReadLayout(args[0])
			if err != nil {
				return err
			}
			g, err := mines.NewFromLayout(lines)
			if err != nil {
				return err
			}
			s := &session{game: g, out: cmd.OutOrStdout()}
			s.print(reveal)
			return nil
		},
	}
	cmd.Flags().BoolVar(&reveal, "reveal", false, "show mines and counts of hidden cells")
	return cmd
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "mines",
		Short:         "Minesweeper in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("config", "c", "", "config file path")
	root.AddCommand(newPlayCommand(), newRenderCommand())
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		log.Fatal(err)
	}
}
