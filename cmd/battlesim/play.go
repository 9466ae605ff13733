package main

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Fight encounters from the keyboard",
	Long:  `Open a terminal battle screen and fight encounters with the arrow keys, enter and escape. Logs go to logging.file.`,
	RunE:  runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, record, true)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	c, err := newCampaign(a.tables, a.dice, a.scripts, a.recorder, a.cfg.Battle, segment, a.logger)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	term := newTerminal(screen, a.tables, a.cfg.Battle.TickRate)
	defer term.stop()
	defer screen.Fini()

	err = c.run(ctx, term, battles)
	if errors.Is(err, errQuit) {
		a.logger.Info("player quit", zap.Int("score", c.score.Points))
		return nil
	}
	return err
}
