package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var tickLimit int

var autoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Let the autopilot fight encounters",
	Long:  `Run encounters without a screen. The autopilot strikes with each member's base skill and narration is printed to stdout.`,
	RunE:  runAuto,
}

func init() {
	autoCmd.Flags().IntVar(&tickLimit, "tick-limit", 100000, "abandon an encounter after this many updates (0 = no limit)")
}

func runAuto(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, record, false)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	c, err := newCampaign(a.tables, a.dice, a.scripts, a.recorder, a.cfg.Battle, segment, a.logger)
	if err != nil {
		return err
	}
	err = c.run(ctx, newAutopilot(os.Stdout, tickLimit), battles)
	if errors.Is(err, errQuit) {
		err = fmt.Errorf("encounter still running after %d updates", tickLimit)
	}
	if err != nil {
		a.logger.Error("campaign stopped", zap.Error(err))
	}
	return err
}
