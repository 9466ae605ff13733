// Package main provides battlesim, a terminal front end for the battle core.
// "play" runs encounters from the keyboard; "auto" lets an autopilot fight
// them; "history" lists recorded encounters.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	segment    int
	battles    int
	record     bool
)

var rootCmd = &cobra.Command{
	Use:   "battlesim",
	Short: "Turn-based duck battle simulator",
	Long:  `battlesim runs encounters against the shipped battle content, either from the keyboard or on autopilot.`,
	PersistentPreRun: func(*cobra.Command, []string) {
		// A missing .env is fine; variables may be set directly.
		_ = godotenv.Load()
	},
	SilenceUsage: true,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "configs/dev.yaml", "path to configuration file")
	pf.IntVar(&segment, "segment", 0, "map segment to draw encounters from (7 = boss)")
	pf.IntVar(&battles, "battles", 1, "number of encounters to run")
	pf.BoolVar(&record, "record", false, "record finished encounters in the database")

	rootCmd.AddCommand(playCmd, autoCmd, historyCmd)
}
