package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/quackbattle/internal/config"
	"github.com/cory-johannsen/quackbattle/internal/game/agent"
	"github.com/cory-johannsen/quackbattle/internal/game/battle"
	"github.com/cory-johannsen/quackbattle/internal/game/catalog"
	"github.com/cory-johannsen/quackbattle/internal/game/combat"
	"github.com/cory-johannsen/quackbattle/internal/game/dice"
	"github.com/cory-johannsen/quackbattle/internal/game/input"
	"github.com/cory-johannsen/quackbattle/internal/game/movement"
	"github.com/cory-johannsen/quackbattle/internal/game/notify"
	"github.com/cory-johannsen/quackbattle/internal/game/objective"
	"github.com/cory-johannsen/quackbattle/internal/game/party"
)

// errQuit is returned when the front end stops the campaign early.
var errQuit = errors.New("quit")

// frontEnd feeds input to a campaign and shows its progress.
type frontEnd interface {
	input.Source
	// Attach is called with each new encounter before its first update.
	Attach(s *battle.Session)
	// Show is called after every update.
	Show(s *battle.Session, notes *notify.Queue)
	// Next blocks until the next update is due; false stops the campaign.
	Next() bool
	// Say prints a line outside an encounter.
	Say(line string)
}

// campaign runs encounters one after another with a persistent party, score
// and segment objective.
type campaign struct {
	tables   *catalog.Tables
	dice     dice.Source
	ai       *battle.EnemyController
	recorder battle.Recorder
	logger   *zap.Logger
	battle   config.BattleConfig

	party   *party.Party
	score   battle.Score
	segment int
	goal    objective.Objective
}

func newCampaign(tables *catalog.Tables, src dice.Source, chooser battle.SkillChooser, recorder battle.Recorder,
	cfg config.BattleConfig, startSegment int, logger *zap.Logger) (*campaign, error) {
	p, err := party.FromDef(tables.Party(), tables, src)
	if err != nil {
		return nil, fmt.Errorf("building party: %w", err)
	}
	c := &campaign{
		tables:   tables,
		dice:     src,
		ai:       battle.NewEnemyController(tables, chooser, logger),
		recorder: recorder,
		logger:   logger,
		battle:   cfg,
		party:    p,
	}
	if err := c.enterSegment(startSegment); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *campaign) enterSegment(seg int) error {
	goal, err := objective.ForSegment(seg, c.tables, c.party)
	if err != nil {
		return err
	}
	c.segment, c.goal = seg, goal
	return nil
}

func (c *campaign) encounter() ([]*agent.Agent, error) {
	if c.segment == objective.FinalSegment {
		return battle.NewBossEncounter(c.tables, c.dice)
	}
	return battle.NewEncounter(c.tables, c.segment, c.dice)
}

// run plays up to n encounters. It stops early when the party loses, the boss
// falls, or the front end quits.
func (c *campaign) run(ctx context.Context, fe frontEnd, n int) error {
	tick := time.Second / time.Duration(c.battle.TickRate)
	fe.Say(fmt.Sprintf("Segment %d: %s", c.segment, c.goal))

	for i := 0; i < n; i++ {
		enemies, err := c.encounter()
		if err != nil {
			return err
		}
		notes := notify.NewQueue()
		opts := battle.OptionsFromConfig(c.battle)
		opts.Segment = c.segment
		opts.Background = c.dice.Intn(3)
		s := battle.NewSession(ctx, battle.Deps{
			Catalog:   c.tables,
			Party:     c.party,
			Input:     fe,
			Gate:      &input.Switch{},
			Mover:     movement.NewAnimator(c.battle.MoveSpeed, c.battle.MoveOffset),
			Notes:     notes,
			Dice:      c.dice,
			Score:     &c.score,
			Logger:    c.logger,
			Objective: c.goal,
			AI:        c.ai,
			Recorder:  c.recorder,
		}, enemies, opts)
		fe.Attach(s)

		for !s.Over() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !fe.Next() {
				return errQuit
			}
			s.Update(ctx, tick)
			notes.Update(tick)
			fe.Show(s, notes)
		}

		if s.Outcome() == combat.Lose {
			fe.Say(fmt.Sprintf("Game over. Final score: %d", c.score.Points))
			return nil
		}
		fe.Say(fmt.Sprintf("Score: %d", c.score.Points))
		if !c.goal.Complete() {
			continue
		}
		if c.segment == objective.FinalSegment {
			fe.Say(fmt.Sprintf("The Robo Duck is defeated! Final score: %d", c.score.Points))
			return nil
		}
		if err := c.enterSegment(c.segment + 1); err != nil {
			return err
		}
		fe.Say(fmt.Sprintf("Objective complete. Segment %d: %s", c.segment, c.goal))
	}
	return nil
}
