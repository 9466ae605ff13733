// Package battle runs a single encounter: it builds the turn order, feeds
// player input to the menu, plays enemy turns, drives each ability use to
// completion and settles rewards or penalties when one side falls.
package battle

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/cory-johannsen/quackbattle/internal/game/ability"
	"github.com/cory-johannsen/quackbattle/internal/game/agent"
	"github.com/cory-johannsen/quackbattle/internal/game/catalog"
	"github.com/cory-johannsen/quackbattle/internal/game/combat"
	"github.com/cory-johannsen/quackbattle/internal/game/dice"
	"github.com/cory-johannsen/quackbattle/internal/game/input"
	"github.com/cory-johannsen/quackbattle/internal/game/menu"
	"github.com/cory-johannsen/quackbattle/internal/game/movement"
	"github.com/cory-johannsen/quackbattle/internal/game/notify"
	"github.com/cory-johannsen/quackbattle/internal/game/objective"
	"github.com/cory-johannsen/quackbattle/internal/game/party"
	"github.com/cory-johannsen/quackbattle/internal/game/targeting"
	"github.com/cory-johannsen/quackbattle/internal/observability"
)

// Position nudges applied to a party member at the start and end of its turn.
const (
	turnStartNudge = -20
	turnEndNudge   = 10
)

// Deps are the collaborators a Session needs. Objective, AI, Recorder and
// Tracer are optional.
type Deps struct {
	Catalog   catalog.Catalog
	Party     *party.Party
	Input     input.Source
	Gate      input.Gate
	Mover     movement.Driver
	Notes     notify.Sink
	Dice      dice.Source
	Score     *Score
	Logger    *zap.Logger
	Objective objective.Hook
	AI        *EnemyController
	Recorder  Recorder
	Tracer    trace.Tracer
}

// Session is one encounter. It is advanced only by Update and is not safe for
// concurrent use.
//
// Invariant: at most one ability use is in flight, and none once the outcome
// is terminal.
type Session struct {
	id        uuid.UUID
	catalog   catalog.Catalog
	party     *party.Party
	enemies   []*agent.Agent
	order     *combat.Order
	menu      *menu.Menu
	input     input.Source
	gate      input.Gate
	mover     movement.Driver
	notes     notify.Sink
	dice      dice.Source
	score     *Score
	objective objective.Hook
	ai        *EnemyController
	recorder  Recorder
	tracer    trace.Tracer
	logger    *zap.Logger
	opts      Options

	abilityDeps ability.Deps
	use         *ability.Use
	enemyActed  bool
	outcome     combat.Outcome
	result      *Result
	turns       int
	turnSpan    trace.Span
	startedAt   time.Time
}

// NewSession builds the turn order from the party and enemies, lays agents
// out on the field and starts the first turn.
//
// Precondition: Catalog, Party, Input, Gate, Mover, Notes, Dice, Score and
// Logger must be non-nil; the party and enemies must each hold a living agent.
func NewSession(ctx context.Context, deps Deps, enemies []*agent.Agent, opts Options) *Session {
	if deps.Catalog == nil || deps.Party == nil || deps.Input == nil || deps.Gate == nil ||
		deps.Mover == nil || deps.Notes == nil || deps.Dice == nil || deps.Score == nil || deps.Logger == nil {
		panic("battle: NewSession called with a nil collaborator")
	}
	if deps.Objective == nil {
		deps.Objective = objective.Nop{}
	}
	if deps.AI == nil {
		deps.AI = NewEnemyController(deps.Catalog, nil, deps.Logger)
	}
	if deps.Tracer == nil {
		deps.Tracer = observability.Tracer("battle")
	}

	order := combat.BuildTurnOrder(deps.Party.Members(), enemies)
	s := &Session{
		id:        uuid.New(),
		catalog:   deps.Catalog,
		party:     deps.Party,
		enemies:   enemies,
		order:     order,
		menu:      menu.New(deps.Catalog, targeting.New(order.Agents()), deps.Notes, opts.ActionMessage),
		input:     deps.Input,
		gate:      deps.Gate,
		mover:     deps.Mover,
		notes:     deps.Notes,
		dice:      deps.Dice,
		score:     deps.Score,
		objective: deps.Objective,
		ai:        deps.AI,
		recorder:  deps.Recorder,
		tracer:    deps.Tracer,
		opts:      opts,
		startedAt: time.Now(),
	}
	s.logger = deps.Logger.With(zap.String("battle", s.id.String()))
	s.abilityDeps = ability.Deps{
		Catalog:         deps.Catalog,
		Input:           deps.Gate,
		Mover:           deps.Mover,
		Notes:           deps.Notes,
		Inventory:       deps.Party,
		Dice:            deps.Dice,
		Logger:          s.logger,
		MessageDuration: opts.ActionMessage,
	}

	s.assignPositions()
	_, span := s.tracer.Start(ctx, "battle.start")
	span.SetAttributes(
		attribute.String("battle.id", s.id.String()),
		attribute.Int("party.size", deps.Party.Size()),
		attribute.Int("enemy.count", len(enemies)),
		attribute.Int("segment", opts.Segment),
	)
	span.End()
	s.logger.Info("battle started",
		zap.Int("party", deps.Party.Size()),
		zap.Int("enemies", len(enemies)),
		zap.Int("segment", opts.Segment),
	)
	s.startTurn(ctx)
	return s
}

// assignPositions walks the turn order backwards so the fastest agent of each
// side ends up nearest the middle of the field.
func (s *Session) assignPositions() {
	w, h := s.opts.Width, s.opts.Height
	var fp, ep int
	for i := s.order.Len() - 1; i >= 0; i-- {
		a := s.order.At(i)
		if a.IsFriendly() {
			a.X = float64(w - w/6 - fp*50)
			a.Y = float64(((1+fp)*h)/12 - h + 190)
			fp++
		} else {
			a.X = float64(w/6 + ep*50)
			a.Y = float64(((1+ep)*h)/12 - h + 190)
			ep++
		}
	}
}

// Update advances the encounter by one tick. A friendly turn consumes at most
// one input event; an enemy turn starts its ability once.
func (s *Session) Update(ctx context.Context, delta time.Duration) {
	if !s.outcome.IsOver() {
		current := s.order.Current()
		if current.IsFriendly() {
			if ev, ok := s.input.Poll(); ok && s.gate.Enabled() && s.use == nil {
				s.handleInput(ev, current)
			}
		} else if !s.enemyActed {
			s.enemyTurn(current)
		}
	}

	s.mover.Update(delta)
	if s.use != nil {
		if u := s.use.User(); u.IsAttacking() {
			u.UpdateAttackTime(delta.Seconds())
		}
	}
	s.pollMovement(ctx)

	if s.use != nil && s.menu.Mode() == menu.Targeting && s.order.HasLiving(agent.Enemy) {
		if err := s.menu.Revalidate(s.order.Current().Type()); err != nil {
			panic(fmt.Sprintf("battle: %v", err))
		}
	}
}

func (s *Session) handleInput(ev input.Event, current *agent.Agent) {
	sel, ok, err := s.menu.Handle(ev, current)
	if err != nil {
		panic(fmt.Sprintf("battle: %v", err))
	}
	if !ok {
		return
	}
	switch sel.Kind {
	case ability.Skill:
		s.use = ability.NewSkill(s.abilityDeps, current, sel.Target, sel.ID)
	case ability.Item:
		use, err := ability.NewItem(s.abilityDeps, current, sel.Target, sel.ID)
		if err != nil {
			s.logger.Debug("item use refused", zap.Error(err))
			return
		}
		s.use = use
	}
	if s.turnSpan != nil {
		s.turnSpan.SetAttributes(
			attribute.String("ability.kind", sel.Kind.String()),
			attribute.Int("ability.id", sel.ID),
			attribute.String("target", sel.Target.Name()),
		)
	}
}

// enemyTurn starts the enemy's chosen skill on a living party member drawn by
// rejection sampling over the turn order, whatever the skill's kind.
func (s *Session) enemyTurn(current *agent.Agent) {
	s.enemyActed = true
	id := s.ai.ChooseSkill(current, s.order.Agents())
	_, target := combat.SampleTarget(s.order.Agents(), agent.Friendly, s.dice)
	s.use = ability.NewSkill(s.abilityDeps, current, target, id)
	if s.turnSpan != nil {
		s.turnSpan.SetAttributes(
			attribute.String("ability.kind", ability.Skill.String()),
			attribute.Int("ability.id", id),
			attribute.String("target", target.Name()),
		)
	}
}

func (s *Session) pollMovement(ctx context.Context) {
	var phase movement.Phase
	select {
	case phase = <-s.mover.Done():
	default:
		return
	}
	if s.use == nil {
		s.logger.Warn("movement finished with no ability in flight", zap.Stringer("phase", phase))
		return
	}
	done, err := s.use.MovementDone(ctx, phase)
	if err != nil {
		panic(fmt.Sprintf("battle: %v", err))
	}
	if done {
		s.use = nil
		s.endTurn(ctx)
	}
}

func (s *Session) startTurn(ctx context.Context) {
	current := s.order.Current()
	s.enemyActed = false
	s.turns++
	if current.IsFriendly() {
		current.X += turnStartNudge
		s.menu.Reset(current, s.party.Consumables())
	}
	s.notes.Notify(current.Name()+"'s turn", s.opts.TurnMessage)
	_, s.turnSpan = s.tracer.Start(ctx, "battle.turn")
	s.turnSpan.SetAttributes(
		attribute.String("battle.id", s.id.String()),
		attribute.Int("turn", s.turns),
		attribute.String("agent", current.Name()),
		attribute.String("agent.type", current.Type().String()),
	)
	s.logger.Debug("turn started", zap.Int("turn", s.turns), zap.String("agent", current.Name()))
}

func (s *Session) endTurn(ctx context.Context) {
	current := s.order.Current()
	if current.IsFriendly() {
		current.X += turnEndNudge
		s.menu.Reset(current, s.party.Consumables())
	}
	if s.turnSpan != nil {
		s.turnSpan.End()
		s.turnSpan = nil
	}

	outcome := s.order.EndTurn()
	if outcome.IsOver() {
		s.finish(ctx, outcome)
		return
	}
	s.startTurn(ctx)
}

func (s *Session) finish(ctx context.Context, outcome combat.Outcome) {
	s.outcome = outcome
	r := &Result{
		ID:          s.id,
		Outcome:     outcome,
		Segment:     s.opts.Segment,
		Turns:       s.turns,
		ScoreBefore: s.score.Points,
		StartedAt:   s.startedAt,
	}
	if outcome == combat.Win {
		s.applyWin(r)
	} else {
		s.applyLoss(r)
	}
	r.ScoreAfter = s.score.Points
	r.EndedAt = time.Now()
	s.result = r

	for _, m := range r.Messages {
		s.notes.Notify(m, s.opts.ActionMessage)
	}

	ctx, span := s.tracer.Start(ctx, "battle.end")
	span.SetAttributes(
		attribute.String("battle.id", s.id.String()),
		attribute.String("outcome", outcome.String()),
		attribute.Int("turns", r.Turns),
		attribute.Int("xp_pool", r.XPPool),
		attribute.Int("score", r.ScoreAfter),
	)
	defer span.End()

	if s.recorder != nil {
		if err := s.recorder.Record(ctx, *r); err != nil {
			span.RecordError(err)
			s.logger.Error("recording battle result", zap.Error(err))
		}
	}
}

// ID returns the encounter id.
func (s *Session) ID() uuid.UUID { return s.id }

// Outcome returns Ongoing until one side has fallen.
func (s *Session) Outcome() combat.Outcome { return s.outcome }

// Over reports whether the encounter has ended.
func (s *Session) Over() bool { return s.outcome.IsOver() }

// Result returns the settled result once the encounter is over.
func (s *Session) Result() (Result, bool) {
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}

// Current returns the agent whose turn it is.
func (s *Session) Current() *agent.Agent { return s.order.Current() }

// Order returns the turn order.
func (s *Session) Order() *combat.Order { return s.order }

// Menu returns the player's battle menu.
func (s *Session) Menu() *menu.Menu { return s.menu }

// Enemies returns the enemy roster.
func (s *Session) Enemies() []*agent.Agent { return s.enemies }

// InFlight returns the ability use in progress, if any.
func (s *Session) InFlight() *ability.Use { return s.use }

// Background returns the backdrop chosen for this encounter.
func (s *Session) Background() int { return s.opts.Background }
