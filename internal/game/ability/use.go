package ability

import (
	"context"
	"fmt"
	"time"

	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"github.com/cory-johannsen/quackbattle/internal/game/agent"
	"github.com/cory-johannsen/quackbattle/internal/game/catalog"
	"github.com/cory-johannsen/quackbattle/internal/game/dice"
	"github.com/cory-johannsen/quackbattle/internal/game/input"
	"github.com/cory-johannsen/quackbattle/internal/game/movement"
	"github.com/cory-johannsen/quackbattle/internal/game/notify"
)

// Use states.
const (
	StateMovingOut     = "moving_out"
	StateEffectApplied = "effect_applied"
	StateReturning     = "returning"
	StateDone          = "done"
)

const (
	eventArrive = "arrive"
	eventReturn = "return"
	eventFinish = "finish"
)

// DefaultMessageDuration is how long action narration stays on screen.
const DefaultMessageDuration = 3 * time.Second

// Inventory is the consumable store an item use draws from.
type Inventory interface {
	RemoveConsumable(id int) bool
	CountConsumable(id int) int
}

// Deps are the collaborators shared by every ability use in a session.
type Deps struct {
	Catalog   catalog.Catalog
	Input     input.Gate
	Mover     movement.Driver
	Notes     notify.Sink
	Inventory Inventory
	Dice      dice.Source
	Logger    *zap.Logger
	// MessageDuration defaults to DefaultMessageDuration when zero.
	MessageDuration time.Duration
}

func (d Deps) validate() {
	if d.Catalog == nil || d.Input == nil || d.Mover == nil || d.Notes == nil || d.Dice == nil || d.Logger == nil {
		panic("ability: Deps has a nil collaborator")
	}
}

func (d Deps) duration() time.Duration {
	if d.MessageDuration <= 0 {
		return DefaultMessageDuration
	}
	return d.MessageDuration
}

// Use is one in-flight skill or item application.
//
// Invariant: input stays disabled from construction until the return leg
// completes.
type Use struct {
	deps    Deps
	kind    Kind
	id      int
	name    string
	user    *agent.Agent
	target  *agent.Agent
	machine *fsm.FSM

	// Amount is the damage dealt, HP restored or MP given by the effect.
	Amount int
}

// NewSkill starts user using skill id on target.
//
// The MP cost is not checked here; callers confirm it with CheckMP first.
// Postcondition: input is disabled and the move-out has been requested.
func NewSkill(deps Deps, user, target *agent.Agent, id int) *Use {
	deps.validate()
	s := deps.Catalog.Skill(id)
	u := newUse(deps, Skill, id, s.Name, user, target)
	if s.Kind == catalog.SkillAttack {
		user.SetAttacking(true)
	}
	u.start()
	return u
}

// NewItem starts user using consumable id on target.
//
// When the target is in the wrong life state for the item, or the item is not
// in the inventory, the rejection is narrated, input is re-enabled and an error
// is returned with no Use built.
func NewItem(deps Deps, user, target *agent.Agent, id int) (*Use, error) {
	deps.validate()
	if deps.Inventory == nil {
		panic("ability: NewItem called without an inventory")
	}
	c := deps.Catalog.Consumable(id)
	if deps.Inventory.CountConsumable(id) == 0 {
		deps.Notes.Notify("You have no "+c.Name, deps.duration())
		deps.Input.Enable()
		return nil, fmt.Errorf("using %s: %w", c.Name, ErrItemUnavailable)
	}
	if err := CheckItem(c, target); err != nil {
		deps.Notes.Notify(rejection(err, target), deps.duration())
		deps.Input.Enable()
		deps.Logger.Debug("item rejected",
			zap.String("agent", user.Name()),
			zap.String("target", target.Name()),
			zap.String("item", c.Name),
			zap.Error(err),
		)
		return nil, fmt.Errorf("using %s on %s: %w", c.Name, target.Name(), err)
	}
	u := newUse(deps, Item, id, c.Name, user, target)
	u.start()
	return u, nil
}

func newUse(deps Deps, kind Kind, id int, name string, user, target *agent.Agent) *Use {
	u := &Use{
		deps:   deps,
		kind:   kind,
		id:     id,
		name:   name,
		user:   user,
		target: target,
	}
	u.machine = fsm.NewFSM(
		StateMovingOut,
		fsm.Events{
			{Name: eventArrive, Src: []string{StateMovingOut}, Dst: StateEffectApplied},
			{Name: eventReturn, Src: []string{StateEffectApplied}, Dst: StateReturning},
			{Name: eventFinish, Src: []string{StateReturning}, Dst: StateDone},
		},
		fsm.Callbacks{
			"enter_" + StateEffectApplied: func(_ context.Context, _ *fsm.Event) {
				u.apply()
			},
			"enter_state": func(_ context.Context, e *fsm.Event) {
				u.deps.Logger.Debug("ability state",
					zap.String("agent", u.user.Name()),
					zap.String("ability", u.name),
					zap.String("from", e.Src),
					zap.String("to", e.Dst),
				)
			},
		},
	)
	return u
}

func (u *Use) start() {
	u.deps.Input.Disable()
	u.deps.Mover.MoveOut(u.user, u.target.X)
	u.deps.Notes.Notify(fmt.Sprintf("%s uses %s on %s", u.user.Name(), u.name, u.target.Name()), u.deps.duration())
	u.deps.Logger.Info("ability started",
		zap.String("agent", u.user.Name()),
		zap.String("target", u.target.Name()),
		zap.String("kind", u.kind.String()),
		zap.String("ability", u.name),
	)
}

// MovementDone advances the machine for a completed movement leg. It reports
// true once the return leg has finished and the turn should end.
//
// Postcondition: after Going the effect is applied and the return requested;
// after Returning input is enabled again.
func (u *Use) MovementDone(ctx context.Context, phase movement.Phase) (bool, error) {
	switch phase {
	case movement.Going:
		if err := u.machine.Event(ctx, eventArrive); err != nil {
			return false, fmt.Errorf("ability %s arrive: %w", u.name, err)
		}
		if err := u.machine.Event(ctx, eventReturn); err != nil {
			return false, fmt.Errorf("ability %s return: %w", u.name, err)
		}
		u.deps.Mover.Return()
		return false, nil
	case movement.Returning:
		if err := u.machine.Event(ctx, eventFinish); err != nil {
			return false, fmt.Errorf("ability %s finish: %w", u.name, err)
		}
		u.deps.Input.Enable()
		return true, nil
	default:
		return false, fmt.Errorf("ability %s: unknown movement phase %d", u.name, phase)
	}
}

func (u *Use) apply() {
	switch u.kind {
	case Skill:
		u.applySkill(u.deps.Catalog.Skill(u.id))
	case Item:
		u.applyItem(u.deps.Catalog.Consumable(u.id))
	}
}

func (u *Use) applySkill(s catalog.Skill) {
	d := u.deps.duration()
	switch s.Kind {
	case catalog.SkillAttack:
		u.Amount = u.target.DealDamage(u.user.TotalStrength(), u.user, u.deps.Dice)
		msg := fmt.Sprintf("%s takes %d damage", u.target.Name(), u.Amount)
		if u.Amount == 0 {
			msg = u.target.Name() + " dodges the attack"
		}
		if u.target.IsDead() {
			msg += " and is defeated."
		}
		u.deps.Notes.Notify(msg, d)
		u.user.SetAttacking(false)
		u.deps.Logger.Info("attack resolved",
			zap.String("agent", u.user.Name()),
			zap.String("target", u.target.Name()),
			zap.Int("damage", u.Amount),
			zap.Bool("defeated", u.target.IsDead()),
		)
	case catalog.SkillHeal:
		before := u.target.Stats().CurrentHP()
		u.target.Heal(s.BasePower)
		u.user.TakeMana(s.MPCost)
		u.Amount = u.target.Stats().CurrentHP() - before
		u.deps.Notes.Notify(fmt.Sprintf("%s is healed for %d health", u.target.Name(), u.Amount), d)
	}
}

func (u *Use) applyItem(c catalog.Consumable) {
	d := u.deps.duration()
	switch c.Kind {
	case catalog.ConsumableHeal:
		u.target.Heal(c.Power)
		u.deps.Notes.Notify(fmt.Sprintf("%s is healed for %d health", u.target.Name(), c.Power), d)
	case catalog.ConsumableRevive:
		u.target.Heal(c.Power)
		u.deps.Notes.Notify(fmt.Sprintf("%s is revived on %d health", u.target.Name(), c.Power), d)
	case catalog.ConsumableMana:
		u.target.GiveMana(c.Power)
		u.deps.Notes.Notify(fmt.Sprintf("%s gains %d mana", u.target.Name(), c.Power), d)
	}
	u.Amount = c.Power
	u.deps.Inventory.RemoveConsumable(u.id)
}

// State returns the current machine state.
func (u *Use) State() string { return u.machine.Current() }

// Done reports whether the use has run to completion.
func (u *Use) Done() bool { return u.machine.Is(StateDone) }

// Kind reports whether this is a skill or an item use.
func (u *Use) Kind() Kind { return u.kind }

// ID returns the skill or consumable id.
func (u *Use) ID() int { return u.id }

// Name returns the skill or consumable name.
func (u *Use) Name() string { return u.name }

// User returns the acting agent.
func (u *Use) User() *agent.Agent { return u.user }

// Target returns the agent the effect lands on.
func (u *Use) Target() *agent.Agent { return u.target }
