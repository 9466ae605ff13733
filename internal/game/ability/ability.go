// Package ability drives one skill or item application from the user's
// move-out, through its effect, to the move back and the end of the turn.
package ability

import (
	"errors"

	"github.com/cory-johannsen/quackbattle/internal/game/agent"
	"github.com/cory-johannsen/quackbattle/internal/game/catalog"
)

// Kind tags what an ability use applies.
type Kind int

const (
	Skill Kind = iota
	Item
)

// String returns a human-readable kind label.
func (k Kind) String() string {
	switch k {
	case Skill:
		return "skill"
	case Item:
		return "item"
	default:
		return "unknown"
	}
}

// Rejections raised before an ability use is started. None of them changes
// any state.
var (
	ErrCannotHeal      = errors.New("target cannot be healed")
	ErrCannotRevive    = errors.New("target cannot be revived")
	ErrCannotGiveMana  = errors.New("target cannot be given mana")
	ErrInsufficientMP  = errors.New("not enough MP")
	ErrItemUnavailable = errors.New("item not in inventory")
)

// CheckMP reports ErrInsufficientMP when user cannot pay for s.
func CheckMP(user *agent.Agent, s catalog.Skill) error {
	if user.Stats().CurrentMP() < s.MPCost {
		return ErrInsufficientMP
	}
	return nil
}

// CheckItem reports whether c may be used on target. HEAL needs a living,
// injured target; MANA a living target short of MP; REVIVE a dead one.
func CheckItem(c catalog.Consumable, target *agent.Agent) error {
	st := target.Stats()
	switch c.Kind {
	case catalog.ConsumableHeal:
		if target.IsDead() || st.CurrentHP() >= st.MaxHP() {
			return ErrCannotHeal
		}
	case catalog.ConsumableRevive:
		if !target.IsDead() {
			return ErrCannotRevive
		}
	case catalog.ConsumableMana:
		if target.IsDead() || st.CurrentMP() >= st.MaxMP() {
			return ErrCannotGiveMana
		}
	}
	return nil
}

// rejection returns the narration for a failed CheckItem.
func rejection(err error, target *agent.Agent) string {
	switch {
	case errors.Is(err, ErrCannotHeal):
		return target.Name() + " cannot be healed"
	case errors.Is(err, ErrCannotRevive):
		return target.Name() + " cannot be revived"
	case errors.Is(err, ErrCannotGiveMana):
		return target.Name() + " cannot be given mana"
	default:
		return "That item cannot be used"
	}
}
