// Package combat implements the turn-order scheduler for a battle encounter.
package combat

import (
	"fmt"

	"github.com/cory-johannsen/quackbattle/internal/game/agent"
	"github.com/cory-johannsen/quackbattle/internal/game/dice"
)

// Outcome is the state of an encounter after a turn ends.
type Outcome int

const (
	Ongoing Outcome = iota
	Win
	Lose
)

// String returns a human-readable outcome label.
func (o Outcome) String() string {
	switch o {
	case Ongoing:
		return "ongoing"
	case Win:
		return "win"
	case Lose:
		return "lose"
	default:
		return "unknown"
	}
}

// IsOver reports whether o is terminal.
func (o Outcome) IsOver() bool { return o == Win || o == Lose }

// SampleTarget draws agents uniformly from order until one of type typ that is
// alive comes up.
//
// Precondition: at least one living agent of type typ is in order; panics otherwise.
// Postcondition: Returns the turn-order index and agent drawn.
func SampleTarget(order []*agent.Agent, typ agent.Type, src dice.Source) (int, *agent.Agent) {
	if !anyLiving(order, typ) {
		panic(fmt.Sprintf("combat: no living %s agent to target", typ))
	}
	for {
		i := src.Intn(len(order))
		if a := order[i]; a.Type() == typ && !a.IsDead() {
			return i, a
		}
	}
}

func anyLiving(agents []*agent.Agent, typ agent.Type) bool {
	for _, a := range agents {
		if a.Type() == typ && !a.IsDead() {
			return true
		}
	}
	return false
}
