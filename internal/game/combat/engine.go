package combat

import (
	"sort"

	"github.com/cory-johannsen/quackbattle/internal/game/agent"
)

// Order is the speed-sorted turn sequence of one encounter and the pointer to
// the agent whose turn it is.
//
// Invariant: the sequence is fixed at construction; later speed changes do not
// re-sort it.
type Order struct {
	agents  []*agent.Agent
	pointer int
}

// BuildTurnOrder concatenates friendly then enemy and stable-sorts the result by
// descending total speed.
//
// Precondition: friendly and enemy must each be non-empty.
// Postcondition: Agents with equal speed keep their roster order; the pointer is
// on the first living agent.
func BuildTurnOrder(friendly, enemy []*agent.Agent) *Order {
	if len(friendly) == 0 || len(enemy) == 0 {
		panic("combat.BuildTurnOrder: both rosters must be non-empty")
	}
	all := make([]*agent.Agent, 0, len(friendly)+len(enemy))
	all = append(all, friendly...)
	all = append(all, enemy...)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CompareSpeed(all[j]) < 0
	})
	o := &Order{agents: all}
	if o.Current().IsDead() {
		o.NextTurn()
	}
	return o
}

// Agents returns the turn sequence. The slice must not be modified.
func (o *Order) Agents() []*agent.Agent { return o.agents }

// Len returns the number of agents in the sequence.
func (o *Order) Len() int { return len(o.agents) }

// At returns the agent at turn-order index i.
func (o *Order) At(i int) *agent.Agent { return o.agents[i] }

// Pointer returns the turn-order index of the current agent.
func (o *Order) Pointer() int { return o.pointer }

// Current returns the agent whose turn it is.
func (o *Order) Current() *agent.Agent { return o.agents[o.pointer] }

// Index returns the turn-order index of a, or -1.
func (o *Order) Index(a *agent.Agent) int {
	for i, x := range o.agents {
		if x == a {
			return i
		}
	}
	return -1
}

// Check reports WIN when every enemy is dead, LOSE when every friendly is dead,
// and Ongoing otherwise. Enemies are checked first.
func (o *Order) Check() Outcome {
	if !o.HasLiving(agent.Enemy) {
		return Win
	}
	if !o.HasLiving(agent.Friendly) {
		return Lose
	}
	return Ongoing
}

// EndTurn checks for termination and, when the encounter continues, advances to
// the next living agent.
//
// Postcondition: When Ongoing is returned, Current() is alive.
func (o *Order) EndTurn() Outcome {
	out := o.Check()
	if out == Ongoing {
		o.NextTurn()
	}
	return out
}

// NextTurn advances the pointer, wrapping, and skips dead agents.
//
// Precondition: at least one agent is alive; panics after a full lap otherwise.
// Postcondition: Current() is alive.
func (o *Order) NextTurn() {
	for range o.agents {
		o.pointer = (o.pointer + 1) % len(o.agents)
		if !o.agents[o.pointer].IsDead() {
			return
		}
	}
	panic("combat: NextTurn found no living agent")
}

// HasLiving reports whether any agent of type typ is alive.
func (o *Order) HasLiving(typ agent.Type) bool { return anyLiving(o.agents, typ) }

// Living returns the living agents of type typ in turn order.
func (o *Order) Living(typ agent.Type) []*agent.Agent {
	var out []*agent.Agent
	for _, a := range o.agents {
		if a.Type() == typ && !a.IsDead() {
			out = append(out, a)
		}
	}
	return out
}
