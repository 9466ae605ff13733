// Package party holds a roster of agents and the inventory they share.
package party

import (
	"fmt"

	"github.com/cory-johannsen/quackbattle/internal/game/agent"
	"github.com/cory-johannsen/quackbattle/internal/game/catalog"
	"github.com/cory-johannsen/quackbattle/internal/game/dice"
	"github.com/cory-johannsen/quackbattle/internal/game/equipment"
)

// MaxSize is the largest roster a party may field.
const MaxSize = 4

// Party is an ordered roster plus a shared consumable and equipment inventory.
// The same type serves the player's persistent party and a per-encounter enemy
// group.
type Party struct {
	members     []*agent.Agent
	consumables []int
	equipment   []int
}

// New returns an empty party.
func New() *Party {
	return &Party{}
}

// FromDef builds the starting party from its authored definition.
//
// Precondition: def passed catalog validation and has at most MaxSize members.
func FromDef(def catalog.PartyDef, lookup equipment.Lookup, src dice.Source) (*Party, error) {
	p := New()
	for _, m := range def.Members {
		if err := p.Add(agent.FromDef(m, agent.Friendly, lookup, src)); err != nil {
			return nil, err
		}
	}
	p.consumables = append(p.consumables, def.Consumables...)
	p.equipment = append(p.equipment, def.Equipment...)
	return p, nil
}

// Add appends a member.
//
// Postcondition: Returns an error and leaves the roster unchanged when it is full.
func (p *Party) Add(a *agent.Agent) error {
	if len(p.members) >= MaxSize {
		return fmt.Errorf("party is full (%d members)", MaxSize)
	}
	p.members = append(p.members, a)
	return nil
}

// Member returns the member at index i.
func (p *Party) Member(i int) *agent.Agent { return p.members[i] }

// Members returns the roster in order. The slice must not be modified.
func (p *Party) Members() []*agent.Agent { return p.members }

// Size returns the number of members.
func (p *Party) Size() int { return len(p.members) }

// Index returns the roster position of a, or -1 when a is not a member.
func (p *Party) Index(a *agent.Agent) int {
	for i, m := range p.members {
		if m == a {
			return i
		}
	}
	return -1
}

// IsDead reports whether every member is dead. An empty party is dead.
func (p *Party) IsDead() bool {
	for _, m := range p.members {
		if !m.IsDead() {
			return false
		}
	}
	return true
}

// Consumables returns the consumable ids held, in acquisition order.
func (p *Party) Consumables() []int { return p.consumables }

// AddConsumable appends a consumable id to the inventory.
func (p *Party) AddConsumable(id int) { p.consumables = append(p.consumables, id) }

// RemoveConsumable removes the first occurrence of id.
//
// Postcondition: Returns false and changes nothing when id is not held.
func (p *Party) RemoveConsumable(id int) bool {
	for i, c := range p.consumables {
		if c == id {
			p.consumables = append(p.consumables[:i], p.consumables[i+1:]...)
			return true
		}
	}
	return false
}

// CountConsumable returns how many copies of id are held.
func (p *Party) CountConsumable(id int) int {
	n := 0
	for _, c := range p.consumables {
		if c == id {
			n++
		}
	}
	return n
}

// Equipment returns the unworn equipment ids held.
func (p *Party) Equipment() []int { return p.equipment }

// AddEquipment puts an unworn equipment id in the bag.
func (p *Party) AddEquipment(id int) { p.equipment = append(p.equipment, id) }

// Equip moves equipment id from the bag onto member, returning whatever it
// replaces to the bag.
//
// Precondition: member belongs to p.
// Postcondition: Returns an error and changes nothing when id is not in the bag.
func (p *Party) Equip(member *agent.Agent, id int, lookup equipment.Lookup) error {
	idx := -1
	for i, e := range p.equipment {
		if e == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("equipment %d is not in the party inventory", id)
	}
	def := lookup.Equipment(id)
	if member.Stats().Level() < def.LevelRequirement {
		return fmt.Errorf("%s must be level %d to equip %s", member.Name(), def.LevelRequirement, def.Name)
	}
	p.equipment = append(p.equipment[:idx], p.equipment[idx+1:]...)
	if old := member.Equipment().Unequip(def.Slot); old != 0 {
		p.equipment = append(p.equipment, old)
	}
	member.Equipment().Equip(id)
	return nil
}

// Unequip moves the item in slot from member back to the bag.
//
// Postcondition: Returns false when the slot was already empty.
func (p *Party) Unequip(member *agent.Agent, slot catalog.Slot) bool {
	id := member.Equipment().Unequip(slot)
	if id == 0 {
		return false
	}
	p.equipment = append(p.equipment, id)
	return true
}
