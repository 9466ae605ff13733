// Package equipment tracks what an agent wears and the stat modifiers it grants.
package equipment

import (
	"github.com/cory-johannsen/quackbattle/internal/game/catalog"
)

// Lookup resolves equipment ids to definitions.
type Lookup interface {
	Equipment(id int) catalog.Equipment
}

// Set is the five-slot equipment loadout owned by one agent.
//
// Invariant: Totals() always equals the column-wise sum of the modifiers of the
// items currently in the slots.
type Set struct {
	lookup Lookup
	slots  [catalog.SlotCount]int
	totals catalog.Modifiers
}

// New creates a Set wearing the given loadout.
//
// Precondition: lookup must be non-nil; every loadout id must resolve in lookup.
// Postcondition: Totals() reflects the loadout.
func New(lookup Lookup, loadout catalog.Loadout) *Set {
	if lookup == nil {
		panic("equipment.New: lookup must not be nil")
	}
	s := &Set{lookup: lookup, slots: loadout.Slots()}
	s.recompute()
	return s
}

// Equip places item id in the slot its definition names, replacing whatever
// was there.
//
// Precondition: id must resolve in the lookup.
// Postcondition: Slot(def.Slot) == id.
func (s *Set) Equip(id int) {
	def := s.lookup.Equipment(id)
	s.slots[def.Slot] = id
	s.recompute()
}

// Unequip empties slot and returns the id that was there (0 if it was empty).
func (s *Set) Unequip(slot catalog.Slot) int {
	id := s.slots[slot]
	s.slots[slot] = 0
	s.recompute()
	return id
}

// Slot returns the id worn in slot; 0 means empty.
func (s *Set) Slot(slot catalog.Slot) int { return s.slots[slot] }

// Slots returns a copy of every slot, indexed by catalog.Slot.
func (s *Set) Slots() [catalog.SlotCount]int { return s.slots }

// IsEquipped reports whether slot holds an item.
func (s *Set) IsEquipped(slot catalog.Slot) bool { return s.slots[slot] != 0 }

// NumberEquipped returns how many slots hold an item.
func (s *Set) NumberEquipped() int {
	n := 0
	for _, id := range s.slots {
		if id != 0 {
			n++
		}
	}
	return n
}

// Totals returns the summed modifiers of everything worn.
func (s *Set) Totals() catalog.Modifiers { return s.totals }

// Loadout returns the worn ids in authoring form.
func (s *Set) Loadout() catalog.Loadout {
	return catalog.Loadout{
		Head:      s.slots[catalog.SlotHead],
		Chest:     s.slots[catalog.SlotChest],
		Feet:      s.slots[catalog.SlotFeet],
		Accessory: s.slots[catalog.SlotAccessory],
		Weapon:    s.slots[catalog.SlotWeapon],
	}
}

// recompute rebuilds totals from scratch.
func (s *Set) recompute() {
	var total catalog.Modifiers
	for _, id := range s.slots {
		total = total.Add(s.lookup.Equipment(id).Modifiers)
	}
	s.totals = total
}
