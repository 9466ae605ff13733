package catalog

import "fmt"

// Tables is the in-memory Catalog built from content files.
//
// Invariant: each table's entry at index i has ID == i; index 0 is the empty
// sentinel.
type Tables struct {
	skills      []Skill
	consumables []Consumable
	equipment   []Equipment
	shops       []Shop
	party       PartyDef
	enemies     []AgentDef
	boss        *AgentDef
}

// Skill returns the skill with the given id.
//
// Precondition: 0 <= id < NumSkills(); panics otherwise.
func (t *Tables) Skill(id int) Skill {
	if id < 0 || id >= len(t.skills) {
		panic(fmt.Sprintf("catalog: skill id %d out of range [0, %d)", id, len(t.skills)))
	}
	return t.skills[id]
}

// Consumable returns the consumable with the given id.
//
// Precondition: 0 <= id < NumConsumables(); panics otherwise.
func (t *Tables) Consumable(id int) Consumable {
	if id < 0 || id >= len(t.consumables) {
		panic(fmt.Sprintf("catalog: consumable id %d out of range [0, %d)", id, len(t.consumables)))
	}
	return t.consumables[id]
}

// Equipment returns the equipment with the given id.
//
// Precondition: 0 <= id < NumEquipment(); panics otherwise.
func (t *Tables) Equipment(id int) Equipment {
	if id < 0 || id >= len(t.equipment) {
		panic(fmt.Sprintf("catalog: equipment id %d out of range [0, %d)", id, len(t.equipment)))
	}
	return t.equipment[id]
}

// Shop returns the shop with the given id.
//
// Precondition: 0 <= id < NumShops(); panics otherwise.
func (t *Tables) Shop(id int) Shop {
	if id < 0 || id >= len(t.shops) {
		panic(fmt.Sprintf("catalog: shop id %d out of range [0, %d)", id, len(t.shops)))
	}
	return t.shops[id]
}

// NumSkills returns the skill table size, sentinel included.
func (t *Tables) NumSkills() int { return len(t.skills) }

// NumConsumables returns the consumable table size, sentinel included.
func (t *Tables) NumConsumables() int { return len(t.consumables) }

// NumEquipment returns the equipment table size, sentinel included.
func (t *Tables) NumEquipment() int { return len(t.equipment) }

// NumShops returns the number of shops.
func (t *Tables) NumShops() int { return len(t.shops) }

// Party returns the starting party definition.
func (t *Tables) Party() PartyDef { return t.party }

// Enemies returns the enemy templates, grouped three per map segment.
func (t *Tables) Enemies() []AgentDef { return t.enemies }

// Boss returns the final boss definition, or false when none was authored.
func (t *Tables) Boss() (AgentDef, bool) {
	if t.boss == nil {
		return AgentDef{}, false
	}
	return *t.boss, true
}

func emptySkill() Skill {
	return Skill{Name: "EmptySkill", Description: "EmptySkill"}
}

func emptyConsumable() Consumable {
	return Consumable{Name: "EmptyConsumable", Description: "EmptyConsumable", Kind: ConsumableHeal}
}

func emptyEquipment() Equipment {
	return Equipment{Name: "EmptyEquipment", Description: "EmptyEquipment", Slot: SlotWeapon}
}
