// Package catalog holds the read-only content tables the battle core queries by
// dense integer id: skills, consumables, equipment, shops and agent definitions.
package catalog

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/quackbattle/internal/game/stats"
)

// Catalog is the lookup surface the battle core depends on.
//
// Id 0 is the empty sentinel in every table. An out-of-range id is a content
// authoring bug and panics.
type Catalog interface {
	Skill(id int) Skill
	Consumable(id int) Consumable
	Equipment(id int) Equipment
}

// SkillKind distinguishes offensive skills from restorative ones.
type SkillKind int

const (
	SkillAttack SkillKind = iota
	SkillHeal
)

// String returns the content-file spelling of the kind.
func (k SkillKind) String() string {
	switch k {
	case SkillAttack:
		return "attack"
	case SkillHeal:
		return "heal"
	default:
		return "unknown"
	}
}

// UnmarshalText parses "attack" or "heal".
func (k *SkillKind) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "attack":
		*k = SkillAttack
	case "heal":
		*k = SkillHeal
	default:
		return fmt.Errorf("unknown skill kind %q", text)
	}
	return nil
}

// ConsumableKind selects the effect a consumable applies to its target.
type ConsumableKind int

const (
	ConsumableHeal ConsumableKind = iota
	ConsumableRevive
	ConsumableMana
)

// String returns the content-file spelling of the kind.
func (k ConsumableKind) String() string {
	switch k {
	case ConsumableHeal:
		return "heal"
	case ConsumableRevive:
		return "revive"
	case ConsumableMana:
		return "mana"
	default:
		return "unknown"
	}
}

// UnmarshalText parses "heal", "revive" or "mana".
func (k *ConsumableKind) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "heal":
		*k = ConsumableHeal
	case "revive":
		*k = ConsumableRevive
	case "mana":
		*k = ConsumableMana
	default:
		return fmt.Errorf("unknown consumable kind %q", text)
	}
	return nil
}

// Slot is an equipment slot. The numeric value is the slot's index in a loadout.
type Slot int

const (
	SlotHead Slot = iota
	SlotChest
	SlotFeet
	SlotAccessory
	SlotWeapon
)

// SlotCount is the number of equipment slots an agent has.
const SlotCount = 5

// Slots lists every slot in loadout order.
var Slots = [SlotCount]Slot{SlotHead, SlotChest, SlotFeet, SlotAccessory, SlotWeapon}

// String returns the content-file spelling of the slot.
func (s Slot) String() string {
	switch s {
	case SlotHead:
		return "head"
	case SlotChest:
		return "chest"
	case SlotFeet:
		return "feet"
	case SlotAccessory:
		return "accessory"
	case SlotWeapon:
		return "weapon"
	default:
		return "unknown"
	}
}

// UnmarshalText parses a slot name.
func (s *Slot) UnmarshalText(text []byte) error {
	name := strings.ToLower(string(text))
	for _, slot := range Slots {
		if slot.String() == name {
			*s = slot
			return nil
		}
	}
	return fmt.Errorf("unknown equipment slot %q", text)
}

// Modifiers is the five-stat delta an item of equipment grants.
type Modifiers struct {
	Speed        int `yaml:"speed"`
	Strength     int `yaml:"strength"`
	Dexterity    int `yaml:"dexterity"`
	Intelligence int `yaml:"intelligence"`
	Armor        int `yaml:"armor"`
}

// Add returns the column-wise sum of m and o.
func (m Modifiers) Add(o Modifiers) Modifiers {
	return Modifiers{
		Speed:        m.Speed + o.Speed,
		Strength:     m.Strength + o.Strength,
		Dexterity:    m.Dexterity + o.Dexterity,
		Intelligence: m.Intelligence + o.Intelligence,
		Armor:        m.Armor + o.Armor,
	}
}

// Skill is an MP-costing ability.
type Skill struct {
	ID          int       `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Kind        SkillKind `yaml:"kind"`
	BasePower   int       `yaml:"base_power"`
	MPCost      int       `yaml:"mp_cost"`
}

// Consumable is an inventory item used up on application.
type Consumable struct {
	ID          int            `yaml:"id"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Kind        ConsumableKind `yaml:"kind"`
	Power       int            `yaml:"power"`
	Cost        int            `yaml:"cost"`
}

// Equipment is a wearable item occupying exactly one slot.
type Equipment struct {
	ID               int       `yaml:"id"`
	Name             string    `yaml:"name"`
	Description      string    `yaml:"description"`
	Slot             Slot      `yaml:"slot"`
	Modifiers        Modifiers `yaml:"modifiers"`
	LevelRequirement int       `yaml:"level_requirement"`
	Cost             int       `yaml:"cost"`
}

// Shop lists the equipment and consumable ids a vendor stocks.
type Shop struct {
	ID          int    `yaml:"id"`
	Name        string `yaml:"name"`
	Equipment   []int  `yaml:"equipment"`
	Consumables []int  `yaml:"consumables"`
}

// Loadout is the equipment id worn in each slot; 0 means empty.
type Loadout struct {
	Head      int `yaml:"head"`
	Chest     int `yaml:"chest"`
	Feet      int `yaml:"feet"`
	Accessory int `yaml:"accessory"`
	Weapon    int `yaml:"weapon"`
}

// Slots returns the loadout indexed by Slot.
func (l Loadout) Slots() [SlotCount]int {
	return [SlotCount]int{l.Head, l.Chest, l.Feet, l.Accessory, l.Weapon}
}

// AgentDef is the authored definition of a party member or enemy template.
type AgentDef struct {
	Name      string     `yaml:"name"`
	Stats     stats.Base `yaml:"stats"`
	Skills    []int      `yaml:"skills"`
	Equipment Loadout    `yaml:"equipment"`
	Texture   int        `yaml:"texture"`
	// Script names the Lua AI script consulted on this agent's turns; empty
	// means the default skill choice.
	Script string `yaml:"script"`
}

// PartyDef is the starting party: members plus shared inventory.
type PartyDef struct {
	Members     []AgentDef `yaml:"members"`
	Consumables []int      `yaml:"consumables"`
	Equipment   []int      `yaml:"equipment"`
}
