package testutil

import (
	"testing"

	"github.com/cory-johannsen/quackbattle/internal/game/catalog"
)

// ContentYAML is a small, fixed content set for unit tests. Ids are stable and
// tests may rely on them:
//
//	skills:      1 Strike (attack, 0 MP), 2 Mend (heal 10, 5 MP), 3 Blast (attack, 4 MP), 4 Smash (attack, 0 MP)
//	consumables: 1 Potion (heal 20), 2 Phoenix Down (revive 15), 3 Ether (mana 10), 7-9 quest items
//	equipment:   7 Bone Club (weapon, strength +3)
const ContentYAML = `
skills:
  - {id: 1, name: Strike, kind: attack, base_power: 0, mp_cost: 0}
  - {id: 2, name: Mend, kind: heal, base_power: 10, mp_cost: 5}
  - {id: 3, name: Blast, kind: attack, base_power: 0, mp_cost: 4}
  - {id: 4, name: Smash, kind: attack, base_power: 0, mp_cost: 0}
consumables:
  - {id: 1, name: Potion, kind: heal, power: 20, cost: 10}
  - {id: 2, name: Phoenix Down, kind: revive, power: 15, cost: 50}
  - {id: 3, name: Ether, kind: mana, power: 10, cost: 15}
  - {id: 4, name: Tonic, kind: heal, power: 5, cost: 5}
  - {id: 5, name: Elixir, kind: heal, power: 100, cost: 200}
  - {id: 6, name: Hi-Ether, kind: mana, power: 30, cost: 40}
  - {id: 7, name: Ooze Sample, kind: heal, power: 1, cost: 0}
  - {id: 8, name: Duckling Tag, kind: heal, power: 1, cost: 0}
  - {id: 9, name: Rusty Cog, kind: heal, power: 1, cost: 0}
equipment:
  - {id: 1, name: Cap, slot: head, modifiers: {armor: 1}}
  - {id: 2, name: Vest, slot: chest, modifiers: {armor: 2}}
  - {id: 3, name: Boots, slot: feet, modifiers: {speed: 2}}
  - {id: 4, name: Charm, slot: accessory, modifiers: {dexterity: 1, intelligence: 1}}
  - {id: 5, name: Twig, slot: weapon, modifiers: {strength: 1}}
  - {id: 6, name: Helm, slot: head, modifiers: {armor: 3}}
  - {id: 7, name: Bone Club, slot: weapon, modifiers: {strength: 3}}
shops:
  - {id: 0, name: Stall, equipment: [1, 5], consumables: [1, 3]}
party:
  members:
    - {name: Hero, stats: {max_hp: 50, max_mp: 20, speed: 5, strength: 6, dexterity: 4, intelligence: 3, armor: 2, level: 1}, skills: [1, 2]}
  consumables: [1, 2, 3]
enemies:
  - {name: Goose, stats: {max_hp: 20, max_mp: 0, speed: 3, strength: 3, dexterity: 2, intelligence: 1, armor: 1, level: 1}, skills: [1]}
  - {name: Swan, stats: {max_hp: 25, max_mp: 0, speed: 2, strength: 4, dexterity: 2, intelligence: 1, armor: 2, level: 1}, skills: [1]}
  - {name: Pigeon, stats: {max_hp: 15, max_mp: 0, speed: 5, strength: 2, dexterity: 4, intelligence: 1, armor: 1, level: 2}, skills: [1]}
  - {name: Green Ooze, stats: {max_hp: 30, max_mp: 0, speed: 2, strength: 4, dexterity: 2, intelligence: 1, armor: 3, level: 2}, skills: [4]}
  - {name: Purple Ooze, stats: {max_hp: 35, max_mp: 0, speed: 2, strength: 5, dexterity: 2, intelligence: 1, armor: 3, level: 3}, skills: [4]}
  - {name: Mud Ooze, stats: {max_hp: 30, max_mp: 0, speed: 3, strength: 5, dexterity: 3, intelligence: 1, armor: 4, level: 2}, skills: [4]}
boss:
  {name: Robo Duck, stats: {max_hp: 250, max_mp: 500, speed: 8, strength: 2, dexterity: 3, intelligence: 3, armor: 3, experience: 201, level: 9}, skills: [4]}
`

// NewCatalog returns Tables built from ContentYAML, failing the test on error.
func NewCatalog(t testing.TB) *catalog.Tables {
	t.Helper()
	tables, err := catalog.LoadFromBytes([]byte(ContentYAML))
	if err != nil {
		t.Fatalf("loading test content: %v", err)
	}
	return tables
}
