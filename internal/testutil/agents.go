package testutil

import (
	"testing"

	"github.com/cory-johannsen/quackbattle/internal/game/agent"
	"github.com/cory-johannsen/quackbattle/internal/game/catalog"
)

// NewHero returns a fresh copy of the ContentYAML party member "Hero".
func NewHero(t testing.TB, tables *catalog.Tables) *agent.Agent {
	t.Helper()
	members := tables.Party().Members
	if len(members) == 0 {
		t.Fatalf("test content has no party members")
	}
	return agent.FromDef(members[0], agent.Friendly, tables, FixedDice{})
}

// NewEnemy returns a fresh enemy built from ContentYAML enemy template i.
func NewEnemy(t testing.TB, tables *catalog.Tables, i int) *agent.Agent {
	t.Helper()
	enemies := tables.Enemies()
	if i < 0 || i >= len(enemies) {
		t.Fatalf("enemy template %d out of range [0, %d)", i, len(enemies))
	}
	return agent.FromDef(enemies[i], agent.Enemy, tables, FixedDice{})
}
