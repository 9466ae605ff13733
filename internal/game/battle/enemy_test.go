package battle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/cory-johannsen/quackbattle/internal/game/agent"
	"github.com/cory-johannsen/quackbattle/internal/game/battle"
	"github.com/cory-johannsen/quackbattle/internal/scripting"
	"github.com/cory-johannsen/quackbattle/internal/testutil"
)

type fakeChooser struct {
	id    int
	ok    bool
	calls int
	self  scripting.AgentInfo
	foes  []scripting.AgentInfo
}

func (f *fakeChooser) ChooseSkill(_ string, self scripting.AgentInfo, _ []int, foes []scripting.AgentInfo) (int, bool) {
	f.calls++
	f.self, f.foes = self, foes
	return f.id, f.ok
}

func scriptedEnemy(t *testing.T, skills []int, mp int) *agent.Agent {
	t.Helper()
	tables := testutil.NewCatalog(t)
	def := tables.Enemies()[0]
	def.Script = "brain"
	def.Skills = skills
	def.Stats.MaxMP = mp
	def.Stats.Level = 2
	return agent.FromDef(def, agent.Enemy, tables, testutil.FixedDice{})
}

func TestEnemyController_NoChooserUsesFirstSkill(t *testing.T) {
	tables := testutil.NewCatalog(t)
	c := battle.NewEnemyController(tables, nil, zap.NewNop())
	e := scriptedEnemy(t, []int{1, 3}, 10)
	// Skills() lists the higher tier first.
	assert.Equal(t, 3, c.ChooseSkill(e, nil))
}

func TestEnemyController_ScriptChoiceHonoured(t *testing.T) {
	tables := testutil.NewCatalog(t)
	hero := testutil.NewHero(t, tables)
	f := &fakeChooser{id: 1, ok: true}
	c := battle.NewEnemyController(tables, f, zap.NewNop())
	e := scriptedEnemy(t, []int{1, 3}, 10)

	assert.Equal(t, 1, c.ChooseSkill(e, []*agent.Agent{hero, e}))
	assert.Equal(t, 1, f.calls)
	assert.Equal(t, "Goose", f.self.Name)
	assert.Len(t, f.foes, 1)
	assert.Equal(t, "Hero", f.foes[0].Name)
	assert.True(t, f.foes[0].Friendly)
}

func TestEnemyController_FallsBack(t *testing.T) {
	tables := testutil.NewCatalog(t)

	declined := battle.NewEnemyController(tables, &fakeChooser{ok: false}, zap.NewNop())
	assert.Equal(t, 3, declined.ChooseSkill(scriptedEnemy(t, []int{1, 3}, 10), nil))

	// Blast costs 4 MP; an enemy without mana falls back to its first skill.
	broke := battle.NewEnemyController(tables, &fakeChooser{id: 3, ok: true}, zap.NewNop())
	assert.Equal(t, 4, broke.ChooseSkill(scriptedEnemy(t, []int{1, 4, 3}, 0), nil))
}

func TestEnemyController_UnscriptedSkipsChooser(t *testing.T) {
	tables := testutil.NewCatalog(t)
	f := &fakeChooser{id: 1, ok: true}
	c := battle.NewEnemyController(tables, f, zap.NewNop())
	assert.Equal(t, 1, c.ChooseSkill(testutil.NewEnemy(t, tables, 0), nil))
	assert.Zero(t, f.calls)
}
