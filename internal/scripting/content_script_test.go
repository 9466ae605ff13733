package scripting_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/quackbattle/internal/scripting"
	"github.com/cory-johannsen/quackbattle/internal/testutil"
)

func loadShippedAI(t *testing.T, roll int) *scripting.Manager {
	t.Helper()
	mgr := scripting.NewManager(testutil.FixedDice{Int: roll}, zap.NewNop(), 0)
	require.NoError(t, mgr.LoadDir(filepath.Join(testutil.RepoRoot(t), "content", "scripts", "ai")))
	return mgr
}

var roboSkills = []int{3, 7, 4}

func TestRoboDuck_KeepsAttackingWhenLow(t *testing.T) {
	mgr := loadShippedAI(t, 1)
	self := scripting.AgentInfo{Name: "Robo Duck", HP: 20, MaxHP: 250, MP: 500, MaxMP: 500}
	foes := []scripting.AgentInfo{{Name: "Mallard", HP: 60, MaxHP: 60, Friendly: true}}
	id, ok := mgr.ChooseSkill("robo_duck", self, roboSkills, foes)
	require.True(t, ok)
	assert.Equal(t, 4, id)
}

func TestRoboDuck_FinishesWeakFoe(t *testing.T) {
	mgr := loadShippedAI(t, 0)
	self := scripting.AgentInfo{Name: "Robo Duck", HP: 250, MaxHP: 250, MP: 500, MaxMP: 500}
	foes := []scripting.AgentInfo{{Name: "Mallard", HP: 5, MaxHP: 60, Friendly: true}}
	id, ok := mgr.ChooseSkill("robo_duck", self, roboSkills, foes)
	require.True(t, ok)
	assert.Equal(t, 4, id)
}

func TestRoboDuck_AlternatesOnRoll(t *testing.T) {
	self := scripting.AgentInfo{Name: "Robo Duck", HP: 250, MaxHP: 250, MP: 500, MaxMP: 500}
	foes := []scripting.AgentInfo{{Name: "Mallard", HP: 60, MaxHP: 60, Friendly: true}}

	id, ok := loadShippedAI(t, 0).ChooseSkill("robo_duck", self, roboSkills, foes)
	require.True(t, ok)
	assert.Equal(t, 7, id, "engine.random(2) == 1")

	id, ok = loadShippedAI(t, 1).ChooseSkill("robo_duck", self, roboSkills, foes)
	require.True(t, ok)
	assert.Equal(t, 4, id, "engine.random(2) == 2")
}
