package menu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/quackbattle/internal/game/ability"
	"github.com/cory-johannsen/quackbattle/internal/game/agent"
	"github.com/cory-johannsen/quackbattle/internal/game/input"
	"github.com/cory-johannsen/quackbattle/internal/game/menu"
	"github.com/cory-johannsen/quackbattle/internal/game/notify"
	"github.com/cory-johannsen/quackbattle/internal/game/targeting"
	"github.com/cory-johannsen/quackbattle/internal/testutil"
)

type fixture struct {
	menu  *menu.Menu
	notes *notify.Queue
	hero  *agent.Agent
	order []*agent.Agent
}

func newFixture(t *testing.T, items []int) *fixture {
	t.Helper()
	tables := testutil.NewCatalog(t)
	hero := testutil.NewHero(t, tables)
	order := []*agent.Agent{hero, testutil.NewEnemy(t, tables, 0), testutil.NewEnemy(t, tables, 1)}
	notes := notify.NewQueue()
	m := menu.New(tables, targeting.New(order), notes, 0)
	m.Reset(hero, items)
	return &fixture{menu: m, notes: notes, hero: hero, order: order}
}

func (f *fixture) press(t *testing.T, events ...input.Event) (menu.Selection, bool) {
	t.Helper()
	var (
		sel menu.Selection
		ok  bool
		err error
	)
	for _, ev := range events {
		sel, ok, err = f.menu.Handle(ev, f.hero)
		require.NoError(t, err)
	}
	return sel, ok
}

func TestBase_OpensListsAndEscBacksOut(t *testing.T) {
	f := newFixture(t, []int{1})
	f.press(t, input.Act)
	assert.Equal(t, menu.SkillList, f.menu.Mode())
	f.press(t, input.Esc)
	assert.Equal(t, menu.Base, f.menu.Mode())
	f.press(t, input.Down, input.Act)
	assert.Equal(t, menu.ItemList, f.menu.Mode())
}

func TestBase_NoItems(t *testing.T) {
	f := newFixture(t, nil)
	f.press(t, input.Down, input.Act)
	assert.Equal(t, menu.Base, f.menu.Mode())
	assert.Equal(t, []string{"You have no items"}, f.notes.Texts())
}

func TestList_TwoColumnNavigation(t *testing.T) {
	f := newFixture(t, []int{1, 2, 3})
	f.press(t, input.Down, input.Act)

	steps := []struct {
		ev   input.Event
		want int
	}{
		{input.Right, 1},
		{input.Right, 1},
		{input.Down, 1},
		{input.Left, 0},
		{input.Down, 2},
		{input.Right, 2},
		{input.Down, 2},
		{input.Up, 0},
		{input.Up, 0},
	}
	for i, s := range steps {
		f.press(t, s.ev)
		assert.Equal(t, s.want, f.menu.Cursor(), "step %d (%s)", i, s.ev)
	}
}

func TestTargeting_ConfirmSkill(t *testing.T) {
	f := newFixture(t, nil)
	sel, ok := f.press(t, input.Act, input.Act)
	assert.False(t, ok)
	assert.Equal(t, menu.Targeting, f.menu.Mode())

	sel, ok = f.press(t, input.Act)
	require.True(t, ok)
	assert.Equal(t, ability.Skill, sel.Kind)
	assert.Equal(t, 1, sel.ID)
	assert.Same(t, f.order[2], sel.Target)
}

func TestTargeting_ArrowsMoveCursor(t *testing.T) {
	f := newFixture(t, nil)
	sel, ok := f.press(t, input.Act, input.Act, input.Up, input.Act)
	require.True(t, ok)
	assert.Same(t, f.order[1], sel.Target)
}

func TestTargeting_ConfirmItemOnAlly(t *testing.T) {
	f := newFixture(t, []int{1, 3})
	sel, ok := f.press(t, input.Down, input.Act, input.Right, input.Act, input.Right, input.Act)
	require.True(t, ok)
	assert.Equal(t, ability.Item, sel.Kind)
	assert.Equal(t, 3, sel.ID)
	assert.Same(t, f.hero, sel.Target)
}

func TestTargeting_EscReturnsToPreviousList(t *testing.T) {
	f := newFixture(t, []int{1})
	f.press(t, input.Down, input.Act, input.Act, input.Esc)
	assert.Equal(t, menu.ItemList, f.menu.Mode())
}

func TestTargeting_InsufficientMPBlocksSelectedSkill(t *testing.T) {
	f := newFixture(t, nil)
	f.hero.Stats().IncreaseXP(15)
	require.Equal(t, 2, f.hero.Stats().Level())
	f.hero.Stats().ReduceMP(f.hero.Stats().MaxMP())
	f.menu.Reset(f.hero, nil)
	require.Equal(t, []int{2, 1}, f.menu.Skills())

	_, ok := f.press(t, input.Act, input.Act, input.Act)
	assert.False(t, ok)
	assert.Equal(t, menu.Targeting, f.menu.Mode())
	assert.Equal(t, []string{"Hero does not have enough MP to use this skill"}, f.notes.Texts())

	sel, ok := f.press(t, input.Esc, input.Right, input.Act, input.Act)
	require.True(t, ok)
	assert.Equal(t, 1, sel.ID, "a free skill passes the MP check")
}

func TestReset_ReturnsToBase(t *testing.T) {
	f := newFixture(t, []int{1})
	f.press(t, input.Down, input.Act, input.Act)
	f.menu.Reset(f.hero, []int{1})
	assert.Equal(t, menu.Base, f.menu.Mode())
	assert.Zero(t, f.menu.Cursor())
}
