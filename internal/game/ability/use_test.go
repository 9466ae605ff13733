package ability_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/quackbattle/internal/game/ability"
	"github.com/cory-johannsen/quackbattle/internal/game/agent"
	"github.com/cory-johannsen/quackbattle/internal/game/catalog"
	"github.com/cory-johannsen/quackbattle/internal/game/input"
	"github.com/cory-johannsen/quackbattle/internal/game/movement"
	"github.com/cory-johannsen/quackbattle/internal/game/notify"
	"github.com/cory-johannsen/quackbattle/internal/game/party"
	"github.com/cory-johannsen/quackbattle/internal/testutil"
)

type mockDriver struct {
	mock.Mock
	done chan movement.Phase
}

func (m *mockDriver) MoveOut(a *agent.Agent, towardX float64) { m.Called(a, towardX) }
func (m *mockDriver) Return()                                 { m.Called() }
func (m *mockDriver) Update(time.Duration)                    {}
func (m *mockDriver) Done() <-chan movement.Phase             { return m.done }

type fixture struct {
	tables *catalog.Tables
	gate   *input.Switch
	driver *mockDriver
	notes  *notify.Queue
	party  *party.Party
	hero   *agent.Agent
	goose  *agent.Agent
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tables := testutil.NewCatalog(t)
	p, err := party.FromDef(tables.Party(), tables, testutil.FixedDice{})
	require.NoError(t, err)
	f := &fixture{
		tables: tables,
		gate:   &input.Switch{},
		driver: &mockDriver{done: make(chan movement.Phase, 2)},
		notes:  notify.NewQueue(),
		party:  p,
		hero:   p.Member(0),
		goose:  testutil.NewEnemy(t, tables, 0),
	}
	f.hero.X, f.goose.X = 600, 100
	return f
}

func (f *fixture) deps(float float64) ability.Deps {
	return ability.Deps{
		Catalog:   f.tables,
		Input:     f.gate,
		Mover:     f.driver,
		Notes:     f.notes,
		Inventory: f.party,
		Dice:      testutil.FixedDice{Float: float},
		Logger:    zap.NewNop(),
	}
}

func TestSkill_AttackRunsFullCycle(t *testing.T) {
	f := newFixture(t)
	f.driver.On("MoveOut", f.hero, 100.0).Once()
	f.driver.On("Return").Once()
	ctx := context.Background()

	u := ability.NewSkill(f.deps(0), f.hero, f.goose, 1)
	assert.Equal(t, ability.StateMovingOut, u.State())
	assert.False(t, f.gate.Enabled())
	assert.True(t, f.hero.IsAttacking())
	assert.Equal(t, "Hero uses Strike on Goose", f.notes.Texts()[0])

	want := f.goose.DamageFor(f.hero.TotalStrength(), f.hero)
	done, err := u.MovementDone(ctx, movement.Going)
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, ability.StateReturning, u.State())
	assert.Equal(t, 20-want, f.goose.Stats().CurrentHP())
	assert.Equal(t, want, u.Amount)
	assert.False(t, f.hero.IsAttacking())
	assert.False(t, f.gate.Enabled())

	done, err = u.MovementDone(ctx, movement.Returning)
	require.NoError(t, err)
	assert.True(t, done)
	assert.True(t, u.Done())
	assert.True(t, f.gate.Enabled())
	f.driver.AssertExpectations(t)
}

func TestSkill_Dodge(t *testing.T) {
	f := newFixture(t)
	f.driver.On("MoveOut", mock.Anything, mock.Anything)
	f.driver.On("Return")

	u := ability.NewSkill(f.deps(0.95), f.hero, f.goose, 1)
	_, err := u.MovementDone(context.Background(), movement.Going)
	require.NoError(t, err)
	assert.Zero(t, u.Amount)
	assert.Equal(t, 20, f.goose.Stats().CurrentHP())
	assert.Contains(t, f.notes.Texts(), "Goose dodges the attack")
}

func TestSkill_LethalBlowNarratesDefeat(t *testing.T) {
	f := newFixture(t)
	f.driver.On("MoveOut", mock.Anything, mock.Anything)
	f.driver.On("Return")
	f.goose.Stats().ReduceHP(18)

	u := ability.NewSkill(f.deps(0), f.hero, f.goose, 1)
	_, err := u.MovementDone(context.Background(), movement.Going)
	require.NoError(t, err)
	assert.True(t, f.goose.IsDead())
	assert.Contains(t, f.notes.Texts(), "Goose takes 6 damage and is defeated.")
}

func TestSkill_HealRestoresAndCostsMP(t *testing.T) {
	f := newFixture(t)
	f.driver.On("MoveOut", f.hero, f.hero.X)
	f.driver.On("Return")
	f.hero.Stats().ReduceHP(30)

	u := ability.NewSkill(f.deps(0), f.hero, f.hero, 2)
	assert.False(t, f.hero.IsAttacking())
	_, err := u.MovementDone(context.Background(), movement.Going)
	require.NoError(t, err)
	assert.Equal(t, 30, f.hero.Stats().CurrentHP())
	assert.Equal(t, 15, f.hero.Stats().CurrentMP())
	assert.Contains(t, f.notes.Texts(), "Hero is healed for 10 health")
}

func TestSkill_ReturningBeforeGoingFails(t *testing.T) {
	f := newFixture(t)
	f.driver.On("MoveOut", mock.Anything, mock.Anything)

	u := ability.NewSkill(f.deps(0), f.hero, f.goose, 1)
	done, err := u.MovementDone(context.Background(), movement.Returning)
	assert.Error(t, err)
	assert.False(t, done)
	assert.False(t, f.gate.Enabled())
}

func TestItem_HealOnFullHPRejected(t *testing.T) {
	f := newFixture(t)
	f.gate.Disable()

	u, err := ability.NewItem(f.deps(0), f.hero, f.hero, 1)
	assert.Nil(t, u)
	assert.ErrorIs(t, err, ability.ErrCannotHeal)
	assert.True(t, f.gate.Enabled())
	assert.Equal(t, []string{"Hero cannot be healed"}, f.notes.Texts())
	assert.Equal(t, 50, f.hero.Stats().CurrentHP())
	assert.Equal(t, 1, f.party.CountConsumable(1))
	f.driver.AssertNotCalled(t, "MoveOut", mock.Anything, mock.Anything)
}

func TestItem_ReviveOnLivingRejected(t *testing.T) {
	f := newFixture(t)
	_, err := ability.NewItem(f.deps(0), f.hero, f.hero, 2)
	assert.ErrorIs(t, err, ability.ErrCannotRevive)
	assert.Equal(t, []string{"Hero cannot be revived"}, f.notes.Texts())
}

func TestItem_ManaOnDeadRejected(t *testing.T) {
	f := newFixture(t)
	f.hero.Stats().ReduceHP(1000)
	_, err := ability.NewItem(f.deps(0), f.hero, f.hero, 3)
	assert.ErrorIs(t, err, ability.ErrCannotGiveMana)
}

func TestItem_ReviveConsumesItem(t *testing.T) {
	f := newFixture(t)
	f.driver.On("MoveOut", mock.Anything, mock.Anything)
	f.driver.On("Return")
	f.hero.Stats().ReduceHP(1000)

	u, err := ability.NewItem(f.deps(0), f.hero, f.hero, 2)
	require.NoError(t, err)
	assert.False(t, f.hero.IsAttacking())
	_, err = u.MovementDone(context.Background(), movement.Going)
	require.NoError(t, err)
	assert.Equal(t, 15, f.hero.Stats().CurrentHP())
	assert.Zero(t, f.party.CountConsumable(2))
	assert.Contains(t, f.notes.Texts(), "Hero is revived on 15 health")
}

func TestItem_ManaRestoresMP(t *testing.T) {
	f := newFixture(t)
	f.driver.On("MoveOut", mock.Anything, mock.Anything)
	f.driver.On("Return")
	f.hero.Stats().ReduceMP(15)

	u, err := ability.NewItem(f.deps(0), f.hero, f.hero, 3)
	require.NoError(t, err)
	_, err = u.MovementDone(context.Background(), movement.Going)
	require.NoError(t, err)
	assert.Equal(t, 15, f.hero.Stats().CurrentMP())
	assert.Contains(t, f.notes.Texts(), "Hero gains 10 mana")
}

func TestItem_NotInInventory(t *testing.T) {
	f := newFixture(t)
	f.hero.Stats().ReduceHP(10)
	_, err := ability.NewItem(f.deps(0), f.hero, f.hero, 5)
	assert.True(t, errors.Is(err, ability.ErrItemUnavailable))
	assert.True(t, f.gate.Enabled())
	assert.Equal(t, []string{"You have no Elixir"}, f.notes.Texts())
}

func TestCheckMP(t *testing.T) {
	f := newFixture(t)
	mend := f.tables.Skill(2)
	assert.NoError(t, ability.CheckMP(f.hero, mend))
	f.hero.Stats().ReduceMP(16)
	assert.ErrorIs(t, ability.CheckMP(f.hero, mend), ability.ErrInsufficientMP)
}
