package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/quackbattle/internal/game/stats"
)

type fixedSrc struct{ val int }

func (f fixedSrc) Intn(_ int) int   { return f.val }
func (f fixedSrc) Float64() float64 { return 0 }

func base() stats.Base {
	return stats.Base{
		MaxHP: 50, MaxMP: 20, Speed: 5, Strength: 6, Dexterity: 4,
		Intelligence: 3, Armor: 2, Experience: 0, Level: 1,
	}
}

func TestNew_StartsAtFullHPAndMP(t *testing.T) {
	s := stats.New(base(), fixedSrc{})
	assert.Equal(t, 50, s.CurrentHP())
	assert.Equal(t, 20, s.CurrentMP())
	assert.Equal(t, 1, s.Level())
	assert.Equal(t, 15, s.LevelCap())
}

func TestNew_SettlesEarnedLevels(t *testing.T) {
	b := base()
	b.Experience = 40
	s := stats.New(b, fixedSrc{})
	assert.Equal(t, 3, s.Level())
}

func TestNew_PanicsOnInvalidBase(t *testing.T) {
	b := base()
	b.Level = 0
	assert.Panics(t, func() { stats.New(b, fixedSrc{}) })
	assert.Panics(t, func() { stats.New(base(), nil) })
}

func TestBaseValidate(t *testing.T) {
	require.NoError(t, base().Validate())
	b := base()
	b.Level = 11
	assert.Error(t, b.Validate())
	b = base()
	b.MaxHP = 0
	assert.Error(t, b.Validate())
}

func TestIncreaseXP_ZeroIsNoOp(t *testing.T) {
	s := stats.New(base(), fixedSrc{val: 2})
	s.ReduceHP(10)
	s.ReduceMP(5)
	before := s.Base()

	assert.Equal(t, 0, s.IncreaseXP(0))
	assert.Equal(t, before, s.Base())
	assert.Equal(t, 40, s.CurrentHP())
	assert.Equal(t, 15, s.CurrentMP())
}

func TestIncreaseXP_MultiLevelInOneAward(t *testing.T) {
	s := stats.New(base(), fixedSrc{val: 0})
	s.ReduceHP(30)
	s.ReduceMP(20)

	gained := s.IncreaseXP(35)

	assert.Equal(t, 2, gained)
	assert.Equal(t, 3, s.Level())
	assert.Equal(t, s.MaxHP(), s.CurrentHP())
	assert.Equal(t, s.MaxMP(), s.CurrentMP())
}

func TestIncreaseXP_GrowthUsesIntelligence(t *testing.T) {
	s := stats.New(base(), fixedSrc{val: 1})
	require.Equal(t, 1, s.IncreaseXP(15))

	assert.Equal(t, 50+1+10, s.MaxHP())
	assert.Equal(t, 20+1+1, s.MaxMP())
	assert.Equal(t, 5+2, s.Speed())
	assert.Equal(t, 6+2, s.Strength())
	assert.Equal(t, 4+2, s.Dexterity())
	assert.Equal(t, 3+2, s.Intelligence())
	assert.Equal(t, 2, s.Armor())
}

func TestIncreaseXP_StopsAtMaxLevel(t *testing.T) {
	s := stats.New(base(), fixedSrc{})
	gained := s.IncreaseXP(10_000)
	assert.Equal(t, stats.MaxLevel-1, gained)
	assert.Equal(t, stats.MaxLevel, s.Level())
	assert.Equal(t, 0, s.IncreaseXP(10_000))
	assert.Equal(t, 20_000, s.Experience())
}

func TestIncreaseXP_ZeroIntelligenceStillGrows(t *testing.T) {
	b := base()
	b.Intelligence = 0
	s := stats.New(b, fixedSrc{})
	s.IncreaseXP(15)
	assert.Equal(t, 60, s.MaxHP())
	assert.Equal(t, 1, s.Intelligence())
}

func TestIncreaseXP_PanicsOnNegative(t *testing.T) {
	s := stats.New(base(), fixedSrc{})
	assert.Panics(t, func() { s.IncreaseXP(-1) })
}

func TestProperty_HPAndMPAlwaysClamped(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := stats.New(base(), fixedSrc{})
		ops := rapid.SliceOfN(rapid.IntRange(-1_000_000_000, 1_000_000_000), 1, 40).Draw(rt, "deltas")
		for i, d := range ops {
			switch i % 4 {
			case 0:
				s.ReduceHP(d)
			case 1:
				s.IncreaseHP(d)
			case 2:
				s.ReduceMP(d)
			default:
				s.IncreaseMP(d)
			}
			assert.GreaterOrEqual(rt, s.CurrentHP(), 0)
			assert.LessOrEqual(rt, s.CurrentHP(), s.MaxHP())
			assert.GreaterOrEqual(rt, s.CurrentMP(), 0)
			assert.LessOrEqual(rt, s.CurrentMP(), s.MaxMP())
		}
	})
}

func TestProperty_LevelNeverDecreases(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := stats.New(base(), fixedSrc{val: rapid.IntRange(0, 2).Draw(rt, "roll")})
		awards := rapid.SliceOfN(rapid.IntRange(0, 80), 1, 20).Draw(rt, "awards")
		prevLevel, prevXP := s.Level(), s.Experience()
		for _, a := range awards {
			s.IncreaseXP(a)
			assert.GreaterOrEqual(rt, s.Level(), prevLevel)
			assert.GreaterOrEqual(rt, s.Experience(), prevXP)
			assert.LessOrEqual(rt, s.Level(), stats.MaxLevel)
			if s.Level() < stats.MaxLevel {
				assert.Less(rt, s.Experience(), s.LevelCap())
			}
			prevLevel, prevXP = s.Level(), s.Experience()
		}
	})
}
