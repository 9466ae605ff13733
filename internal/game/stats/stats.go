// Package stats holds the per-agent numeric attributes and the experience curve.
package stats

import (
	"fmt"

	"github.com/cory-johannsen/quackbattle/internal/game/dice"
)

// MaxLevel is the highest level an agent can reach.
const MaxLevel = 10

// levelCurve is the cumulative experience required to leave each level.
var levelCurve = [MaxLevel]int{15, 35, 50, 70, 95, 125, 160, 200, 250, 325}

// Base is the persisted shape of a Statistics block as authored in content files.
type Base struct {
	MaxHP        int `yaml:"max_hp"`
	MaxMP        int `yaml:"max_mp"`
	Speed        int `yaml:"speed"`
	Strength     int `yaml:"strength"`
	Dexterity    int `yaml:"dexterity"`
	Intelligence int `yaml:"intelligence"`
	Armor        int `yaml:"armor"`
	Experience   int `yaml:"experience"`
	Level        int `yaml:"level"`
}

// Validate reports the first authoring error in b.
//
// Postcondition: Returns nil iff every field is usable by New.
func (b Base) Validate() error {
	switch {
	case b.Level < 1 || b.Level > MaxLevel:
		return fmt.Errorf("level must be in [1, %d], got %d", MaxLevel, b.Level)
	case b.MaxHP < 1:
		return fmt.Errorf("max_hp must be >= 1, got %d", b.MaxHP)
	case b.MaxMP < 0:
		return fmt.Errorf("max_mp must be >= 0, got %d", b.MaxMP)
	case b.Experience < 0:
		return fmt.Errorf("experience must be >= 0, got %d", b.Experience)
	}
	return nil
}

// Statistics is the mutable attribute block exclusively owned by one agent.
//
// Invariant: 0 <= CurrentHP() <= MaxHP(); 0 <= CurrentMP() <= MaxMP();
// 1 <= Level() <= MaxLevel; Experience() never decreases.
type Statistics struct {
	currentHP, maxHP int
	currentMP, maxMP int

	speed        int
	strength     int
	dexterity    int
	intelligence int
	armor        int

	experience int
	level      int

	src dice.Source
}

// New creates a Statistics at full HP and MP from b, then settles any level-ups
// already earned by b.Experience.
//
// Precondition: b.Validate() == nil; src must be non-nil.
// Postcondition: CurrentHP() == MaxHP() and CurrentMP() == MaxMP().
func New(b Base, src dice.Source) *Statistics {
	if src == nil {
		panic("stats.New: src must not be nil")
	}
	if err := b.Validate(); err != nil {
		panic("stats.New: " + err.Error())
	}
	s := &Statistics{
		currentHP:    b.MaxHP,
		maxHP:        b.MaxHP,
		currentMP:    b.MaxMP,
		maxMP:        b.MaxMP,
		speed:        b.Speed,
		strength:     b.Strength,
		dexterity:    b.Dexterity,
		intelligence: b.Intelligence,
		armor:        b.Armor,
		experience:   b.Experience,
		level:        b.Level,
		src:          src,
	}
	s.IncreaseXP(0)
	return s
}

// Base returns the current maxima and base attributes as a Base snapshot.
//
// Postcondition: New(s.Base(), src) yields an equivalent block at full HP and MP.
func (s *Statistics) Base() Base {
	return Base{
		MaxHP:        s.maxHP,
		MaxMP:        s.maxMP,
		Speed:        s.speed,
		Strength:     s.strength,
		Dexterity:    s.dexterity,
		Intelligence: s.intelligence,
		Armor:        s.armor,
		Experience:   s.experience,
		Level:        s.level,
	}
}

// LevelCap returns the experience needed to advance from the current level.
func (s *Statistics) LevelCap() int {
	return levelCurve[s.level-1]
}

// IncreaseXP adds amount to experience and applies every level-up it earns.
// Each level-up grows MaxHP by [10, 10+5*int) and MaxMP, speed, strength,
// dexterity and intelligence by [1, 1+int), then fully restores HP and MP.
//
// Precondition: amount >= 0.
// Postcondition: Returns the number of levels gained; IncreaseXP(0) on a settled
// block returns 0 and mutates nothing.
func (s *Statistics) IncreaseXP(amount int) int {
	if amount < 0 {
		panic(fmt.Sprintf("stats.IncreaseXP: amount must be >= 0, got %d", amount))
	}
	s.experience += amount
	gained := 0
	for s.level < MaxLevel && s.experience >= s.LevelCap() {
		s.levelUp()
		gained++
	}
	return gained
}

func (s *Statistics) levelUp() {
	intel := s.intelligence
	s.maxHP += dice.Growth(s.src, intel*5, 10)
	s.currentHP = s.maxHP
	s.maxMP += dice.Growth(s.src, intel, 1)
	s.currentMP = s.maxMP
	s.speed += dice.Growth(s.src, intel, 1)
	s.strength += dice.Growth(s.src, intel, 1)
	s.dexterity += dice.Growth(s.src, intel, 1)
	s.intelligence += dice.Growth(s.src, intel, 1)
	s.level++
}

// ReduceHP lowers current HP by amount, clamped into [0, MaxHP()].
func (s *Statistics) ReduceHP(amount int) { s.currentHP = clamp(s.currentHP-amount, 0, s.maxHP) }

// IncreaseHP raises current HP by amount, clamped into [0, MaxHP()].
func (s *Statistics) IncreaseHP(amount int) { s.currentHP = clamp(s.currentHP+amount, 0, s.maxHP) }

// ReduceMP lowers current MP by amount, clamped into [0, MaxMP()].
func (s *Statistics) ReduceMP(amount int) { s.currentMP = clamp(s.currentMP-amount, 0, s.maxMP) }

// IncreaseMP raises current MP by amount, clamped into [0, MaxMP()].
func (s *Statistics) IncreaseMP(amount int) { s.currentMP = clamp(s.currentMP+amount, 0, s.maxMP) }

// CurrentHP returns remaining health.
func (s *Statistics) CurrentHP() int { return s.currentHP }

// MaxHP returns the health ceiling.
func (s *Statistics) MaxHP() int { return s.maxHP }

// CurrentMP returns remaining mana.
func (s *Statistics) CurrentMP() int { return s.currentMP }

// MaxMP returns the mana ceiling.
func (s *Statistics) MaxMP() int { return s.maxMP }

// Speed returns base speed.
func (s *Statistics) Speed() int { return s.speed }

// Strength returns base strength.
func (s *Statistics) Strength() int { return s.strength }

// Dexterity returns base dexterity.
func (s *Statistics) Dexterity() int { return s.dexterity }

// Intelligence returns base intelligence.
func (s *Statistics) Intelligence() int { return s.intelligence }

// Armor returns base armor.
func (s *Statistics) Armor() int { return s.armor }

// Experience returns the total XP earned.
func (s *Statistics) Experience() int { return s.experience }

// Level returns the current level.
func (s *Statistics) Level() int { return s.level }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
