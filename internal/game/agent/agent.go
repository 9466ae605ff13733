// Package agent models a combatant: a party member or an enemy instance.
package agent

import (
	"math"

	"github.com/cory-johannsen/quackbattle/internal/game/catalog"
	"github.com/cory-johannsen/quackbattle/internal/game/dice"
	"github.com/cory-johannsen/quackbattle/internal/game/equipment"
	"github.com/cory-johannsen/quackbattle/internal/game/stats"
)

// Type separates the two sides of a battle.
type Type int

const (
	Friendly Type = iota
	Enemy
)

// String returns a human-readable side label.
func (t Type) String() string {
	switch t {
	case Friendly:
		return "friendly"
	case Enemy:
		return "enemy"
	default:
		return "unknown"
	}
}

const (
	minHitChance    = 0.1
	maxHitChance    = 0.9
	minDamageFactor = 0.1
	maxDamageFactor = 1.0
)

// Agent is one combatant. Party members persist across encounters; enemies are
// cloned per encounter from templates.
//
// Invariant: Total* accessors always read live stats plus live equipment totals.
type Agent struct {
	name    string
	typ     Type
	stats   *stats.Statistics
	equip   *equipment.Set
	skills  []int
	texture int
	script  string

	// X and Y are the battle-screen position.
	X, Y float64

	attacking  bool
	attackTime float64
}

// New creates an Agent from already-built parts.
//
// Precondition: st and eq must be non-nil; skills must be non-empty.
func New(name string, typ Type, st *stats.Statistics, eq *equipment.Set, skills []int, texture int) *Agent {
	if st == nil || eq == nil {
		panic("agent.New: stats and equipment must not be nil")
	}
	if len(skills) == 0 {
		panic("agent.New: agent must know at least one skill")
	}
	return &Agent{
		name:    name,
		typ:     typ,
		stats:   st,
		equip:   eq,
		skills:  append([]int(nil), skills...),
		texture: texture,
	}
}

// FromDef builds an Agent from an authored definition.
//
// Precondition: def passed catalog validation; lookup and src must be non-nil.
// Postcondition: The agent is at full HP and MP.
func FromDef(def catalog.AgentDef, typ Type, lookup equipment.Lookup, src dice.Source) *Agent {
	a := New(def.Name, typ, stats.New(def.Stats, src), equipment.New(lookup, def.Equipment), def.Skills, def.Texture)
	a.script = def.Script
	return a
}

// Clone returns a fresh instance copying only the base statistics, loadout and
// skills of a. Battle damage on the clone never reaches a.
//
// Postcondition: The clone is at full HP and MP and shares no mutable state with a.
func (a *Agent) Clone(lookup equipment.Lookup, src dice.Source) *Agent {
	c := New(a.name, a.typ, stats.New(a.stats.Base(), src), equipment.New(lookup, a.equip.Loadout()), a.skills, a.texture)
	c.script = a.script
	return c
}

// HitChance returns the probability that attacker lands a blow on a.
//
// Postcondition: 0.1 <= result <= 0.9.
func (a *Agent) HitChance(attacker *Agent) float64 {
	atkDex := float64(attacker.TotalDexterity())
	if atkDex <= 0 {
		return minHitChance
	}
	return clamp(1-(float64(a.TotalDexterity())/atkDex)/10, minHitChance, maxHitChance)
}

// DamageFor returns the damage a landed blow of the given power deals to a.
//
// Postcondition: result == round(power * clamp(sqrt(atkStr/defArmor), 0.1, 1)).
func (a *Agent) DamageFor(power int, attacker *Agent) int {
	factor := maxDamageFactor
	if armor := a.TotalArmor(); armor > 0 {
		ratio := float64(attacker.TotalStrength()) / float64(armor)
		if ratio < 0 {
			ratio = 0
		}
		factor = clamp(math.Sqrt(ratio), minDamageFactor, maxDamageFactor)
	}
	return int(math.Floor(float64(power)*factor + 0.5))
}

// DealDamage rolls to hit and, on a hit, applies DamageFor(power, attacker).
//
// Postcondition: Returns the damage applied; 0 means the attack was dodged.
func (a *Agent) DealDamage(power int, attacker *Agent, src dice.Source) int {
	dmg := 0
	if a.HitChance(attacker) > src.Float64() {
		dmg = a.DamageFor(power, attacker)
	}
	a.stats.ReduceHP(dmg)
	return dmg
}

// Heal restores up to amount HP.
func (a *Agent) Heal(amount int) { a.stats.IncreaseHP(amount) }

// GiveMana restores up to amount MP.
func (a *Agent) GiveMana(amount int) { a.stats.IncreaseMP(amount) }

// TakeMana spends up to amount MP.
func (a *Agent) TakeMana(amount int) { a.stats.ReduceMP(amount) }

// IsDead reports whether current HP is zero.
func (a *Agent) IsDead() bool { return a.stats.CurrentHP() <= 0 }

// Skills returns the skill ids usable at the current level, highest tier first:
// slot 3 from level 8, slot 2 from level 4, slot 1 from level 2, then slot 0.
//
// Postcondition: The last element is always slot 0.
func (a *Agent) Skills() []int {
	lvl := a.stats.Level()
	out := make([]int, 0, 4)
	if lvl >= 8 && len(a.skills) >= 4 {
		out = append(out, a.skills[3])
	}
	if lvl >= 4 && len(a.skills) >= 3 {
		out = append(out, a.skills[2])
	}
	if lvl >= 2 && len(a.skills) >= 2 {
		out = append(out, a.skills[1])
	}
	return append(out, a.skills[0])
}

// KnownSkills returns every skill id the agent knows, ignoring level gates.
func (a *Agent) KnownSkills() []int { return append([]int(nil), a.skills...) }

// AddSkill appends id to the known skills.
func (a *Agent) AddSkill(id int) { a.skills = append(a.skills, id) }

// CompareSpeed orders agents by descending total speed: negative when a is
// faster than other.
func (a *Agent) CompareSpeed(other *Agent) int {
	return other.TotalSpeed() - a.TotalSpeed()
}

// TotalSpeed returns base speed plus equipment.
func (a *Agent) TotalSpeed() int { return a.stats.Speed() + a.equip.Totals().Speed }

// TotalStrength returns base strength plus equipment.
func (a *Agent) TotalStrength() int { return a.stats.Strength() + a.equip.Totals().Strength }

// TotalDexterity returns base dexterity plus equipment.
func (a *Agent) TotalDexterity() int { return a.stats.Dexterity() + a.equip.Totals().Dexterity }

// TotalIntelligence returns base intelligence plus equipment.
func (a *Agent) TotalIntelligence() int {
	return a.stats.Intelligence() + a.equip.Totals().Intelligence
}

// TotalArmor returns base armor plus equipment.
func (a *Agent) TotalArmor() int { return a.stats.Armor() + a.equip.Totals().Armor }

// Name returns the display name.
func (a *Agent) Name() string { return a.name }

// Type returns the side the agent fights on.
func (a *Agent) Type() Type { return a.typ }

// Stats returns the live statistics.
func (a *Agent) Stats() *stats.Statistics { return a.stats }

// Equipment returns the equipped set.
func (a *Agent) Equipment() *equipment.Set { return a.equip }

// Texture returns the sprite index from the content file.
func (a *Agent) Texture() int { return a.texture }

// IsFriendly reports whether the agent is a party member.
func (a *Agent) IsFriendly() bool { return a.typ == Friendly }

// Script returns the AI script name, or "" when unscripted.
func (a *Agent) Script() string { return a.script }

// IsAttacking reports whether the agent is mid-attack.
func (a *Agent) IsAttacking() bool { return a.attacking }

// SetAttacking sets the attacking flag; clearing it resets the attack timer.
func (a *Agent) SetAttacking(attacking bool) {
	a.attacking = attacking
	if !attacking {
		a.attackTime = 0
	}
}

// AttackTime returns how long the current attack has been running.
func (a *Agent) AttackTime() float64 { return a.attackTime }

// UpdateAttackTime advances the attack timer by delta seconds.
func (a *Agent) UpdateAttackTime(delta float64) { a.attackTime += delta }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
