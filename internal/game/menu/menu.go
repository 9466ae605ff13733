// Package menu implements the player's battle menu: the base choice between
// skills and items, the two-column skill and item lists, and target selection.
package menu

import (
	"fmt"
	"time"

	"github.com/cory-johannsen/quackbattle/internal/game/ability"
	"github.com/cory-johannsen/quackbattle/internal/game/agent"
	"github.com/cory-johannsen/quackbattle/internal/game/catalog"
	"github.com/cory-johannsen/quackbattle/internal/game/input"
	"github.com/cory-johannsen/quackbattle/internal/game/notify"
	"github.com/cory-johannsen/quackbattle/internal/game/targeting"
)

// Mode is the menu level that currently receives input.
type Mode int

const (
	Base Mode = iota
	SkillList
	ItemList
	Targeting
)

// String returns a human-readable mode label.
func (m Mode) String() string {
	switch m {
	case Base:
		return "base"
	case SkillList:
		return "skills"
	case ItemList:
		return "items"
	case Targeting:
		return "targeting"
	default:
		return "unknown"
	}
}

// Base menu rows.
const (
	rowSkills = 0
	rowItems  = 1
)

// Selection is a confirmed ability and target.
type Selection struct {
	Kind   ability.Kind
	ID     int
	Target *agent.Agent
}

// Menu is the per-encounter battle menu.
type Menu struct {
	catalog  catalog.Catalog
	grid     *targeting.Grid
	notes    notify.Sink
	duration time.Duration

	mode     Mode
	prev     Mode
	baseRow  int
	skillIdx int
	itemIdx  int

	skills []int
	items  []int
}

// New returns a Menu in base mode.
//
// Precondition: cat, grid and notes must be non-nil.
func New(cat catalog.Catalog, grid *targeting.Grid, notes notify.Sink, duration time.Duration) *Menu {
	if cat == nil || grid == nil || notes == nil {
		panic("menu: New called with a nil collaborator")
	}
	if duration <= 0 {
		duration = ability.DefaultMessageDuration
	}
	return &Menu{catalog: cat, grid: grid, notes: notes, duration: duration}
}

// Reset returns to base mode and reloads the lists for the actor about to act.
func (m *Menu) Reset(actor *agent.Agent, items []int) {
	m.mode, m.prev = Base, Base
	m.baseRow, m.skillIdx, m.itemIdx = rowSkills, 0, 0
	m.skills = actor.Skills()
	m.items = append([]int(nil), items...)
}

// Handle applies one input event for actor. It returns a Selection once a
// target has been confirmed.
//
// The only error is a targeting grid with nothing selectable, which means the
// caller opened the menu with no valid target.
func (m *Menu) Handle(ev input.Event, actor *agent.Agent) (Selection, bool, error) {
	switch m.mode {
	case Base:
		return Selection{}, false, m.handleBase(ev, actor)
	case SkillList:
		return Selection{}, false, m.handleList(ev, actor, &m.skillIdx, len(m.skills))
	case ItemList:
		return Selection{}, false, m.handleList(ev, actor, &m.itemIdx, len(m.items))
	case Targeting:
		return m.handleTargeting(ev, actor)
	}
	return Selection{}, false, nil
}

func (m *Menu) handleBase(ev input.Event, actor *agent.Agent) error {
	switch ev {
	case input.Up:
		m.baseRow = rowSkills
	case input.Down:
		m.baseRow = rowItems
	case input.Act:
		if m.baseRow == rowSkills {
			m.mode = SkillList
			return nil
		}
		if len(m.items) == 0 {
			m.notes.Notify("You have no items", m.duration)
			return nil
		}
		m.mode = ItemList
	}
	return nil
}

// handleList moves through a two-column list laid out left to right, top to
// bottom. A move that would leave the list is ignored.
func (m *Menu) handleList(ev input.Event, actor *agent.Agent, idx *int, n int) error {
	next := *idx
	switch ev {
	case input.Right:
		if next%2 == 0 {
			next++
		}
	case input.Left:
		if next%2 == 1 {
			next--
		}
	case input.Up:
		next -= 2
	case input.Down:
		next += 2
	case input.Esc:
		m.mode = Base
		return nil
	case input.Act:
		m.prev = m.mode
		m.mode = Targeting
		return m.grid.Reset(actor.Type())
	}
	if next >= 0 && next < n {
		*idx = next
	}
	return nil
}

func (m *Menu) handleTargeting(ev input.Event, actor *agent.Agent) (Selection, bool, error) {
	switch ev {
	case input.Esc:
		m.mode = m.prev
		return Selection{}, false, nil
	case input.Act:
		target := m.grid.Selected()
		if m.prev == SkillList {
			id := m.skills[m.skillIdx]
			if err := ability.CheckMP(actor, m.catalog.Skill(id)); err != nil {
				m.notes.Notify(fmt.Sprintf("%s does not have enough MP to use this skill", actor.Name()), m.duration)
				return Selection{}, false, nil
			}
			return Selection{Kind: ability.Skill, ID: id, Target: target}, true, nil
		}
		return Selection{Kind: ability.Item, ID: m.items[m.itemIdx], Target: target}, true, nil
	default:
		return Selection{}, false, m.grid.Move(ev)
	}
}

// Revalidate moves the targeting cursor off a cell that stopped being
// selectable for actor.
func (m *Menu) Revalidate(actor agent.Type) error { return m.grid.Revalidate(actor) }

// Mode returns the active menu level.
func (m *Menu) Mode() Mode { return m.mode }

// Grid returns the targeting grid.
func (m *Menu) Grid() *targeting.Grid { return m.grid }

// Cursor returns the highlighted entry of the active list, or the base row.
func (m *Menu) Cursor() int {
	switch m.mode {
	case SkillList:
		return m.skillIdx
	case ItemList:
		return m.itemIdx
	default:
		return m.baseRow
	}
}

// Skills returns the skill ids listed for the current actor.
func (m *Menu) Skills() []int { return m.skills }

// Items returns the consumable ids listed for the current turn.
func (m *Menu) Items() []int { return m.items }
