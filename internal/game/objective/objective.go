// Package objective tracks the story goal of each map segment and reacts to
// won battles.
package objective

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/quackbattle/internal/game/agent"
	"github.com/cory-johannsen/quackbattle/internal/game/catalog"
)

// Hook is notified after every won battle with the defeated enemy roster.
type Hook interface {
	OnBattleWon(enemies []*agent.Agent)
}

// Objective is a Hook that knows when its goal has been met.
type Objective interface {
	Hook
	Complete() bool
	String() string
}

// Inventory is the party store quest items are dropped into.
type Inventory interface {
	AddConsumable(id int)
	CountConsumable(id int) int
}

// Drop gives ItemID after a won battle in Segment against an enemy whose name
// contains NameContains.
type Drop struct {
	Segment      int
	NameContains string
	ItemID       int
}

// Drops is the quest item table for the shipped content.
var Drops = []Drop{
	{Segment: 1, NameContains: "Ooze", ItemID: 7},
	{Segment: 3, NameContains: "Duck", ItemID: 8},
	{Segment: 5, NameContains: "Duck", ItemID: 9},
}

// BossName is the name fragment that identifies the final boss.
const BossName = "Robo"

// FinalSegment is the boss segment that ends the map.
const FinalSegment = 7

// WinBattles is complete after n more won battles.
type WinBattles struct {
	remaining int
}

// NewWinBattles returns an objective needing n wins.
func NewWinBattles(n int) *WinBattles { return &WinBattles{remaining: n} }

// OnBattleWon counts one win.
func (w *WinBattles) OnBattleWon([]*agent.Agent) {
	if w.remaining > 0 {
		w.remaining--
	}
}

// Complete reports whether no wins remain.
func (w *WinBattles) Complete() bool { return w.remaining <= 0 }

// String describes the wins still needed.
func (w *WinBattles) String() string { return fmt.Sprintf("Win %d more battles", w.remaining) }

// Remaining returns the wins still needed.
func (w *WinBattles) Remaining() int { return w.remaining }

// CollectItem is complete once the party holds qty of an item. Matching drops
// for its segment are added to the inventory after each win.
type CollectItem struct {
	itemID  int
	qty     int
	name    string
	segment int
	inv     Inventory
}

// NewCollectItem returns an objective to hold qty of itemID.
//
// Precondition: inv must be non-nil.
func NewCollectItem(cat catalog.Catalog, inv Inventory, segment, itemID, qty int) *CollectItem {
	if inv == nil {
		panic("objective: NewCollectItem called with nil inventory")
	}
	return &CollectItem{
		itemID:  itemID,
		qty:     qty,
		name:    cat.Consumable(itemID).Name,
		segment: segment,
		inv:     inv,
	}
}

// OnBattleWon adds this objective's item once per matching defeated enemy.
func (c *CollectItem) OnBattleWon(enemies []*agent.Agent) {
	for _, d := range Drops {
		if d.Segment != c.segment || d.ItemID != c.itemID {
			continue
		}
		for _, e := range enemies {
			if strings.Contains(e.Name(), d.NameContains) {
				c.inv.AddConsumable(d.ItemID)
			}
		}
	}
}

// Complete reports whether the party holds enough of the item.
func (c *CollectItem) Complete() bool { return c.inv.CountConsumable(c.itemID) >= c.qty }

// String names the item and quantity to collect.
func (c *CollectItem) String() string { return fmt.Sprintf("Collect %d of %s", c.qty, c.name) }

// DefeatBoss is complete once an enemy whose name contains the boss name has
// been beaten.
type DefeatBoss struct {
	name     string
	defeated bool
}

// NewDefeatBoss returns an objective matching enemies whose name contains name.
func NewDefeatBoss(name string) *DefeatBoss { return &DefeatBoss{name: name} }

// OnBattleWon marks the boss defeated when it was among enemies.
func (d *DefeatBoss) OnBattleWon(enemies []*agent.Agent) {
	for _, e := range enemies {
		if strings.Contains(e.Name(), d.name) {
			d.defeated = true
			return
		}
	}
}

// Complete reports whether the boss has been beaten.
func (d *DefeatBoss) Complete() bool { return d.defeated }

// String names the boss to defeat.
func (d *DefeatBoss) String() string { return "Defeat the " + d.name + " Duck" }

// ForSegment returns the objective for a map segment:
//
//	even segments below 7: win 2k+1 battles where k = segment/2
//	odd segments below 7:  collect the segment's quest item
//	segment 7:             defeat the boss
func ForSegment(segment int, cat catalog.Catalog, inv Inventory) (Objective, error) {
	switch {
	case segment < 0 || segment > FinalSegment:
		return nil, fmt.Errorf("objective: segment %d out of range [0, %d]", segment, FinalSegment)
	case segment == FinalSegment:
		return NewDefeatBoss(BossName), nil
	case segment%2 == 0:
		return NewWinBattles(segment + 1), nil
	}
	for _, d := range Drops {
		if d.Segment == segment {
			return NewCollectItem(cat, inv, segment, d.ItemID, 1), nil
		}
	}
	return nil, fmt.Errorf("objective: no quest item for segment %d", segment)
}

// Nop ignores won battles.
type Nop struct{}

// OnBattleWon does nothing.
func (Nop) OnBattleWon([]*agent.Agent) {}
