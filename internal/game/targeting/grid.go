// Package targeting maps the combatants of an encounter onto the fixed 4x2
// grid the player moves a cursor over to pick a target.
package targeting

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/quackbattle/internal/game/agent"
	"github.com/cory-johannsen/quackbattle/internal/game/input"
)

// Grid dimensions. Column 0 holds enemies and column 1 friendlies.
const (
	Rows = 4
	Cols = 2

	EnemyCol    = 0
	FriendlyCol = 1

	empty = -1
)

// ErrNoSelectableTarget is returned when no cell can hold the cursor.
var ErrNoSelectableTarget = errors.New("targeting: no selectable target")

// Grid is the cursor grid for one encounter. Each cell holds an index into the
// turn order, or -1.
//
// Invariant: after Reset, Move or Revalidate return nil the cursor rests on a
// selectable cell.
type Grid struct {
	order []*agent.Agent
	cells [Rows][Cols]int
	row   int
	col   int
	actor agent.Type
}

// New lays out order onto a grid. Each side is bottom-aligned: a side with n
// agents fills rows 4-n through 3 in turn-order sequence. Dead agents keep
// their cell so a fallen ally can still be chosen for a revive.
//
// Precondition: order holds at most Rows agents of each type.
func New(order []*agent.Agent) *Grid {
	g := &Grid{order: order}
	for r := range g.cells {
		g.cells[r] = [Cols]int{empty, empty}
	}
	var friendly, enemy int
	for _, a := range order {
		if a.IsFriendly() {
			friendly++
		} else {
			enemy++
		}
	}
	if friendly > Rows || enemy > Rows {
		panic(fmt.Sprintf("targeting: %d friendly and %d enemy agents exceed %d rows", friendly, enemy, Rows))
	}
	friendlyRow, enemyRow := Rows-friendly, Rows-enemy
	for i, a := range order {
		if a.IsFriendly() {
			g.cells[friendlyRow][FriendlyCol] = i
			friendlyRow++
		} else {
			g.cells[enemyRow][EnemyCol] = i
			enemyRow++
		}
	}
	g.row = Rows - 1
	return g
}

// Reset puts the cursor on the bottom enemy cell for actor, moving down to the
// next selectable cell if needed.
func (g *Grid) Reset(actor agent.Type) error {
	g.actor = actor
	g.row, g.col = Rows-1, EnemyCol
	if g.selectable(g.row, g.col) {
		return nil
	}
	return g.step(1)
}

// Revalidate moves the cursor up when its cell stopped being selectable for
// actor, e.g. after the agent under it died.
func (g *Grid) Revalidate(actor agent.Type) error {
	g.actor = actor
	if g.selectable(g.row, g.col) {
		return nil
	}
	return g.step(-1)
}

// Move applies one directional event. Other events are ignored.
//
// UP and DOWN wrap within the column. RIGHT only moves when the friendly cell
// in the same row is selectable. LEFT falls through to DOWN when the enemy
// cell in the same row is not selectable.
func (g *Grid) Move(ev input.Event) error {
	switch ev {
	case input.Up:
		return g.step(-1)
	case input.Down:
		return g.step(1)
	case input.Right:
		if g.col == EnemyCol && g.selectable(g.row, FriendlyCol) {
			g.col = FriendlyCol
		}
	case input.Left:
		if g.col == FriendlyCol {
			g.col = EnemyCol
			if !g.selectable(g.row, g.col) {
				return g.step(1)
			}
		}
	}
	return nil
}

// step walks the cursor by dir rows, wrapping, until it finds a selectable
// cell. It gives up after visiting every row of the column once.
func (g *Grid) step(dir int) error {
	row := g.row
	for i := 0; i < Rows*Cols; i++ {
		row = (row + dir + Rows) % Rows
		if g.selectable(row, g.col) {
			g.row = row
			return nil
		}
	}
	return fmt.Errorf("column %d from row %d: %w", g.col, g.row, ErrNoSelectableTarget)
}

// selectable reports whether the cell holds an agent the actor may target:
// any living agent, or a dead agent on the actor's own side.
func (g *Grid) selectable(row, col int) bool {
	idx := g.cells[row][col]
	if idx == empty {
		return false
	}
	a := g.order[idx]
	return !a.IsDead() || a.Type() == g.actor
}

// Selected returns the agent under the cursor.
func (g *Grid) Selected() *agent.Agent {
	idx := g.cells[g.row][g.col]
	if idx == empty {
		return nil
	}
	return g.order[idx]
}

// Cursor returns the cursor position.
func (g *Grid) Cursor() (row, col int) { return g.row, g.col }

// Cell returns the turn-order index at (row, col), or -1 when empty.
func (g *Grid) Cell(row, col int) int { return g.cells[row][col] }
