package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/cory-johannsen/quackbattle/internal/game/agent"
	"github.com/cory-johannsen/quackbattle/internal/game/battle"
	"github.com/cory-johannsen/quackbattle/internal/game/catalog"
	"github.com/cory-johannsen/quackbattle/internal/game/input"
	"github.com/cory-johannsen/quackbattle/internal/game/menu"
	"github.com/cory-johannsen/quackbattle/internal/game/notify"
	"github.com/cory-johannsen/quackbattle/internal/game/targeting"
)

var (
	styleText    = tcell.StyleDefault
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleActive  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleCursor  = tcell.StyleDefault.Reverse(true)
	styleMessage = tcell.StyleDefault.Foreground(tcell.ColorAqua)
)

// terminal is the keyboard front end: it reads keys through an input.TcellSource
// and redraws the encounter on every update.
type terminal struct {
	*input.TcellSource
	screen  tcell.Screen
	catalog catalog.Catalog
	ticker  *time.Ticker
	banner  string
}

func newTerminal(screen tcell.Screen, cat catalog.Catalog, tickRate int) *terminal {
	return &terminal{
		TcellSource: input.NewTcellSource(screen),
		screen:      screen,
		catalog:     cat,
		ticker:      time.NewTicker(time.Second / time.Duration(tickRate)),
	}
}

// Attach is a no-op; Show redraws from the session each tick.
func (t *terminal) Attach(*battle.Session) {}

// Next waits for the next tick. It returns false once the player quits.
func (t *terminal) Next() bool {
	select {
	case <-t.Done():
		return false
	case <-t.ticker.C:
		return true
	}
}

// Say shows line as a banner and holds it for two seconds.
func (t *terminal) Say(line string) {
	t.banner = line
	t.screen.Clear()
	putText(t.screen, 2, 1, line, styleActive)
	t.screen.Show()
	select {
	case <-t.Done():
	case <-time.After(2 * time.Second):
	}
}

func (t *terminal) stop() {
	t.ticker.Stop()
}

// Show redraws the encounter, the menu and the newest message.
func (t *terminal) Show(s *battle.Session, notes *notify.Queue) {
	scr := t.screen
	scr.Clear()
	putText(scr, 2, 0, t.banner, styleDim)
	if m, ok := notes.Current(); ok {
		putText(scr, 2, 1, m.Text, styleMessage)
	}

	order := s.Order().Agents()
	grid := s.Menu().Grid()
	targetRow, targetCol := grid.Cursor()
	aiming := s.Menu().Mode() == menu.Targeting && s.Current().IsFriendly()
	for row := 0; row < gridRows; row++ {
		for col, x := range []int{2, 40} {
			idx := grid.Cell(row, col)
			if idx < 0 {
				continue
			}
			st := styleText
			switch {
			case aiming && row == targetRow && col == targetCol:
				st = styleCursor
			case order[idx] == s.Current():
				st = styleActive
			case order[idx].IsDead():
				st = styleDim
			}
			putText(scr, x, 3+row, agentLine(order[idx]), st)
		}
	}

	if s.Current().IsFriendly() {
		t.drawMenu(s.Menu(), 9)
	}
	putText(scr, 2, 15, "arrows/hjkl move  enter/space act  esc/x back  q quit", styleDim)
	scr.Show()
}

const gridRows = targeting.Rows

func (t *terminal) drawMenu(m *menu.Menu, y int) {
	scr := t.screen
	switch m.Mode() {
	case menu.Base:
		for i, label := range []string{"Skills", "Items"} {
			st := styleText
			if m.Cursor() == i {
				st = styleCursor
			}
			putText(scr, 4, y+i, label, st)
		}
	case menu.SkillList:
		t.drawList(m.Skills(), m.Cursor(), y, func(id int) string {
			sk := t.catalog.Skill(id)
			return fmt.Sprintf("%s (%d MP)", sk.Name, sk.MPCost)
		})
	case menu.ItemList:
		t.drawList(m.Items(), m.Cursor(), y, func(id int) string {
			return t.catalog.Consumable(id).Name
		})
	case menu.Targeting:
		putText(scr, 4, y, "Choose a target", styleText)
	}
}

// drawList lays ids out in two columns, left to right then top to bottom.
func (t *terminal) drawList(ids []int, cursor, y int, label func(int) string) {
	for i, id := range ids {
		st := styleText
		if i == cursor {
			st = styleCursor
		}
		putText(t.screen, 4+(i%2)*30, y+i/2, label(id), st)
	}
}

func agentLine(a *agent.Agent) string {
	st := a.Stats()
	return fmt.Sprintf("%-14s Lv%-2d HP %3d/%-3d MP %3d/%-3d",
		a.Name(), st.Level(), st.CurrentHP(), st.MaxHP(), st.CurrentMP(), st.MaxMP())
}

// putText writes s from (x, y), one rune per column, clipped at the right edge.
func putText(scr tcell.Screen, x, y int, s string, st tcell.Style) {
	w, _ := scr.Size()
	for _, r := range s {
		if x >= w {
			break
		}
		scr.SetContent(x, y, r, nil, st)
		x++
	}
}
