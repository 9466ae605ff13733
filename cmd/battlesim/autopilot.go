package main

import (
	"fmt"
	"io"

	"github.com/cory-johannsen/quackbattle/internal/game/battle"
	"github.com/cory-johannsen/quackbattle/internal/game/input"
	"github.com/cory-johannsen/quackbattle/internal/game/menu"
	"github.com/cory-johannsen/quackbattle/internal/game/notify"
)

// autopilot plays every friendly turn by striking the first enemy the
// targeting cursor offers with the last skill in the list, which is always the
// agent's base skill. It writes narration to out as it appears.
type autopilot struct {
	out     io.Writer
	session *battle.Session
	shown   int
	ticks   int
	limit   int
}

func newAutopilot(out io.Writer, limit int) *autopilot {
	return &autopilot{out: out, limit: limit}
}

// Attach points the autopilot at a new encounter.
func (p *autopilot) Attach(s *battle.Session) {
	p.session, p.shown, p.ticks = s, 0, 0
}

// Poll returns the next menu move for the current friendly turn.
func (p *autopilot) Poll() (input.Event, bool) {
	if p.session == nil || p.session.InFlight() != nil {
		return input.None, false
	}
	m := p.session.Menu()
	switch m.Mode() {
	case menu.Base:
		if m.Cursor() != 0 {
			return input.Up, true
		}
		return input.Act, true
	case menu.SkillList:
		return listStep(m.Cursor(), len(m.Skills())-1), true
	case menu.ItemList:
		return input.Esc, true
	default:
		return input.Act, true
	}
}

// listStep returns the move that walks a two-column list cursor toward want,
// or Act once it is there. A right-column cursor steps left before changing
// rows; a left-column cursor changes rows first and steps right last, so every
// intermediate index exists in the list.
func listStep(cur, want int) input.Event {
	switch {
	case cur == want:
		return input.Act
	case cur%2 == 1 && want%2 == 0:
		return input.Left
	case cur/2 < want/2:
		return input.Down
	case cur/2 > want/2:
		return input.Up
	default:
		return input.Right
	}
}

// Show prints narration added since the last update.
func (p *autopilot) Show(_ *battle.Session, notes *notify.Queue) {
	history := notes.History()
	for _, m := range history[p.shown:] {
		fmt.Fprintln(p.out, m.Text)
	}
	p.shown = len(history)
}

// Next allows at most limit updates per encounter.
func (p *autopilot) Next() bool {
	p.ticks++
	return p.limit <= 0 || p.ticks <= p.limit
}

// Say prints line.
func (p *autopilot) Say(line string) { fmt.Fprintln(p.out, line) }
