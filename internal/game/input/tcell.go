package input

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// TcellSource adapts a tcell screen's key events into Events. A reader goroutine
// drains PollEvent into a buffered channel; Poll never blocks.
type TcellSource struct {
	events chan Event
	quit   chan struct{}
	once   sync.Once
}

// NewTcellSource starts reading key events from screen.
//
// Precondition: screen must be initialised.
// Postcondition: The reader goroutine exits when the screen is finalised or
// the player presses Ctrl-C or q; Done is closed either way.
func NewTcellSource(screen tcell.Screen) *TcellSource {
	s := &TcellSource{
		events: make(chan Event, 32),
		quit:   make(chan struct{}),
	}
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				s.stop()
				return
			}
			key, ok := ev.(*tcell.EventKey)
			if !ok {
				continue
			}
			if IsQuitKey(key) {
				s.stop()
				return
			}
			if e := KeyToEvent(key); e != None {
				select {
				case s.events <- e:
				default:
				}
			}
		}
	}()
	return s
}

// Poll returns the oldest buffered event without blocking.
func (s *TcellSource) Poll() (Event, bool) {
	select {
	case e := <-s.events:
		return e, true
	default:
		return None, false
	}
}

// Done is closed once the screen stops delivering events or the player quits.
func (s *TcellSource) Done() <-chan struct{} { return s.quit }

func (s *TcellSource) stop() { s.once.Do(func() { close(s.quit) }) }

// IsQuitKey reports whether ev asks to leave the game.
func IsQuitKey(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'))
}

// KeyToEvent maps arrow keys, vi keys, Enter/space and Escape to Events.
func KeyToEvent(ev *tcell.EventKey) Event {
	switch ev.Key() {
	case tcell.KeyUp:
		return Up
	case tcell.KeyDown:
		return Down
	case tcell.KeyLeft:
		return Left
	case tcell.KeyRight:
		return Right
	case tcell.KeyEnter:
		return Act
	case tcell.KeyEscape:
		return Esc
	}
	switch ev.Rune() {
	case 'k', 'K', 'w', 'W':
		return Up
	case 'j', 'J', 's', 'S':
		return Down
	case 'h', 'H', 'a', 'A':
		return Left
	case 'l', 'L', 'd', 'D':
		return Right
	case ' ', 'z', 'Z':
		return Act
	case 'x', 'X':
		return Esc
	}
	return None
}
